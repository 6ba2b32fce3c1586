package controller

import (
	"errors"
	"time"

	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Messenger handles the message-request lifecycle and the gated direct
// messages behind it. A Message may only exist between two users holding an
// ACCEPTED MessageRequest; every write and read path below re-checks that.
type Messenger struct {
	DB *gorm.DB
}

// Placeholder texts surfaced in conversation summaries.
const (
	emptyConversationText = "Start a conversation"
	pendingRequestText    = "Wants to connect with you"
)

type MessageRequestInput struct {
	ReceiverId uint `json:"receiverId"`
}

type MessageInput struct {
	ReceiverId uint   `json:"receiverId"`
	Content    string `json:"content"`
}

type MessageRequestResponse struct {
	Id        uint             `json:"id"`
	Status    string           `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	Sender    model.PublicUser `json:"sender"`
	Receiver  model.PublicUser `json:"receiver"`
}

type MessageResponse struct {
	Id         uint             `json:"id"`
	SenderId   uint             `json:"senderId"`
	ReceiverId uint             `json:"receiverId"`
	Content    string           `json:"content"`
	IsRead     bool             `json:"isRead"`
	CreatedAt  time.Time        `json:"createdAt"`
	Sender     model.PublicUser `json:"sender"`
}

// ConversationSummary is derived at read time, never stored.
type ConversationSummary struct {
	Id          uint      `json:"id"`
	UserId      uint      `json:"userId"`
	UserName    string    `json:"userName"`
	UserAvatar  string    `json:"userAvatar"`
	LastMessage string    `json:"lastMessage"`
	Timestamp   time.Time `json:"timestamp"`
	UnreadCount int64     `json:"unreadCount"`
	IsOnline    bool      `json:"isOnline"`
	IsAccepted  bool      `json:"isAccepted"`
}

func newMessageRequestResponse(r *model.MessageRequest) MessageRequestResponse {
	return MessageRequestResponse{
		Id:        r.ID,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
		Sender:    r.Sender.Public(),
		Receiver:  r.Receiver.Public(),
	}
}

func newMessageResponse(m *model.Message) MessageResponse {
	return MessageResponse{
		Id:         m.ID,
		SenderId:   m.SenderID,
		ReceiverId: m.ReceiverID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		CreatedAt:  m.CreatedAt,
		Sender:     m.Sender.Public(),
	}
}

// hasAcceptedRequest reports whether the unordered pair holds an ACCEPTED
// request. The PairKey covers both directions in one lookup.
func (h *Messenger) hasAcceptedRequest(a, b uint) (bool, error) {
	result := h.DB.
		Where("pair_key = ? AND status = ?", model.PairKey(a, b), model.RequestAccepted).
		First(new(model.MessageRequest))
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Request opens a PENDING request towards another user. The unique PairKey
// is what actually guarantees "at most one request per pair": two concurrent
// creates cannot both pass, whatever the pre-check saw.
func (h *Messenger) Request(c *fiber.Ctx) error {
	input := new(MessageRequestInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	senderId := tokenUserID(c)
	if input.ReceiverId == 0 {
		return fail(c, fiber.StatusBadRequest, "receiverId is required")
	}
	if input.ReceiverId == senderId {
		return fail(c, fiber.StatusBadRequest, "Cannot send a request to yourself")
	}

	receiver := new(model.User)
	if err := h.DB.First(receiver, input.ReceiverId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Receiver not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	pairKey := model.PairKey(senderId, input.ReceiverId)
	if count := h.DB.
		Where("pair_key = ?", pairKey).
		First(new(model.MessageRequest)).
		RowsAffected; count > 0 {
		return fail(c, fiber.StatusConflict, "Message request already exists")
	}

	request := &model.MessageRequest{
		SenderID:   senderId,
		ReceiverID: input.ReceiverId,
		PairKey:    pairKey,
		Status:     model.RequestPending,
	}
	if err := h.DB.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, fiber.StatusConflict, "Message request already exists")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.DB.First(&request.Sender, senderId).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	request.Receiver = *receiver

	return ok(c, fiber.StatusCreated, newMessageRequestResponse(request))
}

// Accept moves a PENDING request to ACCEPTED. Only the receiver may accept;
// accepting an already ACCEPTED request is a no-op success.
func (h *Messenger) Accept(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request id")
	}

	request := new(model.MessageRequest)
	if err := h.DB.Preload("Sender").Preload("Receiver").First(request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Message request not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if request.ReceiverID != tokenUserID(c) {
		return fail(c, fiber.StatusForbidden, "Not authorized to accept this request")
	}

	if request.Status != model.RequestAccepted {
		if err := h.DB.Model(request).Update("status", model.RequestAccepted).Error; err != nil {
			return fail(c, fiber.StatusInternalServerError, internalError)
		}
	}

	return ok(c, fiber.StatusOK, newMessageRequestResponse(request))
}

// Decline deletes a PENDING request. ACCEPTED requests are settled and stay;
// declining one is a conflict.
func (h *Messenger) Decline(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request id")
	}

	request := new(model.MessageRequest)
	if err := h.DB.First(request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Message request not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if request.ReceiverID != tokenUserID(c) {
		return fail(c, fiber.StatusForbidden, "Not authorized to decline this request")
	}

	if request.Status == model.RequestAccepted {
		return fail(c, fiber.StatusConflict, "Request is already accepted")
	}

	if err := h.DB.Delete(request).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Message request declined"})
}

// Conversations lists one summary per ACCEPTED request involving the caller,
// followed by one per PENDING request awaiting the caller's answer. Each
// accepted summary costs two extra queries: the latest message and the
// unread count.
func (h *Messenger) Conversations(c *fiber.Ctx) error {
	userId := tokenUserID(c)

	accepted := []model.MessageRequest{}
	if err := h.DB.
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?", userId, userId, model.RequestAccepted).
		Preload("Sender").Preload("Receiver").
		Find(&accepted).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	pending := []model.MessageRequest{}
	if err := h.DB.
		Where("receiver_id = ? AND status = ?", userId, model.RequestPending).
		Preload("Sender").
		Find(&pending).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	summaries := make([]ConversationSummary, 0, len(accepted)+len(pending))

	for i := range accepted {
		request := &accepted[i]
		other := &request.Sender
		if request.SenderID == userId {
			other = &request.Receiver
		}

		latest := new(model.Message)
		err := h.DB.
			Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
				userId, other.ID, other.ID, userId).
			Order("created_at DESC, id DESC").
			First(latest).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusInternalServerError, internalError)
		}
		hasMessage := err == nil

		var unread int64
		if err := h.DB.Model(&model.Message{}).
			Where("sender_id = ? AND receiver_id = ? AND is_read = ?", other.ID, userId, false).
			Count(&unread).Error; err != nil {
			return fail(c, fiber.StatusInternalServerError, internalError)
		}

		summary := ConversationSummary{
			Id:          request.ID,
			UserId:      other.ID,
			UserName:    other.Name,
			UserAvatar:  other.AvatarUrl,
			LastMessage: emptyConversationText,
			Timestamp:   request.UpdatedAt,
			UnreadCount: unread,
			IsAccepted:  true,
		}
		if hasMessage {
			summary.LastMessage = latest.Content
			summary.Timestamp = latest.CreatedAt
		}
		summaries = append(summaries, summary)
	}

	for i := range pending {
		request := &pending[i]
		summaries = append(summaries, ConversationSummary{
			Id:          request.ID,
			UserId:      request.SenderID,
			UserName:    request.Sender.Name,
			UserAvatar:  request.Sender.AvatarUrl,
			LastMessage: pendingRequestText,
			Timestamp:   request.CreatedAt,
			UnreadCount: 1,
			IsAccepted:  false,
		})
	}

	return ok(c, fiber.StatusOK, summaries)
}

// Conversation returns the full message history with another user, oldest
// first, and marks their unread messages as read. Fetch and mark are two
// separate statements; a message arriving in between stays unread until the
// next fetch.
func (h *Messenger) Conversation(c *fiber.Ctx) error {
	otherId, err := c.ParamsInt("userId")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid user id")
	}
	userId := tokenUserID(c)

	allowed, err := h.hasAcceptedRequest(userId, uint(otherId))
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if !allowed {
		return fail(c, fiber.StatusForbidden, "No accepted message request found")
	}

	messages := []model.Message{}
	if err := h.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userId, otherId, otherId, userId).
		Order("created_at ASC, id ASC").
		Preload("Sender").
		Find(&messages).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.DB.Model(&model.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherId, userId, false).
		Update("is_read", true).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	list := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		list = append(list, newMessageResponse(&messages[i]))
	}

	return ok(c, fiber.StatusOK, list)
}

// Send creates a message towards the receiver, provided the pair holds an
// ACCEPTED request.
func (h *Messenger) Send(c *fiber.Ctx) error {
	input := new(MessageInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	senderId := tokenUserID(c)
	if input.ReceiverId == 0 {
		return fail(c, fiber.StatusBadRequest, "receiverId is required")
	}
	if input.Content == "" {
		return fail(c, fiber.StatusBadRequest, "Content is required")
	}

	allowed, err := h.hasAcceptedRequest(senderId, input.ReceiverId)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if !allowed {
		return fail(c, fiber.StatusForbidden, "No accepted message request found")
	}

	message := &model.Message{
		SenderID:   senderId,
		ReceiverID: input.ReceiverId,
		Content:    input.Content,
	}
	if err := h.DB.Create(message).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if err := h.DB.First(&message.Sender, senderId).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, newMessageResponse(message))
}
