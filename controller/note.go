package controller

import (
	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Notes handles the shared study notes collection.
type Notes struct {
	DB *gorm.DB
}

type NoteInput struct {
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	FileUrl  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
	IsPublic *bool  `json:"isPublic"`
}

type NoteResponse struct {
	model.Note
	UploadedBy model.PublicUser `json:"uploadedBy"`
}

func newNoteResponse(n *model.Note) NoteResponse {
	return NoteResponse{Note: *n, UploadedBy: n.UploadedBy.Public()}
}

// List returns the caller's notes plus everything shared publicly.
func (h *Notes) List(c *fiber.Ctx) error {
	notes := []model.Note{}
	if err := h.DB.
		Where("user_id = ? OR is_public = ?", tokenUserID(c), true).
		Preload("UploadedBy").
		Find(&notes).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	list := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		list = append(list, newNoteResponse(&notes[i]))
	}

	return ok(c, fiber.StatusOK, list)
}

func (h *Notes) Create(c *fiber.Ctx) error {
	input := new(NoteInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}
	if input.FileUrl == "" {
		return fail(c, fiber.StatusBadRequest, "fileUrl is required")
	}

	note := &model.Note{
		Title:    input.Title,
		Subject:  input.Subject,
		FileUrl:  input.FileUrl,
		FileSize: input.FileSize,
		FileType: input.FileType,
		IsPublic: true,
		UserID:   tokenUserID(c),
	}
	if input.IsPublic != nil {
		note.IsPublic = *input.IsPublic
	}

	if err := h.DB.Create(note).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if err := h.DB.First(&note.UploadedBy, note.UserID).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, newNoteResponse(note))
}
