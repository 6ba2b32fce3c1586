package controller

import (
	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Forum handles the community board.
type Forum struct {
	DB *gorm.DB
}

type ForumPostInput struct {
	Content string `json:"content"`
}

type ForumPostResponse struct {
	model.ForumPost
	Author model.PublicUser `json:"author"`
}

func newForumPostResponse(p *model.ForumPost) ForumPostResponse {
	return ForumPostResponse{ForumPost: *p, Author: p.Author.Public()}
}

// List returns every post, newest first.
func (h *Forum) List(c *fiber.Ctx) error {
	posts := []model.ForumPost{}
	if err := h.DB.
		Order("created_at DESC, id DESC").
		Preload("Author").
		Find(&posts).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	list := make([]ForumPostResponse, 0, len(posts))
	for i := range posts {
		list = append(list, newForumPostResponse(&posts[i]))
	}

	return ok(c, fiber.StatusOK, list)
}

func (h *Forum) Create(c *fiber.Ctx) error {
	input := new(ForumPostInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Content == "" {
		return fail(c, fiber.StatusBadRequest, "Content is required")
	}

	post := &model.ForumPost{
		Content: input.Content,
		UserID:  tokenUserID(c),
	}
	if err := h.DB.Create(post).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if err := h.DB.First(&post.Author, post.UserID).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, newForumPostResponse(post))
}
