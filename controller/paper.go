package controller

import (
	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Papers handles the past exam paper collection.
type Papers struct {
	DB *gorm.DB
}

type PaperInput struct {
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	Year     int    `json:"year"`
	ExamType string `json:"examType"`
	FileUrl  string `json:"fileUrl"`
	FileSize int64  `json:"fileSize"`
	FileType string `json:"fileType"`
	IsPublic *bool  `json:"isPublic"`
}

type PaperResponse struct {
	model.Paper
	UploadedBy model.PublicUser `json:"uploadedBy"`
}

func newPaperResponse(p *model.Paper) PaperResponse {
	return PaperResponse{Paper: *p, UploadedBy: p.UploadedBy.Public()}
}

// List returns the caller's papers plus everything shared publicly.
func (h *Papers) List(c *fiber.Ctx) error {
	papers := []model.Paper{}
	if err := h.DB.
		Where("user_id = ? OR is_public = ?", tokenUserID(c), true).
		Preload("UploadedBy").
		Find(&papers).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	list := make([]PaperResponse, 0, len(papers))
	for i := range papers {
		list = append(list, newPaperResponse(&papers[i]))
	}

	return ok(c, fiber.StatusOK, list)
}

func (h *Papers) Create(c *fiber.Ctx) error {
	input := new(PaperInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}
	if input.FileUrl == "" {
		return fail(c, fiber.StatusBadRequest, "fileUrl is required")
	}

	paper := &model.Paper{
		Title:    input.Title,
		Subject:  input.Subject,
		Year:     input.Year,
		ExamType: input.ExamType,
		FileUrl:  input.FileUrl,
		FileSize: input.FileSize,
		FileType: input.FileType,
		IsPublic: true,
		UserID:   tokenUserID(c),
	}
	if input.IsPublic != nil {
		paper.IsPublic = *input.IsPublic
	}

	if err := h.DB.Create(paper).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}
	if err := h.DB.First(&paper.UploadedBy, paper.UserID).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, newPaperResponse(paper))
}
