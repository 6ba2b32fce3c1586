package controller

import (
	"errors"

	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Skills handles the curated learning tracks. Reading is open to every
// member; mutations sit behind the admin RBAC middleware.
type Skills struct {
	DB *gorm.DB
}

type SkillInput struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Description   string `json:"description"`
	Level         string `json:"level"`
	EstimatedTime string `json:"estimatedTime"`
	ImageUrl      string `json:"imageUrl"`
}

func (h *Skills) List(c *fiber.Ctx) error {
	skills := []model.Skill{}
	if err := h.DB.Find(&skills).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, skills)
}

func (h *Skills) Create(c *fiber.Ctx) error {
	input := new(SkillInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Title == "" {
		return fail(c, fiber.StatusBadRequest, "Title is required")
	}

	skill := &model.Skill{
		Title:         input.Title,
		Category:      input.Category,
		Description:   input.Description,
		Level:         input.Level,
		EstimatedTime: input.EstimatedTime,
		ImageUrl:      input.ImageUrl,
	}
	if err := h.DB.Create(skill).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, skill)
}

func (h *Skills) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid skill id")
	}

	input := new(SkillInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	skill := new(model.Skill)
	if err := h.DB.First(skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Skill not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	skill.Title = input.Title
	skill.Category = input.Category
	skill.Description = input.Description
	skill.Level = input.Level
	skill.EstimatedTime = input.EstimatedTime
	skill.ImageUrl = input.ImageUrl
	if err := h.DB.Save(skill).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, skill)
}

func (h *Skills) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid skill id")
	}

	skill := new(model.Skill)
	if err := h.DB.First(skill, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "Skill not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.DB.Delete(skill).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"message": "Skill deleted successfully"})
}
