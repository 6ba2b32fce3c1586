package controller

import (
	"community-service/model"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Users lists other members, used to find someone to message.
type Users struct {
	DB *gorm.DB
}

func (h *Users) List(c *fiber.Ctx) error {
	users := []model.User{}
	if err := h.DB.Where("id <> ?", tokenUserID(c)).Find(&users).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	list := make([]model.PublicUser, 0, len(users))
	for i := range users {
		list = append(list, users[i].Public())
	}

	return ok(c, fiber.StatusOK, list)
}
