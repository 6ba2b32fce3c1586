package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"community-service/config"
	"community-service/database"
	"community-service/model"
	"community-service/utils"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Auth handles registration, login, token renewal and the profile routes.
type Auth struct {
	DB       *gorm.DB
	Sessions database.SessionStore
	Enforcer *casbin.Enforcer
}

type AuthSignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type AuthLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthRenewTokenInput struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthProfileInput struct {
	Name       string `json:"name"`
	Department string `json:"department"`
	Year       string `json:"year"`
	AvatarUrl  string `json:"avatarUrl"`
}

func userData(u *model.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"created":    u.CreatedAt.Unix(),
		"email":      u.Email,
		"name":       u.Name,
		"department": u.Department,
		"year":       u.Year,
		"avatarUrl":  u.AvatarUrl,
		"role":       u.Role,
	}
}

func (h *Auth) Signup(c *fiber.Ctx) error {
	input := new(AuthSignupInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Email == "" {
		return fail(c, fiber.StatusBadRequest, "Email is required")
	}
	if input.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Password is required")
	}

	if count := h.DB.
		Where(&model.User{Email: input.Email}).
		First(new(model.User)).
		RowsAffected; count > 0 {
		return fail(c, fiber.StatusConflict, "Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), 14)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	user := &model.User{
		Email:    input.Email,
		Password: string(hash),
		Name:     input.Name,
		Role:     model.RoleUser,
	}
	if user.Name == "" {
		user.Name = strings.Split(input.Email, "@")[0]
	}
	if adminEmail := config.Config("ADMIN_EMAIL"); adminEmail != "" && input.Email == adminEmail {
		user.Role = model.RoleAdmin
	}

	if err := h.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fail(c, fiber.StatusConflict, "Email is already registered")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if _, err := h.Enforcer.AddGroupingPolicy(fmt.Sprint(user.ID), user.Role); err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	idStr := strconv.FormatUint(uint64(user.ID), 10)
	tokens, err := utils.GenerateTokens(idStr, user.Email)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.Sessions.SetRefreshToken(context.Background(), idStr, tokens.Refresh); err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusCreated, fiber.Map{
		"user":    userData(user),
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func (h *Auth) Signin(c *fiber.Ctx) error {
	input := new(AuthLoginInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	if input.Email == "" || input.Password == "" {
		return fail(c, fiber.StatusBadRequest, "Email and password are required")
	}

	user := new(model.User)
	if err := h.DB.Where(&model.User{Email: input.Email}).First(user).Error; err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return fail(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	idStr := strconv.FormatUint(uint64(user.ID), 10)
	tokens, err := utils.GenerateTokens(idStr, user.Email)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.Sessions.SetRefreshToken(context.Background(), idStr, tokens.Refresh); err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{
		"user":    userData(user),
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func (h *Auth) TokenRenew(c *fiber.Ctx) error {
	input := new(AuthRenewTokenInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	claims, err := utils.CheckAndExtractTokenMetadata(input.RefreshToken, "JWT_REFRESH_KEY")
	if err != nil {
		return fail(c, fiber.StatusForbidden, "Invalid token")
	}

	stored, err := h.Sessions.GetRefreshToken(context.Background(), claims.Id)
	if err != nil {
		return fail(c, fiber.StatusForbidden, "Invalid token")
	}
	if stored != input.RefreshToken {
		return fail(c, fiber.StatusForbidden, "Refresh token was already used")
	}

	tokens, err := utils.GenerateTokens(claims.Id, claims.Email)
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	if err := h.Sessions.SetRefreshToken(context.Background(), claims.Id, tokens.Refresh); err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{
		"access":  tokens.Access,
		"refresh": tokens.Refresh,
	})
}

func (h *Auth) Me(c *fiber.Ctx) error {
	user := new(model.User)
	if err := h.DB.First(user, tokenUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"user": userData(user)})
}

func (h *Auth) ProfileUpdate(c *fiber.Ctx) error {
	input := new(AuthProfileInput)
	if err := c.BodyParser(input); err != nil {
		return fail(c, fiber.StatusBadRequest, "Review your input")
	}

	user := new(model.User)
	if err := h.DB.First(user, tokenUserID(c)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fail(c, fiber.StatusNotFound, "User not found")
		}
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	user.Name = input.Name
	user.Department = input.Department
	user.Year = input.Year
	user.AvatarUrl = input.AvatarUrl
	if err := h.DB.Save(user).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, internalError)
	}

	return ok(c, fiber.StatusOK, fiber.Map{"user": userData(user)})
}
