package router

import (
	"community-service/controller"
	"community-service/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// Deps carries the controllers and the enforcer into route registration.
type Deps struct {
	Auth      *controller.Auth
	Users     *controller.Users
	Notes     *controller.Notes
	Papers    *controller.Papers
	Skills    *controller.Skills
	Forum     *controller.Forum
	Messenger *controller.Messenger
	Enforcer  *casbin.Enforcer
}

func Rest(app *fiber.App, d Deps) {
	api := app.Group("/api", logger.New())

	jwt := middleware.JWT()
	admin := middleware.RBAC(d.Enforcer)

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", d.Auth.Signup)
	auth.Post("/login", d.Auth.Signin)
	auth.Post("/token/renew", d.Auth.TokenRenew)
	auth.Get("/me", jwt, d.Auth.Me)
	auth.Put("/profile", jwt, d.Auth.ProfileUpdate)

	// Users
	api.Get("/users", jwt, d.Users.List)

	// Notes & papers
	api.Get("/notes", jwt, d.Notes.List)
	api.Post("/notes", jwt, d.Notes.Create)
	api.Get("/papers", jwt, d.Papers.List)
	api.Post("/papers", jwt, d.Papers.Create)

	// Skills (mutations are admin only)
	api.Get("/skills", jwt, d.Skills.List)
	api.Post("/skills", jwt, admin, d.Skills.Create)
	api.Put("/skills/:id", jwt, admin, d.Skills.Update)
	api.Delete("/skills/:id", jwt, admin, d.Skills.Delete)

	// Forum
	api.Get("/forum-posts", jwt, d.Forum.List)
	api.Post("/forum-posts", jwt, d.Forum.Create)

	// Messenger
	api.Get("/messages", jwt, d.Messenger.Conversations)
	api.Post("/messages", jwt, d.Messenger.Send)
	messages := api.Group("/messages", jwt)
	messages.Post("/request", d.Messenger.Request)
	messages.Post("/request/:id/accept", d.Messenger.Accept)
	messages.Post("/request/:id/decline", d.Messenger.Decline)
	messages.Get("/:userId", d.Messenger.Conversation)
}
