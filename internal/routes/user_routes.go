package routes

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/config"
	"hoagiehub/internal/controllers"
)

func SetupRoutesUser(r fiber.Router, d Deps) {
	h := &controllers.UserHandler{Service: d.Users}

	users := r.Group("/users")

	// POST /v1/users
	users.Post("/", limit(d.Config, config.BucketUserCreation), h.Create)

	// POST /v1/users/login
	// returns the user and a bearer token
	users.Post("/login", limit(d.Config, config.BucketLogin), h.Login)

	// GET /v1/users?page=1&limit=10
	users.Get("/", h.List)

	// GET /v1/users/search?q=ali
	// must stay above /:id
	users.Get("/search", limit(d.Config, config.BucketUserSearch), h.Search)

	users.Get("/:id", h.Get)
}
