package routes

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/config"
	"hoagiehub/internal/controllers"
)

func CommentRoutes(r fiber.Router, d Deps) {
	h := &controllers.CommentHandler{Service: d.Comments}

	comments := r.Group("/comments")

	// POST /v1/comments
	// also bumps the hoagie's commentCount
	comments.Post("/", limit(d.Config, config.BucketCommentCreation), h.Create)

	// GET /v1/comments/hoagie/:hoagieId?page=1&limit=10
	// newest first
	comments.Get("/hoagie/:hoagieId", h.ListByHoagie)

	// DELETE /v1/comments/:id  body: {"userId": "..."}
	// author only
	comments.Delete("/:id", limit(d.Config, config.BucketCommentDeletion), h.Delete)
}
