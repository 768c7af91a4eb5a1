package routes

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/config"
	"hoagiehub/internal/controllers"
	"hoagiehub/internal/middleware"
)

func SetupRoutesHoagie(r fiber.Router, d Deps) {
	h := &controllers.HoagieHandler{Service: d.Hoagies}
	acting := middleware.ActingUser("userId")

	hoagies := r.Group("/hoagies")

	hoagies.Post("/", limit(d.Config, config.BucketHoagieCreation), h.Create)
	hoagies.Get("/", h.List)

	// Counter maintenance
	hoagies.Post("/admin/recalculate-comment-counts", h.RecalculateAll)
	hoagies.Post("/admin/:id/recalculate-comment-count", h.RecalculateOne)

	hoagies.Get("/:id", h.Get)
	hoagies.Get("/:id/comment-count", h.CommentCount)
	hoagies.Get("/:id/contributor-count", h.ContributorCount)

	// PATCH /v1/hoagies/:id/user/:userId
	// creator or collaborator only
	hoagies.Patch("/:id/user/:userId", acting, limit(d.Config, config.BucketHoagieUpdate), h.Update)

	// creator only
	hoagies.Post("/:hoagieId/collaborators/:collaboratorId/user/:userId", acting, h.AddCollaborator)
	hoagies.Delete("/:hoagieId/collaborators/:collaboratorId/user/:userId", acting, h.RemoveCollaborator)
}
