package controllers

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/dto"
	"hoagiehub/internal/apperror"
	"hoagiehub/internal/middleware"
	"hoagiehub/internal/services"
)

type CommentHandler struct {
	Service *services.CommentService
}

// Create godoc
// @Summary      Create a comment
// @Description  Creates the comment and bumps the hoagie's cached comment count.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCommentReq  true  "Comment payload"
// @Success      201   {object}  dto.CommentResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /comments [post]
func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := requireTokenOwner(c, body.UserID); err != nil {
		return err
	}

	com, err := h.Service.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(com)
}

// ListByHoagie godoc
// @Summary      List the comments of a hoagie
// @Tags         comments
// @Produce      json
// @Param        hoagieId  path      string  true   "Hoagie ID"
// @Param        page      query     int     false  "Page number"  default(1)
// @Param        limit     query     int     false  "Items per page"  default(10) maximum(100)
// @Success      200       {object}  dto.Page[dto.CommentResp]
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /comments/hoagie/{hoagieId} [get]
func (h *CommentHandler) ListByHoagie(c *fiber.Ctx) error {
	p, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := h.Service.ListByHoagie(c.UserContext(), c.Params("hoagieId"), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Delete godoc
// @Summary      Delete a comment
// @Description  Only the comment's author can delete it.
// @Tags         comments
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Comment ID"
// @Param        body  body      dto.DeleteCommentReq  true  "Acting user"
// @Success      200   {object}  models.Comment
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /comments/{id} [delete]
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	var body dto.DeleteCommentReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := requireTokenOwner(c, body.UserID); err != nil {
		return err
	}

	com, err := h.Service.Delete(c.UserContext(), c.Params("id"), body.UserID)
	if err != nil {
		return err
	}
	return c.JSON(com)
}

// requireTokenOwner rejects a body-supplied user id that differs from the
// bearer token's user, when a token was sent.
func requireTokenOwner(c *fiber.Ctx, userID string) error {
	if uid, ok := middleware.UIDFromLocals(c); ok && uid != userID {
		return apperror.PermissionDenied("token does not belong to the acting user")
	}
	return nil
}
