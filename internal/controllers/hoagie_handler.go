package controllers

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/dto"
	"hoagiehub/internal/services"
)

type HoagieHandler struct {
	Service *services.HoagieService
}

// Create godoc
// @Summary      Create a new hoagie
// @Tags         hoagies
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateHoagieReq  true  "Hoagie payload"
// @Success      201   {object}  dto.HoagieResp
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /hoagies [post]
func (h *HoagieHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateHoagieReq
	if err := parseBody(c, &body); err != nil {
		return err
	}
	if err := requireTokenOwner(c, body.UserID); err != nil {
		return err
	}

	hoagie, err := h.Service.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(hoagie)
}

// List godoc
// @Summary      Get all hoagies with pagination
// @Tags         hoagies
// @Produce      json
// @Param        page   query     int  false  "Page number"  default(1)
// @Param        limit  query     int  false  "Items per page"  default(10) maximum(100)
// @Success      200    {object}  dto.Page[dto.HoagieResp]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /hoagies [get]
func (h *HoagieHandler) List(c *fiber.Ctx) error {
	p, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := h.Service.List(c.UserContext(), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Get godoc
// @Summary      Get a hoagie by ID
// @Tags         hoagies
// @Produce      json
// @Param        id   path      string  true  "Hoagie ID"
// @Success      200  {object}  dto.HoagieResp
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /hoagies/{id} [get]
func (h *HoagieHandler) Get(c *fiber.Ctx) error {
	hoagie, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(hoagie)
}

// CommentCount godoc
// @Summary      Get the cached comment count of a hoagie
// @Tags         hoagies
// @Produce      json
// @Param        id   path      string  true  "Hoagie ID"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /hoagies/{id}/comment-count [get]
func (h *HoagieHandler) CommentCount(c *fiber.Ctx) error {
	n, err := h.Service.CommentCount(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// ContributorCount godoc
// @Summary      Get the number of contributors (creator plus collaborators)
// @Tags         hoagies
// @Produce      json
// @Param        id   path      string  true  "Hoagie ID"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /hoagies/{id}/contributor-count [get]
func (h *HoagieHandler) ContributorCount(c *fiber.Ctx) error {
	n, err := h.Service.ContributorCount(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}

// Update godoc
// @Summary      Update a hoagie
// @Description  Only the creator or a collaborator may update.
// @Tags         hoagies
// @Accept       json
// @Produce      json
// @Param        id      path      string               true  "Hoagie ID"
// @Param        userId  path      string               true  "Acting user ID"
// @Param        body    body      dto.UpdateHoagieReq  true  "Fields to change"
// @Success      200     {object}  dto.HoagieResp
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      403     {object}  dto.ErrorResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Failure      429     {object}  dto.ErrorResponse
// @Router       /hoagies/{id}/user/{userId} [patch]
func (h *HoagieHandler) Update(c *fiber.Ctx) error {
	var body dto.UpdateHoagieReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	hoagie, err := h.Service.Update(c.UserContext(), c.Params("id"), c.Params("userId"), body.ToModel())
	if err != nil {
		return err
	}
	return c.JSON(hoagie)
}

// AddCollaborator godoc
// @Summary      Add a collaborator to a hoagie
// @Description  Only the creator may add collaborators. Adding an existing collaborator is a no-op.
// @Tags         hoagies
// @Produce      json
// @Param        hoagieId        path      string  true  "Hoagie ID"
// @Param        collaboratorId  path      string  true  "User to add"
// @Param        userId          path      string  true  "Acting user ID"
// @Success      200             {object}  dto.HoagieResp
// @Failure      400             {object}  dto.ErrorResponse
// @Failure      403             {object}  dto.ErrorResponse
// @Failure      404             {object}  dto.ErrorResponse
// @Router       /hoagies/{hoagieId}/collaborators/{collaboratorId}/user/{userId} [post]
func (h *HoagieHandler) AddCollaborator(c *fiber.Ctx) error {
	hoagie, err := h.Service.AddCollaborator(c.UserContext(), c.Params("hoagieId"), c.Params("collaboratorId"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(hoagie)
}

// RemoveCollaborator godoc
// @Summary      Remove a collaborator from a hoagie
// @Tags         hoagies
// @Produce      json
// @Param        hoagieId        path      string  true  "Hoagie ID"
// @Param        collaboratorId  path      string  true  "User to remove"
// @Param        userId          path      string  true  "Acting user ID"
// @Success      200             {object}  dto.HoagieResp
// @Failure      400             {object}  dto.ErrorResponse
// @Failure      403             {object}  dto.ErrorResponse
// @Failure      404             {object}  dto.ErrorResponse
// @Router       /hoagies/{hoagieId}/collaborators/{collaboratorId}/user/{userId} [delete]
func (h *HoagieHandler) RemoveCollaborator(c *fiber.Ctx) error {
	hoagie, err := h.Service.RemoveCollaborator(c.UserContext(), c.Params("hoagieId"), c.Params("collaboratorId"), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(hoagie)
}

// RecalculateAll godoc
// @Summary      Recalculate every hoagie's comment count
// @Tags         admin
// @Produce      json
// @Success      200  {object}  dto.RecomputeResponse
// @Router       /hoagies/admin/recalculate-comment-counts [post]
func (h *HoagieHandler) RecalculateAll(c *fiber.Ctx) error {
	n, err := h.Service.RecomputeAllCommentCounts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.RecomputeResponse{Message: "All comment counts recalculated successfully", Count: n})
}

// RecalculateOne godoc
// @Summary      Recalculate one hoagie's comment count
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "Hoagie ID"
// @Success      200  {object}  dto.CountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /hoagies/admin/{id}/recalculate-comment-count [post]
func (h *HoagieHandler) RecalculateOne(c *fiber.Ctx) error {
	n, err := h.Service.RecomputeCommentCount(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.CountResponse{Count: n})
}
