package controllers

import (
	"github.com/gofiber/fiber/v2"

	"hoagiehub/dto"
	"hoagiehub/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

// Create godoc
// @Summary      Create a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateUserReq  true  "User payload"
// @Success      201   {object}  models.User
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var body dto.CreateUserReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	u, err := h.Service.Create(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(u)
}

// Login godoc
// @Summary      Login with email
// @Description  Accounts created with a password must also send it.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      dto.LoginReq  true  "Credentials"
// @Success      200   {object}  dto.LoginResp
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var body dto.LoginReq
	if err := parseBody(c, &body); err != nil {
		return err
	}

	resp, err := h.Service.Login(c.UserContext(), body)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Get all users with pagination
// @Tags         users
// @Produce      json
// @Param        page   query     int  false  "Page number"  default(1)
// @Param        limit  query     int  false  "Items per page"  default(10) maximum(100)
// @Success      200    {object}  dto.Page[models.User]
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
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

// Search godoc
// @Summary      Search users by name or email
// @Tags         users
// @Produce      json
// @Param        q      query     string  true   "Case-insensitive substring"
// @Param        page   query     int     false  "Page number"  default(1)
// @Param        limit  query     int     false  "Items per page"  default(10) maximum(100)
// @Success      200    {object}  dto.Page[models.User]
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      429    {object}  dto.ErrorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c *fiber.Ctx) error {
	p, err := pageQuery(c)
	if err != nil {
		return err
	}

	page, err := h.Service.Search(c.UserContext(), c.Query("q"), p)
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Get godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  models.User
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *fiber.Ctx) error {
	u, err := h.Service.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(u)
}
