package handlers

import (
	"catatuang/internal/services/auth"
	"catatuang/internal/services/user"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService auth.Service
	userService user.Service
}

func NewAuthHandler(authService auth.Service, userService user.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input auth.RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	session, err := h.authService.Register(c.UserContext(), input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, "User registered successfully", session)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input auth.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	session, err := h.authService.Login(c.UserContext(), input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{
		Success: true,
		Message: "Login successful",
		Data:    session,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	if err := h.authService.Logout(c.UserContext(), userID); err != nil {
		return utils.Error(c, err)
	}
	return utils.Message(c, "Logged out successfully")
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	u, err := h.userService.GetByID(c.UserContext(), userID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, u)
}

func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var input user.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	u, err := h.userService.UpdateProfile(c.UserContext(), userID, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{
		Success: true,
		Message: "Profile updated successfully",
		Data:    u,
	})
}
