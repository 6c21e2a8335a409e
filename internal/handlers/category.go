package handlers

import (
	apperrors "catatuang/internal/errors"
	"catatuang/internal/services/category"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	categoryService category.Service
}

func NewCategoryHandler(categoryService category.Service) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List accepts an optional ?type=income|expense filter.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	categories, err := h.categoryService.List(c.UserContext(), userID, queryType(c))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, categories)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var input category.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	cat, err := h.categoryService.Create(c.UserContext(), userID, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, "Category created successfully", cat)
}

func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	cat, err := h.categoryService.Get(c.UserContext(), userID, id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	var input category.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	cat, err := h.categoryService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{Success: true, Message: "Category updated successfully", Data: cat})
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrCategoryNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.categoryService.Delete(c.UserContext(), userID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Message(c, "Category deleted successfully")
}
