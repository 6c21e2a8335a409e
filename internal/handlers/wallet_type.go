package handlers

import (
	apperrors "catatuang/internal/errors"
	"catatuang/internal/services/wallettype"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletTypeHandler struct {
	walletTypeService wallettype.Service
}

func NewWalletTypeHandler(walletTypeService wallettype.Service) *WalletTypeHandler {
	return &WalletTypeHandler{walletTypeService: walletTypeService}
}

func (h *WalletTypeHandler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	types, err := h.walletTypeService.List(c.UserContext(), userID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, types)
}

func (h *WalletTypeHandler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var input wallettype.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	wt, err := h.walletTypeService.Create(c.UserContext(), userID, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, "Wallet type created successfully", wt)
}

func (h *WalletTypeHandler) Get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletTypeNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	wt, err := h.walletTypeService.Get(c.UserContext(), userID, id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, wt)
}

func (h *WalletTypeHandler) Update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletTypeNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	var input wallettype.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	wt, err := h.walletTypeService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{Success: true, Message: "Wallet type updated successfully", Data: wt})
}

func (h *WalletTypeHandler) Delete(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletTypeNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.walletTypeService.Delete(c.UserContext(), userID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Message(c, "Wallet type deleted successfully")
}
