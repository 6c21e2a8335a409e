package handlers

import (
	apperrors "catatuang/internal/errors"
	"catatuang/internal/services/wallet"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func (h *WalletHandler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	wallets, err := h.walletService.List(c.UserContext(), userID)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, wallets)
}

func (h *WalletHandler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var input wallet.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	w, err := h.walletService.Create(c.UserContext(), userID, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, "Wallet created successfully", w)
}

func (h *WalletHandler) Get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	w, err := h.walletService.Get(c.UserContext(), userID, id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, w)
}

func (h *WalletHandler) Update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	var input wallet.UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	w, err := h.walletService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{Success: true, Message: "Wallet updated successfully", Data: w})
}

func (h *WalletHandler) Delete(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrWalletNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.walletService.Delete(c.UserContext(), userID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Message(c, "Wallet deleted successfully")
}
