package handlers

import (
	apperrors "catatuang/internal/errors"
	"catatuang/internal/services/transaction"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// List handles GET /transactions?start_date&end_date&type&wallet_id&page.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	filter := transaction.Filter{
		Type: queryType(c),
		Page: c.QueryInt("page", 1),
	}
	if filter.StartDate, err = queryDate(c, "start_date"); err != nil {
		return utils.Error(c, err)
	}
	if filter.EndDate, err = queryDate(c, "end_date"); err != nil {
		return utils.Error(c, err)
	}
	if filter.WalletID, err = queryUint(c, "wallet_id"); err != nil {
		return utils.Error(c, err)
	}

	page, err := h.transactionService.List(c.UserContext(), userID, filter)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, page)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var input transaction.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	tx, err := h.transactionService.Create(c.UserContext(), userID, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Created(c, "Transaction created successfully", tx)
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	tx, err := h.transactionService.Get(c.UserContext(), userID, id)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, tx)
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	var input transaction.Input
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, msgInvalidBody)
	}

	tx, err := h.transactionService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Respond(c, fiber.StatusOK, utils.Envelope{Success: true, Message: "Transaction updated successfully", Data: tx})
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}
	id, err := paramID(c, apperrors.ErrTransactionNotFound)
	if err != nil {
		return utils.Error(c, err)
	}

	if err := h.transactionService.Delete(c.UserContext(), userID, id); err != nil {
		return utils.Error(c, err)
	}
	return utils.Message(c, "Transaction deleted successfully")
}

// Summary handles GET /transactions-summary?start_date&end_date.
func (h *TransactionHandler) Summary(c *fiber.Ctx) error {
	userID, err := extractUserID(c)
	if err != nil {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	var period transaction.Period
	if period.StartDate, err = queryDate(c, "start_date"); err != nil {
		return utils.Error(c, err)
	}
	if period.EndDate, err = queryDate(c, "end_date"); err != nil {
		return utils.Error(c, err)
	}

	summary, err := h.transactionService.Summary(c.UserContext(), userID, period)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, summary)
}
