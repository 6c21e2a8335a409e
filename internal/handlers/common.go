package handlers

import (
	"strconv"
	"strings"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/middleware"
	"catatuang/internal/models"

	"github.com/gofiber/fiber/v2"
)

// extractUserID is a helper function to reduce duplication
func extractUserID(c *fiber.Ctx) (uint, error) {
	userID := middleware.UserID(c)
	if userID == 0 {
		return 0, fiber.ErrUnauthorized
	}
	return userID, nil
}

// paramID reads the :id route parameter. A malformed id answers like a
// missing resource.
func paramID(c *fiber.Ctx, notFound error) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, notFound
	}
	return uint(id), nil
}

// msgInvalidBody answers any body that does not decode into the handler's
// input, including a single field of the wrong JSON type.
const msgInvalidBody = "Invalid request format"

// queryDate parses an optional date query parameter.
func queryDate(c *fiber.Ctx, key string) (*models.Date, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	d, err := models.ParseDate(raw)
	if err != nil {
		return nil, apperrors.FieldError(key, "The "+label(key)+" field must be a valid date.")
	}
	return &d, nil
}

// queryUint parses an optional positive integer query parameter.
func queryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.FieldError(key, "The "+label(key)+" field must be an integer.")
	}
	id := uint(v)
	return &id, nil
}

func queryType(c *fiber.Ctx) *models.TransactionType {
	raw := c.Query("type")
	if raw == "" {
		return nil
	}
	t := models.TransactionType(raw)
	return &t
}

func label(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
