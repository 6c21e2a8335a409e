// Package middleware provides HTTP middleware components for the application.
package middleware

import (
	"strings"

	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/services/auth"
	"catatuang/internal/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	LocalsClaims = "claims"
	LocalsUserID = "userID"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	authService auth.Service
	log         *logger.Logger
}

func NewAuthMiddleware(authService auth.Service, log *logger.Logger) *AuthMiddleware {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthMiddleware{
		authService: authService,
		log:         log.WithComponent(logger.ComponentAuth),
	}
}

// Handler checks for:
// - Presence of Authorization header with Bearer token
// - Valid JWT signature and expiry
// - Token version matches current user version
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return utils.Unauthorized(c, "Unauthenticated.")
	}

	claims, err := m.authService.Authenticate(c.UserContext(), strings.TrimSpace(tokenString))
	if err != nil {
		m.log.DebugContext(c.UserContext(), "token rejected",
			logger.FieldRequestID, c.Locals("requestid"),
			logger.FieldError, err)
		return utils.Error(c, err)
	}

	c.Locals(LocalsClaims, claims)
	c.Locals(LocalsUserID, claims.UserID)
	return c.Next()
}

// UserID returns the authenticated user's id, 0 when the request is anonymous.
func UserID(c *fiber.Ctx) uint {
	claims, ok := c.Locals(LocalsClaims).(*models.UserClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}
