package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/services/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, in auth.LoginInput) (*auth.Session, error) {
	args := m.Called(ctx, in)
	s, _ := args.Get(0).(*auth.Session)
	return s, args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.UserClaims, error) {
	args := m.Called(ctx, token)
	c, _ := args.Get(0).(*models.UserClaims)
	return c, args.Error(1)
}

func (m *MockAuthService) GetUserTokenVersion(ctx context.Context, userID uint) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func TestAuthMiddleware_Handler(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		setupMock  func(*MockAuthService)
		wantStatus int
	}{
		{
			name:       "missing header",
			setupMock:  func(*MockAuthService) {},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc",
			setupMock:  func(*MockAuthService) {},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "revoked token",
			header: "Bearer revoked",
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "revoked").Return(nil, apperrors.ErrInvalidToken)
			},
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good",
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "good").Return(&models.UserClaims{UserID: 42}, nil)
			},
			wantStatus: fiber.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockAuthService)
			tt.setupMock(svc)

			app := fiber.New()
			app.Use(NewAuthMiddleware(svc, nil).Handler)
			app.Get("/", func(c *fiber.Ctx) error {
				assert.Equal(t, uint(42), UserID(c))
				return c.SendStatus(fiber.StatusOK)
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			svc.AssertExpectations(t)
		})
	}
}
