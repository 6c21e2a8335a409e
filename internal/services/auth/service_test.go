package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.user(m.Called(ctx, username))
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, userID uint) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserRepository) user(args mock.Arguments) (*models.User, error) {
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newService(repo *MockUserRepository) Service {
	return NewService(repo, utils.NewTokenManager("test-secret", time.Hour), nil)
}

func TestService_Register(t *testing.T) {
	username := "demo"

	tests := []struct {
		name      string
		input     RegisterInput
		setupMock func(*MockUserRepository)
		wantErr   error
		fields    []string
	}{
		{
			name: "successful registration",
			input: RegisterInput{
				Name: "Demo", Username: &username, Email: " Demo@Catatuang.com ",
				Password: "password123", PasswordConfirmation: "password123",
			},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(nil, repositories.ErrUserNotFound)
				r.On("GetByUsername", mock.Anything, "demo").Return(nil, repositories.ErrUserNotFound)
				r.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Email == "demo@catatuang.com" && u.Password != "password123" && u.TokenVersion == 1
				})).Return(nil)
			},
		},
		{
			name: "invalid fields",
			input: RegisterInput{
				Name: "", Email: "nope", Password: "short", PasswordConfirmation: "short",
			},
			setupMock: func(*MockUserRepository) {},
			fields:    []string{"name", "email", "password"},
		},
		{
			name: "confirmation mismatch",
			input: RegisterInput{
				Name: "Demo", Email: "demo@catatuang.com",
				Password: "password123", PasswordConfirmation: "password124",
			},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(nil, repositories.ErrUserNotFound)
			},
			fields: []string{"password"},
		},
		{
			name: "email and username taken",
			input: RegisterInput{
				Name: "Demo", Username: &username, Email: "demo@catatuang.com",
				Password: "password123", PasswordConfirmation: "password123",
			},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(&models.User{ID: 9}, nil)
				r.On("GetByUsername", mock.Anything, "demo").Return(&models.User{ID: 9}, nil)
			},
			fields: []string{"email", "username"},
		},
		{
			name: "duplicate detected on insert",
			input: RegisterInput{
				Name: "Demo", Email: "demo@catatuang.com",
				Password: "password123", PasswordConfirmation: "password123",
			},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(nil, repositories.ErrUserNotFound)
				r.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)
			},
			wantErr: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			session, err := newService(repo).Register(context.Background(), tt.input)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case len(tt.fields) > 0:
				de, ok := apperrors.As(err)
				require.True(t, ok, "got %v", err)
				assert.Equal(t, apperrors.KindValidation, de.Kind)
				for _, f := range tt.fields {
					assert.Contains(t, de.Fields, f)
				}
			default:
				require.NoError(t, err)
				assert.NotEmpty(t, session.Token)
				assert.Equal(t, "Bearer", session.TokenType)
				assert.Equal(t, "demo@catatuang.com", session.User.Email)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Login(t *testing.T) {
	user := &models.User{ID: 4, Email: "demo@catatuang.com", Password: hashed(t, "password123"), TokenVersion: 2}

	tests := []struct {
		name      string
		input     LoginInput
		setupMock func(*MockUserRepository)
		wantErr   error
	}{
		{
			name:  "by email",
			input: LoginInput{Login: "DEMO@catatuang.com", Password: "password123"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(user, nil)
			},
		},
		{
			name:  "by email field",
			input: LoginInput{Email: "demo@catatuang.com", Password: "password123"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(user, nil)
			},
		},
		{
			name:  "by username",
			input: LoginInput{Login: "demo", Password: "password123"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByUsername", mock.Anything, "demo").Return(user, nil)
			},
		},
		{
			name:  "wrong password",
			input: LoginInput{Login: "demo", Password: "password124"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByUsername", mock.Anything, "demo").Return(user, nil)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
		{
			name:  "unknown user",
			input: LoginInput{Login: "ghost@catatuang.com", Password: "password123"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "ghost@catatuang.com").Return(nil, repositories.ErrUserNotFound)
			},
			wantErr: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)

			session, err := newService(repo).Login(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, apperrors.KindUnauthorized, apperrors.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(4), session.User.ID)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_AuthenticateHonoursLogout(t *testing.T) {
	ctx := context.Background()
	user := &models.User{ID: 4, Email: "demo@catatuang.com", Password: hashed(t, "password123"), TokenVersion: 1}

	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "demo@catatuang.com").Return(user, nil)
	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.User{ID: 4, TokenVersion: 1}, nil).Once()
	repo.On("IncrementTokenVersion", mock.Anything, uint(4)).Return(nil)
	repo.On("GetByID", mock.Anything, uint(4)).Return(&models.User{ID: 4, TokenVersion: 2}, nil)

	svc := newService(repo)
	session, err := svc.Login(ctx, LoginInput{Login: "demo@catatuang.com", Password: "password123"})
	require.NoError(t, err)

	claims, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, uint(4), claims.UserID)

	require.NoError(t, svc.Logout(ctx, 4))

	_, err = svc.Authenticate(ctx, session.Token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestService_AuthenticateRejects(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(*MockUserRepository)
		wantKind  apperrors.Kind
	}{
		{
			name: "user deleted",
			setupMock: func(r *MockUserRepository) {
				r.On("GetByID", mock.Anything, uint(4)).Return(nil, repositories.ErrUserNotFound)
			},
			wantKind: apperrors.KindUnauthorized,
		},
		{
			name: "storage failure",
			setupMock: func(r *MockUserRepository) {
				r.On("GetByID", mock.Anything, uint(4)).Return(nil, errors.New("db down"))
			},
			wantKind: apperrors.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			tokens := utils.NewTokenManager("test-secret", time.Hour)
			token, _, err := tokens.GenerateToken(&models.User{ID: 4, TokenVersion: 1})
			require.NoError(t, err)

			_, err = NewService(repo, tokens, nil).Authenticate(context.Background(), token)
			assert.Equal(t, tt.wantKind, apperrors.KindOf(err))
		})
	}

	_, err := newService(new(MockUserRepository)).Authenticate(context.Background(), "garbage")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
