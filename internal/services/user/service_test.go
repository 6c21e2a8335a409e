package user

import (
	"context"
	"testing"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/models"
	"catatuang/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
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

func TestService_UpdateProfile(t *testing.T) {
	demo := "demo"
	taken := "taken"

	tests := []struct {
		name      string
		input     UpdateProfileInput
		setupMock func(*MockUserRepository)
		fields    []string
	}{
		{
			name:  "rename keeps own email",
			input: UpdateProfileInput{Name: "Demo Baru", Email: "demo@catatuang.com", Username: &demo},
			setupMock: func(r *MockUserRepository) {
				r.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Name == "Demo Baru"
				})).Return(nil)
			},
		},
		{
			name:  "new email is free",
			input: UpdateProfileInput{Name: "Demo", Email: "NEW@catatuang.com"},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "new@catatuang.com").Return(nil, repositories.ErrUserNotFound)
				r.On("Update", mock.Anything, mock.Anything).Return(nil)
			},
		},
		{
			name:  "email and username of another user",
			input: UpdateProfileInput{Name: "Demo", Email: "other@catatuang.com", Username: &taken},
			setupMock: func(r *MockUserRepository) {
				r.On("GetByEmail", mock.Anything, "other@catatuang.com").Return(&models.User{ID: 2}, nil)
				r.On("GetByUsername", mock.Anything, "taken").Return(&models.User{ID: 2}, nil)
			},
			fields: []string{"email", "username"},
		},
		{
			name:      "invalid",
			input:     UpdateProfileInput{Name: " ", Email: "x"},
			setupMock: func(*MockUserRepository) {},
			fields:    []string{"name", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("GetByID", mock.Anything, uint(1)).
				Return(&models.User{ID: 1, Name: "Demo", Email: "demo@catatuang.com", Username: &demo}, nil)
			tt.setupMock(repo)

			user, err := NewService(repo, nil).UpdateProfile(context.Background(), 1, tt.input)
			if len(tt.fields) > 0 {
				de, ok := apperrors.As(err)
				require.True(t, ok, "got %v", err)
				for _, f := range tt.fields {
					assert.Contains(t, de.Fields, f)
				}
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input.Name, user.Name)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_GetByIDMissing(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, uint(5)).Return(nil, repositories.ErrUserNotFound)

	_, err := NewService(repo, nil).GetByID(context.Background(), 5)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
