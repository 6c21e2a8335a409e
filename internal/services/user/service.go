package user

import (
	"context"
	"errors"
	"strings"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/validation"
)

type UpdateProfileInput struct {
	Name     string  `json:"name"`
	Username *string `json:"username"`
	Email    string  `json:"email"`
}

type Service interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*models.User, error)
}

type service struct {
	repo repositories.UserRepository
	log  *logger.Logger
}

func NewService(repo repositories.UserRepository, log *logger.Logger) Service {
	if repo == nil {
		panic("repo is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{repo: repo, log: log.WithComponent(logger.ComponentAuth)}
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("Failed to load profile", err)
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username != nil {
		u := strings.TrimSpace(*in.Username)
		in.Username = &u
		if u == "" {
			in.Username = nil
		}
	}

	v := validation.New()
	v.Required("name", in.Name)
	v.MaxLength("name", in.Name, validation.MaxUserFieldLength)
	v.Required("email", in.Email)
	if !v.Has("email") {
		v.Email("email", in.Email)
		v.MaxLength("email", in.Email, validation.MaxUserFieldLength)
	}
	if in.Username != nil {
		v.MaxLength("username", *in.Username, validation.MaxUserFieldLength)
	}

	if !v.Has("email") && in.Email != user.Email {
		if err := s.checkTaken(v, "email", id)(s.repo.GetByEmail(ctx, in.Email)); err != nil {
			return nil, err
		}
	}
	if in.Username != nil && !v.Has("username") && (user.Username == nil || *user.Username != *in.Username) {
		if err := s.checkTaken(v, "username", id)(s.repo.GetByUsername(ctx, *in.Username)); err != nil {
			return nil, err
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Email = in.Email
	user.Username = in.Username
	if err := s.repo.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrEmailTaken
		}
		s.log.ErrorContext(ctx, "update profile failed", logger.FieldUserID, id, logger.FieldError, err)
		return nil, apperrors.Internal("Failed to update profile", err)
	}
	return user, nil
}

// checkTaken records a field error when the lookup found another user.
func (s *service) checkTaken(v *validation.Validator, field string, self uint) func(*models.User, error) error {
	return func(other *models.User, err error) error {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			return nil
		case err != nil:
			return apperrors.Internal("Failed to update profile", err)
		}
		v.Check(other.ID == self, field, "The "+field+" has already been taken.")
		return nil
	}
}
