package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	apperrors "catatuang/internal/errors"
	"catatuang/internal/logger"
	"catatuang/internal/models"
	"catatuang/internal/repositories"
	"catatuang/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ParseToken(token string) (*models.UserClaims, error)
}

type RegisterInput struct {
	Name                 string  `json:"name"`
	Username             *string `json:"username"`
	Email                string  `json:"email"`
	Password             string  `json:"password"`
	PasswordConfirmation string  `json:"password_confirmation"`
}

// LoginInput accepts either an email address or a username in Login.
type LoginInput struct {
	Login    string `json:"login"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	User      *models.User `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"token_type"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type Service interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	Logout(ctx context.Context, userID uint) error
	// Authenticate verifies token and checks it was not revoked by a logout.
	Authenticate(ctx context.Context, token string) (*models.UserClaims, error)
	GetUserTokenVersion(ctx context.Context, userID uint) (int, error)
}

type service struct {
	userRepo repositories.UserRepository
	tokens   TokenIssuer
	log      *logger.Logger
}

func NewService(userRepo repositories.UserRepository, tokens TokenIssuer, log *logger.Logger) Service {
	if userRepo == nil {
		panic("user repository is required")
	}
	if tokens == nil {
		panic("token issuer is required")
	}
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.WithComponent(logger.ComponentAuth),
	}
}

func (s *service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = trimOptional(in.Username)

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
	v.Required("password", in.Password)
	if !v.Has("password") {
		v.Password("password", in.Password)
		v.Confirmed("password", in.Password, in.PasswordConfirmation)
	}
	if err := s.checkUnique(ctx, v, in.Email, in.Username); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("Failed to register user", err)
	}

	user := &models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		Password:     string(hashed),
		TokenVersion: 1,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperrors.ErrEmailTaken
		}
		s.log.ErrorContext(ctx, "register user failed", logger.FieldError, err)
		return nil, apperrors.Internal("Failed to register user", err)
	}

	s.log.InfoContext(ctx, "user registered", logger.FieldUserID, user.ID)
	return s.session(user)
}

// checkUnique adds a field error for a taken email or username.
func (s *service) checkUnique(ctx context.Context, v *validation.Validator, email string, username *string) error {
	if !v.Has("email") {
		taken, err := s.exists(s.userRepo.GetByEmail(ctx, email))
		if err != nil {
			return apperrors.Internal("Failed to register user", err)
		}
		v.Check(!taken, "email", "The email has already been taken.")
	}
	if username != nil && !v.Has("username") {
		taken, err := s.exists(s.userRepo.GetByUsername(ctx, *username))
		if err != nil {
			return apperrors.Internal("Failed to register user", err)
		}
		v.Check(!taken, "username", "The username has already been taken.")
	}
	return nil
}

func (s *service) exists(_ *models.User, err error) (bool, error) {
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, repositories.ErrUserNotFound):
		return false, nil
	}
	return false, err
}

func (s *service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	identifier := strings.TrimSpace(in.Login)
	if identifier == "" {
		identifier = strings.TrimSpace(in.Email)
	}

	v := validation.New()
	v.Required("login", identifier)
	v.Required("password", in.Password)
	if err := v.Err(); err != nil {
		return nil, err
	}

	user, err := s.getUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.log.InfoContext(ctx, "login failed: unknown identifier")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Internal("Failed to log in", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		s.log.InfoContext(ctx, "login failed: incorrect password", logger.FieldUserID, user.ID)
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.session(user)
}

func (s *service) Logout(ctx context.Context, userID uint) error {
	if err := s.userRepo.IncrementTokenVersion(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.Internal("Failed to log out", err)
	}
	return nil
}

func (s *service) Authenticate(ctx context.Context, token string) (*models.UserClaims, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken.Wrap(err)
	}

	version, err := s.GetUserTokenVersion(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	if version != claims.TokenVersion {
		return nil, apperrors.ErrInvalidToken
	}
	return claims, nil
}

func (s *service) GetUserTokenVersion(ctx context.Context, userID uint) (int, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return 0, apperrors.ErrUserNotFound
		}
		return 0, apperrors.Internal("Failed to load user", err)
	}
	return user.TokenVersion, nil
}

func (s *service) session(user *models.User) (*Session, error) {
	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		s.log.Error("error generating token", logger.FieldUserID, user.ID, logger.FieldError, err)
		return nil, apperrors.Internal("Failed to issue token", err)
	}
	return &Session{User: user, Token: token, TokenType: "Bearer", ExpiresAt: expiresAt}, nil
}

func (s *service) getUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	if strings.Contains(identifier, "@") {
		return s.userRepo.GetByEmail(ctx, strings.ToLower(identifier))
	}
	return s.userRepo.GetByUsername(ctx, identifier)
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
