package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/medranosoft/citamed/internal/clinic/domain"
	"github.com/medranosoft/citamed/internal/clinic/store"
	"github.com/medranosoft/citamed/pkg/cryptox"
	"github.com/medranosoft/citamed/pkg/idx"
	"github.com/medranosoft/citamed/pkg/jwtx"
	"github.com/medranosoft/citamed/pkg/slogx"
)

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserExists         = errors.New("user_exists")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrValidation         = errors.New("validation")
)

// UserService covers registration, login and password recovery.
type UserService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Issuer   string
	TokenTTL time.Duration
}

// Register creates a new patient account. Usernames and emails are folded to
// lower case so lookups are effectively case-insensitive.
func (s *UserService) Register(ctx context.Context, username, email, fullName, password string) (domain.PublicUser, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if username == "" || fullName == "" || password == "" {
		return domain.PublicUser{}, ErrValidation
	}
	if email == "" || !strings.Contains(email, "@") {
		return domain.PublicUser{}, ErrValidation
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.PublicUser{}, err
	}

	u := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         domain.RoleUser, // everyone starts as a patient
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.PublicUser{}, ErrUserExists
		}
		return domain.PublicUser{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		"user_id", u.ID,
		"username", u.Username,
	)
	return u.Public(), nil
}

// Login verifies the credentials and returns a signed token plus the public
// user. The login identifier may be a username or an email address. A missing
// user and a wrong password produce the same error so the endpoint cannot be
// used to enumerate accounts.
func (s *UserService) Login(ctx context.Context, login, password string) (string, domain.PublicUser, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	if login == "" || password == "" {
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	u, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, login)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.PublicUser{}, ErrInvalidCredentials
		}
		return "", domain.PublicUser{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		slogx.FromContext(ctx).Info("login failed", "username", u.Username)
		return "", domain.PublicUser{}, ErrInvalidCredentials
	}

	claims := jwtx.NewClaims(u.ID, u.Role, u.Username, u.FullName, s.Issuer, s.TokenTTL, time.Now())
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return "", domain.PublicUser{}, err
	}

	return token, u.Public(), nil
}

// ResetPassword replaces the password of the account with the given username.
// The caller only needs to know the username, so the surrounding route must
// be rate limited aggressively.
func (s *UserService) ResetPassword(ctx context.Context, username, newPassword string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || newPassword == "" {
		return ErrValidation
	}

	u, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("password reset", "user_id", u.ID)
	return nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
