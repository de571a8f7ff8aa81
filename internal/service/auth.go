package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/toggar/toggar-backend/internal/hash"
	"github.com/toggar/toggar-backend/internal/logging"
	"github.com/toggar/toggar-backend/internal/models"
	"github.com/toggar/toggar-backend/internal/repo"
	"github.com/toggar/toggar-backend/internal/tokens"
)

// ErrInvalidCredentials covers both an unknown email and a wrong
// password. Keeping them indistinguishable stops account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
}

type LoginResult struct {
	Token   string
	Account *models.Account
}

func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (uint, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if role == "" {
		role = models.RoleUser
	}

	if _, err := s.Repo.FindAccountByEmail(ctx, email); err == nil {
		return 0, repo.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		l.Error("register_failed", "reason", "email lookup failed", "error", err)
		return 0, err
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return 0, err
	}

	acc := models.Account{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
	}
	// The existence check above races with concurrent registrations; the
	// unique index on email settles it and CreateAccount reports the loss
	// as the same ErrEmailTaken.
	if err := s.Repo.CreateAccount(ctx, &acc); err != nil {
		if !errors.Is(err, repo.ErrEmailTaken) {
			l.Error("register_failed", "reason", "insert failed", "error", err)
		}
		return 0, err
	}

	return acc.ID, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	acc, err := s.Repo.FindAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		l.Error("login_failed", "reason", "email lookup failed", "error", err)
		return nil, err
	}

	if !hash.CheckPassword(acc.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := tokens.Issue(acc, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	return &LoginResult{Token: token, Account: acc}, nil
}
