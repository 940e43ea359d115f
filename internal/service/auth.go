package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/misthy/shop-api/internal/hash"
	"github.com/misthy/shop-api/internal/logging"
	"github.com/misthy/shop-api/internal/models"
	"github.com/misthy/shop-api/internal/repo"
	"github.com/misthy/shop-api/internal/token"
)

type AuthService struct {
	Repo   *repo.GormRepo
	Hasher *hash.Hasher
	Tokens *token.Issuer
	Events EventPublisher
}

type LoginResult struct {
	Token    string
	Email    string
	Username string
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) error {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || email == "" || password == "" {
		return ErrValidation
	}

	// Advisory pre-check: the unique index on email stays authoritative.
	exists, err := s.Repo.EmailExists(ctx, email)
	if err != nil {
		l.Error("register_error", "reason", "cannot check email", "error", err)
		return fmt.Errorf("register: %w", err)
	}
	if exists {
		return ErrEmailTaken
	}

	pwHash, err := s.Hasher.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return fmt.Errorf("register: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
	}
	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			// Lost the insert race, same outcome as the pre-check.
			return ErrEmailTaken
		}
		l.Error("register_error", "reason", "cannot create user", "error", err)
		return fmt.Errorf("register: %w", err)
	}

	publish(ctx, s.Events, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_registered",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("register_success", "userID", user.ID)
	return nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	if email == "" || password == "" {
		return nil, ErrValidation
	}

	user, err := s.Repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			// Same error as a wrong password, the caller must not learn
			// which half of the pair was bad.
			return nil, ErrInvalidCredentials
		}
		l.Error("login_error", "reason", "cannot load user", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.Hasher.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	signed, err := s.Tokens.Issue(user.ID, user.Email)
	if err != nil {
		l.Error("login_error", "reason", "cannot issue token", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	publish(ctx, s.Events, "user_events", fmt.Sprint(user.ID), map[string]interface{}{
		"type":     "user_logged_in",
		"userID":   user.ID,
		"username": user.Username,
	})

	l.Info("login_success", "userID", user.ID)
	return &LoginResult{
		Token:    signed,
		Email:    user.Email,
		Username: user.Username,
	}, nil
}

// Profile resolves the user behind a verified token's subject.
func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.Repo.GetUserByID(ctx, userID)
}
