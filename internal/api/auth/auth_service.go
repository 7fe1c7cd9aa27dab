package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/otus-hla/social-network/internal/types"
)

var _ AuthService = (*AuthServiceImpl)(nil)

// UserPasswordGetter is the slice of the user repository the login
// flow needs: just the stored password hash.
type UserPasswordGetter interface {
	GetUserPassword(ctx context.Context, id uuid.UUID) (string, error)
}

// AuthService authenticates users and issues access tokens.
type AuthService interface {
	// Login verifies id/password credentials and returns a signed
	// access token.
	Login(ctx context.Context, id, password string) (string, error)
}

type AuthServiceImpl struct {
	logger *slog.Logger
	repo   UserPasswordGetter
	hasher PasswordHasher
	tokens *TokenService
}

func NewAuthService(repo UserPasswordGetter, hasher PasswordHasher, tokens *TokenService, logger *slog.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		logger: logger,
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login authenticates a user and returns an access token. Every
// credential failure collapses into types.ErrUnauthenticated so the
// caller cannot tell an unknown id from a wrong password.
func (s *AuthServiceImpl) Login(ctx context.Context, id, password string) (string, error) {
	l := s.logger.With(slog.String("method", "Login"))

	userID, err := uuid.Parse(id)
	if err != nil {
		return "", fmt.Errorf("malformed user id: %w", types.ErrUnauthenticated)
	}

	hash, err := s.repo.GetUserPassword(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return "", fmt.Errorf("unknown user: %w", types.ErrUnauthenticated)
		}
		l.ErrorContext(ctx, "Failed to fetch stored password", slog.Any("error", err))
		return "", fmt.Errorf("fetch stored password: %w", err)
	}

	if !s.hasher.Check(password, hash) {
		return "", fmt.Errorf("password mismatch: %w", types.ErrUnauthenticated)
	}

	token, err := s.tokens.CreateAccessToken(userID.String(), nil)
	if err != nil {
		l.ErrorContext(ctx, "Failed to issue access token", slog.Any("error", err))
		return "", fmt.Errorf("issue access token: %w", err)
	}

	return token, nil
}
