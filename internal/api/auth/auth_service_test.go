package auth

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/otus-hla/social-network/internal/types"
)

// MockPasswordRepo is a mock implementation of the UserPasswordGetter interface
type MockPasswordRepo struct {
	mock.Mock
}

func (m *MockPasswordRepo) GetUserPassword(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func TestLogin(t *testing.T) {
	logger := slog.Default()
	hasher := NewBcryptPasswordHasher()
	tokens := NewTokenService(testJWTConfig())

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockPasswordRepo)
		service := NewAuthService(mockRepo, hasher, tokens, logger)

		ctx := context.Background()
		userID := uuid.New()
		password := "password123"
		hashed, err := hasher.Hash(password)
		require.NoError(t, err)

		mockRepo.On("GetUserPassword", ctx, userID).Return(hashed, nil).Once()

		token, err := service.Login(ctx, userID.String(), password)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		mockRepo.AssertExpectations(t)

		// The issued token authenticates the same subject.
		subject, err := tokens.GetUserID(token)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), subject)
	})

	t.Run("UserNotFound", func(t *testing.T) {
		mockRepo := new(MockPasswordRepo)
		service := NewAuthService(mockRepo, hasher, tokens, logger)

		ctx := context.Background()
		userID := uuid.New()

		mockRepo.On("GetUserPassword", ctx, userID).Return("", types.ErrNotFound).Once()

		token, err := service.Login(ctx, userID.String(), "password123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("InvalidPassword", func(t *testing.T) {
		mockRepo := new(MockPasswordRepo)
		service := NewAuthService(mockRepo, hasher, tokens, logger)

		ctx := context.Background()
		userID := uuid.New()
		hashed, err := hasher.Hash("correct-password")
		require.NoError(t, err)

		mockRepo.On("GetUserPassword", ctx, userID).Return(hashed, nil).Once()

		token, err := service.Login(ctx, userID.String(), "wrong-password")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MalformedID", func(t *testing.T) {
		mockRepo := new(MockPasswordRepo)
		service := NewAuthService(mockRepo, hasher, tokens, logger)

		token, err := service.Login(context.Background(), "not-a-uuid", "password123")

		assert.Empty(t, token)
		assert.ErrorIs(t, err, types.ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "GetUserPassword")
	})

	t.Run("StorageFaultIsNotUnauthenticated", func(t *testing.T) {
		mockRepo := new(MockPasswordRepo)
		service := NewAuthService(mockRepo, hasher, tokens, logger)

		ctx := context.Background()
		userID := uuid.New()
		dbErr := errors.New("connection refused")

		mockRepo.On("GetUserPassword", ctx, userID).Return("", dbErr).Once()

		token, err := service.Login(ctx, userID.String(), "password123")

		assert.Empty(t, token)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, types.ErrUnauthenticated)
		assert.ErrorIs(t, err, dbErr)
		mockRepo.AssertExpectations(t)
	})
}
