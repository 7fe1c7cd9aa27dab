package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/otus-hla/social-network/internal/api/auth"
	"github.com/otus-hla/social-network/internal/types"
)

var _ UserService = (*UserServiceImpl)(nil)

// UserService orchestrates registration, profile lookup, and prefix
// search over the user directory.
type UserService interface {
	// RegisterUser validates the request, hashes the password, and
	// persists a new user with a freshly generated id.
	RegisterUser(ctx context.Context, req types.RegisterUserRequest) (uuid.UUID, error)

	// GetUserProfile returns the externally visible profile for a
	// well-formed id. A malformed id is types.ErrBadRequest, an
	// unknown one types.ErrNotFound.
	GetUserProfile(ctx context.Context, id string) (*types.UserProfile, error)

	// SearchUsers returns matching profiles ordered by id. No matches
	// is an empty list, not an error.
	SearchUsers(ctx context.Context, query types.UserSearchQuery) ([]types.UserProfile, error)
}

type UserServiceImpl struct {
	logger   *slog.Logger
	repo     UserRepo
	hasher   auth.PasswordHasher
	validate *validator.Validate
}

func NewUserService(repo UserRepo, hasher auth.PasswordHasher, logger *slog.Logger) *UserServiceImpl {
	return &UserServiceImpl{
		logger:   logger,
		repo:     repo,
		hasher:   hasher,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// RegisterUser replaces the plaintext password with its hash before
// the User value is ever constructed, so plaintext never reaches the
// repository.
func (s *UserServiceImpl) RegisterUser(ctx context.Context, req types.RegisterUserRequest) (uuid.UUID, error) {
	l := s.logger.With(slog.String("method", "RegisterUser"))

	if err := s.validate.Struct(req); err != nil {
		return uuid.Nil, fmt.Errorf("%v: %w", err, types.ErrBadRequest)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		l.ErrorContext(ctx, "Failed to hash password", slog.Any("error", err))
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:         uuid.New(),
		Password:   hashed,
		FirstName:  req.FirstName,
		SecondName: req.SecondName,
		Biography:  req.Biography,
		City:       req.City,
	}
	if req.Birthdate != nil {
		birthdate, err := time.Parse(types.BirthdateFormat, *req.Birthdate)
		if err != nil {
			return uuid.Nil, fmt.Errorf("malformed birthdate: %w", types.ErrBadRequest)
		}
		user.Birthdate = &birthdate
	}

	if err := s.repo.InsertUser(ctx, user); err != nil {
		return uuid.Nil, err
	}

	l.InfoContext(ctx, "User registered", slog.String("user_id", user.ID.String()))
	return user.ID, nil
}

func (s *UserServiceImpl) GetUserProfile(ctx context.Context, id string) (*types.UserProfile, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("malformed user id %q: %w", id, types.ErrBadRequest)
	}

	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return nil, err
		}
		s.logger.ErrorContext(ctx, "Failed to fetch user profile", slog.Any("error", err))
		return nil, fmt.Errorf("fetch user profile: %w", err)
	}

	profile := user.Profile()
	return &profile, nil
}

func (s *UserServiceImpl) SearchUsers(ctx context.Context, query types.UserSearchQuery) ([]types.UserProfile, error) {
	profiles, err := s.repo.SearchUsers(ctx, query)
	if err != nil {
		s.logger.ErrorContext(ctx, "User search failed", slog.Any("error", err))
		return nil, fmt.Errorf("search users: %w", err)
	}
	return profiles, nil
}
