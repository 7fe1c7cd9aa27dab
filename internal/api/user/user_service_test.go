package user

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/otus-hla/social-network/internal/types"
)

// MockUserRepo is a mock implementation of the UserRepo interface
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) InsertUser(ctx context.Context, user *types.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) GetUserPassword(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepo) GetUser(ctx context.Context, id uuid.UUID) (*types.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.User), args.Error(1)
}

func (m *MockUserRepo) SearchUsers(ctx context.Context, query types.UserSearchQuery) ([]types.UserProfile, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.UserProfile), args.Error(1)
}

// MockHasher is a mock implementation of the auth.PasswordHasher interface
type MockHasher struct {
	mock.Mock
}

func (m *MockHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockHasher) Check(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

func validRegisterRequest() types.RegisterUserRequest {
	birthdate := "1990-05-17"
	bio := "Likes chess"
	city := "Moscow"
	return types.RegisterUserRequest{
		Password:   "password123",
		FirstName:  "Ivan",
		SecondName: "Ivanov",
		Birthdate:  &birthdate,
		Biography:  &bio,
		City:       &city,
	}
}

func TestUserService_RegisterUser(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockHasher := new(MockHasher)
		service := NewUserService(mockRepo, mockHasher, logger)

		mockHasher.On("Hash", "password123").Return("hashed-password", nil).Once()
		mockRepo.On("InsertUser", ctx, mock.MatchedBy(func(u *types.User) bool {
			return u.ID != uuid.Nil &&
				u.Password == "hashed-password" &&
				u.FirstName == "Ivan" &&
				u.SecondName == "Ivanov" &&
				u.Birthdate != nil &&
				u.Birthdate.Format(types.BirthdateFormat) == "1990-05-17"
		})).Return(nil).Once()

		userID, err := service.RegisterUser(ctx, validRegisterRequest())

		assert.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, userID)
		mockRepo.AssertExpectations(t)
		mockHasher.AssertExpectations(t)
	})

	t.Run("OptionalFieldsMayBeAbsent", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockHasher := new(MockHasher)
		service := NewUserService(mockRepo, mockHasher, logger)

		mockHasher.On("Hash", "password123").Return("hashed-password", nil).Once()
		mockRepo.On("InsertUser", ctx, mock.MatchedBy(func(u *types.User) bool {
			return u.Birthdate == nil && u.Biography == nil && u.City == nil
		})).Return(nil).Once()

		req := types.RegisterUserRequest{
			Password:   "password123",
			FirstName:  "Ivan",
			SecondName: "Ivanov",
		}
		_, err := service.RegisterUser(ctx, req)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MissingRequiredFields", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockHasher := new(MockHasher)
		service := NewUserService(mockRepo, mockHasher, logger)

		for name, req := range map[string]types.RegisterUserRequest{
			"NoPassword":   {FirstName: "Ivan", SecondName: "Ivanov"},
			"NoFirstName":  {Password: "password123", SecondName: "Ivanov"},
			"NoSecondName": {Password: "password123", FirstName: "Ivan"},
		} {
			userID, err := service.RegisterUser(ctx, req)
			assert.ErrorIs(t, err, types.ErrBadRequest, name)
			assert.Equal(t, uuid.Nil, userID, name)
		}
		mockRepo.AssertNotCalled(t, "InsertUser")
		mockHasher.AssertNotCalled(t, "Hash")
	})

	t.Run("MalformedBirthdate", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockHasher := new(MockHasher)
		service := NewUserService(mockRepo, mockHasher, logger)

		req := validRegisterRequest()
		malformed := "17.05.1990"
		req.Birthdate = &malformed

		_, err := service.RegisterUser(ctx, req)

		assert.ErrorIs(t, err, types.ErrBadRequest)
		mockRepo.AssertNotCalled(t, "InsertUser")
	})

	t.Run("ConflictPassesThrough", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		mockHasher := new(MockHasher)
		service := NewUserService(mockRepo, mockHasher, logger)

		mockHasher.On("Hash", "password123").Return("hashed-password", nil).Once()
		mockRepo.On("InsertUser", ctx, mock.Anything).Return(types.ErrConflict).Once()

		userID, err := service.RegisterUser(ctx, validRegisterRequest())

		assert.ErrorIs(t, err, types.ErrConflict)
		assert.Equal(t, uuid.Nil, userID)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_GetUserProfile(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, new(MockHasher), logger)

		userID := uuid.New()
		birthdate := time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC)
		city := "Moscow"
		mockRepo.On("GetUser", ctx, userID).Return(&types.User{
			ID:         userID,
			Password:   "$2a$10$hash",
			FirstName:  "Ivan",
			SecondName: "Ivanov",
			Birthdate:  &birthdate,
			City:       &city,
		}, nil).Once()

		profile, err := service.GetUserProfile(ctx, userID.String())

		require.NoError(t, err)
		assert.Equal(t, userID, profile.ID)
		assert.Equal(t, "Ivan", profile.FirstName)
		assert.Equal(t, "Ivanov", profile.SecondName)
		require.NotNil(t, profile.Birthdate)
		assert.Equal(t, "1990-05-17", *profile.Birthdate)
		assert.Equal(t, &city, profile.City)
		mockRepo.AssertExpectations(t)
	})

	t.Run("MalformedID", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, new(MockHasher), logger)

		profile, err := service.GetUserProfile(ctx, "not-a-uuid")

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, types.ErrBadRequest)
		mockRepo.AssertNotCalled(t, "GetUser")
	})

	t.Run("NotFoundPassesThrough", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, new(MockHasher), logger)

		userID := uuid.New()
		mockRepo.On("GetUser", ctx, userID).Return(nil, types.ErrNotFound).Once()

		profile, err := service.GetUserProfile(ctx, userID.String())

		assert.Nil(t, profile)
		assert.ErrorIs(t, err, types.ErrNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestUserService_SearchUsers(t *testing.T) {
	logger := slog.Default()
	ctx := context.Background()

	t.Run("DelegatesToRepo", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, new(MockHasher), logger)

		query := types.UserSearchQuery{FirstName: "Iv", LastName: "Iva"}
		want := []types.UserProfile{{ID: uuid.New(), FirstName: "Ivan", SecondName: "Ivanov"}}
		mockRepo.On("SearchUsers", ctx, query).Return(want, nil).Once()

		got, err := service.SearchUsers(ctx, query)

		assert.NoError(t, err)
		assert.Equal(t, want, got)
		mockRepo.AssertExpectations(t)
	})

	t.Run("RepoErrorWrapped", func(t *testing.T) {
		mockRepo := new(MockUserRepo)
		service := NewUserService(mockRepo, new(MockHasher), logger)

		query := types.UserSearchQuery{FirstName: "Iv", LastName: "Iva"}
		mockRepo.On("SearchUsers", ctx, query).Return(nil, assert.AnError).Once()

		got, err := service.SearchUsers(ctx, query)

		assert.Nil(t, got)
		assert.ErrorIs(t, err, assert.AnError)
		mockRepo.AssertExpectations(t)
	})
}
