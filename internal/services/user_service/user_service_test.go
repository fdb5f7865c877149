package services

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"galeria/internal/domain/models"
	"galeria/internal/storage"
	"galeria/internal/transport/http/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user models.User) (uuid.UUID, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockUserRepository) UserByIdentifier(ctx context.Context, identifier string) (models.User, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserById(ctx context.Context, userID uuid.UUID) (models.User, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.User), args.Error(1)
}

func TestUserService_RegisterNewUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	input := dto.UserRegisterInput{
		Name:     "ana",
		Email:    "ana@example.com",
		Password: "secret-password",
	}

	t.Run("successful registration hashes password", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("SaveUser", ctx, mock.MatchedBy(func(u models.User) bool {
			return u.Email == input.Email &&
				bcrypt.CompareHashAndPassword(u.Password, []byte(input.Password)) == nil
		})).Return(userID, nil).Once()

		service := NewUserService(slog.Default(), repo)

		id, err := service.RegisterNewUser(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, userID, id)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate user", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("SaveUser", ctx, mock.Anything).
			Return(uuid.Nil, storage.ErrUserExists).Once()

		service := NewUserService(slog.Default(), repo)

		_, err := service.RegisterNewUser(ctx, input)

		assert.ErrorIs(t, err, ErrUserExist)
	})
}

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	passHash, err := bcrypt.GenerateFromPassword([]byte("secret-password"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.New(),
		Name:     "ana",
		Email:    "ana@example.com",
		Password: passHash,
	}

	tests := []struct {
		name        string
		identifier  string
		password    string
		mockSetup   func(repo *MockUserRepository)
		expectedErr error
	}{
		{
			name:       "login by email",
			identifier: "ana@example.com",
			password:   "secret-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UserByIdentifier", ctx, "ana@example.com").Return(user, nil).Once()
			},
		},
		{
			name:       "login by name",
			identifier: "ana",
			password:   "secret-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UserByIdentifier", ctx, "ana").Return(user, nil).Once()
			},
		},
		{
			name:       "wrong password",
			identifier: "ana",
			password:   "not-the-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UserByIdentifier", ctx, "ana").Return(user, nil).Once()
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			// Неизвестный пользователь неотличим от неверного пароля
			name:       "unknown user",
			identifier: "nadie",
			password:   "secret-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UserByIdentifier", ctx, "nadie").
					Return(models.User{}, storage.ErrUserNotFound).Once()
			},
			expectedErr: ErrInvalidCredentials,
		},
		{
			name:       "repository failure",
			identifier: "ana",
			password:   "secret-password",
			mockSetup: func(repo *MockUserRepository) {
				repo.On("UserByIdentifier", ctx, "ana").
					Return(models.User{}, errors.New("db down")).Once()
			},
			expectedErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.mockSetup(repo)
			service := NewUserService(slog.Default(), repo)

			got, err := service.Login(ctx, tt.identifier, tt.password)

			if tt.expectedErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedErr.Error())
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_GetUserById(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserById", ctx, userID).
			Return(models.User{ID: userID, Name: "ana"}, nil).Once()

		service := NewUserService(slog.Default(), repo)

		user, err := service.GetUserById(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "ana", user.Name)
	})

	t.Run("missing", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetUserById", ctx, userID).
			Return(models.User{}, storage.ErrUserNotFound).Once()

		service := NewUserService(slog.Default(), repo)

		_, err := service.GetUserById(ctx, userID)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
