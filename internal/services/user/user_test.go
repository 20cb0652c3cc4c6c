package user

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/farm-management-backend/internal/lib/password"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) RegisterUser(ctx context.Context, user models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *RepoMock) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *RepoMock) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}
func (m *RepoMock) UpdateProfile(ctx context.Context, userID, nick, farmRegion, newPasswordHash string) (int64, error) {
	args := m.Called(ctx, userID, nick, farmRegion, newPasswordHash)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func mustHash(t *testing.T, pwd string) string {
	t.Helper()
	hash, err := password.GetHash(pwd)
	require.NoError(t, err)
	return hash
}

func TestUserService_Register(t *testing.T) {
	t.Run("пароль сохраняется только в виде bcrypt-хэша", func(t *testing.T) {
		repo := new(RepoMock)
		var saved models.User
		repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
			saved = u
			return u.UserID == "u1" && u.Nick == "N" && u.FarmRegion == "R"
		})).Return(nil).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.Register(context.Background(), "u1", "p1", "N", "R")
		require.NoError(t, err)

		assert.NotEqual(t, "p1", saved.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.PasswordHash), []byte("p1")))
		repo.AssertExpectations(t)
	})

	t.Run("конфликт user_id поднимается наверх", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("RegisterUser", mock.Anything, mock.Anything).
			Return(repository.ErrUserExists).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.Register(context.Background(), "u1", "p1", "N", "R")
		assert.ErrorIs(t, err, repository.ErrUserExists)
	})
}

func TestUserService_Login(t *testing.T) {
	storedHash := mustHash(t, "p1")

	tests := []struct {
		name      string
		userID    string
		pwd       string
		setupMock func(*RepoMock)
		wantErr   error
		wantNick  string
	}{
		{
			name:   "успешный вход возвращает снимок профиля",
			userID: "u1",
			pwd:    "p1",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
					UserID: "u1", PasswordHash: storedHash, Nick: "N", FarmRegion: "R",
				}, nil).Once()
			},
			wantNick: "N",
		},
		{
			name:   "несуществующий пользователь",
			userID: "ghost",
			pwd:    "p1",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByID", mock.Anything, "ghost").
					Return(nil, repository.ErrUserNotFound).Once()
			},
			wantErr: repository.ErrUserNotFound,
		},
		{
			name:   "неверный пароль",
			userID: "u1",
			pwd:    "wrong",
			setupMock: func(m *RepoMock) {
				m.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
					UserID: "u1", PasswordHash: storedHash, Nick: "N", FarmRegion: "R",
				}, nil).Once()
			},
			wantErr: ErrWrongPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tt.setupMock(repo)

			svc := NewUserService(repo, newNoopLogger())
			identity, err := svc.Login(context.Background(), tt.userID, tt.pwd)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, identity)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.userID, identity.UserID)
				assert.Equal(t, tt.wantNick, identity.Nick)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	storedHash := mustHash(t, "current")

	t.Run("неверный текущий пароль не доходит до записи", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
			UserID: "u1", PasswordHash: storedHash,
		}, nil).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.UpdateProfile(context.Background(), "u1", "wrong", "N2", "R2", "")

		assert.ErrorIs(t, err, ErrWrongPassword)
		repo.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("без нового пароля хранилищу уходит пустой хэш", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
			UserID: "u1", PasswordHash: storedHash,
		}, nil).Once()
		repo.On("UpdateProfile", mock.Anything, "u1", "N2", "R2", "").
			Return(int64(1), nil).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.UpdateProfile(context.Background(), "u1", "current", "N2", "R2", "")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("новый пароль перехэшируется", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
			UserID: "u1", PasswordHash: storedHash,
		}, nil).Once()
		repo.On("UpdateProfile", mock.Anything, "u1", "N2", "R2", mock.MatchedBy(func(hash string) bool {
			return hash != "" && hash != "newpwd" &&
				bcrypt.CompareHashAndPassword([]byte(hash), []byte("newpwd")) == nil
		})).Return(int64(1), nil).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.UpdateProfile(context.Background(), "u1", "current", "N2", "R2", "newpwd")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("ноль затронутых строк — отдельный исход", func(t *testing.T) {
		repo := new(RepoMock)
		repo.On("GetUserByID", mock.Anything, "u1").Return(&models.User{
			UserID: "u1", PasswordHash: storedHash,
		}, nil).Once()
		repo.On("UpdateProfile", mock.Anything, "u1", "N2", "R2", "").
			Return(int64(0), nil).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.UpdateProfile(context.Background(), "u1", "current", "N2", "R2", "")

		assert.ErrorIs(t, err, ErrNothingUpdated)
	})

	t.Run("ошибка хранилища проходит без подмены", func(t *testing.T) {
		repo := new(RepoMock)
		storageErr := errors.New("db down")
		repo.On("GetUserByID", mock.Anything, "u1").Return(nil, storageErr).Once()

		svc := NewUserService(repo, newNoopLogger())
		err := svc.UpdateProfile(context.Background(), "u1", "current", "N2", "R2", "")

		assert.ErrorIs(t, err, storageErr)
	})
}
