// Package user содержит бизнес-логику работы с пользователями:
// регистрация, проверка учётных данных при входе, чтение и изменение профиля.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/farm-management-backend/internal/lib/password"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// Ошибки бизнес-логики, различимые на границе обработчиков.
var (
	// ErrWrongPassword возвращается при несовпадении пароля. Это мягкий отказ,
	// отличный от "не аутентифицирован": пользователь есть, пароль не тот.
	ErrWrongPassword = errors.New("wrong password")
	// ErrNothingUpdated возвращается, когда обновление не затронуло ни одной строки.
	ErrNothingUpdated = errors.New("nothing updated")
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// RegisterUser добавляет нового пользователя.
	RegisterUser(ctx context.Context, user models.User) error
	// GetUserByID возвращает пользователя вместе с хэшем пароля.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	// GetProfile возвращает профиль без пароля.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	// UpdateProfile обновляет профиль и возвращает число затронутых строк.
	UpdateProfile(ctx context.Context, userID, nick, farmRegion, newPasswordHash string) (int64, error)
}

// UserService реализует бизнес-логику работы с пользователями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// Register хэширует пароль и сохраняет нового пользователя.
// Конфликт user_id поднимается наверх как repository.ErrUserExists.
func (s *UserService) Register(ctx context.Context, userID, pwd, nick, farmRegion string) error {
	passwordHash, err := password.GetHash(pwd)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		UserID:       userID,
		PasswordHash: passwordHash,
		Nick:         nick,
		FarmRegion:   farmRegion,
	}
	if err := s.repo.RegisterUser(ctx, user); err != nil {
		return err
	}

	s.log.Info("registered new user", slog.String("user_id", userID))
	return nil
}

// Login проверяет учётные данные и возвращает снимок профиля для сессии.
// Несуществующий пользователь и неверный пароль различимы только по ошибке,
// побочных эффектов ни один из путей не имеет.
func (s *UserService) Login(ctx context.Context, userID, pwd string) (*models.Identity, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := password.CompareHash(user.PasswordHash, pwd); err != nil {
		return nil, ErrWrongPassword
	}

	return &models.Identity{
		UserID:     user.UserID,
		Nick:       user.Nick,
		FarmRegion: user.FarmRegion,
	}, nil
}

// GetProfile возвращает профиль пользователя без пароля.
func (s *UserService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	return s.repo.GetProfile(ctx, userID)
}

// UpdateProfile повторно проверяет текущий пароль и применяет изменения.
// Nick и farm_region обновляются всегда, пароль — только если передан новый.
// Чтение-проверка-запись не атомарны относительно параллельного изменения
// той же строки: последняя завершившаяся запись побеждает.
func (s *UserService) UpdateProfile(ctx context.Context, userID, currentPwd, nick, farmRegion, newPwd string) error {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, currentPwd); err != nil {
		return ErrWrongPassword
	}

	var newPasswordHash string
	if newPwd != "" {
		newPasswordHash, err = password.GetHash(newPwd)
		if err != nil {
			return fmt.Errorf("failed to hash new password: %w", err)
		}
	}

	affected, err := s.repo.UpdateProfile(ctx, userID, nick, farmRegion, newPasswordHash)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNothingUpdated
	}

	s.log.Info("updated user profile", slog.String("user_id", userID))
	return nil
}
