package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// RegisterUser сохраняет нового пользователя в базу данных.
// Дата регистрации выставляется базой. Нарушение уникальности user_id
// возвращается как ErrUserExists, любые другие сбои — как обёрнутая ошибка хранилища.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) error {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tb_user (user_id, pwd, nick, farm_region, joined_at)
			  VALUES ($1, $2, $3, $4, NOW());`
	if _, err := s.DB.ExecContext(ctx, query,
		user.UserID, user.PasswordHash, user.Nick, user.FarmRegion); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByID возвращает пользователя по его user_id, включая хэш пароля.
// Используется при логине и при повторной проверке пароля перед изменением профиля.
func (s *Storage) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUserByID"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, pwd, nick, farm_region, joined_at
			  FROM tb_user
			  WHERE user_id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&u.UserID, &u.PasswordHash, &u.Nick, &u.FarmRegion, &u.JoinedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetProfile возвращает профиль пользователя без пароля.
// Хэш пароля по контракту никогда не покидает этот метод.
func (s *Storage) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	const op = "storage.GetProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_id, nick, farm_region
			  FROM tb_user
			  WHERE user_id = $1`
	p := &models.Profile{}
	row := s.DB.QueryRowContext(ctx, query, userID)
	if err := row.Scan(&p.UserID, &p.Nick, &p.FarmRegion); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProfile обновляет nick и farm_region пользователя и, если передан
// непустой newPasswordHash, заодно и пароль. Возвращает число затронутых строк:
// ноль означает, что обновлять было нечего (строка исчезла или гонка с удалением).
func (s *Storage) UpdateProfile(ctx context.Context, userID, nick, farmRegion, newPasswordHash string) (int64, error) {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tb_user SET nick = $1, farm_region = $2`
	args := []any{nick, farmRegion}
	if newPasswordHash != "" {
		query += `, pwd = $3 WHERE user_id = $4`
		args = append(args, newPasswordHash, userID)
	} else {
		query += ` WHERE user_id = $3`
		args = append(args, userID)
	}

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}
