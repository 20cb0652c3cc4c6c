// Package repository реализует хранилище данных на основе PostgreSQL
// для фермерского бэкенда. Предоставляет методы работы с пользователями,
// журналом обработок и справочником вредителей.
package repository

import (
	"context"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"database/sql"
)

// Ошибки уровня хранилища, на которые опирается бизнес-логика.
var (
	// ErrUserExists возвращается при нарушении уникальности user_id.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound возвращается, если строка пользователя отсутствует.
	ErrUserNotFound = errors.New("user not found")
	// ErrPestExists возвращается при попытке повторной регистрации вредителя.
	ErrPestExists = errors.New("pest already exists")
)

// Storage инкапсулирует пул соединений с PostgreSQL.
// Пул создаётся один раз при старте процесса и передаётся репозиториям
// явно, а не через глобальное состояние.
type Storage struct {
	DB *sql.DB
}

// New создаёт пул соединений к PostgreSQL с заданной верхней границей.
// При исчерпании пула вызовы ждут освобождения соединения.
func New(storageConnectionString string, maxOpenConns int) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных: соединение живо
// и схема примигрирована. На это опирается конечная точка /health.
func (s *Storage) CheckDatabaseReady(ctx context.Context) error {
	const op = "storage.CheckDatabaseReady"
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'tb_user'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table tb_user is missing", op)
	}
	return nil
}
