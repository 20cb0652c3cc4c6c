// Package session реализует менеджер пользовательских сессий поверх Redis.
//
// Сессия — это непрозрачный ключ (uuid) и прикреплённый к нему снимок
// профиля (models.Identity). Наличие снимка с непустым user_id — единственное
// доказательство аутентификации: отдельного булева флага "залогинен" нет,
// поэтому рассинхронизация двух флагов, как в исходной системе, невозможна.
// Отсутствие ключа, истечение TTL и "никогда не входил" неразличимы.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/farm-management-backend/internal/config"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// ErrNoSession возвращается, когда по ключу нет действующей сессии.
var ErrNoSession = errors.New("no active session")

const keyPrefix = "session:"

// Manager владеет состоянием сессий: никакой другой компонент
// не изменяет его напрямую.
type Manager struct {
	db  *redis.Client
	ttl time.Duration
}

// InitServer подключается к Redis и возвращает менеджер сессий.
// Ошибка подключения фатальна для старта процесса.
func InitServer(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Manager, error) {
	const op = "session.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Manager{db: db, ttl: ttl}, nil
}

// Create создаёт новую сессию для прошедшего проверку пользователя
// и возвращает её непрозрачный ключ.
func (m *Manager) Create(ctx context.Context, identity models.Identity) (string, error) {
	const op = "session.Create"
	key := uuid.New().String()
	jsonData, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := m.db.Set(ctx, keyPrefix+key, jsonData, m.ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// Get возвращает снимок профиля по ключу сессии.
// Любое отсутствие снимка трактуется как ErrNoSession.
func (m *Manager) Get(ctx context.Context, key string) (*models.Identity, error) {
	const op = "session.Get"
	val, err := m.db.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var identity models.Identity
	if err = json.Unmarshal([]byte(val), &identity); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if identity.UserID == "" {
		return nil, ErrNoSession
	}
	return &identity, nil
}

// Refresh перезаписывает изменяемые поля снимка, сохраняя user_id.
// Вызывается сразу после успешного обновления профиля, чтобы снимок
// не расходился с хранилищем. TTL сессии при этом продлевается.
func (m *Manager) Refresh(ctx context.Context, key, nick, farmRegion string) error {
	const op = "session.Refresh"
	identity, err := m.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNoSession) {
			return ErrNoSession
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	identity.Nick = nick
	identity.FarmRegion = farmRegion

	jsonData, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := m.db.Set(ctx, keyPrefix+key, jsonData, m.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Destroy удаляет сессию. Операция идемпотентна: удаление
// отсутствующего ключа не является ошибкой.
func (m *Manager) Destroy(ctx context.Context, key string) error {
	const op = "session.Destroy"
	if err := m.db.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
