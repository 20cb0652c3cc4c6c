package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// Service описывает интерфейс менеджера сессий, достаточный для middleware:
// чтение снимка профиля по непрозрачному ключу сессии.
type Service interface {
	Get(ctx context.Context, key string) (*models.Identity, error)
}
