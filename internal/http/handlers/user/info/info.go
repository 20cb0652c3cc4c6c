// Package info реализует HTTP-обработчик чтения профиля текущего пользователя.
//
// Идентификатор берётся из снимка сессии, профиль перечитывается из хранилища.
// Пароль в ответ не попадает по контракту репозитория.
package info

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики чтения профиля.
type Service interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// Handler обрабатывает HTTP-запросы на чтение профиля.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает user_id, nick и farm_region без пароля.
// @Tags User
// @Produce  json
// @Success 200 {object} response.Response "Профиль пользователя"
// @Failure 401 {object} response.Unauthorized "Требуется аутентификация"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /user_info [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.info"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	// Сюда запрос попадает только через шлюз аутентификации,
	// поэтому отсутствие снимка — сбой конфигурации маршрутов.
	identity, ok := middlewarectx.IdentityFromContext(r.Context())
	if !ok || identity.UserID == "" {
		log.Error("identity not found in context")
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	profile, err := h.service.GetProfile(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Сессия есть, а строки пользователя нет: данные разъехались.
			log.Error("user row missing for active session", slog.String("user_id", identity.UserID))
			render.JSON(w, r, response.Fail("user information not found"))
			return
		}
		log.Error("failed to get profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithUser(profile))
}
