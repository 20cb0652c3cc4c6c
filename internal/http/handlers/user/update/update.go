// Package update реализует HTTP-обработчик изменения профиля пользователя.
//
// Перед применением изменений текущий пароль проверяется повторно. После
// успешного обновления снимок сессии сразу освежается, чтобы следующий
// запрос user_info в той же сессии видел новые nick и farm_region.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/services/user"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// Request — входные данные для изменения профиля.
// NewPw необязателен: пустое значение означает "пароль не менять".
type Request struct {
	CurrentPw  string `json:"currentPw" validate:"required"`
	Nick       string `json:"nick" validate:"required"`
	FarmRegion string `json:"farm_region" validate:"required"`
	NewPw      string `json:"newPw"`
}

// Service описывает интерфейс бизнес-логики изменения профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userID, currentPwd, nick, farmRegion, newPwd string) error
}

// Sessions описывает интерфейс менеджера сессий, достаточный для обновления снимка.
type Sessions interface {
	Refresh(ctx context.Context, key, nick, farmRegion string) error
}

// Handler обрабатывает HTTP-запросы на изменение профиля.
type Handler struct {
	log      *slog.Logger
	service  Service
	sessions Sessions
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions Sessions) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		sessions: sessions,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменение профиля
// @Description Обновляет nick и farm_region, опционально пароль, после повторной проверки текущего пароля.
// @Tags User
// @Accept  json
// @Produce  json
// @Param request body Request true "Новые данные профиля"
// @Success 200 {object} response.Response "Профиль обновлён"
// @Failure 401 {object} response.Unauthorized "Требуется аутентификация"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /update_info [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.update"

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

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err := h.service.UpdateProfile(r.Context(), identity.UserID, req.CurrentPw, req.Nick, req.FarmRegion, req.NewPw)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrWrongPassword):
			log.Info("update rejected: current password mismatch", slog.String("user_id", identity.UserID))
			render.JSON(w, r, response.Fail("current password does not match, please try again"))
		case errors.Is(err, repository.ErrUserNotFound):
			log.Error("user row missing for active session", slog.String("user_id", identity.UserID))
			render.JSON(w, r, response.Fail("user information not found"))
		case errors.Is(err, user.ErrNothingUpdated):
			log.Info("update had no effect", slog.String("user_id", identity.UserID))
			render.JSON(w, r, response.Fail("update failed or nothing to change"))
		default:
			log.Error("failed to update profile", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("internal server error"))
		}
		return
	}

	if key, ok := middlewarectx.SessionKeyFromContext(r.Context()); ok {
		if err := h.sessions.Refresh(r.Context(), key, req.Nick, req.FarmRegion); err != nil {
			// Хранилище уже обновлено, поэтому запрос считается успешным;
			// устаревший снимок доживёт до следующего входа.
			log.Error("failed to refresh session snapshot", sl.Err(err))
		}
	}

	msg := "profile (nick, region) updated successfully"
	if req.NewPw != "" {
		msg = "profile and password updated successfully"
	}
	log.Info("profile updated", slog.String("user_id", identity.UserID))
	render.JSON(w, r, response.OK(msg))
}
