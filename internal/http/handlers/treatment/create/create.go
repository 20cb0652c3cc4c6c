// Package create реализует HTTP-обработчик регистрации записи журнала обработок.
//
// Все обязательные поля проверяются до какого-либо обращения к хранилищу;
// отсутствие поля — мягкий отказ без серверного статуса ошибки.
package create

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
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/services/treatment"
)

// Service описывает интерфейс бизнес-логики журнала обработок.
type Service interface {
	Create(ctx context.Context, userID string, req models.DummyTreatmentEntry) error
}

// Handler обрабатывает HTTP-запросы на регистрацию записи обработки.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация записи обработки
// @Description Добавляет запись журнала обработок для текущего пользователя.
// @Tags Treatment
// @Accept  json
// @Produce  json
// @Param request body models.DummyTreatmentEntry true "Данные обработки"
// @Success 200 {object} response.Response "Запись добавлена"
// @Failure 401 {object} response.Unauthorized "Требуется аутентификация"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /disinfestation_register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.treatment.create"

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

	var req models.DummyTreatmentEntry
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("user_id", identity.UserID))

	if err := h.validate.Struct(req); err != nil {
		log.Info("required fields missing", sl.Err(err))
		render.JSON(w, r, response.Fail("all required fields must be filled in"))
		return
	}

	if err := h.service.Create(r.Context(), identity.UserID, req); err != nil {
		switch {
		case errors.Is(err, treatment.ErrInvalidDate):
			log.Info("invalid treatment date", slog.String("date", req.Date))
			render.JSON(w, r, response.Fail("treatment date is not a valid date"))
		case errors.Is(err, treatment.ErrNothingInserted):
			log.Error("insert had no effect", slog.String("user_id", identity.UserID))
			render.JSON(w, r, response.Fail("failed to register the record (no rows affected)"))
		default:
			log.Error("failed to create treatment entry", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Fail("internal server error"))
		}
		return
	}

	log.Info("treatment entry registered", slog.String("user_id", identity.UserID))
	render.JSON(w, r, response.OK("treatment record registered successfully, returning to main page"))
}
