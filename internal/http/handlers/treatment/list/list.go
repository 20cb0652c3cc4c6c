// Package list реализует HTTP-обработчик чтения журнала обработок
// текущего пользователя.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения журнала обработок.
type Service interface {
	List(ctx context.Context, userID string) ([]*models.TreatmentRecord, error)
}

// Handler обрабатывает HTTP-запросы на чтение журнала обработок.
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
// @Summary Журнал обработок текущего пользователя
// @Description Возвращает записи журнала обработок, свежие первыми.
// @Tags Treatment
// @Produce  json
// @Success 200 {object} response.Response "Записи журнала"
// @Failure 401 {object} response.Unauthorized "Требуется аутентификация"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /disinfestation/list [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.treatment.list"

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

	records, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		log.Error("failed to list treatment entries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(records))
}
