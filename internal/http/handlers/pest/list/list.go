// Package list реализует HTTP-обработчик чтения справочника вредителей.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// Service описывает интерфейс бизнес-логики справочника вредителей.
type Service interface {
	List(ctx context.Context) ([]*models.Pest, error)
}

// Handler обрабатывает HTTP-запросы на чтение справочника.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pest.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	pests, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list pests", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	render.JSON(w, r, response.OKWithData(pests))
}
