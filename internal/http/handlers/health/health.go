// Package health реализует проверку готовности сервиса: процесс жив
// и база данных отвечает с примигрированной схемой.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
)

// ReadinessChecker описывает проверку готовности хранилища.
type ReadinessChecker interface {
	CheckDatabaseReady(ctx context.Context) error
}

// Handler обрабатывает HTTP-запросы проверки готовности.
type Handler struct {
	log *slog.Logger
	db  ReadinessChecker
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, db ReadinessChecker) *Handler {
	return &Handler{
		log: log,
		db:  db,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := h.db.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database is not ready", sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Fail("database is not ready"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
