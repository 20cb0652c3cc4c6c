// Package create реализует HTTP-обработчик регистрации вредителя в справочнике.
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

	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики справочника вредителей.
type Service interface {
	Create(ctx context.Context, req models.DummyPest) (int, error)
}

// Handler обрабатывает HTTP-запросы на регистрацию вредителя.
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

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.pest.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyPest
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

	idx, err := h.service.Create(r.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrPestExists) {
			log.Info("pest already registered", slog.String("pest_name", req.PestName))
			render.JSON(w, r, response.Fail("this pest is already registered"))
			return
		}
		log.Error("failed to create pest", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	log.Info("pest registered", slog.Int("pest_idx", idx))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message":  "pest information registered successfully",
		"pest_idx": idx,
	}))
}
