// Package register реализует HTTP-обработчик регистрации пользователей.
//
// Конфликт user_id — исправимая клиентом ситуация, поэтому он возвращается
// мягким отказом, а не ошибкой сервера; ошибкой сервера остаются только
// настоящие сбои хранилища.
package register

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
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// Request — входные данные для регистрации
type Request struct {
	UserID     string `json:"user_id" validate:"required,min=3,max=50"`
	Pwd        string `json:"pwd" validate:"required,min=4"`
	Nick       string `json:"nick" validate:"required"`
	FarmRegion string `json:"farm_region" validate:"required"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, userID, pwd, nick, farmRegion string) error
}

// Handler обрабатывает HTTP-запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Регистрация пользователя
// @Description Создаёт нового пользователя с уникальным user_id.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 200 {object} response.Response "Успешная регистрация"
// @Failure 500 {object} response.Response "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Fail("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("user_id", req.UserID))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.service.Register(r.Context(), req.UserID, req.Pwd, req.Nick, req.FarmRegion); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Info("registration rejected: user id already taken", slog.String("user_id", req.UserID))
			render.JSON(w, r, response.Fail("this user id is already taken"))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Fail("internal server error"))
		return
	}

	log.Info("registration success", slog.String("user_id", req.UserID))
	render.JSON(w, r, response.OKWithRedirect(
		"registration completed successfully, redirecting to login page", "/"))
}
