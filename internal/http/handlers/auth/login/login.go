// Package login реализует HTTP-обработчик входа пользователя.
//
// Вход приходит обычной HTML-формой, поэтому отказы возвращаются
// страницей со script-alert и возвратом на форму входа, а успех —
// редиректом на главную с установкой cookie сессии. Несуществующий
// пользователь и неверный пароль различимы только текстом сообщения,
// побочных эффектов ни один из отказов не имеет.
package login

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/services/user"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// Service описывает интерфейс бизнес-логики входа.
type Service interface {
	Login(ctx context.Context, userID, pwd string) (*models.Identity, error)
}

// Sessions описывает интерфейс менеджера сессий, достаточный для входа.
type Sessions interface {
	Create(ctx context.Context, identity models.Identity) (string, error)
}

// Handler обрабатывает HTTP-запросы на вход.
type Handler struct {
	log        *slog.Logger
	service    Service
	sessions   Sessions
	cookieName string
	sessionTTL time.Duration
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service, sessions Sessions, cookieName string, sessionTTL time.Duration) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		sessions:   sessions,
		cookieName: cookieName,
		sessionTTL: sessionTTL,
	}
}

func alertAndBack(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<script>alert(%q); location.href="/login.html";</script>`, msg)
}

// ServeHTTP godoc
// @Summary Вход пользователя
// @Description Проверяет учётные данные, создаёт сессию и ставит cookie.
// @Tags Auth
// @Accept  x-www-form-urlencoded
// @Produce  html
// @Param id formData string true "Идентификатор пользователя"
// @Param pw formData string true "Пароль"
// @Success 302 "Редирект на главную страницу"
// @Failure 500 "Ошибка сервера"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		alertAndBack(w, http.StatusBadRequest, "bad request")
		return
	}
	id := r.FormValue("id")
	pw := r.FormValue("pw")
	log.Info("login attempt", slog.String("id", id))

	identity, err := h.service.Login(r.Context(), id, pw)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			log.Info("login failed: user id does not exist", slog.String("id", id))
			alertAndBack(w, http.StatusOK, "this user id does not exist.")
		case errors.Is(err, user.ErrWrongPassword):
			log.Info("login failed: wrong password", slog.String("id", id))
			alertAndBack(w, http.StatusOK, "wrong password.")
		default:
			log.Error("login failed", sl.Err(err))
			alertAndBack(w, http.StatusInternalServerError, "server error occurred, please try again later.")
		}
		return
	}

	key, err := h.sessions.Create(r.Context(), *identity)
	if err != nil {
		log.Error("failed to create session", sl.Err(err))
		alertAndBack(w, http.StatusInternalServerError, "server error occurred, please try again later.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    key,
		Path:     "/",
		MaxAge:   int(h.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	log.Info("login success", slog.String("user_id", identity.UserID))
	http.Redirect(w, r, "/", http.StatusFound)
}
