// Package logout реализует HTTP-обработчик выхода пользователя.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
)

// Sessions описывает интерфейс менеджера сессий, достаточный для выхода.
type Sessions interface {
	Destroy(ctx context.Context, key string) error
}

// Handler обрабатывает HTTP-запросы на выход.
// Операция идемпотентна: выход без действующей сессии — не ошибка,
// в любом случае запрос завершается редиректом на главную без сессии.
type Handler struct {
	log        *slog.Logger
	sessions   Sessions
	cookieName string
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, sessions Sessions, cookieName string) *Handler {
	return &Handler{
		log:        log,
		sessions:   sessions,
		cookieName: cookieName,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if cookie, err := r.Cookie(h.cookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			// Сессию не удалось удалить из хранилища, но cookie всё равно
			// гасим: для клиента выход обязан выглядеть завершённым.
			log.Error("failed to destroy session", sl.Err(err))
		} else {
			log.Info("logout success")
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusFound)
}
