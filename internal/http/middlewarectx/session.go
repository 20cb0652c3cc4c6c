// Package middlewarectx содержит HTTP middleware для работы с сессиями.
//
// SessionMiddleware читает ключ сессии из cookie, загружает снимок профиля
// из менеджера сессий и кладёт его в контекст запроса. RequireAuth пропускает
// запрос дальше только при наличии снимка с непустым user_id, иначе
// отвечает HTTP 401 с фиксированным телом {"error": "authentication required"}.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/response"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
	"github.com/magabrotheeeer/farm-management-backend/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// Identity — ключ для снимка профиля в контексте
	Identity Key = "identity"
	// SessionKey — ключ для непрозрачного ключа сессии в контексте
	SessionKey Key = "session_key"
)

// IdentityFromContext достаёт снимок профиля из контекста запроса.
func IdentityFromContext(ctx context.Context) (*models.Identity, bool) {
	identity, ok := ctx.Value(Identity).(*models.Identity)
	return identity, ok
}

// SessionKeyFromContext достаёт ключ сессии из контекста запроса.
func SessionKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(SessionKey).(string)
	return key, ok
}

// SessionMiddleware возвращает HTTP middleware, который подгружает сессию по cookie.
//
// Отсутствие cookie, отсутствие сессии и её истечение неразличимы: во всех
// случаях запрос продолжается как анонимный, решение об отказе принимает
// RequireAuth. Middleware не имеет побочных эффектов, кроме логирования.
func SessionMiddleware(sessions Service, cookieName string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"

			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r)
				return
			}

			identity, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					log.Error("failed to load session",
						slog.String("op", op),
						slog.String("request_id", middleware.GetReqID(r.Context())),
						sl.Err(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), Identity, identity)
			ctx = context.WithValue(ctx, SessionKey, cookie.Value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth возвращает HTTP middleware — шлюз аутентификации.
//
// Пропускает запрос, только если в контексте есть снимок с непустым user_id.
// Никакого обращения к хранилищу здесь нет: решение принимается по контексту.
func RequireAuth(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireAuth"

			identity, ok := IdentityFromContext(r.Context())
			if !ok || identity.UserID == "" {
				log.Info("unauthenticated request rejected",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("path", r.URL.Path))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Unauthorized{Error: "authentication required"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
