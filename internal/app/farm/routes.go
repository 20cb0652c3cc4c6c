// Package farm собирает приложение фермерского бэкенда: маршруты,
// middleware, хранилище, сессии и HTTP-сервер.
package farm

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/auth/logout"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/pages"
	pestcreate "github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/pest/create"
	pestlist "github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/pest/list"
	treatmentcreate "github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/treatment/create"
	treatmentlist "github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/treatment/list"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/user/info"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/farm-management-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/farm-management-backend/internal/session"
	pestservice "github.com/magabrotheeeer/farm-management-backend/internal/services/pest"
	treatmentservice "github.com/magabrotheeeer/farm-management-backend/internal/services/treatment"
	userservice "github.com/magabrotheeeer/farm-management-backend/internal/services/user"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	users *userservice.UserService,
	treatments *treatmentservice.TreatmentService,
	pests *pestservice.PestService,
	db *repository.Storage,
	sessions *session.Manager,
	cookieName string,
	sessionTTL time.Duration,
	staticDir string,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.SessionMiddleware(sessions, cookieName, logger),
	)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, users).ServeHTTP)
	r.Post("/login", login.New(logger, users, sessions, cookieName, sessionTTL).ServeHTTP)
	r.Get("/logout", logout.New(logger, sessions, cookieName).ServeHTTP)
	r.Get("/pest/list", pestlist.New(logger, pests).ServeHTTP)
	r.Get("/health", health.New(logger, db).ServeHTTP)

	// Группа за шлюзом аутентификации
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.RequireAuth(logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger))
		r.Get("/user_info", info.New(logger, users).ServeHTTP)
		r.Post("/update_info", update.New(logger, users, sessions).ServeHTTP)
		r.Post("/disinfestation_register", treatmentcreate.New(logger, treatments).ServeHTTP)
		r.Get("/disinfestation/list", treatmentlist.New(logger, treatments).ServeHTTP)
		r.Post("/pest", pestcreate.New(logger, pests).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())

	// Главная страница и статика; неизвестные пути уходят в статику,
	// которая отвечает фиксированным 404.
	r.Get("/", pages.NewMenu(logger).ServeHTTP)
	r.NotFound(pages.NewStatic(logger, staticDir).ServeHTTP)
}
