package farm

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/farm-management-backend/internal/config"
	"github.com/magabrotheeeer/farm-management-backend/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/farm-management-backend/internal/migrations"
	"github.com/magabrotheeeer/farm-management-backend/internal/session"
	pestservice "github.com/magabrotheeeer/farm-management-backend/internal/services/pest"
	treatmentservice "github.com/magabrotheeeer/farm-management-backend/internal/services/treatment"
	userservice "github.com/magabrotheeeer/farm-management-backend/internal/services/user"
	"github.com/magabrotheeeer/farm-management-backend/internal/storage/repository"
)

// App владеет ресурсами процесса: HTTP-сервером, пулом соединений с базой,
// менеджером сессий и, при включённых событиях, издателем RabbitMQ.
type App struct {
	server   *http.Server
	logger   *slog.Logger
	db       *repository.Storage
	sessions *session.Manager
	events   *rabbitmq.Publisher
}

// New собирает приложение. Любая ошибка инициализации ресурсов
// (пул соединений, миграции, Redis, RabbitMQ) фатальна для старта.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString, cfg.StorageMaxOpenConns)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	sessions, err := session.InitServer(ctx, cfg.RedisConnection, cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	var publisher *rabbitmq.Publisher
	var events treatmentservice.EventPublisher
	if cfg.EventsEnabled {
		publisher, err = rabbitmq.NewPublisher(cfg.RabbitURL, cfg.Exchange, cfg.RoutingKey)
		if err != nil {
			return nil, err
		}
		events = publisher
	}

	users := userservice.NewUserService(db, logger)
	treatments := treatmentservice.NewTreatmentService(db, events, logger)
	pests := pestservice.NewPestService(db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, users, treatments, pests, db,
		sessions, cfg.CookieName, cfg.SessionTTL, cfg.StaticDir)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:   srv,
		logger:   logger,
		db:       db,
		sessions: sessions,
		events:   publisher,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		if a.events != nil {
			_ = a.events.Close()
		}
		return err
	}
}
