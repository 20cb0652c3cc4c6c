// Package treatment содержит бизнес-логику журнала обработок: сборку
// составного memo, вставку записи и публикацию события о новой записи.
package treatment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/farm-management-backend/internal/lib/sl"
	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// Ошибки бизнес-логики журнала обработок.
var (
	// ErrInvalidDate возвращается при неразборчивой дате обработки.
	ErrInvalidDate = errors.New("invalid treatment date")
	// ErrNothingInserted возвращается, когда вставка затронула не одну строку.
	// Это нефатальный исход, отличный от ошибки хранилища.
	ErrNothingInserted = errors.New("nothing inserted")
)

// TreatmentRepository определяет методы для работы с журналом обработок.
type TreatmentRepository interface {
	// CreateTreatmentEntry добавляет запись и возвращает число затронутых строк.
	CreateTreatmentEntry(ctx context.Context, entry models.TreatmentEntry) (int64, error)
	// ListTreatmentEntries возвращает журнал одного пользователя, свежие записи первыми.
	ListTreatmentEntries(ctx context.Context, userID string) ([]*models.TreatmentRecord, error)
}

// EventPublisher публикует доменные события. Может отсутствовать.
type EventPublisher interface {
	Publish(message any) error
}

// TreatmentService реализует бизнес-логику журнала обработок.
type TreatmentService struct {
	repo   TreatmentRepository
	events EventPublisher
	log    *slog.Logger
}

// NewTreatmentService создает новый экземпляр TreatmentService.
// events может быть nil — тогда события не публикуются.
func NewTreatmentService(repo TreatmentRepository, events EventPublisher, log *slog.Logger) *TreatmentService {
	return &TreatmentService{
		repo:   repo,
		events: events,
		log:    log,
	}
}

// ComposeMemo собирает составной текст memo из площади, погоды и заметок.
// Формат фиксированный, на него опираются тесты: "[area: X, weather: Y] notes".
func ComposeMemo(areaTreated, weather, notes string) string {
	return strings.TrimSpace(fmt.Sprintf("[area: %s, weather: %s] %s", areaTreated, weather, notes))
}

// Create разбирает дату, собирает memo и вставляет запись журнала для userID.
// Наличие обязательных полей проверяется до вызова, на границе HTTP.
// Событие о созданной записи публикуется по возможности: сбой публикации
// логируется, но не отменяет успешную вставку.
func (s *TreatmentService) Create(ctx context.Context, userID string, req models.DummyTreatmentEntry) error {
	treatedAt, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDate, req.Date)
	}

	entry := models.TreatmentEntry{
		UserID:       userID,
		PestIdx:      req.PestType,
		TreatedAt:    treatedAt,
		ChemicalName: req.ChemicalName,
		Dosage:       req.DilutionRate,
		Memo:         ComposeMemo(req.AreaTreated, req.Weather, req.Notes),
	}

	affected, err := s.repo.CreateTreatmentEntry(ctx, entry)
	if err != nil {
		return err
	}
	if affected != 1 {
		return ErrNothingInserted
	}

	s.log.Info("created treatment entry", slog.String("user_id", userID))

	if s.events != nil {
		event := map[string]any{
			"user_id":       userID,
			"pest_idx":      req.PestType,
			"treated_at":    req.Date,
			"chemical_name": req.ChemicalName,
		}
		if err := s.events.Publish(event); err != nil {
			s.log.Warn("failed to publish treatment event", sl.Err(err))
		}
	}
	return nil
}

// List возвращает журнал обработок пользователя userID.
// Чужие записи сюда попасть не могут: выборка всегда ограничена владельцем.
func (s *TreatmentService) List(ctx context.Context, userID string) ([]*models.TreatmentRecord, error) {
	return s.repo.ListTreatmentEntries(ctx, userID)
}
