// Package pest содержит бизнес-логику справочника вредителей.
package pest

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// PestRepository определяет методы для работы со справочником вредителей.
type PestRepository interface {
	// CreatePest добавляет запись справочника и возвращает её pest_idx.
	CreatePest(ctx context.Context, pest models.DummyPest) (int, error)
	// ListPests возвращает весь справочник.
	ListPests(ctx context.Context) ([]*models.Pest, error)
}

// PestService реализует бизнес-логику справочника вредителей.
type PestService struct {
	repo PestRepository
	log  *slog.Logger
}

// NewPestService создает новый экземпляр PestService.
func NewPestService(repo PestRepository, log *slog.Logger) *PestService {
	return &PestService{
		repo: repo,
		log:  log,
	}
}

// Create добавляет запись в справочник и возвращает её pest_idx.
func (s *PestService) Create(ctx context.Context, req models.DummyPest) (int, error) {
	idx, err := s.repo.CreatePest(ctx, req)
	if err != nil {
		return 0, err
	}
	s.log.Info("registered new pest", slog.String("pest_name", req.PestName), slog.Int("pest_idx", idx))
	return idx, nil
}

// List возвращает все записи справочника.
func (s *PestService) List(ctx context.Context) ([]*models.Pest, error) {
	return s.repo.ListPests(ctx)
}
