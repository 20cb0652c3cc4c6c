package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// CreatePest добавляет запись в справочник вредителей и возвращает её pest_idx.
// Повторная регистрация имени возвращается как ErrPestExists.
func (s *Storage) CreatePest(ctx context.Context, pest models.DummyPest) (int, error) {
	const op = "storage.CreatePest"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newIdx int
	query := `INSERT INTO tb_pest (pest_name, pest_description, solution_info)
			  VALUES ($1, $2, $3)
			  RETURNING pest_idx;`
	if err := s.DB.QueryRowContext(ctx, query,
		pest.PestName, pest.PestDescription, pest.SolutionInfo).Scan(&newIdx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrPestExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newIdx, nil
}

// ListPests возвращает весь справочник вредителей, отсортированный по имени.
func (s *Storage) ListPests(ctx context.Context) ([]*models.Pest, error) {
	const op = "storage.ListPests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT pest_idx, pest_name, pest_description, solution_info, created_at
			  FROM tb_pest
			  ORDER BY pest_name ASC;`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.Pest
	for rows.Next() {
		var p models.Pest
		if err = rows.Scan(&p.PestIdx, &p.PestName, &p.PestDescription,
			&p.SolutionInfo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
