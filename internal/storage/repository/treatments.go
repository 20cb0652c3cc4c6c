package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/farm-management-backend/internal/models"
)

// CreateTreatmentEntry добавляет запись в журнал обработок и возвращает
// число затронутых строк. Ровно одна строка означает успех; ноль — вставка
// не дала эффекта, это отдельный нефатальный исход, а не ошибка хранилища.
func (s *Storage) CreateTreatmentEntry(ctx context.Context, entry models.TreatmentEntry) (int64, error) {
	const op = "storage.CreateTreatmentEntry"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tb_disinfestation
			      (user_id, pest_idx, disf_at, chemical_name, dosage, disf_memo)
			  VALUES ($1, $2, $3, $4, $5, $6);`
	res, err := s.DB.ExecContext(ctx, query,
		entry.UserID, entry.PestIdx, entry.TreatedAt,
		entry.ChemicalName, entry.Dosage, entry.Memo)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// ListTreatmentEntries возвращает журнал обработок одного пользователя,
// свежие записи первыми. Пустой журнал — не ошибка.
func (s *Storage) ListTreatmentEntries(ctx context.Context, userID string) ([]*models.TreatmentRecord, error) {
	const op = "storage.ListTreatmentEntries"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT disf_idx, user_id, pest_idx, disf_at, chemical_name, dosage, disf_memo
			  FROM tb_disinfestation
			  WHERE user_id = $1
			  ORDER BY disf_at DESC;`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()
	var result []*models.TreatmentRecord
	for rows.Next() {
		var r models.TreatmentRecord
		if err = rows.Scan(&r.DisfIdx, &r.UserID, &r.PestIdx, &r.TreatedAt,
			&r.ChemicalName, &r.Dosage, &r.Memo); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &r)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
