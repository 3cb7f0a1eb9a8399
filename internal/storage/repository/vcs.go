package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ventureradar/venture-radar/internal/models"
)

// CreateVC вставляет новый фонд в каталог и возвращает его ID.
func (s *Storage) CreateVC(ctx context.Context, vc models.VC) (int, error) {
	const op = "storage.CreateVC"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	focus, err := json.Marshal(vc.Focus)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	stage, err := json.Marshal(vc.Stage)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO vcs (name, website, focus, stage, location, description,
			      fund_size, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id`
	var newID int
	err = s.DB.QueryRowContext(ctx, query,
		vc.Name, vc.Website, focus, stage, vc.Location, vc.Description,
		vc.FundSize, vc.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadVC возвращает фонд по ID или ErrNotFound.
func (s *Storage) ReadVC(ctx context.Context, id int) (*models.VC, error) {
	const op = "storage.ReadVC"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, website, focus, stage, location, description,
			      fund_size, status, created_at, updated_at
			  FROM vcs WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	vc, err := scanVC(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vc, nil
}

// ListVCs возвращает фонды, подходящие под фильтр, с пагинацией.
// Пустой Query означает весь каталог.
func (s *Storage) ListVCs(ctx context.Context, filter models.VCFilter) ([]*models.VC, error) {
	const op = "storage.ListVCs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, website, focus, stage, location, description,
			      fund_size, status, created_at, updated_at
			  FROM vcs
			  WHERE $1 = '' OR name ILIKE '%' || $1 || '%'
			      OR location ILIKE '%' || $1 || '%'
			      OR focus::text ILIKE '%' || $1 || '%'
			  ORDER BY name
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.VC
	for rows.Next() {
		vc, err := scanVC(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, vc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateVC обновляет данные фонда по ID и возвращает количество изменённых строк.
func (s *Storage) UpdateVC(ctx context.Context, vc models.VC, id int) (int, error) {
	const op = "storage.UpdateVC"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	focus, err := json.Marshal(vc.Focus)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	stage, err := json.Marshal(vc.Stage)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `UPDATE vcs
			  SET name = $1, website = $2, focus = $3, stage = $4, location = $5,
			      description = $6, fund_size = $7, updated_at = NOW()
			  WHERE id = $8`
	result, err := s.DB.ExecContext(ctx, query,
		vc.Name, vc.Website, focus, stage, vc.Location, vc.Description,
		vc.FundSize, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveVC удаляет фонд по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveVC(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveVC"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM vcs WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CountVCs возвращает количество фондов в каталоге.
func (s *Storage) CountVCs(ctx context.Context) (int, error) {
	const op = "storage.CountVCs"
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM vcs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

func scanVC(scan func(dest ...any) error) (*models.VC, error) {
	vc := &models.VC{}
	var focus, stage []byte
	if err := scan(&vc.ID, &vc.Name, &vc.Website, &focus, &stage, &vc.Location,
		&vc.Description, &vc.FundSize, &vc.Status, &vc.CreatedAt, &vc.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(focus, &vc.Focus); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stage, &vc.Stage); err != nil {
		return nil, err
	}
	return vc, nil
}
