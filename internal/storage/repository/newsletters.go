package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ventureradar/venture-radar/internal/models"
)

// ReadNewsletter возвращает выпуск рассылки по ID или ErrNotFound.
func (s *Storage) ReadNewsletter(ctx context.Context, id int) (*models.Newsletter, error) {
	const op = "storage.ReadNewsletter"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, vc_name, subject, received_at, summary, topics, companies_mentioned
			  FROM newsletters WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	n, err := scanNewsletter(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// ListNewsletters возвращает выпуски рассылок по фильтру, свежие первыми.
func (s *Storage) ListNewsletters(ctx context.Context, filter models.NewsletterFilter) ([]*models.Newsletter, error) {
	const op = "storage.ListNewsletters"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, vc_name, subject, received_at, summary, topics, companies_mentioned
			  FROM newsletters
			  WHERE $1 = '' OR subject ILIKE '%' || $1 || '%' OR vc_name ILIKE '%' || $1 || '%'
			  ORDER BY received_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, filter.Query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Newsletter
	for rows.Next() {
		n, err := scanNewsletter(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountNewsletters возвращает количество обработанных выпусков.
func (s *Storage) CountNewsletters(ctx context.Context) (int, error) {
	const op = "storage.CountNewsletters"
	var count int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM newsletters`).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}

// ListDigests возвращает элементы ленты дайджестов, свежие первыми.
func (s *Storage) ListDigests(ctx context.Context, limit int) ([]*models.Digest, error) {
	const op = "storage.ListDigests"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, source, category, published_at, summary
			  FROM digests
			  ORDER BY published_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Digest
	for rows.Next() {
		d := &models.Digest{}
		if err := rows.Scan(&d.ID, &d.Title, &d.Source, &d.Category,
			&d.PublishedAt, &d.Summary); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanNewsletter(scan func(dest ...any) error) (*models.Newsletter, error) {
	n := &models.Newsletter{}
	var topics, companies []byte
	if err := scan(&n.ID, &n.VCName, &n.Subject, &n.ReceivedAt, &n.Summary,
		&topics, &companies); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(topics, &n.Topics); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(companies, &n.CompaniesMentioned); err != nil {
		return nil, err
	}
	return n, nil
}
