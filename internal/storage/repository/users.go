package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ventureradar/venture-radar/internal/models"
)

// RegisterUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role, tier, trial_ends_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.Tier,
		user.TrialEndsAt).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email или ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role, tier, trial_ends_at, created_at
			  FROM users
			  WHERE email = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, email), op)
}

// GetUser возвращает пользователя по UID или ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT uid, name, email, password_hash, role, tier, trial_ends_at, created_at
			  FROM users
			  WHERE uid = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, userUID), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var trialEndsAt sql.NullTime
	var role, tier string
	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash,
		&role, &tier, &trialEndsAt, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Role = models.Role(role)
	u.Tier = models.Tier(tier)
	if trialEndsAt.Valid {
		u.TrialEndsAt = &trialEndsAt.Time
	}
	return u, nil
}

// UpdateUserTier обновляет тариф пользователя.
func (s *Storage) UpdateUserTier(ctx context.Context, userUID string, tier models.Tier) error {
	const op = "storage.UpdateUserTier"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET tier = $1 WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, tier, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpdateUserName обновляет отображаемое имя пользователя.
func (s *Storage) UpdateUserName(ctx context.Context, userUID, name string) error {
	const op = "storage.UpdateUserName"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users SET name = $1 WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, name, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserSettings возвращает настройки уведомлений пользователя,
// при отсутствии строки — значения по умолчанию.
func (s *Storage) GetUserSettings(ctx context.Context, userUID string) (*models.UserSettings, error) {
	const op = "storage.GetUserSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT user_uid, digest_emails, product_updates
			  FROM user_settings WHERE user_uid = $1`
	settings := &models.UserSettings{}
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(
		&settings.UserUID, &settings.DigestEmails, &settings.ProductUpdates)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.UserSettings{UserUID: userUID, DigestEmails: true, ProductUpdates: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// UpsertUserSettings сохраняет настройки уведомлений пользователя.
func (s *Storage) UpsertUserSettings(ctx context.Context, settings models.UserSettings) error {
	const op = "storage.UpsertUserSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO user_settings (user_uid, digest_emails, product_updates)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (user_uid)
			  DO UPDATE SET digest_emails = $2, product_updates = $3`
	if _, err := s.DB.ExecContext(ctx, query,
		settings.UserUID, settings.DigestEmails, settings.ProductUpdates); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetCrawlerSettings возвращает глобальные настройки краулера.
func (s *Storage) GetCrawlerSettings(ctx context.Context) (*models.CrawlerSettings, error) {
	const op = "storage.GetCrawlerSettings"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT interval_hours, sources_limit FROM crawler_settings WHERE id = 1`
	settings := &models.CrawlerSettings{}
	if err := s.DB.QueryRowContext(ctx, query).Scan(
		&settings.IntervalHours, &settings.SourcesLimit); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return settings, nil
}

// UpdateCrawlerSettings обновляет глобальные настройки краулера.
func (s *Storage) UpdateCrawlerSettings(ctx context.Context, settings models.CrawlerSettings) error {
	const op = "storage.UpdateCrawlerSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE crawler_settings SET interval_hours = $1, sources_limit = $2 WHERE id = 1`
	if _, err := s.DB.ExecContext(ctx, query, settings.IntervalHours, settings.SourcesLimit); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
