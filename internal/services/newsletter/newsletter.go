// Package newsletter содержит бизнес-логику чтения обработанных рассылок
// и ленты дайджестов для дашборда.
package newsletter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ventureradar/venture-radar/internal/models"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

// ErrNotFound возвращается, когда выпуск с указанным ID отсутствует.
var ErrNotFound = errors.New("newsletter not found")

const (
	defaultLimit = 50
	maxLimit     = 200
)

// NewsletterRepository определяет методы хранения рассылок и дайджестов.
type NewsletterRepository interface {
	// ReadNewsletter возвращает выпуск по ID или repository.ErrNotFound.
	ReadNewsletter(ctx context.Context, id int) (*models.Newsletter, error)
	// ListNewsletters возвращает выпуски по фильтру.
	ListNewsletters(ctx context.Context, filter models.NewsletterFilter) ([]*models.Newsletter, error)
	// ListDigests возвращает ленту дайджестов.
	ListDigests(ctx context.Context, limit int) ([]*models.Digest, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// NewsletterService реализует операции чтения рассылок.
type NewsletterService struct {
	repo  NewsletterRepository
	cache Cache
	log   *slog.Logger
}

// NewNewsletterService создает новый экземпляр NewsletterService.
func NewNewsletterService(repo NewsletterRepository, cache Cache, log *slog.Logger) *NewsletterService {
	return &NewsletterService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Read возвращает выпуск по ID, используя кеш или репозиторий.
func (s *NewsletterService) Read(ctx context.Context, id int) (*models.Newsletter, error) {
	var result *models.Newsletter
	cacheKey := fmt.Sprintf("newsletter:%d", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.ReadNewsletter(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache newsletter", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает выпуски по фильтру, свежие первыми.
func (s *NewsletterService) List(ctx context.Context, filter models.NewsletterFilter) ([]*models.Newsletter, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListNewsletters(ctx, filter)
}

// Digests возвращает ленту дайджестов для дашборда.
func (s *NewsletterService) Digests(ctx context.Context, limit int) ([]*models.Digest, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.repo.ListDigests(ctx, limit)
}
