// Package vc содержит бизнес-логику каталога венчурных фондов,
// включая сквозное кеширование чтений.
package vc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ventureradar/venture-radar/internal/models"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

// ErrNotFound возвращается, когда фонд с указанным ID отсутствует.
var ErrNotFound = errors.New("vc not found")

// Значения пагинации по умолчанию.
const (
	defaultLimit = 50
	maxLimit     = 200
)

// VCRepository определяет методы для работы с каталогом фондов в хранилище.
type VCRepository interface {
	// CreateVC добавляет новый фонд и возвращает его ID.
	CreateVC(ctx context.Context, vc models.VC) (int, error)
	// ReadVC возвращает фонд по ID или repository.ErrNotFound.
	ReadVC(ctx context.Context, id int) (*models.VC, error)
	// ListVCs возвращает фонды по фильтру с пагинацией.
	ListVCs(ctx context.Context, filter models.VCFilter) ([]*models.VC, error)
	// UpdateVC обновляет данные фонда и возвращает количество изменённых строк.
	UpdateVC(ctx context.Context, vc models.VC, id int) (int, error)
	// RemoveVC удаляет фонд и возвращает количество удалённых строк.
	RemoveVC(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// VCService реализует операции каталога фондов.
type VCService struct {
	repo  VCRepository
	cache Cache
	log   *slog.Logger
}

// NewVCService создает новый экземпляр VCService.
func NewVCService(repo VCRepository, cache Cache, log *slog.Logger) *VCService {
	return &VCService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет фонд в каталог и возвращает ID созданной записи.
func (s *VCService) Create(ctx context.Context, req models.DummyVC) (int, error) {
	vc := models.VC{
		Name:        req.Name,
		Website:     req.Website,
		Focus:       normalize(req.Focus),
		Stage:       normalize(req.Stage),
		Location:    req.Location,
		Description: req.Description,
		FundSize:    req.FundSize,
		Status:      "Pending",
	}
	id, err := s.repo.CreateVC(ctx, vc)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new vc", slog.Int("id", id), slog.String("name", vc.Name))
	return id, nil
}

// Read возвращает фонд по ID, используя кеш или репозиторий.
func (s *VCService) Read(ctx context.Context, id int) (*models.VC, error) {
	var result *models.VC
	cacheKey := fmt.Sprintf("vc:%d", id)
	found, err := s.cache.Get(ctx, cacheKey, &result)
	if err != nil {
		s.log.Warn("cache lookup failed", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.ReadVC(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.cache.Set(ctx, cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache vc", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает фонды по фильтру; пустой лимит заменяется значением по умолчанию.
func (s *VCService) List(ctx context.Context, filter models.VCFilter) ([]*models.VC, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultLimit
	}
	if filter.Limit > maxLimit {
		filter.Limit = maxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.repo.ListVCs(ctx, filter)
}

// Update обновляет фонд и инвалидирует кеш.
func (s *VCService) Update(ctx context.Context, req models.DummyVC, id int) error {
	vc := models.VC{
		Name:        req.Name,
		Website:     req.Website,
		Focus:       normalize(req.Focus),
		Stage:       normalize(req.Stage),
		Location:    req.Location,
		Description: req.Description,
		FundSize:    req.FundSize,
	}
	count, err := s.repo.UpdateVC(ctx, vc, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	cacheKey := fmt.Sprintf("vc:%d", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return nil
}

// Remove удаляет фонд и инвалидирует кеш.
func (s *VCService) Remove(ctx context.Context, id int) error {
	cacheKey := fmt.Sprintf("vc:%d", id)
	if err := s.cache.Invalidate(ctx, cacheKey); err != nil {
		s.log.Warn("failed to invalidate cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	count, err := s.repo.RemoveVC(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

func normalize(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
