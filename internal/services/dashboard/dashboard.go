// Package dashboard собирает сводку для главного экрана:
// счётчики каталога и свежие дайджесты.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ventureradar/venture-radar/internal/models"
)

// Repository описывает счётчики и ленту дайджестов в хранилище.
type Repository interface {
	CountVCs(ctx context.Context) (int, error)
	CountNewsletters(ctx context.Context) (int, error)
	CountTeamMembers(ctx context.Context) (int, error)
	ListDigests(ctx context.Context, limit int) ([]*models.Digest, error)
}

// Summary — сводка дашборда.
type Summary struct {
	VCsTracked           int              `json:"vcs_tracked"`
	NewslettersProcessed int              `json:"newsletters_processed"`
	TeamMembers          int              `json:"team_members"`
	Tier                 models.Tier      `json:"tier"`
	Digests              []*models.Digest `json:"digests"`
}

// DashboardService реализует сборку сводки.
type DashboardService struct {
	repo Repository
	log  *slog.Logger
}

// NewDashboardService создает новый экземпляр DashboardService.
func NewDashboardService(repo Repository, log *slog.Logger) *DashboardService {
	return &DashboardService{repo: repo, log: log}
}

// Summary возвращает сводку дашборда для записи сессии.
func (s *DashboardService) Summary(ctx context.Context, record models.SessionRecord) (*Summary, error) {
	const op = "services.dashboard.Summary"

	vcs, err := s.repo.CountVCs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	newsletters, err := s.repo.CountNewsletters(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	team, err := s.repo.CountTeamMembers(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	digests, err := s.repo.ListDigests(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Summary{
		VCsTracked:           vcs,
		NewslettersProcessed: newsletters,
		TeamMembers:          team,
		Tier:                 record.Tier,
		Digests:              digests,
	}, nil
}
