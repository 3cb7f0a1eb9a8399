// Package plan содержит каталог тарифов и логику смены тарифа.
//
// Смена тарифа обновляет пользователя в базе и запись сессии на месте,
// так что все последующие чтения записи видят новый тариф.
package plan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ventureradar/venture-radar/internal/models"
)

// ErrUnknownPlan возвращается при попытке перейти на несуществующий тариф.
var ErrUnknownPlan = errors.New("unknown plan")

// Plan описывает тариф из каталога.
type Plan struct {
	Tier          models.Tier `json:"tier"`            // Идентификатор тарифа
	Name          string      `json:"name"`            // Отображаемое название
	PricePerMonth int         `json:"price_per_month"` // Цена в долларах за месяц, 0 для пробного
	Description   string      `json:"description"`     // Краткое описание
}

// Каталог тарифов. Порядок — от пробного к старшему.
var catalog = []Plan{
	{Tier: models.TierTrial, Name: "Trial", PricePerMonth: 0, Description: "14-day free trial with full access"},
	{Tier: models.TierBasic, Name: "Basic", PricePerMonth: 29, Description: "Track up to 50 VCs with weekly digests"},
	{Tier: models.TierPremium, Name: "Premium", PricePerMonth: 79, Description: "Unlimited VCs, daily digests and team access"},
}

// UserRepository описывает запись нового тарифа пользователя.
type UserRepository interface {
	UpdateUserTier(ctx context.Context, userUID string, tier models.Tier) error
}

// SessionStore описывает обновление записи сессии.
type SessionStore interface {
	Set(ctx context.Context, sessionUID string, record models.SessionRecord) error
}

// PlanService реализует чтение каталога тарифов и переход между ними.
type PlanService struct {
	users    UserRepository
	sessions SessionStore
	log      *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(users UserRepository, sessions SessionStore, log *slog.Logger) *PlanService {
	return &PlanService{
		users:    users,
		sessions: sessions,
		log:      log,
	}
}

// Plans возвращает каталог тарифов.
func (s *PlanService) Plans() []Plan {
	return catalog
}

// Upgrade переводит пользователя на указанный тариф: обновляет базу,
// затем запись сессии. Возвращает обновлённую запись.
func (s *PlanService) Upgrade(ctx context.Context, sessionUID string, record models.SessionRecord, tier models.Tier) (*models.SessionRecord, error) {
	if !tier.Valid() {
		return nil, ErrUnknownPlan
	}
	if err := s.users.UpdateUserTier(ctx, record.UserUID, tier); err != nil {
		return nil, err
	}
	record.Tier = tier
	if tier != models.TierTrial {
		record.TrialEndsAt = nil
	}
	if err := s.sessions.Set(ctx, sessionUID, record); err != nil {
		return nil, err
	}
	s.log.Info("plan upgraded",
		slog.String("user_uid", record.UserUID), slog.String("tier", string(tier)))
	return &record, nil
}
