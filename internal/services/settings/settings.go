// Package settings содержит бизнес-логику экрана настроек:
// профиль, уведомления и — для администраторов — настройки краулера.
package settings

import (
	"context"
	"log/slog"

	"github.com/ventureradar/venture-radar/internal/models"
)

// Repository описывает методы хранения настроек.
type Repository interface {
	GetUserSettings(ctx context.Context, userUID string) (*models.UserSettings, error)
	UpsertUserSettings(ctx context.Context, settings models.UserSettings) error
	UpdateUserName(ctx context.Context, userUID, name string) error
	GetCrawlerSettings(ctx context.Context) (*models.CrawlerSettings, error)
	UpdateCrawlerSettings(ctx context.Context, settings models.CrawlerSettings) error
}

// SessionStore описывает обновление записи сессии.
type SessionStore interface {
	Set(ctx context.Context, sessionUID string, record models.SessionRecord) error
}

// Settings — полное состояние экрана настроек для текущего пользователя.
// Crawler заполняется только для администраторов.
type Settings struct {
	Name           string                  `json:"name"`
	Email          string                  `json:"email"`
	DigestEmails   bool                    `json:"digest_emails"`
	ProductUpdates bool                    `json:"product_updates"`
	Crawler        *models.CrawlerSettings `json:"crawler,omitempty"`
}

// Update — изменяемые поля настроек.
type Update struct {
	Name           string
	DigestEmails   bool
	ProductUpdates bool
	Crawler        *models.CrawlerSettings
}

// SettingsService реализует чтение и запись настроек.
type SettingsService struct {
	repo     Repository
	sessions SessionStore
	log      *slog.Logger
}

// NewSettingsService создает новый экземпляр SettingsService.
func NewSettingsService(repo Repository, sessions SessionStore, log *slog.Logger) *SettingsService {
	return &SettingsService{
		repo:     repo,
		sessions: sessions,
		log:      log,
	}
}

// Get возвращает настройки для записи сессии; вкладка краулера
// заполняется только для роли admin.
func (s *SettingsService) Get(ctx context.Context, record models.SessionRecord) (*Settings, error) {
	userSettings, err := s.repo.GetUserSettings(ctx, record.UserUID)
	if err != nil {
		return nil, err
	}
	result := &Settings{
		Name:           record.Name,
		Email:          record.Email,
		DigestEmails:   userSettings.DigestEmails,
		ProductUpdates: userSettings.ProductUpdates,
	}
	if record.Role == models.RoleAdmin {
		crawler, err := s.repo.GetCrawlerSettings(ctx)
		if err != nil {
			return nil, err
		}
		result.Crawler = crawler
	}
	return result, nil
}

// Apply сохраняет настройки и синхронизирует имя в записи сессии.
// Настройки краулера пишутся только из-под роли admin и молча
// игнорируются для остальных.
func (s *SettingsService) Apply(ctx context.Context, sessionUID string, record models.SessionRecord, update Update) (*models.SessionRecord, error) {
	if update.Name != "" && update.Name != record.Name {
		if err := s.repo.UpdateUserName(ctx, record.UserUID, update.Name); err != nil {
			return nil, err
		}
		record.Name = update.Name
		if err := s.sessions.Set(ctx, sessionUID, record); err != nil {
			return nil, err
		}
	}
	if err := s.repo.UpsertUserSettings(ctx, models.UserSettings{
		UserUID:        record.UserUID,
		DigestEmails:   update.DigestEmails,
		ProductUpdates: update.ProductUpdates,
	}); err != nil {
		return nil, err
	}
	if update.Crawler != nil && record.Role == models.RoleAdmin {
		if err := s.repo.UpdateCrawlerSettings(ctx, *update.Crawler); err != nil {
			return nil, err
		}
		s.log.Info("crawler settings updated", slog.String("by", record.Email))
	}
	return &record, nil
}
