// Package team содержит бизнес-логику управления командой:
// список участников, приглашения, смена ролей и удаление.
//
// Приглашение публикует сообщение в очередь уведомлений,
// письмо отправляет отдельный сервис-потребитель.
package team

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ventureradar/venture-radar/internal/models"
)

// ErrNotFound возвращается, когда участник с указанным ID отсутствует.
var ErrNotFound = errors.New("team member not found")

// TeamRepository определяет методы хранения участников команды.
type TeamRepository interface {
	ListTeamMembers(ctx context.Context) ([]*models.TeamMember, error)
	CreateTeamMember(ctx context.Context, member models.TeamMember) (int, error)
	UpdateTeamMemberRole(ctx context.Context, id int, role models.TeamRole) (int, error)
	RemoveTeamMember(ctx context.Context, id int) (int, error)
}

// InvitePublisher публикует сообщение о новом приглашении в очередь уведомлений.
type InvitePublisher interface {
	PublishInvite(message models.InviteMessage) error
}

// TeamService реализует операции управления командой.
type TeamService struct {
	repo      TeamRepository
	publisher InvitePublisher
	log       *slog.Logger
}

// NewTeamService создает новый экземпляр TeamService.
func NewTeamService(repo TeamRepository, publisher InvitePublisher, log *slog.Logger) *TeamService {
	return &TeamService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// List возвращает участников команды.
func (s *TeamService) List(ctx context.Context) ([]*models.TeamMember, error) {
	return s.repo.ListTeamMembers(ctx)
}

// Invite создаёт участника со статусом pending и публикует уведомление
// для отправки письма-приглашения. Возвращает ID созданной записи.
func (s *TeamService) Invite(ctx context.Context, email string, role models.TeamRole, invitedBy string) (int, error) {
	member := models.TeamMember{
		Email:  email,
		Role:   role,
		Status: models.TeamStatusPending,
	}
	id, err := s.repo.CreateTeamMember(ctx, member)
	if err != nil {
		return 0, err
	}
	s.log.Info("team member invited", slog.Int("id", id), slog.String("email", email))

	msg := models.InviteMessage{Email: email, Role: role, InvitedBy: invitedBy}
	if err := s.publisher.PublishInvite(msg); err != nil {
		// Участник уже создан, письмо можно переотправить вручную.
		s.log.Warn("failed to publish invite notification", slog.Any("err", err))
	}
	return id, nil
}

// ChangeRole меняет роль участника.
func (s *TeamService) ChangeRole(ctx context.Context, id int, role models.TeamRole) error {
	count, err := s.repo.UpdateTeamMemberRole(ctx, id, role)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Remove удаляет участника команды.
func (s *TeamService) Remove(ctx context.Context, id int) error {
	count, err := s.repo.RemoveTeamMember(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
