package models

import (
	"fmt"
	"time"
)

// TeamRole — роль участника команды внутри рабочего пространства.
// Отдельная ось от Role: роль сессии управляет доступом к разделам,
// роль участника — правами внутри раздела Team.
type TeamRole string

const (
	// TeamRoleAdmin — полный доступ к рабочему пространству.
	TeamRoleAdmin TeamRole = "admin"
	// TeamRoleEditor — может изменять каталог и рассылки.
	TeamRoleEditor TeamRole = "editor"
	// TeamRoleViewer — только чтение.
	TeamRoleViewer TeamRole = "viewer"
)

// ParseTeamRole разбирает строку в TeamRole или возвращает ошибку.
func ParseTeamRole(s string) (TeamRole, error) {
	switch TeamRole(s) {
	case TeamRoleAdmin:
		return TeamRoleAdmin, nil
	case TeamRoleEditor:
		return TeamRoleEditor, nil
	case TeamRoleViewer:
		return TeamRoleViewer, nil
	default:
		return "", fmt.Errorf("unknown team role: %q", s)
	}
}

// TeamMember представляет участника команды.
type TeamMember struct {
	ID       int       // Идентификатор участника
	Name     string    // Имя участника, пустое для ещё не принятого приглашения
	Email    string    // Электронная почта
	Role     TeamRole  // Роль участника в рабочем пространстве
	Status   string    // active или pending
	JoinedAt time.Time // Дата приглашения или вступления
}

// Статусы участника команды.
const (
	TeamStatusActive  = "active"
	TeamStatusPending = "pending"
)

// InviteMessage — сообщение в очередь уведомлений о новом приглашении.
// Публикуется сервисом команды, потребляется сервисом отправки писем.
type InviteMessage struct {
	Email     string   `json:"email"`      // Почта приглашённого
	Role      TeamRole `json:"role"`       // Назначенная роль
	InvitedBy string   `json:"invited_by"` // Почта пригласившего
}
