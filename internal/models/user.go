package models

import "time"

// User представляет зарегистрированного пользователя в базе данных.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Name         string     // Отображаемое имя
	Email        string     // Электронная почта (уникальная)
	PasswordHash string     // bcrypt-хэш пароля
	Role         Role       // Роль пользователя
	Tier         Tier       // Текущий тариф
	TrialEndsAt  *time.Time // Дата окончания пробного периода
	CreatedAt    time.Time  // Дата регистрации
}

// SessionRecord строит запись сессии из строки пользователя.
func (u *User) SessionRecord() SessionRecord {
	return SessionRecord{
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		Tier:        u.Tier,
		TrialEndsAt: u.TrialEndsAt,
		UserUID:     u.UID,
	}
}

// UserSettings — настройки уведомлений пользователя.
type UserSettings struct {
	UserUID        string // UID пользователя
	DigestEmails   bool   // Присылать еженедельный дайджест
	ProductUpdates bool   // Присылать новости продукта
}

// CrawlerSettings — глобальные настройки краулера рассылок.
// Редактировать их может только администратор.
type CrawlerSettings struct {
	IntervalHours int // Интервал обхода источников в часах
	SourcesLimit  int // Максимум источников за один обход
}
