package models

import "time"

// SessionRecord — запись сессии, хранимая в Redis по UID сессии.
// Наличие записи в хранилище — единственный признак аутентификации:
// отсутствующая или нечитаемая запись означает неавторизованного посетителя.
type SessionRecord struct {
	Name        string     `json:"name"`                   // Отображаемое имя, непустое у аутентифицированного пользователя
	Email       string     `json:"email"`                  // Идентификатор сессии для бизнес-логики
	Role        Role       `json:"role"`                   // Роль: user или admin
	Tier        Tier       `json:"tier"`                   // Тариф: trial, basic или premium
	TrialEndsAt *time.Time `json:"trialEndsAt,omitempty"`  // Дата окончания пробного периода, имеет смысл только при tier = trial
	UserUID     string     `json:"user_uid"`               // UID пользователя в базе данных
}

// Valid проверяет инварианты записи: непустые имя и email, корректные роль и тариф.
func (s *SessionRecord) Valid() bool {
	return s != nil && s.Name != "" && s.Email != "" && s.Role.Valid() && s.Tier.Valid()
}
