// Package models содержит доменные структуры VentureRadar: запись сессии,
// пользователя, VC-фонда, рассылки, участника команды и дайджеста,
// а также закрытые перечисления роли и тарифа.
package models

import "fmt"

// Role — роль пользователя. Закрытое перечисление: user или admin.
// Роль управляет видимостью функций (пункт навигации Team, вкладка
// настроек краулера), но не тарифными сообщениями.
type Role string

const (
	// RoleUser — обычный пользователь, роль по умолчанию.
	RoleUser Role = "user"
	// RoleAdmin — администратор, видит управление командой и настройки краулера.
	RoleAdmin Role = "admin"
)

// ParseRole разбирает строку в Role или возвращает ошибку для неизвестного значения.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Valid сообщает, входит ли значение в перечисление.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Tier — тариф подписки. Закрытое перечисление: trial, basic или premium.
// Тариф управляет только тарифными сообщениями и экраном подписки.
type Tier string

const (
	// TierTrial — пробный период, тариф по умолчанию при регистрации.
	TierTrial Tier = "trial"
	// TierBasic — тариф Basic.
	TierBasic Tier = "basic"
	// TierPremium — тариф Premium.
	TierPremium Tier = "premium"
)

// ParseTier разбирает строку в Tier или возвращает ошибку для неизвестного значения.
func ParseTier(s string) (Tier, error) {
	switch Tier(s) {
	case TierTrial:
		return TierTrial, nil
	case TierBasic:
		return TierBasic, nil
	case TierPremium:
		return TierPremium, nil
	default:
		return "", fmt.Errorf("unknown tier: %q", s)
	}
}

// Valid сообщает, входит ли значение в перечисление.
func (t Tier) Valid() bool {
	return t == TierTrial || t == TierBasic || t == TierPremium
}
