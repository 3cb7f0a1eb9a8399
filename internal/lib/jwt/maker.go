// Package jwt реализует выпуск и разбор подписанных токенов сессии.
//
// Токен несёт только UID сессии и email — состояние авторизации (роль, тариф)
// живёт в записи сессии в Redis, поэтому очистка записи мгновенно
// делает токен бесполезным.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims описывает данные, хранящиеся в токене сессии.
type SessionClaims struct {
	SessionUID           string `json:"session_uid"` // UID записи сессии в хранилище
	Email                string `json:"email"`       // Почта пользователя
	jwt.RegisteredClaims        // Стандартные claims (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает интерфейс выпуска и разбора токенов сессии.
type Maker interface {
	// GenerateToken создаёт токен для указанной сессии.
	GenerateToken(sessionUID, email string) (string, error)
	// ParseToken проверяет подпись и срок токена и возвращает его claims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует Maker на секретном ключе HMAC и времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт новый MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{secretKey: secretKey, tokenTTL: ttl}
}

// GenerateToken создаёт подписанный токен с UID сессии и email,
// время жизни определяется tokenTTL.
func (m *MakerImpl) GenerateToken(sessionUID, email string) (string, error) {
	claims := SessionClaims{
		SessionUID: sessionUID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(m.secretKey))
}

// ParseToken разбирает токен, проверяет подпись и валидность
// и возвращает SessionClaims, если токен корректен.
func (m *MakerImpl) ParseToken(tokenStr string) (*SessionClaims, error) {
	const op = "jwt.ParseToken"
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
