// Package auth содержит бизнес-логику регистрации, входа и выхода.
//
// Учётные данные проверяются по bcrypt-хэшу в базе; при успехе сервис
// создаёт запись сессии в хранилище и выпускает подписанный токен с её UID.
// Выход уничтожает запись сессии, после чего токен перестаёт действовать.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ventureradar/venture-radar/internal/lib/jwt"
	"github.com/ventureradar/venture-radar/internal/lib/password"
	"github.com/ventureradar/venture-radar/internal/lib/sl"
	"github.com/ventureradar/venture-radar/internal/models"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

// Пробный период новых аккаунтов.
const trialPeriod = 14 * 24 * time.Hour

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken возвращается при регистрации на занятую почту.
var ErrEmailTaken = errors.New("email already registered")

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)
	// GetUserByEmail возвращает пользователя по email или repository.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// SessionStore описывает контракт хранилища записей сессии.
type SessionStore interface {
	Get(ctx context.Context, sessionUID string) (*models.SessionRecord, error)
	Set(ctx context.Context, sessionUID string, record models.SessionRecord) error
	Clear(ctx context.Context, sessionUID string) error
}

// AuthService отвечает за регистрацию, вход и выход пользователей.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создаёт пользователя с ролью user и тарифом trial
// и сразу открывает для него сессию.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword string) (string, *models.SessionRecord, error) {
	if _, err := s.users.GetUserByEmail(ctx, email); err == nil {
		return "", nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", nil, err
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, err
	}
	trialEndsAt := time.Now().UTC().Add(trialPeriod)
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser, // роль по умолчанию при регистрации
		Tier:         models.TierTrial,
		TrialEndsAt:  &trialEndsAt,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, err
	}
	user.UID = uid
	return s.openSession(ctx, &user)
}

// Login проверяет пароль пользователя, создаёт запись сессии
// и возвращает токен вместе с записью.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.SessionRecord, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

// Logout уничтожает запись сессии. Очистка происходит до любого ответа
// клиенту, поэтому следующий же запрос с этим токеном неавторизован.
func (s *AuthService) Logout(ctx context.Context, sessionUID string) error {
	return s.sessions.Clear(ctx, sessionUID)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (string, *models.SessionRecord, error) {
	const op = "auth.openSession"
	sessionUID := uuid.New().String()
	record := user.SessionRecord()
	if err := s.sessions.Set(ctx, sessionUID, record); err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	token, err := s.jwtMaker.GenerateToken(sessionUID, user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, &record, nil
}

// EnsureDemoAccounts создаёт демо-аккаунты admin@demo.com и demo@demo.com,
// если их ещё нет. Пароль обоих — "password", как на экране входа.
func (s *AuthService) EnsureDemoAccounts(ctx context.Context) error {
	demos := []struct {
		name  string
		email string
		role  models.Role
	}{
		{"Admin User", "admin@demo.com", models.RoleAdmin},
		{"Regular User", "demo@demo.com", models.RoleUser},
	}
	for _, d := range demos {
		if _, err := s.users.GetUserByEmail(ctx, d.email); err == nil {
			continue
		} else if !errors.Is(err, repository.ErrNotFound) {
			return err
		}
		hashed, err := password.GetHash("password")
		if err != nil {
			return err
		}
		trialEndsAt := time.Now().UTC().Add(trialPeriod)
		if _, err := s.users.RegisterUser(ctx, models.User{
			Name:         d.name,
			Email:        d.email,
			PasswordHash: hashed,
			Role:         d.role,
			Tier:         models.TierTrial,
			TrialEndsAt:  &trialEndsAt,
		}); err != nil {
			return err
		}
		s.log.Info("seeded demo account", slog.String("email", d.email))
	}
	return nil
}

// Прогрев демо-аккаунтов на старте не критичен: при ошибке сервис
// продолжает работу без них.
func (s *AuthService) WarmupDemoAccounts(ctx context.Context) {
	if err := s.EnsureDemoAccounts(ctx); err != nil {
		s.log.Warn("failed to seed demo accounts", sl.Err(err))
	}
}
