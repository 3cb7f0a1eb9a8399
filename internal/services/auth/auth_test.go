package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/lib/jwt"
	"github.com/ventureradar/venture-radar/internal/lib/password"
	"github.com/ventureradar/venture-radar/internal/models"
	auth "github.com/ventureradar/venture-radar/internal/services/auth"
	"github.com/ventureradar/venture-radar/internal/storage/repository"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Мок для SessionStore
type SessionStoreMock struct {
	mock.Mock
}

func (m *SessionStoreMock) Get(ctx context.Context, sessionUID string) (*models.SessionRecord, error) {
	args := m.Called(ctx, sessionUID)
	record, _ := args.Get(0).(*models.SessionRecord)
	return record, args.Error(1)
}

func (m *SessionStoreMock) Set(ctx context.Context, sessionUID string, record models.SessionRecord) error {
	args := m.Called(ctx, sessionUID, record)
	return args.Error(0)
}

func (m *SessionStoreMock) Clear(ctx context.Context, sessionUID string) error {
	args := m.Called(ctx, sessionUID)
	return args.Error(0)
}

func newService(users *UserRepoMock, sessions *SessionStoreMock) *auth.AuthService {
	maker := jwt.NewMaker("test-secret", time.Hour)
	return auth.NewAuthService(users, sessions, maker, newNoopLogger())
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, s *SessionStoreMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").
					Return(nil, repository.ErrNotFound).Once()
				r.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "new@example.com" &&
						user.PasswordHash != "" &&
						user.Role == models.RoleUser &&
						user.Tier == models.TierTrial &&
						user.TrialEndsAt != nil
				})).Return("new-uid", nil).Once()
				s.On("Set", mock.Anything, mock.Anything, mock.MatchedBy(func(record models.SessionRecord) bool {
					return record.Email == "new@example.com" &&
						record.Role == models.RoleUser &&
						record.Tier == models.TierTrial &&
						record.UserUID == "new-uid"
				})).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "email already taken",
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock) {
				r.On("GetUserByEmail", mock.Anything, "new@example.com").
					Return(&models.User{Email: "new@example.com"}, nil).Once()
			},
			wantErr: auth.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			tt.setupMocks(users, sessions)

			service := newService(users, sessions)

			token, record, err := service.Register(context.Background(), "New User", "new@example.com", "password123")

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, record)
				assert.Equal(t, "New User", record.Name)
				assert.Equal(t, models.TierTrial, record.Tier)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("password")
	require.NoError(t, err)

	demoUser := &models.User{
		UID:          "admin-uid",
		Name:         "Admin User",
		Email:        "admin@demo.com",
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
		Tier:         models.TierTrial,
	}

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, s *SessionStoreMock)
		wantErr    error
	}{
		{
			name:     "admin demo login",
			email:    "admin@demo.com",
			password: "password",
			setupMocks: func(r *UserRepoMock, s *SessionStoreMock) {
				r.On("GetUserByEmail", mock.Anything, "admin@demo.com").Return(demoUser, nil).Once()
				s.On("Set", mock.Anything, mock.Anything, mock.MatchedBy(func(record models.SessionRecord) bool {
					return record.Role == models.RoleAdmin && record.Email == "admin@demo.com"
				})).Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name:     "wrong password",
			email:    "admin@demo.com",
			password: "letmein",
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock) {
				r.On("GetUserByEmail", mock.Anything, "admin@demo.com").Return(demoUser, nil).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
		{
			name:     "unknown email",
			email:    "ghost@demo.com",
			password: "password",
			setupMocks: func(r *UserRepoMock, _ *SessionStoreMock) {
				r.On("GetUserByEmail", mock.Anything, "ghost@demo.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: auth.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			sessions := new(SessionStoreMock)
			tt.setupMocks(users, sessions)

			service := newService(users, sessions)

			token, record, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, record)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	users := new(UserRepoMock)
	sessions := new(SessionStoreMock)
	sessions.On("Clear", mock.Anything, "sess-1").Return(nil).Once()

	service := newService(users, sessions)

	require.NoError(t, service.Logout(context.Background(), "sess-1"))
	sessions.AssertExpectations(t)
}

func TestAuthService_EnsureDemoAccounts(t *testing.T) {
	users := new(UserRepoMock)
	sessions := new(SessionStoreMock)

	// Оба демо-аккаунта отсутствуют и создаются
	users.On("GetUserByEmail", mock.Anything, "admin@demo.com").
		Return(nil, repository.ErrNotFound).Once()
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "admin@demo.com" && user.Role == models.RoleAdmin
	})).Return("admin-uid", nil).Once()

	users.On("GetUserByEmail", mock.Anything, "demo@demo.com").
		Return(nil, repository.ErrNotFound).Once()
	users.On("RegisterUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "demo@demo.com" && user.Role == models.RoleUser
	})).Return("demo-uid", nil).Once()

	service := newService(users, sessions)

	require.NoError(t, service.EnsureDemoAccounts(context.Background()))
	users.AssertExpectations(t)
}

func TestAuthService_EnsureDemoAccountsIdempotent(t *testing.T) {
	users := new(UserRepoMock)
	sessions := new(SessionStoreMock)

	// Аккаунты уже есть: повторный запуск ничего не создает
	users.On("GetUserByEmail", mock.Anything, "admin@demo.com").
		Return(&models.User{Email: "admin@demo.com"}, nil).Once()
	users.On("GetUserByEmail", mock.Anything, "demo@demo.com").
		Return(&models.User{Email: "demo@demo.com"}, nil).Once()

	service := newService(users, sessions)

	require.NoError(t, service.EnsureDemoAccounts(context.Background()))
	users.AssertExpectations(t)
	users.AssertNotCalled(t, "RegisterUser", mock.Anything, mock.Anything)
}
