package login

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ventureradar/venture-radar/internal/models"
	authservice "github.com/ventureradar/venture-radar/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, *models.SessionRecord, error) {
	args := m.Called(ctx, email, password)
	record, _ := args.Get(1).(*models.SessionRecord)
	return args.String(0), record, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func adminRecord() *models.SessionRecord {
	return &models.SessionRecord{
		Name:    "Admin User",
		Email:   "admin@demo.com",
		Role:    models.RoleAdmin,
		Tier:    models.TierTrial,
		UserUID: "admin-uid",
	}
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockToken      string
		mockRecord     *models.SessionRecord
		mockErr        error
		wantStatusCode int
		wantStatus     string
		wantError      string
		wantReturnTo   string
	}{
		{
			name:           "admin demo login",
			requestBody:    Request{Email: "admin@demo.com", Password: "password"},
			mockToken:      "tok",
			mockRecord:     adminRecord(),
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantReturnTo:   "/dashboard",
		},
		{
			name:           "login with saved return path",
			requestBody:    Request{Email: "admin@demo.com", Password: "password", ReturnTo: "/team"},
			mockToken:      "tok",
			mockRecord:     adminRecord(),
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantReturnTo:   "/team",
		},
		{
			name:           "absolute return path replaced by default",
			requestBody:    Request{Email: "admin@demo.com", Password: "password", ReturnTo: "https://evil.example.com"},
			mockToken:      "tok",
			mockRecord:     adminRecord(),
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
			wantReturnTo:   "/dashboard",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantStatus:     "Error",
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "admin@demo.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantStatus:     "Error",
			wantError:      "field Password is a required field",
		},
		{
			name:           "invalid credentials",
			requestBody:    Request{Email: "admin@demo.com", Password: "letmein"},
			mockErr:        authservice.ErrInvalidCredentials,
			wantStatusCode: http.StatusUnauthorized,
			wantStatus:     "Error",
			wantError:      "invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthServiceMock)
			if tt.mockRecord != nil || tt.mockErr != nil {
				req := tt.requestBody.(Request)
				authMock.On("Login", mock.Anything, req.Email, req.Password).
					Return(tt.mockToken, tt.mockRecord, tt.mockErr).Once()
			}

			handler := New(newNoopLogger(), authMock)

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err := json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			}

			if tt.wantReturnTo != "" {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, tt.wantReturnTo, data["return_to"])
				assert.Equal(t, "tok", data["token"])

				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "admin", user["role"])
			}

			authMock.AssertExpectations(t)
		})
	}
}
