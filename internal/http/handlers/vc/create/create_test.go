package create

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/models"
)

type VCServiceMock struct {
	mock.Mock
}

func (m *VCServiceMock) Create(ctx context.Context, req models.DummyVC) (int, error) {
	args := m.Called(ctx, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(VCServiceMock)
	serviceMock.On("Create", mock.Anything, mock.MatchedBy(func(req models.DummyVC) bool {
		return req.Name == "Index Ventures"
	})).Return(6, nil).Once()

	handler := New(newNoopLogger(), serviceMock)

	body, err := json.Marshal(models.DummyVC{
		Name:    "Index Ventures",
		Website: "https://indexventures.com",
		Focus:   []string{"SaaS"},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/vcs", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "OK", got["status"])

	data := got["data"].(map[string]any)
	assert.Equal(t, float64(6), data["id"])
	serviceMock.AssertExpectations(t)
}

func TestCreateHandler_ValidationBlocksService(t *testing.T) {
	tests := []struct {
		name string
		body models.DummyVC
	}{
		{
			name: "empty name",
			body: models.DummyVC{Website: "https://indexventures.com"},
		},
		{
			name: "empty website",
			body: models.DummyVC{Name: "Index Ventures"},
		},
		{
			name: "name too short",
			body: models.DummyVC{Name: "X", Website: "https://x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(VCServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			body, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/vcs", bytes.NewReader(body))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			// Невалидный запрос не доходит до сервиса
			serviceMock.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateHandler_BadJSON(t *testing.T) {
	serviceMock := new(VCServiceMock)
	handler := New(newNoopLogger(), serviceMock)

	req := httptest.NewRequest(http.MethodPost, "/vcs", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
