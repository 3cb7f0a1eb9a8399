package read

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/models"
	vcservice "github.com/ventureradar/venture-radar/internal/services/vc"
)

type VCServiceMock struct {
	mock.Mock
}

func (m *VCServiceMock) Read(ctx context.Context, id int) (*models.VC, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.VC), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequestWithID(id string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/vcs/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestReadHandler_ServeHTTP(t *testing.T) {
	serviceMock := new(VCServiceMock)
	expected := &models.VC{ID: 1, Name: "Sequoia Capital", Website: "https://sequoiacap.com"}
	serviceMock.On("Read", mock.Anything, 1).Return(expected, nil).Once()

	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newRequestWithID("1"))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "OK", got["status"])
	serviceMock.AssertExpectations(t)
}

func TestReadHandler_NotFound(t *testing.T) {
	serviceMock := new(VCServiceMock)
	serviceMock.On("Read", mock.Anything, 999).Return(nil, vcservice.ErrNotFound).Once()

	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newRequestWithID("999"))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Экран "не найдено" получает путь возврата к списку фондов
	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Error", got["status"])

	data := got["data"].(map[string]any)
	assert.Equal(t, "/vcs", data["back_url"])
}

func TestReadHandler_BadID(t *testing.T) {
	serviceMock := new(VCServiceMock)
	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newRequestWithID("abc"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	serviceMock.AssertNotCalled(t, "Read", mock.Anything, mock.Anything)
}
