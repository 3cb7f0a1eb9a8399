package planupgrade

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/http/middlewarectx"
	"github.com/ventureradar/venture-radar/internal/models"
)

type PlanServiceMock struct {
	mock.Mock
}

func (m *PlanServiceMock) Upgrade(ctx context.Context, sessionUID string, record models.SessionRecord, tier models.Tier) (*models.SessionRecord, error) {
	args := m.Called(ctx, sessionUID, record, tier)
	updated, _ := args.Get(0).(*models.SessionRecord)
	return updated, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newUpgradeRequest(t *testing.T, tier string, record *models.SessionRecord) *http.Request {
	t.Helper()
	body, err := json.Marshal(Request{Tier: tier})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/subscription/upgrade", bytes.NewReader(body))
	ctx := req.Context()
	if record != nil {
		ctx = context.WithValue(ctx, middlewarectx.Session, record)
		ctx = context.WithValue(ctx, middlewarectx.SessionUID, "sess-1")
	}
	return req.WithContext(ctx)
}

func TestUpgradeHandler_ServeHTTP(t *testing.T) {
	trialEnds := time.Now().UTC().Add(7 * 24 * time.Hour)
	record := &models.SessionRecord{
		Name: "Regular User", Email: "demo@demo.com",
		Role: models.RoleUser, Tier: models.TierTrial,
		TrialEndsAt: &trialEnds, UserUID: "uid-1",
	}
	upgraded := *record
	upgraded.Tier = models.TierPremium
	upgraded.TrialEndsAt = nil

	serviceMock := new(PlanServiceMock)
	serviceMock.On("Upgrade", mock.Anything, "sess-1", *record, models.TierPremium).
		Return(&upgraded, nil).Once()

	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newUpgradeRequest(t, "premium", record))

	assert.Equal(t, http.StatusOK, rec.Code)

	var got map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "OK", got["status"])

	data := got["data"].(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "premium", user["tier"])
	assert.NotContains(t, user, "trialEndsAt")

	serviceMock.AssertExpectations(t)
}

func TestUpgradeHandler_UnknownTier(t *testing.T) {
	record := &models.SessionRecord{
		Name: "Regular User", Email: "demo@demo.com",
		Role: models.RoleUser, Tier: models.TierTrial, UserUID: "uid-1",
	}

	serviceMock := new(PlanServiceMock)
	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newUpgradeRequest(t, "enterprise", record))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	serviceMock.AssertNotCalled(t, "Upgrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpgradeHandler_NoSession(t *testing.T) {
	serviceMock := new(PlanServiceMock)
	handler := New(newNoopLogger(), serviceMock)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, newUpgradeRequest(t, "premium", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertNotCalled(t, "Upgrade", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
