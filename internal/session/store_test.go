package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ventureradar/venture-radar/internal/models"
)

func setupTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(func() { mr.Close() })

	db := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = db.Close() })

	return NewWithClient(db, time.Hour), mr
}

func testRecord() models.SessionRecord {
	return models.SessionRecord{
		Name:    "Admin User",
		Email:   "admin@demo.com",
		Role:    models.RoleAdmin,
		Tier:    models.TierPremium,
		UserUID: "550e8400-e29b-41d4-a716-446655440000",
	}
}

func TestStore_SetAndGet(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	expected := testRecord()
	require.NoError(t, store.Set(ctx, "sess-1", expected))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, expected, *got)
}

func TestStore_GetAbsent(t *testing.T) {
	store, _ := setupTestStore(t)

	got, err := store.Get(context.Background(), "no-such-session")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_GetCorruptSlot(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	// Испорченный слот читается как отсутствие сессии и удаляется
	require.NoError(t, mr.Set("session:broken", "{not json"))

	got, err := store.Get(ctx, "broken")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("session:broken"))
}

func TestStore_GetInvalidRecord(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	// Валидный JSON, но не запись сессии: пустое имя и неизвестная роль
	require.NoError(t, mr.Set("session:bad", `{"name":"","email":"x@y.z","role":"root","tier":"trial"}`))

	got, err := store.Get(ctx, "bad")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("session:bad"))
}

func TestStore_SetOverwrites(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	first := testRecord()
	require.NoError(t, store.Set(ctx, "sess-1", first))

	second := first
	second.Tier = models.TierBasic
	second.Name = "Renamed User"
	require.NoError(t, store.Set(ctx, "sess-1", second))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second, *got)
}

func TestStore_Clear(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sess-1", testRecord()))
	require.NoError(t, store.Clear(ctx, "sess-1"))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	// Повторная очистка пустого слота не является ошибкой
	require.NoError(t, store.Clear(ctx, "sess-1"))
}

func TestStore_SlotExpires(t *testing.T) {
	store, mr := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "sess-1", testRecord()))
	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Любая валидная запись сессии переживает цикл Set/Get без искажений.
func TestStore_RoundTripProperty(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	genRecord := gopter.CombineGens(
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.AlphaString().SuchThat(func(s string) bool { return s != "" }),
		gen.OneConstOf(models.RoleUser, models.RoleAdmin),
		gen.OneConstOf(models.TierTrial, models.TierBasic, models.TierPremium),
	).Map(func(values []any) models.SessionRecord {
		return models.SessionRecord{
			Name:    values[0].(string),
			Email:   values[1].(string) + "@example.com",
			Role:    values[2].(models.Role),
			Tier:    values[3].(models.Tier),
			UserUID: "550e8400-e29b-41d4-a716-446655440000",
		}
	})

	properties.Property("set then get returns the same record", prop.ForAll(
		func(record models.SessionRecord) bool {
			if err := store.Set(ctx, "prop-sess", record); err != nil {
				return false
			}
			got, err := store.Get(ctx, "prop-sess")
			if err != nil || got == nil {
				return false
			}
			return *got == record
		},
		genRecord,
	))

	properties.TestingRun(t)
}
