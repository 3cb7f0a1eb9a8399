package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ventureradar/venture-radar/internal/models"
)

const testSchema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS users (
    uid UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
    name TEXT NOT NULL,
    email TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    role TEXT NOT NULL DEFAULT 'user',
    tier TEXT NOT NULL DEFAULT 'trial',
    trial_ends_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS vcs (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    website TEXT NOT NULL,
    focus JSONB NOT NULL DEFAULT '[]',
    stage JSONB NOT NULL DEFAULT '[]',
    location TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    fund_size TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL DEFAULT 'Pending',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS newsletters (
    id SERIAL PRIMARY KEY,
    vc_name TEXT NOT NULL,
    subject TEXT NOT NULL,
    received_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    summary TEXT NOT NULL DEFAULT '',
    topics JSONB NOT NULL DEFAULT '[]',
    companies_mentioned JSONB NOT NULL DEFAULT '[]'
);

CREATE TABLE IF NOT EXISTS digests (
    id SERIAL PRIMARY KEY,
    title TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    published_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    summary TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS team_members (
    id SERIAL PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    email TEXT NOT NULL UNIQUE,
    role TEXT NOT NULL DEFAULT 'viewer',
    status TEXT NOT NULL DEFAULT 'pending',
    joined_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_settings (
    user_uid UUID PRIMARY KEY REFERENCES users (uid) ON DELETE CASCADE,
    digest_emails BOOLEAN NOT NULL DEFAULT TRUE,
    product_updates BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE IF NOT EXISTS crawler_settings (
    id INT PRIMARY KEY CHECK (id = 1),
    interval_hours INT NOT NULL DEFAULT 24,
    sources_limit INT NOT NULL DEFAULT 100
);

INSERT INTO crawler_settings (id, interval_hours, sources_limit)
VALUES (1, 24, 100)
ON CONFLICT (id) DO NOTHING;
`

// setupTestDatabase поднимает контейнер PostgreSQL и создает схему.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(3*time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	// Несколько попыток подключения с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(connStr)
		if err == nil {
			if err = storage.DB.Ping(); err == nil {
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	_, err = storage.DB.Exec(testSchema)
	require.NoError(t, err, "failed to create schema")

	cleanup := func() {
		_ = storage.DB.Close()
		_ = container.Terminate(ctx)
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID
func (f *TestDataFactory) CreateUser(t *testing.T, name, email, role, tier string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (name, email, password_hash, role, tier)
		VALUES ($1, $2, $3, $4, $5) RETURNING uid`,
		name, email, "hashedpassword", role, tier).Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateVC создает тестовый фонд и возвращает его ID
func (f *TestDataFactory) CreateVC(t *testing.T, name, website, location string, focus []string) int {
	focusJSON, err := json.Marshal(focus)
	require.NoError(t, err)

	var id int
	err = f.storage.DB.QueryRow(`INSERT INTO vcs (name, website, location, focus, stage, status)
		VALUES ($1, $2, $3, $4, '[]', 'Subscribed') RETURNING id`,
		name, website, location, focusJSON).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateNewsletter создает тестовый выпуск и возвращает его ID
func (f *TestDataFactory) CreateNewsletter(t *testing.T, vcName, subject string, receivedAt time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO newsletters (vc_name, subject, received_at)
		VALUES ($1, $2, $3) RETURNING id`,
		vcName, subject, receivedAt).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTeamMember создает тестового участника команды и возвращает его ID
func (f *TestDataFactory) CreateTeamMember(t *testing.T, name, email string, role models.TeamRole, status string) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO team_members (name, email, role, status)
		VALUES ($1, $2, $3, $4) RETURNING id`,
		name, email, string(role), status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateDigest создает тестовый дайджест и возвращает его ID
func (f *TestDataFactory) CreateDigest(t *testing.T, title string, publishedAt time.Time) int {
	var id int
	err := f.storage.DB.QueryRow(`INSERT INTO digests (title, published_at)
		VALUES ($1, $2) RETURNING id`,
		title, publishedAt).Scan(&id)
	require.NoError(t, err)
	return id
}
