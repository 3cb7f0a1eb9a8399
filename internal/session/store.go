// Package session реализует хранилище записей сессии поверх Redis.
//
// Каждая сессия занимает один именованный слот session:<uid> с сериализованной
// в JSON записью. Наличие записи — единственный признак аутентификации:
// отсутствующий или нечитаемый слот читается как "absent" и никогда
// не приводит к ошибке на стороне вызывающего.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ventureradar/venture-radar/internal/config"
	"github.com/ventureradar/venture-radar/internal/models"
)

const keyPrefix = "session:"

// Store хранит записи сессии в Redis.
type Store struct {
	db  *redis.Client
	ttl time.Duration
}

// New подключается к Redis и возвращает Store с заданным временем жизни слота.
func New(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*Store, error) {
	const op = "session.New"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})
	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, ttl: ttl}, nil
}

// NewWithClient создаёт Store поверх готового клиента. Используется в тестах.
func NewWithClient(db *redis.Client, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// Get возвращает запись сессии или nil, если слот пуст.
// Нечитаемый слот приравнивается к пустому: запись удаляется, ошибки нет.
func (s *Store) Get(ctx context.Context, sessionUID string) (*models.SessionRecord, error) {
	const op = "session.Get"
	val, err := s.db.Get(ctx, keyPrefix+sessionUID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var record models.SessionRecord
	if err := json.Unmarshal([]byte(val), &record); err != nil || !record.Valid() {
		// Испорченный слот читается как отсутствие сессии.
		_ = s.db.Del(ctx, keyPrefix+sessionUID).Err()
		return nil, nil
	}
	return &record, nil
}

// Set записывает запись сессии, заменяя предыдущую, и обновляет TTL слота.
// Запись видна всем последующим Get.
func (s *Store) Set(ctx context.Context, sessionUID string, record models.SessionRecord) error {
	const op = "session.Set"
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.db.Set(ctx, keyPrefix+sessionUID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Clear удаляет слот сессии; последующие Get возвращают nil.
func (s *Store) Clear(ctx context.Context, sessionUID string) error {
	const op = "session.Clear"
	if err := s.db.Del(ctx, keyPrefix+sessionUID).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
