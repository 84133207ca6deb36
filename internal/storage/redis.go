package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"aura/backend/internal/config"
	"aura/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

func sessionKey(id string) string {
	return config.SessionKeyPrefix + id
}

// SaveSession stores s under session:<id> with the given TTL.
func (s *Service) SaveSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.Redis.Set(ctx, sessionKey(session.ID), data, ttl).Err()
}

// GetSession returns ErrNotFound for unknown or expired sessions.
func (s *Service) GetSession(ctx context.Context, id string) (*models.Session, error) {
	data, err := s.Redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (s *Service) DeleteSession(ctx context.Context, id string) error {
	return s.Redis.Del(ctx, sessionKey(id)).Err()
}

// PublishEvent publishes e on the admin events channel.
func (s *Service) PublishEvent(ctx context.Context, e models.Event) error {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return s.Redis.Publish(ctx, config.AdminEventsChannel, data).Err()
}

// SubscribeEvents subscribes to the admin events channel.
func (s *Service) SubscribeEvents(ctx context.Context) *redis.PubSub {
	return s.Redis.Subscribe(ctx, config.AdminEventsChannel)
}
