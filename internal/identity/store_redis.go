// Copyright (c) 2026 Gravadora. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/gravadora/internal/platform/apperr"
	"github.com/taibuivan/gravadora/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements [SessionRepository] using Redis keys with TTL.
//
// Layout:
//   - auth:session:<id>        JSON record
//   - auth:refresh:<hash>      session id
//   - auth:user_sessions:<uid> set of session ids
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

/*
Create stores a session record and its indexes in one transaction.

Parameters:
  - ctx: context.Context
  - record: *SessionRecord
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (repository *RedisSessionRepository) Create(ctx context.Context, record *SessionRecord, ttl time.Duration) error {

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	userKey := constants.RedisPrefixUserSession + record.UserID

	// All three keys expire together
	_, err = repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, constants.RedisPrefixSession+record.ID, payload, ttl)
		pipe.Set(ctx, constants.RedisPrefixRefresh+record.RefreshHash, record.ID, ttl)
		pipe.SAdd(ctx, userKey, record.ID)
		pipe.Expire(ctx, userKey, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
Find returns the live record for a session ID.

Returns:
  - *SessionRecord: The stored record
  - error: apperr.NotFound when expired or revoked
*/
func (repository *RedisSessionRepository) Find(ctx context.Context, sessionID string) (*SessionRecord, error) {

	payload, err := repository.client.Get(ctx, constants.RedisPrefixSession+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	var record SessionRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	return &record, nil
}

// FindByRefreshHash resolves a refresh-token hash to its live record.
func (repository *RedisSessionRepository) FindByRefreshHash(ctx context.Context, refreshHash string) (*SessionRecord, error) {

	sessionID, err := repository.client.Get(ctx, constants.RedisPrefixRefresh+refreshHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_refresh_get_failed: %w", err)
	}

	return repository.Find(ctx, sessionID)
}

/*
Delete revokes a single session and its refresh index.

Deleting a session that no longer exists is a no-op.
*/
func (repository *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {

	record, err := repository.Find(ctx, sessionID)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil
		}
		return err
	}

	_, err = repository.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, constants.RedisPrefixSession+record.ID)
		pipe.Del(ctx, constants.RedisPrefixRefresh+record.RefreshHash)
		pipe.SRem(ctx, constants.RedisPrefixUserSession+record.UserID, record.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}

// DeleteAllForUser revokes every session of a user and returns their IDs.
func (repository *RedisSessionRepository) DeleteAllForUser(ctx context.Context, userID string) ([]string, error) {

	userKey := constants.RedisPrefixUserSession + userID

	sessionIDs, err := repository.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_user_sessions_get_failed: %w", err)
	}

	for _, sessionID := range sessionIDs {
		if err := repository.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
	}

	if err := repository.client.Del(ctx, userKey).Err(); err != nil {
		return nil, fmt.Errorf("redis_user_sessions_delete_failed: %w", err)
	}

	return sessionIDs, nil
}

// # Event Bus

// RedisEventBus implements [EventBus] over a Redis pub/sub channel.
type RedisEventBus struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewEventBus creates a bus on the auth-events channel.
func NewEventBus(client *redis.Client, logger *slog.Logger) *RedisEventBus {
	return &RedisEventBus{
		client:  client,
		channel: constants.RedisChannelAuthEvents,
		logger:  logger,
	}
}

// Publish encodes the event as JSON and sends it on the channel.
func (bus *RedisEventBus) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis_event_encode_failed: %w", err)
	}

	if err := bus.client.Publish(ctx, bus.channel, payload).Err(); err != nil {
		return fmt.Errorf("redis_event_publish_failed: %w", err)
	}

	return nil
}

/*
Subscribe delivers decoded events until ctx is done or the closer is called.

The returned channel is closed when the subscription ends. Malformed messages
are logged and skipped.
*/
func (bus *RedisEventBus) Subscribe(ctx context.Context) (<-chan Event, func() error, error) {

	pubsub := bus.client.Subscribe(ctx, bus.channel)

	// Wait for the subscription to be confirmed so no event is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, fmt.Errorf("redis_event_subscribe_failed: %w", err)
	}

	events := make(chan Event)

	go func() {
		defer close(events)

		messages := pubsub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case message, ok := <-messages:
				if !ok {
					return
				}

				var event Event
				if err := json.Unmarshal([]byte(message.Payload), &event); err != nil {
					bus.logger.Warn("auth_event_decode_failed", slog.String("error", err.Error()))
					continue
				}

				select {
				case events <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events, pubsub.Close, nil
}
