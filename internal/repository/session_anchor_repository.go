package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/noah-isme/enroll-flow-api/pkg/errors"
)

// SessionAnchorRepository persists the single session-start timestamp each
// session clock is anchored to. Only the clock reads or writes these keys; no
// other enrollment state survives a process restart. A nil client keeps the
// anchor purely in memory.
type SessionAnchorRepository struct {
	client *redis.Client
	prefix string
}

// NewSessionAnchorRepository constructs an anchor repository with the
// configured key prefix.
func NewSessionAnchorRepository(client *redis.Client, prefix string) *SessionAnchorRepository {
	if prefix == "" {
		prefix = "enroll:anchor:"
	}
	return &SessionAnchorRepository{client: client, prefix: prefix}
}

// Get loads the persisted anchor for a session.
func (r *SessionAnchorRepository) Get(ctx context.Context, sessionID string) (time.Time, error) {
	if r.client == nil {
		return time.Time{}, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return time.Time{}, appErrors.ErrCacheMiss
		}
		return time.Time{}, fmt.Errorf("redis get anchor %s: %w", sessionID, err)
	}

	millis, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse anchor %s: %w", sessionID, err)
	}
	return time.UnixMilli(millis), nil
}

// Set writes the anchor with a TTL; expired anchors self-clean.
func (r *SessionAnchorRepository) Set(ctx context.Context, sessionID string, anchor time.Time, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	raw := strconv.FormatInt(anchor.UnixMilli(), 10)
	if err := r.client.Set(ctx, r.key(sessionID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set anchor %s: %w", sessionID, err)
	}
	return nil
}

// Delete drops the anchor, used when a session is torn down.
func (r *SessionAnchorRepository) Delete(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return nil
	}

	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete anchor %s: %w", sessionID, err)
	}
	return nil
}

func (r *SessionAnchorRepository) key(sessionID string) string {
	return r.prefix + sessionID
}
