package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/enroll-flow-api/pkg/config"
)

type anchorStore interface {
	Get(ctx context.Context, sessionID string) (time.Time, error)
	Set(ctx context.Context, sessionID string, anchor time.Time, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}

// SessionClock counts down one session's lifetime. The anchor (session start
// instant) is the only persisted piece of session state; everything else the
// clock derives from it on demand.
//
// Expiry runs as an ordered sequence: mark loading, wait the grace period,
// reset the enrollment, re-anchor the countdown, clear loading. The fired
// guard makes the sequence one-shot per countdown cycle even when the reaper
// and a request-path check race.
type SessionClock struct {
	sessionID string
	duration  time.Duration
	grace     time.Duration
	anchors   anchorStore
	logger    *zap.Logger

	onLoading func(bool)
	onExpire  func()

	mu     sync.Mutex
	anchor time.Time
	fired  bool
}

// NewSessionClock builds a clock for one session. onLoading and onExpire are
// invoked during the expiry sequence without the clock lock held.
func NewSessionClock(sessionID string, cfg config.SessionConfig, anchors anchorStore, onLoading func(bool), onExpire func(), logger *zap.Logger) *SessionClock {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionClock{
		sessionID: sessionID,
		duration:  cfg.Duration,
		grace:     cfg.ExpiryGrace,
		anchors:   anchors,
		logger:    logger,
		onLoading: onLoading,
		onExpire:  onExpire,
	}
}

// Start anchors the countdown at now. An anchor already persisted for this
// session (a process restart mid-session) is adopted instead.
func (c *SessionClock) Start(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if persisted, err := c.anchors.Get(ctx, c.sessionID); err == nil && !persisted.IsZero() {
		c.anchor = persisted
		return
	}
	c.rearmLocked(ctx)
}

// Reset re-anchors the countdown at now and re-arms the expiry guard.
func (c *SessionClock) Reset(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rearmLocked(ctx)
}

func (c *SessionClock) rearmLocked(ctx context.Context) {
	c.anchor = time.Now()
	c.fired = false
	if err := c.anchors.Set(ctx, c.sessionID, c.anchor, c.duration+c.grace); err != nil {
		c.logger.Warn("session anchor persist failed", zap.String("session_id", c.sessionID), zap.Error(err))
	}
}

// Remaining returns the time left, floored at zero.
func (c *SessionClock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	left := c.duration - time.Since(c.anchor)
	if left < 0 {
		return 0
	}
	return left
}

// Expired reports whether the countdown has run out.
func (c *SessionClock) Expired() bool {
	return c.Remaining() == 0
}

// Display renders the countdown as MM:SS, rounding the trailing partial
// second up so the display only shows 00:00 once truly expired.
func (c *SessionClock) Display() string {
	secs := int((c.Remaining() + time.Second - 1) / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

// ExpiresAt returns the instant the current countdown runs out.
func (c *SessionClock) ExpiresAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor.Add(c.duration)
}

// TriggerExpiry runs the expiry sequence once per countdown cycle. Callers
// invoke it whenever they observe Expired(); extra invocations are no-ops
// until the clock is re-anchored.
func (c *SessionClock) TriggerExpiry(ctx context.Context) {
	c.mu.Lock()
	if c.fired || c.duration-time.Since(c.anchor) > 0 {
		c.mu.Unlock()
		return
	}
	c.fired = true
	c.mu.Unlock()

	if c.onLoading != nil {
		c.onLoading(true)
	}
	time.Sleep(c.grace)
	if c.onExpire != nil {
		c.onExpire()
	}
	c.Reset(ctx)
	if c.onLoading != nil {
		c.onLoading(false)
	}
}

// Stop drops the persisted anchor when the session is torn down.
func (c *SessionClock) Stop(ctx context.Context) {
	if err := c.anchors.Delete(ctx, c.sessionID); err != nil {
		c.logger.Warn("session anchor delete failed", zap.String("session_id", c.sessionID), zap.Error(err))
	}
}
