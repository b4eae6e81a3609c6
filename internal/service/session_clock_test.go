package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/enroll-flow-api/internal/repository"
	"github.com/noah-isme/enroll-flow-api/pkg/config"
)

func newClockForTest(duration, grace time.Duration, onLoading func(bool), onExpire func()) *SessionClock {
	cfg := config.SessionConfig{Duration: duration, ExpiryGrace: grace}
	anchors := repository.NewSessionAnchorRepository(nil, "")
	return NewSessionClock("session-1", cfg, anchors, onLoading, onExpire, nil)
}

func TestClockRemainingAndDisplay(t *testing.T) {
	c := newClockForTest(time.Hour, time.Millisecond, nil, nil)
	c.Start(context.Background())

	remaining := c.Remaining()
	assert.True(t, remaining > 59*time.Minute, "remaining %s", remaining)
	assert.Equal(t, "60:00", c.Display())
	assert.False(t, c.Expired())
}

func TestClockExpires(t *testing.T) {
	c := newClockForTest(5*time.Millisecond, time.Millisecond, nil, nil)
	c.Start(context.Background())

	time.Sleep(10 * time.Millisecond)
	assert.True(t, c.Expired())
	assert.Equal(t, time.Duration(0), c.Remaining())
	assert.Equal(t, "00:00", c.Display())
}

func TestClockResetRestartsCountdown(t *testing.T) {
	c := newClockForTest(5*time.Millisecond, time.Millisecond, nil, nil)
	c.Start(context.Background())
	time.Sleep(10 * time.Millisecond)
	require.True(t, c.Expired())

	c.Reset(context.Background())
	assert.False(t, c.Expired())
}

func TestClockExpirySequenceOrder(t *testing.T) {
	var mu sync.Mutex
	var events []string

	c := newClockForTest(time.Millisecond, 5*time.Millisecond,
		func(loading bool) {
			mu.Lock()
			defer mu.Unlock()
			if loading {
				events = append(events, "loading-on")
			} else {
				events = append(events, "loading-off")
			}
		},
		func() {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, "reset")
		},
	)
	c.Start(context.Background())
	time.Sleep(3 * time.Millisecond)

	c.TriggerExpiry(context.Background())

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []string{"loading-on", "reset", "loading-off"}, events)
	assert.False(t, c.Expired())
}

func TestClockExpiryFiresOnce(t *testing.T) {
	fired := 0
	c := newClockForTest(time.Millisecond, 0, nil, func() { fired++ })
	c.Start(context.Background())
	time.Sleep(3 * time.Millisecond)

	// simulate the reaper and a request-path check racing: the guard in
	// TriggerExpiry admits only the first caller per countdown cycle
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.TriggerExpiry(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fired)
}

func TestClockNoExpiryBeforeCountdownRunsOut(t *testing.T) {
	fired := false
	c := newClockForTest(time.Hour, 0, nil, func() { fired = true })
	c.Start(context.Background())

	c.TriggerExpiry(context.Background())
	assert.False(t, fired)
}
