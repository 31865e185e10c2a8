package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
	"github.com/pkordes/trip-planner/internal/notify"
)

func newQueue() (*notify.Queue, *clock.FakeClock) {
	c := clock.Fake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	return notify.New(c), c
}

// TestQueue_ExpiresAtTTLNotBefore enqueues with ttl=5000ms and checks the
// notification survives 4999ms and is gone at 5000ms.
func TestQueue_ExpiresAtTTLNotBefore(t *testing.T) {
	q, c := newQueue()

	q.Enqueue("Trip saved", domain.SeveritySuccess, 5000*time.Millisecond)

	c.Advance(4999 * time.Millisecond)
	require.Equal(t, 1, q.Len(), "must not expire before ttl")

	c.Advance(time.Millisecond)
	assert.Equal(t, 0, q.Len(), "must expire once ttl has elapsed")
}

func TestQueue_DefaultTTL(t *testing.T) {
	q, c := newQueue()

	q.Success("Login successful!")
	c.Advance(notify.DefaultTTL - time.Millisecond)
	require.Equal(t, 1, q.Len())

	c.Advance(time.Millisecond)
	assert.Equal(t, 0, q.Len())
}

func TestQueue_NegativeTTLIsSticky(t *testing.T) {
	q, c := newQueue()

	q.Enqueue("read me", domain.SeverityInfo, -1)
	c.Advance(time.Hour)

	assert.Equal(t, 1, q.Len())
	assert.Equal(t, 0, c.Pending())
}

func TestQueue_DismissCancelsExpiry(t *testing.T) {
	q, c := newQueue()

	id := q.Error("boom")
	require.True(t, q.Dismiss(id))
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, 0, c.Pending(), "timer should be stopped")
	assert.False(t, q.Dismiss(id), "second dismiss is a no-op")
}

func TestQueue_InsertionOrder(t *testing.T) {
	q, c := newQueue()

	q.Enqueue("first", domain.SeverityInfo, 3*time.Second)
	q.Enqueue("second", domain.SeverityError, time.Second)
	q.Enqueue("third", domain.SeveritySuccess, 2*time.Second)

	list := q.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{list[0].Message, list[1].Message, list[2].Message})

	c.Advance(time.Second)
	list = q.List()
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Message)
	assert.Equal(t, "third", list[1].Message)
}

func TestQueue_OnChange(t *testing.T) {
	c := clock.Fake(time.Now())
	calls := 0
	q := notify.New(c, notify.WithOnChange(func() { calls++ }), notify.WithDefaultTTL(time.Second))

	q.Info("hello")
	c.Advance(time.Second)

	assert.Equal(t, 2, calls, "one call for add, one for expiry")
}
