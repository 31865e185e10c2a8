// Package notify holds the ordered list of transient messages shown to one
// client as toasts. Every message schedules its own removal after its TTL;
// dismissing it first cancels the timer.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/trip-planner/internal/clock"
	"github.com/pkordes/trip-planner/internal/domain"
)

// DefaultTTL is used when Enqueue is called with a zero TTL.
const DefaultTTL = 5000 * time.Millisecond

type entry struct {
	note  domain.Notification
	timer clock.Timer
}

// Queue is safe for concurrent use: expiry callbacks run on timer goroutines.
type Queue struct {
	mu         sync.Mutex
	clock      clock.Clock
	defaultTTL time.Duration
	entries    []*entry
	onChange   func()
}

// Option configures a Queue.
type Option func(*Queue)

// WithDefaultTTL overrides DefaultTTL. Non-positive values are ignored.
func WithDefaultTTL(d time.Duration) Option {
	return func(q *Queue) {
		if d > 0 {
			q.defaultTTL = d
		}
	}
}

// WithOnChange registers a callback invoked after every add or removal,
// outside the queue lock.
func WithOnChange(f func()) Option {
	return func(q *Queue) { q.onChange = f }
}

// New returns an empty Queue driven by c.
func New(c clock.Clock, opts ...Option) *Queue {
	q := &Queue{clock: c, defaultTTL: DefaultTTL}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Enqueue appends a notification and returns its id.
// ttl == 0 selects the default TTL; ttl < 0 keeps the notification until it
// is dismissed.
func (q *Queue) Enqueue(message string, severity domain.Severity, ttl time.Duration) uuid.UUID {
	if ttl == 0 {
		ttl = q.defaultTTL
	}
	id := uuid.New()
	e := &entry{note: domain.Notification{
		ID:        id,
		Message:   message,
		Severity:  severity,
		TTL:       ttl,
		CreatedAt: q.clock.Now(),
	}}

	q.mu.Lock()
	q.entries = append(q.entries, e)
	if ttl > 0 {
		e.timer = q.clock.AfterFunc(ttl, func() { q.expire(id) })
	}
	q.mu.Unlock()

	q.changed()
	return id
}

// Success enqueues a success message with the default TTL.
func (q *Queue) Success(message string) uuid.UUID {
	return q.Enqueue(message, domain.SeveritySuccess, 0)
}

// Error enqueues an error message with the default TTL.
func (q *Queue) Error(message string) uuid.UUID {
	return q.Enqueue(message, domain.SeverityError, 0)
}

// Info enqueues an informational message with the default TTL.
func (q *Queue) Info(message string) uuid.UUID {
	return q.Enqueue(message, domain.SeverityInfo, 0)
}

// Warning enqueues a warning with the default TTL.
func (q *Queue) Warning(message string) uuid.UUID {
	return q.Enqueue(message, domain.SeverityWarning, 0)
}

// Dismiss removes the notification immediately and cancels its expiry.
// It reports whether the id was present.
func (q *Queue) Dismiss(id uuid.UUID) bool {
	q.mu.Lock()
	e := q.remove(id)
	q.mu.Unlock()
	if e == nil {
		return false
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	q.changed()
	return true
}

// List returns the live notifications in insertion order.
func (q *Queue) List() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Notification, len(q.entries))
	for i, e := range q.entries {
		out[i] = e.note
	}
	return out
}

// Len returns the number of live notifications.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Clear dismisses every notification.
func (q *Queue) Clear() {
	q.mu.Lock()
	entries := q.entries
	q.entries = nil
	q.mu.Unlock()
	for _, e := range entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	if len(entries) > 0 {
		q.changed()
	}
}

func (q *Queue) expire(id uuid.UUID) {
	q.mu.Lock()
	e := q.remove(id)
	q.mu.Unlock()
	if e != nil {
		q.changed()
	}
}

// remove must be called with q.mu held.
func (q *Queue) remove(id uuid.UUID) *entry {
	for i, e := range q.entries {
		if e.note.ID == id {
			q.entries = append(q.entries[:i], q.entries[i+1:]...)
			return e
		}
	}
	return nil
}

func (q *Queue) changed() {
	if q.onChange != nil {
		q.onChange()
	}
}
