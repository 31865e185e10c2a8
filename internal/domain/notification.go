package domain

import (
	"time"

	"github.com/google/uuid"
)

// Severity controls how a notification is styled.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notification is a transient, user-facing message. A non-positive TTL means
// the notification stays until dismissed.
type Notification struct {
	ID        uuid.UUID     `json:"id"`
	Message   string        `json:"message"`
	Severity  Severity      `json:"type"`
	TTL       time.Duration `json:"-"`
	CreatedAt time.Time     `json:"createdAt"`
}

// DurationMS reports TTL in milliseconds for the browser page.
func (n Notification) DurationMS() int64 {
	return n.TTL.Milliseconds()
}
