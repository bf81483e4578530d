package audit

import "time"

// Event is an immutable, append-only audit log record for authentication
// activity.
//
// Invariants:
// - Events are never updated or deleted.
// - actor and ip capture are best-effort; do not block auth flows on audit failures.
type Event struct {
	ID string `json:"id" db:"id"`

	// Type indicates the business category of the audit record.
	Type EventType `json:"type" db:"type"`

	// ActorUserID is the authenticated user causing the event (if resolved).
	ActorUserID int64 `json:"actor_user_id,omitempty" db:"actor_user_id"`

	// Username as presented by the client; recorded even for failed logins.
	Username string `json:"username,omitempty" db:"username"`

	// IPAddress should capture the original client IP when available.
	IPAddress string `json:"ip_address,omitempty" db:"ip_address"`

	// Message is a short human-readable description for internal ops.
	Message string `json:"message,omitempty" db:"message"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type EventType string

const (
	EventTypeUserRegistered EventType = "user_registered"
	EventTypeLoginSucceeded EventType = "login_succeeded"
	EventTypeLoginFailed    EventType = "login_failed"
	EventTypeTokenRefreshed EventType = "token_refreshed"
)
