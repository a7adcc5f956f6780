package models

import "time"

// Access event types.
const (
	EventLogin       = "LOGIN"
	EventLoginFailed = "LOGIN_FAILED"
	EventSignUp      = "SIGNUP"
	EventDenied      = "DENIED"
	EventListing     = "LISTING"
	EventLogout      = "LOGOUT"
)

// AccessEvent is a single audit log entry.
type AccessEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"` // LOGIN | LOGIN_FAILED | SIGNUP | DENIED | LISTING | LOGOUT
	Username    string    `json:"username,omitempty"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
