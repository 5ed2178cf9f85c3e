package events

import (
	"time"

	"github.com/spec-kit/cafe-feedback/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventFeedbackSubmitted EventType = "feedback_submitted"
	EventRelayDelivered    EventType = "relay_delivered"
	EventRelayFailed       EventType = "relay_failed"
	EventRosterImported    EventType = "roster_imported"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// FeedbackSubmittedPayload payload.
type FeedbackSubmittedPayload struct {
	Record domain.FeedbackRecord `json:"record"`
}

// RelayDeliveredPayload payload.
type RelayDeliveredPayload struct {
	EmployeeID string `json:"employee_id"`
	Verified   bool   `json:"verified"`
}

// RelayFailedPayload payload.
type RelayFailedPayload struct {
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// RosterImportedPayload payload.
type RosterImportedPayload struct {
	Added int `json:"added"`
}
