package models

import (
	"time"
)

// EventType identifies a state-changing event broadcast to session subscribers
type EventType string

const (
	// EventSuggestionCreated indicates a new pending suggestion
	EventSuggestionCreated EventType = "suggestion_created"

	// EventSuggestionModerated indicates a suggestion was approved or rejected
	EventSuggestionModerated EventType = "suggestion_moderated"

	// EventRoleChanged indicates a participant's role was assigned or transitioned
	EventRoleChanged EventType = "role_changed"

	// EventResponsivenessChanged indicates the host responsiveness verdict flipped
	EventResponsivenessChanged EventType = "responsiveness_changed"

	// EventItemCreated indicates a tasting item was materialized
	EventItemCreated EventType = "item_created"

	// EventSessionStateChanged indicates a lifecycle transition (start,
	// complete, cancel) outside the responsiveness pair
	EventSessionStateChanged EventType = "session_state_changed"
)

// Event is a state-changing occurrence fanned out to every subscriber of a session
type Event struct {
	// Type identifies what happened
	Type EventType `json:"type"`

	// SessionID is the session the event belongs to
	SessionID string `json:"session_id"`

	// SuggestionID is set for suggestion events
	SuggestionID string `json:"suggestion_id,omitempty"`

	// ItemID is set for item events
	ItemID string `json:"item_id,omitempty"`

	// ParticipantID is set for role events
	ParticipantID string `json:"participant_id,omitempty"`

	// Role is the new role for role events
	Role Role `json:"role,omitempty"`

	// SuggestionStatus is the decided status for moderation events
	SuggestionStatus SuggestionStatus `json:"suggestion_status,omitempty"`

	// SessionState is the new state for lifecycle and responsiveness events
	SessionState SessionState `json:"session_state,omitempty"`

	// HostResponsive is the new verdict for responsiveness events
	HostResponsive bool `json:"host_responsive,omitempty"`

	// At is when the event was published
	At time.Time `json:"at"`
}
