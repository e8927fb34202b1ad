package models

import (
	"time"
)

// SuggestionStatus represents the moderation state of a suggestion
type SuggestionStatus string

const (
	// SuggestionStatusPending indicates a suggestion awaiting a moderation decision
	SuggestionStatusPending SuggestionStatus = "pending"

	// SuggestionStatusApproved indicates a suggestion accepted by a moderator
	SuggestionStatusApproved SuggestionStatus = "approved"

	// SuggestionStatusRejected indicates a suggestion declined by a moderator
	SuggestionStatusRejected SuggestionStatus = "rejected"
)

// Suggestion represents a proposed tasting item awaiting moderation.
// Status transitions exactly once, pending to approved or pending to rejected.
type Suggestion struct {
	// ID is the unique identifier for this suggestion
	ID string

	// SessionID is the session the suggestion belongs to
	SessionID string

	// ParticipantID is the membership that proposed the item
	ParticipantID string

	// ItemName is the proposed item
	ItemName string

	// Status is the current moderation state
	Status SuggestionStatus

	// Seq is the per-session sequence number, strictly increasing, assigned at
	// submission; the basis for FIFO presentation and backlog processing order
	Seq int64

	// QueuedDuringAbsence marks a suggestion submitted while the host was
	// deemed unresponsive; informational only, moderation treats it normally
	QueuedDuringAbsence bool

	// ModeratorID is the participant who decided this suggestion
	ModeratorID string

	// ModeratedAt is when the decision was recorded
	ModeratedAt *time.Time

	// CreatedAt is when the suggestion was submitted
	CreatedAt time.Time
}
