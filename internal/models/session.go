package models

import (
	"time"
)

// SessionApproach determines how tasting items enter a session
type SessionApproach string

const (
	// ApproachPredefined indicates the host pre-loads every item; participants never suggest
	ApproachPredefined SessionApproach = "predefined"

	// ApproachCollaborative indicates participants propose items and the host moderates them
	ApproachCollaborative SessionApproach = "collaborative"
)

// SessionState represents the current state of a tasting session
type SessionState string

const (
	// SessionStateDraft indicates a session that has been created but not yet started
	SessionStateDraft SessionState = "draft"

	// SessionStateActive indicates a session that is running with a responsive host
	SessionStateActive SessionState = "active"

	// SessionStateModerationPending indicates the host is currently deemed unresponsive;
	// suggestions queue up until a moderator is available again
	SessionStateModerationPending SessionState = "moderation_pending"

	// SessionStateCompleted indicates a finished session, kept as read-only history
	SessionStateCompleted SessionState = "completed"

	// SessionStateCancelled indicates a session terminated by the host before completion
	SessionStateCancelled SessionState = "cancelled"
)

// CompletionReason records why a session reached the completed state
type CompletionReason string

const (
	// CompletionReasonHostCompleted indicates the host ended the session normally
	CompletionReasonHostCompleted CompletionReason = "host_completed"

	// CompletionReasonHostUnresponsive indicates a participant forced completion
	// after prolonged host absence
	CompletionReasonHostUnresponsive CompletionReason = "host_unresponsive"
)

// Session represents a tasting session
type Session struct {
	// ID is the unique identifier for this session
	ID string

	// HostUserID is the user who created the session and holds moderation authority
	HostUserID string

	// Approach determines whether items are pre-loaded or collaboratively suggested
	Approach SessionApproach

	// State is the current lifecycle state of the session
	State SessionState

	// CompletionReason is set once the session reaches the completed state
	CompletionReason CompletionReason

	// CategoryDefs are the evaluation categories defined at creation
	CategoryDefs []string

	// CreatedAt is when the session was created
	CreatedAt time.Time

	// UpdatedAt is when the session was last updated
	UpdatedAt time.Time
}

// IsTerminal reports whether the session can no longer change state.
func (s *Session) IsTerminal() bool {
	return s.State == SessionStateCompleted || s.State == SessionStateCancelled
}
