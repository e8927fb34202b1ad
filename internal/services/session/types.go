package session

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/common/uuid"
	"github.com/tastevin-app/tastevin/internal/models"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
)

// EventPublisher fans a state-changing event out to session subscribers.
// Publishing is fire-and-forget; it never blocks or fails the mutating call.
type EventPublisher interface {
	Publish(event *models.Event)
}

// ResponsivenessEvaluator reports whether a session's host is currently
// responsive, applying any resulting state transition as a side effect
type ResponsivenessEvaluator interface {
	HostResponsive(ctx context.Context, sessionID string) (bool, error)
}

// Config holds configuration for the session service
type Config struct {
	// Repository dependencies
	SessionRepo     sessionRepo.Repository
	ParticipantRepo participantRepo.Repository
	TastingRepo     tastingRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
	EventPublisher EventPublisher

	// Liveness optionally refreshes the responsiveness verdict on status
	// reads; nil disables lazy evaluation
	Liveness ResponsivenessEvaluator
}

// CreateSessionInput contains parameters for creating a new session
type CreateSessionInput struct {
	// HostUserID is the user creating the session
	HostUserID string

	// Approach determines whether items are pre-loaded or suggested
	Approach models.SessionApproach

	// CategoryDefs are the evaluation categories for the session
	CategoryDefs []string

	// InitialItems pre-loads tasting items; required for the predefined
	// approach and forbidden for the collaborative one
	InitialItems []string
}

// CreateSessionOutput contains the result of creating a session
type CreateSessionOutput struct {
	// Session is the created session, in the draft state
	Session *models.Session

	// Participant is the creator's membership, with role both
	Participant *models.Participant
}

// JoinSessionInput contains parameters for joining a session
type JoinSessionInput struct {
	// SessionID is the session to join
	SessionID string

	// UserID is the joining user
	UserID string
}

// JoinSessionOutput contains the result of joining a session
type JoinSessionOutput struct {
	// Participant is the user's membership
	Participant *models.Participant

	// AlreadyJoined indicates the user was already a participant
	AlreadyJoined bool
}

// StartSessionInput contains parameters for explicitly starting a session
type StartSessionInput struct {
	// SessionID is the session to start
	SessionID string

	// UserID is the caller; must hold moderation authority
	UserID string
}

// StartSessionOutput contains the result of starting a session
type StartSessionOutput struct {
	// Session is the session in its new state
	Session *models.Session
}

// CompleteSessionInput contains parameters for completing a session
type CompleteSessionInput struct {
	// SessionID is the session to complete
	SessionID string

	// UserID is the caller; must hold moderation authority
	UserID string
}

// CompleteSessionOutput contains the result of completing a session
type CompleteSessionOutput struct {
	// Session is the completed session
	Session *models.Session
}

// CancelSessionInput contains parameters for cancelling a session
type CancelSessionInput struct {
	// SessionID is the session to cancel
	SessionID string

	// UserID is the caller; must hold moderation authority
	UserID string
}

// CancelSessionOutput contains the result of cancelling a session
type CancelSessionOutput struct {
	// Session is the cancelled session
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	// SessionID is the session to retrieve
	SessionID string
}

// GetSessionStatusInput contains parameters for reading a session's status
type GetSessionStatusInput struct {
	// SessionID is the session whose status to read
	SessionID string
}

// GetSessionStatusOutput contains a session's externally visible status
type GetSessionStatusOutput struct {
	// State is the session's current lifecycle state
	State models.SessionState

	// HostResponsive is the current responsiveness verdict
	HostResponsive bool
}

// AssignRoleInput contains parameters for assigning a role to a user
type AssignRoleInput struct {
	// SessionID is the session to assign the role in
	SessionID string

	// UserID is the user receiving the role
	UserID string

	// Role is the role to assign
	Role models.Role
}

// AssignRoleOutput contains the result of assigning a role
type AssignRoleOutput struct {
	// Participant is the membership carrying the new role
	Participant *models.Participant
}

// TransitionRoleInput contains parameters for changing a participant's role
type TransitionRoleInput struct {
	// SessionID is the session the participant belongs to
	SessionID string

	// ParticipantID is the membership to change
	ParticipantID string

	// NewRole is the role to transition to
	NewRole models.Role
}

// TransitionRoleOutput contains the result of a role transition
type TransitionRoleOutput struct {
	// Participant is the membership carrying the new role
	Participant *models.Participant
}

// GetParticipantInput contains parameters for retrieving a participant
type GetParticipantInput struct {
	// SessionID is the session the participant belongs to
	SessionID string

	// ParticipantID is the membership to retrieve
	ParticipantID string
}

// ListParticipantsInput contains parameters for listing participants
type ListParticipantsInput struct {
	// SessionID is the session whose participants to list
	SessionID string
}
