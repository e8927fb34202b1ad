package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/tastevin-app/tastevin/internal/services/session Service

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Service defines the session lifecycle and role registry operations
type Service interface {
	// CreateSession creates a new session in the draft state; the creator
	// automatically receives role both
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// JoinSession adds a user to a session; the first join activates a draft
	// session
	JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error)

	// StartSession explicitly moves a draft session to active
	StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error)

	// CompleteSession ends an active session normally
	CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error)

	// CancelSession terminates a session from any non-terminal state
	CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error)

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// GetSessionStatus reports the session state and host responsiveness,
	// refreshing the responsiveness verdict first
	GetSessionStatus(ctx context.Context, input *GetSessionStatusInput) (*GetSessionStatusOutput, error)

	// AssignRole gives a user a role in a session, enforcing the
	// single-moderator invariant
	AssignRole(ctx context.Context, input *AssignRoleInput) (*AssignRoleOutput, error)

	// TransitionRole changes an existing participant's role, re-checking the
	// single-moderator invariant
	TransitionRole(ctx context.Context, input *TransitionRoleInput) (*TransitionRoleOutput, error)

	// GetParticipant retrieves a single participant of a session
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// ListParticipants retrieves a session's participants in joined-at order
	ListParticipants(ctx context.Context, input *ListParticipantsInput) ([]*models.Participant, error)
}
