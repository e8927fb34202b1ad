package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tastevin-app/tastevin/internal/repositories/session Repository

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Repository defines the interface for session data persistence
type Repository interface {
	// SaveSession persists a session
	SaveSession(ctx context.Context, input *SaveSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateState transitions a session's state, conditional on the current
	// state being one of the allowed from-states
	UpdateState(ctx context.Context, input *UpdateStateInput) error

	// GetLiveSessions retrieves the IDs of all sessions in a live state
	// (active or moderation_pending), for the responsiveness sweep
	GetLiveSessions(ctx context.Context, input *GetLiveSessionsInput) (*GetLiveSessionsOutput, error)
}
