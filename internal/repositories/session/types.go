package session

import (
	"github.com/tastevin-app/tastevin/internal/models"
)

// SaveSessionInput contains parameters for persisting a session
type SaveSessionInput struct {
	// Session is the session to persist
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	// SessionID is the unique identifier of the session
	SessionID string
}

// UpdateStateInput contains parameters for a conditional state transition
type UpdateStateInput struct {
	// Session is the session carrying the new state and updated timestamp
	Session *models.Session

	// FromStates are the states the transition is allowed to start from;
	// the update fails with ErrStateConflict if the stored state is not one of them
	FromStates []models.SessionState
}

// GetLiveSessionsInput contains parameters for listing live sessions
type GetLiveSessionsInput struct{}

// GetLiveSessionsOutput contains the IDs of all live sessions
type GetLiveSessionsOutput struct {
	// SessionIDs are the sessions currently in a live state
	SessionIDs []string
}
