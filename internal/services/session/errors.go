package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidInput           SessionError = "missing or invalid input"
	ErrSessionNotFound        SessionError = "session not found"
	ErrParticipantNotFound    SessionError = "participant not found"
	ErrInvalidApproach        SessionError = "approach must be predefined or collaborative"
	ErrInvalidRole            SessionError = "role must be host, participant or both"
	ErrMissingInitialItems    SessionError = "predefined sessions require initial items"
	ErrUnexpectedInitialItems SessionError = "collaborative sessions must start without items"
	ErrHostAlreadyAssigned    SessionError = "another participant already holds moderation authority"
	ErrNotModerator           SessionError = "participant lacks moderation authority"
	ErrInvalidSessionState    SessionError = "session is not in a valid state for this operation"
	ErrNilConfig              SessionError = "config cannot be nil"
	ErrNilSessionRepo         SessionError = "session repository cannot be nil"
	ErrNilParticipantRepo     SessionError = "participant repository cannot be nil"
	ErrNilTastingRepo         SessionError = "tasting repository cannot be nil"
	ErrNilClock               SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator       SessionError = "UUID generator cannot be nil"
	ErrNilEventPublisher      SessionError = "event publisher cannot be nil"
)
