package liveness

// LivenessError is a custom error type for responsiveness-related errors
type LivenessError string

// Error implements the error interface
func (e LivenessError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidInput           LivenessError = "missing or invalid input"
	ErrSessionNotFound        LivenessError = "session not found"
	ErrNotHost                LivenessError = "only the host records heartbeats"
	ErrNotParticipant         LivenessError = "caller is not a participant of this session"
	ErrForcedCompletionDenied LivenessError = "forced completion denied"
	ErrNilConfig              LivenessError = "config cannot be nil"
	ErrNilSessionRepo         LivenessError = "session repository cannot be nil"
	ErrNilParticipantRepo     LivenessError = "participant repository cannot be nil"
	ErrNilHeartbeatRepo       LivenessError = "heartbeat repository cannot be nil"
	ErrNilClock               LivenessError = "clock cannot be nil"
	ErrNilEventPublisher      LivenessError = "event publisher cannot be nil"
)
