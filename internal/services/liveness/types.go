package liveness

import (
	"time"

	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/models"
	heartbeatRepo "github.com/tastevin-app/tastevin/internal/repositories/heartbeat"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
)

const (
	// DefaultHeartbeatPeriod is how often a healthy host client is expected
	// to check in
	DefaultHeartbeatPeriod = 15 * time.Second

	// DefaultUnresponsivenessTimeout is the silence after which the host is
	// deemed unresponsive (four missed heartbeats)
	DefaultUnresponsivenessTimeout = 4 * DefaultHeartbeatPeriod

	// DefaultProlongedAbsenceTimeout is the silence after which participants
	// may force-complete the session
	DefaultProlongedAbsenceTimeout = 4 * DefaultUnresponsivenessTimeout
)

// EventPublisher fans a state-changing event out to session subscribers
type EventPublisher interface {
	Publish(event *models.Event)
}

// Config holds configuration for the liveness service
type Config struct {
	// Repository dependencies
	SessionRepo     sessionRepo.Repository
	ParticipantRepo participantRepo.Repository
	HeartbeatRepo   heartbeatRepo.Repository

	// Service dependencies
	Clock          clock.Clock
	EventPublisher EventPublisher

	// UnresponsivenessTimeout is the silence after which the host is deemed
	// unresponsive; zero means DefaultUnresponsivenessTimeout
	UnresponsivenessTimeout time.Duration

	// ProlongedAbsenceTimeout is the silence after which participants may
	// force-complete the session; zero means DefaultProlongedAbsenceTimeout
	ProlongedAbsenceTimeout time.Duration
}

// RecordHeartbeatInput contains parameters for recording a host heartbeat
type RecordHeartbeatInput struct {
	// SessionID is the session the heartbeat belongs to
	SessionID string

	// UserID is the caller; must be the session host
	UserID string
}

// RecordHeartbeatOutput contains the result of recording a heartbeat
type RecordHeartbeatOutput struct {
	// Record is the stored heartbeat record
	Record *models.HeartbeatRecord
}

// EvaluateInput contains parameters for evaluating host responsiveness
type EvaluateInput struct {
	// SessionID is the session to evaluate
	SessionID string
}

// EvaluateOutput contains a responsiveness verdict
type EvaluateOutput struct {
	// Responsive is the verdict at evaluation time
	Responsive bool

	// State is the session state after any resulting transition
	State models.SessionState
}

// RequestCompletionInput contains parameters for a participant-initiated
// forced completion
type RequestCompletionInput struct {
	// SessionID is the session to complete
	SessionID string

	// UserID is the requesting participant; must not be the host
	UserID string
}

// RequestCompletionOutput contains the result of a forced completion
type RequestCompletionOutput struct {
	// Session is the completed session
	Session *models.Session
}
