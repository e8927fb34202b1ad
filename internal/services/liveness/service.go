package liveness

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/models"
	heartbeatRepo "github.com/tastevin-app/tastevin/internal/repositories/heartbeat"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	sessionRepo     sessionRepo.Repository
	participantRepo participantRepo.Repository
	heartbeatRepo   heartbeatRepo.Repository
	clock           clock.Clock
	publisher       EventPublisher

	unresponsiveAfter time.Duration
	absentAfter       time.Duration
}

// New creates a new liveness service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.ParticipantRepo == nil {
		return nil, ErrNilParticipantRepo
	}

	if cfg.HeartbeatRepo == nil {
		return nil, ErrNilHeartbeatRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.EventPublisher == nil {
		return nil, ErrNilEventPublisher
	}

	unresponsiveAfter := cfg.UnresponsivenessTimeout
	if unresponsiveAfter <= 0 {
		unresponsiveAfter = DefaultUnresponsivenessTimeout
	}

	absentAfter := cfg.ProlongedAbsenceTimeout
	if absentAfter <= 0 {
		absentAfter = DefaultProlongedAbsenceTimeout
	}

	return &service{
		sessionRepo:       cfg.SessionRepo,
		participantRepo:   cfg.ParticipantRepo,
		heartbeatRepo:     cfg.HeartbeatRepo,
		clock:             cfg.Clock,
		publisher:         cfg.EventPublisher,
		unresponsiveAfter: unresponsiveAfter,
		absentAfter:       absentAfter,
	}, nil
}

// RecordHeartbeat stores a host check-in. A heartbeat that arrives while the
// session is moderation_pending triggers an immediate recovery evaluation, so
// the session returns to active without waiting for the next sweep.
func (s *service) RecordHeartbeat(ctx context.Context, input *RecordHeartbeatInput) (*RecordHeartbeatOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if input.UserID != session.HostUserID {
		return nil, ErrNotHost
	}

	if session.IsTerminal() {
		return nil, ErrInvalidInput
	}

	record := &models.HeartbeatRecord{
		SessionID:  input.SessionID,
		HostUserID: input.UserID,
		LastSeenAt: s.clock.Now(),
	}

	if err := s.heartbeatRepo.SaveHeartbeat(ctx, &heartbeatRepo.SaveHeartbeatInput{
		Record: record,
	}); err != nil {
		return nil, err
	}

	if session.State == models.SessionStateModerationPending {
		if _, err := s.evaluate(ctx, session); err != nil {
			return nil, err
		}
	}

	return &RecordHeartbeatOutput{Record: record}, nil
}

// Evaluate computes and applies the responsiveness verdict for a session
func (s *service) Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	return s.evaluate(ctx, session)
}

// HostResponsive evaluates a session and reports the verdict
func (s *service) HostResponsive(ctx context.Context, sessionID string) (bool, error) {
	out, err := s.Evaluate(ctx, &EvaluateInput{SessionID: sessionID})
	if err != nil {
		return false, err
	}
	return out.Responsive, nil
}

// RequestCompletion force-completes a session on a participant's behalf. The
// request is granted only when suggestions are already queueing behind an
// absent host and the silence has exceeded the prolonged-absence threshold.
func (s *service) RequestCompletion(ctx context.Context, input *RequestCompletionInput) (*RequestCompletionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	// The host completes normally; forcing is for everyone else
	if input.UserID == session.HostUserID {
		return nil, ErrForcedCompletionDenied
	}

	if _, err := s.participantRepo.GetParticipantByUser(ctx, &participantRepo.GetParticipantByUserInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	}); err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}

	if session.State != models.SessionStateModerationPending {
		return nil, ErrForcedCompletionDenied
	}

	now := s.clock.Now()
	lastSeen, err := s.lastSeen(ctx, session)
	if err != nil {
		return nil, err
	}

	if now.Sub(lastSeen) <= s.absentAfter {
		return nil, ErrForcedCompletionDenied
	}

	updated := *session
	updated.State = models.SessionStateCompleted
	updated.CompletionReason = models.CompletionReasonHostUnresponsive
	updated.UpdatedAt = now

	if err := s.sessionRepo.UpdateState(ctx, &sessionRepo.UpdateStateInput{
		Session:    &updated,
		FromStates: []models.SessionState{models.SessionStateModerationPending},
	}); err != nil {
		if errors.Is(err, sessionRepo.ErrStateConflict) {
			return nil, ErrForcedCompletionDenied
		}
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:         models.EventSessionStateChanged,
		SessionID:    session.ID,
		SessionState: models.SessionStateCompleted,
		At:           now,
	})

	return &RequestCompletionOutput{Session: &updated}, nil
}

// RunSweep evaluates every live session on a fixed interval until ctx is done
func (s *service) RunSweep(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *service) sweep(ctx context.Context) {
	live, err := s.sessionRepo.GetLiveSessions(ctx, &sessionRepo.GetLiveSessionsInput{})
	if err != nil {
		log.Printf("liveness sweep: listing live sessions: %v", err)
		return
	}

	for _, sessionID := range live.SessionIDs {
		if _, err := s.Evaluate(ctx, &EvaluateInput{SessionID: sessionID}); err != nil {
			log.Printf("liveness sweep: evaluating session %s: %v", sessionID, err)
		}
	}
}

// evaluate applies the verdict for an already-loaded session. Sessions outside
// the live states keep a fixed verdict and are never transitioned.
func (s *service) evaluate(ctx context.Context, session *models.Session) (*EvaluateOutput, error) {
	switch session.State {
	case models.SessionStateDraft:
		return &EvaluateOutput{Responsive: true, State: session.State}, nil
	case models.SessionStateCompleted, models.SessionStateCancelled:
		return &EvaluateOutput{Responsive: false, State: session.State}, nil
	}

	now := s.clock.Now()
	lastSeen, err := s.lastSeen(ctx, session)
	if err != nil {
		return nil, err
	}

	responsive := now.Sub(lastSeen) <= s.unresponsiveAfter

	var from, to models.SessionState
	switch {
	case responsive && session.State == models.SessionStateModerationPending:
		from, to = models.SessionStateModerationPending, models.SessionStateActive
	case !responsive && session.State == models.SessionStateActive:
		from, to = models.SessionStateActive, models.SessionStateModerationPending
	default:
		// Verdict unchanged
		return &EvaluateOutput{Responsive: responsive, State: session.State}, nil
	}

	updated := *session
	updated.State = to
	updated.UpdatedAt = now

	err = s.sessionRepo.UpdateState(ctx, &sessionRepo.UpdateStateInput{
		Session:    &updated,
		FromStates: []models.SessionState{from},
	})
	switch {
	case err == nil:
		s.publisher.Publish(&models.Event{
			Type:           models.EventResponsivenessChanged,
			SessionID:      session.ID,
			SessionState:   to,
			HostResponsive: responsive,
			At:             now,
		})
		return &EvaluateOutput{Responsive: responsive, State: to}, nil
	case errors.Is(err, sessionRepo.ErrStateConflict):
		// A concurrent evaluation or lifecycle call moved the session first
		current, gerr := s.getSession(ctx, session.ID)
		if gerr != nil {
			return nil, gerr
		}
		return &EvaluateOutput{Responsive: responsive, State: current.State}, nil
	default:
		return nil, err
	}
}

// lastSeen is the host's last check-in. A session with no heartbeat yet gets a
// grace window measured from its last update, and the anchor is persisted as a
// synthetic check-in so the state transitions this service performs cannot
// restart the window.
func (s *service) lastSeen(ctx context.Context, session *models.Session) (time.Time, error) {
	record, err := s.heartbeatRepo.GetHeartbeat(ctx, &heartbeatRepo.GetHeartbeatInput{
		SessionID: session.ID,
	})
	if err == nil {
		return record.LastSeenAt, nil
	}
	if !errors.Is(err, heartbeatRepo.ErrHeartbeatNotFound) {
		return time.Time{}, err
	}

	anchor := &models.HeartbeatRecord{
		SessionID:  session.ID,
		HostUserID: session.HostUserID,
		LastSeenAt: session.UpdatedAt,
	}
	if err := s.heartbeatRepo.SaveHeartbeat(ctx, &heartbeatRepo.SaveHeartbeatInput{
		Record: anchor,
	}); err != nil {
		return time.Time{}, err
	}

	return anchor.LastSeenAt, nil
}

func (s *service) getSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: sessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return session, nil
}
