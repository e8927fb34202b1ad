package session

import (
	"context"
	"errors"
	"log"

	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/common/uuid"
	"github.com/tastevin-app/tastevin/internal/models"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
)

// service implements the Service interface
type service struct {
	sessionRepo     sessionRepo.Repository
	participantRepo participantRepo.Repository
	tastingRepo     tastingRepo.Repository
	clock           clock.Clock
	uuidGen         uuid.UUID
	publisher       EventPublisher
	liveness        ResponsivenessEvaluator
}

// New creates a new session service
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

	if cfg.TastingRepo == nil {
		return nil, ErrNilTastingRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.EventPublisher == nil {
		return nil, ErrNilEventPublisher
	}

	return &service{
		sessionRepo:     cfg.SessionRepo,
		participantRepo: cfg.ParticipantRepo,
		tastingRepo:     cfg.TastingRepo,
		clock:           cfg.Clock,
		uuidGen:         cfg.UUIDGenerator,
		publisher:       cfg.EventPublisher,
		liveness:        cfg.Liveness,
	}, nil
}

// CreateSession creates a new session in the draft state. The creator is the
// session host and automatically receives role both; for the predefined
// approach the initial items are materialized immediately.
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil || input.HostUserID == "" {
		return nil, ErrInvalidInput
	}

	switch input.Approach {
	case models.ApproachPredefined:
		if len(input.InitialItems) == 0 {
			return nil, ErrMissingInitialItems
		}
	case models.ApproachCollaborative:
		if len(input.InitialItems) > 0 {
			return nil, ErrUnexpectedInitialItems
		}
	default:
		return nil, ErrInvalidApproach
	}

	now := s.clock.Now()

	session := &models.Session{
		ID:           s.uuidGen.NewUUID(),
		HostUserID:   input.HostUserID,
		Approach:     input.Approach,
		State:        models.SessionStateDraft,
		CategoryDefs: input.CategoryDefs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.sessionRepo.SaveSession(ctx, &sessionRepo.SaveSessionInput{
		Session: session,
	}); err != nil {
		return nil, err
	}

	// The creator holds the single moderator slot from the start
	if err := s.participantRepo.ClaimModerator(ctx, &participantRepo.ClaimModeratorInput{
		SessionID: session.ID,
		UserID:    input.HostUserID,
	}); err != nil {
		return nil, err
	}

	host := &models.Participant{
		ID:        s.uuidGen.NewUUID(),
		SessionID: session.ID,
		UserID:    input.HostUserID,
		Role:      models.RoleBoth,
		JoinedAt:  now,
	}

	if err := s.participantRepo.SaveParticipant(ctx, &participantRepo.SaveParticipantInput{
		Participant: host,
	}); err != nil {
		return nil, err
	}

	for _, name := range input.InitialItems {
		item := &models.TastingItem{
			ID:        s.uuidGen.NewUUID(),
			SessionID: session.ID,
			ItemName:  name,
			CreatedAt: now,
		}
		if err := s.tastingRepo.SaveItem(ctx, &tastingRepo.SaveItemInput{
			Item: item,
		}); err != nil {
			return nil, err
		}

		s.publisher.Publish(&models.Event{
			Type:      models.EventItemCreated,
			SessionID: session.ID,
			ItemID:    item.ID,
			At:        now,
		})
	}

	s.publisher.Publish(&models.Event{
		Type:          models.EventRoleChanged,
		SessionID:     session.ID,
		ParticipantID: host.ID,
		Role:          host.Role,
		At:            now,
	})

	return &CreateSessionOutput{
		Session:     session,
		Participant: host,
	}, nil
}

// JoinSession adds a user to a session. Joining is idempotent per user; the
// host joins back as role both, anyone else as participant. The first join of
// a draft session activates it.
func (s *service) JoinSession(ctx context.Context, input *JoinSessionInput) (*JoinSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	// Role assignment is only open while the session is draft or active
	if session.State != models.SessionStateDraft && session.State != models.SessionStateActive {
		return nil, ErrInvalidSessionState
	}

	existing, err := s.participantRepo.GetParticipantByUser(ctx, &participantRepo.GetParticipantByUserInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})
	if err == nil {
		return &JoinSessionOutput{
			Participant:   existing,
			AlreadyJoined: true,
		}, nil
	}
	if !errors.Is(err, participantRepo.ErrParticipantNotFound) {
		return nil, err
	}

	now := s.clock.Now()

	role := models.RoleParticipant
	if input.UserID == session.HostUserID {
		role = models.RoleBoth
		if err := s.participantRepo.ClaimModerator(ctx, &participantRepo.ClaimModeratorInput{
			SessionID: input.SessionID,
			UserID:    input.UserID,
		}); err != nil {
			if errors.Is(err, participantRepo.ErrModeratorTaken) {
				return nil, ErrHostAlreadyAssigned
			}
			return nil, err
		}
	}

	p := &models.Participant{
		ID:        s.uuidGen.NewUUID(),
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      role,
		JoinedAt:  now,
	}

	if err := s.participantRepo.SaveParticipant(ctx, &participantRepo.SaveParticipantInput{
		Participant: p,
	}); err != nil {
		return nil, err
	}

	if session.State == models.SessionStateDraft {
		session.State = models.SessionStateActive
		session.UpdatedAt = now
		err := s.sessionRepo.UpdateState(ctx, &sessionRepo.UpdateStateInput{
			Session:    session,
			FromStates: []models.SessionState{models.SessionStateDraft},
		})
		switch {
		case err == nil:
			s.publisher.Publish(&models.Event{
				Type:         models.EventSessionStateChanged,
				SessionID:    session.ID,
				SessionState: models.SessionStateActive,
				At:           now,
			})
		case errors.Is(err, sessionRepo.ErrStateConflict):
			// A concurrent join already activated the session
		default:
			return nil, err
		}
	}

	s.publisher.Publish(&models.Event{
		Type:          models.EventRoleChanged,
		SessionID:     session.ID,
		ParticipantID: p.ID,
		Role:          p.Role,
		At:            now,
	})

	return &JoinSessionOutput{
		Participant: p,
	}, nil
}

// StartSession explicitly moves a draft session to active
func (s *service) StartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.requireModerator(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	out, err := s.transition(ctx, session, models.SessionStateActive, "",
		models.SessionStateDraft)
	if err != nil {
		return nil, err
	}

	return &StartSessionOutput{Session: out}, nil
}

// CompleteSession ends an active session normally
func (s *service) CompleteSession(ctx context.Context, input *CompleteSessionInput) (*CompleteSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.requireModerator(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	out, err := s.transition(ctx, session, models.SessionStateCompleted, models.CompletionReasonHostCompleted,
		models.SessionStateActive)
	if err != nil {
		return nil, err
	}

	return &CompleteSessionOutput{Session: out}, nil
}

// CancelSession terminates a session from any non-terminal state
func (s *service) CancelSession(ctx context.Context, input *CancelSessionInput) (*CancelSessionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.requireModerator(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	out, err := s.transition(ctx, session, models.SessionStateCancelled, "",
		models.SessionStateDraft, models.SessionStateActive, models.SessionStateModerationPending)
	if err != nil {
		return nil, err
	}

	return &CancelSessionOutput{Session: out}, nil
}

// GetSession retrieves a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	return s.getSession(ctx, input.SessionID)
}

// GetSessionStatus reports the session state and host responsiveness. The
// responsiveness verdict is refreshed first, so a stopped heartbeat is
// reflected on the very next status read rather than on the next sweep.
func (s *service) GetSessionStatus(ctx context.Context, input *GetSessionStatusInput) (*GetSessionStatusOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	switch session.State {
	case models.SessionStateDraft:
		return &GetSessionStatusOutput{State: session.State, HostResponsive: true}, nil
	case models.SessionStateCompleted, models.SessionStateCancelled:
		return &GetSessionStatusOutput{State: session.State, HostResponsive: false}, nil
	}

	responsive := true
	if s.liveness != nil {
		responsive, err = s.liveness.HostResponsive(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}

		// Evaluation may have just transitioned the state
		session, err = s.getSession(ctx, input.SessionID)
		if err != nil {
			return nil, err
		}
	}

	return &GetSessionStatusOutput{
		State:          session.State,
		HostResponsive: responsive,
	}, nil
}

// AssignRole gives a user a role in a session. Fails with
// ErrHostAlreadyAssigned when a different user already holds moderation
// authority.
func (s *service) AssignRole(ctx context.Context, input *AssignRoleInput) (*AssignRoleOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.State != models.SessionStateDraft && session.State != models.SessionStateActive {
		return nil, ErrInvalidSessionState
	}

	existing, err := s.participantRepo.GetParticipantByUser(ctx, &participantRepo.GetParticipantByUserInput{
		SessionID: input.SessionID,
		UserID:    input.UserID,
	})
	if err == nil {
		out, err := s.changeRole(ctx, existing, input.Role)
		if err != nil {
			return nil, err
		}
		return &AssignRoleOutput{Participant: out}, nil
	}
	if !errors.Is(err, participantRepo.ErrParticipantNotFound) {
		return nil, err
	}

	if input.Role.Moderates() {
		if err := s.participantRepo.ClaimModerator(ctx, &participantRepo.ClaimModeratorInput{
			SessionID: input.SessionID,
			UserID:    input.UserID,
		}); err != nil {
			if errors.Is(err, participantRepo.ErrModeratorTaken) {
				return nil, ErrHostAlreadyAssigned
			}
			return nil, err
		}
	}

	now := s.clock.Now()
	p := &models.Participant{
		ID:        s.uuidGen.NewUUID(),
		SessionID: input.SessionID,
		UserID:    input.UserID,
		Role:      input.Role,
		JoinedAt:  now,
	}

	if err := s.participantRepo.SaveParticipant(ctx, &participantRepo.SaveParticipantInput{
		Participant: p,
	}); err != nil {
		if input.Role.Moderates() {
			s.releaseModerator(ctx, input.SessionID, input.UserID)
		}
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:          models.EventRoleChanged,
		SessionID:     input.SessionID,
		ParticipantID: p.ID,
		Role:          p.Role,
		At:            now,
	})

	return &AssignRoleOutput{Participant: p}, nil
}

// TransitionRole changes an existing participant's role, re-checking the
// single-moderator invariant on every transition
func (s *service) TransitionRole(ctx context.Context, input *TransitionRoleInput) (*TransitionRoleOutput, error) {
	if input == nil || input.SessionID == "" || input.ParticipantID == "" {
		return nil, ErrInvalidInput
	}

	if !input.NewRole.Valid() {
		return nil, ErrInvalidRole
	}

	p, err := s.participantRepo.GetParticipant(ctx, &participantRepo.GetParticipantInput{
		ParticipantID: input.ParticipantID,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if p.SessionID != input.SessionID {
		return nil, ErrParticipantNotFound
	}

	out, err := s.changeRole(ctx, p, input.NewRole)
	if err != nil {
		return nil, err
	}

	return &TransitionRoleOutput{Participant: out}, nil
}

// GetParticipant retrieves a single participant of a session
func (s *service) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.SessionID == "" || input.ParticipantID == "" {
		return nil, ErrInvalidInput
	}

	p, err := s.participantRepo.GetParticipant(ctx, &participantRepo.GetParticipantInput{
		ParticipantID: input.ParticipantID,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}

	if p.SessionID != input.SessionID {
		return nil, ErrParticipantNotFound
	}

	return p, nil
}

// ListParticipants retrieves a session's participants in joined-at order
func (s *service) ListParticipants(ctx context.Context, input *ListParticipantsInput) ([]*models.Participant, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	return s.participantRepo.ListParticipants(ctx, &participantRepo.ListParticipantsInput{
		SessionID: input.SessionID,
	})
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

// requireModerator loads the session and verifies the caller holds moderation
// authority in it
func (s *service) requireModerator(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	p, err := s.participantRepo.GetParticipantByUser(ctx, &participantRepo.GetParticipantByUserInput{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrNotModerator
		}
		return nil, err
	}

	if !p.CanModerate() {
		return nil, ErrNotModerator
	}

	return session, nil
}

// transition applies a state edge as a compare-and-set and publishes the
// lifecycle event on success
func (s *service) transition(ctx context.Context, session *models.Session, to models.SessionState, reason models.CompletionReason, from ...models.SessionState) (*models.Session, error) {
	now := s.clock.Now()

	updated := *session
	updated.State = to
	updated.CompletionReason = reason
	updated.UpdatedAt = now

	err := s.sessionRepo.UpdateState(ctx, &sessionRepo.UpdateStateInput{
		Session:    &updated,
		FromStates: from,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrStateConflict) {
			return nil, ErrInvalidSessionState
		}
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:         models.EventSessionStateChanged,
		SessionID:    session.ID,
		SessionState: to,
		At:           now,
	})

	return &updated, nil
}

// changeRole applies a role transition to a participant, claiming or
// releasing the moderator slot as needed
func (s *service) changeRole(ctx context.Context, p *models.Participant, newRole models.Role) (*models.Participant, error) {
	if p.Role == newRole {
		return p, nil
	}

	if newRole.Moderates() && !p.Role.Moderates() {
		if err := s.participantRepo.ClaimModerator(ctx, &participantRepo.ClaimModeratorInput{
			SessionID: p.SessionID,
			UserID:    p.UserID,
		}); err != nil {
			if errors.Is(err, participantRepo.ErrModeratorTaken) {
				return nil, ErrHostAlreadyAssigned
			}
			return nil, err
		}
	}

	updated := *p
	updated.Role = newRole

	if err := s.participantRepo.SaveParticipant(ctx, &participantRepo.SaveParticipantInput{
		Participant: &updated,
	}); err != nil {
		if newRole.Moderates() && !p.Role.Moderates() {
			// Give the claim back so the slot doesn't stay held without a record
			s.releaseModerator(ctx, p.SessionID, p.UserID)
		}
		return nil, err
	}

	// The demoted record is persisted before the slot frees, so a reader never
	// observes two moderating roles at once
	if !newRole.Moderates() && p.Role.Moderates() {
		if err := s.participantRepo.ReleaseModerator(ctx, &participantRepo.ReleaseModeratorInput{
			SessionID: p.SessionID,
			UserID:    p.UserID,
		}); err != nil {
			return nil, err
		}
	}

	s.publisher.Publish(&models.Event{
		Type:          models.EventRoleChanged,
		SessionID:     p.SessionID,
		ParticipantID: p.ID,
		Role:          newRole,
		At:            s.clock.Now(),
	})

	return &updated, nil
}

// releaseModerator is a best-effort claim rollback; the caller is already on
// an error path
func (s *service) releaseModerator(ctx context.Context, sessionID, userID string) {
	if err := s.participantRepo.ReleaseModerator(ctx, &participantRepo.ReleaseModeratorInput{
		SessionID: sessionID,
		UserID:    userID,
	}); err != nil {
		log.Printf("session: releasing moderator claim for session %s: %v", sessionID, err)
	}
}
