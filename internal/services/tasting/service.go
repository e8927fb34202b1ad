package tasting

import (
	"context"
	"errors"

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
}

// New creates a new tasting service
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
	}, nil
}

// SubmitSuggestion proposes a tasting item. Suggestions are a
// collaborative-only capability; submissions while the host is away are
// accepted as ordinary pending suggestions and flagged as queued.
func (s *service) SubmitSuggestion(ctx context.Context, input *SubmitSuggestionInput) (*SubmitSuggestionOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" || input.ItemName == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.Approach != models.ApproachCollaborative {
		return nil, ErrSuggestionsDisabled
	}

	if session.State != models.SessionStateActive && session.State != models.SessionStateModerationPending {
		return nil, ErrInvalidSessionState
	}

	p, err := s.getParticipant(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !p.CanAddItems(session.Approach) {
		return nil, ErrCannotSuggest
	}

	queued := session.State == models.SessionStateModerationPending
	now := s.clock.Now()

	suggestion, err := s.tastingRepo.SaveSuggestion(ctx, &tastingRepo.SaveSuggestionInput{
		Suggestion: &models.Suggestion{
			ID:                  s.uuidGen.NewUUID(),
			SessionID:           input.SessionID,
			ParticipantID:       p.ID,
			ItemName:            input.ItemName,
			Status:              models.SuggestionStatusPending,
			QueuedDuringAbsence: queued,
			CreatedAt:           now,
		},
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:         models.EventSuggestionCreated,
		SessionID:    input.SessionID,
		SuggestionID: suggestion.ID,
		At:           now,
	})

	return &SubmitSuggestionOutput{
		Suggestion: suggestion,
		Queued:     queued,
	}, nil
}

// ListSuggestions retrieves a session's suggestions in sequence order
func (s *service) ListSuggestions(ctx context.Context, input *ListSuggestionsInput) ([]*models.Suggestion, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	return s.tastingRepo.ListSuggestions(ctx, &tastingRepo.ListSuggestionsInput{
		SessionID: input.SessionID,
		Status:    input.Status,
	})
}

// ModerateSuggestion applies a moderation decision. The decision is
// single-shot: a second call on a decided suggestion fails with
// ErrAlreadyModerated and never mutates state or creates a second item.
func (s *service) ModerateSuggestion(ctx context.Context, input *ModerateSuggestionInput) (*ModerateSuggestionOutput, error) {
	if input == nil || input.SessionID == "" || input.SuggestionID == "" || input.UserID == "" {
		return nil, ErrInvalidInput
	}

	if input.Action != ActionApprove && input.Action != ActionReject {
		return nil, ErrInvalidAction
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	// Moderation requires a present host, so only active sessions accept it
	if session.State != models.SessionStateActive {
		return nil, ErrInvalidSessionState
	}

	moderator, err := s.getParticipant(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !moderator.CanModerate() {
		return nil, ErrNotModerator
	}

	suggestion, err := s.tastingRepo.GetSuggestion(ctx, &tastingRepo.GetSuggestionInput{
		SuggestionID: input.SuggestionID,
	})
	if err != nil {
		if errors.Is(err, tastingRepo.ErrSuggestionNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, err
	}

	if suggestion.SessionID != input.SessionID {
		return nil, ErrSuggestionNotFound
	}

	if suggestion.Status != models.SuggestionStatusPending {
		return nil, ErrAlreadyModerated
	}

	now := s.clock.Now()

	decided := *suggestion
	decided.ModeratorID = moderator.ID
	decided.ModeratedAt = &now

	var item *models.TastingItem
	if input.Action == ActionApprove {
		decided.Status = models.SuggestionStatusApproved
		item = &models.TastingItem{
			ID:                 s.uuidGen.NewUUID(),
			SessionID:          input.SessionID,
			ItemName:           suggestion.ItemName,
			SourceSuggestionID: suggestion.ID,
			CreatedAt:          now,
		}
	} else {
		decided.Status = models.SuggestionStatusRejected
	}

	// The decision and the item write are one atomic unit in the repository;
	// a concurrent second decision loses the compare-and-set
	if err := s.tastingRepo.DecideSuggestion(ctx, &tastingRepo.DecideSuggestionInput{
		Suggestion: &decided,
		Item:       item,
	}); err != nil {
		if errors.Is(err, tastingRepo.ErrAlreadyDecided) {
			return nil, ErrAlreadyModerated
		}
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:             models.EventSuggestionModerated,
		SessionID:        input.SessionID,
		SuggestionID:     suggestion.ID,
		SuggestionStatus: decided.Status,
		At:               now,
	})

	if item != nil {
		s.publisher.Publish(&models.Event{
			Type:         models.EventItemCreated,
			SessionID:    input.SessionID,
			ItemID:       item.ID,
			SuggestionID: suggestion.ID,
			At:           now,
		})
	}

	return &ModerateSuggestionOutput{
		Suggestion: &decided,
		Item:       item,
	}, nil
}

// AddItemDirectly creates a tasting item bypassing the suggestion flow. Used
// by predefined-approach hosts to pre-load items and by collaborative hosts
// adding items of their own.
func (s *service) AddItemDirectly(ctx context.Context, input *AddItemDirectlyInput) (*AddItemDirectlyOutput, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" || input.ItemName == "" {
		return nil, ErrInvalidInput
	}

	session, err := s.getSession(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	if session.State != models.SessionStateDraft && session.State != models.SessionStateActive {
		return nil, ErrInvalidSessionState
	}

	p, err := s.getParticipant(ctx, input.SessionID, input.UserID)
	if err != nil {
		return nil, err
	}

	if !p.CanModerate() {
		return nil, ErrNotModerator
	}

	now := s.clock.Now()

	item := &models.TastingItem{
		ID:        s.uuidGen.NewUUID(),
		SessionID: input.SessionID,
		ItemName:  input.ItemName,
		CreatedAt: now,
	}

	if err := s.tastingRepo.SaveItem(ctx, &tastingRepo.SaveItemInput{
		Item: item,
	}); err != nil {
		return nil, err
	}

	s.publisher.Publish(&models.Event{
		Type:      models.EventItemCreated,
		SessionID: input.SessionID,
		ItemID:    item.ID,
		At:        now,
	})

	return &AddItemDirectlyOutput{Item: item}, nil
}

// ListItems retrieves a session's tasting items in creation order
func (s *service) ListItems(ctx context.Context, input *ListItemsInput) ([]*models.TastingItem, error) {
	if input == nil || input.SessionID == "" {
		return nil, ErrInvalidInput
	}

	if _, err := s.getSession(ctx, input.SessionID); err != nil {
		return nil, err
	}

	return s.tastingRepo.ListItems(ctx, &tastingRepo.ListItemsInput{
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

func (s *service) getParticipant(ctx context.Context, sessionID, userID string) (*models.Participant, error) {
	p, err := s.participantRepo.GetParticipantByUser(ctx, &participantRepo.GetParticipantByUserInput{
		SessionID: sessionID,
		UserID:    userID,
	})
	if err != nil {
		if errors.Is(err, participantRepo.ErrParticipantNotFound) {
			return nil, ErrNotParticipant
		}
		return nil, err
	}
	return p, nil
}
