package tasting

import (
	"github.com/tastevin-app/tastevin/internal/common/clock"
	"github.com/tastevin-app/tastevin/internal/common/uuid"
	"github.com/tastevin-app/tastevin/internal/models"
	participantRepo "github.com/tastevin-app/tastevin/internal/repositories/participant"
	sessionRepo "github.com/tastevin-app/tastevin/internal/repositories/session"
	tastingRepo "github.com/tastevin-app/tastevin/internal/repositories/tasting"
)

// ModerationAction is the decision applied to a pending suggestion
type ModerationAction string

const (
	// ActionApprove accepts a suggestion and materializes its tasting item
	ActionApprove ModerationAction = "approve"

	// ActionReject declines a suggestion; no item is created
	ActionReject ModerationAction = "reject"
)

// EventPublisher fans a state-changing event out to session subscribers.
// Publishing is fire-and-forget; it never blocks or fails the mutating call.
type EventPublisher interface {
	Publish(event *models.Event)
}

// Config holds configuration for the tasting service
type Config struct {
	// Repository dependencies
	SessionRepo     sessionRepo.Repository
	ParticipantRepo participantRepo.Repository
	TastingRepo     tastingRepo.Repository

	// Service dependencies
	Clock          clock.Clock
	UUIDGenerator  uuid.UUID
	EventPublisher EventPublisher
}

// SubmitSuggestionInput contains parameters for proposing a tasting item
type SubmitSuggestionInput struct {
	// SessionID is the session to suggest in
	SessionID string

	// UserID is the proposing user
	UserID string

	// ItemName is the proposed item
	ItemName string
}

// SubmitSuggestionOutput contains the result of submitting a suggestion
type SubmitSuggestionOutput struct {
	// Suggestion is the created pending suggestion
	Suggestion *models.Suggestion

	// Queued indicates the suggestion was accepted while the host was away;
	// it will be moderated in sequence order once a moderator returns
	Queued bool
}

// ListSuggestionsInput contains parameters for listing suggestions
type ListSuggestionsInput struct {
	// SessionID is the session whose suggestions to list
	SessionID string

	// Status filters by moderation status when non-empty
	Status models.SuggestionStatus
}

// ModerateSuggestionInput contains parameters for deciding a suggestion
type ModerateSuggestionInput struct {
	// SessionID is the session the suggestion belongs to
	SessionID string

	// SuggestionID is the suggestion to decide
	SuggestionID string

	// UserID is the moderating user
	UserID string

	// Action is the decision to apply
	Action ModerationAction
}

// ModerateSuggestionOutput contains the result of a moderation decision
type ModerateSuggestionOutput struct {
	// Suggestion is the decided suggestion
	Suggestion *models.Suggestion

	// Item is the materialized tasting item; nil on rejection
	Item *models.TastingItem
}

// AddItemDirectlyInput contains parameters for adding an item without a suggestion
type AddItemDirectlyInput struct {
	// SessionID is the session to add the item to
	SessionID string

	// UserID is the caller; must hold moderation authority
	UserID string

	// ItemName is the item to add
	ItemName string
}

// AddItemDirectlyOutput contains the result of a direct item add
type AddItemDirectlyOutput struct {
	// Item is the created tasting item, with no source suggestion
	Item *models.TastingItem
}

// ListItemsInput contains parameters for listing a session's tasting items
type ListItemsInput struct {
	// SessionID is the session whose items to list
	SessionID string
}
