package tasting

import (
	"github.com/tastevin-app/tastevin/internal/models"
)

// SaveSuggestionInput contains parameters for persisting a new suggestion.
// The suggestion's Seq field is assigned by the repository.
type SaveSuggestionInput struct {
	// Suggestion is the pending suggestion to persist
	Suggestion *models.Suggestion
}

// GetSuggestionInput contains parameters for retrieving a suggestion
type GetSuggestionInput struct {
	// SuggestionID is the unique identifier of the suggestion
	SuggestionID string
}

// ListSuggestionsInput contains parameters for listing a session's suggestions
type ListSuggestionsInput struct {
	// SessionID is the session whose suggestions to list
	SessionID string

	// Status filters by moderation status when non-empty
	Status models.SuggestionStatus
}

// DecideSuggestionInput contains parameters for recording a moderation decision
type DecideSuggestionInput struct {
	// Suggestion is the decided suggestion (status, moderator and timestamp set)
	Suggestion *models.Suggestion

	// Item is the tasting item to materialize on approval; nil on rejection
	Item *models.TastingItem
}

// SaveItemInput contains parameters for persisting a directly-added item
type SaveItemInput struct {
	// Item is the tasting item to persist
	Item *models.TastingItem
}

// GetItemInput contains parameters for retrieving a tasting item
type GetItemInput struct {
	// ItemID is the unique identifier of the item
	ItemID string
}

// ListItemsInput contains parameters for listing a session's tasting items
type ListItemsInput struct {
	// SessionID is the session whose items to list
	SessionID string
}
