package tasting

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/tastevin-app/tastevin/internal/services/tasting Service

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Service defines the suggestion queue and moderation operations
type Service interface {
	// SubmitSuggestion proposes a tasting item for moderation
	SubmitSuggestion(ctx context.Context, input *SubmitSuggestionInput) (*SubmitSuggestionOutput, error)

	// ListSuggestions retrieves a session's suggestions in sequence order
	ListSuggestions(ctx context.Context, input *ListSuggestionsInput) ([]*models.Suggestion, error)

	// ModerateSuggestion applies an approve or reject decision to a pending
	// suggestion; a decision is single-shot and approval materializes the
	// tasting item atomically
	ModerateSuggestion(ctx context.Context, input *ModerateSuggestionInput) (*ModerateSuggestionOutput, error)

	// AddItemDirectly creates a tasting item bypassing the suggestion flow
	AddItemDirectly(ctx context.Context, input *AddItemDirectlyInput) (*AddItemDirectlyOutput, error)

	// ListItems retrieves a session's tasting items in creation order
	ListItems(ctx context.Context, input *ListItemsInput) ([]*models.TastingItem, error)
}
