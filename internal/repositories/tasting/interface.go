package tasting

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tastevin-app/tastevin/internal/repositories/tasting Repository

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Repository defines the interface for suggestion and tasting item persistence.
// Suggestions and items live in one repository because approval writes both
// as a single atomic unit.
type Repository interface {
	// SaveSuggestion persists a new pending suggestion, assigning its
	// per-session sequence number atomically
	SaveSuggestion(ctx context.Context, input *SaveSuggestionInput) (*models.Suggestion, error)

	// GetSuggestion retrieves a suggestion by ID
	GetSuggestion(ctx context.Context, input *GetSuggestionInput) (*models.Suggestion, error)

	// ListSuggestions retrieves a session's suggestions in sequence order
	ListSuggestions(ctx context.Context, input *ListSuggestionsInput) ([]*models.Suggestion, error)

	// DecideSuggestion records a moderation decision with a single-shot
	// compare-and-set on the pending status; on approval the tasting item is
	// written in the same atomic unit
	DecideSuggestion(ctx context.Context, input *DecideSuggestionInput) error

	// SaveItem persists a directly-added tasting item
	SaveItem(ctx context.Context, input *SaveItemInput) error

	// GetItem retrieves a tasting item by ID
	GetItem(ctx context.Context, input *GetItemInput) (*models.TastingItem, error)

	// ListItems retrieves a session's tasting items in creation order
	ListItems(ctx context.Context, input *ListItemsInput) ([]*models.TastingItem, error)
}
