package models

import (
	"time"
)

// TastingItem represents an approved, evaluable unit of a session.
// Created only on suggestion approval or by a direct host add; immutable afterward.
type TastingItem struct {
	// ID is the unique identifier for this item
	ID string

	// SessionID is the session the item belongs to
	SessionID string

	// ItemName is the item being tasted
	ItemName string

	// SourceSuggestionID is the approved suggestion this item came from;
	// empty when the item was added directly by a moderator
	SourceSuggestionID string

	// CreatedAt is when the item was created
	CreatedAt time.Time
}
