package tasting

// TastingError is a custom error type for suggestion and moderation errors
type TastingError string

// Error implements the error interface
func (e TastingError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidInput        TastingError = "missing or invalid input"
	ErrInvalidAction       TastingError = "action must be approve or reject"
	ErrSessionNotFound     TastingError = "session not found"
	ErrSuggestionNotFound  TastingError = "suggestion not found"
	ErrNotParticipant      TastingError = "caller is not a participant of this session"
	ErrSuggestionsDisabled TastingError = "suggestions are only available in collaborative sessions"
	ErrCannotSuggest       TastingError = "participant may not suggest items"
	ErrNotModerator        TastingError = "participant lacks moderation authority"
	ErrInvalidSessionState TastingError = "session is not in a valid state for this operation"
	ErrAlreadyModerated    TastingError = "suggestion has already been moderated"
	ErrNilConfig           TastingError = "config cannot be nil"
	ErrNilSessionRepo      TastingError = "session repository cannot be nil"
	ErrNilParticipantRepo  TastingError = "participant repository cannot be nil"
	ErrNilTastingRepo      TastingError = "tasting repository cannot be nil"
	ErrNilClock            TastingError = "clock cannot be nil"
	ErrNilUUIDGenerator    TastingError = "UUID generator cannot be nil"
	ErrNilEventPublisher   TastingError = "event publisher cannot be nil"
)
