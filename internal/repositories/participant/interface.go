package participant

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tastevin-app/tastevin/internal/repositories/participant Repository

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Repository defines the interface for participant data persistence
type Repository interface {
	// SaveParticipant persists a participant
	SaveParticipant(ctx context.Context, input *SaveParticipantInput) error

	// GetParticipant retrieves a participant by ID
	GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error)

	// GetParticipantByUser retrieves a session membership by user ID
	GetParticipantByUser(ctx context.Context, input *GetParticipantByUserInput) (*models.Participant, error)

	// ListParticipants retrieves all participants of a session in joined-at order
	ListParticipants(ctx context.Context, input *ListParticipantsInput) ([]*models.Participant, error)

	// ClaimModerator atomically claims the session's single moderator slot for
	// a user; claiming an already-held slot succeeds only for the same user
	ClaimModerator(ctx context.Context, input *ClaimModeratorInput) error

	// ReleaseModerator releases the moderator slot if held by the given user
	ReleaseModerator(ctx context.Context, input *ReleaseModeratorInput) error
}
