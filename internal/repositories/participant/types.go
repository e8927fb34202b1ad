package participant

import (
	"github.com/tastevin-app/tastevin/internal/models"
)

// SaveParticipantInput contains parameters for persisting a participant
type SaveParticipantInput struct {
	// Participant is the participant to persist
	Participant *models.Participant
}

// GetParticipantInput contains parameters for retrieving a participant by ID
type GetParticipantInput struct {
	// ParticipantID is the unique identifier of the membership
	ParticipantID string
}

// GetParticipantByUserInput contains parameters for retrieving a membership by user
type GetParticipantByUserInput struct {
	// SessionID is the session to look in
	SessionID string

	// UserID is the user whose membership to retrieve
	UserID string
}

// ListParticipantsInput contains parameters for listing a session's participants
type ListParticipantsInput struct {
	// SessionID is the session whose participants to list
	SessionID string
}

// ClaimModeratorInput contains parameters for claiming the moderator slot
type ClaimModeratorInput struct {
	// SessionID is the session whose slot to claim
	SessionID string

	// UserID is the user claiming the slot
	UserID string
}

// ReleaseModeratorInput contains parameters for releasing the moderator slot
type ReleaseModeratorInput struct {
	// SessionID is the session whose slot to release
	SessionID string

	// UserID is the user releasing the slot; the release is a no-op for
	// any other holder
	UserID string
}
