package models

import (
	"time"
)

// Role represents a participant's role within a session
type Role string

const (
	// RoleHost indicates a participant with moderation authority only
	RoleHost Role = "host"

	// RoleParticipant indicates a joined user without moderation authority
	RoleParticipant Role = "participant"

	// RoleBoth indicates a single participant holding host and participant
	// capabilities at once; the default for the session creator
	RoleBoth Role = "both"
)

// Moderates reports whether the role carries moderation authority.
func (r Role) Moderates() bool {
	return r == RoleHost || r == RoleBoth
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleHost || r == RoleParticipant || r == RoleBoth
}

// Participant represents a user's membership in a specific session
type Participant struct {
	// ID is a unique identifier for this membership
	ID string

	// SessionID is the session the user joined
	SessionID string

	// UserID is the stable identity of the user, resolved by the identity provider
	UserID string

	// Role is the participant's current role in the session
	Role Role

	// JoinedAt is when the user joined the session
	JoinedAt time.Time
}

// CanModerate reports whether this participant may approve or reject suggestions
// and add items directly.
func (p *Participant) CanModerate() bool {
	return p.Role.Moderates()
}

// CanAddItems reports whether this participant may submit suggestions in the
// given approach. Only collaborative sessions accept suggestions; in the
// predefined approach the host adds items directly instead.
func (p *Participant) CanAddItems(approach SessionApproach) bool {
	if approach != ApproachCollaborative {
		return false
	}
	return p.Role == RoleParticipant || p.Role == RoleBoth
}
