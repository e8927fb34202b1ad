package models

import (
	"time"
)

// HeartbeatRecord tracks the host's most recent liveness signal for a session.
// Written only by the host's own heartbeat; read by the responsiveness monitor.
type HeartbeatRecord struct {
	// SessionID is the session the heartbeat belongs to
	SessionID string

	// HostUserID is the host recording the heartbeat
	HostUserID string

	// LastSeenAt is the time of the most recent heartbeat
	LastSeenAt time.Time
}
