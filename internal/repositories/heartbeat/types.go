package heartbeat

import (
	"github.com/tastevin-app/tastevin/internal/models"
)

// SaveHeartbeatInput contains parameters for recording a heartbeat
type SaveHeartbeatInput struct {
	// Record is the heartbeat record to store; overwrites any previous record
	Record *models.HeartbeatRecord
}

// GetHeartbeatInput contains parameters for reading a session's heartbeat
type GetHeartbeatInput struct {
	// SessionID is the session whose heartbeat to read
	SessionID string
}
