package heartbeat

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/tastevin-app/tastevin/internal/repositories/heartbeat Repository

import (
	"context"

	"github.com/tastevin-app/tastevin/internal/models"
)

// Repository defines the interface for host heartbeat persistence
type Repository interface {
	// SaveHeartbeat overwrites the host's last-seen record for a session
	SaveHeartbeat(ctx context.Context, input *SaveHeartbeatInput) error

	// GetHeartbeat retrieves the last-seen record for a session
	GetHeartbeat(ctx context.Context, input *GetHeartbeatInput) (*models.HeartbeatRecord, error)
}
