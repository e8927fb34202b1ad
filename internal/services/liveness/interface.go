package liveness

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/tastevin-app/tastevin/internal/services/liveness Service

import (
	"context"
	"time"
)

// Service defines the host responsiveness monitor
type Service interface {
	// RecordHeartbeat stores a host check-in, overwriting any previous one.
	// Recording is idempotent; only the session host may record.
	RecordHeartbeat(ctx context.Context, input *RecordHeartbeatInput) (*RecordHeartbeatOutput, error)

	// Evaluate computes the responsiveness verdict for a live session and
	// applies the active/moderation_pending transition the verdict implies.
	// Re-evaluating an unchanged verdict is a no-op.
	Evaluate(ctx context.Context, input *EvaluateInput) (*EvaluateOutput, error)

	// HostResponsive evaluates a session and reports the verdict
	HostResponsive(ctx context.Context, sessionID string) (bool, error)

	// RequestCompletion lets a non-host participant force-complete a session
	// whose host has been silent beyond the prolonged-absence threshold
	RequestCompletion(ctx context.Context, input *RequestCompletionInput) (*RequestCompletionOutput, error)

	// RunSweep periodically evaluates every live session until ctx is done
	RunSweep(ctx context.Context, interval time.Duration)
}
