package heartbeat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tastevin-app/tastevin/internal/models"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix = "session:"
	heartbeatSuffix  = ":heartbeat"
)

// ErrHeartbeatNotFound is returned when no heartbeat has been recorded yet
var ErrHeartbeatNotFound = errors.New("heartbeat not found")

// Config holds configuration for the Redis heartbeat repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed heartbeat repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func heartbeatKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + heartbeatSuffix
}

// SaveHeartbeat overwrites the host's last-seen record. Repeated calls are
// idempotent; only the latest timestamp matters to evaluation.
func (r *redisRepository) SaveHeartbeat(ctx context.Context, input *SaveHeartbeatInput) error {
	if input == nil || input.Record == nil {
		return errors.New("input and record cannot be nil")
	}

	recordJSON, err := json.Marshal(input.Record)
	if err != nil {
		return fmt.Errorf("failed to marshal heartbeat: %w", err)
	}

	if err := r.client.Set(ctx, heartbeatKey(input.Record.SessionID), recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save heartbeat: %w", err)
	}

	return nil
}

// GetHeartbeat retrieves the last-seen record for a session
func (r *redisRepository) GetHeartbeat(ctx context.Context, input *GetHeartbeatInput) (*models.HeartbeatRecord, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	recordJSON, err := r.client.Get(ctx, heartbeatKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrHeartbeatNotFound
		}
		return nil, fmt.Errorf("failed to get heartbeat: %w", err)
	}

	var record models.HeartbeatRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal heartbeat: %w", err)
	}

	return &record, nil
}
