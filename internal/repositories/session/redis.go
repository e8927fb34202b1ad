package session

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
	sessionKeyPrefix = "tasting_session:"
	stateKeySuffix   = ":state"
	liveSessionsKey  = "live_sessions"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// ErrStateConflict is returned when a conditional state transition finds the
// session in a state the transition is not allowed to start from
var ErrStateConflict = errors.New("session state conflict")

// updateStateScript performs the state transition and the session write as one
// atomic unit, so no reader ever observes the new state without the updated
// session record (or the session in the live set while terminal).
var updateStateScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
local allowed = false
for i = 5, #ARGV do
	if cur == ARGV[i] then
		allowed = true
	end
end
if not allowed then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
if ARGV[4] == "1" then
	redis.call("SADD", KEYS[3], ARGV[3])
else
	redis.call("SREM", KEYS[3], ARGV[3])
end
return 1
`)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func sessionKey(sessionID string) string {
	return sessionKeyPrefix + sessionID
}

func stateKey(sessionID string) string {
	return sessionKey(sessionID) + stateKeySuffix
}

func isLive(state models.SessionState) bool {
	return state == models.SessionStateActive || state == models.SessionStateModerationPending
}

// SaveSession persists a session to Redis
func (r *redisRepository) SaveSession(ctx context.Context, input *SaveSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, sessionKey(input.Session.ID), sessionJSON, 0)
	pipe.Set(ctx, stateKey(input.Session.ID), string(input.Session.State), 0)

	if isLive(input.Session.State) {
		pipe.SAdd(ctx, liveSessionsKey, input.Session.ID)
	} else {
		pipe.SRem(ctx, liveSessionsKey, input.Session.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.SessionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// UpdateState transitions a session's state with a compare-and-set on the
// stored state. Returns ErrStateConflict when the stored state is not one of
// the allowed from-states.
func (r *redisRepository) UpdateState(ctx context.Context, input *UpdateStateInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	if len(input.FromStates) == 0 {
		return errors.New("from states cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	keys := []string{
		stateKey(input.Session.ID),
		sessionKey(input.Session.ID),
		liveSessionsKey,
	}

	live := "0"
	if isLive(input.Session.State) {
		live = "1"
	}

	args := []interface{}{
		string(input.Session.State),
		string(sessionJSON),
		input.Session.ID,
		live,
	}
	for _, from := range input.FromStates {
		args = append(args, string(from))
	}

	res, err := updateStateScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return fmt.Errorf("failed to update session state: %w", err)
	}

	if res == 0 {
		return ErrStateConflict
	}

	return nil
}

// GetLiveSessions retrieves the IDs of all sessions in a live state
func (r *redisRepository) GetLiveSessions(ctx context.Context, input *GetLiveSessionsInput) (*GetLiveSessionsOutput, error) {
	ids, err := r.client.SMembers(ctx, liveSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get live sessions: %w", err)
	}

	return &GetLiveSessionsOutput{
		SessionIDs: ids,
	}, nil
}
