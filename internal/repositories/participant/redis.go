package participant

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
	participantKeyPrefix = "participant:"
	sessionKeyPrefix     = "session:"
	participantsSuffix   = ":participants"
	byUserSegment        = ":participant_by_user:"
	moderatorSuffix      = ":moderator"
)

// ErrParticipantNotFound is returned when a participant is not found
var ErrParticipantNotFound = errors.New("participant not found")

// ErrModeratorTaken is returned when the moderator slot is already held by a
// different user
var ErrModeratorTaken = errors.New("moderator slot already taken")

// claimModeratorScript claims the single moderator slot. The claim is
// idempotent for the current holder and fails for anyone else.
var claimModeratorScript = redis.NewScript(`
local cur = redis.call("GET", KEYS[1])
if cur == false or cur == ARGV[1] then
	redis.call("SET", KEYS[1], ARGV[1])
	return 1
end
return 0
`)

// releaseModeratorScript releases the slot only when held by the caller.
var releaseModeratorScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// Config holds configuration for the Redis participant repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed participant repository
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

func participantKey(participantID string) string {
	return participantKeyPrefix + participantID
}

func participantsKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + participantsSuffix
}

func byUserKey(sessionID, userID string) string {
	return sessionKeyPrefix + sessionID + byUserSegment + userID
}

func moderatorKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + moderatorSuffix
}

// SaveParticipant persists a participant to Redis
func (r *redisRepository) SaveParticipant(ctx context.Context, input *SaveParticipantInput) error {
	if input == nil || input.Participant == nil {
		return errors.New("input and participant cannot be nil")
	}

	p := input.Participant

	participantJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal participant: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, participantKey(p.ID), participantJSON, 0)
	pipe.Set(ctx, byUserKey(p.SessionID, p.UserID), p.ID, 0)

	// Index participants by join time for ordered listing
	pipe.ZAdd(ctx, participantsKey(p.SessionID), redis.Z{
		Score:  float64(p.JoinedAt.UnixNano()),
		Member: p.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save participant: %w", err)
	}

	return nil
}

// GetParticipant retrieves a participant by ID from Redis
func (r *redisRepository) GetParticipant(ctx context.Context, input *GetParticipantInput) (*models.Participant, error) {
	if input == nil || input.ParticipantID == "" {
		return nil, errors.New("input and participant ID cannot be empty")
	}

	return r.getByKey(ctx, participantKey(input.ParticipantID))
}

// GetParticipantByUser retrieves a session membership by user ID from Redis
func (r *redisRepository) GetParticipantByUser(ctx context.Context, input *GetParticipantByUserInput) (*models.Participant, error) {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return nil, errors.New("input, session ID and user ID cannot be empty")
	}

	participantID, err := r.client.Get(ctx, byUserKey(input.SessionID, input.UserID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant ID for user: %w", err)
	}

	return r.getByKey(ctx, participantKey(participantID))
}

// ListParticipants retrieves all participants of a session ordered by join time
func (r *redisRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) ([]*models.Participant, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, participantsKey(input.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(ids))
	for _, id := range ids {
		p, err := r.getByKey(ctx, participantKey(id))
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}

	return participants, nil
}

// ClaimModerator atomically claims the session's single moderator slot
func (r *redisRepository) ClaimModerator(ctx context.Context, input *ClaimModeratorInput) error {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return errors.New("input, session ID and user ID cannot be empty")
	}

	res, err := claimModeratorScript.Run(ctx, r.client, []string{moderatorKey(input.SessionID)}, input.UserID).Int()
	if err != nil {
		return fmt.Errorf("failed to claim moderator slot: %w", err)
	}

	if res == 0 {
		return ErrModeratorTaken
	}

	return nil
}

// ReleaseModerator releases the moderator slot if held by the given user
func (r *redisRepository) ReleaseModerator(ctx context.Context, input *ReleaseModeratorInput) error {
	if input == nil || input.SessionID == "" || input.UserID == "" {
		return errors.New("input, session ID and user ID cannot be empty")
	}

	if err := releaseModeratorScript.Run(ctx, r.client, []string{moderatorKey(input.SessionID)}, input.UserID).Err(); err != nil {
		return fmt.Errorf("failed to release moderator slot: %w", err)
	}

	return nil
}

func (r *redisRepository) getByKey(ctx context.Context, key string) (*models.Participant, error) {
	participantJSON, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	var p models.Participant
	if err := json.Unmarshal([]byte(participantJSON), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal participant: %w", err)
	}

	return &p, nil
}
