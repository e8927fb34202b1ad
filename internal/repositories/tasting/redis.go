package tasting

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
	suggestionKeyPrefix = "suggestion:"
	itemKeyPrefix       = "tasting_item:"
	sessionKeyPrefix    = "session:"
	statusSuffix        = ":status"
	suggestionsSuffix   = ":suggestions"
	itemsSuffix         = ":items"
	seqSuffix           = ":suggestion_seq"
)

// ErrSuggestionNotFound is returned when a suggestion is not found
var ErrSuggestionNotFound = errors.New("suggestion not found")

// ErrItemNotFound is returned when a tasting item is not found
var ErrItemNotFound = errors.New("tasting item not found")

// ErrAlreadyDecided is returned when a moderation decision targets a
// suggestion that is no longer pending
var ErrAlreadyDecided = errors.New("suggestion already moderated")

// decideSuggestionScript records a decision only while the status key still
// reads pending, and writes the decided suggestion plus (on approval) the
// tasting item in the same script. No observer can see an approved suggestion
// without its item, and a concurrent second decision loses the compare-and-set.
var decideSuggestionScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) ~= "pending" then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1])
redis.call("SET", KEYS[2], ARGV[2])
if ARGV[3] ~= "" then
	redis.call("SET", KEYS[3], ARGV[3])
	redis.call("ZADD", KEYS[4], ARGV[4], ARGV[5])
end
return 1
`)

// Config holds configuration for the Redis tasting repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed tasting repository
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

func suggestionKey(suggestionID string) string {
	return suggestionKeyPrefix + suggestionID
}

func suggestionStatusKey(suggestionID string) string {
	return suggestionKey(suggestionID) + statusSuffix
}

func itemKey(itemID string) string {
	return itemKeyPrefix + itemID
}

func suggestionsKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + suggestionsSuffix
}

func itemsKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + itemsSuffix
}

func seqKey(sessionID string) string {
	return sessionKeyPrefix + sessionID + seqSuffix
}

// SaveSuggestion persists a new pending suggestion. The per-session sequence
// number comes from an INCR, so no two suggestions in a session ever share one.
func (r *redisRepository) SaveSuggestion(ctx context.Context, input *SaveSuggestionInput) (*models.Suggestion, error) {
	if input == nil || input.Suggestion == nil {
		return nil, errors.New("input and suggestion cannot be nil")
	}

	if input.Suggestion.Status != models.SuggestionStatusPending {
		return nil, errors.New("new suggestions must be pending")
	}

	seq, err := r.client.Incr(ctx, seqKey(input.Suggestion.SessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to assign sequence number: %w", err)
	}

	suggestion := *input.Suggestion
	suggestion.Seq = seq

	suggestionJSON, err := json.Marshal(&suggestion)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggestion: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, suggestionKey(suggestion.ID), suggestionJSON, 0)
	pipe.Set(ctx, suggestionStatusKey(suggestion.ID), string(models.SuggestionStatusPending), 0)

	// Index suggestions by sequence number for FIFO presentation
	pipe.ZAdd(ctx, suggestionsKey(suggestion.SessionID), redis.Z{
		Score:  float64(seq),
		Member: suggestion.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to save suggestion: %w", err)
	}

	return &suggestion, nil
}

// GetSuggestion retrieves a suggestion by ID from Redis
func (r *redisRepository) GetSuggestion(ctx context.Context, input *GetSuggestionInput) (*models.Suggestion, error) {
	if input == nil || input.SuggestionID == "" {
		return nil, errors.New("input and suggestion ID cannot be empty")
	}

	suggestionJSON, err := r.client.Get(ctx, suggestionKey(input.SuggestionID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("failed to get suggestion: %w", err)
	}

	var suggestion models.Suggestion
	if err := json.Unmarshal([]byte(suggestionJSON), &suggestion); err != nil {
		return nil, fmt.Errorf("failed to unmarshal suggestion: %w", err)
	}

	return &suggestion, nil
}

// ListSuggestions retrieves a session's suggestions in sequence order
func (r *redisRepository) ListSuggestions(ctx context.Context, input *ListSuggestionsInput) ([]*models.Suggestion, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, suggestionsKey(input.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}

	suggestions := make([]*models.Suggestion, 0, len(ids))
	for _, id := range ids {
		suggestion, err := r.GetSuggestion(ctx, &GetSuggestionInput{SuggestionID: id})
		if err != nil {
			return nil, err
		}
		if input.Status != "" && suggestion.Status != input.Status {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// DecideSuggestion records a moderation decision. Returns ErrAlreadyDecided
// when the suggestion is no longer pending; the stored state is untouched in
// that case.
func (r *redisRepository) DecideSuggestion(ctx context.Context, input *DecideSuggestionInput) error {
	if input == nil || input.Suggestion == nil {
		return errors.New("input and suggestion cannot be nil")
	}

	s := input.Suggestion
	if s.Status != models.SuggestionStatusApproved && s.Status != models.SuggestionStatusRejected {
		return errors.New("decided suggestion must be approved or rejected")
	}

	if s.Status == models.SuggestionStatusApproved && input.Item == nil {
		return errors.New("approval requires a tasting item")
	}

	suggestionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal suggestion: %w", err)
	}

	itemJSON := ""
	itemID := ""
	var itemScore float64
	itemsIndexKey := itemsKey(s.SessionID)
	if input.Item != nil {
		raw, err := json.Marshal(input.Item)
		if err != nil {
			return fmt.Errorf("failed to marshal item: %w", err)
		}
		itemJSON = string(raw)
		itemID = input.Item.ID
		itemScore = float64(input.Item.CreatedAt.UnixNano())
	}

	keys := []string{
		suggestionStatusKey(s.ID),
		suggestionKey(s.ID),
		itemKey(itemID),
		itemsIndexKey,
	}

	res, err := decideSuggestionScript.Run(ctx, r.client, keys,
		string(s.Status),
		string(suggestionJSON),
		itemJSON,
		itemScore,
		itemID,
	).Int()
	if err != nil {
		return fmt.Errorf("failed to decide suggestion: %w", err)
	}

	if res == 0 {
		return ErrAlreadyDecided
	}

	return nil
}

// SaveItem persists a directly-added tasting item
func (r *redisRepository) SaveItem(ctx context.Context, input *SaveItemInput) error {
	if input == nil || input.Item == nil {
		return errors.New("input and item cannot be nil")
	}

	itemJSON, err := json.Marshal(input.Item)
	if err != nil {
		return fmt.Errorf("failed to marshal item: %w", err)
	}

	pipe := r.client.Pipeline()

	pipe.Set(ctx, itemKey(input.Item.ID), itemJSON, 0)
	pipe.ZAdd(ctx, itemsKey(input.Item.SessionID), redis.Z{
		Score:  float64(input.Item.CreatedAt.UnixNano()),
		Member: input.Item.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	return nil
}

// GetItem retrieves a tasting item by ID from Redis
func (r *redisRepository) GetItem(ctx context.Context, input *GetItemInput) (*models.TastingItem, error) {
	if input == nil || input.ItemID == "" {
		return nil, errors.New("input and item ID cannot be empty")
	}

	itemJSON, err := r.client.Get(ctx, itemKey(input.ItemID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	var item models.TastingItem
	if err := json.Unmarshal([]byte(itemJSON), &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// ListItems retrieves a session's tasting items in creation order
func (r *redisRepository) ListItems(ctx context.Context, input *ListItemsInput) ([]*models.TastingItem, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	ids, err := r.client.ZRange(ctx, itemsKey(input.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := make([]*models.TastingItem, 0, len(ids))
	for _, id := range ids {
		item, err := r.GetItem(ctx, &GetItemInput{ItemID: id})
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}
