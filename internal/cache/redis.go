package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Domenick1991/wanderlust/config"
	"github.com/Domenick1991/wanderlust/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisConversationStore keeps bot conversations as JSON documents. Every
// save refreshes the key TTL, so a conversation expires ttl after its last
// activity without any sweep.
type RedisConversationStore struct {
	client redis.Cmdable
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisConversationStore(client redis.Cmdable, ttl time.Duration) *RedisConversationStore {
	return &RedisConversationStore{client: client, ttl: ttl}
}

// Load returns (nil, nil) when the session is unknown or expired.
func (s *RedisConversationStore) Load(ctx context.Context, sessionID string) (*domain.Conversation, error) {
	data, err := s.client.Get(ctx, conversationKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var conv domain.Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, err
	}
	if conv.Messages == nil {
		conv.Messages = []domain.BotMessage{}
	}
	return &conv, nil
}

func (s *RedisConversationStore) Save(ctx context.Context, conv *domain.Conversation) error {
	payload, err := json.Marshal(conv)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, conversationKey(conv.SessionID), payload, s.ttl).Err()
}

func (s *RedisConversationStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, conversationKey(sessionID)).Err()
}

func conversationKey(sessionID string) string {
	return "bot:conversation:" + sessionID
}
