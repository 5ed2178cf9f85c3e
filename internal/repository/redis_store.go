package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/cafe-feedback/internal/domain"
	"github.com/spec-kit/cafe-feedback/internal/persistence"
)

// redisStore keeps the collection as one JSON array under the fixed
// key, mirroring the file backend's document shape.
type redisStore struct {
	client *persistence.Redis
	key    string
	logger *zap.Logger
}

// NewRedisStore returns a Redis-backed FeedbackStore.
func NewRedisStore(client *persistence.Redis, key string, logger *zap.Logger) FeedbackStore {
	return &redisStore{client: client, key: key, logger: logger}
}

func (s *redisStore) Load(ctx context.Context) []domain.FeedbackRecord {
	raw, err := s.client.Client.Get(ctx, s.key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("feedback key unreadable", zap.String("key", s.key), zap.Error(err))
		}
		return []domain.FeedbackRecord{}
	}

	var records []domain.FeedbackRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn("feedback key corrupt, starting empty", zap.String("key", s.key), zap.Error(err))
		return []domain.FeedbackRecord{}
	}
	if records == nil {
		return []domain.FeedbackRecord{}
	}
	return records
}

func (s *redisStore) Save(ctx context.Context, records []domain.FeedbackRecord) error {
	if records == nil {
		records = []domain.FeedbackRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return s.client.Client.Set(ctx, s.key, raw, 0).Err()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
