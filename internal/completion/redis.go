package completion

import (
	"context"
	"errors"
	"fmt"

	"github.com/N4171k/45DOC/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps one JSON document per profile under
// "codeStreakCompletions:<profile>". Documents do not expire.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(profile string) string {
	return fmt.Sprintf("%s:%s", DocumentName, profile)
}

func (s *RedisStore) load(ctx context.Context, profile string) map[string]Record {
	if s.client == nil {
		return map[string]Record{}
	}
	raw, err := s.client.Get(ctx, redisKey(profile)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Debug().Err(err).Str("profile", profile).Msg("completion cache unavailable, treating as empty")
		}
		return map[string]Record{}
	}
	doc, err := DecodeDocument(raw)
	if err != nil {
		logger.Debug().Err(err).Str("profile", profile).Msg("completion cache partially unreadable")
	}
	return doc
}

func (s *RedisStore) Get(ctx context.Context, profile, key string) (Record, bool) {
	rec, ok := s.load(ctx, profile)[key]
	return rec, ok
}

// Put is read-modify-write without WATCH; one writer per profile is assumed.
func (s *RedisStore) Put(ctx context.Context, profile, key string, rec Record) error {
	doc := s.load(ctx, profile)
	doc[key] = rec
	return s.Replace(ctx, profile, doc)
}

func (s *RedisStore) All(ctx context.Context, profile string) map[string]Record {
	return s.load(ctx, profile)
}

func (s *RedisStore) Replace(ctx context.Context, profile string, doc map[string]Record) error {
	if s.client == nil {
		return errors.New("redis is not configured")
	}
	raw, err := EncodeDocument(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(profile), raw, 0).Err(); err != nil {
		return fmt.Errorf("write %s: %w", redisKey(profile), err)
	}
	return nil
}
