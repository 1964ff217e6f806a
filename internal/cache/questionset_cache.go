package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"testbank-service/internal/engine"
	"testbank-service/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const setKeyPrefix = "testbank:set:"

// QuestionSetCache is a read-through Redis layer in front of a
// QuestionSetResolver. Question sets are effectively immutable while
// referenced by a live test, which is what makes caching them safe; admin
// writes invalidate explicitly. Redis being down degrades to the underlying
// resolver, never to a request failure.
type QuestionSetCache struct {
	next engine.QuestionSetResolver
	rdb  *redis.Client
	ttl  time.Duration
}

func NewQuestionSetCache(next engine.QuestionSetResolver, rdb *redis.Client, ttl time.Duration) *QuestionSetCache {
	return &QuestionSetCache{next: next, rdb: rdb, ttl: ttl}
}

func (c *QuestionSetCache) ResolveSet(ctx context.Context, id string) (*models.QuestionSet, error) {
	key := setKeyPrefix + id
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err == nil {
		var set models.QuestionSet
		if jerr := json.Unmarshal(data, &set); jerr == nil {
			return &set, nil
		}
		// Unreadable entry: drop it and fall through to the store.
		c.rdb.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Warn().Err(err).Str("set_id", id).Msg("question set cache read failed, falling back to store")
	}

	set, err := c.next.ResolveSet(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, jerr := json.Marshal(set); jerr == nil {
		if serr := c.rdb.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			log.Debug().Err(serr).Str("set_id", id).Msg("question set cache write failed")
		}
	}
	return set, nil
}

// Invalidate drops a set from the cache after an admin write.
func (c *QuestionSetCache) Invalidate(ctx context.Context, id string) {
	if err := c.rdb.Del(ctx, setKeyPrefix+id).Err(); err != nil {
		log.Warn().Err(err).Str("set_id", id).Msg("question set cache invalidation failed")
	}
}
