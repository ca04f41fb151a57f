package scores

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the ranking in a sorted set <prefix>:board keyed by the
// lower-cased id, and each entry in a hash <prefix>:entry:<key>.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// OpenRedisStore connects to a redis:// URL and checks it answers.
func OpenRedisStore(ctx context.Context, url, prefix string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(rdb, prefix), nil
}

// NewRedisStore uses an existing client.
func NewRedisStore(rdb *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "flappy"
	}
	return &RedisStore{rdb: rdb, prefix: prefix}
}

func (s *RedisStore) boardKey() string {
	return s.prefix + ":board"
}

func (s *RedisStore) entryKey(key string) string {
	return s.prefix + ":entry:" + key
}

func (s *RedisStore) Get(ctx context.Context, key string) (Entry, bool, error) {
	fields, err := s.rdb.HGetAll(ctx, s.entryKey(key)).Result()
	if err != nil {
		return Entry{}, false, err
	}
	if len(fields) == 0 {
		return Entry{}, false, nil
	}
	e, err := decodeEntry(fields)
	if err != nil {
		return Entry{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return e, true, nil
}

func (s *RedisStore) Put(ctx context.Context, e Entry) error {
	key := Key(e.ID)
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, s.entryKey(key), map[string]any{
			"id":          e.ID,
			"firstName":   e.FirstName,
			"lastInitial": e.LastInitial,
			"score":       e.Score,
			"createdAt":   e.CreatedAt.Format(time.RFC3339Nano),
			"updatedAt":   e.UpdatedAt.Format(time.RFC3339Nano),
		})
		pipe.ZAdd(ctx, s.boardKey(), redis.Z{Score: float64(e.Score), Member: key})
		return nil
	})
	return err
}

func (s *RedisStore) Top(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	// Everything scoring at least the n-th score, so ties at the cut are
	// ordered by name rather than by member key.
	cut, err := s.rdb.ZRevRangeWithScores(ctx, s.boardKey(), int64(n-1), int64(n-1)).Result()
	if err != nil {
		return nil, err
	}
	var keys []string
	if len(cut) == 0 {
		keys, err = s.rdb.ZRevRange(ctx, s.boardKey(), 0, -1).Result()
	} else {
		keys, err = s.rdb.ZRevRangeByScore(ctx, s.boardKey(), &redis.ZRangeBy{
			Min: strconv.FormatFloat(cut[0].Score, 'f', -1, 64),
			Max: "+inf",
		}).Result()
	}
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(keys))
	_, err = s.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, k := range keys {
			cmds[i] = pipe.HGetAll(ctx, s.entryKey(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]Entry, 0, len(keys))
	for i, cmd := range cmds {
		fields := cmd.Val()
		if len(fields) == 0 {
			continue
		}
		e, err := decodeEntry(fields)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func decodeEntry(fields map[string]string) (Entry, error) {
	score, err := strconv.Atoi(fields["score"])
	if err != nil {
		return Entry{}, fmt.Errorf("score: %w", err)
	}
	e := Entry{
		ID:          fields["id"],
		FirstName:   fields["firstName"],
		LastInitial: fields["lastInitial"],
		Score:       score,
	}
	var errs []error
	if e.CreatedAt, err = time.Parse(time.RFC3339Nano, fields["createdAt"]); err != nil {
		errs = append(errs, fmt.Errorf("createdAt: %w", err))
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, fields["updatedAt"]); err != nil {
		errs = append(errs, fmt.Errorf("updatedAt: %w", err))
	}
	return e, errors.Join(errs...)
}
