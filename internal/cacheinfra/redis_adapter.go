package cacheinfra

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"
)

// scanBatch is the COUNT hint used while scanning for a prefix.
const scanBatch = 256

// redisClient is the subset of go-redis commands the engine uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// redisService is the single node engine. Values are encoded with msgpack and
// decoded back into the result type of the fetch function.
type redisService struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

// NewRedisService connects to cfg.Addr and verifies the connection.
func NewRedisService(cfg RedisConfig) (*redisService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	timeout := cfg.DialTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}

	return newRedisService(client, cfg), nil
}

// NewRedisServiceWithClient builds the engine on an existing client.
func NewRedisServiceWithClient(client redis.UniversalClient, cfg RedisConfig) (*redisService, error) {
	if client == nil {
		return nil, &ConfigError{Field: "Redis.Client", Message: "cannot be nil"}
	}
	if cfg.TTL <= 0 {
		return nil, &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	return newRedisService(client, cfg), nil
}

func newRedisService(client redisClient, cfg RedisConfig) *redisService {
	return &redisService{client: client, prefix: cfg.KeyPrefix, ttl: cfg.TTL}
}

// DegradedError reports a backend failure on a read whose value was still
// fetched from the source. GetOrFetch returns it together with that value.
type DegradedError struct {
	Op  string
	Err error
}

func (e *DegradedError) Error() string {
	return "cache degraded: redis " + e.Op + ": " + e.Err.Error()
}

func (e *DegradedError) Unwrap() error { return e.Err }

// GetOrFetch returns the decoded entry for key or calls fetchFn and stores its
// encoded result. Failed fetches are not stored. An entry that cannot be
// decoded into the fetch result type is treated as a miss. When Redis itself
// fails the fetched value is still returned, with a *DegradedError.
func (s *redisService) GetOrFetch(ctx context.Context, key string, fetchFn any) (any, error) {
	if err := validateFetchFn(fetchFn); err != nil {
		return nil, err
	}

	var degraded error
	raw, err := s.client.Get(ctx, s.prefix+key).Bytes()
	switch {
	case err == nil:
		if value, ok := decode(raw, resultType(fetchFn)); ok {
			return value, nil
		}
	case !errors.Is(err, redis.Nil):
		degraded = &DegradedError{Op: "get", Err: err}
	}

	value, err := callFetch(ctx, fetchFn)
	if err != nil {
		return nil, err
	}

	data, err := msgpack.Marshal(value)
	if err != nil {
		return value, &DegradedError{Op: "encode", Err: fmt.Errorf("%T: %w", value, err)}
	}
	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return value, &DegradedError{Op: "set", Err: err}
	}

	return value, degraded
}

func decode(raw []byte, typ reflect.Type) (any, bool) {
	ptr := reflect.New(typ)
	if err := msgpack.Unmarshal(raw, ptr.Interface()); err != nil {
		return nil, false
	}
	return ptr.Elem().Interface(), true
}

// Delete removes a single entry.
func (s *redisService) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

// DeleteByPrefix scans for every key starting with prefix and deletes them in
// batches.
func (s *redisService) DeleteByPrefix(ctx context.Context, prefix string) error {
	match := escapeGlob(s.prefix+prefix) + "*"

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// InvalidateKeys removes the given entries.
func (s *redisService) InvalidateKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = s.prefix + key
	}
	return s.client.Del(ctx, prefixed...).Err()
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// escapeGlob quotes the characters SCAN MATCH treats as wildcards.
func escapeGlob(s string) string {
	return globEscaper.Replace(s)
}
