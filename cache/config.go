package cache

import (
	"fmt"
	"time"

	"github.com/goliatone/go-commerce-store/internal/cacheinfra"
)

// Engine backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config exposes cache configuration options for consumers of the cache package.
type Config struct {
	// Backend selects the engine: BackendMemory (sturdyc, in process) or
	// BackendRedis (single node). Empty means BackendMemory.
	Backend string

	Capacity           int
	NumShards          int
	TTL                time.Duration
	EvictionPercentage int
	EvictionInterval   time.Duration

	Redis RedisConfig
}

// RedisConfig configures the Redis engine.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	mem := cacheinfra.DefaultConfig()
	red := cacheinfra.DefaultRedisConfig()
	return Config{
		Backend:            BackendMemory,
		Capacity:           mem.Capacity,
		NumShards:          mem.NumShards,
		TTL:                mem.TTL,
		EvictionPercentage: mem.EvictionPercentage,
		EvictionInterval:   mem.EvictionInterval,
		Redis: RedisConfig{
			Addr:      red.Addr,
			DB:        red.DB,
			KeyPrefix: red.KeyPrefix,
		},
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch c.Backend {
	case "", BackendMemory:
		return c.toInternal().Validate()
	case BackendRedis:
		return c.toRedis().Validate()
	default:
		return &cacheinfra.ConfigError{Field: "Backend", Message: fmt.Sprintf("unsupported backend %q", c.Backend)}
	}
}

// NewCacheService constructs the engine selected by cfg.Backend.
func NewCacheService(cfg Config) (CacheService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Backend == BackendRedis {
		return cacheinfra.NewRedisService(cfg.toRedis())
	}
	return cacheinfra.NewSturdycService(cfg.toInternal())
}

func (c Config) toInternal() cacheinfra.Config {
	return cacheinfra.Config{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.TTL,
		EvictionPercentage: c.EvictionPercentage,
		EvictionInterval:   c.EvictionInterval,
	}
}

func (c Config) toRedis() cacheinfra.RedisConfig {
	return cacheinfra.RedisConfig{
		Addr:      c.Redis.Addr,
		Password:  c.Redis.Password,
		DB:        c.Redis.DB,
		KeyPrefix: c.Redis.KeyPrefix,
		TTL:       c.TTL,
	}
}
