package scores

import "context"

// StoreConfig selects a backend. RedisURL wins over FilePath; with neither
// set the store lives in memory.
type StoreConfig struct {
	RedisURL    string
	RedisPrefix string
	FilePath    string
}

// OpenStore opens the backend named by cfg.
func OpenStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	if cfg.RedisURL != "" {
		return OpenRedisStore(ctx, cfg.RedisURL, cfg.RedisPrefix)
	}
	return OpenFileStore(cfg.FilePath)
}
