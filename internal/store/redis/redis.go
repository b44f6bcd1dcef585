package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store keeps the memory log in Redis lists. All keys share one hash tag so
// the write script stays on a single cluster slot.
type Store struct {
	client    *goredis.Client
	logKey    string
	latestKey string
	ownersKey string
	prefix    string
	log       *zap.Logger
}

func New(client *goredis.Client, prefix string, logger *zap.Logger) *Store {
	if prefix == "" {
		prefix = "memory_mapping"
	}
	tag := "{" + prefix + "}"
	return &Store{
		client:    client,
		logKey:    tag + ":log",
		latestKey: tag + ":latest",
		ownersKey: tag + ":owners",
		prefix:    tag,
		log:       logger,
	}
}

// Dial parses url, connects and pings the server.
func Dial(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = 5 * time.Second

	client := goredis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (s *Store) ownerKey(owner string) string {
	return s.prefix + ":owner:" + owner
}
