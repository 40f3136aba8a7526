package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/erazemk/vitrina/internal/model"
)

// DefaultNamespace prefixes every key written by the Redis store.
const DefaultNamespace = "vitrina"

// Redis stores values as plain Redis strings under a key namespace.
type Redis struct {
	client    *redis.Client
	namespace string
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	URL         string // e.g. redis://localhost:6379/0
	Namespace   string // defaults to DefaultNamespace
	DialTimeout time.Duration
}

// NewRedis connects to the server at opts.URL and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	redisOpts, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	if opts.DialTimeout > 0 {
		redisOpts.DialTimeout = opts.DialTimeout
	}

	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, model.StorageError("connecting to redis", err)
	}

	return NewRedisFromClient(client, opts.Namespace), nil
}

// NewRedisFromClient wraps an existing client. The store takes ownership of
// the client and closes it in Close.
func NewRedisFromClient(client *redis.Client, namespace string) *Redis {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Redis{client: client, namespace: namespace}
}

func (r *Redis) key(k string) string {
	return r.namespace + ":" + k
}

// Get returns the value stored under key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, model.StorageError("reading redis key", err)
	}
	return value, true, nil
}

// Set stores value under key without expiry.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return model.StorageError("writing redis key", err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
