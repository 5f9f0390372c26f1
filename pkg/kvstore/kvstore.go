// Package kvstore is the namespaced key-value persistence used for carts, sessions and
// order history. Values are opaque bytes; callers own the encoding.
package kvstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

type Config struct {
	Driver      string // memory | badger | redis
	BadgerPath  string
	RedisURL    string
	RedisPrefix string
}

// Open builds the store selected by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "memory":
		return NewMemory(), nil
	case "badger":
		return OpenBadger(cfg.BadgerPath)
	case "redis":
		return DialRedis(ctx, cfg.RedisURL, WithPrefix(cfg.RedisPrefix))
	default:
		return nil, fmt.Errorf("kvstore: unknown driver %q", cfg.Driver)
	}
}

// Key joins namespace parts with ':'.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
