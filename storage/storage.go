// Package storage keeps the serialized application state between runs.
package storage

import (
	"context"
	"errors"
)

// AppKey is the single key the application state is stored under.
const AppKey = "app"

var ErrNotFound = errors.New("key not found")

type Store interface {
	// Get returns ErrNotFound when nothing was stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}
