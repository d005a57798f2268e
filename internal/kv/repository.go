// Package kv is the per-client document store behind every persisted
// visitor preference: subscriptions, tracker days and saved locations.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("kv: key not found")

// Repository stores JSON documents by string key. Writes are last-writer-wins.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Watch registers fn to be called after key changes. The returned func removes it.
	Watch(key string, fn func(key string)) (cancel func())
}

// GetJSON decodes the value at key into v.
// A missing key or an undecodable value reports found == false with a nil error;
// callers fall back to their defaults. The contents of v are unspecified in that case.
func GetJSON(ctx context.Context, repo Repository, key string, v any) (bool, error) {
	raw, err := repo.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %q: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[kv] malformed value, treating as absent")
		return false, nil
	}
	return true, nil
}

// SetJSON encodes v and stores it at key.
func SetJSON(ctx context.Context, repo Repository, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := repo.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}
