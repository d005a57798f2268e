package redis

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
)

const changedChannel = "kv:changed"

// Store is a kv.Repository kept in Redis. Writes made by other instances
// reach local watchers through the kv:changed channel.
type Store struct {
	client   *goredis.Client
	id       string
	watchers kv.Watchers
	pubsub   *goredis.PubSub
}

var _ kv.Repository = (*Store)(nil)

func NewStore(ctx context.Context, client *goredis.Client) (*Store, error) {
	s := &Store{client: client, id: uuid.NewString()}

	s.pubsub = client.Subscribe(ctx, changedChannel)
	if _, err := s.pubsub.Receive(ctx); err != nil {
		_ = s.pubsub.Close()
		return nil, err
	}
	go s.listen()

	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return err
	}
	s.changed(ctx, key)
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return err
	}
	s.changed(ctx, key)
	return nil
}

func (s *Store) Watch(key string, fn func(key string)) func() {
	return s.watchers.Add(key, fn)
}

func (s *Store) Close() error {
	return s.pubsub.Close()
}

func (s *Store) changed(ctx context.Context, key string) {
	s.watchers.Notify(key)
	if err := s.client.Publish(ctx, changedChannel, s.id+"|"+key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("[redis] could not announce change")
	}
}

func (s *Store) listen() {
	for msg := range s.pubsub.Channel() {
		origin, key, ok := strings.Cut(msg.Payload, "|")
		if !ok || origin == s.id {
			continue
		}
		s.watchers.Notify(key)
	}
}
