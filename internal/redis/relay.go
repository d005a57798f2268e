package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const EventsChannel = "masjidfinder:events"

// Relay carries event bus frames between instances over Redis pub/sub.
type Relay struct {
	client  *goredis.Client
	channel string
	pubsub  *goredis.PubSub
}

func NewRelay(client *goredis.Client, channel string) *Relay {
	if channel == "" {
		channel = EventsChannel
	}
	return &Relay{client: client, channel: channel}
}

func (r *Relay) Publish(ctx context.Context, payload []byte) error {
	return r.client.Publish(ctx, r.channel, payload).Err()
}

// Listen subscribes and returns once the subscription is confirmed.
// deliver runs on a background goroutine until ctx is done or the relay is closed.
func (r *Relay) Listen(ctx context.Context, deliver func(payload []byte)) error {
	r.pubsub = r.client.Subscribe(ctx, r.channel)
	if _, err := r.pubsub.Receive(ctx); err != nil {
		_ = r.pubsub.Close()
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}

	ch := r.pubsub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = r.pubsub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				deliver([]byte(msg.Payload))
			}
		}
	}()

	log.Info().Str("channel", r.channel).Msg("redis event relay listening")
	return nil
}

func (r *Relay) Close() error {
	if r.pubsub == nil {
		return nil
	}
	return r.pubsub.Close()
}
