// Package events is the in-process publish/subscribe bus that tells mounted
// views to re-read state after a change.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const listenerBuffer = 64

// Relay forwards bus frames to other processes and feeds theirs back.
type Relay interface {
	Publish(ctx context.Context, payload []byte) error
	Listen(ctx context.Context, deliver func(payload []byte)) error
	Close() error
}

type Listener struct {
	C      chan Event
	topics map[string]struct{}
	client string
}

// Accepts reports whether e should be delivered to l.
func (l *Listener) Accepts(e Event) bool {
	if len(l.topics) > 0 {
		if _, ok := l.topics[e.Topic]; !ok {
			return false
		}
	}
	if l.client != "" && e.ClientID != "" && e.ClientID != l.client {
		return false
	}
	return true
}

type Bus struct {
	id        string
	mu        sync.RWMutex
	listeners map[*Listener]struct{}
	relays    []Relay
}

func NewBus() *Bus {
	return &Bus{
		id:        uuid.NewString(),
		listeners: map[*Listener]struct{}{},
	}
}

// Subscribe registers a listener for topics; no topics means every topic.
// A non-empty clientID filters out events addressed to other clients.
func (b *Bus) Subscribe(clientID string, topics ...string) *Listener {
	l := &Listener{
		C:      make(chan Event, listenerBuffer),
		topics: make(map[string]struct{}, len(topics)),
		client: clientID,
	}
	for _, t := range topics {
		l.topics[t] = struct{}{}
	}

	b.mu.Lock()
	b.listeners[l] = struct{}{}
	b.mu.Unlock()
	return l
}

func (b *Bus) Unsubscribe(l *Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.listeners[l]; !ok {
		return
	}
	delete(b.listeners, l)
	close(l.C)
}

// Publish delivers e locally and to every attached relay.
// Slow listeners miss events rather than block the publisher.
func (b *Bus) Publish(ctx context.Context, e Event) {
	e.Origin = b.id
	b.deliver(e)

	b.mu.RLock()
	relays := append([]Relay(nil), b.relays...)
	b.mu.RUnlock()
	if len(relays) == 0 {
		return
	}

	frame, err := json.Marshal(e)
	if err != nil {
		log.Error().Err(err).Str("topic", e.Topic).Msg("[events] could not encode frame")
		return
	}
	for _, r := range relays {
		if err := r.Publish(ctx, frame); err != nil {
			log.Warn().Err(err).Str("topic", e.Topic).Msg("[events] relay publish failed")
		}
	}
}

// Emit wraps payload in an Event and publishes it.
func (b *Bus) Emit(ctx context.Context, topic, clientID string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}
	b.Publish(ctx, Event{Topic: topic, ClientID: clientID, Payload: raw})
	return nil
}

// Attach starts r and routes its inbound frames to local listeners.
func (b *Bus) Attach(ctx context.Context, r Relay) error {
	if err := r.Listen(ctx, b.receive); err != nil {
		return err
	}
	b.mu.Lock()
	b.relays = append(b.relays, r)
	b.mu.Unlock()
	return nil
}

// Close detaches every relay and closes every listener.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, r := range b.relays {
		if err := r.Close(); err != nil {
			log.Warn().Err(err).Msg("[events] relay close failed")
		}
	}
	b.relays = nil
	for l := range b.listeners {
		close(l.C)
	}
	b.listeners = map[*Listener]struct{}{}
}

func (b *Bus) receive(frame []byte) {
	var e Event
	if err := json.Unmarshal(frame, &e); err != nil {
		log.Warn().Err(err).Msg("[events] dropping malformed relay frame")
		return
	}
	if e.Origin == b.id {
		return
	}
	b.deliver(e)
}

func (b *Bus) deliver(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for l := range b.listeners {
		if !l.Accepts(e) {
			continue
		}
		select {
		case l.C <- e:
		default:
			log.Debug().Str("topic", e.Topic).Msg("[events] listener full, dropping event")
		}
	}
}
