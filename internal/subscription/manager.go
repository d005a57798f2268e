// Package subscription keeps the visitor's set of followed masjids and
// broadcasts every change so open views can refresh.
package subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
)

// Key holds a JSON array of masjid ids.
const Key = "subscribedMasjids"

var ErrEmptyID = errors.New("masjid id is required")

type Manager struct {
	repo     kv.Repository
	bus      *events.Bus
	clientID string
	metrics  metrics.Recorder
}

// NewManager works on repo, which should already be scoped to clientID.
// bus may be nil.
func NewManager(repo kv.Repository, bus *events.Bus, clientID string, rec metrics.Recorder) *Manager {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Manager{repo: repo, bus: bus, clientID: clientID, metrics: rec}
}

// List returns the subscribed ids in subscription order. Never nil.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	ids := []string{}
	found, err := kv.GetJSON(ctx, m.repo, Key, &ids)
	if err != nil {
		return nil, err
	}
	if !found || ids == nil {
		return []string{}, nil
	}
	return ids, nil
}

func (m *Manager) IsSubscribed(ctx context.Context, masjidID string) (bool, error) {
	ids, err := m.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(ids, masjidID) >= 0, nil
}

// Subscribe adds masjidID to the set. Subscribing twice keeps a single entry.
func (m *Manager) Subscribe(ctx context.Context, masjidID string) error {
	return m.set(ctx, masjidID, true)
}

// Unsubscribe removes masjidID. Removing an absent id is not an error.
func (m *Manager) Unsubscribe(ctx context.Context, masjidID string) error {
	return m.set(ctx, masjidID, false)
}

// Toggle flips membership and reports the new state.
func (m *Manager) Toggle(ctx context.Context, masjidID string) (bool, error) {
	subscribed, err := m.IsSubscribed(ctx, masjidID)
	if err != nil {
		return false, err
	}
	if err := m.set(ctx, masjidID, !subscribed); err != nil {
		return subscribed, err
	}
	return !subscribed, nil
}

func (m *Manager) set(ctx context.Context, masjidID string, subscribed bool) error {
	if masjidID == "" {
		return ErrEmptyID
	}

	ids, err := m.List(ctx)
	if err != nil {
		return fmt.Errorf("read subscriptions: %w", err)
	}

	i := indexOf(ids, masjidID)
	switch {
	case subscribed && i < 0:
		ids = append(ids, masjidID)
	case !subscribed && i >= 0:
		ids = append(ids[:i], ids[i+1:]...)
	}

	if err := kv.SetJSON(ctx, m.repo, Key, ids); err != nil {
		return fmt.Errorf("write subscriptions: %w", err)
	}

	m.metrics.SubscriptionChanged(subscribed)
	m.broadcast(ctx, masjidID, subscribed)
	return nil
}

func (m *Manager) broadcast(ctx context.Context, masjidID string, subscribed bool) {
	if m.bus == nil {
		return
	}
	payload := events.SubscriptionChanged{MasjidID: masjidID, IsSubscribed: subscribed}
	if err := m.bus.Emit(ctx, events.TopicSubscriptionChanged, m.clientID, payload); err != nil {
		log.Error().Err(err).Str("masjid_id", masjidID).Msg("[subscription] could not broadcast change")
	}
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
