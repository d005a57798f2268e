// Package locations manages the visitor's saved places. Exactly one saved
// location is current whenever the list is non-empty.
package locations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const Key = "savedLocations"

const CurrentLocationID = "current"

var (
	ErrNotFound     = errors.New("location not found")
	ErrNameRequired = errors.New("location name is required")
)

// PlaceholderCoordinates stand in for geocoding, which is not performed.
var PlaceholderCoordinates = model.Coordinates{Lat: 40.7128, Lng: -74.0060}

// DeviceLocation is the entry shown before anything has been saved.
func DeviceLocation() model.SavedLocation {
	return model.SavedLocation{
		ID:        CurrentLocationID,
		Name:      "Current Location",
		Address:   "Using device location",
		IsCurrent: true,
	}
}

type Manager struct {
	repo     kv.Repository
	bus      *events.Bus
	clientID string
	newID    func() string
}

func NewManager(repo kv.Repository, bus *events.Bus, clientID string) *Manager {
	return &Manager{repo: repo, bus: bus, clientID: clientID, newID: uuid.NewString}
}

// List returns the saved locations, or the device location when none are stored.
func (m *Manager) List(ctx context.Context) ([]model.SavedLocation, error) {
	var list []model.SavedLocation
	found, err := kv.GetJSON(ctx, m.repo, Key, &list)
	if err != nil {
		return nil, err
	}
	if !found || list == nil {
		return []model.SavedLocation{DeviceLocation()}, nil
	}
	return normalize(list), nil
}

// Current returns the current location. ok is false only for an empty list.
func (m *Manager) Current(ctx context.Context) (loc model.SavedLocation, ok bool, err error) {
	list, err := m.List(ctx)
	if err != nil {
		return model.SavedLocation{}, false, err
	}
	for _, l := range list {
		if l.IsCurrent {
			return l, true, nil
		}
	}
	return model.SavedLocation{}, false, nil
}

// Add saves a named place at the placeholder coordinates. It becomes current
// only when nothing else is saved.
func (m *Manager) Add(ctx context.Context, name, address string) (model.SavedLocation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.SavedLocation{}, ErrNameRequired
	}

	list, err := m.List(ctx)
	if err != nil {
		return model.SavedLocation{}, err
	}

	loc := model.SavedLocation{
		ID:        m.newID(),
		Name:      name,
		Address:   strings.TrimSpace(address),
		Lat:       PlaceholderCoordinates.Lat,
		Lng:       PlaceholderCoordinates.Lng,
		IsCurrent: len(list) == 0,
	}
	list = append(list, loc)

	if err := m.save(ctx, list, loc.ID, "added"); err != nil {
		return model.SavedLocation{}, err
	}
	return loc, nil
}

// Select makes id the only current location.
func (m *Manager) Select(ctx context.Context, id string) ([]model.SavedLocation, error) {
	list, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	if indexOf(list, id) < 0 {
		return nil, ErrNotFound
	}

	for i := range list {
		list[i].IsCurrent = list[i].ID == id
	}
	if err := m.save(ctx, list, id, "selected"); err != nil {
		return nil, err
	}
	return list, nil
}

// Delete removes id. Removing the current location promotes the first remaining one.
func (m *Manager) Delete(ctx context.Context, id string) ([]model.SavedLocation, error) {
	list, err := m.List(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(list, id)
	if i < 0 {
		return nil, ErrNotFound
	}

	wasCurrent := list[i].IsCurrent
	list = append(list[:i], list[i+1:]...)
	if wasCurrent && len(list) > 0 {
		list[0].IsCurrent = true
	}

	if err := m.save(ctx, list, id, "deleted"); err != nil {
		return nil, err
	}
	return list, nil
}

func (m *Manager) save(ctx context.Context, list []model.SavedLocation, id, action string) error {
	if err := kv.SetJSON(ctx, m.repo, Key, list); err != nil {
		return fmt.Errorf("write locations: %w", err)
	}
	if m.bus == nil {
		return nil
	}
	payload := events.LocationsChanged{LocationID: id, Action: action}
	if err := m.bus.Emit(ctx, events.TopicLocationsChanged, m.clientID, payload); err != nil {
		log.Error().Err(err).Str("location_id", id).Msg("[locations] could not broadcast change")
	}
	return nil
}

// normalize repairs stored lists that break the single-current rule.
func normalize(list []model.SavedLocation) []model.SavedLocation {
	seen := false
	for i := range list {
		if list[i].IsCurrent {
			if seen {
				list[i].IsCurrent = false
			}
			seen = true
		}
	}
	if !seen && len(list) > 0 {
		list[0].IsCurrent = true
	}
	return list
}

func indexOf(list []model.SavedLocation, id string) int {
	for i, l := range list {
		if l.ID == id {
			return i
		}
	}
	return -1
}
