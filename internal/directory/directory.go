// Package directory holds the listed masjids and the read-side helpers used
// by the list, detail, map and subscribed views.
package directory

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/geo"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var ErrNotFound = errors.New("masjid not found")

// DefaultLocation is used whenever the visitor's position is unknown.
var DefaultLocation = model.Coordinates{Lat: 40.7128, Lng: -74.0060}

type Directory struct {
	masjids []model.Masjid
}

func New(masjids []model.Masjid) *Directory {
	return &Directory{masjids: masjids}
}

// All returns a copy of every masjid in listing order.
func (d *Directory) All() []model.Masjid {
	out := make([]model.Masjid, len(d.masjids))
	for i, m := range d.masjids {
		out[i] = clone(m)
	}
	return out
}

func (d *Directory) Get(id string) (model.Masjid, error) {
	for _, m := range d.masjids {
		if m.ID == id {
			return clone(m), nil
		}
	}
	return model.Masjid{}, ErrNotFound
}

func (d *Directory) Exists(id string) bool {
	_, err := d.Get(id)
	return err == nil
}

// Pick returns the masjids of list whose ids appear in ids, in ids order.
// Unknown ids are skipped.
func Pick(list []model.Masjid, ids []string) []model.Masjid {
	byID := make(map[string]int, len(list))
	for i, m := range list {
		byID[m.ID] = i
	}

	out := make([]model.Masjid, 0, len(ids))
	for _, id := range ids {
		if i, ok := byID[id]; ok {
			out = append(out, clone(list[i]))
		}
	}
	return out
}

// FilterMasjids keeps masjids whose name or address contains query,
// ignoring case. An empty query returns list unchanged. Order is preserved.
func FilterMasjids(list []model.Masjid, query string) []model.Masjid {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)

	out := make([]model.Masjid, 0, len(list))
	for _, m := range list {
		if strings.Contains(strings.ToLower(m.Name), q) || strings.Contains(strings.ToLower(m.Address), q) {
			out = append(out, m)
		}
	}
	return out
}

// MarkSubscribed sets IsSubscribed from the subscription set.
func MarkSubscribed(list []model.Masjid, ids []string) []model.Masjid {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	for i := range list {
		_, list[i].IsSubscribed = set[list[i].ID]
	}
	return list
}

// WithDistances recomputes each distance label from the given point.
func WithDistances(list []model.Masjid, from model.Coordinates) []model.Masjid {
	for i := range list {
		km := geo.HaversineKm(from.Lat, from.Lng, list[i].Lat, list[i].Lng)
		list[i].Distance = geo.DistanceLabel(km)
	}
	return list
}

// MarkNext flags the first timing still ahead of now. When the day's prayers
// are over the first timing, tomorrow's, is flagged.
func MarkNext(list []model.Masjid, now time.Time) []model.Masjid {
	for i := range list {
		list[i].Timings = markNextTiming(list[i].Timings, now)
	}
	return list
}

func markNextTiming(timings []model.PrayerTime, now time.Time) []model.PrayerTime {
	for i := range timings {
		timings[i].IsNext = false
	}
	schedule, err := countdown.FromTimings(timings)
	if err != nil {
		log.Warn().Err(err).Msg("[directory] unparseable timing, next prayer not marked")
		return timings
	}
	if len(schedule) == 0 {
		return timings
	}

	next := schedule.Next(now)
	if next < 0 {
		next = 0
	}
	timings[next].IsNext = true
	return timings
}

func clone(m model.Masjid) model.Masjid {
	m.Timings = append([]model.PrayerTime(nil), m.Timings...)
	m.Announcements = append([]model.Announcement{}, m.Announcements...)
	if m.JumaTime != nil {
		j := *m.JumaTime
		m.JumaTime = &j
	}
	return m
}
