// Package tracker records which of the five daily prayers the visitor has
// completed and derives streak and completion statistics.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	DateLayout = "2006-01-02"
	keyPrefix  = "prayer_"

	statsWindowDays = 30
	weekDays        = 7
)

var (
	ErrUnknownPrayer = errors.New("unknown prayer")
	ErrInvalidDate   = errors.New("date must be YYYY-MM-DD")
)

// Key is the storage key of one day's record.
func Key(date string) string {
	return keyPrefix + date
}

// ParseDate validates a YYYY-MM-DD date.
func ParseDate(date string) (time.Time, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return d, nil
}

type Tracker struct {
	repo    kv.Repository
	metrics metrics.Recorder
}

func New(repo kv.Repository, rec metrics.Recorder) *Tracker {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Tracker{repo: repo, metrics: rec}
}

// Load returns the stored record for date, or a fresh all-false record.
// A fresh record is not persisted until a prayer is toggled.
func (t *Tracker) Load(ctx context.Context, date string) (model.PrayerRecord, error) {
	if _, err := ParseDate(date); err != nil {
		return model.PrayerRecord{}, err
	}
	rec, _, err := t.load(ctx, date)
	return rec, err
}

func (t *Tracker) load(ctx context.Context, date string) (model.PrayerRecord, bool, error) {
	var rec model.PrayerRecord
	found, err := kv.GetJSON(ctx, t.repo, Key(date), &rec)
	if err != nil {
		return model.PrayerRecord{}, false, err
	}
	if !found {
		return model.NewPrayerRecord(date), false, nil
	}

	// fill in any prayer missing from an older record
	fresh := model.NewPrayerRecord(date)
	for _, name := range model.PrayerNames {
		fresh.Prayers[name] = rec.Prayers[name]
	}
	return fresh, true, nil
}

// Toggle flips one prayer for date and persists the record immediately.
func (t *Tracker) Toggle(ctx context.Context, date, prayer string) (model.PrayerRecord, error) {
	if !model.IsPrayerName(prayer) {
		return model.PrayerRecord{}, fmt.Errorf("%w: %q", ErrUnknownPrayer, prayer)
	}
	if _, err := ParseDate(date); err != nil {
		return model.PrayerRecord{}, err
	}

	rec, _, err := t.load(ctx, date)
	if err != nil {
		return model.PrayerRecord{}, err
	}
	rec.Prayers[prayer] = !rec.Prayers[prayer]

	if err := kv.SetJSON(ctx, t.repo, Key(date), rec); err != nil {
		return model.PrayerRecord{}, err
	}
	t.metrics.PrayerToggled(prayer, rec.Prayers[prayer])
	return rec, nil
}

// ComputeStats looks back over the thirty days ending at ref.
// Week and Month sum completed prayers over the last 7 and 30 days.
// Streak counts consecutive fully completed days from ref backwards and stops
// at the first day with fewer than five prayers or no record.
func (t *Tracker) ComputeStats(ctx context.Context, ref time.Time) (model.PrayerStats, error) {
	var stats model.PrayerStats
	streakOpen := true

	for i := 0; i < statsWindowDays; i++ {
		date := ref.AddDate(0, 0, -i).Format(DateLayout)
		rec, found, err := t.load(ctx, date)
		if err != nil {
			return model.PrayerStats{}, err
		}

		n := 0
		if found {
			n = rec.Completed()
		}
		if i == 0 {
			stats.Today = n
		}
		if i < weekDays {
			stats.Week += n
		}
		stats.Month += n

		if streakOpen && n == len(model.PrayerNames) {
			stats.Streak++
		} else {
			streakOpen = false
		}
	}
	return stats, nil
}

// CompletionPercentage is round(100 * completed / 5).
func CompletionPercentage(rec model.PrayerRecord) int {
	return int(math.Round(100 * float64(rec.Completed()) / float64(len(model.PrayerNames))))
}
