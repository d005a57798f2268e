// Package history produces the recent prayer-time history shown to visitors.
// The times are synthetic; there is no recorded source behind them.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	DefaultDays = 30
	RecentCount = 10
	ChartCount  = 7

	dateLayout = "2006-01-02"
)

var ErrNoRecord = errors.New("no history for date")

// Generate returns days records ending at today, oldest first.
func Generate(today time.Time, days int) []model.PrayerTimeRecord {
	records := make([]model.PrayerTimeRecord, 0, days)
	for i := days - 1; i >= 0; i-- {
		records = append(records, model.PrayerTimeRecord{
			Date:    today.AddDate(0, 0, -i).Format(dateLayout),
			Fajr:    fmt.Sprintf("5:%d", 30+(i%2)*5),
			Dhuhr:   fmt.Sprintf("12:%d", 45+i%3),
			Asr:     fmt.Sprintf("4:%d", 30+(i%2)*5),
			Maghrib: fmt.Sprintf("6:%d", 50+i%3),
			Isha:    fmt.Sprintf("8:%d", 15+(i%2)*5),
		})
	}
	return records
}

// Recent returns up to n records, newest first.
func Recent(records []model.PrayerTimeRecord, n int) []model.PrayerTimeRecord {
	if n > len(records) {
		n = len(records)
	}
	out := make([]model.PrayerTimeRecord, 0, n)
	for i := len(records) - 1; i >= len(records)-n; i-- {
		out = append(out, records[i])
	}
	return out
}

// Tail returns the last n records, oldest first.
func Tail(records []model.PrayerTimeRecord, n int) []model.PrayerTimeRecord {
	if n > len(records) {
		n = len(records)
	}
	return records[len(records)-n:]
}

func Select(records []model.PrayerTimeRecord, date string) (model.PrayerTimeRecord, error) {
	for _, r := range records {
		if r.Date == date {
			return r, nil
		}
	}
	return model.PrayerTimeRecord{}, fmt.Errorf("%w: %s", ErrNoRecord, date)
}

type Variation struct {
	Prayer string `json:"prayer"`
	Min    string `json:"min"`
	Max    string `json:"max"`
	Avg    string `json:"avg"`
}

// VariationOf summarises one prayer across records: the earliest record's time,
// the latest record's time and the selected day's time.
func VariationOf(records []model.PrayerTimeRecord, selected model.PrayerTimeRecord, prayer string) Variation {
	v := Variation{Prayer: prayer}
	if len(records) == 0 {
		return v
	}
	v.Min = records[0].Time(prayer)
	v.Max = records[len(records)-1].Time(prayer)
	v.Avg = selected.Time(prayer)
	return v
}
