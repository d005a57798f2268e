package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var ErrInvalidClock = errors.New("invalid clock time")

// Entry is one prayer of the day at a wall-clock time.
type Entry struct {
	Name   string
	Hour   int
	Minute int
}

// Label renders the entry as "4:30 PM".
func (e Entry) Label() string {
	return FormatClock(e.Hour, e.Minute)
}

// Schedule is the ordered list of the day's prayers.
type Schedule []Entry

// DefaultSchedule is the fixed daily schedule used by the countdown.
func DefaultSchedule() Schedule {
	return Schedule{
		{Name: model.Fajr, Hour: 5, Minute: 30},
		{Name: model.Dhuhr, Hour: 12, Minute: 45},
		{Name: model.Asr, Hour: 16, Minute: 30},
		{Name: model.Maghrib, Hour: 18, Minute: 50},
		{Name: model.Isha, Hour: 20, Minute: 15},
	}
}

// FromTimings builds a schedule from display timings such as a masjid's.
func FromTimings(timings []model.PrayerTime) (Schedule, error) {
	s := make(Schedule, 0, len(timings))
	for _, t := range timings {
		h, m, err := ParseClock(t.Time)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		s = append(s, Entry{Name: t.Name, Hour: h, Minute: m})
	}
	return s, nil
}

// At places entry i on the calendar day of day, in day's location.
func (s Schedule) At(day time.Time, i int) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, s[i].Hour, s[i].Minute, 0, 0, day.Location())
}

// Next returns the index of the first entry at or after now on now's day,
// or -1 when every entry has passed.
func (s Schedule) Next(now time.Time) int {
	for i := range s {
		if !s.At(now, i).Before(now) {
			return i
		}
	}
	return -1
}

// ParseClock accepts "5:30 AM", "12:45 PM" and 24-hour "16:30".
func ParseClock(s string) (hour, minute int, err error) {
	s = strings.TrimSpace(s)
	period := ""
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		period = strings.ToUpper(strings.TrimSpace(s[i+1:]))
		s = strings.TrimSpace(s[:i])
	}

	hs, ms, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	hour, err = strconv.Atoi(hs)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	minute, err = strconv.Atoi(ms)
	if err != nil || len(ms) != 2 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}

	switch period {
	case "":
		if hour < 0 || hour > 23 {
			return 0, 0, fmt.Errorf("%w: hour %d", ErrInvalidClock, hour)
		}
	case "AM", "PM":
		if hour < 1 || hour > 12 {
			return 0, 0, fmt.Errorf("%w: hour %d", ErrInvalidClock, hour)
		}
		hour %= 12
		if period == "PM" {
			hour += 12
		}
	default:
		return 0, 0, fmt.Errorf("%w: period %q", ErrInvalidClock, period)
	}
	return hour, minute, nil
}

// FormatClock renders a 24-hour time on the 12-hour clock: 16:30 -> "4:30 PM".
func FormatClock(hour, minute int) string {
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, period)
}
