package imam

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var (
	ErrUnknownPrayer   = errors.New("unknown prayer")
	ErrTimesOutOfOrder = errors.New("prayer times must increase from Fajr to Isha")
)

type Timetable struct {
	Timings  []model.PrayerTime `json:"timings"`
	JumaTime string             `json:"jumaTime"`
}

// TimetableUpdate carries form values, usually 24-hour "HH:MM" from a time input.
// Prayers left out keep their current time; an empty JumaTime keeps Juma unchanged.
type TimetableUpdate struct {
	Times    map[string]string
	JumaTime string
}

type Timetables struct {
	mu       sync.RWMutex
	byMasjid map[string]Timetable
	dir      *directory.Directory
}

func NewTimetables(dir *directory.Directory) *Timetables {
	t := &Timetables{byMasjid: map[string]Timetable{}, dir: dir}
	for _, m := range dir.All() {
		tt := Timetable{Timings: m.Timings}
		if m.JumaTime != nil {
			tt.JumaTime = *m.JumaTime
		}
		t.byMasjid[m.ID] = tt
	}
	return t
}

func (t *Timetables) Get(masjidID string) (Timetable, error) {
	if !t.dir.Exists(masjidID) {
		return Timetable{}, directory.ErrNotFound
	}

	t.mu.RLock()
	defer t.mu.RUnlock()
	tt := t.byMasjid[masjidID]
	tt.Timings = append([]model.PrayerTime(nil), tt.Timings...)
	return tt, nil
}

// Prepare validates u against masjidID's timetable and returns the result
// without storing it. Times are converted to the 12-hour display form.
func (t *Timetables) Prepare(masjidID string, u TimetableUpdate) (Timetable, error) {
	tt, err := t.Get(masjidID)
	if err != nil {
		return Timetable{}, err
	}

	for name, value := range u.Times {
		if !model.IsPrayerName(name) {
			return Timetable{}, fmt.Errorf("%w: %q", ErrUnknownPrayer, name)
		}
		label, err := ToDisplay(value)
		if err != nil {
			return Timetable{}, fmt.Errorf("%s: %w", name, err)
		}
		for i := range tt.Timings {
			if tt.Timings[i].Name == name {
				tt.Timings[i].Time = label
			}
		}
	}

	if u.JumaTime != "" {
		label, err := ToDisplay(u.JumaTime)
		if err != nil {
			return Timetable{}, fmt.Errorf("juma: %w", err)
		}
		tt.JumaTime = label
	}

	if err := checkOrder(tt.Timings); err != nil {
		return Timetable{}, err
	}
	return tt, nil
}

// checkOrder requires each prayer to start strictly after the one before it.
func checkOrder(timings []model.PrayerTime) error {
	at := make(map[string]int, len(timings))
	for _, p := range timings {
		h, m, err := countdown.ParseClock(p.Time)
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name, err)
		}
		at[p.Name] = h*60 + m
	}

	prev, prevName := -1, ""
	for _, name := range model.PrayerNames {
		minutes, ok := at[name]
		if !ok {
			continue
		}
		if minutes <= prev {
			return fmt.Errorf("%w: %s is not after %s", ErrTimesOutOfOrder, name, prevName)
		}
		prev, prevName = minutes, name
	}
	return nil
}

// Store replaces masjidID's timetable.
func (t *Timetables) Store(masjidID string, tt Timetable) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.byMasjid[masjidID] = tt
}

// ToDisplay converts "16:30" (or an already formatted "4:30 PM") to "4:30 PM".
func ToDisplay(value string) (string, error) {
	h, m, err := countdown.ParseClock(value)
	if err != nil {
		return "", err
	}
	return countdown.FormatClock(h, m), nil
}
