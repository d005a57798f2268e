// Package ramadan serves the fasting timetable and iftar countdown.
// Ramadan is pinned to March; there is no Islamic calendar behind it.
package ramadan

import (
	"context"
	"fmt"
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	Month     = time.March
	Length    = 30
	MockToday = 15

	SuhoorTime  = "4:30 AM"
	IftarTime   = "6:45 PM"
	FajrTime    = "5:00 AM"
	MaghribTime = "6:50 PM"

	iftarHour   = 18
	iftarMinute = 45

	IftarMessage = "Iftar time!"
)

type FastingState string

const (
	NotFasting FastingState = "not-fasting"
	Fasting    FastingState = "fasting"
	IftarNow   FastingState = "iftar-time"
)

type Status struct {
	IsRamadan  bool         `json:"isRamadan"`
	State      FastingState `json:"fastingStatus"`
	UntilIftar string       `json:"timeUntilIftar"`
	CurrentDay int          `json:"currentDay"`
}

func IsRamadan(now time.Time) bool {
	return now.Month() == Month
}

// Days lists the thirty fasts of now's year.
func Days(now time.Time) []model.RamadanDay {
	days := make([]model.RamadanDay, 0, Length)
	for i := 1; i <= Length; i++ {
		date := time.Date(now.Year(), Month, i, 0, 0, 0, 0, now.Location())
		days = append(days, model.RamadanDay{
			Date:    fmt.Sprintf("%d/%d/%d", int(date.Month()), date.Day(), date.Year()),
			Day:     i,
			Suhoor:  SuhoorTime,
			Iftar:   IftarTime,
			Fajr:    FajrTime,
			Maghrib: MaghribTime,
			IsToday: i == MockToday,
		})
	}
	return days
}

// StatusAt reports whether the fast is still running at now and how long remains.
func StatusAt(now time.Time) Status {
	if !IsRamadan(now) {
		return Status{State: NotFasting}
	}

	s := Status{IsRamadan: true, CurrentDay: MockToday}
	y, m, d := now.Date()
	iftar := time.Date(y, m, d, iftarHour, iftarMinute, 0, 0, now.Location())

	if now.Before(iftar) {
		diff := iftar.Sub(now)
		s.State = Fasting
		s.UntilIftar = fmt.Sprintf("%dh %dm", int(diff/time.Hour), int(diff%time.Hour/time.Minute))
		return s
	}
	s.State = IftarNow
	s.UntilIftar = IftarMessage
	return s
}

// Run reports the status immediately and then every interval until ctx is done.
func Run(ctx context.Context, interval time.Duration, clock func() time.Time, fn func(Status)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(StatusAt(clock()))
	for {
		select {
		case <-ticker.C:
			fn(StatusAt(clock()))
		case <-ctx.Done():
			return
		}
	}
}
