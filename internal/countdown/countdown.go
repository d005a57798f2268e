// Package countdown tracks the time remaining until the next daily prayer.
package countdown

import (
	"context"
	"time"
)

type State string

const (
	Counting State = "counting"
	Arrived  State = "arrived"
)

const ArrivedMessage = "It's prayer time!"

type Snapshot struct {
	State   State     `json:"state"`
	Prayer  string    `json:"prayer"`
	Time    string    `json:"time"`
	At      time.Time `json:"at"`
	Hours   int       `json:"hours"`
	Minutes int       `json:"minutes"`
	Seconds int       `json:"seconds"`
	Message string    `json:"message,omitempty"`
}

// Countdown walks a schedule one prayer at a time. After the last prayer of
// the day arrives it moves on to the first prayer of the following day.
// A Countdown is not safe for concurrent use.
type Countdown struct {
	schedule Schedule
	day      time.Time
	index    int
}

// New points the countdown at the first prayer at or after now,
// or at tomorrow's first prayer when the day is over.
func New(schedule Schedule, now time.Time) *Countdown {
	c := &Countdown{schedule: schedule, day: now, index: schedule.Next(now)}
	if c.index < 0 {
		c.index = 0
		c.day = now.AddDate(0, 0, 1)
	}
	return c
}

// Target is the prayer currently counted toward.
func (c *Countdown) Target() (Entry, time.Time) {
	return c.schedule[c.index], c.schedule.At(c.day, c.index)
}

// Tick reports the remaining time at now. When the target has been reached
// it reports Arrived once and advances to the next prayer.
func (c *Countdown) Tick(now time.Time) Snapshot {
	entry, at := c.Target()
	snap := Snapshot{Prayer: entry.Name, Time: entry.Label(), At: at}

	diff := at.Sub(now)
	if diff <= 0 {
		snap.State = Arrived
		snap.Message = ArrivedMessage
		c.advance()
		return snap
	}

	snap.State = Counting
	snap.Hours = int(diff / time.Hour)
	snap.Minutes = int(diff % time.Hour / time.Minute)
	snap.Seconds = int(diff % time.Minute / time.Second)
	return snap
}

func (c *Countdown) advance() {
	c.index++
	if c.index == len(c.schedule) {
		c.index = 0
		c.day = c.day.AddDate(0, 0, 1)
	}
}

// Run ticks immediately and then every interval, handing each snapshot to fn,
// until ctx is done.
func (c *Countdown) Run(ctx context.Context, interval time.Duration, clock func() time.Time, fn func(Snapshot)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fn(c.Tick(clock()))
	for {
		select {
		case <-ticker.C:
			fn(c.Tick(clock()))
		case <-ctx.Done():
			return
		}
	}
}
