package imam

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/async"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	KindPrayerTimes = "prayer-times"
	KindProfile     = "profile"
	KindOnboarding  = "onboarding"
)

// Admin groups the imam screens' state. Edits to the timetable and profile,
// and onboarding submissions, are applied through the async runner.
type Admin struct {
	Board      *Board
	Timetables *Timetables
	Profiles   *Profiles
	Registry   *Registry

	runner      *async.Runner
	submitDelay time.Duration
	now         func() time.Time
}

func NewAdmin(dir *directory.Directory, bus *events.Bus, runner *async.Runner, submitDelay time.Duration, rec metrics.Recorder) *Admin {
	return &Admin{
		Board:       NewBoard(dir, bus, rec),
		Timetables:  NewTimetables(dir),
		Profiles:    NewProfiles(dir),
		Registry:    NewRegistry(),
		runner:      runner,
		submitDelay: submitDelay,
		now:         time.Now,
	}
}

// SaveTimetable validates u now and applies it once the save completes.
func (a *Admin) SaveTimetable(masjidID string, u TimetableUpdate) (async.Operation, error) {
	tt, err := a.Timetables.Prepare(masjidID, u)
	if err != nil {
		return async.Operation{}, err
	}
	return a.runner.Start(KindPrayerTimes, func(context.Context) error {
		a.Timetables.Store(masjidID, tt)
		return nil
	}), nil
}

func (a *Admin) SaveProfile(masjidID string, in Profile) (async.Operation, error) {
	p, err := a.Profiles.Prepare(masjidID, in)
	if err != nil {
		return async.Operation{}, err
	}
	return a.runner.Start(KindProfile, func(context.Context) error {
		a.Profiles.Store(masjidID, p)
		return nil
	}), nil
}

func (a *Admin) Submit(app Application) (async.Operation, error) {
	reg, err := a.Registry.Prepare(app)
	if err != nil {
		return async.Operation{}, err
	}
	return a.runner.StartAfter(KindOnboarding, a.submitDelay, func(context.Context) error {
		a.Registry.Store(reg)
		return nil
	}), nil
}

func (a *Admin) Dashboard(masjidID string) (Dashboard, error) {
	profile, err := a.Profiles.Get(masjidID)
	if err != nil {
		return Dashboard{}, err
	}
	tt, err := a.Timetables.Get(masjidID)
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{
		MasjidID:      masjidID,
		Profile:       profile,
		Status:        StatusApproved,
		Subscribers:   BaselineSubscribers,
		Announcements: a.Board.Count(masjidID),
		JumaTime:      tt.JumaTime,
	}
	d.UpcomingPrayer, _ = UpcomingPrayer(tt.Timings, a.now())
	return d, nil
}

func (a *Admin) Operation(id string) (async.Operation, error) {
	return a.runner.Get(id)
}

func (a *Admin) CancelOperation(id string) (async.Operation, error) {
	return a.runner.Cancel(id)
}

// Overlay applies the imams' current profile, timetable and announcements
// to catalog masjids.
func (a *Admin) Overlay(list []model.Masjid) []model.Masjid {
	out := make([]model.Masjid, len(list))
	for i, m := range list {
		if p, err := a.Profiles.Get(m.ID); err == nil {
			m.Name, m.Address, m.Phone, m.Email = p.Name, p.Address, p.Phone, p.Email
		}
		if tt, err := a.Timetables.Get(m.ID); err == nil {
			m.Timings = tt.Timings
			if tt.JumaTime != "" {
				juma := tt.JumaTime
				m.JumaTime = &juma
			}
		}
		if posts, err := a.Board.List(m.ID); err == nil {
			m.Announcements = posts
		}
		out[i] = m
	}
	return out
}
