package imam

import (
	"time"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	StatusApproved      = "approved"
	BaselineSubscribers = 245
)

type Dashboard struct {
	MasjidID       string           `json:"masjidId"`
	Profile        Profile          `json:"profile"`
	Status         string           `json:"status"`
	Subscribers    int              `json:"subscribers"`
	Announcements  int              `json:"announcements"`
	UpcomingPrayer model.PrayerTime `json:"upcomingPrayer"`
	JumaTime       string           `json:"jumaTime"`
}

// UpcomingPrayer picks the first timing at or after now, wrapping to the
// first timing of the day once they have all passed.
func UpcomingPrayer(timings []model.PrayerTime, now time.Time) (model.PrayerTime, bool) {
	if len(timings) == 0 {
		return model.PrayerTime{}, false
	}
	schedule, err := countdown.FromTimings(timings)
	if err != nil {
		return model.PrayerTime{}, false
	}
	i := schedule.Next(now)
	if i < 0 {
		i = 0
	}
	next := timings[i]
	next.IsNext = true
	return next, true
}
