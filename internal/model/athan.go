package model

const (
	Fajr    = "Fajr"
	Dhuhr   = "Dhuhr"
	Asr     = "Asr"
	Maghrib = "Maghrib"
	Isha    = "Isha"
)

// PrayerNames is the fixed daily order of the five prayers.
var PrayerNames = []string{Fajr, Dhuhr, Asr, Maghrib, Isha}

// IsPrayerName reports whether name is one of the five canonical prayers.
func IsPrayerName(name string) bool {
	for _, n := range PrayerNames {
		if n == name {
			return true
		}
	}
	return false
}

// PrayerTime is a display time such as "4:30 PM".
// IsNext is derived from the current moment and never stored.
type PrayerTime struct {
	Name   string `json:"name"`
	Time   string `json:"time"`
	IsNext bool   `json:"isNext,omitempty"`
}
