package model

// PrayerTimeRecord is one day of historical masjid prayer times.
type PrayerTimeRecord struct {
	Date    string `json:"date"`
	Fajr    string `json:"fajr"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// Time returns the recorded time for a canonical prayer name.
func (r PrayerTimeRecord) Time(prayer string) string {
	switch prayer {
	case Fajr:
		return r.Fajr
	case Dhuhr:
		return r.Dhuhr
	case Asr:
		return r.Asr
	case Maghrib:
		return r.Maghrib
	case Isha:
		return r.Isha
	}
	return ""
}
