package model

// PrayerRecord is one calendar day of the personal prayer checklist.
// Date is formatted YYYY-MM-DD.
type PrayerRecord struct {
	Date    string          `json:"date"`
	Prayers map[string]bool `json:"prayers"`
}

// NewPrayerRecord returns an all-false record for date.
func NewPrayerRecord(date string) PrayerRecord {
	prayers := make(map[string]bool, len(PrayerNames))
	for _, name := range PrayerNames {
		prayers[name] = false
	}
	return PrayerRecord{Date: date, Prayers: prayers}
}

// Completed counts the prayers marked done.
func (r PrayerRecord) Completed() int {
	n := 0
	for _, name := range PrayerNames {
		if r.Prayers[name] {
			n++
		}
	}
	return n
}

type PrayerStats struct {
	Today  int `json:"today"`
	Week   int `json:"week"`
	Month  int `json:"month"`
	Streak int `json:"streak"`
}
