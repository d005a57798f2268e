package model

type Masjid struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Address       string         `json:"address"`
	Lat           float64        `json:"lat"`
	Lng           float64        `json:"lng"`
	Distance      string         `json:"distance"`
	Phone         string         `json:"phone,omitempty"`
	Email         string         `json:"email,omitempty"`
	Timings       []PrayerTime   `json:"timings"`
	JumaTime      *string        `json:"jumaTime,omitempty"`
	Announcements []Announcement `json:"announcements"`
	IsSubscribed  bool           `json:"isSubscribed"`
}

// NextPrayer returns the timing flagged IsNext, if any.
func (m Masjid) NextPrayer() (PrayerTime, bool) {
	for _, t := range m.Timings {
		if t.IsNext {
			return t, true
		}
	}
	return PrayerTime{}, false
}

type Announcement struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Date     string `json:"date"`
	IsUrgent bool   `json:"isUrgent"`
}
