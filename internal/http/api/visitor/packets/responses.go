package packets

import (
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/history"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/ramadan"
)

type MasjidResponse struct {
	model.Masjid
	DirectionsURL string            `json:"directionsUrl"`
	NextPrayer    *model.PrayerTime `json:"nextPrayer,omitempty"`
}

type SubscriptionResponse struct {
	MasjidID     string `json:"masjidId"`
	IsSubscribed bool   `json:"isSubscribed"`
}

type TrackerDayResponse struct {
	model.PrayerRecord
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

type CountdownResponse struct {
	countdown.Snapshot
	MasjidID string `json:"masjidId,omitempty"`
}

type RamadanResponse struct {
	ramadan.Status
	Days []model.RamadanDay `json:"days"`
}

type LocationsResponse struct {
	Locations []model.SavedLocation `json:"locations"`
	Current   *model.SavedLocation  `json:"current,omitempty"`
}

type MapResponse struct {
	Center  model.Coordinates   `json:"center"`
	Current model.SavedLocation `json:"current"`
	Masjids []MasjidResponse    `json:"masjids"`
}

type HistoryResponse struct {
	Selected   model.PrayerTimeRecord   `json:"selected"`
	Recent     []model.PrayerTimeRecord `json:"recent"`
	Chart      []model.PrayerTimeRecord `json:"chart"`
	Variations []history.Variation      `json:"variations"`
}

type ExportResponse struct {
	Location string `json:"location"`
	Records  int    `json:"records"`
}

type NavItem struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

type NavResponse struct {
	Visitor []NavItem `json:"visitor"`
	Imam    []NavItem `json:"imam"`
}
