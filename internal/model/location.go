package model

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type SavedLocation struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	IsCurrent bool    `json:"isCurrent"`
}

func (l SavedLocation) Coordinates() Coordinates {
	return Coordinates{Lat: l.Lat, Lng: l.Lng}
}
