package packets

type AddLocationRequest struct {
	Name    string `json:"name" binding:"required,max=120"`
	Address string `json:"address" binding:"max=240"`
}

// QiblaQuery mirrors what the device could report. Lat and Lng are absent when
// location is unavailable.
type QiblaQuery struct {
	Lat         *float64 `form:"lat" binding:"omitempty,latitude"`
	Lng         *float64 `form:"lng" binding:"omitempty,longitude"`
	Location    string   `form:"location" binding:"omitempty,oneof=available denied unsupported"`
	Heading     *float64 `form:"heading"`
	Orientation string   `form:"orientation" binding:"omitempty,oneof=granted denied unsupported not-required"`
}

type MasjidQuery struct {
	Query string   `form:"q"`
	Lat   *float64 `form:"lat" binding:"omitempty,latitude"`
	Lng   *float64 `form:"lng" binding:"omitempty,longitude"`
}
