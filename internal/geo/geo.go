package geo

import (
	"fmt"
	"math"
	"strconv"
)

const earthRadiusKm = 6371.0

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// HaversineKm is the great-circle distance between two points in kilometres.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// InitialBearing is the great-circle bearing from point 1 toward point 2,
// in degrees clockwise from true north within [0, 360).
func InitialBearing(lat1, lng1, lat2, lng2 float64) float64 {
	φ1, φ2 := toRad(lat1), toRad(lat2)
	Δλ := toRad(lng2 - lng1)

	y := math.Sin(Δλ) * math.Cos(φ2)
	x := math.Cos(φ1)*math.Sin(φ2) - math.Sin(φ1)*math.Cos(φ2)*math.Cos(Δλ)

	return NormalizeDegrees(toDeg(math.Atan2(y, x)))
}

// NormalizeDegrees maps any angle into [0, 360). NaN and infinities map to 0.
func NormalizeDegrees(deg float64) float64 {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return 0
	}
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d >= 360 {
		d = 0
	}
	return d
}

// DistanceLabel renders a distance the way masjid cards show it: "1.2 km away".
func DistanceLabel(km float64) string {
	return fmt.Sprintf("%.1f km away", km)
}

// DirectionsURL links to turn-by-turn directions toward a point.
func DirectionsURL(lat, lng float64) string {
	return "https://www.google.com/maps/dir/?api=1&destination=" +
		strconv.FormatFloat(lat, 'f', -1, 64) + "," + strconv.FormatFloat(lng, 'f', -1, 64)
}
