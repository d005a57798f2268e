// Package qibla computes the direction of the Kaaba and the compass readings
// derived from it and the device heading.
package qibla

import (
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/geo"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

var Kaaba = model.Coordinates{Lat: 21.4225, Lng: 39.8262}

// DefaultBearing is shown when the user's position is unknown.
const DefaultBearing = 90.0

const (
	MsgLocationDenied         = "Location access denied. Using default direction."
	MsgLocationUnsupported    = "Geolocation not supported. Using default direction."
	MsgOrientationDenied      = "Device orientation permission denied"
	MsgOrientationUnsupported = "Device orientation not supported"
)

type LocationStatus string

const (
	LocationAvailable   LocationStatus = "available"
	LocationDenied      LocationStatus = "denied"
	LocationUnsupported LocationStatus = "unsupported"
)

type OrientationStatus string

const (
	OrientationGranted     OrientationStatus = "granted"
	OrientationDenied      OrientationStatus = "denied"
	OrientationUnsupported OrientationStatus = "unsupported"
	// OrientationNotRequired covers platforms that deliver headings without a prompt.
	OrientationNotRequired OrientationStatus = "not-required"
)

// Direction is the initial great-circle bearing from `from` to the Kaaba.
func Direction(from model.Coordinates) float64 {
	return geo.InitialBearing(from.Lat, from.Lng, Kaaba.Lat, Kaaba.Lng)
}

type Input struct {
	Location       *model.Coordinates
	LocationStatus LocationStatus
	Heading        *float64
	Orientation    OrientationStatus
}

type Reading struct {
	Bearing       float64  `json:"qiblaDirection"`
	UsingFallback bool     `json:"usingFallback"`
	DeviceHeading *float64 `json:"deviceHeading"`
	DialRotation  float64  `json:"dialRotation"`
	ArrowRotation float64  `json:"arrowRotation"`
	Warnings      []string `json:"warnings"`
}

// Resolve turns whatever the device could report into a compass reading.
// Missing permissions degrade the reading and add a warning; they are never errors.
func Resolve(in Input) Reading {
	r := Reading{Warnings: []string{}}

	switch {
	case in.LocationStatus == LocationDenied:
		r.Bearing = DefaultBearing
		r.UsingFallback = true
		r.Warnings = append(r.Warnings, MsgLocationDenied)
	case in.Location == nil || in.LocationStatus == LocationUnsupported:
		r.Bearing = DefaultBearing
		r.UsingFallback = true
		r.Warnings = append(r.Warnings, MsgLocationUnsupported)
	default:
		r.Bearing = Direction(*in.Location)
	}

	switch in.Orientation {
	case OrientationDenied:
		r.Warnings = append(r.Warnings, MsgOrientationDenied)
		return r
	case OrientationUnsupported:
		r.Warnings = append(r.Warnings, MsgOrientationUnsupported)
		return r
	}

	if in.Heading != nil {
		h := *in.Heading
		r.DeviceHeading = &h
		r.DialRotation = h
		r.ArrowRotation = r.Bearing - h
	}
	return r
}
