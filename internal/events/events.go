package events

import (
	"encoding/json"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

const (
	TopicSubscriptionChanged   = "subscription.changed"
	TopicLocationsChanged      = "locations.changed"
	TopicAnnouncementPublished = "announcement.published"
)

// Event is the envelope carried on the bus and over relays.
// ClientID is empty for events addressed to everyone.
type Event struct {
	Topic    string          `json:"topic"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload"`
	Origin   string          `json:"origin,omitempty"`
}

// Decode unmarshals the payload into v.
func (e Event) Decode(v any) error {
	return json.Unmarshal(e.Payload, v)
}

type SubscriptionChanged struct {
	MasjidID     string `json:"masjidId"`
	IsSubscribed bool   `json:"isSubscribed"`
}

type LocationsChanged struct {
	LocationID string `json:"locationId"`
	Action     string `json:"action"`
}

type AnnouncementPublished struct {
	MasjidID     string             `json:"masjidId"`
	Announcement model.Announcement `json:"announcement"`
}
