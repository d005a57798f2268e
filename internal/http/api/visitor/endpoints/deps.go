// Package endpoints serves the visitor screens: directory, subscriptions,
// tracker, countdown, qibla, ramadan, saved locations, history and verse.
package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/events"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/geo"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/history"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/imam"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/kv"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/locations"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/metrics"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/subscription"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/tracker"
)

// Deps is shared by every visitor module.
type Deps struct {
	Repo      kv.Repository
	Bus       *events.Bus
	Directory *directory.Directory
	Admin     *imam.Admin
	Exporter  *history.Exporter
	Metrics   metrics.Recorder
	Clock     func() time.Time
}

func (d *Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

func (d *Deps) recorder() metrics.Recorder {
	if d.Metrics == nil {
		return metrics.Nop{}
	}
	return d.Metrics
}

// clientRepo is the calling device's namespace in the repository.
func (d *Deps) clientRepo(ctx *gin.Context) (kv.Repository, string) {
	clientID := middleware.GetClientID(ctx)
	return kv.Scope(d.Repo, clientID), clientID
}

func (d *Deps) subscriptions(ctx *gin.Context) *subscription.Manager {
	repo, clientID := d.clientRepo(ctx)
	return subscription.NewManager(repo, d.Bus, clientID, d.recorder())
}

func (d *Deps) tracker(ctx *gin.Context) *tracker.Tracker {
	repo, _ := d.clientRepo(ctx)
	return tracker.New(repo, d.recorder())
}

func (d *Deps) locations(ctx *gin.Context) *locations.Manager {
	repo, clientID := d.clientRepo(ctx)
	return locations.NewManager(repo, d.Bus, clientID)
}

// catalog is the directory as currently edited by imams.
func (d *Deps) catalog() []model.Masjid {
	list := d.Directory.All()
	if d.Admin != nil {
		list = d.Admin.Overlay(list)
	}
	return list
}

func (d *Deps) masjid(id string) (model.Masjid, *api.Error) {
	m, err := d.Directory.Get(id)
	if err != nil {
		return model.Masjid{}, api.NewError(http.StatusNotFound, "masjid not found")
	}
	if d.Admin != nil {
		m = d.Admin.Overlay([]model.Masjid{m})[0]
	}
	return m, nil
}

func toMasjidResponse(m model.Masjid) packets.MasjidResponse {
	resp := packets.MasjidResponse{
		Masjid:        m,
		DirectionsURL: geo.DirectionsURL(m.Lat, m.Lng),
	}
	if next, ok := m.NextPrayer(); ok {
		resp.NextPrayer = &next
	}
	return resp
}

func toMasjidResponses(list []model.Masjid) []packets.MasjidResponse {
	out := make([]packets.MasjidResponse, len(list))
	for i, m := range list {
		out[i] = toMasjidResponse(m)
	}
	return out
}

func internalError(msg string) *api.Error {
	return api.NewError(http.StatusInternalServerError, msg)
}
