package endpoints

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/countdown"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
)

type CountdownController struct {
	deps *Deps
}

func CountdownModule(deps *Deps) api.Module {
	ctl := &CountdownController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/countdown", ctl.getCountdown)
	})
}

// Schedule returns the default daily schedule, or masjidID's timetable when given.
func (d *Deps) Schedule(masjidID string) (countdown.Schedule, *api.Error) {
	if masjidID == "" {
		return countdown.DefaultSchedule(), nil
	}
	m, apiErr := d.masjid(masjidID)
	if apiErr != nil {
		return nil, apiErr
	}
	schedule, err := countdown.FromTimings(m.Timings)
	if err != nil || len(schedule) == 0 {
		log.Warn().Err(err).Str("masjid_id", masjidID).Msg("[countdown] bad timetable, using default schedule")
		return countdown.DefaultSchedule(), nil
	}
	return schedule, nil
}

func (c *CountdownController) getCountdown(ctx *gin.Context) (any, *api.Error) {
	masjidID := ctx.Query("masjidId")
	schedule, apiErr := c.deps.Schedule(masjidID)
	if apiErr != nil {
		return nil, apiErr
	}

	now := c.deps.now()
	snap := countdown.New(schedule, now).Tick(now)
	return packets.CountdownResponse{Snapshot: snap, MasjidID: masjidID}, nil
}
