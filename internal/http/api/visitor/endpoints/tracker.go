package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/tracker"
)

type TrackerController struct {
	deps *Deps
}

func TrackerModule(deps *Deps) api.Module {
	ctl := &TrackerController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/tracker/days/:date", ctl.getDay)
		c.POST("/tracker/days/:date/:prayer/toggle", ctl.togglePrayer)
		c.GET("/tracker/stats", ctl.getStats)
	})
}

func dayResponse(rec model.PrayerRecord) packets.TrackerDayResponse {
	return packets.TrackerDayResponse{
		PrayerRecord: rec,
		Completed:    rec.Completed(),
		Percentage:   tracker.CompletionPercentage(rec),
	}
}

// date resolves the :date param; "today" uses the server clock.
func (t *TrackerController) date(ctx *gin.Context) (string, *api.Error) {
	date := ctx.Param("date")
	if date == "today" {
		return t.deps.now().Format(tracker.DateLayout), nil
	}
	if _, err := tracker.ParseDate(date); err != nil {
		return "", api.NewError(http.StatusBadRequest, err.Error())
	}
	return date, nil
}

func (t *TrackerController) getDay(ctx *gin.Context) (any, *api.Error) {
	date, apiErr := t.date(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	rec, err := t.deps.tracker(ctx).Load(ctx, date)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("[tracker] get: could not load day")
		return nil, internalError("could not load prayer record")
	}
	return dayResponse(rec), nil
}

func (t *TrackerController) togglePrayer(ctx *gin.Context) (any, *api.Error) {
	date, apiErr := t.date(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	rec, err := t.deps.tracker(ctx).Toggle(ctx, date, ctx.Param("prayer"))
	switch {
	case errors.Is(err, tracker.ErrUnknownPrayer):
		return nil, api.NewError(http.StatusBadRequest, err.Error())
	case err != nil:
		log.Error().Err(err).Str("date", date).Msg("[tracker] toggle: could not save day")
		return nil, internalError("could not update prayer record")
	}
	return dayResponse(rec), nil
}

// getStats accepts an optional ?date=YYYY-MM-DD reference day.
func (t *TrackerController) getStats(ctx *gin.Context) (any, *api.Error) {
	ref := t.deps.now()
	if q := ctx.Query("date"); q != "" {
		parsed, err := tracker.ParseDate(q)
		if err != nil {
			return nil, api.NewError(http.StatusBadRequest, err.Error())
		}
		ref = parsed
	}

	stats, err := t.deps.tracker(ctx).ComputeStats(ctx, ref)
	if err != nil {
		log.Error().Err(err).Msg("[tracker] stats: could not compute stats")
		return nil, internalError("could not compute stats")
	}
	return stats, nil
}
