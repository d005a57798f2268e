package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/history"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

type HistoryController struct {
	deps *Deps
}

func HistoryModule(deps *Deps) api.Module {
	ctl := &HistoryController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/history", ctl.getHistory)
		c.POST("/history/export", ctl.exportHistory)
	})
}

// getHistory shows the selected day (?date=, default today) against the
// thirty-day window.
func (h *HistoryController) getHistory(ctx *gin.Context) (any, *api.Error) {
	records := history.Generate(h.deps.now(), history.DefaultDays)

	selected := records[len(records)-1]
	if date := ctx.Query("date"); date != "" {
		var err error
		if selected, err = history.Select(records, date); err != nil {
			if errors.Is(err, history.ErrNoRecord) {
				return nil, api.NewError(http.StatusNotFound, err.Error())
			}
			return nil, internalError("could not load history")
		}
	}

	variations := make([]history.Variation, 0, len(model.PrayerNames))
	for _, prayer := range model.PrayerNames {
		variations = append(variations, history.VariationOf(records, selected, prayer))
	}

	return packets.HistoryResponse{
		Selected:   selected,
		Recent:     history.Recent(records, history.RecentCount),
		Chart:      history.Tail(records, history.ChartCount),
		Variations: variations,
	}, nil
}

func (h *HistoryController) exportHistory(ctx *gin.Context) (any, *api.Error) {
	if h.deps.Exporter == nil {
		return nil, api.NewError(http.StatusServiceUnavailable, "export storage is not configured")
	}

	records := history.Generate(h.deps.now(), history.DefaultDays)
	location, err := h.deps.Exporter.Export(ctx, records)
	if err != nil {
		log.Error().Err(err).Msg("[history] export: could not save export")
		return nil, internalError("could not export history")
	}
	return api.Created(packets.ExportResponse{Location: location, Records: len(records)}), nil
}
