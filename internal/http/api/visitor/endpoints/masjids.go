package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

type MasjidController struct {
	deps *Deps
}

// MasjidModule mounts the directory and detail endpoints.
func MasjidModule(deps *Deps) api.Module {
	ctl := &MasjidController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/masjids", ctl.listMasjids)
		c.GET("/masjids/:id", ctl.getMasjid)
	})
}

func (m *MasjidController) listMasjids(ctx *gin.Context) (any, *api.Error) {
	var q packets.MasjidQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return nil, api.NewError(http.StatusBadRequest, api.ValidationMessage(err))
	}

	ids, err := m.deps.subscriptions(ctx).List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[masjids] list: could not read subscriptions")
		return nil, internalError("could not list masjids")
	}

	list := directory.FilterMasjids(m.deps.catalog(), q.Query)
	list = directory.MarkSubscribed(list, ids)
	if q.Lat != nil && q.Lng != nil {
		list = directory.WithDistances(list, model.Coordinates{Lat: *q.Lat, Lng: *q.Lng})
	}
	list = directory.MarkNext(list, m.deps.now())

	return toMasjidResponses(list), nil
}

func (m *MasjidController) getMasjid(ctx *gin.Context) (any, *api.Error) {
	masjid, apiErr := m.deps.masjid(ctx.Param("id"))
	if apiErr != nil {
		return nil, apiErr
	}

	subscribed, err := m.deps.subscriptions(ctx).IsSubscribed(ctx, masjid.ID)
	if err != nil {
		log.Error().Err(err).Str("masjid_id", masjid.ID).Msg("[masjids] get: could not read subscriptions")
		return nil, internalError("could not load masjid")
	}
	masjid.IsSubscribed = subscribed

	list := directory.MarkNext([]model.Masjid{masjid}, m.deps.now())
	return toMasjidResponse(list[0]), nil
}
