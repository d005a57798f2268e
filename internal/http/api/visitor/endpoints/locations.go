package endpoints

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/locations"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
)

type LocationController struct {
	deps *Deps
}

func LocationModule(deps *Deps) api.Module {
	ctl := &LocationController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/locations", ctl.listLocations)
		c.POST("/locations", ctl.addLocation)
		c.PUT("/locations/:id/current", ctl.selectLocation)
		c.DELETE("/locations/:id", ctl.deleteLocation)

		c.GET("/map", ctl.getMap)
	})
}

func locationsResponse(list []model.SavedLocation) packets.LocationsResponse {
	resp := packets.LocationsResponse{Locations: list}
	for i := range list {
		if list[i].IsCurrent {
			cur := list[i]
			resp.Current = &cur
			break
		}
	}
	return resp
}

func locationError(op string, err error) *api.Error {
	switch {
	case errors.Is(err, locations.ErrNotFound):
		return api.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, locations.ErrNameRequired):
		return api.NewError(http.StatusBadRequest, err.Error())
	}
	log.Error().Err(err).Msgf("[locations] %s: could not save locations", op)
	return internalError("could not update locations")
}

func (l *LocationController) listLocations(ctx *gin.Context) (any, *api.Error) {
	list, err := l.deps.locations(ctx).List(ctx)
	if err != nil {
		return nil, locationError("list", err)
	}
	return locationsResponse(list), nil
}

func (l *LocationController) addLocation(ctx *gin.Context) (any, *api.Error) {
	var req packets.AddLocationRequest
	if apiErr := api.BindJSON(ctx, &req); apiErr != nil {
		return nil, apiErr
	}

	loc, err := l.deps.locations(ctx).Add(ctx, req.Name, req.Address)
	if err != nil {
		return nil, locationError("add", err)
	}
	return api.Created(loc), nil
}

func (l *LocationController) selectLocation(ctx *gin.Context) (any, *api.Error) {
	list, err := l.deps.locations(ctx).Select(ctx, ctx.Param("id"))
	if err != nil {
		return nil, locationError("select", err)
	}
	return locationsResponse(list), nil
}

func (l *LocationController) deleteLocation(ctx *gin.Context) (any, *api.Error) {
	list, err := l.deps.locations(ctx).Delete(ctx, ctx.Param("id"))
	if err != nil {
		return nil, locationError("delete", err)
	}
	return locationsResponse(list), nil
}

// getMap centres the placeholder map on the current saved location and
// measures every masjid from there.
func (l *LocationController) getMap(ctx *gin.Context) (any, *api.Error) {
	current, ok, err := l.deps.locations(ctx).Current(ctx)
	if err != nil {
		return nil, locationError("map", err)
	}
	if !ok {
		current = locations.DeviceLocation()
	}

	center := current.Coordinates()
	if center == (model.Coordinates{}) {
		center = directory.DefaultLocation
	}

	list := directory.WithDistances(l.deps.catalog(), center)
	list = directory.MarkNext(list, l.deps.now())
	return packets.MapResponse{
		Center:  center,
		Current: current,
		Masjids: toMasjidResponses(list),
	}, nil
}
