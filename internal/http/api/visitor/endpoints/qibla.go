package endpoints

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/qibla"
)

func QiblaModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/qibla", getQibla)
	})
}

// getQibla never fails on missing permissions; the reading carries warnings instead.
func getQibla(ctx *gin.Context) (any, *api.Error) {
	var q packets.QiblaQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		return nil, api.NewError(http.StatusBadRequest, api.ValidationMessage(err))
	}
	if q.Heading != nil && (math.IsNaN(*q.Heading) || math.IsInf(*q.Heading, 0)) {
		return nil, api.NewError(http.StatusBadRequest, "heading must be a finite number")
	}

	in := qibla.Input{
		LocationStatus: qibla.LocationStatus(q.Location),
		Heading:        q.Heading,
		Orientation:    qibla.OrientationStatus(q.Orientation),
	}
	if q.Lat != nil && q.Lng != nil {
		in.Location = &model.Coordinates{Lat: *q.Lat, Lng: *q.Lng}
		if in.LocationStatus == "" {
			in.LocationStatus = qibla.LocationAvailable
		}
	}
	if in.Orientation == "" {
		in.Orientation = qibla.OrientationNotRequired
	}
	return qibla.Resolve(in), nil
}
