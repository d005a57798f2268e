package endpoints

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/directory"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
)

type SubscriptionController struct {
	deps *Deps
}

func SubscriptionModule(deps *Deps) api.Module {
	ctl := &SubscriptionController{deps: deps}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/subscriptions", ctl.listSubscribed)
		c.PUT("/subscriptions/:id", ctl.subscribe)
		c.DELETE("/subscriptions/:id", ctl.unsubscribe)
		c.POST("/subscriptions/:id/toggle", ctl.toggle)
	})
}

// listSubscribed returns the subscribed masjids, in subscription order.
func (s *SubscriptionController) listSubscribed(ctx *gin.Context) (any, *api.Error) {
	ids, err := s.deps.subscriptions(ctx).List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[subscriptions] list: could not read subscriptions")
		return nil, internalError("could not list subscriptions")
	}

	list := directory.Pick(s.deps.catalog(), ids)
	list = directory.MarkSubscribed(list, ids)
	list = directory.MarkNext(list, s.deps.now())
	return toMasjidResponses(list), nil
}

func (s *SubscriptionController) subscribe(ctx *gin.Context) (any, *api.Error) {
	return s.change(ctx, true)
}

func (s *SubscriptionController) unsubscribe(ctx *gin.Context) (any, *api.Error) {
	return s.change(ctx, false)
}

func (s *SubscriptionController) change(ctx *gin.Context, subscribed bool) (any, *api.Error) {
	id := ctx.Param("id")
	if !s.deps.Directory.Exists(id) {
		return nil, api.NewError(http.StatusNotFound, "masjid not found")
	}

	mgr := s.deps.subscriptions(ctx)
	var err error
	if subscribed {
		err = mgr.Subscribe(ctx, id)
	} else {
		err = mgr.Unsubscribe(ctx, id)
	}
	if err != nil {
		log.Error().Err(err).Str("masjid_id", id).Bool("subscribed", subscribed).Msg("[subscriptions] could not save subscription")
		return nil, internalError("could not update subscription")
	}
	return packets.SubscriptionResponse{MasjidID: id, IsSubscribed: subscribed}, nil
}

func (s *SubscriptionController) toggle(ctx *gin.Context) (any, *api.Error) {
	id := ctx.Param("id")
	if !s.deps.Directory.Exists(id) {
		return nil, api.NewError(http.StatusNotFound, "masjid not found")
	}

	subscribed, err := s.deps.subscriptions(ctx).Toggle(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("masjid_id", id).Msg("[subscriptions] toggle: could not save subscription")
		return nil, internalError("could not update subscription")
	}
	return packets.SubscriptionResponse{MasjidID: id, IsSubscribed: subscribed}, nil
}
