package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
)

var navigation = packets.NavResponse{
	Visitor: []packets.NavItem{
		{ID: "masjids", Label: "Masjids", Path: "/"},
		{ID: "tracker", Label: "Tracker", Path: "/tracker"},
		{ID: "qibla", Label: "Qibla", Path: "/qibla"},
		{ID: "map", Label: "Map", Path: "/map"},
		{ID: "subscribed", Label: "Subscribed", Path: "/subscribed"},
		{ID: "ramadan", Label: "Ramadan", Path: "/ramadan"},
		{ID: "history", Label: "History", Path: "/history"},
	},
	Imam: []packets.NavItem{
		{ID: "dashboard", Label: "Dashboard", Path: "/imam/dashboard"},
		{ID: "announcements", Label: "Announcements", Path: "/imam/announcements"},
		{ID: "prayer-times", Label: "Prayer Times", Path: "/imam/prayer-times"},
		{ID: "profile", Label: "Profile", Path: "/imam/profile"},
		{ID: "onboard", Label: "Register Masjid", Path: "/imam/onboard"},
	},
}

func NavModule() api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/nav", func(ctx *gin.Context) (any, *api.Error) {
			return navigation, nil
		})
	})
}
