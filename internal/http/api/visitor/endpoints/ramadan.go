package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/model"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/ramadan"
)

func RamadanModule(deps *Deps) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/ramadan", func(ctx *gin.Context) (any, *api.Error) {
			now := deps.now()
			resp := packets.RamadanResponse{Status: ramadan.StatusAt(now), Days: []model.RamadanDay{}}
			if resp.IsRamadan {
				resp.Days = ramadan.Days(now)
			}
			return resp, nil
		})
	})
}
