package endpoints

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/verse"
)

func VerseModule(deps *Deps) api.Module {
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/verse", func(ctx *gin.Context) (any, *api.Error) {
			return verse.ForDay(deps.now()), nil
		})
	})
}
