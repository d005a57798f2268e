package main

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api"
	imamapi "github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/imam/endpoints"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/stream"
	visitorapi "github.com/Nixie-Tech-LLC/masjidfinder/internal/http/api/visitor/endpoints"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/masjidfinder/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, app *App) {
	if err := r.SetTrustedProxies(app.Config.TrustedProxies); err != nil {
		log.Warn().Err(err).Msg("invalid TRUSTED_PROXIES, trusting none")
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			middleware.ClientIDHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			"Retry-After",
		},
		AllowCredentials: false,
	}))
	r.Use(middleware.ClientID(), middleware.RequestLogger(app.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(app.MetricsHandler))

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api",
		Middleware: []gin.HandlerFunc{app.Limiter.Middleware()},
	},
		visitorapi.NavModule(),
		visitorapi.MasjidModule(app.Visitor),
		visitorapi.SubscriptionModule(app.Visitor),
		visitorapi.TrackerModule(app.Visitor),
		visitorapi.QiblaModule(),
		visitorapi.CountdownModule(app.Visitor),
		visitorapi.RamadanModule(app.Visitor),
		visitorapi.LocationModule(app.Visitor),
		visitorapi.HistoryModule(app.Visitor),
		visitorapi.VerseModule(app.Visitor),
		stream.Module(app.Hub),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/imam",
		Middleware: []gin.HandlerFunc{app.Limiter.Middleware()},
	},
		imamapi.AdminModule(app.Admin),
	)

	if !app.Config.UseSpaces {
		r.Static(storage.PublicPrefix, app.Config.ExportDir)
	}
}
