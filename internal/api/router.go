package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fulizaboost/boost-service/internal/cache"
	"github.com/fulizaboost/boost-service/internal/config"
	"github.com/fulizaboost/boost-service/internal/events"
	"github.com/fulizaboost/boost-service/internal/handlers"
	"github.com/fulizaboost/boost-service/internal/interfaces"
	"github.com/fulizaboost/boost-service/internal/payhero"
	"github.com/fulizaboost/boost-service/internal/telemetry"
)

func NewRouter(repo interfaces.BoostRepository, gateway *payhero.Client,
	reports *cache.ReportCache, publisher *events.Publisher, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(telemetry.TracingMiddleware())

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "boost-service"})
	})

	// Boost routes
	boostHandler := handlers.NewBoostHandler(repo, gateway, reports, publisher, cfg)
	boosts := r.Group("/api/boosts")
	{
		boosts.POST("", boostHandler.CreateBoost)
		boosts.GET("", boostHandler.GetAllBoosts)
		boosts.GET("/by-id/:identificationNumber", boostHandler.GetBoostsByIdentificationNumber)

		boosts.POST("/pay", boostHandler.PayBoostFee)
		boosts.POST("/pay/callback", boostHandler.HandleCallback)

		boosts.GET("/paid", boostHandler.GetPaidBoosts)
		boosts.GET("/paid/total", boostHandler.GetTotalFees)
		boosts.GET("/paid/count", boostHandler.GetPaidCount)
		boosts.GET("/paid/filter", boostHandler.FilterPaidBoosts)

		boosts.GET("/:id", boostHandler.GetBoostByID)
		boosts.DELETE("/:id", boostHandler.DeleteBoost)
	}

	return r
}
