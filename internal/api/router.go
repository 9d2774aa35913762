package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"bar-status-backend/config"
	"bar-status-backend/internal/metrics"
	"bar-status-backend/internal/mw"
	"bar-status-backend/internal/status"
	"bar-status-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, webpushOptions *webpush.Options, loc *time.Location) *gin.Engine {
	r := gin.Default()

	defaults := status.DailySchedule{
		OpenTime:  cfg.Defaults.OpenTime,
		CloseTime: cfg.Defaults.CloseTime,
	}
	handler := NewHandler(s, webpushOptions, loc, defaults)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	metrics.Register()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/bars", caching, handler.GetBars)
		api.GET("/bars/:bar_id", caching, handler.GetBar)
		api.POST("/bars", handler.CreateBar)

		api.PUT("/bars/:bar_id/schedule", handler.PutSchedule)
		api.PUT("/bars/:bar_id/override", handler.PutOverride)
		api.DELETE("/bars/:bar_id/override", handler.DeleteOverride)
		api.POST("/bars/:bar_id/transition", handler.PostTransition)
		api.DELETE("/bars/:bar_id/transition", handler.DeleteTransition)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
