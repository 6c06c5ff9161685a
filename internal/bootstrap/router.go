package bootstrap

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/feelio/feelio-backend/internal/api/http"
	"github.com/feelio/feelio-backend/internal/api/http/middleware"
	"github.com/feelio/feelio-backend/internal/api/http/routes"
	authmw "github.com/feelio/feelio-backend/internal/auth/middleware"
	authsvc "github.com/feelio/feelio-backend/internal/auth/service"
	"github.com/feelio/feelio-backend/internal/metrics"
	moodsvc "github.com/feelio/feelio-backend/internal/moods/service"
	profilesvc "github.com/feelio/feelio-backend/internal/profiles/service"
	"github.com/feelio/feelio-backend/internal/realtime"
)

type RouterDeps struct {
	ServiceName   string
	Version       string
	Store         string
	CORSOrigins   []string
	AuthRateLimit float64
	AuthRateBurst int

	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Checks   map[string]httpapi.Check
	Verifier authmw.TokenVerifier
	Broker   realtime.Broker

	// StreamsDone is closed when open event streams must end.
	StreamsDone <-chan struct{}

	Auth     *authsvc.AuthService
	Profiles *profilesvc.ProfileService
	Moods    *moodsvc.MoodService
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(dep.Logger))
	r.Use(middleware.Metrics(dep.Metrics))
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store, dep.Checks)
	healthHandler.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))

	routes.RegisterV1(r, routes.V1Deps{
		Verifier:    dep.Verifier,
		AuthLimiter: middleware.NewIPRateLimiter(dep.AuthRateLimit, dep.AuthRateBurst),
		Broker:      dep.Broker,
		Metrics:     dep.Metrics,
		StreamsDone: dep.StreamsDone,
		Auth:        dep.Auth,
		Profiles:    dep.Profiles,
		Moods:       dep.Moods,
	})

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id", "X-Timezone"},
		ExposeHeaders: []string{"X-Request-Id"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
