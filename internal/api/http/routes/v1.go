package routes

import (
	"github.com/gin-gonic/gin"

	httpapi "github.com/feelio/feelio-backend/internal/api/http"
	"github.com/feelio/feelio-backend/internal/api/http/middleware"
	authhttp "github.com/feelio/feelio-backend/internal/auth/http"
	authmw "github.com/feelio/feelio-backend/internal/auth/middleware"
	authsvc "github.com/feelio/feelio-backend/internal/auth/service"
	"github.com/feelio/feelio-backend/internal/metrics"
	moodshttp "github.com/feelio/feelio-backend/internal/moods/http"
	moodsvc "github.com/feelio/feelio-backend/internal/moods/service"
	profileshttp "github.com/feelio/feelio-backend/internal/profiles/http"
	profilesvc "github.com/feelio/feelio-backend/internal/profiles/service"
	"github.com/feelio/feelio-backend/internal/realtime"
)

type V1Deps struct {
	Verifier    authmw.TokenVerifier
	AuthLimiter *middleware.IPRateLimiter
	Broker      realtime.Broker
	Metrics     *metrics.Metrics
	StreamsDone <-chan struct{}

	Auth     *authsvc.AuthService
	Profiles *profilesvc.ProfileService
	Moods    *moodsvc.MoodService
}

func RegisterV1(r *gin.Engine, dep V1Deps) {
	api := r.Group("/v1")

	httpapi.NewAppHandler().Register(api)

	authHandler := authhttp.New(dep.Auth)
	public := api.Group("/auth")
	if dep.AuthLimiter != nil {
		public.Use(dep.AuthLimiter.Handler())
	}
	authHandler.RegisterPublic(public)

	private := api.Group("")
	private.Use(authmw.FirebaseAuthMiddleware(dep.Verifier))

	authHandler.RegisterPrivate(private.Group("/auth"))
	profileshttp.New(dep.Profiles).Register(private)
	moodshttp.New(dep.Moods).Register(private)
	httpapi.NewEventsHandler(dep.Broker, dep.Metrics, dep.StreamsDone).Register(private)
}
