package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	healthHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/health"
	prometheusHandler "github.com/BangJepp56/ini-dashboard-admin/internal/handler/prometheus"
	"github.com/BangJepp56/ini-dashboard-admin/internal/middleware"
)

// StreamPath is the websocket route. It runs without a request deadline.
const StreamPath = "/api/v1/notifications/stream"

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PublicHandler mounts routes that skip authentication.
type PublicHandler interface {
	RegisterPublicRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	Logger    *zerolog.Logger
	CORS      middleware.CORSConfig
	Security  middleware.SecurityConfig
	Timeout   middleware.TimeoutConfig
	SizeLimit middleware.SizeLimitConfig
	// RateLimit is nil when rate limiting is disabled.
	RateLimit *middleware.RateLimiterConfig
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	health   *healthHandler.Handler
	metrics  *prometheusHandler.Handler
	public   []PublicHandler
	handlers []Handler
}

func NewRouter(
	config RouterConfig,
	auth *middleware.AuthMiddleware,
	health *healthHandler.Handler,
	metrics *prometheusHandler.Handler,
	public []PublicHandler,
	handlers ...Handler,
) *Router {
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     auth.AllowQueryToken(StreamPath),
		health:   health,
		metrics:  metrics,
		public:   public,
		handlers: handlers,
	}

	if config.Logger == nil {
		nop := zerolog.Nop()
		config.Logger = &nop
	}
	timeout := config.Timeout
	timeout.SkipPaths = append(timeout.SkipPaths, StreamPath)

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(config.Logger),
		metrics.Middleware(),
		middleware.CORS(config.CORS),
		middleware.SecurityHeaders(config.Security),
		middleware.SizeLimit(config.SizeLimit),
		middleware.Timeout(timeout),
	)

	if config.RateLimit != nil {
		limiter := middleware.NewRateLimiter(*config.RateLimit)
		engine.Use(limiter.RateLimit())
	}
	engine.Use(middleware.ErrorHandler())

	return r
}

func (r *Router) Setup() {
	r.health.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")
	api.Use(middleware.NoStore())

	for _, h := range r.public {
		h.RegisterPublicRoutes(api)
	}

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	for _, h := range r.handlers {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
