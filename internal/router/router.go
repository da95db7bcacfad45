package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/frontdesk-api/internal/config"
	"github.com/jwalitptl/frontdesk-api/internal/handler"
	"github.com/jwalitptl/frontdesk-api/internal/handler/prometheus"
	"github.com/jwalitptl/frontdesk-api/internal/middleware"
	"github.com/jwalitptl/frontdesk-api/pkg/auth"
)

type RouterConfig struct {
	Mode      string
	Server    config.ServerConfig
	RateLimit config.RateLimitConfig
	CORS      config.CORSConfig
	HSTS      bool
}

// RouterConfigFrom derives the router settings from the service config.
func RouterConfigFrom(cfg *config.Config) RouterConfig {
	mode := gin.DebugMode
	if cfg.IsProduction() {
		mode = gin.ReleaseMode
	}
	return RouterConfig{
		Mode:      mode,
		Server:    cfg.Server,
		RateLimit: cfg.RateLimit,
		CORS:      cfg.CORS,
		HSTS:      cfg.IsProduction(),
	}
}

type Router struct {
	engine    *gin.Engine
	jwt       auth.JWTService
	metrics   *prometheus.Handler
	health    handler.Registrar
	protected []handler.Registrar
}

func NewRouter(jwtSvc auth.JWTService, health handler.Registrar, protected []handler.Registrar, config RouterConfig) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	engine := gin.New()

	r := &Router{
		engine:    engine,
		jwt:       jwtSvc,
		metrics:   prometheus.New(),
		health:    health,
		protected: protected,
	}

	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		r.metrics.Middleware(),
		middleware.SecurityHeaders(middleware.SecurityConfig{HSTS: config.HSTS, HSTSMaxAge: 31536000}),
		middleware.Compress(middleware.DefaultCompressConfig()),
		middleware.SizeLimit(config.Server.MaxBodyBytes),
		middleware.Timeout(config.Server.RequestTimeout),
	)

	engine.Use(cors.New(corsConfig(config.CORS)))

	if config.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  rate.Limit(config.RateLimit.RequestsPerSecond),
			Burst: config.RateLimit.Burst,
		})
		engine.Use(limiter.RateLimit())
	}

	return r
}

func corsConfig(c config.CORSConfig) cors.Config {
	cfg := cors.Config{
		AllowMethods:  c.AllowedMethods,
		AllowHeaders:  c.AllowedHeaders,
		ExposeHeaders: []string{middleware.HeaderXRequestID},
		MaxAge:        c.MaxAge,
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(c.AllowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = c.AllowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

func (r *Router) Setup() {
	r.engine.GET("/metrics", r.metrics.Handler())

	api := r.engine.Group("/api/v1")
	api.Use(middleware.Version(middleware.DefaultVersionConfig()))

	if r.health != nil {
		r.health.RegisterRoutes(api)
	}

	protected := api.Group("")
	protected.Use(middleware.Session(r.jwt))
	for _, h := range r.protected {
		h.RegisterRoutes(protected)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
