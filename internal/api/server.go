// internal/api/server.go
package api

import (
	"net/http"
	"time"

	"personality-workers/internal/common/config"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/observability"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"
	"personality-workers/internal/personality/chat"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const ServiceName = "Personality Analyzer API"

// Options wires the server. Chat may be nil, which disables /api/chat.
type Options struct {
	Analyzer      *analyzer.Analyzer
	Validator     *validation.Validator
	Chat          *chat.Service
	Observability *observability.Observability
	Config        config.HTTPConfig
	Logger        logger.Logger
}

type Server struct {
	analyzer  *analyzer.Analyzer
	validator *validation.Validator
	chat      *chat.Service
	obs       *observability.Observability
	config    config.HTTPConfig
	logger    logger.Logger
}

func NewServer(opts Options) *Server {
	return &Server{
		analyzer:  opts.Analyzer,
		validator: opts.Validator,
		chat:      opts.Chat,
		obs:       opts.Observability,
		config:    opts.Config,
		logger:    opts.Logger,
	}
}

// Router builds the gin engine with middleware and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(s.logger))
	r.Use(cors.New(corsConfig(s.config.CORSOrigins)))
	r.Use(NewRateLimiter(s.config.RateLimit, s.config.Burst).Middleware())
	if s.config.RequestTimeout > 0 {
		r.Use(Timeout(config.GetDuration(s.config.RequestTimeout)))
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "Endpoint not found")
	})

	r.GET("/", s.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v := r.Group("/api")
	{
		v.POST("/analyze", s.Analyze)
		v.POST("/quest", s.Quest)
		v.POST("/generate_avatar", s.GenerateAvatar)
		v.POST("/match_character", s.MatchCharacter)
		v.POST("/map_traits", s.MapTraits)
		v.GET("/characters", s.Characters)
		v.GET("/characters/:name", s.Character)
		v.GET("/model_info", s.ModelInfo)
		if s.chat != nil {
			v.POST("/chat", s.Chat)
		}
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
