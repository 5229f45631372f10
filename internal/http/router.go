package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/wardrobe-backend/internal/http/handlers"
	httpMW "github.com/yungbote/wardrobe-backend/internal/http/middleware"
	"github.com/yungbote/wardrobe-backend/internal/observability"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics
	// ServiceName tags server spans; tracing middleware is skipped when empty.
	ServiceName string
	CORSOrigins []string

	AuthHandler    *httpH.AuthHandler
	AuthMiddleware *httpMW.AuthMiddleware
	UserHandler    *httpH.UserHandler
	ItemHandler    *httpH.ItemHandler
	OutfitHandler  *httpH.OutfitHandler
	SavedHandler   *httpH.SavedOutfitHandler

	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS(cfg.CORSOrigins))
	r.Use(httpMW.Metrics(cfg.Metrics))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/register", cfg.AuthHandler.Register)
			api.POST("/login", cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth(), httpMW.AnnotateIdentity())
		}

		// User (Me)
		if cfg.UserHandler != nil {
			protected.GET("/me", cfg.UserHandler.GetMe)
			protected.PATCH("/me/name", cfg.UserHandler.ChangeName)
		}

		// Wardrobe
		if cfg.ItemHandler != nil {
			protected.GET("/items", cfg.ItemHandler.List)
			protected.POST("/items", cfg.ItemHandler.Create)
			protected.GET("/items/:id", cfg.ItemHandler.Get)
			protected.PATCH("/items/:id", cfg.ItemHandler.Update)
			protected.DELETE("/items/:id", cfg.ItemHandler.Delete)
			protected.PUT("/items/:id/image", cfg.ItemHandler.UploadImage)
		}

		// Outfits
		if cfg.OutfitHandler != nil {
			protected.POST("/outfits/generate", cfg.OutfitHandler.Generate)
			protected.POST("/outfits/regenerate", cfg.OutfitHandler.Regenerate)
			protected.GET("/outfits/current", cfg.OutfitHandler.Current)
			protected.POST("/outfits/rate", cfg.OutfitHandler.Rate)
			protected.GET("/outfits/recommendations", cfg.OutfitHandler.Recommendations)
		}

		// Saved outfits
		if cfg.SavedHandler != nil {
			protected.GET("/summary", cfg.SavedHandler.Summary)
			protected.GET("/outfits", cfg.SavedHandler.List)
			protected.POST("/outfits", cfg.SavedHandler.Create)
			protected.POST("/outfits/current/save", cfg.SavedHandler.SaveCurrent)
			protected.GET("/outfits/:id", cfg.SavedHandler.Get)
			protected.DELETE("/outfits/:id", cfg.SavedHandler.Delete)
		}
	}

	return r
}
