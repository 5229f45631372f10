package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/wardrobe-backend/internal/http"
	httpH "github.com/yungbote/wardrobe-backend/internal/http/handlers"
	httpMW "github.com/yungbote/wardrobe-backend/internal/http/middleware"
	"github.com/yungbote/wardrobe-backend/internal/observability"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health *httpH.HealthHandler
	Auth   *httpH.AuthHandler
	User   *httpH.UserHandler
	Item   *httpH.ItemHandler
	Outfit *httpH.OutfitHandler
	Saved  *httpH.SavedOutfitHandler
}

func wireHandlers(log *logger.Logger, cfg Config, db *gorm.DB, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health: httpH.NewHealthHandler(db),
		Auth:   httpH.NewAuthHandler(services.Auth),
		User:   httpH.NewUserHandler(services.User),
		Item:   httpH.NewItemHandler(services.Items, cfg.MaxImageBytes),
		Outfit: httpH.NewOutfitHandler(services.Outfits),
		Saved:  httpH.NewSavedOutfitHandler(services.Saved),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *http.Server {
	return http.NewServer(http.RouterConfig{
		Log:            log,
		Metrics:        metrics,
		ServiceName:    "wardrobe",
		CORSOrigins:    cfg.CORSOrigins,
		HealthHandler:  handlers.Health,
		AuthHandler:    handlers.Auth,
		AuthMiddleware: middleware.Auth,
		UserHandler:    handlers.User,
		ItemHandler:    handlers.Item,
		OutfitHandler:  handlers.Outfit,
		SavedHandler:   handlers.Saved,
	})
}
