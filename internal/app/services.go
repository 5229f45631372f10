package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/wardrobe-backend/internal/modules/outfit"
	"github.com/yungbote/wardrobe-backend/internal/observability"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
	"github.com/yungbote/wardrobe-backend/internal/services"
)

type Services struct {
	Auth    services.AuthService
	User    services.UserService
	Items   services.ItemService
	Outfits services.OutfitService
	Saved   services.SavedOutfitService
	Engine  *outfit.Engine
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients, repos Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	engine := outfit.New(outfit.Deps{
		Log:    log,
		Items:  repos.ClothingItem,
		Compat: repos.Compatibility,
		Config: cfg.Outfit,
	})
	ec := engine.Config()
	log.Info("Outfit engine ready",
		"exploration_rate", ec.ExplorationRate,
		"learning_rate", ec.LearningRate,
		"seeded", ec.Seed != 0,
	)

	return Services{
		Auth:  services.NewAuthService(db, log, repos.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		User:  services.NewUserService(log, repos.User),
		Items: services.NewItemService(log, repos.ClothingItem, clients.Images),
		Outfits: services.NewOutfitService(services.OutfitServiceDeps{
			DB:       db,
			Log:      log,
			Items:    repos.ClothingItem,
			Compat:   repos.Compatibility,
			Engine:   engine,
			Sessions: repos.Sessions,
			Metrics:  metrics,
		}),
		Saved:  services.NewSavedOutfitService(log, repos.Outfit, repos.ClothingItem, repos.Sessions),
		Engine: engine,
	}
}
