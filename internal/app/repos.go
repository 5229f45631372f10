package app

import (
	"gorm.io/gorm"

	userrepo "github.com/yungbote/wardrobe-backend/internal/data/repos/user"
	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type Repos struct {
	User          userrepo.UserRepo
	ClothingItem  wardroberepo.ClothingItemRepo
	Compatibility wardroberepo.CompatibilityRepo
	Outfit        wardroberepo.OutfitRepo
	Sessions      session.Store
}

func wireRepos(db *gorm.DB, log *logger.Logger, cfg Config, clients Clients) Repos {
	log.Info("Wiring repos...")

	var sessions session.Store
	if clients.Redis != nil {
		sessions = session.NewRedisStore(clients.Redis, cfg.SessionTTL, log)
	} else {
		sessions = session.NewSQLStore(db, cfg.SessionTTL, log)
	}

	return Repos{
		User:          userrepo.NewUserRepo(db, log),
		ClothingItem:  wardroberepo.NewClothingItemRepo(db, log),
		Compatibility: wardroberepo.NewCompatibilityRepo(db, log),
		Outfit:        wardroberepo.NewOutfitRepo(db, log),
		Sessions:      sessions,
	}
}
