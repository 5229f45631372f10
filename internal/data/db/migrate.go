package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Identity
		&user.User{},

		// Wardrobe
		&wardrobe.ClothingItem{},
		&wardrobe.Compatibility{},
		&wardrobe.Outfit{},

		// Runtime
		&wardrobe.GenerationSessionRow{},
	)
}
