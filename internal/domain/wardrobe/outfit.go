package wardrobe

import (
	"time"

	"github.com/google/uuid"
)

// Outfit is a named group of items the user chose to keep, either picked by
// hand or saved from a generated outfit.
type Outfit struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	Description string          `gorm:"column:description" json:"description,omitempty"`
	Occasion    string          `gorm:"column:occasion;not null;default:'any'" json:"occasion"`
	Rating      int             `gorm:"column:rating;not null" json:"rating"`
	Items       []*ClothingItem `gorm:"many2many:outfit_item;joinForeignKey:OutfitID;joinReferences:ClothingItemID" json:"items"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Outfit) TableName() string { return "outfit" }

// OutfitItem is a row of the outfit_item join table.
type OutfitItem struct {
	OutfitID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	ClothingItemID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

func (OutfitItem) TableName() string { return "outfit_item" }
