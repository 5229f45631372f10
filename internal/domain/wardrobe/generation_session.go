package wardrobe

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// GenerationSession is the last generated outfit of one login session.
// ItemIDs keep the assembly order; rating walks adjacent pairs of it.
// GenerationID changes on every generation so a rating can only land on the
// outfit it was made for.
type GenerationSession struct {
	SessionID          uuid.UUID   `json:"session_id"`
	GenerationID       uuid.UUID   `json:"generation_id"`
	UserID             uuid.UUID   `json:"user_id"`
	ItemIDs            []uuid.UUID `json:"item_ids"`
	Categories         []Category  `json:"categories"`
	SelectedCategories []Category  `json:"selected_categories,omitempty"`
	Rated              bool        `json:"rated"`
	LastRating         *int        `json:"last_rating,omitempty"`
	GeneratedAt        time.Time   `json:"generated_at"`
}

// GenerationSessionRow persists a GenerationSession in SQL.
type GenerationSessionRow struct {
	SessionID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"session_id"`
	GenerationID       uuid.UUID      `gorm:"type:uuid;column:generation_id" json:"generation_id"`
	UserID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemIDs            datatypes.JSON `gorm:"column:item_ids" json:"item_ids"`
	Categories         datatypes.JSON `gorm:"column:categories" json:"categories"`
	SelectedCategories datatypes.JSON `gorm:"column:selected_categories" json:"selected_categories"`
	Rated              bool           `gorm:"column:rated;not null;default:false" json:"rated"`
	LastRating         *int           `gorm:"column:last_rating" json:"last_rating,omitempty"`
	GeneratedAt        time.Time      `gorm:"column:generated_at;not null" json:"generated_at"`
	ExpiresAt          *time.Time     `gorm:"column:expires_at;index" json:"expires_at,omitempty"`
	UpdatedAt          time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (GenerationSessionRow) TableName() string { return "generation_session" }
