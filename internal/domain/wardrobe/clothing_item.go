package wardrobe

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 3
)

type ClothingItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_clothing_item_user_category,priority:1" json:"user_id"`
	Name        string    `gorm:"column:name;not null" json:"name"`
	Description string    `gorm:"column:description" json:"description,omitempty"`
	ImageURL    string    `gorm:"column:image_url" json:"image_url,omitempty"`
	ImageKey    string    `gorm:"column:image_key" json:"-"`
	Color       string    `gorm:"column:color" json:"color,omitempty"`
	Category    Category  `gorm:"column:category;not null;index:idx_clothing_item_user_category,priority:2" json:"category"`
	// Comma separated season codes (winter,spring,summer,autumn).
	Season   string   `gorm:"column:season" json:"season,omitempty"`
	Occasion string   `gorm:"column:occasion;not null;default:'any'" json:"occasion"`
	Rating   int      `gorm:"column:rating;not null" json:"rating"`
	Price    *float64 `gorm:"column:price" json:"price,omitempty"`

	// Exposure counter used to discourage repeating the same items.
	TimesShown int `gorm:"column:times_shown;not null;default:0" json:"times_shown"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (ClothingItem) TableName() string { return "clothing_item" }

// SeasonAll marks an item as wearable in any season.
const SeasonAll = "all"

func (c *ClothingItem) Seasons() []string {
	if c == nil || strings.TrimSpace(c.Season) == "" {
		return nil
	}
	out := []string{}
	for _, s := range strings.Split(c.Season, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// WornIn reports whether the item is tagged for season, or for all seasons.
func (c *ClothingItem) WornIn(season string) bool {
	for _, s := range c.Seasons() {
		if s == season || s == SeasonAll {
			return true
		}
	}
	return false
}

func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}
