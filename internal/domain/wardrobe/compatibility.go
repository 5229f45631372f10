package wardrobe

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// Compatibility is the learned affinity between two items of one user.
// Item1ID always sorts before Item2ID (see CanonicalPair), so one unordered
// pair maps to exactly one row.
type Compatibility struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_compatibility_pair,priority:1" json:"user_id"`
	Item1ID        uuid.UUID `gorm:"type:uuid;not null;column:item1_id;uniqueIndex:idx_compatibility_pair,priority:2;index" json:"item1_id"`
	Item2ID        uuid.UUID `gorm:"type:uuid;not null;column:item2_id;uniqueIndex:idx_compatibility_pair,priority:3;index" json:"item2_id"`
	Score          float64   `gorm:"column:score;not null;default:0" json:"score"`
	TimesEvaluated int       `gorm:"column:times_evaluated;not null;default:0" json:"times_evaluated"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Compatibility) TableName() string { return "compatibility" }

// CanonicalPair orders two identities ascending by their byte representation.
func CanonicalPair(a, b uuid.UUID) (uuid.UUID, uuid.UUID) {
	if bytes.Compare(a[:], b[:]) > 0 {
		return b, a
	}
	return a, b
}
