package wardrobe

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type OutfitRepo interface {
	Create(dbc dbctx.Context, o *types.Outfit) (*types.Outfit, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Outfit, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Outfit, error)
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type outfitRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewOutfitRepo(db *gorm.DB, baseLog *logger.Logger) OutfitRepo {
	return &outfitRepo{
		db:  db,
		log: baseLog.With("repo", "OutfitRepo"),
	}
}

// Create inserts the outfit and its item links. The items must already exist;
// they are linked, never written.
func (r *outfitRepo) Create(dbc dbctx.Context, o *types.Outfit) (*types.Outfit, error) {
	if o == nil || o.UserID == uuid.Nil {
		return nil, fmt.Errorf("outfit: missing user id")
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Rating == 0 {
		o.Rating = types.DefaultRating
	}
	if o.Occasion == "" {
		o.Occasion = "any"
	}
	if err := dbc.Conn(r.db).Omit("Items.*").Create(o).Error; err != nil {
		return nil, err
	}
	return o, nil
}

// GetByID returns nil, nil when the outfit does not exist or belongs to another user.
func (r *outfitRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.Outfit, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var out types.Outfit
	if err := dbc.Conn(r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("clothing_item.category, clothing_item.name") }).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *outfitRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID) ([]*types.Outfit, error) {
	var out []*types.Outfit
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("clothing_item.category, clothing_item.name") }).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *outfitRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.Outfit{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes the outfit and its item links. The items themselves stay.
func (r *outfitRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	deleted := false
	err := dbc.Conn(r.db).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("id = ? AND user_id = ?", id, userID).Delete(&types.Outfit{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return txx.Where("outfit_id = ?", id).Delete(&types.OutfitItem{}).Error
	})
	if err != nil {
		return false, err
	}
	if deleted {
		r.log.Debug("deleted outfit", "user_id", userID, "outfit_id", id)
	}
	return deleted, nil
}
