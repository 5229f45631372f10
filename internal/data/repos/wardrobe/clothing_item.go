package wardrobe

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type ClothingItemFilter struct {
	Category *types.Category
	Occasion string
	Season   string
}

type ClothingItemRepo interface {
	Create(dbc dbctx.Context, items []*types.ClothingItem) ([]*types.ClothingItem, error)
	GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ClothingItem, error)
	GetByIDsForUser(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) ([]*types.ClothingItem, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, filter ClothingItemFilter) ([]*types.ClothingItem, error)
	ListByUserAndCategory(dbc dbctx.Context, userID uuid.UUID, category types.Category) ([]*types.ClothingItem, error)
	CountByCategory(dbc dbctx.Context, userID uuid.UUID) (map[types.Category]int64, error)
	CategoriesWithItems(dbc dbctx.Context, userID uuid.UUID, categories []types.Category) ([]types.Category, error)
	UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, updates map[string]interface{}) error
	IncrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error
	DecrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error
	Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error)
}

type clothingItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClothingItemRepo(db *gorm.DB, baseLog *logger.Logger) ClothingItemRepo {
	return &clothingItemRepo{
		db:  db,
		log: baseLog.With("repo", "ClothingItemRepo"),
	}
}

func (r *clothingItemRepo) Create(dbc dbctx.Context, items []*types.ClothingItem) ([]*types.ClothingItem, error) {
	if len(items) == 0 {
		return []*types.ClothingItem{}, nil
	}
	for _, it := range items {
		if it.ID == uuid.Nil {
			it.ID = uuid.New()
		}
		if it.Rating == 0 {
			it.Rating = types.DefaultRating
		}
		if it.TimesShown < 0 {
			it.TimesShown = 0
		}
	}
	if err := dbc.Conn(r.db).Create(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID returns nil, nil when the item does not exist or belongs to another user.
func (r *clothingItemRepo) GetByID(dbc dbctx.Context, userID, id uuid.UUID) (*types.ClothingItem, error) {
	if userID == uuid.Nil || id == uuid.Nil {
		return nil, nil
	}
	var it types.ClothingItem
	if err := dbc.Conn(r.db).
		Where("id = ? AND user_id = ?", id, userID).
		Limit(1).
		Find(&it).Error; err != nil {
		return nil, err
	}
	if it.ID == uuid.Nil {
		return nil, nil
	}
	return &it, nil
}

func (r *clothingItemRepo) GetByIDsForUser(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) ([]*types.ClothingItem, error) {
	var out []*types.ClothingItem
	if userID == uuid.Nil || len(ids) == 0 {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND id IN ?", userID, ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clothingItemRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, filter ClothingItemFilter) ([]*types.ClothingItem, error) {
	var out []*types.ClothingItem
	if userID == uuid.Nil {
		return out, nil
	}
	q := dbc.Conn(r.db).Where("user_id = ?", userID)
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.Occasion != "" {
		q = q.Where("occasion = ?", filter.Occasion)
	}
	if filter.Season != "" {
		// Coarse match; callers check exact membership with ClothingItem.Seasons.
		q = q.Where("season LIKE ? OR season LIKE ?", "%"+filter.Season+"%", "%"+types.SeasonAll+"%")
	}
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clothingItemRepo) ListByUserAndCategory(dbc dbctx.Context, userID uuid.UUID, category types.Category) ([]*types.ClothingItem, error) {
	var out []*types.ClothingItem
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND category = ?", userID, category).
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *clothingItemRepo) CountByCategory(dbc dbctx.Context, userID uuid.UUID) (map[types.Category]int64, error) {
	type row struct {
		Category types.Category
		N        int64
	}
	var rows []row
	if err := dbc.Conn(r.db).
		Model(&types.ClothingItem{}).
		Select("category, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("category").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[types.Category]int64, len(rows))
	for _, rr := range rows {
		out[rr.Category] = rr.N
	}
	return out, nil
}

// CategoriesWithItems keeps the categories (in input order) in which the user owns at least one item.
func (r *clothingItemRepo) CategoriesWithItems(dbc dbctx.Context, userID uuid.UUID, categories []types.Category) ([]types.Category, error) {
	out := []types.Category{}
	if userID == uuid.Nil || len(categories) == 0 {
		return out, nil
	}
	var present []types.Category
	if err := dbc.Conn(r.db).
		Model(&types.ClothingItem{}).
		Distinct("category").
		Where("user_id = ? AND category IN ?", userID, categories).
		Pluck("category", &present).Error; err != nil {
		return nil, err
	}
	has := make(map[types.Category]bool, len(present))
	for _, c := range present {
		has[c] = true
	}
	for _, c := range categories {
		if has[c] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *clothingItemRepo) UpdateFields(dbc dbctx.Context, userID, id uuid.UUID, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.ClothingItem{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates).Error
}

func (r *clothingItemRepo) IncrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.ClothingItem{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		UpdateColumn("times_shown", gorm.Expr("times_shown + ?", 1)).Error
}

// DecrementTimesShown lowers the exposure counter by one, floored at zero.
func (r *clothingItemRepo) DecrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return dbc.Conn(r.db).
		Model(&types.ClothingItem{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		UpdateColumn("times_shown", gorm.Expr("CASE WHEN times_shown > 0 THEN times_shown - 1 ELSE 0 END")).Error
}

// Delete removes the item and every compatibility row that references it.
func (r *clothingItemRepo) Delete(dbc dbctx.Context, userID, id uuid.UUID) (bool, error) {
	deleted := false
	err := dbc.Conn(r.db).Transaction(func(txx *gorm.DB) error {
		res := txx.Where("id = ? AND user_id = ?", id, userID).Delete(&types.ClothingItem{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		if err := txx.Where("clothing_item_id = ?", id).Delete(&types.OutfitItem{}).Error; err != nil {
			return err
		}
		return txx.
			Where("user_id = ? AND (item1_id = ? OR item2_id = ?)", userID, id, id).
			Delete(&types.Compatibility{}).Error
	})
	if err != nil {
		return false, err
	}
	if deleted {
		r.log.Debug("deleted clothing item", "user_id", userID, "item_id", id)
	}
	return deleted, nil
}
