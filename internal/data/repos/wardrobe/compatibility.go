package wardrobe

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type CompatibilityRepo interface {
	GetOrCreate(dbc dbctx.Context, userID, a, b uuid.UUID) (*types.Compatibility, error)
	Get(dbc dbctx.Context, userID, a, b uuid.UUID) (*types.Compatibility, error)
	UpdateScore(dbc dbctx.Context, id uuid.UUID, score float64, timesEvaluated int) error
	CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error)
	ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Compatibility, error)
}

type compatibilityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompatibilityRepo(db *gorm.DB, baseLog *logger.Logger) CompatibilityRepo {
	return &compatibilityRepo{
		db:  db,
		log: baseLog.With("repo", "CompatibilityRepo"),
	}
}

// GetOrCreate returns the single row for the unordered pair (a, b), inserting a
// zero-score row first if none exists. Concurrent first use is settled by the
// unique (user_id, item1_id, item2_id) index.
func (r *compatibilityRepo) GetOrCreate(dbc dbctx.Context, userID, a, b uuid.UUID) (*types.Compatibility, error) {
	if userID == uuid.Nil || a == uuid.Nil || b == uuid.Nil {
		return nil, fmt.Errorf("compatibility: missing ids")
	}
	if a == b {
		return nil, fmt.Errorf("compatibility: pair needs two distinct items")
	}
	item1, item2 := types.CanonicalPair(a, b)
	t := dbc.Conn(r.db)

	row := &types.Compatibility{
		ID:      uuid.New(),
		UserID:  userID,
		Item1ID: item1,
		Item2ID: item2,
	}
	if err := t.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"},
			{Name: "item1_id"},
			{Name: "item2_id"},
		},
		DoNothing: true,
	}).Create(row).Error; err != nil {
		return nil, err
	}

	var out types.Compatibility
	if err := t.
		Where("user_id = ? AND item1_id = ? AND item2_id = ?", userID, item1, item2).
		First(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns nil, nil when the pair has never been resolved.
func (r *compatibilityRepo) Get(dbc dbctx.Context, userID, a, b uuid.UUID) (*types.Compatibility, error) {
	item1, item2 := types.CanonicalPair(a, b)
	var out types.Compatibility
	if err := dbc.Conn(r.db).
		Where("user_id = ? AND item1_id = ? AND item2_id = ?", userID, item1, item2).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if out.ID == uuid.Nil {
		return nil, nil
	}
	return &out, nil
}

func (r *compatibilityRepo) UpdateScore(dbc dbctx.Context, id uuid.UUID, score float64, timesEvaluated int) error {
	return dbc.Conn(r.db).
		Model(&types.Compatibility{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"score":           score,
			"times_evaluated": timesEvaluated,
		}).Error
}

func (r *compatibilityRepo) CountByUser(dbc dbctx.Context, userID uuid.UUID) (int64, error) {
	var n int64
	if err := dbc.Conn(r.db).
		Model(&types.Compatibility{}).
		Where("user_id = ?", userID).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

// ListByUser returns the user's evaluated pairs, best score first. A limit of
// zero or less returns all of them.
func (r *compatibilityRepo) ListByUser(dbc dbctx.Context, userID uuid.UUID, limit int) ([]*types.Compatibility, error) {
	var out []*types.Compatibility
	q := dbc.Conn(r.db).
		Where("user_id = ? AND times_evaluated > 0", userID).
		Order("score DESC").
		Order("times_evaluated DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
