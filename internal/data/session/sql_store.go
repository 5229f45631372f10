package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type sqlStore struct {
	db  *gorm.DB
	ttl time.Duration
	log *logger.Logger
	now func() time.Time
}

// NewSQLStore persists sessions in the generation_session table. Used when no
// redis is configured.
func NewSQLStore(db *gorm.DB, ttl time.Duration, baseLog *logger.Logger) Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &sqlStore{
		db:  db,
		ttl: ttl,
		log: baseLog.With("store", "SQLGenerationSessionStore"),
		now: time.Now,
	}
}

func (s *sqlStore) Get(ctx context.Context, sessionID uuid.UUID) (*wardrobe.GenerationSession, error) {
	if sessionID == uuid.Nil {
		return nil, nil
	}
	var row wardrobe.GenerationSessionRow
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Limit(1).
		Find(&row).Error; err != nil {
		return nil, err
	}
	if row.SessionID == uuid.Nil {
		return nil, nil
	}
	if row.ExpiresAt != nil && !row.ExpiresAt.After(s.now().UTC()) {
		return nil, s.Clear(ctx, sessionID)
	}
	return fromRow(&row)
}

func (s *sqlStore) Save(ctx context.Context, gs *wardrobe.GenerationSession) error {
	if gs == nil || gs.SessionID == uuid.Nil {
		return fmt.Errorf("generation session requires a session id")
	}
	row, err := toRow(gs)
	if err != nil {
		return err
	}
	expires := s.now().UTC().Add(s.ttl)
	row.ExpiresAt = &expires

	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"generation_id",
				"user_id",
				"item_ids",
				"categories",
				"selected_categories",
				"rated",
				"last_rating",
				"generated_at",
				"expires_at",
				"updated_at",
			}),
		}).
		Create(row).Error
}

func (s *sqlStore) Clear(ctx context.Context, sessionID uuid.UUID) error {
	if sessionID == uuid.Nil {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Delete(&wardrobe.GenerationSessionRow{}).Error
}

// MarkRated is a conditional update; inside a transaction the claim commits or
// rolls back with the learning update.
func (s *sqlStore) MarkRated(dbc dbctx.Context, sessionID, generationID uuid.UUID, rating int) (bool, error) {
	if sessionID == uuid.Nil || generationID == uuid.Nil {
		return false, nil
	}
	now := s.now().UTC()
	res := dbc.Conn(s.db).
		Model(&wardrobe.GenerationSessionRow{}).
		Where("session_id = ? AND generation_id = ? AND rated = ?", sessionID, generationID, false).
		Where("expires_at IS NULL OR expires_at > ?", now).
		Updates(map[string]interface{}{
			"rated":       true,
			"last_rating": rating,
			"updated_at":  now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// PurgeExpired deletes every session past its expiry and returns how many
// rows went.
func (s *sqlStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now().UTC()).
		Delete(&wardrobe.GenerationSessionRow{})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected > 0 {
		s.log.Debug("purged expired generation sessions", "count", res.RowsAffected)
	}
	return res.RowsAffected, nil
}

func toRow(gs *wardrobe.GenerationSession) (*wardrobe.GenerationSessionRow, error) {
	ids, err := json.Marshal(gs.ItemIDs)
	if err != nil {
		return nil, err
	}
	cats, err := json.Marshal(gs.Categories)
	if err != nil {
		return nil, err
	}
	selected, err := json.Marshal(gs.SelectedCategories)
	if err != nil {
		return nil, err
	}
	return &wardrobe.GenerationSessionRow{
		SessionID:          gs.SessionID,
		GenerationID:       gs.GenerationID,
		UserID:             gs.UserID,
		ItemIDs:            datatypes.JSON(ids),
		Categories:         datatypes.JSON(cats),
		SelectedCategories: datatypes.JSON(selected),
		Rated:              gs.Rated,
		LastRating:         gs.LastRating,
		GeneratedAt:        gs.GeneratedAt,
	}, nil
}

func fromRow(row *wardrobe.GenerationSessionRow) (*wardrobe.GenerationSession, error) {
	out := &wardrobe.GenerationSession{
		SessionID:    row.SessionID,
		GenerationID: row.GenerationID,
		UserID:       row.UserID,
		Rated:        row.Rated,
		LastRating:   row.LastRating,
		GeneratedAt:  row.GeneratedAt,
	}
	if len(row.ItemIDs) > 0 {
		if err := json.Unmarshal(row.ItemIDs, &out.ItemIDs); err != nil {
			return nil, fmt.Errorf("decode item_ids: %w", err)
		}
	}
	if len(row.Categories) > 0 {
		if err := json.Unmarshal(row.Categories, &out.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}
	if len(row.SelectedCategories) > 0 {
		if err := json.Unmarshal(row.SelectedCategories, &out.SelectedCategories); err != nil {
			return nil, fmt.Errorf("decode selected_categories: %w", err)
		}
	}
	return out, nil
}
