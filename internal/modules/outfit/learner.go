package outfit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

type PairUpdate struct {
	Item1ID        uuid.UUID
	Item2ID        uuid.UUID
	OldScore       float64
	NewScore       float64
	TimesEvaluated int
}

type Feedback struct {
	Rating int
	Pairs  []PairUpdate
	// ExposureReset is true when the rating was good enough to cancel the
	// exposure increment.
	ExposureReset bool
}

// ApplyRating feeds a rating back into the model. Each adjacent pair of the
// ordered outfit moves by (rating-neutral)*learning rate, clamped to the score
// bounds. Every item's exposure counter goes up by one, and straight back down
// when the rating is good.
func (e *Engine) ApplyRating(dbc dbctx.Context, userID uuid.UUID, items []*wardrobe.ClothingItem, rating int) (*Feedback, error) {
	if !wardrobe.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	fb := &Feedback{Rating: rating}
	delta := float64(rating-e.cfg.NeutralRating) * e.cfg.LearningRate

	for i := 0; i+1 < len(items); i++ {
		row, err := e.resolveRow(dbc, userID, items[i].ID, items[i+1].ID)
		if err != nil {
			return nil, fmt.Errorf("resolve pair %d: %w", i, err)
		}
		next := clamp(row.Score+delta, e.cfg.MinScore, e.cfg.MaxScore)
		evaluated := row.TimesEvaluated + 1
		if err := e.compat.UpdateScore(dbc, row.ID, next, evaluated); err != nil {
			return nil, fmt.Errorf("update pair %d: %w", i, err)
		}
		fb.Pairs = append(fb.Pairs, PairUpdate{
			Item1ID:        row.Item1ID,
			Item2ID:        row.Item2ID,
			OldScore:       row.Score,
			NewScore:       next,
			TimesEvaluated: evaluated,
		})
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	if err := e.items.IncrementTimesShown(dbc, userID, ids); err != nil {
		return nil, fmt.Errorf("increment exposure: %w", err)
	}
	if rating >= e.cfg.GoodRatingThreshold {
		if err := e.items.DecrementTimesShown(dbc, userID, ids); err != nil {
			return nil, fmt.Errorf("decrement exposure: %w", err)
		}
		fb.ExposureReset = true
	}

	e.log.Debug("applied rating", "user_id", userID, "rating", rating, "pairs", len(fb.Pairs))
	return fb, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
