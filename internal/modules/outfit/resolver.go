package outfit

import (
	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

// Resolve returns the learned score of the unordered pair (a, b), creating a
// zero-score record on first use. Existing scores are never changed here.
func (e *Engine) Resolve(dbc dbctx.Context, userID, a, b uuid.UUID) (float64, error) {
	row, err := e.resolveRow(dbc, userID, a, b)
	if err != nil {
		return 0, err
	}
	return row.Score, nil
}

func (e *Engine) resolveRow(dbc dbctx.Context, userID, a, b uuid.UUID) (*wardrobe.Compatibility, error) {
	if a == b {
		return nil, ErrSameItem
	}
	item1, item2 := wardrobe.CanonicalPair(a, b)
	return e.compat.GetOrCreate(dbc, userID, item1, item2)
}
