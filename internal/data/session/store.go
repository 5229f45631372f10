package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

// DefaultTTL bounds how long a generated outfit stays ratable.
const DefaultTTL = 24 * time.Hour

// Store keeps the last generated outfit per login session.
// Get returns nil, nil when nothing is stored for the session.
type Store interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*wardrobe.GenerationSession, error)
	Save(ctx context.Context, s *wardrobe.GenerationSession) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
	// MarkRated flags the session's outfit as rated if it is still the
	// generation identified by generationID and has not been rated yet.
	// It reports false when another rating or a newer generation won.
	// Stores backed by the database claim inside dbc.Tx when one is set.
	MarkRated(dbc dbctx.Context, sessionID, generationID uuid.UUID, rating int) (bool, error)
}

// RatingReleaser is implemented by stores whose MarkRated cannot join a
// database transaction. ReleaseRating undoes a claim after the learning
// update failed.
type RatingReleaser interface {
	ReleaseRating(ctx context.Context, sessionID, generationID uuid.UUID) error
}

// Purger is implemented by stores that cannot expire entries on their own.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}
