package outfit

import (
	"errors"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

var (
	ErrNotEnoughCategories = errors.New("select at least two different categories")
	ErrFirstCategoryEmpty  = errors.New("no items in the first category")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrSameItem            = errors.New("compatibility needs two distinct items")
)

// ItemStore is the read/write surface the engine needs over clothing items.
type ItemStore interface {
	ListByUserAndCategory(dbc dbctx.Context, userID uuid.UUID, category wardrobe.Category) ([]*wardrobe.ClothingItem, error)
	IncrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error
	DecrementTimesShown(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) error
}

// CompatibilityStore must enforce one row per (user, item1, item2).
type CompatibilityStore interface {
	GetOrCreate(dbc dbctx.Context, userID, a, b uuid.UUID) (*wardrobe.Compatibility, error)
	UpdateScore(dbc dbctx.Context, id uuid.UUID, score float64, timesEvaluated int) error
}

type Deps struct {
	Log    *logger.Logger
	Items  ItemStore
	Compat CompatibilityStore
	// Optional; defaults to NewSource(Config.Seed).
	Source Source
	Config Config
}

type Engine struct {
	log     *logger.Logger
	items   ItemStore
	compat  CompatibilityStore
	sampler *Sampler
	cfg     Config
}

func New(deps Deps) *Engine {
	cfg := deps.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	src := deps.Source
	if src == nil {
		src = NewSource(cfg.Seed)
	}
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		log:     log.With("module", "outfit"),
		items:   deps.Items,
		compat:  deps.Compat,
		sampler: NewSampler(src),
		cfg:     cfg,
	}
}

func (e *Engine) Config() Config { return e.cfg }
