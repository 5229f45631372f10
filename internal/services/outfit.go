package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/modules/outfit"
	"github.com/yungbote/wardrobe-backend/internal/observability"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

// GeneratedOutfit is the outfit currently held by a session.
type GeneratedOutfit struct {
	Items              []*wardrobe.ClothingItem `json:"items"`
	Categories         []wardrobe.Category      `json:"categories"`
	SelectedCategories []wardrobe.Category      `json:"selected_categories"`
	Rated              bool                     `json:"rated"`
	LastRating         *int                     `json:"last_rating,omitempty"`
	GeneratedAt        time.Time                `json:"generated_at"`
}

type RatingResult struct {
	Rating       int              `json:"rating"`
	PairsUpdated int              `json:"pairs_updated"`
	Outfit       *GeneratedOutfit `json:"outfit"`
}

type OutfitService interface {
	Generate(ctx context.Context, categories []wardrobe.Category) (*GeneratedOutfit, error)
	Regenerate(ctx context.Context) (*GeneratedOutfit, error)
	Current(ctx context.Context) (*GeneratedOutfit, error)
	Rate(ctx context.Context, rating int) (*RatingResult, error)
	Recommendations(ctx context.Context) ([]Recommendation, error)
}

type OutfitServiceDeps struct {
	DB       *gorm.DB
	Log      *logger.Logger
	Items    wardroberepo.ClothingItemRepo
	Compat   wardroberepo.CompatibilityRepo
	Engine   *outfit.Engine
	Sessions session.Store
	// Optional.
	Metrics *observability.Metrics
}

type outfitService struct {
	db       *gorm.DB
	log      *logger.Logger
	items    wardroberepo.ClothingItemRepo
	compat   wardroberepo.CompatibilityRepo
	engine   *outfit.Engine
	sessions session.Store
	metrics  *observability.Metrics
	now      func() time.Time
}

func NewOutfitService(deps OutfitServiceDeps) OutfitService {
	return &outfitService{
		db:       deps.DB,
		log:      deps.Log.With("service", "OutfitService"),
		items:    deps.Items,
		compat:   deps.Compat,
		engine:   deps.Engine,
		sessions: deps.Sessions,
		metrics:  deps.Metrics,
		now:      time.Now,
	}
}

// Generate builds a new outfit from the requested categories and makes it the
// session's current outfit, replacing any earlier one and its rating.
func (s *outfitService) Generate(ctx context.Context, categories []wardrobe.Category) (*GeneratedOutfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	ctx, span := observability.StartSpan(ctx, "outfit.generate", attribute.Int("outfit.categories", len(categories)))
	defer func() { observability.EndSpan(span, err) }()
	start := s.now()

	out, err := s.generate(ctx, rd.UserID, rd.SessionID, categories)
	if err != nil {
		status := "error"
		var ae *apierr.Error
		if errors.As(err, &ae) {
			status = ae.Code
		}
		s.metrics.ObserveGeneration(status, 0, time.Since(start))
		return nil, err
	}
	s.metrics.ObserveGeneration("ok", len(out.Items), time.Since(start))
	span.SetAttributes(attribute.Int("outfit.items", len(out.Items)))
	return out, nil
}

func (s *outfitService) generate(ctx context.Context, userID, sessionID uuid.UUID, requested []wardrobe.Category) (*GeneratedOutfit, error) {
	distinct := outfit.OrderCategories(requested)
	if len(distinct) < 2 {
		return nil, engineError(outfit.ErrNotEnoughCategories)
	}
	dbc := dbctx.Context{Ctx: ctx}
	usable, err := s.items.CategoriesWithItems(dbc, userID, distinct)
	if err != nil {
		return nil, fmt.Errorf("check categories: %w", err)
	}
	if len(usable) < 2 {
		return nil, ErrNotEnoughItems
	}

	gen, err := s.engine.Generate(dbc, userID, usable)
	if err != nil {
		return nil, engineError(err)
	}
	for _, p := range gen.Picks {
		s.metrics.IncDraw(string(p.Category), string(p.Mode))
	}

	gs := &wardrobe.GenerationSession{
		SessionID:          sessionID,
		GenerationID:       uuid.New(),
		UserID:             userID,
		ItemIDs:            gen.ItemIDs(),
		Categories:         gen.Categories,
		SelectedCategories: requested,
		GeneratedAt:        s.now().UTC(),
	}
	if err := s.saveSession(ctx, gs); err != nil {
		return nil, err
	}
	s.log.Debug("generated outfit", "user_id", userID, "session_id", sessionID, "items", len(gs.ItemIDs))
	return view(gs, gen.Items()), nil
}

// Regenerate reruns generation with the categories last requested in this session.
func (s *outfitService) Regenerate(ctx context.Context) (*GeneratedOutfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	gs, err := s.loadSession(ctx, rd.SessionID)
	if err != nil {
		return nil, err
	}
	if gs == nil || gs.UserID != rd.UserID || len(gs.SelectedCategories) == 0 {
		return nil, ErrNoGeneratedOutfit
	}
	return s.Generate(ctx, gs.SelectedCategories)
}

func (s *outfitService) Current(ctx context.Context) (*GeneratedOutfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	gs, err := s.loadSession(ctx, rd.SessionID)
	if err != nil {
		return nil, err
	}
	if gs == nil || gs.UserID != rd.UserID || len(gs.ItemIDs) == 0 {
		return nil, ErrNoGeneratedOutfit
	}
	items, err := s.materialize(dbctx.Context{Ctx: ctx}, rd.UserID, gs.ItemIDs)
	if err != nil {
		return nil, err
	}
	return view(gs, items), nil
}

// Rate applies a rating to the session's current outfit. An outfit is rated at
// most once; the learning updates commit together or not at all.
func (s *outfitService) Rate(ctx context.Context, rating int) (*RatingResult, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if !wardrobe.ValidRating(rating) {
		return nil, engineError(outfit.ErrInvalidRating)
	}
	ctx, span := observability.StartSpan(ctx, "outfit.rate", attribute.Int("outfit.rating", rating))
	defer func() { observability.EndSpan(span, err) }()

	gs, err := s.loadSession(ctx, rd.SessionID)
	if err != nil {
		return nil, err
	}
	if gs == nil || gs.UserID != rd.UserID || len(gs.ItemIDs) == 0 {
		return nil, ErrNoGeneratedOutfit
	}
	if gs.Rated {
		return nil, ErrAlreadyRated
	}

	var (
		items   []*wardrobe.ClothingItem
		fb      *outfit.Feedback
		claimed bool
	)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, txErr := s.sessions.MarkRated(dbc, gs.SessionID, gs.GenerationID, rating)
		if txErr != nil {
			return fmt.Errorf("claim rating: %w", txErr)
		}
		if !ok {
			return errClaimLost
		}
		claimed = true
		items, txErr = s.materialize(dbc, rd.UserID, gs.ItemIDs)
		if txErr != nil {
			return txErr
		}
		fb, txErr = s.engine.ApplyRating(dbc, rd.UserID, items, rating)
		return txErr
	})
	if errors.Is(err, errClaimLost) {
		err = s.claimLost(ctx, gs)
	}
	if err != nil {
		if claimed {
			s.releaseRating(ctx, gs)
		}
		err = engineError(err)
		return nil, err
	}
	s.metrics.IncSessionOp("mark_rated", "ok")

	gs.Rated = true
	gs.LastRating = &rating
	s.metrics.ObserveRating(rating, len(fb.Pairs))
	s.log.Info("rated outfit", "user_id", rd.UserID, "session_id", rd.SessionID, "rating", rating, "pairs", len(fb.Pairs))

	return &RatingResult{
		Rating:       rating,
		PairsUpdated: len(fb.Pairs),
		Outfit:       view(gs, items),
	}, nil
}

var errClaimLost = errors.New("rating claim lost")

// claimLost explains why MarkRated refused: the outfit was rated by a
// concurrent request or replaced by a newer generation.
func (s *outfitService) claimLost(ctx context.Context, gs *wardrobe.GenerationSession) error {
	cur, err := s.sessions.Get(ctx, gs.SessionID)
	if err != nil {
		return fmt.Errorf("reload generation session: %w", err)
	}
	s.metrics.IncSessionOp("mark_rated", "conflict")
	switch {
	case cur == nil:
		return ErrNoGeneratedOutfit
	case cur.GenerationID != gs.GenerationID:
		return ErrOutfitChanged
	default:
		return ErrAlreadyRated
	}
}

// releaseRating undoes a claim that could not roll back with the transaction.
func (s *outfitService) releaseRating(ctx context.Context, gs *wardrobe.GenerationSession) {
	rel, ok := s.sessions.(session.RatingReleaser)
	if !ok {
		return
	}
	if err := rel.ReleaseRating(ctx, gs.SessionID, gs.GenerationID); err != nil {
		s.log.Warn("failed to release rating claim", "session_id", gs.SessionID, "error", err)
	}
}

// materialize loads the items in stored order and fails if any is gone.
func (s *outfitService) materialize(dbc dbctx.Context, userID uuid.UUID, ids []uuid.UUID) ([]*wardrobe.ClothingItem, error) {
	rows, err := s.items.GetByIDsForUser(dbc, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("load outfit items: %w", err)
	}
	byID := make(map[uuid.UUID]*wardrobe.ClothingItem, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
	}
	out := make([]*wardrobe.ClothingItem, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, ErrItemsNotFound
		}
		out = append(out, it)
	}
	return out, nil
}

func (s *outfitService) loadSession(ctx context.Context, sessionID uuid.UUID) (*wardrobe.GenerationSession, error) {
	if sessionID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	gs, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		s.metrics.IncSessionOp("get", "error")
		return nil, fmt.Errorf("load generation session: %w", err)
	}
	s.metrics.IncSessionOp("get", "ok")
	return gs, nil
}

func (s *outfitService) saveSession(ctx context.Context, gs *wardrobe.GenerationSession) error {
	if gs.SessionID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := s.sessions.Save(ctx, gs); err != nil {
		s.metrics.IncSessionOp("save", "error")
		return fmt.Errorf("save generation session: %w", err)
	}
	s.metrics.IncSessionOp("save", "ok")
	return nil
}

func view(gs *wardrobe.GenerationSession, items []*wardrobe.ClothingItem) *GeneratedOutfit {
	return &GeneratedOutfit{
		Items:              items,
		Categories:         gs.Categories,
		SelectedCategories: gs.SelectedCategories,
		Rated:              gs.Rated,
		LastRating:         gs.LastRating,
		GeneratedAt:        gs.GeneratedAt,
	}
}
