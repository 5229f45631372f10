package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
	"github.com/yungbote/wardrobe-backend/internal/platform/logger"
)

type SavedOutfitInput struct {
	Name        string
	Description string
	Occasion    string
	// Zero falls back to the generated outfit's rating, then the default.
	Rating  int
	ItemIDs []uuid.UUID
}

// WardrobeSummary is the home page tally.
type WardrobeSummary struct {
	TotalItems   int64 `json:"total_items"`
	TotalOutfits int64 `json:"total_outfits"`
}

type SavedOutfitService interface {
	Create(ctx context.Context, in SavedOutfitInput) (*wardrobe.Outfit, error)
	// SaveCurrent keeps the session's generated outfit; in.ItemIDs is ignored.
	SaveCurrent(ctx context.Context, in SavedOutfitInput) (*wardrobe.Outfit, error)
	List(ctx context.Context) ([]*wardrobe.Outfit, error)
	Get(ctx context.Context, id uuid.UUID) (*wardrobe.Outfit, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Summary(ctx context.Context) (*WardrobeSummary, error)
}

type savedOutfitService struct {
	log      *logger.Logger
	outfits  wardroberepo.OutfitRepo
	items    wardroberepo.ClothingItemRepo
	sessions session.Store
}

func NewSavedOutfitService(log *logger.Logger, outfits wardroberepo.OutfitRepo, items wardroberepo.ClothingItemRepo, sessions session.Store) SavedOutfitService {
	return &savedOutfitService{
		log:      log.With("service", "SavedOutfitService"),
		outfits:  outfits,
		items:    items,
		sessions: sessions,
	}
}

func (s *savedOutfitService) Create(ctx context.Context, in SavedOutfitInput) (*wardrobe.Outfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.save(ctx, rd.UserID, in)
}

func (s *savedOutfitService) SaveCurrent(ctx context.Context, in SavedOutfitInput) (*wardrobe.Outfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	if rd.SessionID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	gs, err := s.sessions.Get(ctx, rd.SessionID)
	if err != nil {
		return nil, fmt.Errorf("load generation session: %w", err)
	}
	if gs == nil || gs.UserID != rd.UserID || len(gs.ItemIDs) == 0 {
		return nil, ErrNoGeneratedOutfit
	}
	in.ItemIDs = gs.ItemIDs
	if in.Rating == 0 && gs.LastRating != nil {
		in.Rating = *gs.LastRating
	}
	return s.save(ctx, rd.UserID, in)
}

func (s *savedOutfitService) save(ctx context.Context, userID uuid.UUID, in SavedOutfitInput) (*wardrobe.Outfit, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apierr.New(http.StatusBadRequest, "invalid_outfit", fmt.Errorf("outfit name is required"))
	}
	if in.Rating != 0 && !wardrobe.ValidRating(in.Rating) {
		return nil, apierr.New(http.StatusBadRequest, "invalid_rating", fmt.Errorf("rating must be between %d and %d", wardrobe.MinRating, wardrobe.MaxRating))
	}
	ids := dedupeIDs(in.ItemIDs)
	if len(ids) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "invalid_outfit", fmt.Errorf("an outfit needs at least one item"))
	}

	dbc := dbctx.Context{Ctx: ctx}
	items, err := s.items.GetByIDsForUser(dbc, userID, ids)
	if err != nil {
		return nil, fmt.Errorf("load outfit items: %w", err)
	}
	if len(items) != len(ids) {
		return nil, ErrItemsNotFound
	}

	o, err := s.outfits.Create(dbc, &wardrobe.Outfit{
		UserID:      userID,
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Occasion:    strings.TrimSpace(in.Occasion),
		Rating:      in.Rating,
		Items:       items,
	})
	if err != nil {
		return nil, fmt.Errorf("create outfit: %w", err)
	}
	s.log.Debug("saved outfit", "user_id", userID, "outfit_id", o.ID, "items", len(items))
	return o, nil
}

func (s *savedOutfitService) List(ctx context.Context) ([]*wardrobe.Outfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	return s.outfits.ListByUser(dbctx.Context{Ctx: ctx}, rd.UserID)
}

func (s *savedOutfitService) Get(ctx context.Context, id uuid.UUID) (*wardrobe.Outfit, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.outfits.GetByID(dbctx.Context{Ctx: ctx}, rd.UserID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOutfitNotFound
	}
	return o, nil
}

func (s *savedOutfitService) Delete(ctx context.Context, id uuid.UUID) error {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return err
	}
	ok, err := s.outfits.Delete(dbctx.Context{Ctx: ctx}, rd.UserID, id)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	if !ok {
		return ErrOutfitNotFound
	}
	return nil
}

func (s *savedOutfitService) Summary(ctx context.Context) (*WardrobeSummary, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}
	var out WardrobeSummary
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		counts, err := s.items.CountByCategory(dbctx.Context{Ctx: gctx}, rd.UserID)
		for _, n := range counts {
			out.TotalItems += n
		}
		return err
	})
	g.Go(func() error {
		var err error
		out.TotalOutfits, err = s.outfits.CountByUser(dbctx.Context{Ctx: gctx}, rd.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load wardrobe summary: %w", err)
	}
	return &out, nil
}

func dedupeIDs(in []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(in))
	out := make([]uuid.UUID, 0, len(in))
	for _, id := range in {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
