package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

const (
	minItemsForVariety     = 5
	comfortableItemCount   = 10
	minItemsPerCategory    = 2
	minTrainedCombinations = 5
	favoritePairScore      = 0.3
)

type Recommendation struct {
	Code     string            `json:"code"`
	Message  string            `json:"message"`
	Category wardrobe.Category `json:"category,omitempty"`
	ItemIDs  []uuid.UUID       `json:"item_ids,omitempty"`
}

// favoritePair is the best-scoring combination the user has rated.
type favoritePair struct {
	First, Second *wardrobe.ClothingItem
	Score         float64
}

// Recommendations suggests what to add or do next so generation has enough
// material and feedback to work with.
func (s *outfitService) Recommendations(ctx context.Context) ([]Recommendation, error) {
	rd, err := requestIdentity(ctx)
	if err != nil {
		return nil, err
	}

	var (
		counts   map[wardrobe.Category]int64
		pairs    int64
		favorite *favoritePair
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.items.CountByCategory(dbctx.Context{Ctx: gctx}, rd.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		pairs, err = s.compat.CountByUser(dbctx.Context{Ctx: gctx}, rd.UserID)
		return err
	})
	g.Go(func() error {
		var err error
		favorite, err = s.favoritePair(dbctx.Context{Ctx: gctx}, rd.UserID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load wardrobe stats: %w", err)
	}
	return buildRecommendations(counts, pairs, favorite), nil
}

func (s *outfitService) favoritePair(dbc dbctx.Context, userID uuid.UUID) (*favoritePair, error) {
	best, err := s.compat.ListByUser(dbc, userID, 1)
	if err != nil {
		return nil, err
	}
	if len(best) == 0 || best[0].Score < favoritePairScore {
		return nil, nil
	}
	items, err := s.items.GetByIDsForUser(dbc, userID, []uuid.UUID{best[0].Item1ID, best[0].Item2ID})
	if err != nil {
		return nil, err
	}
	if len(items) != 2 {
		return nil, nil
	}
	return &favoritePair{First: items[0], Second: items[1], Score: best[0].Score}, nil
}

func buildRecommendations(counts map[wardrobe.Category]int64, pairs int64, favorite *favoritePair) []Recommendation {
	var total int64
	for _, n := range counts {
		total += n
	}

	out := []Recommendation{}
	switch {
	case total < minItemsForVariety:
		out = append(out, Recommendation{
			Code:    "add_items",
			Message: fmt.Sprintf("Add more items to your wardrobe (currently %d)", total),
		})
	case total < comfortableItemCount:
		out = append(out, Recommendation{
			Code:    "add_variety",
			Message: "Add a few more items for more varied outfits",
		})
	}

	for _, c := range wardrobe.Categories {
		n := counts[c]
		switch {
		case n == 0:
			out = append(out, Recommendation{
				Code:     "empty_category",
				Message:  fmt.Sprintf("Add items in the '%s' category", c.Label()),
				Category: c,
			})
		case n < minItemsPerCategory && total >= comfortableItemCount:
			out = append(out, Recommendation{
				Code:     "thin_category",
				Message:  fmt.Sprintf("Few items in the '%s' category (%d)", c.Label(), n),
				Category: c,
			})
		}
	}

	if favorite != nil {
		out = append(out, Recommendation{
			Code:    "favorite_pair",
			Message: fmt.Sprintf("'%s' and '%s' work well together", favorite.First.Name, favorite.Second.Name),
			ItemIDs: []uuid.UUID{favorite.First.ID, favorite.Second.ID},
		})
	}

	if pairs < minTrainedCombinations {
		out = append(out, Recommendation{
			Code:    "rate_outfits",
			Message: "Rate a few outfits to train the generator",
		})
	}
	return out
}
