package outfit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

// Pick is one slot of a generated outfit.
type Pick struct {
	Category   wardrobe.Category
	Item       *wardrobe.ClothingItem
	Candidates int
	Mode       DrawMode
}

// Outfit is a generated, not yet persisted, outfit.
type Outfit struct {
	// Categories is the requested set in assembly order.
	Categories []wardrobe.Category
	Picks      []Pick
}

func (o *Outfit) Items() []*wardrobe.ClothingItem {
	out := make([]*wardrobe.ClothingItem, 0, len(o.Picks))
	for _, p := range o.Picks {
		out = append(out, p.Item)
	}
	return out
}

func (o *Outfit) ItemIDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(o.Picks))
	for _, p := range o.Picks {
		out = append(out, p.Item.ID)
	}
	return out
}

// Generate picks one item per category in assembly order. The first pick is
// weighted by rating alone; later picks also weigh the learned compatibility
// with the previous pick and are discounted by exposure. Categories the user
// owns nothing in are skipped, except the first, which is an error.
func (e *Engine) Generate(dbc dbctx.Context, userID uuid.UUID, categories []wardrobe.Category) (*Outfit, error) {
	ordered := OrderCategories(categories)
	if len(ordered) < 2 {
		return nil, ErrNotEnoughCategories
	}

	first, err := e.items.ListByUserAndCategory(dbc, userID, ordered[0])
	if err != nil {
		return nil, fmt.Errorf("list %s items: %w", ordered[0], err)
	}
	if len(first) == 0 {
		return nil, ErrFirstCategoryEmpty
	}

	out := &Outfit{Categories: ordered}
	idx, mode := e.sampler.Weighted(e.ratingWeights(first))
	prev := first[idx]
	out.Picks = append(out.Picks, Pick{Category: ordered[0], Item: prev, Candidates: len(first), Mode: mode})

	for _, cat := range ordered[1:] {
		candidates, err := e.items.ListByUserAndCategory(dbc, userID, cat)
		if err != nil {
			return nil, fmt.Errorf("list %s items: %w", cat, err)
		}
		if len(candidates) == 0 {
			e.log.Debug("skipping empty category", "user_id", userID, "category", cat)
			continue
		}

		weights := make([]float64, len(candidates))
		sum := 0.0
		for i, c := range candidates {
			score, err := e.Resolve(dbc, userID, prev.ID, c.ID)
			if err != nil {
				return nil, fmt.Errorf("resolve compatibility: %w", err)
			}
			weights[i] = Weight(c, score)
			sum += weights[i]
		}

		var pick int
		switch {
		case e.sampler.Chance(e.cfg.ExplorationRate):
			pick, mode = e.sampler.Uniform(len(candidates)), DrawExplore
		case sum == 0:
			pick, mode = e.sampler.Uniform(len(candidates)), DrawZeroWeights
		default:
			pick, mode = e.sampler.Weighted(weights)
		}
		prev = candidates[pick]
		out.Picks = append(out.Picks, Pick{Category: cat, Item: prev, Candidates: len(candidates), Mode: mode})
	}
	return out, nil
}

// Weight is the selection weight of a candidate given its compatibility score
// with the previously picked item. Offsets keep it positive for rating >= 0,
// score >= -1 and any exposure count.
func Weight(item *wardrobe.ClothingItem, score float64) float64 {
	shown := item.TimesShown
	if shown < 0 {
		shown = 0
	}
	return float64(item.Rating+1) * (score + 2) / float64(shown+1)
}

func (e *Engine) ratingWeights(items []*wardrobe.ClothingItem) []float64 {
	weights := make([]float64, len(items))
	sum := 0.0
	for i, it := range items {
		w := float64(it.Rating)
		if w < 0 {
			w = 0
		}
		weights[i] = w
		sum += w
	}
	if sum == 0 {
		for i := range weights {
			weights[i] = float64(e.cfg.DefaultRating)
		}
	}
	return weights
}
