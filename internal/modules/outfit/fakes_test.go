package outfit

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

type fakeItems struct {
	byCategory map[wardrobe.Category][]*wardrobe.ClothingItem
	byID       map[uuid.UUID]*wardrobe.ClothingItem
}

func newFakeItems(items ...*wardrobe.ClothingItem) *fakeItems {
	f := &fakeItems{
		byCategory: map[wardrobe.Category][]*wardrobe.ClothingItem{},
		byID:       map[uuid.UUID]*wardrobe.ClothingItem{},
	}
	for _, it := range items {
		f.byCategory[it.Category] = append(f.byCategory[it.Category], it)
		f.byID[it.ID] = it
	}
	return f
}

func (f *fakeItems) ListByUserAndCategory(_ dbctx.Context, userID uuid.UUID, category wardrobe.Category) ([]*wardrobe.ClothingItem, error) {
	var out []*wardrobe.ClothingItem
	for _, it := range f.byCategory[category] {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItems) IncrementTimesShown(_ dbctx.Context, _ uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if it, ok := f.byID[id]; ok {
			it.TimesShown++
		}
	}
	return nil
}

func (f *fakeItems) DecrementTimesShown(_ dbctx.Context, _ uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		if it, ok := f.byID[id]; ok && it.TimesShown > 0 {
			it.TimesShown--
		}
	}
	return nil
}

type pairKey struct {
	user, item1, item2 uuid.UUID
}

type fakeCompat struct {
	rows  map[pairKey]*wardrobe.Compatibility
	byID  map[uuid.UUID]*wardrobe.Compatibility
	calls []pairKey
}

func newFakeCompat() *fakeCompat {
	return &fakeCompat{
		rows: map[pairKey]*wardrobe.Compatibility{},
		byID: map[uuid.UUID]*wardrobe.Compatibility{},
	}
}

func (f *fakeCompat) GetOrCreate(_ dbctx.Context, userID, a, b uuid.UUID) (*wardrobe.Compatibility, error) {
	k := pairKey{userID, a, b}
	f.calls = append(f.calls, k)
	if row, ok := f.rows[k]; ok {
		cp := *row
		return &cp, nil
	}
	row := &wardrobe.Compatibility{ID: uuid.New(), UserID: userID, Item1ID: a, Item2ID: b}
	f.rows[k] = row
	f.byID[row.ID] = row
	cp := *row
	return &cp, nil
}

func (f *fakeCompat) UpdateScore(_ dbctx.Context, id uuid.UUID, score float64, timesEvaluated int) error {
	row, ok := f.byID[id]
	if !ok {
		return fmt.Errorf("no compatibility row %s", id)
	}
	row.Score = score
	row.TimesEvaluated = timesEvaluated
	return nil
}

func (f *fakeCompat) set(userID, a, b uuid.UUID, score float64) {
	i1, i2 := wardrobe.CanonicalPair(a, b)
	row, _ := f.GetOrCreate(dbctx.Context{}, userID, i1, i2)
	f.byID[row.ID].Score = score
	f.calls = nil
}

func (f *fakeCompat) get(userID, a, b uuid.UUID) *wardrobe.Compatibility {
	i1, i2 := wardrobe.CanonicalPair(a, b)
	return f.rows[pairKey{userID, i1, i2}]
}

// scriptedSource replays fixed draws so a test can steer every branch.
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scriptedSource: out of floats")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.ints) == 0 {
		panic("scriptedSource: out of ints")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func item(userID uuid.UUID, name string, category wardrobe.Category, rating int) *wardrobe.ClothingItem {
	return &wardrobe.ClothingItem{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Category: category,
		Rating:   rating,
	}
}
