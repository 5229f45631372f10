package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

func seedWardrobe(t *testing.T, f *fixture, ctx context.Context) map[wardrobe.Category][]*wardrobe.ClothingItem {
	t.Helper()
	userID := ctxutil.GetRequestData(ctx).UserID
	out := map[wardrobe.Category][]*wardrobe.ClothingItem{}
	add := func(name string, c wardrobe.Category, rating int) {
		out[c] = append(out[c], seedItem(t, f, userID, name, c, rating))
	}
	add("white tee", wardrobe.CategoryTop, 4)
	add("flannel", wardrobe.CategoryTop, 2)
	add("jeans", wardrobe.CategoryBottom, 5)
	add("chinos", wardrobe.CategoryBottom, 3)
	add("sneakers", wardrobe.CategoryShoes, 3)
	return out
}

func TestOutfitGenerateRateFlow(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "flow@example.com")
	userID := ctxutil.GetRequestData(ctx).UserID
	seedWardrobe(t, f, ctx)

	gen, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryShoes, wardrobe.CategoryBottom, wardrobe.CategoryTop})
	require.NoError(t, err)
	require.Equal(t, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryShoes}, gen.Categories)
	require.Len(t, gen.Items, 3)
	for i, it := range gen.Items {
		require.Equal(t, gen.Categories[i], it.Category)
	}
	require.False(t, gen.Rated)

	cur, err := f.outfits.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, ids(gen.Items), ids(cur.Items))

	res, err := f.outfits.Rate(ctx, 5)
	require.NoError(t, err)
	require.Equal(t, 2, res.PairsUpdated)
	require.True(t, res.Outfit.Rated)
	require.NotNil(t, res.Outfit.LastRating)
	require.Equal(t, 5, *res.Outfit.LastRating)

	dbc := dbctx.Context{Ctx: ctx}
	for i := 0; i+1 < len(gen.Items); i++ {
		row, err := f.compat.Get(dbc, userID, gen.Items[i].ID, gen.Items[i+1].ID)
		require.NoError(t, err)
		require.NotNil(t, row)
		require.InDelta(t, 0.2, row.Score, 1e-9)
		require.Equal(t, 1, row.TimesEvaluated)
	}
	for _, it := range gen.Items {
		got, err := f.items.GetByID(dbc, userID, it.ID)
		require.NoError(t, err)
		require.Equal(t, 0, got.TimesShown, "good ratings leave exposure unchanged")
	}

	_, err = f.outfits.Rate(ctx, 1)
	require.ErrorIs(t, err, ErrAlreadyRated)

	again, err := f.outfits.Regenerate(ctx)
	require.NoError(t, err)
	require.False(t, again.Rated)
	require.Nil(t, again.LastRating)
	require.Len(t, again.Items, 3)

	res, err = f.outfits.Rate(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, 2, res.PairsUpdated)
	for _, it := range again.Items {
		got, err := f.items.GetByID(dbc, userID, it.ID)
		require.NoError(t, err)
		require.Equal(t, 1, got.TimesShown)
	}
}

func TestOutfitGenerateRejectsThinRequests(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "thin@example.com")
	seedWardrobe(t, f, ctx)

	_, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop})
	requireAPIError(t, err, http.StatusUnprocessableEntity, "not_enough_categories")

	_, err = f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryTop})
	requireAPIError(t, err, http.StatusUnprocessableEntity, "not_enough_categories")

	_, err = f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryAccessory})
	require.ErrorIs(t, err, ErrNotEnoughItems)

	gen, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryAccessory})
	require.NoError(t, err)
	require.Equal(t, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom}, gen.Categories)
	require.Equal(t, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryAccessory}, gen.SelectedCategories)
}

func TestOutfitRateWithoutOutfit(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "none@example.com")

	_, err := f.outfits.Rate(ctx, 3)
	require.ErrorIs(t, err, ErrNoGeneratedOutfit)
	_, err = f.outfits.Current(ctx)
	require.ErrorIs(t, err, ErrNoGeneratedOutfit)
	_, err = f.outfits.Regenerate(ctx)
	require.ErrorIs(t, err, ErrNoGeneratedOutfit)

	_, err = f.outfits.Rate(ctx, 6)
	requireAPIError(t, err, http.StatusBadRequest, "invalid_rating")
}

func TestOutfitRateAfterItemDeletedChangesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "gone@example.com")
	userID := ctxutil.GetRequestData(ctx).UserID
	seedWardrobe(t, f, ctx)

	gen, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryShoes})
	require.NoError(t, err)
	require.NoError(t, f.itemSvc.Delete(ctx, gen.Items[2].ID))

	_, err = f.outfits.Rate(ctx, 5)
	require.ErrorIs(t, err, ErrItemsNotFound)

	dbc := dbctx.Context{Ctx: ctx}
	row, err := f.compat.Get(dbc, userID, gen.Items[0].ID, gen.Items[1].ID)
	require.NoError(t, err)
	require.NotNil(t, row)
	require.Zero(t, row.Score)
	require.Zero(t, row.TimesEvaluated)
	for _, it := range gen.Items[:2] {
		got, err := f.items.GetByID(dbc, userID, it.ID)
		require.NoError(t, err)
		require.Zero(t, got.TimesShown)
	}

	_, err = f.outfits.Current(ctx)
	require.ErrorIs(t, err, ErrItemsNotFound)
}

// hookStore runs one queued hook after each Get, in order.
type hookStore struct {
	session.Store
	mu    sync.Mutex
	hooks []func()
}

func (h *hookStore) Get(ctx context.Context, sessionID uuid.UUID) (*wardrobe.GenerationSession, error) {
	gs, err := h.Store.Get(ctx, sessionID)
	h.mu.Lock()
	var next func()
	if len(h.hooks) > 0 {
		next, h.hooks = h.hooks[0], h.hooks[1:]
	}
	h.mu.Unlock()
	if next != nil {
		next()
	}
	return gs, err
}

func TestOutfitConcurrentRatesApplyOnce(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "race@example.com")
	userID := ctxutil.GetRequestData(ctx).UserID
	seedWardrobe(t, f, ctx)

	gen, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom, wardrobe.CategoryShoes})
	require.NoError(t, err)

	// Both requests read the unrated session before either claims it.
	var bothLoaded sync.WaitGroup
	bothLoaded.Add(2)
	wait := func() {
		bothLoaded.Done()
		bothLoaded.Wait()
	}
	svc := f.outfitsWithStore(t, &hookStore{Store: f.sessions, hooks: []func(){wait, wait}})

	errs := make([]error, 2)
	var done sync.WaitGroup
	for i := range errs {
		done.Add(1)
		go func(i int) {
			defer done.Done()
			_, errs[i] = svc.Rate(ctx, 5)
		}(i)
	}
	done.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrAlreadyRated):
			rejected++
		default:
			t.Fatalf("unexpected rate error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, rejected)

	dbc := dbctx.Context{Ctx: ctx}
	for i := 0; i+1 < len(gen.Items); i++ {
		row, err := f.compat.Get(dbc, userID, gen.Items[i].ID, gen.Items[i+1].ID)
		require.NoError(t, err)
		require.NotNil(t, row)
		require.InDelta(t, 0.2, row.Score, 1e-9)
		require.Equal(t, 1, row.TimesEvaluated)
	}
}

func TestOutfitLateRateDoesNotTouchNewerOutfit(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "late@example.com")
	seedWardrobe(t, f, ctx)

	_, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom})
	require.NoError(t, err)

	var newer *GeneratedOutfit
	regenerate := func() {
		var genErr error
		newer, genErr = f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryShoes})
		require.NoError(t, genErr)
	}
	svc := f.outfitsWithStore(t, &hookStore{Store: f.sessions, hooks: []func(){regenerate}})

	_, err = svc.Rate(ctx, 4)
	requireAPIError(t, err, http.StatusConflict, "outfit_changed")

	cur, err := f.outfits.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, ids(newer.Items), ids(cur.Items))
	require.False(t, cur.Rated)
	require.Nil(t, cur.LastRating)

	_, err = f.outfits.Rate(ctx, 4)
	require.NoError(t, err)
}

func TestOutfitSessionsAreIsolated(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "iso@example.com")
	seedWardrobe(t, f, ctx)

	_, err := f.outfits.Generate(ctx, []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom})
	require.NoError(t, err)

	rd := ctxutil.GetRequestData(ctx)
	second := ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{UserID: rd.UserID, SessionID: uuid.New()})
	_, err = f.outfits.Current(second)
	require.ErrorIs(t, err, ErrNoGeneratedOutfit)

	_, err = f.outfits.Generate(context.Background(), []wardrobe.Category{wardrobe.CategoryTop, wardrobe.CategoryBottom})
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestRecommendations(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "recs@example.com")

	recs, err := f.outfits.Recommendations(ctx)
	require.NoError(t, err)
	require.Equal(t, "add_items", recs[0].Code)
	require.Contains(t, recs[0].Message, "currently 0")
	require.Equal(t, "rate_outfits", recs[len(recs)-1].Code)
	empty := 0
	for _, r := range recs {
		if r.Code == "empty_category" {
			empty++
		}
	}
	require.Equal(t, len(wardrobe.Categories), empty)

	seedWardrobe(t, f, ctx)
	recs, err = f.outfits.Recommendations(ctx)
	require.NoError(t, err)
	require.Equal(t, "add_variety", recs[0].Code)
	for _, r := range recs {
		require.NotEqual(t, "favorite_pair", r.Code)
	}
}

func TestRecommendationsNameFavoritePair(t *testing.T) {
	f := newFixture(t)
	ctx := f.login(t, "fav@example.com")
	userID := ctxutil.GetRequestData(ctx).UserID
	w := seedWardrobe(t, f, ctx)
	tee, jeans := w[wardrobe.CategoryTop][0], w[wardrobe.CategoryBottom][0]
	chinos := w[wardrobe.CategoryBottom][1]

	dbc := dbctx.Context{Ctx: ctx}
	weak, err := f.compat.GetOrCreate(dbc, userID, tee.ID, chinos.ID)
	require.NoError(t, err)
	require.NoError(t, f.compat.UpdateScore(dbc, weak.ID, 0.2, 1))

	recs, err := f.outfits.Recommendations(ctx)
	require.NoError(t, err)
	for _, r := range recs {
		require.NotEqual(t, "favorite_pair", r.Code, "a single good rating is not a favorite yet")
	}

	strong, err := f.compat.GetOrCreate(dbc, userID, jeans.ID, tee.ID)
	require.NoError(t, err)
	require.NoError(t, f.compat.UpdateScore(dbc, strong.ID, 0.4, 2))

	recs, err = f.outfits.Recommendations(ctx)
	require.NoError(t, err)
	var fav *Recommendation
	for i := range recs {
		if recs[i].Code == "favorite_pair" {
			fav = &recs[i]
		}
	}
	require.NotNil(t, fav)
	require.ElementsMatch(t, []uuid.UUID{tee.ID, jeans.ID}, fav.ItemIDs)
	require.Contains(t, fav.Message, "white tee")
	require.Contains(t, fav.Message, "jeans")
	require.Equal(t, "rate_outfits", recs[len(recs)-1].Code)
}

func TestBuildRecommendationsThinCategories(t *testing.T) {
	counts := map[wardrobe.Category]int64{
		wardrobe.CategoryTop:       4,
		wardrobe.CategoryBottom:    3,
		wardrobe.CategoryOuter:     1,
		wardrobe.CategoryDress:     1,
		wardrobe.CategoryShoes:     2,
		wardrobe.CategoryAccessory: 1,
	}
	recs := buildRecommendations(counts, 12, nil)

	var thin []wardrobe.Category
	for _, r := range recs {
		require.NotEqual(t, "rate_outfits", r.Code)
		require.NotEqual(t, "add_items", r.Code)
		if r.Code == "thin_category" {
			thin = append(thin, r.Category)
		}
	}
	require.Equal(t, []wardrobe.Category{wardrobe.CategoryOuter, wardrobe.CategoryDress, wardrobe.CategoryAccessory}, thin)
}
