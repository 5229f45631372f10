package wardrobe

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/data/repos/testutil"
	types "github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

func TestClothingItemRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewClothingItemRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "itemrepo@example.com")
	other := testutil.SeedUser(t, ctx, tx, "itemrepo-other@example.com")

	created, err := repo.Create(dbc, []*types.ClothingItem{
		{UserID: u.ID, Name: "tee", Category: types.CategoryTop, Season: "summer,spring"},
		{UserID: u.ID, Name: "jeans", Category: types.CategoryBottom, Rating: 4},
		{UserID: u.ID, Name: "chinos", Category: types.CategoryBottom, Rating: 2},
		{UserID: other.ID, Name: "coat", Category: types.CategoryOuter, Rating: 5},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 4 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected: %+v", created)
	}
	if created[0].Rating != types.DefaultRating {
		t.Fatalf("Create: expected default rating, got %d", created[0].Rating)
	}
	tee, jeans, chinos, coat := created[0], created[1], created[2], created[3]

	if got, err := repo.GetByID(dbc, u.ID, tee.ID); err != nil || got == nil || got.Name != "tee" {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if got, err := repo.GetByID(dbc, u.ID, coat.ID); err != nil || got != nil {
		t.Fatalf("GetByID (foreign owner): got=%v err=%v", got, err)
	}

	rows, err := repo.GetByIDsForUser(dbc, u.ID, []uuid.UUID{tee.ID, coat.ID, jeans.ID})
	if err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDsForUser: err=%v len=%d", err, len(rows))
	}

	bottoms, err := repo.ListByUserAndCategory(dbc, u.ID, types.CategoryBottom)
	if err != nil || len(bottoms) != 2 {
		t.Fatalf("ListByUserAndCategory: err=%v len=%d", err, len(bottoms))
	}
	top := types.CategoryTop
	if rows, err := repo.ListByUser(dbc, u.ID, ClothingItemFilter{Category: &top}); err != nil || len(rows) != 1 {
		t.Fatalf("ListByUser(category): err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListByUser(dbc, u.ID, ClothingItemFilter{Season: "summer"}); err != nil || len(rows) != 1 {
		t.Fatalf("ListByUser(season): err=%v len=%d", err, len(rows))
	}

	counts, err := repo.CountByCategory(dbc, u.ID)
	if err != nil {
		t.Fatalf("CountByCategory: %v", err)
	}
	if counts[types.CategoryTop] != 1 || counts[types.CategoryBottom] != 2 || counts[types.CategoryOuter] != 0 {
		t.Fatalf("CountByCategory: unexpected: %v", counts)
	}

	present, err := repo.CategoriesWithItems(dbc, u.ID, []types.Category{types.CategoryShoes, types.CategoryBottom, types.CategoryTop})
	if err != nil {
		t.Fatalf("CategoriesWithItems: %v", err)
	}
	if len(present) != 2 || present[0] != types.CategoryBottom || present[1] != types.CategoryTop {
		t.Fatalf("CategoriesWithItems: unexpected: %v", present)
	}

	ids := []uuid.UUID{jeans.ID, chinos.ID}
	if err := repo.IncrementTimesShown(dbc, u.ID, ids); err != nil {
		t.Fatalf("IncrementTimesShown: %v", err)
	}
	if err := repo.IncrementTimesShown(dbc, u.ID, []uuid.UUID{jeans.ID}); err != nil {
		t.Fatalf("IncrementTimesShown: %v", err)
	}
	if err := repo.DecrementTimesShown(dbc, u.ID, ids); err != nil {
		t.Fatalf("DecrementTimesShown: %v", err)
	}
	if err := repo.DecrementTimesShown(dbc, u.ID, ids); err != nil {
		t.Fatalf("DecrementTimesShown: %v", err)
	}
	if err := repo.DecrementTimesShown(dbc, u.ID, ids); err != nil {
		t.Fatalf("DecrementTimesShown: %v", err)
	}
	after, _ := repo.GetByIDsForUser(dbc, u.ID, ids)
	for _, it := range after {
		if it.TimesShown != 0 {
			t.Fatalf("times_shown should floor at 0, got %d for %s", it.TimesShown, it.Name)
		}
	}

	if err := repo.UpdateFields(dbc, u.ID, tee.ID, map[string]interface{}{"rating": 5}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if got, _ := repo.GetByID(dbc, u.ID, tee.ID); got == nil || got.Rating != 5 {
		t.Fatalf("UpdateFields verify: %+v", got)
	}
}

func TestClothingItemRepoDeleteCascadesCompatibility(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	items := NewClothingItemRepo(db, testutil.Logger(t))
	compat := NewCompatibilityRepo(db, testutil.Logger(t))

	u := testutil.SeedUser(t, ctx, tx, "cascade@example.com")
	a := testutil.SeedItem(t, ctx, tx, u.ID, "a", types.CategoryTop, 3)
	b := testutil.SeedItem(t, ctx, tx, u.ID, "b", types.CategoryBottom, 3)
	c := testutil.SeedItem(t, ctx, tx, u.ID, "c", types.CategoryShoes, 3)
	testutil.SeedCompatibility(t, ctx, tx, u.ID, a.ID, b.ID, 0.4)
	testutil.SeedCompatibility(t, ctx, tx, u.ID, b.ID, c.ID, 0.1)
	testutil.SeedCompatibility(t, ctx, tx, u.ID, a.ID, c.ID, -0.2)

	ok, err := items.Delete(dbc, u.ID, b.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	n, err := compat.CountByUser(dbc, u.ID)
	if err != nil {
		t.Fatalf("CountByUser: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 compatibility row after cascade, got %d", n)
	}
	if row, _ := compat.Get(dbc, u.ID, c.ID, a.ID); row == nil {
		t.Fatalf("unrelated pair should survive")
	}

	ok, err = items.Delete(dbc, u.ID, b.ID)
	if err != nil || ok {
		t.Fatalf("Delete (missing): ok=%v err=%v", ok, err)
	}
}
