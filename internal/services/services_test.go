package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/wardrobe-backend/internal/data/repos/testutil"
	userrepo "github.com/yungbote/wardrobe-backend/internal/data/repos/user"
	wardroberepo "github.com/yungbote/wardrobe-backend/internal/data/repos/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/data/session"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
	"github.com/yungbote/wardrobe-backend/internal/modules/outfit"
	"github.com/yungbote/wardrobe-backend/internal/platform/apierr"
	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
)

type fixture struct {
	db       *gorm.DB
	users    userrepo.UserRepo
	items    wardroberepo.ClothingItemRepo
	compat   wardroberepo.CompatibilityRepo
	sessions session.Store
	engine   *outfit.Engine
	auth     AuthService
	itemSvc  ItemService
	outfits  OutfitService
	saved    SavedOutfitService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)

	f := &fixture{
		db:       db,
		users:    userrepo.NewUserRepo(db, log),
		items:    wardroberepo.NewClothingItemRepo(db, log),
		compat:   wardroberepo.NewCompatibilityRepo(db, log),
		sessions: session.NewSQLStore(db, session.DefaultTTL, log),
	}
	cfg := outfit.DefaultConfig()
	cfg.Seed = 42
	f.engine = outfit.New(outfit.Deps{Log: log, Items: f.items, Compat: f.compat, Config: cfg})

	f.auth = NewAuthService(db, log, f.users, "test-secret", time.Hour)
	f.itemSvc = NewItemService(log, f.items, nil)
	f.saved = NewSavedOutfitService(log, wardroberepo.NewOutfitRepo(db, log), f.items, f.sessions)
	f.outfits = NewOutfitService(OutfitServiceDeps{
		DB:       db,
		Log:      log,
		Items:    f.items,
		Compat:   f.compat,
		Engine:   f.engine,
		Sessions: f.sessions,
	})
	return f
}

// outfitsWithStore builds an outfit service over the fixture's database with
// a different session store.
func (f *fixture) outfitsWithStore(t *testing.T, store session.Store) OutfitService {
	t.Helper()
	return NewOutfitService(OutfitServiceDeps{
		DB:       f.db,
		Log:      testutil.Logger(t),
		Items:    f.items,
		Compat:   f.compat,
		Engine:   f.engine,
		Sessions: store,
	})
}

func (f *fixture) login(t *testing.T, email string) context.Context {
	t.Helper()
	u := testutil.SeedUser(t, context.Background(), f.db, email)
	return ctxutil.WithRequestData(context.Background(), &ctxutil.RequestData{
		UserID:    u.ID,
		SessionID: uuid.New(),
	})
}

func requireAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	require.Error(t, err)
	var ae *apierr.Error
	require.True(t, errors.As(err, &ae), "expected api error, got %v", err)
	require.Equal(t, status, ae.Status)
	require.Equal(t, code, ae.Code)
}

func seedItem(t *testing.T, f *fixture, userID uuid.UUID, name string, c wardrobe.Category, rating int) *wardrobe.ClothingItem {
	t.Helper()
	return testutil.SeedItem(t, context.Background(), f.db, userID, name, c, rating)
}

func ids(items []*wardrobe.ClothingItem) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}
