package user

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/wardrobe-backend/internal/data/repos/testutil"
	types "github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/platform/dbctx"
)

func TestUserRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewUserRepo(db, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	created, err := repo.Create(dbc, []*types.User{
		{
			Email:     " UserRepo@Example.com ",
			Password:  "pw",
			FirstName: "A",
			LastName:  "B",
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 1 || created[0].ID == uuid.Nil {
		t.Fatalf("Create: unexpected result: %+v", created)
	}
	if created[0].Email != "userrepo@example.com" {
		t.Fatalf("Create: email not normalized: %q", created[0].Email)
	}

	gotByIDs, err := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(gotByIDs) != 1 || gotByIDs[0].ID != created[0].ID {
		t.Fatalf("GetByIDs: unexpected result: %+v", gotByIDs)
	}

	got, err := repo.GetByEmail(dbc, "USERREPO@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got == nil || got.ID != created[0].ID {
		t.Fatalf("GetByEmail: unexpected result: %+v", got)
	}
	if missing, err := repo.GetByEmail(dbc, "nobody@example.com"); err != nil || missing != nil {
		t.Fatalf("GetByEmail (missing): got=%v err=%v", missing, err)
	}

	exists, err := repo.EmailExists(dbc, created[0].Email)
	if err != nil {
		t.Fatalf("EmailExists: %v", err)
	}
	if !exists {
		t.Fatalf("EmailExists: expected true")
	}
	exists, err = repo.EmailExists(dbc, "does-not-exist@example.com")
	if err != nil {
		t.Fatalf("EmailExists (missing): %v", err)
	}
	if exists {
		t.Fatalf("EmailExists (missing): expected false")
	}

	if err := repo.UpdateName(dbc, created[0].ID, "C", "D"); err != nil {
		t.Fatalf("UpdateName: %v", err)
	}
	rows, _ := repo.GetByIDs(dbc, []uuid.UUID{created[0].ID})
	if len(rows) != 1 || rows[0].FirstName != "C" || rows[0].LastName != "D" {
		t.Fatalf("UpdateName verify: %+v", rows)
	}
}
