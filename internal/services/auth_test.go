package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
)

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u := &user.User{Email: "Ada@Example.com", Password: "hunter22", FirstName: "Ada", LastName: "L"}
	require.NoError(t, f.auth.RegisterUser(ctx, u))
	require.NotEqual(t, "hunter22", u.Password)

	err := f.auth.RegisterUser(ctx, &user.User{Email: "ada@example.com", Password: "x", FirstName: "A", LastName: "B"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = f.auth.LoginUser(ctx, "ada@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidLogin)

	tok1, err := f.auth.LoginUser(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)
	tok2, err := f.auth.LoginUser(ctx, "ada@example.com", "hunter22")
	require.NoError(t, err)

	c1, err := f.auth.SetContextFromToken(ctx, tok1)
	require.NoError(t, err)
	c2, err := f.auth.SetContextFromToken(ctx, tok2)
	require.NoError(t, err)

	rd1, rd2 := ctxutil.GetRequestData(c1), ctxutil.GetRequestData(c2)
	require.NotNil(t, rd1)
	require.Equal(t, u.ID, rd1.UserID)
	require.Equal(t, rd1.UserID, rd2.UserID)
	require.NotEqual(t, rd1.SessionID, rd2.SessionID, "each login opens its own session")
}

func TestAuthRejectsExpiredAndForeignTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.auth.RegisterUser(ctx, &user.User{Email: "b@example.com", Password: "pw123456", FirstName: "B", LastName: "C"}))

	tok, err := f.auth.LoginUser(ctx, "b@example.com", "pw123456")
	require.NoError(t, err)

	as := f.auth.(*authService)
	as.now = func() time.Time { return time.Now().Add(2 * as.accessTTL) }
	_, err = f.auth.SetContextFromToken(ctx, tok)
	require.Error(t, err)

	other := NewAuthService(f.db, as.log, f.users, "another-secret", time.Hour)
	_, err = other.SetContextFromToken(ctx, tok)
	require.Error(t, err)
}
