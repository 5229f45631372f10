package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/wardrobe-backend/internal/domain/user"
	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, email string) *user.User {
	tb.Helper()
	u := &user.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedItem(tb testing.TB, ctx context.Context, tx *gorm.DB, userID uuid.UUID, name string, category wardrobe.Category, rating int) *wardrobe.ClothingItem {
	tb.Helper()
	it := &wardrobe.ClothingItem{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Category: category,
		Occasion: "any",
		Rating:   rating,
	}
	if err := tx.WithContext(ctx).Create(it).Error; err != nil {
		tb.Fatalf("seed item: %v", err)
	}
	return it
}

func SeedCompatibility(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, a, b uuid.UUID, score float64) *wardrobe.Compatibility {
	tb.Helper()
	i1, i2 := wardrobe.CanonicalPair(a, b)
	row := &wardrobe.Compatibility{
		ID:      uuid.New(),
		UserID:  userID,
		Item1ID: i1,
		Item2ID: i2,
		Score:   score,
	}
	if err := tx.WithContext(ctx).Create(row).Error; err != nil {
		tb.Fatalf("seed compatibility: %v", err)
	}
	return row
}
