package outfit

import (
	"sort"

	"github.com/yungbote/wardrobe-backend/internal/domain/wardrobe"
)

// UnknownCategoryRank places unrecognized categories after every known one.
const UnknownCategoryRank = 7

// Assembly order: outer layers first, accessories last. Each pick is
// weighted against the item picked just before it.
var categoryRank = map[wardrobe.Category]int{
	wardrobe.CategoryOuter:     1,
	wardrobe.CategoryDress:     2,
	wardrobe.CategoryTop:       3,
	wardrobe.CategoryBottom:    4,
	wardrobe.CategoryShoes:     5,
	wardrobe.CategoryAccessory: 6,
}

func Rank(c wardrobe.Category) int {
	if r, ok := categoryRank[c]; ok {
		return r
	}
	return UnknownCategoryRank
}

// OrderCategories drops duplicates and returns the categories in assembly
// order. Categories of equal rank keep their input order.
func OrderCategories(categories []wardrobe.Category) []wardrobe.Category {
	seen := make(map[wardrobe.Category]bool, len(categories))
	out := make([]wardrobe.Category, 0, len(categories))
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Rank(out[i]) < Rank(out[j])
	})
	return out
}
