package wardrobe

import "strings"

type Category string

const (
	CategoryOuter     Category = "outer"
	CategoryDress     Category = "dress"
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryShoes     Category = "shoes"
	CategoryAccessory Category = "accessory"
)

// Categories lists the closed set in display order.
var Categories = []Category{
	CategoryTop,
	CategoryBottom,
	CategoryOuter,
	CategoryDress,
	CategoryShoes,
	CategoryAccessory,
}

var categoryLabels = map[Category]string{
	CategoryTop:       "Top",
	CategoryBottom:    "Bottom",
	CategoryOuter:     "Outerwear",
	CategoryDress:     "Suit/Dress",
	CategoryShoes:     "Shoes",
	CategoryAccessory: "Accessories",
}

func ParseCategory(raw string) Category {
	return Category(strings.ToLower(strings.TrimSpace(raw)))
}

func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}
