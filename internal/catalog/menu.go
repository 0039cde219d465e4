// Package catalog holds the static menu and site content the storefront
// renders. Menu items carry stable numeric ids; cart lines reference those
// ids directly instead of re-deriving them from display strings.
package catalog

import (
	"strings"

	"github.com/secondbowl/storefront-gateway/internal/cart"
)

// Variant is an alternative portion option with its own price.
type Variant struct {
	Label string `json:"label"`
	Price int64  `json:"price"`
}

// Item is one orderable menu entry. Price applies when the item has no
// variants; variant prices win otherwise.
type Item struct {
	ID          int64     `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

type Category struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Items       []Item `json:"items"`
}

var menu = []Category{
	{
		Name:        "Appetizers",
		Description: "Start your meal with our delicious starters",
		Items: []Item{
			{ID: 1, Slug: "spring-rolls", Name: "Spring Rolls", Description: "Crispy vegetable spring rolls served with sweet chili sauce", Price: 450},
			{ID: 2, Slug: "pork-dumplings", Name: "Pork Dumplings", Description: "Pan-fried or steamed dumplings filled with seasoned pork", Price: 595},
			{ID: 3, Slug: "scallion-pancakes", Name: "Scallion Pancakes", Description: "Flaky, savory pancakes with fresh scallions", Price: 495},
			{ID: 4, Slug: "hot-sour-soup", Name: "Hot & Sour Soup", Description: "Traditional spicy and tangy soup with tofu and mushrooms", Price: 395},
		},
	},
	{
		Name:        "Noodles",
		Description: "Hand-pulled and freshly prepared",
		Items: []Item{
			{ID: 5, Slug: "dan-dan-noodles", Name: "Dan Dan Noodles", Description: "Spicy Sichuan noodles with minced pork and peanut sauce", Price: 895},
			{ID: 6, Slug: "beef-chow-mein", Name: "Beef Chow Mein", Description: "Stir-fried noodles with tender beef and crisp vegetables", Price: 995},
			{ID: 7, Slug: "singapore-noodles", Name: "Singapore Noodles", Description: "Curry-flavored rice noodles with shrimp and vegetables", Price: 1050},
			{ID: 8, Slug: "lo-mein", Name: "Lo Mein", Description: "Soft egg noodles with your choice of chicken, beef, or vegetables", Variants: []Variant{
				{Label: "Chicken", Price: 850},
				{Label: "Beef", Price: 950},
				{Label: "Vegetable", Price: 750},
			}},
		},
	},
	{
		Name:        "Rice Dishes",
		Description: "Served with steamed jasmine rice",
		Items: []Item{
			{ID: 9, Slug: "yangzhou-fried-rice", Name: "Yangzhou Fried Rice", Description: "Classic fried rice with shrimp, BBQ pork, and vegetables", Variants: []Variant{
				{Label: "Half", Price: 550},
				{Label: "Full", Price: 850},
			}},
			{ID: 10, Slug: "kung-pao-chicken", Name: "Kung Pao Chicken", Description: "Stir-fried chicken with peanuts, chili peppers, and vegetables", Price: 1095},
			{ID: 11, Slug: "mapo-tofu", Name: "Mapo Tofu", Description: "Silky tofu in a fiery Sichuan pepper sauce", Price: 795},
			{ID: 12, Slug: "sweet-sour-pork", Name: "Sweet & Sour Pork", Description: "Crispy pork in a tangy pineapple glaze", Price: 1150},
		},
	},
	{
		Name:        "Drinks & Desserts",
		Items: []Item{
			{ID: 13, Slug: "jasmine-tea", Name: "Jasmine Tea", Description: "Fragrant loose-leaf jasmine tea, served by the pot", Price: 250},
			{ID: 14, Slug: "mango-pudding", Name: "Mango Pudding", Description: "Chilled mango pudding with evaporated milk", Price: 395},
		},
	},
}

// Menu returns the full menu in display order.
func Menu() []Category {
	return menu
}

// LineID derives the composite cart-line identifier from an item and an
// optional variant label. Display/dedup key only; never parsed back.
func LineID(item Item, variantLabel string) string {
	if variantLabel == "" {
		return item.Slug
	}
	return item.Slug + "-" + slugify(variantLabel)
}

// Resolve maps a menu selection onto a cart line. The second return is false
// when the slug or variant label does not exist.
func Resolve(slug, variantLabel string) (cart.Line, bool) {
	for _, category := range menu {
		for _, item := range category.Items {
			if item.Slug != slug {
				continue
			}
			if len(item.Variants) == 0 {
				if variantLabel != "" {
					return cart.Line{}, false
				}
				return cart.Line{
					ID:        LineID(item, ""),
					ItemID:    item.ID,
					Name:      item.Name,
					UnitPrice: item.Price,
				}, true
			}
			for _, variant := range item.Variants {
				if strings.EqualFold(variant.Label, variantLabel) {
					return cart.Line{
						ID:        LineID(item, variant.Label),
						ItemID:    item.ID,
						Name:      item.Name + " (" + variant.Label + ")",
						UnitPrice: variant.Price,
					}, true
				}
			}
			return cart.Line{}, false
		}
	}
	return cart.Line{}, false
}

func slugify(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(value)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
