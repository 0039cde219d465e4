package controllers

import (
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/internal/catalog"
	"github.com/secondbowl/storefront-gateway/pkg/currency"
)

type menuVariantResponse struct {
	Label          string `json:"label"`
	Price          int64  `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
}

type menuItemResponse struct {
	ID             int64                 `json:"id"`
	Slug           string                `json:"slug"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	Price          int64                 `json:"price,omitempty"`
	PriceFormatted string                `json:"priceFormatted,omitempty"`
	Variants       []menuVariantResponse `json:"variants,omitempty"`
}

type menuCategoryResponse struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Items       []menuItemResponse `json:"items"`
}

// Menu serves the static menu with display-ready prices.
func Menu() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := catalog.Menu()
		out := make([]menuCategoryResponse, 0, len(categories))
		for _, category := range categories {
			items := make([]menuItemResponse, 0, len(category.Items))
			for _, item := range category.Items {
				resp := menuItemResponse{
					ID:          item.ID,
					Slug:        item.Slug,
					Name:        item.Name,
					Description: item.Description,
				}
				if len(item.Variants) == 0 {
					resp.Price = item.Price
					resp.PriceFormatted = currency.FormatRupees(item.Price)
				}
				for _, variant := range item.Variants {
					resp.Variants = append(resp.Variants, menuVariantResponse{
						Label:          variant.Label,
						Price:          variant.Price,
						PriceFormatted: currency.FormatRupees(variant.Price),
					})
				}
				items = append(items, resp)
			}
			out = append(out, menuCategoryResponse{
				Name:        category.Name,
				Description: category.Description,
				Items:       items,
			})
		}
		responses.WriteSuccess(w, out)
	}
}

// Content serves the storefront copy plus the derived hours badge.
func Content() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"site":         catalog.Content(),
			"hoursSummary": catalog.HoursSummary(),
		})
	}
}
