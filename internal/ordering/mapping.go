// Package ordering maps gateway cart state onto the backend's order shapes.
// Everything here is pure; the checkout service owns the side effects.
package ordering

import (
	"github.com/secondbowl/storefront-gateway/internal/cart"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
)

// Pickup orders bill and ship to the restaurant itself regardless of what the
// customer typed into the address fields.
const (
	RestaurantStreet  = "14-B Main Boulevard, Gulberg III"
	RestaurantCity    = "Lahore"
	RestaurantState   = "Punjab"
	RestaurantZip     = "53720"
	RestaurantCountry = "Pakistan"
)

// MapCartLines converts cart lines into backend order items. Unit prices and
// line totals are carried verbatim; the backend re-verifies them.
func MapCartLines(lines []cart.Line) []backend.OrderItem {
	items := make([]backend.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, backend.OrderItem{
			Item: backend.Item{
				ID:    line.ItemID,
				Name:  line.Name,
				Price: line.UnitPrice,
			},
			Quantity: int64(line.Quantity),
			Total:    line.UnitPrice * int64(line.Quantity),
		})
	}
	return items
}

// Subtotal sums line totals the same way MapCartLines does, so the order
// total always equals the cart subtotal shown to the customer.
func Subtotal(lines []cart.Line) int64 {
	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// NewAddress builds a customer address, defaulting the country when the form
// leaves it blank.
func NewAddress(name, phone, street, city, state, zip, country string) backend.Address {
	if country == "" {
		country = RestaurantCountry
	}
	return backend.Address{
		Name:    name,
		Phone:   phone,
		Street:  street,
		City:    city,
		State:   state,
		Zip:     zip,
		Country: country,
	}
}

// PickupAddress is the fixed restaurant address used for both billing and
// shipping on pickup orders. The customer's name and phone are kept so staff
// can call the right person when the order is ready.
func PickupAddress(name, phone string) backend.Address {
	return backend.Address{
		Name:    name,
		Phone:   phone,
		Street:  RestaurantStreet,
		City:    RestaurantCity,
		State:   RestaurantState,
		Zip:     RestaurantZip,
		Country: RestaurantCountry,
	}
}
