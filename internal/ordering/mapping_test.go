package ordering

import (
	"testing"

	"github.com/secondbowl/storefront-gateway/internal/cart"
)

func TestMapCartLinesCarriesExplicitItemID(t *testing.T) {
	lines := []cart.Line{
		{ID: "yangzhou-fried-rice-half", ItemID: 9, Name: "Yangzhou Fried Rice (Half)", UnitPrice: 550, Quantity: 2},
		{ID: "dan-dan-noodles", ItemID: 5, Name: "Dan Dan Noodles", UnitPrice: 895, Quantity: 1},
	}

	items := MapCartLines(lines)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Item.ID != 9 {
		t.Fatalf("variant line must map to its catalog item id, got %d", items[0].Item.ID)
	}
	if items[0].Total != 1100 {
		t.Fatalf("unexpected line total %d", items[0].Total)
	}
	if items[1].Quantity != 1 || items[1].Item.Price != 895 {
		t.Fatalf("unexpected second item %+v", items[1])
	}
}

func TestSubtotalMatchesMappedItemTotals(t *testing.T) {
	lines := []cart.Line{
		{ItemID: 9, UnitPrice: 850, Quantity: 3},
		{ItemID: 5, UnitPrice: 895, Quantity: 2},
	}

	var mapped int64
	for _, item := range MapCartLines(lines) {
		mapped += item.Total
	}
	if got := Subtotal(lines); got != mapped {
		t.Fatalf("subtotal %d diverged from mapped totals %d", got, mapped)
	}
	if got := Subtotal(lines); got != 4340 {
		t.Fatalf("unexpected subtotal %d", got)
	}
}

func TestMapCartLinesEmpty(t *testing.T) {
	if items := MapCartLines(nil); len(items) != 0 {
		t.Fatalf("expected no items, got %d", len(items))
	}
}

func TestNewAddressDefaultsCountry(t *testing.T) {
	addr := NewAddress("Ayesha Khan", "0300-1234567", "House 12, Street 4", "Lahore", "Punjab", "54000", "")
	if addr.Country != "Pakistan" {
		t.Fatalf("expected default country, got %q", addr.Country)
	}

	addr = NewAddress("Ayesha Khan", "0300-1234567", "House 12, Street 4", "Dubai", "Dubai", "00000", "UAE")
	if addr.Country != "UAE" {
		t.Fatalf("explicit country must be kept, got %q", addr.Country)
	}
}

func TestPickupAddressIgnoresCustomerLocation(t *testing.T) {
	addr := PickupAddress("Ayesha Khan", "0300-1234567")
	if addr.Name != "Ayesha Khan" || addr.Phone != "0300-1234567" {
		t.Fatalf("pickup address must keep contact details, got %+v", addr)
	}
	if addr.City != RestaurantCity || addr.Zip != RestaurantZip || addr.Country != RestaurantCountry {
		t.Fatalf("pickup address must point at the restaurant, got %+v", addr)
	}
}
