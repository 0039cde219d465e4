// Package admin holds the order-management view logic: filtering and ordering
// applied on top of the cached admin order list.
package admin

import (
	"sort"
	"strconv"
	"strings"

	"github.com/secondbowl/storefront-gateway/pkg/backend"
)

// StatusAll disables status filtering.
const StatusAll = "all"

// Filter narrows orders by free-text query and status, newest first. The
// query matches case-insensitively against the order id, customer name and
// shipping recipient name. Filtering never mutates the input slice.
func Filter(orders []backend.Order, query, status string) []backend.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	status = strings.TrimSpace(status)

	out := make([]backend.Order, 0, len(orders))
	for _, order := range orders {
		if !matchesStatus(order, status) {
			continue
		}
		if !matchesQuery(order, query) {
			continue
		}
		out = append(out, order)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func matchesStatus(order backend.Order, status string) bool {
	if status == "" || strings.EqualFold(status, StatusAll) {
		return true
	}
	return strings.EqualFold(string(order.Status), status)
}

func matchesQuery(order backend.Order, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strconv.FormatInt(order.ID, 10), query) {
		return true
	}
	if strings.Contains(strings.ToLower(order.Customer), query) {
		return true
	}
	return strings.Contains(strings.ToLower(order.ShippingAddress.Name), query)
}
