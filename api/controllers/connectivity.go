package controllers

import (
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/internal/connectivity"
)

// ConnectivityReader exposes the last observed backend reachability.
type ConnectivityReader interface {
	State() connectivity.State
}

// ConnectivityStatus feeds the storefront's status banner.
func ConnectivityStatus(monitor ConnectivityReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]connectivity.State{"backend": monitor.State()})
	}
}
