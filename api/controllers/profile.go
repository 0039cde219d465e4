package controllers

import (
	"context"
	"net/http"

	"github.com/secondbowl/storefront-gateway/api/responses"
	"github.com/secondbowl/storefront-gateway/api/validators"
	"github.com/secondbowl/storefront-gateway/pkg/backend"
	"github.com/secondbowl/storefront-gateway/pkg/logger"
)

// ProfileService is the caller-scoped profile surface.
type ProfileService interface {
	GetCallerProfile(ctx context.Context) (*backend.UserProfile, error)
	SaveCallerProfile(ctx context.Context, profile backend.UserProfile) error
	GetCallerRole(ctx context.Context) (backend.Role, error)
	InitializeCaller(ctx context.Context) error
}

type profileResponse struct {
	Profile *backend.UserProfile `json:"profile"`
	Exists  bool                 `json:"exists"`
}

// ProfileFetch returns the caller's profile. A missing profile is not an
// error; the client uses it to open the profile-setup flow.
func ProfileFetch(svc ProfileService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profile, err := svc.GetCallerProfile(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileResponse{Profile: profile, Exists: profile != nil})
	}
}

type saveProfileRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
}

// ProfileSave creates or updates the caller's profile.
func ProfileSave(svc ProfileService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload saveProfileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile := backend.UserProfile{Name: payload.Name, Phone: payload.Phone, Location: payload.Location}
		if err := svc.SaveCallerProfile(r.Context(), profile); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, profileResponse{Profile: &profile, Exists: true})
	}
}

// ProfileInitialize runs the first-login registration flow.
func ProfileInitialize(svc ProfileService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.InitializeCaller(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "initialized"})
	}
}

// CallerRole reports the caller's server-assigned role. Guests get "guest"
// without a backend round trip.
func CallerRole(svc ProfileService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, err := svc.GetCallerRole(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]backend.Role{"role": role})
	}
}
