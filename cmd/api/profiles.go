package main

import (
	"context"
	"net/http"

	"holidaze/internal/cache"
	"holidaze/internal/holidaze"

	"github.com/go-chi/chi/v5"
)

// GetProfile godoc
//
//	@Summary		Get a profile
//	@Description	Returns the named profile. Profiles are cached briefly; a stale read self-heals within the freshness window.
//	@Tags			Profile
//	@Produce		json
//	@Param			name	path		string	true	"Profile name"
//	@Success		200		{object}	holidaze.Profile
//	@Failure		401		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profiles/{name} [get]
func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	identity := getIdentityFromContext(r)

	var profile holidaze.Profile
	err := app.snapshots.Fetch(r.Context(), cache.ProfilePrefix+name, &profile, func(ctx context.Context) (any, error) {
		p, err := app.upstream.Profile(ctx, identity.Token, name)
		if err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateProfilePayload struct {
	Bio          *string `json:"bio,omitempty" validate:"omitempty,max=160"`
	AvatarURL    *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	AvatarAlt    *string `json:"avatar_alt,omitempty" validate:"omitempty,max=120"`
	BannerURL    *string `json:"banner_url,omitempty" validate:"omitempty,url"`
	BannerAlt    *string `json:"banner_alt,omitempty" validate:"omitempty,max=120"`
	VenueManager *bool   `json:"venue_manager,omitempty"`
}

// UpdateProfile godoc
//
//	@Summary		Update a profile
//	@Description	Updates bio, avatar, banner or the venue-manager flag. Users may only update their own profile.
//	@Tags			Profile
//	@Accept			json
//	@Produce		json
//	@Param			name	path		string					true	"Profile name"
//	@Param			payload	body		UpdateProfilePayload	true	"Fields to change"
//	@Success		200		{object}	holidaze.Profile
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Not your profile"
//	@Security		ApiKeyAuth
//	@Router			/profiles/{name} [put]
func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	identity := getIdentityFromContext(r)

	if name != identity.Name {
		app.forbiddenResponse(w, r)
		return
	}

	var payload UpdateProfilePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	update := holidaze.ProfileUpdate{
		Bio:          payload.Bio,
		VenueManager: payload.VenueManager,
	}
	if payload.AvatarURL != nil {
		update.Avatar = &holidaze.Media{URL: *payload.AvatarURL}
		if payload.AvatarAlt != nil {
			update.Avatar.Alt = *payload.AvatarAlt
		}
	}
	if payload.BannerURL != nil {
		update.Banner = &holidaze.Media{URL: *payload.BannerURL}
		if payload.BannerAlt != nil {
			update.Banner.Alt = *payload.BannerAlt
		}
	}

	profile, err := app.upstream.UpdateProfile(r.Context(), identity.Token, name, update)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	// The cached copy no longer matches, and a venue-manager change must
	// take effect on the next management request.
	app.snapshots.Invalidate(r.Context(), cache.ProfilePrefix+name)

	if err := app.jsonResponse(w, http.StatusOK, profile); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ProfileBookings godoc
//
//	@Summary		List a profile's bookings
//	@Description	Returns the profile's upcoming and past reservations with their venues embedded.
//	@Tags			Profile
//	@Produce		json
//	@Param			name	path		string	true	"Profile name"
//	@Success		200		{array}		holidaze.Booking
//	@Failure		401		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profiles/{name}/bookings [get]
func (app *application) profileBookingsHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	identity := getIdentityFromContext(r)

	bookings, err := app.upstream.ProfileBookings(r.Context(), identity.Token, name)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, bookings); err != nil {
		app.internalServerError(w, r, err)
	}
}

// ProfileVenues godoc
//
//	@Summary		List a profile's venues
//	@Description	Returns venues managed by the profile, each with its bookings embedded so managers can see upcoming stays.
//	@Tags			Profile
//	@Produce		json
//	@Param			name	path		string	true	"Profile name"
//	@Success		200		{array}		holidaze.Venue
//	@Failure		401		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/profiles/{name}/venues [get]
func (app *application) profileVenuesHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	identity := getIdentityFromContext(r)

	venues, err := app.upstream.ProfileVenues(r.Context(), identity.Token, name)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	if err := app.jsonResponse(w, http.StatusOK, venues); err != nil {
		app.internalServerError(w, r, err)
	}
}
