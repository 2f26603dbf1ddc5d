package main

import (
	"context"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"holidaze/internal/cache"
	"holidaze/internal/holidaze"
	"holidaze/internal/venue"

	"github.com/go-chi/chi/v5"
)

// ListVenues godoc
//
//	@Summary		Browse venues
//	@Description	Returns one page of venues after search, filtering and sorting over the normalized upstream snapshot.
//	@Tags			Venue
//	@Produce		json
//	@Param			q			query		string	false	"Free-text search over name, description and location"
//	@Param			cities		query		string	false	"Comma-separated city names"
//	@Param			ratings		query		string	false	"Comma-separated integer rating buckets (1-5)"
//	@Param			amenities	query		string	false	"Comma-separated subset of wifi,parking,breakfast,pets; all must be present"
//	@Param			max_price	query		number	false	"Inclusive price ceiling"
//	@Param			sort		query		string	false	"latest, oldest, cheapest or most_expensive"	default(latest)
//	@Param			page		query		int		false	"1-based page number"							default(1)
//	@Success		200			{object}	venue.Page
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse	"Upstream unreachable"
//	@Router			/venues [get]
func (app *application) listVenuesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := venue.Filter{
		Search:    q.Get("q"),
		Cities:    splitList(q.Get("cities")),
		Amenities: splitList(q.Get("amenities")),
	}

	for _, raw := range splitList(q.Get("ratings")) {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 0 || rating > 5 {
			app.badRequestResponse(w, r, errors.New("ratings must be integers between 0 and 5"))
			return
		}
		filter.Ratings = append(filter.Ratings, rating)
	}

	if raw := q.Get("max_price"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil || maxPrice < 0 {
			app.badRequestResponse(w, r, errors.New("max_price must be a non-negative number"))
			return
		}
		filter.MaxPrice = maxPrice
	}

	page := 1
	if raw := q.Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("page must be an integer"))
			return
		}
		page = parsed
	}

	sortMode := q.Get("sort")
	if sortMode == "" {
		sortMode = venue.SortLatest
	}

	raw, err := app.fetchVenueSnapshot(r.Context())
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	venues := venue.NormalizeList(raw, time.Now())
	venues = filter.Apply(venues)
	venues = venue.Sort(venues, sortMode)
	result := venue.Paginate(venues, page)

	if err := app.jsonResponse(w, http.StatusOK, result); err != nil {
		app.internalServerError(w, r, err)
	}
}

// GetVenue godoc
//
//	@Summary		Get a single venue
//	@Description	Returns the venue at full fidelity: complete media list, owner, bookings and counts.
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	venue.Venue
//	@Failure		404		{object}	ErrorResponse
//	@Router			/venues/{venueID} [get]
func (app *application) getVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	raw, err := app.upstream.Venue(r.Context(), venueID)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	detail := venue.NormalizeDetail(raw, time.Now())

	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

type availabilityResponse struct {
	VenueID     string   `json:"venue_id"`
	BookedDates []string `json:"booked_dates"`
}

// VenueAvailability godoc
//
//	@Summary		List booked dates for a venue
//	@Description	Expands the venue's booking ranges (inclusive of both ends) into the set of dates a date picker should disable. Overlap enforcement itself stays upstream.
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path		string	true	"Venue ID"
//	@Success		200		{object}	availabilityResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/venues/{venueID}/availability [get]
func (app *application) venueAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	raw, err := app.upstream.Venue(r.Context(), venueID)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	detail := venue.NormalizeDetail(raw, time.Now())

	booked := make(map[string]struct{})
	for _, b := range detail.Bookings {
		from := b.DateFrom.UTC().Truncate(24 * time.Hour)
		to := b.DateTo.UTC().Truncate(24 * time.Hour)
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			booked[d.Format("2006-01-02")] = struct{}{}
		}
	}

	dates := make([]string, 0, len(booked))
	for d := range booked {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	resp := availabilityResponse{
		VenueID:     venueID,
		BookedDates: dates,
	}

	if err := app.jsonResponse(w, http.StatusOK, resp); err != nil {
		app.internalServerError(w, r, err)
	}
}

type MediaPayload struct {
	URL string `json:"url" validate:"required,url"`
	Alt string `json:"alt" validate:"max=120"`
}

type CreateVenuePayload struct {
	Name        string         `json:"name" validate:"required,max=100"`
	Description string         `json:"description" validate:"required,min=10,max=1000"`
	Media       []MediaPayload `json:"media,omitempty" validate:"max=8,dive"`
	Price       float64        `json:"price" validate:"required,gt=0"`
	MaxGuests   int            `json:"maxGuests" validate:"required,min=1,max=100"`
	Rating      float64        `json:"rating,omitempty" validate:"min=0,max=5"`
	Wifi        bool           `json:"wifi"`
	Parking     bool           `json:"parking"`
	Breakfast   bool           `json:"breakfast"`
	Pets        bool           `json:"pets"`
	Address     string         `json:"address,omitempty" validate:"max=255"`
	City        string         `json:"city,omitempty" validate:"max=100"`
	Zip         string         `json:"zip,omitempty" validate:"max=20"`
	Country     string         `json:"country,omitempty" validate:"max=100"`
	Continent   string         `json:"continent,omitempty" validate:"max=100"`
	Lat         float64        `json:"lat,omitempty" validate:"min=-90,max=90"`
	Lng         float64        `json:"lng,omitempty" validate:"min=-180,max=180"`
}

func (p CreateVenuePayload) toRequest() holidaze.VenueRequest {
	req := holidaze.VenueRequest{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		MaxGuests:   p.MaxGuests,
		Rating:      p.Rating,
		Meta: &holidaze.Meta{
			Wifi:      p.Wifi,
			Parking:   p.Parking,
			Breakfast: p.Breakfast,
			Pets:      p.Pets,
		},
		Location: &holidaze.Location{
			Address:   p.Address,
			City:      p.City,
			Zip:       p.Zip,
			Country:   p.Country,
			Continent: p.Continent,
			Lat:       p.Lat,
			Lng:       p.Lng,
		},
	}
	for _, m := range p.Media {
		req.Media = append(req.Media, holidaze.Media{URL: m.URL, Alt: m.Alt})
	}
	return req
}

// CreateVenue godoc
//
//	@Summary		Create a venue
//	@Description	Creates a venue upstream on behalf of the signed-in venue manager.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateVenuePayload	true	"Venue details"
//	@Success		201		{object}	venue.Venue
//	@Failure		400		{object}	ErrorResponse
//	@Failure		401		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse	"Not a venue manager"
//	@Security		ApiKeyAuth
//	@Router			/venues [post]
func (app *application) createVenueHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	identity := getIdentityFromContext(r)

	created, err := app.upstream.CreateVenue(r.Context(), identity.Token, payload.toRequest())
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	// The list snapshot no longer reflects upstream.
	app.snapshots.Invalidate(r.Context(), cache.KeyVenues)

	detail := venue.NormalizeDetail(created, time.Now())

	if err := app.jsonResponse(w, http.StatusCreated, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

// UpdateVenue godoc
//
//	@Summary		Update a venue
//	@Description	Replaces the venue's details upstream. Only the managing profile may edit; upstream enforces ownership.
//	@Tags			Venue
//	@Accept			json
//	@Produce		json
//	@Param			venueID	path		string				true	"Venue ID"
//	@Param			payload	body		CreateVenuePayload	true	"Venue details"
//	@Success		200		{object}	venue.Venue
//	@Failure		400		{object}	ErrorResponse
//	@Failure		403		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID} [put]
func (app *application) updateVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")

	var payload CreateVenuePayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	identity := getIdentityFromContext(r)

	updated, err := app.upstream.UpdateVenue(r.Context(), identity.Token, venueID, payload.toRequest())
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	app.snapshots.Invalidate(r.Context(), cache.KeyVenues)

	detail := venue.NormalizeDetail(updated, time.Now())

	if err := app.jsonResponse(w, http.StatusOK, detail); err != nil {
		app.internalServerError(w, r, err)
	}
}

// DeleteVenue godoc
//
//	@Summary		Delete a venue
//	@Tags			Venue
//	@Produce		json
//	@Param			venueID	path	string	true	"Venue ID"
//	@Success		204
//	@Failure		403	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/venues/{venueID} [delete]
func (app *application) deleteVenueHandler(w http.ResponseWriter, r *http.Request) {
	venueID := chi.URLParam(r, "venueID")
	identity := getIdentityFromContext(r)

	if err := app.upstream.DeleteVenue(r.Context(), identity.Token, venueID); err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	app.snapshots.Invalidate(r.Context(), cache.KeyVenues)

	w.WriteHeader(http.StatusNoContent)
}

// fetchVenueSnapshot reads the raw venue snapshot through the cache. Filters,
// sorting and pagination all run over this one fetch, so result counts stay
// accurate across pages.
func (app *application) fetchVenueSnapshot(ctx context.Context) ([]holidaze.Venue, error) {
	var raw []holidaze.Venue
	err := app.snapshots.Fetch(ctx, cache.KeyVenues, &raw, func(ctx context.Context) (any, error) {
		venues, _, err := app.upstream.Venues(ctx)
		if err != nil {
			return nil, err
		}
		return venues, nil
	})
	return raw, err
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
