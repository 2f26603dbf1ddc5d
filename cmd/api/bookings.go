package main

import (
	"errors"
	"net/http"
	"time"

	"holidaze/internal/cache"
	"holidaze/internal/holidaze"

	"github.com/go-chi/chi/v5"
)

const bookingDateLayout = "2006-01-02"

type CreateBookingPayload struct {
	VenueID  string `json:"venue_id" validate:"required"`
	DateFrom string `json:"date_from" validate:"required,datetime=2006-01-02"`
	DateTo   string `json:"date_to" validate:"required,datetime=2006-01-02"`
	Guests   int    `json:"guests" validate:"required,min=1"`
}

// CreateBooking godoc
//
//	@Summary		Book a venue
//	@Description	Creates a reservation upstream for the signed-in user. Dates are calendar days and are sent upstream as UTC midnight. Overlap conflicts come back from upstream as-is.
//	@Tags			Booking
//	@Accept			json
//	@Produce		json
//	@Param			payload	body		CreateBookingPayload	true	"Booking details"
//	@Success		201		{object}	holidaze.Booking
//	@Failure		400		{object}	ErrorResponse	"Invalid dates or guest count"
//	@Failure		401		{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/bookings [post]
func (app *application) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var payload CreateBookingPayload
	if err := readJSON(w, r, &payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(payload); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	from, err := time.ParseInLocation(bookingDateLayout, payload.DateFrom, time.UTC)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date_from must be a YYYY-MM-DD date"))
		return
	}
	to, err := time.ParseInLocation(bookingDateLayout, payload.DateTo, time.UTC)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("date_to must be a YYYY-MM-DD date"))
		return
	}

	// Reversed ranges are rejected here; upstream never sees them.
	if from.After(to) {
		app.badRequestResponse(w, r, errors.New("date_from must not be after date_to"))
		return
	}

	identity := getIdentityFromContext(r)

	req := holidaze.BookingRequest{
		VenueID:  payload.VenueID,
		DateFrom: from.Format("2006-01-02T15:04:05.000Z"),
		DateTo:   to.Format("2006-01-02T15:04:05.000Z"),
		Guests:   payload.Guests,
	}

	booking, err := app.upstream.CreateBooking(r.Context(), identity.Token, req)
	if err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	// Embedded bookings in the snapshot are stale now.
	app.snapshots.Invalidate(r.Context(), cache.KeyVenues)

	if err := app.jsonResponse(w, http.StatusCreated, booking); err != nil {
		app.internalServerError(w, r, err)
	}
}

// CancelBooking godoc
//
//	@Summary		Cancel a booking
//	@Description	Deletes the reservation upstream. Upstream enforces that only the booking's owner may cancel it.
//	@Tags			Booking
//	@Produce		json
//	@Param			bookingID	path	string	true	"Booking ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Security		ApiKeyAuth
//	@Router			/bookings/{bookingID} [delete]
func (app *application) cancelBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "bookingID")
	identity := getIdentityFromContext(r)

	if err := app.upstream.DeleteBooking(r.Context(), identity.Token, bookingID); err != nil {
		app.upstreamErrorResponse(w, r, err)
		return
	}

	app.snapshots.Invalidate(r.Context(), cache.KeyVenues)

	w.WriteHeader(http.StatusNoContent)
}
