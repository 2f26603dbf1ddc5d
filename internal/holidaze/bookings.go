package holidaze

import (
	"context"
	"net/http"
	"net/url"
)

// CreateBooking records a reservation intent upstream. Overlap against other
// confirmed bookings is enforced server-side; callers only pre-validate the
// shape of the request.
func (c *Client) CreateBooking(ctx context.Context, token string, req BookingRequest) (Booking, error) {
	var booking Booking
	if _, err := c.do(ctx, http.MethodPost, "/holidaze/bookings", token, req, &booking); err != nil {
		return Booking{}, err
	}
	return booking, nil
}

// DeleteBooking cancels a reservation.
func (c *Client) DeleteBooking(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/holidaze/bookings/"+url.PathEscape(id), token, nil, nil)
	return err
}
