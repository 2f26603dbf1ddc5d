package holidaze

import (
	"context"
	"net/http"
	"net/url"
)

// Profile fetches a profile by name, the natural key for every profile
// operation.
func (c *Client) Profile(ctx context.Context, token, name string) (Profile, error) {
	var profile Profile
	path := "/holidaze/profiles/" + url.PathEscape(name)
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token, name string, req ProfileUpdate) (Profile, error) {
	var profile Profile
	path := "/holidaze/profiles/" + url.PathEscape(name)
	if _, err := c.do(ctx, http.MethodPut, path, token, req, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// ProfileBookings lists the profile's reservations with the booked venue
// embedded for display.
func (c *Client) ProfileBookings(ctx context.Context, token, name string) ([]Booking, error) {
	var bookings []Booking
	path := "/holidaze/profiles/" + url.PathEscape(name) + "/bookings?_venue=true"
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ProfileVenues lists the venues the profile manages, bookings included so
// managers can see upcoming reservations.
func (c *Client) ProfileVenues(ctx context.Context, token, name string) ([]Venue, error) {
	var venues []Venue
	path := "/holidaze/profiles/" + url.PathEscape(name) + "/venues?_bookings=true"
	if _, err := c.do(ctx, http.MethodGet, path, token, nil, &venues); err != nil {
		return nil, err
	}
	return venues, nil
}
