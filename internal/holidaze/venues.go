package holidaze

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// snapshotLimit is the upstream page-size ceiling. One fetch at this limit
// feeds the whole client-side filter/sort/page pipeline, so result counts
// stay accurate across pages.
const snapshotLimit = 100

// Venues fetches the venue snapshot, newest first, with owner and booking
// expansions included.
func (c *Client) Venues(ctx context.Context) ([]Venue, *ListMeta, error) {
	path := fmt.Sprintf("/holidaze/venues?limit=%d&sort=created&sortOrder=desc&_owner=true&_bookings=true", snapshotLimit)

	var venues []Venue
	meta, err := c.do(ctx, http.MethodGet, path, "", nil, &venues)
	if err != nil {
		return nil, nil, err
	}
	return venues, meta, nil
}

// Venue fetches a single venue with its owner and bookings embedded.
func (c *Client) Venue(ctx context.Context, id string) (Venue, error) {
	var venue Venue
	path := "/holidaze/venues/" + url.PathEscape(id) + "?_owner=true&_bookings=true"
	if _, err := c.do(ctx, http.MethodGet, path, "", nil, &venue); err != nil {
		return Venue{}, err
	}
	return venue, nil
}

func (c *Client) CreateVenue(ctx context.Context, token string, req VenueRequest) (Venue, error) {
	var venue Venue
	if _, err := c.do(ctx, http.MethodPost, "/holidaze/venues", token, req, &venue); err != nil {
		return Venue{}, err
	}
	return venue, nil
}

func (c *Client) UpdateVenue(ctx context.Context, token, id string, req VenueRequest) (Venue, error) {
	var venue Venue
	if _, err := c.do(ctx, http.MethodPut, "/holidaze/venues/"+url.PathEscape(id), token, req, &venue); err != nil {
		return Venue{}, err
	}
	return venue, nil
}

func (c *Client) DeleteVenue(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/holidaze/venues/"+url.PathEscape(id), token, nil, nil)
	return err
}
