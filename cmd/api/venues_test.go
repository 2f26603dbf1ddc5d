package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"holidaze/internal/holidaze"
	"holidaze/internal/ratelimiter"
	"holidaze/internal/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUpstreamVenues() []holidaze.Venue {
	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []holidaze.Venue{
		{
			ID:          "v1",
			Name:        "Fjord Cabin",
			Description: "A quiet cabin by the fjord",
			Media:       []holidaze.Media{{URL: "https://img.example/1.jpg", Alt: "cabin"}, {URL: "https://img.example/2.jpg", Alt: "view"}},
			Price:       120,
			MaxGuests:   4,
			Rating:      4.6,
			Created:     base.AddDate(0, 0, 2),
			Updated:     base.AddDate(0, 0, 2),
			Meta:        holidaze.Meta{Wifi: true, Parking: true},
			Location:    holidaze.Location{Address: "Fjordveien 1", City: "Oslo", Country: "Norway"},
		},
		{
			ID:        "v2",
			Name:      "", // blank on purpose, the pipeline substitutes a placeholder
			Price:     300,
			MaxGuests: 2,
			Rating:    3.2,
			Created:   base.AddDate(0, 0, 1),
			Updated:   base.AddDate(0, 0, 1),
			Location:  holidaze.Location{City: "Bergen", Country: "Norway"},
		},
		{
			ID:          "v3",
			Name:        "City Loft",
			Description: "Downtown loft near everything",
			Price:       180,
			MaxGuests:   3,
			Rating:      4.4,
			Created:     base,
			Updated:     base,
			Meta:        holidaze.Meta{Wifi: true},
			Location:    holidaze.Location{Address: "Storgata 5", City: "Oslo", Country: "Norway"},
		},
	}
}

func newVenueUpstream(t *testing.T, hits *int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /holidaze/venues", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			*hits++
		}
		venues := sampleUpstreamVenues()
		upstreamEnvelope(t, w, http.StatusOK, venues, &holidaze.ListMeta{
			CurrentPage: 1, PageCount: 1, TotalCount: len(venues),
		})
	})
	mux.HandleFunc("GET /holidaze/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, v := range sampleUpstreamVenues() {
			if v.ID == r.PathValue("id") {
				upstreamEnvelope(t, w, http.StatusOK, v, nil)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"errors":[{"message":"No venue with such ID"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListVenuesPipeline(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	t.Run("default listing is latest-first", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeData[venue.Page](t, rr)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "v1", page.Items[0].ID)
		assert.Equal(t, "v3", page.Items[2].ID)
		assert.Equal(t, 1, page.Number)
		assert.Equal(t, 3, page.TotalCount)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("blank fields are repaired", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeData[venue.Page](t, rr)
		var unnamed *venue.Venue
		for i := range page.Items {
			if page.Items[i].ID == "v2" {
				unnamed = &page.Items[i]
			}
		}
		require.NotNil(t, unnamed)
		assert.Equal(t, venue.PlaceholderName, unnamed.Name)
		assert.Equal(t, venue.PlaceholderDescription, unnamed.Description)
		require.Len(t, unnamed.Media, 1)
		assert.Equal(t, venue.PlaceholderImageURL, unnamed.Media[0].URL)
	})

	t.Run("listing keeps one image per venue", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
		page := decodeData[venue.Page](t, rr)
		for _, v := range page.Items {
			assert.Len(t, v.Media, 1, "venue %s", v.ID)
		}
	})

	t.Run("city filter with price ceiling", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues?cities=Oslo&max_price=150", nil), mux)
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeData[venue.Page](t, rr)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "v1", page.Items[0].ID)
	})

	t.Run("cheapest sort", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues?sort=cheapest", nil), mux)
		page := decodeData[venue.Page](t, rr)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "v1", page.Items[0].ID)
		assert.Equal(t, "v2", page.Items[2].ID)
	})

	t.Run("out-of-range page clamps", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues?page=99", nil), mux)
		require.Equal(t, http.StatusOK, rr.Code)

		page := decodeData[venue.Page](t, rr)
		assert.Equal(t, 1, page.Number)
	})

	t.Run("malformed ratings rejected", func(t *testing.T) {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues?ratings=high", nil), mux)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestListVenuesUsesSnapshot(t *testing.T) {
	var hits int
	srv := newVenueUpstream(t, &hits)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	// Every filter combination runs over the same snapshot fetch, so
	// per-page result counts stay consistent.
	executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
	executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues?cities=Oslo", nil), mux)

	// Without a cache backend every request loads fresh.
	assert.Equal(t, 2, hits)
}

func TestGetVenueDetail(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues/v1", nil), mux)
	require.Equal(t, http.StatusOK, rr.Code)

	detail := decodeData[venue.Venue](t, rr)
	assert.Equal(t, "Fjord Cabin", detail.Name)
	assert.Len(t, detail.Media, 2, "detail view keeps the full gallery")
	assert.True(t, detail.Amenities.Wifi)
}

func TestGetVenueNotFound(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues/missing", nil), mux)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "No venue with such ID")
}

func TestListVenuesUpstreamDown(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()
	srv.Close()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Contains(t, rr.Body.String(), "Network error. Please try again.")
}

func TestVenueManagementRequiresManager(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /holidaze/profiles/{name}", func(w http.ResponseWriter, r *http.Request) {
		upstreamEnvelope(t, w, http.StatusOK, holidaze.Profile{
			Name:         r.PathValue("name"),
			Email:        r.PathValue("name") + "@stud.noroff.no",
			VenueManager: false,
		}, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newTestApplication(t, srv.URL)
	token := signIn(t, app, "guest_user", "upstream-token")
	handler := app.mount()

	req := jsonRequest(t, http.MethodPost, "/v1/venues", CreateVenuePayload{
		Name:        "New Cabin",
		Description: "A cabin worth describing",
		Price:       100,
		MaxGuests:   2,
	})
	req.Header.Set("Authorization", "Bearer "+token)

	rr := executeRequest(req, handler)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestVenueManagementAnonymous(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	mux := app.mount()

	req := jsonRequest(t, http.MethodPost, "/v1/venues", CreateVenuePayload{})
	rr := executeRequest(req, mux)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), `"return_to":"/v1/venues"`)
}

func TestVenueAvailability(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /holidaze/venues/{id}", func(w http.ResponseWriter, r *http.Request) {
		v := sampleUpstreamVenues()[0]
		v.Bookings = []holidaze.Booking{
			{
				ID:       "b1",
				DateFrom: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
				DateTo:   time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC),
				Guests:   2,
			},
		}
		upstreamEnvelope(t, w, http.StatusOK, v, nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	app := newTestApplication(t, srv.URL)
	handler := app.mount()

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues/v1/availability", nil), handler)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decodeData[availabilityResponse](t, rr)
	assert.Equal(t, []string{"2026-07-01", "2026-07-02", "2026-07-03"}, resp.BookedDates)
}

func TestRateLimiter(t *testing.T) {
	srv := newVenueUpstream(t, nil)
	app := newTestApplication(t, srv.URL)
	app.config.rateLimiter = ratelimiter.Config{
		RequestsPerTimeFrame: 2,
		TimeFrame:            time.Minute,
		Enabled:              true,
	}
	app.rateLimiter = ratelimiter.NewFixedWindowLimiter(2, time.Minute)
	mux := app.mount()

	for i := 0; i < 2; i++ {
		rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
		require.Equal(t, http.StatusOK, rr.Code)
	}

	rr := executeRequest(httptest.NewRequest(http.MethodGet, "/v1/venues", nil), mux)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}
