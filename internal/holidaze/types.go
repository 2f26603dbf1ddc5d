package holidaze

import "time"

// Wire types for the upstream Holidaze v2 API. Fields arrive in whatever
// state the upstream stores them; blank and missing values are repaired by
// the normalizers in internal/venue, never here.

// Venue is a raw venue record as delivered by the upstream API.
type Venue struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
	Meta        Meta      `json:"meta"`
	Location    Location  `json:"location"`
	Owner       *Owner    `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
	Count       *Count    `json:"_count,omitempty"`
}

type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Meta carries the upstream amenity flags.
type Meta struct {
	Wifi      bool `json:"wifi"`
	Parking   bool `json:"parking"`
	Breakfast bool `json:"breakfast"`
	Pets      bool `json:"pets"`
}

type Location struct {
	Address   string  `json:"address"`
	City      string  `json:"city"`
	Zip       string  `json:"zip"`
	Country   string  `json:"country"`
	Continent string  `json:"continent"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
}

type Owner struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Bio    string `json:"bio"`
	Avatar Media  `json:"avatar"`
	Banner Media  `json:"banner"`
}

type Count struct {
	Bookings int `json:"bookings"`
	Venues   int `json:"venues"`
}

// Booking is a raw reservation record embedded on single-venue and profile
// responses.
type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
	Customer *Owner    `json:"customer,omitempty"`
	Venue    *Venue    `json:"venue,omitempty"`
}

// Profile is keyed by name; name is the natural key for every profile
// operation upstream.
type Profile struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	Avatar       Media     `json:"avatar"`
	Banner       Media     `json:"banner"`
	VenueManager bool      `json:"venueManager"`
	Venues       []Venue   `json:"venues,omitempty"`
	Bookings     []Booking `json:"bookings,omitempty"`
	Count        *Count    `json:"_count,omitempty"`
}

// Credentials is the upstream login response body.
type Credentials struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       Media  `json:"avatar"`
	Banner       Media  `json:"banner"`
	AccessToken  string `json:"accessToken"`
	VenueManager bool   `json:"venueManager"`
}

// ListMeta is the pagination metadata attached to list responses.
type ListMeta struct {
	CurrentPage int `json:"currentPage"`
	PageCount   int `json:"pageCount"`
	TotalCount  int `json:"totalCount"`
}

// RegisterRequest is the payload for upstream account registration.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Avatar       *Media `json:"avatar,omitempty"`
	Banner       *Media `json:"banner,omitempty"`
	VenueManager bool   `json:"venueManager"`
}

// BookingRequest is the payload for reservation creation. Dates must be
// UTC-midnight ISO-8601 strings.
type BookingRequest struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	Guests   int    `json:"guests"`
	VenueID  string `json:"venueId"`
}

// VenueRequest is the payload for venue creation and full update.
type VenueRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Media       []Media   `json:"media,omitempty"`
	Price       float64   `json:"price"`
	MaxGuests   int       `json:"maxGuests"`
	Rating      float64   `json:"rating,omitempty"`
	Meta        *Meta     `json:"meta,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

// ProfileUpdate is the payload for profile updates. Nil fields are omitted
// so the upstream keeps its stored value.
type ProfileUpdate struct {
	Bio          *string `json:"bio,omitempty"`
	Avatar       *Media  `json:"avatar,omitempty"`
	Banner       *Media  `json:"banner,omitempty"`
	VenueManager *bool   `json:"venueManager,omitempty"`
}
