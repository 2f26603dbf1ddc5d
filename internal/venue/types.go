package venue

import "time"

// Canonical venue model. Every field is guaranteed populated after
// normalization, so rendering clients never need null guards.

// Placeholder values substituted for blank or missing upstream fields.
const (
	PlaceholderName        = "Unnamed Venue"
	PlaceholderDescription = "No description available"
	PlaceholderAddress     = "No address available"
	PlaceholderField       = "N/A"
	PlaceholderImageURL    = "/assets/img-NA.png"
	PlaceholderImageAlt    = "Image not available"
	PlaceholderCustomer    = "Unknown"
)

type Media struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

type Amenities struct {
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
}

// Booking is a reservation against a venue, present on detail views.
type Booking struct {
	ID       string    `json:"id"`
	DateFrom time.Time `json:"dateFrom"`
	DateTo   time.Time `json:"dateTo"`
	Guests   int       `json:"guests"`
	Created  time.Time `json:"created"`
	Customer Owner     `json:"customer"`
}

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
	Amenities   Amenities `json:"amenities"`
	Location    Location  `json:"location"`
	Owner       *Owner    `json:"owner,omitempty"`
	Bookings    []Booking `json:"bookings,omitempty"`
	Count       *Count    `json:"_count,omitempty"`
}
