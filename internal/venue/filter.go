package venue

import (
	"math"
	"strings"
)

// Amenity names accepted by the amenities predicate, matching the UI
// checkboxes.
const (
	AmenityWifi      = "wifi"
	AmenityParking   = "parking"
	AmenityBreakfast = "breakfast"
	AmenityPets      = "pets"
)

// Filter is a set of independently toggleable predicates over normalized
// venues. A zero-valued category matches everything; active categories are
// combined with AND, and selected values within a category with OR (except
// amenities, where every selected flag must be set).
type Filter struct {
	Search    string
	Cities    []string
	Ratings   []int
	Amenities []string
	MaxPrice  float64
}

// Apply returns the venues satisfying every active predicate, preserving
// input order. The input slice is never mutated.
func (f Filter) Apply(venues []Venue) []Venue {
	out := make([]Venue, 0, len(venues))
	for _, v := range venues {
		if f.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}

func (f Filter) Matches(v Venue) bool {
	return f.MatchSearch(v) &&
		f.MatchCities(v) &&
		f.MatchRatings(v) &&
		f.MatchAmenities(v) &&
		f.MatchPrice(v)
}

// MatchSearch is a case-insensitive substring match over name, description,
// address, city and country. An empty search matches everything.
func (f Filter) MatchSearch(v Venue) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	haystack := strings.ToLower(strings.Join([]string{
		v.Name,
		v.Description,
		v.Location.Address,
		v.Location.City,
		v.Location.Country,
	}, "\n"))
	return strings.Contains(haystack, q)
}

// MatchCities requires the venue's city to be one of the selected cities,
// compared case-insensitively.
func (f Filter) MatchCities(v Venue) bool {
	if len(f.Cities) == 0 {
		return true
	}
	city := strings.ToLower(v.Location.City)
	for _, c := range f.Cities {
		if strings.ToLower(c) == city {
			return true
		}
	}
	return false
}

// MatchRatings buckets the venue's rating by rounding half-up to the nearest
// integer before membership comparison, so a 4.5-rated venue lands in the
// 5-star bucket the UI exposes.
func (f Filter) MatchRatings(v Venue) bool {
	if len(f.Ratings) == 0 {
		return true
	}
	bucket := int(math.Floor(v.Rating + 0.5))
	for _, r := range f.Ratings {
		if r == bucket {
			return true
		}
	}
	return false
}

// MatchAmenities requires every selected amenity flag to be set on the venue.
// Unrecognized amenity names never match, so a typo narrows rather than
// silently widens the result set.
func (f Filter) MatchAmenities(v Venue) bool {
	for _, a := range f.Amenities {
		var ok bool
		switch strings.ToLower(a) {
		case AmenityWifi:
			ok = v.Amenities.Wifi
		case AmenityParking:
			ok = v.Amenities.Parking
		case AmenityBreakfast:
			ok = v.Amenities.Breakfast
		case AmenityPets:
			ok = v.Amenities.Pets
		}
		if !ok {
			return false
		}
	}
	return true
}

// MatchPrice enforces the inclusive price ceiling. A zero ceiling means no
// ceiling is configured.
func (f Filter) MatchPrice(v Venue) bool {
	if f.MaxPrice <= 0 {
		return true
	}
	return v.Price <= f.MaxPrice
}
