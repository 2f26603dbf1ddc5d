package venue

import (
	"strings"
	"time"

	"holidaze/internal/holidaze"
)

// Normalizers repair incomplete upstream records into the canonical shape.
// Both variants are pure functions of their input and never panic, even on a
// fully zero-valued record. The now argument supplies the default for missing
// timestamps so callers (and tests) control the clock.

// NormalizeList normalizes venues for list rendering. Media is truncated to
// the first image to keep list payloads small; owner, bookings and counts are
// dropped for the same reason.
func NormalizeList(raw []holidaze.Venue, now time.Time) []Venue {
	venues := make([]Venue, len(raw))
	for i, r := range raw {
		v := normalizeCommon(r, now)
		v.Media = v.Media[:1]
		venues[i] = v
	}
	return venues
}

// NormalizeDetail normalizes a single venue at full fidelity: the complete
// media list is preserved and owner, bookings and counts pass through.
func NormalizeDetail(raw holidaze.Venue, now time.Time) Venue {
	v := normalizeCommon(raw, now)

	if raw.Owner != nil {
		owner := normalizeProfileSummary(*raw.Owner)
		v.Owner = &owner
	}
	if raw.Count != nil {
		v.Count = &Count{Bookings: raw.Count.Bookings}
	}

	v.Bookings = make([]Booking, len(raw.Bookings))
	for i, b := range raw.Bookings {
		v.Bookings[i] = normalizeBooking(b, now)
	}

	return v
}

func normalizeCommon(raw holidaze.Venue, now time.Time) Venue {
	v := Venue{
		ID:          raw.ID,
		Name:        defaultString(raw.Name, PlaceholderName),
		Description: defaultString(raw.Description, PlaceholderDescription),
		Price:       raw.Price,
		MaxGuests:   raw.MaxGuests,
		Rating:      raw.Rating,
		Created:     defaultTime(raw.Created, now),
		Updated:     defaultTime(raw.Updated, now),
		Amenities: Amenities{
			Wifi:      raw.Meta.Wifi,
			Parking:   raw.Meta.Parking,
			Breakfast: raw.Meta.Breakfast,
			Pets:      raw.Meta.Pets,
		},
		Location: Location{
			Address:   defaultString(raw.Location.Address, PlaceholderAddress),
			City:      defaultString(raw.Location.City, PlaceholderField),
			Zip:       defaultString(raw.Location.Zip, PlaceholderField),
			Country:   defaultString(raw.Location.Country, PlaceholderField),
			Continent: defaultString(raw.Location.Continent, PlaceholderField),
			Lat:       raw.Location.Lat,
			Lng:       raw.Location.Lng,
		},
	}

	if v.MaxGuests < 1 {
		v.MaxGuests = 1
	}

	if len(raw.Media) > 0 {
		v.Media = make([]Media, len(raw.Media))
		for i, m := range raw.Media {
			v.Media[i] = Media{URL: m.URL, Alt: m.Alt}
		}
	} else {
		v.Media = []Media{{URL: PlaceholderImageURL, Alt: PlaceholderImageAlt}}
	}

	return v
}

func normalizeBooking(raw holidaze.Booking, now time.Time) Booking {
	b := Booking{
		ID:       raw.ID,
		DateFrom: raw.DateFrom,
		DateTo:   raw.DateTo,
		Guests:   raw.Guests,
		Created:  defaultTime(raw.Created, now),
	}
	if b.Guests < 1 {
		b.Guests = 1
	}
	if raw.Customer != nil {
		b.Customer = normalizeProfileSummary(*raw.Customer)
	} else {
		b.Customer = Owner{
			Name:   PlaceholderCustomer,
			Avatar: Media{URL: PlaceholderImageURL, Alt: "Avatar"},
			Banner: Media{URL: PlaceholderImageURL, Alt: "Banner"},
		}
	}
	return b
}

func normalizeProfileSummary(raw holidaze.Owner) Owner {
	return Owner{
		Name:   defaultString(raw.Name, PlaceholderCustomer),
		Email:  raw.Email,
		Bio:    raw.Bio,
		Avatar: defaultMedia(raw.Avatar, "Avatar"),
		Banner: defaultMedia(raw.Banner, "Banner"),
	}
}

func defaultString(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func defaultTime(t, fallback time.Time) time.Time {
	if t.IsZero() {
		return fallback
	}
	return t
}

func defaultMedia(m holidaze.Media, alt string) Media {
	out := Media{URL: m.URL, Alt: m.Alt}
	if out.URL == "" {
		out.URL = PlaceholderImageURL
	}
	if out.Alt == "" {
		out.Alt = alt
	}
	return out
}
