package venue

// PageSize is the fixed number of venues per page.
const PageSize = 12

// Page is one slice of an ordered, filtered venue sequence plus the metadata
// the "showing X of Y" UI needs.
type Page struct {
	Items      []Venue `json:"items"`
	Number     int     `json:"page"`
	Size       int     `json:"page_size"`
	TotalCount int     `json:"total_count"`
	TotalPages int     `json:"total_pages"`
}

// Paginate slices venues into 1-based pages of PageSize. Out-of-range page
// numbers clamp to the nearest valid page; an empty collection still reports
// one (empty) page.
func Paginate(venues []Venue, page int) Page {
	total := len(venues)
	totalPages := (total + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Items:      venues[start:end],
		Number:     page,
		Size:       PageSize,
		TotalCount: total,
		TotalPages: totalPages,
	}
}
