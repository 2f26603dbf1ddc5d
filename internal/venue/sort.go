package venue

import "sort"

// Sort-mode tokens recognized by Sort.
const (
	SortLatest        = "latest"
	SortOldest        = "oldest"
	SortCheapest      = "cheapest"
	SortMostExpensive = "most_expensive"
)

// Sort orders venues by the given mode token. The sort is stable, so ties
// keep their input order. Unknown tokens leave the sequence in its pre-sort
// order rather than failing. The input slice is never mutated.
func Sort(venues []Venue, mode string) []Venue {
	out := make([]Venue, len(venues))
	copy(out, venues)

	var less func(i, j int) bool
	switch mode {
	case SortLatest:
		less = func(i, j int) bool { return out[i].Created.After(out[j].Created) }
	case SortOldest:
		less = func(i, j int) bool { return out[i].Created.Before(out[j].Created) }
	case SortCheapest:
		less = func(i, j int) bool { return out[i].Price < out[j].Price }
	case SortMostExpensive:
		less = func(i, j int) bool { return out[i].Price > out[j].Price }
	default:
		return out
	}

	sort.SliceStable(out, less)
	return out
}
