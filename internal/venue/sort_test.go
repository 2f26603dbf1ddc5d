package venue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sortFixture() []Venue {
	day := func(d int) time.Time {
		return time.Date(2026, 1, d, 0, 0, 0, 0, time.UTC)
	}
	return []Venue{
		{ID: "a", Price: 100, Created: day(10)},
		{ID: "b", Price: 50, Created: day(20)},
		{ID: "c", Price: 100, Created: day(5)},
		{ID: "d", Price: 75, Created: day(20)},
	}
}

func TestSortModes(t *testing.T) {
	tests := []struct {
		mode string
		want []string
	}{
		{SortLatest, []string{"b", "d", "a", "c"}},
		{SortOldest, []string{"c", "a", "b", "d"}},
		{SortCheapest, []string{"b", "d", "a", "c"}},
		{SortMostExpensive, []string{"a", "c", "d", "b"}},
	}

	for _, tc := range tests {
		t.Run(tc.mode, func(t *testing.T) {
			got := Sort(sortFixture(), tc.mode)
			assert.Equal(t, tc.want, venueIDs(got))
		})
	}
}

func TestSortUnknownModeKeepsOrder(t *testing.T) {
	in := sortFixture()
	got := Sort(in, "by_vibes")
	assert.Equal(t, venueIDs(in), venueIDs(got))
}

func TestSortDoesNotMutateInput(t *testing.T) {
	in := sortFixture()
	Sort(in, SortCheapest)
	assert.Equal(t, []string{"a", "b", "c", "d"}, venueIDs(in))
}

func TestSortIdempotent(t *testing.T) {
	once := Sort(sortFixture(), SortLatest)
	twice := Sort(once, SortLatest)
	assert.Equal(t, once, twice)
}

// cheapest and most_expensive are reverses of each other modulo tie order.
func TestSortPriceDuality(t *testing.T) {
	cheap := Sort(sortFixture(), SortCheapest)
	expensive := Sort(sortFixture(), SortMostExpensive)

	var reversed []float64
	for i := len(expensive) - 1; i >= 0; i-- {
		reversed = append(reversed, expensive[i].Price)
	}
	var prices []float64
	for _, v := range cheap {
		prices = append(prices, v.Price)
	}
	assert.Equal(t, prices, reversed)
}
