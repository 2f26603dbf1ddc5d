package venue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageFixture(n int) []Venue {
	venues := make([]Venue, n)
	for i := range venues {
		venues[i] = Venue{ID: fmt.Sprintf("v%03d", i)}
	}
	return venues
}

func TestPaginateMetadata(t *testing.T) {
	tests := []struct {
		n          int
		page       int
		wantItems  int
		wantNumber int
		wantPages  int
	}{
		{0, 1, 0, 1, 1},
		{5, 1, 5, 1, 1},
		{12, 1, 12, 1, 1},
		{13, 1, 12, 1, 2},
		{13, 2, 1, 2, 2},
		{100, 9, 4, 9, 9},
	}

	for _, tc := range tests {
		t.Run(fmt.Sprintf("n=%d page=%d", tc.n, tc.page), func(t *testing.T) {
			p := Paginate(pageFixture(tc.n), tc.page)
			assert.Len(t, p.Items, tc.wantItems)
			assert.Equal(t, tc.wantNumber, p.Number)
			assert.Equal(t, tc.wantPages, p.TotalPages)
			assert.Equal(t, tc.n, p.TotalCount)
			assert.Equal(t, PageSize, p.Size)
		})
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	venues := pageFixture(30)

	p := Paginate(venues, 0)
	assert.Equal(t, 1, p.Number)

	p = Paginate(venues, -4)
	assert.Equal(t, 1, p.Number)

	p = Paginate(venues, 99)
	assert.Equal(t, 3, p.Number, "past-the-end clamps to the last page")
	assert.Len(t, p.Items, 6)
}

// Concatenating all pages in order reconstitutes the collection exactly.
func TestPaginateReconstitutesCollection(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 37, 100} {
		venues := pageFixture(n)
		first := Paginate(venues, 1)

		var rebuilt []Venue
		for page := 1; page <= first.TotalPages; page++ {
			rebuilt = append(rebuilt, Paginate(venues, page).Items...)
		}

		require.Len(t, rebuilt, n, "n=%d", n)
		for i := range venues {
			assert.Equal(t, venues[i].ID, rebuilt[i].ID)
		}
	}
}
