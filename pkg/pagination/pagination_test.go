package pagination

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func parseQuery(query string) Params {
	return FromRequest(httptest.NewRequest(http.MethodGet, "/items"+query, nil))
}

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 20, p.PerPage)
	assert.Equal(t, 0, p.Offset)
}

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		wantPage    int
		wantPerPage int
		wantOffset  int
	}{
		{"defaults", "", 1, 20, 0},
		{"custom values", "?page=3&per_page=50", 3, 50, 100},
		{"negative page ignored", "?page=-1", 1, 20, 0},
		{"zero page ignored", "?page=0", 1, 20, 0},
		{"non-numeric page ignored", "?page=abc", 1, 20, 0},
		{"per_page over cap ignored", "?per_page=200", 1, 20, 0},
		{"per_page at cap accepted", "?per_page=100", 1, 100, 0},
		{"zero per_page ignored", "?per_page=0", 1, 20, 0},
		{"offset from later page", "?page=5&per_page=20", 5, 20, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := parseQuery(tt.query)

			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
			assert.Equal(t, tt.wantOffset, p.Offset)
		})
	}
}

func TestSlice_MiddlePage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Slice(items, Params{Page: 2, PerPage: 2, Offset: 2}))
}

func TestSlice_PartialLastPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{5}, Slice(items, Params{Page: 3, PerPage: 2, Offset: 4}))
}

func TestSlice_PastEnd(t *testing.T) {
	got := Slice([]int{1, 2}, Params{Page: 5, PerPage: 20, Offset: 80})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSlice_WholeInputOnFirstPage(t *testing.T) {
	items := []string{"a", "b"}
	assert.Equal(t, items, Slice(items, DefaultParams()))
}
