package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	req, err := Parse(url.Values{}, DefaultItems)
	require.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 9, req.PerPage)

	req, err = Parse(url.Values{}, DefaultPhotos)
	require.NoError(t, err)
	assert.Equal(t, 12, req.PerPage)
}

func TestParseExplicitValues(t *testing.T) {
	q := url.Values{"page": {"3"}, "pagination": {"5"}}
	req, err := Parse(q, DefaultItems)
	require.NoError(t, err)
	assert.Equal(t, 3, req.Page)
	assert.Equal(t, 5, req.PerPage)
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		query   url.Values
		wantErr error
	}{
		{"zero page", url.Values{"page": {"0"}}, ErrBadPage},
		{"negative page", url.Values{"page": {"-2"}}, ErrBadPage},
		{"non-numeric page", url.Values{"page": {"abc"}}, ErrBadPage},
		{"zero pagination", url.Values{"pagination": {"0"}}, ErrBadPageSize},
		{"negative pagination", url.Values{"pagination": {"-1"}}, ErrBadPageSize},
		{"non-numeric pagination", url.Values{"pagination": {"x"}}, ErrBadPageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.query, DefaultItems)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWindow(t *testing.T) {
	skip, limit := Request{Page: 1, PerPage: 9}.Window()
	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(9), limit)

	skip, limit = Request{Page: 4, PerPage: 12}.Window()
	assert.Equal(t, int64(36), skip)
	assert.Equal(t, int64(12), limit)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(1, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 3, TotalPages(25, 12))
}

func TestPages(t *testing.T) {
	assert.Empty(t, Pages(0))
	assert.Equal(t, []int{1, 2, 3}, Pages(3))
}

func TestDedupeOrdered(t *testing.T) {
	got := DedupeOrdered([]string{"tools", "garden", "tools", "kitchen", "garden"})
	assert.Equal(t, []string{"tools", "garden", "kitchen"}, got)

	assert.Empty(t, DedupeOrdered(nil))
}
