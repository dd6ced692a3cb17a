package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path, href string
		want       bool
	}{
		{"/trips", "/trips", true},
		{"/trips/42", "/trips", true},
		{"/tripsnew", "/trips", false},
		{"/dashboard", "/trips", false},
		{"/", "/dashboard", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsActive(tt.path, tt.href), "%s vs %s", tt.path, tt.href)
	}
}

func TestItems(t *testing.T) {
	t.Parallel()

	items := Items("/trips/7")
	require.Len(t, items, 4)

	var active []string
	for _, it := range items {
		if it.Active {
			active = append(active, it.Label)
		}
	}
	assert.Equal(t, []string{"My Trips"}, active)
	assert.False(t, Items("/trips/7")[0].Active)
	assert.Equal(t, "/stories", items[3].Href)
}
