package deals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectDeals(t *testing.T) {
	items := []any{
		map[string]any{
			"title":           "Standing Desk",
			"description":     "Electric height adjustment.",
			"originalPrice":   "$499.00",
			"discountedPrice": "$349.00",
			"merchant":        "DeskWorks",
			"category":        "Home & Kitchen",
			"imageUrl":        "https://cdn.example/desk.jpg",
		},
		"not an object",
		map[string]any{
			"title":         "Bare Number Price",
			"originalPrice": 42.5,
		},
		map[string]any{},
	}

	deals := projectDeals(items, "https://picsum.photos/seed")
	require.Len(t, deals, 3, "non-object items are skipped")

	assert.Equal(t, "Standing Desk", deals[0].Title)
	assert.Equal(t, "https://cdn.example/desk.jpg", deals[0].ImageURL, "supplied images are kept")

	assert.Equal(t, "42.5", deals[1].OriginalPrice, "numeric prices are formatted, not dropped")
	assert.Equal(t, "https://picsum.photos/seed/bare-number-price/400/300", deals[1].ImageURL)

	assert.Equal(t, "https://picsum.photos/seed/"+deals[2].ID+"/400/300", deals[2].ImageURL,
		"untitled deals seed their image from the identifier")

	ids := map[string]bool{}
	for _, d := range deals {
		assert.False(t, ids[d.ID], "identifiers must be unique within a batch")
		ids[d.ID] = true
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Wireless Headphones", "wireless-headphones"},
		{"  50% Off!  TVs  ", "50-off-tvs"},
		{"---", ""},
		{"ÜBER deal", "ber-deal"},
		{"a very long product title that keeps going well past the cap", "a-very-long-product-title-that-keeps-goi"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, slugify(tt.in), "input %q", tt.in)
	}
}
