package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const storeDomain = "example.myshopify.com"

func TestNormalizePrecedence(t *testing.T) {
	landing := "https://example.myshopify.com/?utm_source=land"
	referring := "https://blog.example.com/?utm_source=ref"
	notes := []any{
		map[string]any{"name": "utm_source", "value": "note"},
	}

	tests := []struct {
		name     string
		raw      map[string]any
		expected string
	}{
		{
			name: "landing wins over referring and notes",
			raw: map[string]any{
				"landing_site":    landing,
				"referring_site":  referring,
				"note_attributes": notes,
			},
			expected: "land",
		},
		{
			name: "referring wins over notes",
			raw: map[string]any{
				"referring_site":  referring,
				"note_attributes": notes,
			},
			expected: "ref",
		},
		{
			name: "notes as last resort",
			raw: map[string]any{
				"note_attributes": notes,
			},
			expected: "note",
		},
		{
			name:     "nothing found",
			raw:      map[string]any{},
			expected: "",
		},
	}

	n := New(storeDomain)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, n.Normalize(test.raw).UTMSource)
		})
	}
}

func TestNormalizeRestShape(t *testing.T) {
	n := New(storeDomain)
	row := n.Normalize(map[string]any{
		"id":           float64(5498777),
		"order_number": float64(1001),
		"created_at":   "2024-03-02T10:30:00-05:00",
		"total_price":  "19.99",
		"landing_site": "/?utm_source=google&utm_medium=cpc",
	})

	assert.Equal(t, "5498777", row.ID)
	assert.Equal(t, "1001", row.OrderNumber)
	assert.Equal(t, "2024-03-02T10:30:00-05:00", row.CreatedAtRaw)
	assert.Equal(t, "2024-03-02 15:30", row.CreatedAt)
	assert.Equal(t, "19.99", row.TotalPrice.String())
	assert.Equal(t, "google", row.UTMSource)
	assert.Equal(t, "cpc", row.UTMMedium)
	assert.Equal(t, "", row.UTMCampaign)
}

func TestNormalizeBulkShape(t *testing.T) {
	n := New(storeDomain)
	row := n.Normalize(map[string]any{
		"id":            "gid://shopify/Order/5498777",
		"name":          "#1001",
		"createdAt":     "2024-03-02T15:30:00Z",
		"landingSite":   "/?utm_source=google",
		"referringSite": "https://r.example.com/?utm_medium=referral",
		"customAttributes": []any{
			map[string]any{"key": "utm_campaign", "value": "spring"},
		},
	})

	assert.Equal(t, "gid://shopify/Order/5498777", row.ID)
	assert.Equal(t, "#1001", row.OrderNumber)
	assert.Equal(t, "google", row.UTMSource)
	assert.Equal(t, "referral", row.UTMMedium)
	assert.Equal(t, "spring", row.UTMCampaign)
}

func TestNormalizeOrderNumberFallback(t *testing.T) {
	n := New(storeDomain)

	assert.Equal(t, "1001", n.Normalize(map[string]any{
		"order_number": float64(1001),
		"name":         "#1001",
	}).OrderNumber)
	assert.Equal(t, "#1001", n.Normalize(map[string]any{
		"name": "#1001",
	}).OrderNumber)
	assert.Equal(t, "", n.Normalize(map[string]any{}).OrderNumber)
}

func TestNormalizeBadTimestamp(t *testing.T) {
	n := New(storeDomain)
	row := n.Normalize(map[string]any{
		"created_at": "not a timestamp",
	})

	assert.Equal(t, "", row.CreatedAt)
	assert.Equal(t, "", row.CreatedAtRaw)
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := map[string]any{
		"id":           float64(42),
		"name":         "#42",
		"created_at":   "2024-03-02T10:30:00Z",
		"landing_site": "/?utm_source=google",
		"note_attributes": []any{
			map[string]any{"name": "utm_medium", "value": "email"},
		},
	}

	n := New(storeDomain)
	assert.Equal(t, n.Normalize(raw), n.Normalize(raw))
}
