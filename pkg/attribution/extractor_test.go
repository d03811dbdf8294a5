package attribution

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected Record
	}{
		{
			name: "all five parameters",
			url:  "https://example.com/?utm_source=google&utm_medium=cpc&utm_campaign=spring&utm_term=shoes&utm_content=ad1",
			expected: Record{
				Source:   "google",
				Medium:   "cpc",
				Campaign: "spring",
				Term:     "shoes",
				Content:  "ad1",
			},
		},
		{
			name:     "subset of parameters",
			url:      "https://example.com/products/x?utm_source=newsletter",
			expected: Record{Source: "newsletter"},
		},
		{
			name:     "no utm parameters",
			url:      "https://example.com/?ref=abc",
			expected: Record{},
		},
		{
			name:     "relative path resolved against store domain",
			url:      "/collections/sale?utm_source=instagram&utm_medium=social",
			expected: Record{Source: "instagram", Medium: "social"},
		},
		{
			name:     "malformed url",
			url:      "not a url ::",
			expected: Record{},
		},
		{
			name:     "empty string",
			url:      "",
			expected: Record{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, FromURL(test.url, "example.myshopify.com"))
		})
	}
}

func TestFromAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []NameValue
		expected Record
	}{
		{
			name: "case insensitive keys",
			attrs: []NameValue{
				{Name: "UTM_Source", Value: "facebook"},
				{Name: "Utm_Medium", Value: "paid"},
			},
			expected: Record{Source: "facebook", Medium: "paid"},
		},
		{
			name: "first non-empty match wins",
			attrs: []NameValue{
				{Name: "UTM_Source", Value: "a"},
				{Name: "utm_source_x", Value: "b"},
			},
			expected: Record{Source: "a"},
		},
		{
			name: "substring match",
			attrs: []NameValue{
				{Name: "my_utm_campaign_tag", Value: "summer"},
			},
			expected: Record{Campaign: "summer"},
		},
		{
			name: "empty values treated as absent",
			attrs: []NameValue{
				{Name: "utm_source", Value: ""},
				{Name: "utm_source", Value: "late"},
			},
			expected: Record{Source: "late"},
		},
		{
			name:     "no attributes",
			attrs:    nil,
			expected: Record{},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, FromAttributes(test.attrs))
		})
	}
}

func TestFromAttributeMap(t *testing.T) {
	res := FromAttributeMap(map[string]string{
		"utm_source":  "google",
		"utm_medium":  "cpc",
		"utm_unknown": "ignored",
	})
	assert.Equal(t, Record{Source: "google", Medium: "cpc"}, res)
}

func TestMerge(t *testing.T) {
	base := Record{Source: "land"}
	fallback := Record{Source: "ref", Medium: "social"}
	assert.Equal(t, Record{Source: "land", Medium: "social"}, base.Merge(fallback))
}
