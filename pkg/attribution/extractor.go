package attribution

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

const (
	SourceKey   = "utm_source"
	MediumKey   = "utm_medium"
	CampaignKey = "utm_campaign"
	TermKey     = "utm_term"
	ContentKey  = "utm_content"
)

var canonicalKeys = []string{SourceKey, MediumKey, CampaignKey, TermKey, ContentKey}

// Record holds the five UTM fields extracted from one candidate source.
// An empty string means "not found".
type Record struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

type NameValue struct {
	Name  string
	Value string
}

func (r Record) Get(key string) string {
	switch key {
	case SourceKey:
		return r.Source
	case MediumKey:
		return r.Medium
	case CampaignKey:
		return r.Campaign
	case TermKey:
		return r.Term
	case ContentKey:
		return r.Content
	}
	return ""
}

func (r *Record) set(key, value string) {
	switch key {
	case SourceKey:
		r.Source = value
	case MediumKey:
		r.Medium = value
	case CampaignKey:
		r.Campaign = value
	case TermKey:
		r.Term = value
	case ContentKey:
		r.Content = value
	}
}

// Merge returns r with every empty field filled from fallback.
func (r Record) Merge(fallback Record) Record {
	for _, key := range canonicalKeys {
		if r.Get(key) == "" {
			r.set(key, fallback.Get(key))
		}
	}
	return r
}

// FromURL extracts UTM query parameters from rawURL. Scheme-less values are
// resolved against storeDomain before parsing. Malformed input yields an
// empty Record, never an error: landing and referring sites arrive from
// browsers verbatim and anything can be in them.
func FromURL(rawURL string, storeDomain string) Record {
	res := Record{}
	if rawURL == "" {
		return res
	}
	if !strings.Contains(rawURL, "://") {
		rawURL = fmt.Sprintf("https://%s/%s", storeDomain, strings.TrimPrefix(rawURL, "/"))
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return res
	}
	query := parsed.Query()
	for _, key := range canonicalKeys {
		res.set(key, query.Get(key))
	}
	return res
}

// FromAttributes extracts UTM values from an ordered list of name/value
// pairs, e.g. order note attributes. Matching is case-insensitive and by
// substring, so "UTM_Source" and "my_utm_campaign_tag" both count. The
// first non-empty value per field wins; later matches are ignored.
func FromAttributes(attrs []NameValue) Record {
	res := Record{}
	for _, attr := range attrs {
		name := strings.ToLower(attr.Name)
		if attr.Value == "" {
			continue
		}
		for _, key := range canonicalKeys {
			if !strings.Contains(name, key) {
				continue
			}
			if res.Get(key) == "" {
				res.set(key, attr.Value)
			}
		}
	}
	return res
}

// FromAttributeMap adapts a key->value mapping to FromAttributes. Keys are
// visited in sorted order so the result does not depend on map iteration.
func FromAttributeMap(m map[string]string) Record {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	attrs := make([]NameValue, 0, len(keys))
	for _, key := range keys {
		attrs = append(attrs, NameValue{Name: key, Value: m[key]})
	}
	return FromAttributes(attrs)
}
