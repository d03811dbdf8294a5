package normalize

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/pkg/attribution"
)

const displayLayout = "2006-01-02 15:04"

// Field aliases bridging the two raw order shapes: the admin REST API uses
// snake_case, the GraphQL bulk export camelCase. The alias table is the
// full set of recognized spellings; anything else in a raw order is
// ignored.
var (
	idAliases            = []string{"id"}
	orderNumberAliases   = []string{"order_number", "orderNumber"}
	nameAliases          = []string{"name"}
	createdAtAliases     = []string{"created_at", "createdAt"}
	landingSiteAliases   = []string{"landing_site", "landingSite"}
	referringSiteAliases = []string{"referring_site", "referringSite"}
	totalPriceAliases    = []string{"total_price", "totalPrice"}
	attributesAliases    = []string{"note_attributes", "noteAttributes", "customAttributes"}
)

// Normalizer maps a raw order, in either shape, to the canonical OrderRow.
// The store domain anchors scheme-less landing-site paths during URL
// extraction.
type Normalizer struct {
	storeDomain string
}

func New(storeDomain string) *Normalizer {
	return &Normalizer{storeDomain: storeDomain}
}

func (n *Normalizer) Normalize(raw map[string]any) clientprotocol.OrderRow {
	row := clientprotocol.OrderRow{
		ID:          stringField(raw, idAliases...),
		OrderNumber: stringField(raw, orderNumberAliases...),
	}
	if row.OrderNumber == "" {
		row.OrderNumber = stringField(raw, nameAliases...)
	}

	row.CreatedAtRaw = stringField(raw, createdAtAliases...)
	if row.CreatedAtRaw != "" {
		if createdAt, err := time.Parse(time.RFC3339, row.CreatedAtRaw); err == nil {
			row.CreatedAt = createdAt.UTC().Format(displayLayout)
		} else {
			row.CreatedAtRaw = ""
		}
	}

	if price, err := decimal.NewFromString(stringField(raw, totalPriceAliases...)); err == nil {
		row.TotalPrice = price
	}

	// Attribution precedence: landing page first, then referring page,
	// then note/custom attributes. Landing-page tags are the strongest
	// signal; note attributes are hand-attached and go stale.
	record := attribution.FromURL(stringField(raw, landingSiteAliases...), n.storeDomain)
	record = record.Merge(attribution.FromURL(stringField(raw, referringSiteAliases...), n.storeDomain))
	record = record.Merge(attribution.FromAttributes(attributesField(raw)))

	row.UTMSource = record.Source
	row.UTMMedium = record.Medium
	row.UTMCampaign = record.Campaign
	row.UTMTerm = record.Term
	row.UTMContent = record.Content
	return row
}

func stringField(raw map[string]any, aliases ...string) string {
	for _, alias := range aliases {
		value, ok := raw[alias]
		if !ok {
			continue
		}
		if s := coerceString(value); s != "" {
			return s
		}
	}
	return ""
}

func coerceString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	}
	return ""
}

// attributesField collects name/value pairs from whichever attribute list
// the raw order carries. REST note attributes use "name", GraphQL custom
// attributes use "key".
func attributesField(raw map[string]any) []attribution.NameValue {
	var res []attribution.NameValue
	for _, alias := range attributesAliases {
		list, ok := raw[alias].([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name := coerceString(entry["name"])
			if name == "" {
				name = coerceString(entry["key"])
			}
			if name == "" {
				continue
			}
			res = append(res, attribution.NameValue{
				Name:  name,
				Value: coerceString(entry["value"]),
			})
		}
	}
	return res
}
