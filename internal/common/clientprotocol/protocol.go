package clientprotocol

import "github.com/shopspring/decimal"

// OrderRow is the canonical row shape served to the dashboard, produced
// identically by the REST and bulk retrieval paths. The five UTM fields are
// always present; empty string means "not found".
type OrderRow struct {
	ID           string          `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CreatedAt    string          `json:"created_at"`
	CreatedAtRaw string          `json:"created_at_raw,omitempty"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	UTMSource    string          `json:"utm_source"`
	UTMMedium    string          `json:"utm_medium"`
	UTMCampaign  string          `json:"utm_campaign"`
	UTMTerm      string          `json:"utm_term"`
	UTMContent   string          `json:"utm_content"`
}

// Columns available to the CSV export projection, in default order.
var ExportColumns = []string{
	"id",
	"order_number",
	"created_at",
	"total_price",
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
}

// ColumnValue projects one OrderRow field by its column name.
func (r OrderRow) ColumnValue(column string) (string, bool) {
	switch column {
	case "id":
		return r.ID, true
	case "order_number":
		return r.OrderNumber, true
	case "created_at":
		return r.CreatedAt, true
	case "created_at_raw":
		return r.CreatedAtRaw, true
	case "total_price":
		return r.TotalPrice.String(), true
	case "utm_source":
		return r.UTMSource, true
	case "utm_medium":
		return r.UTMMedium, true
	case "utm_campaign":
		return r.UTMCampaign, true
	case "utm_term":
		return r.UTMTerm, true
	case "utm_content":
		return r.UTMContent, true
	}
	return "", false
}

type OrdersResponse struct {
	TotalFetched  int        `json:"totalFetched"`
	Page          int        `json:"page"`
	PageSize      int        `json:"pageSize"`
	UpstreamTotal *int       `json:"upstreamTotal"`
	Rows          []OrderRow `json:"rows"`
}

type BulkStatusResponse struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	ErrorCode   string `json:"errorCode,omitempty"`
	URL         string `json:"url,omitempty"`
	ObjectCount string `json:"objectCount,omitempty"`
}
