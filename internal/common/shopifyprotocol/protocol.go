package shopifyprotocol

import "encoding/json"

const (
	BulkStatusNone      BulkStatus = ""
	BulkStatusCreated   BulkStatus = "CREATED"
	BulkStatusRunning   BulkStatus = "RUNNING"
	BulkStatusCompleted BulkStatus = "COMPLETED"
	BulkStatusFailed    BulkStatus = "FAILED"
	BulkStatusCanceled  BulkStatus = "CANCELED"
)

type BulkStatus string

// BulkOperationHandle mirrors the platform's bulk-operation lifecycle. The
// job itself lives upstream; this is a point-in-time observation, never
// cached locally.
type BulkOperationHandle struct {
	ID          string     `json:"id"`
	Status      BulkStatus `json:"status"`
	ErrorCode   string     `json:"errorCode"`
	URL         string     `json:"url"`
	ObjectCount string     `json:"objectCount"`
}

// OrdersPage is one page of the admin REST orders endpoint. Orders stay
// raw: the normalizer resolves the snake_case field names itself.
type OrdersPage struct {
	Orders []map[string]any `json:"orders"`
}

type OrdersCount struct {
	Count *int `json:"count"`
}

type GraphQLRequest struct {
	Query string `json:"query"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

type GraphQLError struct {
	Message string `json:"message"`
}

type BulkRunQueryData struct {
	BulkOperationRunQuery struct {
		BulkOperation *BulkOperationHandle `json:"bulkOperation"`
		UserErrors    []UserError          `json:"userErrors"`
	} `json:"bulkOperationRunQuery"`
}

type CurrentBulkOperationData struct {
	CurrentBulkOperation *BulkOperationHandle `json:"currentBulkOperation"`
}

type UserError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}
