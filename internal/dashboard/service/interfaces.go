package service

import (
	"context"

	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/pkg/timeutils"
)

type OrderSource interface {
	FetchAll(ctx context.Context, dr timeutils.DateRange, resultCap int) ([]clientprotocol.OrderRow, error)
	Count(ctx context.Context, dr timeutils.DateRange) (int, error)
}

type BulkSource interface {
	StartBulkExport(ctx context.Context, dr timeutils.DateRange) (shopifyprotocol.BulkOperationHandle, error)
	BulkStatus(ctx context.Context) (shopifyprotocol.BulkOperationHandle, error)
	DownloadBulkResult(ctx context.Context, url string, previewLimit int, fn func(clientprotocol.OrderRow) error) error
}
