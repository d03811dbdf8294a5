package service

import (
	"context"
	"fmt"

	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

// Bulk relays the platform's single bulk-operation slot. There is no local
// job registry: starting a new export while one is running races on the
// upstream pointer, and that race is the platform's contract, not ours to
// hide.
type Bulk struct {
	bulkSource BulkSource
	logger     *logging.ZapLogger
}

func NewBulk(bulkSource BulkSource, logger *logging.ZapLogger) *Bulk {
	return &Bulk{
		bulkSource: bulkSource,
		logger:     logger,
	}
}

func (b *Bulk) Start(ctx context.Context, dr timeutils.DateRange) (shopifyprotocol.BulkOperationHandle, error) {
	handle, err := b.bulkSource.StartBulkExport(ctx, dr)
	if err != nil {
		return shopifyprotocol.BulkOperationHandle{}, fmt.Errorf("error starting bulk export: %w", err)
	}
	return handle, nil
}

func (b *Bulk) Status(ctx context.Context) (shopifyprotocol.BulkOperationHandle, error) {
	handle, err := b.bulkSource.BulkStatus(ctx)
	if err != nil {
		return shopifyprotocol.BulkOperationHandle{}, fmt.Errorf("error checking bulk status: %w", err)
	}
	return handle, nil
}
