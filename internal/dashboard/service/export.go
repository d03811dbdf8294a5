package service

import (
	"context"
	"fmt"
	"io"

	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/internal/dashboard/shopify"
	"utm-dashboard/pkg/csvstream"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

type ExportParams struct {
	Range        timeutils.DateRange
	Columns      []string
	PreviewLimit int
	UseBulk      bool
}

type Export struct {
	orderSource OrderSource
	bulkSource  BulkSource
	logger      *logging.ZapLogger
}

func NewExport(orderSource OrderSource, bulkSource BulkSource, logger *logging.ZapLogger) *Export {
	return &Export{
		orderSource: orderSource,
		bulkSource:  bulkSource,
		logger:      logger,
	}
}

// ExportCSV writes a CSV export to out. The REST path fetches the range
// synchronously, sorts, then writes. The bulk path streams the completed
// bulk operation's result file row by row, so tens of thousands of rows
// never sit in memory. Nothing is written to out before the upstream side
// is known to be usable.
func (e *Export) ExportCSV(ctx context.Context, out io.Writer, params ExportParams) error {
	columns, err := resolveColumns(params.Columns)
	if err != nil {
		return err
	}
	if params.UseBulk {
		return e.exportFromBulk(ctx, out, columns, params.PreviewLimit)
	}
	return e.exportFromRest(ctx, out, columns, params)
}

func (e *Export) exportFromRest(ctx context.Context, out io.Writer, columns []string, params ExportParams) error {
	rows, err := e.orderSource.FetchAll(ctx, params.Range, params.PreviewLimit)
	if err != nil {
		return fmt.Errorf("error fetching orders for export: %w", err)
	}
	SortByCreatedAtDesc(rows)

	writer := csvstream.New(out, columns)
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writer.WriteRow(projectRow(row, columns)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Export) exportFromBulk(ctx context.Context, out io.Writer, columns []string, previewLimit int) error {
	handle, err := e.bulkSource.BulkStatus(ctx)
	if err != nil {
		return fmt.Errorf("error checking bulk status: %w", err)
	}
	// A terminally failed job is not "poll again": its error code goes to
	// the caller verbatim.
	if handle.Status == shopifyprotocol.BulkStatusFailed || handle.Status == shopifyprotocol.BulkStatusCanceled {
		message := fmt.Sprintf("bulk operation status is %s", handle.Status)
		if handle.ErrorCode != "" {
			message += ": " + handle.ErrorCode
		}
		return &shopify.JobError{Messages: []string{message}}
	}
	if handle.Status != shopifyprotocol.BulkStatusCompleted || handle.URL == "" {
		return fmt.Errorf("bulk operation status is %q: %w", handle.Status, ErrBulkNotReady)
	}

	writer := csvstream.New(out, columns)
	if err := writer.WriteHeader(); err != nil {
		return err
	}
	return e.bulkSource.DownloadBulkResult(ctx, handle.URL, previewLimit, func(row clientprotocol.OrderRow) error {
		return writer.WriteRow(projectRow(row, columns))
	})
}

func resolveColumns(requested []string) ([]string, error) {
	if len(requested) == 0 {
		return clientprotocol.ExportColumns, nil
	}
	probe := clientprotocol.OrderRow{}
	for _, column := range requested {
		if _, ok := probe.ColumnValue(column); !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, column)
		}
	}
	return requested, nil
}

func projectRow(row clientprotocol.OrderRow, columns []string) map[string]string {
	res := make(map[string]string, len(columns))
	for _, column := range columns {
		value, _ := row.ColumnValue(column)
		res[column] = value
	}
	return res
}
