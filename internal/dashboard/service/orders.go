package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

const (
	defaultPageSize  = 50
	defaultResultCap = 5000
)

type Orders struct {
	orderSource OrderSource
	logger      *logging.ZapLogger
}

func NewOrders(orderSource OrderSource, logger *logging.ZapLogger) *Orders {
	return &Orders{
		orderSource: orderSource,
		logger:      logger,
	}
}

// GetOrders fetches and normalizes every order in the range (up to
// resultCap), sorts newest first, and slices out the requested page. The
// upstream count is advisory: when the probe fails the response carries a
// null total instead of failing the whole request.
func (o *Orders) GetOrders(ctx context.Context, dr timeutils.DateRange, page int, pageSize int, resultCap int) (clientprotocol.OrdersResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if resultCap < 1 {
		resultCap = defaultResultCap
	}

	rows, err := o.orderSource.FetchAll(ctx, dr, resultCap)
	if err != nil {
		return clientprotocol.OrdersResponse{}, fmt.Errorf("error fetching orders: %w", err)
	}
	SortByCreatedAtDesc(rows)

	var upstreamTotal *int
	count, err := o.orderSource.Count(ctx, dr)
	if err != nil {
		o.logger.InfoCtx(ctx, "order count unavailable", zap.Error(err))
	} else {
		upstreamTotal = &count
	}

	return clientprotocol.OrdersResponse{
		TotalFetched:  len(rows),
		Page:          page,
		PageSize:      pageSize,
		UpstreamTotal: upstreamTotal,
		Rows:          pageSlice(rows, page, pageSize),
	}, nil
}

// SortByCreatedAtDesc orders rows newest first by the raw timestamp, not
// the display string. Rows without a parseable timestamp sink to the end.
func SortByCreatedAtDesc(rows []clientprotocol.OrderRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, iOK := parseRaw(rows[i].CreatedAtRaw)
		tj, jOK := parseRaw(rows[j].CreatedAtRaw)
		if iOK != jOK {
			return iOK
		}
		if !iOK {
			return false
		}
		return ti.After(tj)
	})
}

func parseRaw(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func pageSlice(rows []clientprotocol.OrderRow, page int, pageSize int) []clientprotocol.OrderRow {
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []clientprotocol.OrderRow{}
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}
