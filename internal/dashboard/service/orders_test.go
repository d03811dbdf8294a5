package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

type stubOrderSource struct {
	rows     []clientprotocol.OrderRow
	fetchErr error
	count    int
	countErr error

	lastResultCap int
}

func (s *stubOrderSource) FetchAll(_ context.Context, _ timeutils.DateRange, resultCap int) ([]clientprotocol.OrderRow, error) {
	s.lastResultCap = resultCap
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.rows, nil
}

func (s *stubOrderSource) Count(context.Context, timeutils.DateRange) (int, error) {
	if s.countErr != nil {
		return 0, s.countErr
	}
	return s.count, nil
}

func testLogger(t *testing.T) *logging.ZapLogger {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)
	return logger
}

func rowAt(id string, createdAtRaw string) clientprotocol.OrderRow {
	return clientprotocol.OrderRow{ID: id, CreatedAtRaw: createdAtRaw}
}

func TestGetOrdersSortsByRawTimestampDesc(t *testing.T) {
	source := &stubOrderSource{
		rows: []clientprotocol.OrderRow{
			rowAt("middle", "2024-03-02T10:00:00Z"),
			rowAt("newest", "2024-03-05T10:00:00Z"),
			rowAt("unparseable", ""),
			rowAt("oldest", "2024-03-01T10:00:00Z"),
		},
		count: 4,
	}

	dr, err := timeutils.NewDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	response, err := NewOrders(source, testLogger(t)).GetOrders(context.Background(), dr, 1, 10, 0)
	require.NoError(t, err)

	ids := make([]string, len(response.Rows))
	for i, row := range response.Rows {
		ids[i] = row.ID
	}
	assert.Equal(t, []string{"newest", "middle", "oldest", "unparseable"}, ids)
	assert.Equal(t, 4, response.TotalFetched)
	require.NotNil(t, response.UpstreamTotal)
	assert.Equal(t, 4, *response.UpstreamTotal)
}

func TestGetOrdersPagination(t *testing.T) {
	rows := make([]clientprotocol.OrderRow, 0, 5)
	for _, id := range []string{"a", "b", "c", "d", "e"} {
		rows = append(rows, rowAt(id, "2024-03-01T10:00:00Z"))
	}
	source := &stubOrderSource{rows: rows, count: 5}
	dr, err := timeutils.NewDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)
	orders := NewOrders(source, testLogger(t))

	tests := []struct {
		name        string
		page        int
		pageSize    int
		expectedLen int
	}{
		{name: "first page", page: 1, pageSize: 2, expectedLen: 2},
		{name: "last partial page", page: 3, pageSize: 2, expectedLen: 1},
		{name: "page past the end", page: 9, pageSize: 2, expectedLen: 0},
		{name: "defaults applied", page: 0, pageSize: 0, expectedLen: 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			response, err := orders.GetOrders(context.Background(), dr, test.page, test.pageSize, 0)
			require.NoError(t, err)
			assert.Len(t, response.Rows, test.expectedLen)
			assert.Equal(t, 5, response.TotalFetched)
		})
	}
}

func TestGetOrdersCountFailureIsAdvisory(t *testing.T) {
	source := &stubOrderSource{
		rows:     []clientprotocol.OrderRow{rowAt("a", "2024-03-01T10:00:00Z")},
		countErr: errors.New("count endpoint down"),
	}
	dr, err := timeutils.NewDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	response, err := NewOrders(source, testLogger(t)).GetOrders(context.Background(), dr, 1, 10, 0)
	require.NoError(t, err)
	assert.Nil(t, response.UpstreamTotal)
	assert.Equal(t, 1, response.TotalFetched)
}

func TestGetOrdersFetchFailureIsFatal(t *testing.T) {
	source := &stubOrderSource{fetchErr: errors.New("upstream exploded")}
	dr, err := timeutils.NewDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	_, err = NewOrders(source, testLogger(t)).GetOrders(context.Background(), dr, 1, 10, 0)
	assert.Error(t, err)
}

func TestGetOrdersDefaultResultCap(t *testing.T) {
	source := &stubOrderSource{}
	dr, err := timeutils.NewDateRange("2024-03-01", "2024-03-31")
	require.NoError(t, err)

	_, err = NewOrders(source, testLogger(t)).GetOrders(context.Background(), dr, 1, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultResultCap, source.lastResultCap)
}
