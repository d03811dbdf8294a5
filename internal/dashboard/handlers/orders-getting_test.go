package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/dashboard/service"
	"utm-dashboard/internal/dashboard/shopify"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

type stubOrdersService struct {
	response clientprotocol.OrdersResponse
	err      error
}

func (s *stubOrdersService) GetOrders(context.Context, timeutils.DateRange, int, int, int) (clientprotocol.OrdersResponse, error) {
	if s.err != nil {
		return clientprotocol.OrdersResponse{}, s.err
	}
	return s.response, nil
}

func testLogger(t *testing.T) *logging.ZapLogger {
	t.Helper()
	logger, err := logging.NewZapLogger(zapcore.ErrorLevel)
	require.NoError(t, err)
	return logger
}

func TestOrdersGettingHandler(t *testing.T) {
	total := 2
	handler := NewOrdersGettingHandler(&stubOrdersService{
		response: clientprotocol.OrdersResponse{
			TotalFetched:  2,
			Page:          1,
			PageSize:      50,
			UpstreamTotal: &total,
			Rows: []clientprotocol.OrderRow{
				{ID: "1", UTMSource: "google"},
				{ID: "2"},
			},
		},
	}, testLogger(t))

	r := httptest.NewRequest(http.MethodGet, "/api/orders?start=2024-03-01&end=2024-03-31", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	response := clientprotocol.OrdersResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.TotalFetched)
	require.Len(t, response.Rows, 2)
	assert.Equal(t, "google", response.Rows[0].UTMSource)
	assert.Equal(t, "", response.Rows[1].UTMSource)
}

func TestOrdersGettingHandlerBadDateRange(t *testing.T) {
	handler := NewOrdersGettingHandler(&stubOrdersService{}, testLogger(t))

	tests := []struct {
		name   string
		target string
	}{
		{name: "missing dates", target: "/api/orders"},
		{name: "garbage start", target: "/api/orders?start=tomorrow&end=2024-03-31"},
		{name: "end before start", target: "/api/orders?start=2024-03-31&end=2024-03-01"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, test.target, nil))
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "empty date", err: timeutils.ErrEmptyDate, expected: http.StatusBadRequest},
		{name: "unknown column", err: service.ErrUnknownColumn, expected: http.StatusBadRequest},
		{name: "bulk not ready", err: service.ErrBulkNotReady, expected: http.StatusConflict},
		{name: "upstream status", err: &shopify.RequestError{StatusCode: 429}, expected: http.StatusBadGateway},
		{name: "job error", err: &shopify.JobError{Messages: []string{"boom"}}, expected: http.StatusBadGateway},
		{name: "anything else", err: assert.AnError, expected: http.StatusInternalServerError},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, statusFromError(test.err))
		})
	}
}
