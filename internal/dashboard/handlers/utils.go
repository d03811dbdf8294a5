package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/internal/dashboard/service"
	"utm-dashboard/internal/dashboard/shopify"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	err := body.Close()
	if err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()
	err := decoder.Decode(&out)
	return out, err
}

func tryWriteResponseJSON(w http.ResponseWriter, responseItem any) error {
	res, err := json.Marshal(responseItem)
	if err != nil {
		return err
	}
	w.Header().Add("Content-Type", "application/json")
	_, err = w.Write(res)
	if err != nil {
		return err
	}
	return nil
}

func dateRangeFromQuery(r *http.Request) (timeutils.DateRange, error) {
	return timeutils.NewDateRange(r.URL.Query().Get("start"), r.URL.Query().Get("end"))
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryColumns(r *http.Request) []string {
	raw := r.URL.Query().Get("columns")
	if raw == "" {
		return nil
	}
	columns := make([]string, 0)
	for _, column := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			columns = append(columns, trimmed)
		}
	}
	return columns
}

// statusFromError maps the pipeline's error taxonomy to response codes:
// caller input problems are 4xx, upstream problems 502, not-ready 409.
func statusFromError(err error) int {
	var requestError *shopify.RequestError
	var jobError *shopify.JobError
	switch {
	case errors.Is(err, timeutils.ErrEmptyDate),
		errors.Is(err, timeutils.ErrEndBeforeStart),
		errors.Is(err, service.ErrUnknownColumn):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrBulkNotReady):
		return http.StatusConflict
	case errors.As(err, &requestError), errors.As(err, &jobError):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func toBulkStatusResponse(handle shopifyprotocol.BulkOperationHandle) clientprotocol.BulkStatusResponse {
	return clientprotocol.BulkStatusResponse{
		ID:          handle.ID,
		Status:      string(handle.Status),
		ErrorCode:   handle.ErrorCode,
		URL:         handle.URL,
		ObjectCount: handle.ObjectCount,
	}
}
