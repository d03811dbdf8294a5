package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
	"utm-dashboard/internal/dashboard/service"
	"utm-dashboard/pkg/logging"
)

type OrdersExportHandler struct {
	service ExportService
	logger  *logging.ZapLogger
}

type ExportService interface {
	ExportCSV(ctx context.Context, out io.Writer, params service.ExportParams) error
}

func NewOrdersExportHandler(service ExportService, logger *logging.ZapLogger) *OrdersExportHandler {
	return &OrdersExportHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersExportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRangeFromQuery(r)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "invalid date range", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	params := service.ExportParams{
		Range:        dr,
		Columns:      queryColumns(r),
		PreviewLimit: queryInt(r, "limit", 0),
		UseBulk:      r.URL.Query().Get("bulk") == "true",
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(
		`attachment; filename="orders-%s-%s.csv"`,
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"),
	))

	// Headers are reset below only if the export fails before the first
	// CSV byte went out; mid-stream failures can only be logged.
	if err := h.service.ExportCSV(r.Context(), w, params); err != nil {
		h.logger.ErrorCtx(r.Context(), "error exporting orders", zap.Error(err))
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		w.WriteHeader(statusFromError(err))
		return
	}
}
