package handlers

import (
	"net/http"

	"go.uber.org/zap"
	"utm-dashboard/internal/dashboard/service"
	"utm-dashboard/pkg/logging"
)

// BulkDownloadHandler streams the completed bulk operation's rows as CSV.
// The date range was fixed when the bulk job was started; only the column
// projection and preview limit are chosen here.
type BulkDownloadHandler struct {
	service ExportService
	logger  *logging.ZapLogger
}

func NewBulkDownloadHandler(service ExportService, logger *logging.ZapLogger) *BulkDownloadHandler {
	return &BulkDownloadHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BulkDownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := service.ExportParams{
		Columns:      queryColumns(r),
		PreviewLimit: queryInt(r, "limit", 0),
		UseBulk:      true,
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="orders-bulk.csv"`)

	if err := h.service.ExportCSV(r.Context(), w, params); err != nil {
		h.logger.ErrorCtx(r.Context(), "error streaming bulk download", zap.Error(err))
		w.Header().Del("Content-Type")
		w.Header().Del("Content-Disposition")
		w.WriteHeader(statusFromError(err))
		return
	}
}
