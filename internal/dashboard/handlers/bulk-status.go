package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/pkg/logging"
)

type BulkStatusHandler struct {
	service BulkStatusService
	logger  *logging.ZapLogger
}

type BulkStatusService interface {
	Status(ctx context.Context) (shopifyprotocol.BulkOperationHandle, error)
}

func NewBulkStatusHandler(service BulkStatusService, logger *logging.ZapLogger) *BulkStatusHandler {
	return &BulkStatusHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BulkStatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handle, err := h.service.Status(r.Context())
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting bulk status", zap.Error(err))
		w.WriteHeader(statusFromError(err))
		return
	}

	if err := tryWriteResponseJSON(w, toBulkStatusResponse(handle)); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
