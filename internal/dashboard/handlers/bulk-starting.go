package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"utm-dashboard/internal/common/shopifyprotocol"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

type BulkStartingHandler struct {
	service BulkStartingService
	logger  *logging.ZapLogger
}

type BulkStartInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type BulkStartingService interface {
	Start(ctx context.Context, dr timeutils.DateRange) (shopifyprotocol.BulkOperationHandle, error)
}

func NewBulkStartingHandler(service BulkStartingService, logger *logging.ZapLogger) *BulkStartingHandler {
	return &BulkStartingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *BulkStartingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[BulkStartInput](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	dr, err := timeutils.NewDateRange(input.Start, input.End)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "invalid date range", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	handle, err := h.service.Start(r.Context(), dr)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error starting bulk export", zap.Error(err))
		w.WriteHeader(statusFromError(err))
		return
	}

	res, err := json.Marshal(toBulkStatusResponse(handle))
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error marshalling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if _, err := w.Write(res); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		return
	}
}
