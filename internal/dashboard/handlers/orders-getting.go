package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"
	"utm-dashboard/internal/common/clientprotocol"
	"utm-dashboard/pkg/logging"
	"utm-dashboard/pkg/timeutils"
)

type OrdersGettingHandler struct {
	service OrdersGettingService
	logger  *logging.ZapLogger
}

type OrdersGettingService interface {
	GetOrders(ctx context.Context, dr timeutils.DateRange, page int, pageSize int, resultCap int) (clientprotocol.OrdersResponse, error)
}

func NewOrdersGettingHandler(service OrdersGettingService, logger *logging.ZapLogger) *OrdersGettingHandler {
	return &OrdersGettingHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersGettingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	dr, err := dateRangeFromQuery(r)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "invalid date range", zap.Error(err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	response, err := h.service.GetOrders(
		r.Context(),
		dr,
		queryInt(r, "page", 1),
		queryInt(r, "pageSize", 50),
		queryInt(r, "cap", 0),
	)
	if err != nil {
		h.logger.ErrorCtx(r.Context(), "error getting orders", zap.Error(err))
		w.WriteHeader(statusFromError(err))
		return
	}

	if err := tryWriteResponseJSON(w, response); err != nil {
		h.logger.ErrorCtx(r.Context(), "error writing response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
}
