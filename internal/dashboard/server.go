package dashboard

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"utm-dashboard/internal/dashboard/handlers"
	"utm-dashboard/internal/dashboard/middleware"
	"utm-dashboard/pkg/logging"
)

type Config struct {
	ServerAddress   string
	APIKey          string
	ShutdownTimeout time.Duration
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	ordersService handlers.OrdersGettingService,
	exportService handlers.ExportService,
	bulkStartingService handlers.BulkStartingService,
	bulkStatusService handlers.BulkStatusService,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr: cfg.ServerAddress,
		Handler: createMux(
			cfg,
			ordersService,
			exportService,
			bulkStartingService,
			bulkStatusService,
			logger,
		),
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	cfg Config,
	ordersService handlers.OrdersGettingService,
	exportService handlers.ExportService,
	bulkStartingService handlers.BulkStartingService,
	bulkStatusService handlers.BulkStatusService,
	logger *logging.ZapLogger,
) *chi.Mux {
	ordersHandler := handlers.NewOrdersGettingHandler(ordersService, logger)
	exportHandler := handlers.NewOrdersExportHandler(exportService, logger)
	bulkStartingHandler := handlers.NewBulkStartingHandler(bulkStartingService, logger)
	bulkStatusHandler := handlers.NewBulkStatusHandler(bulkStatusService, logger)
	bulkDownloadHandler := handlers.NewBulkDownloadHandler(exportService, logger)

	router := chi.NewRouter()
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)

	router.Route("/api", func(router chi.Router) {
		router.Use(middleware.NewAPIKeyAuth(cfg.APIKey, logger).CreateHandler)
		router.Get("/orders", ordersHandler.ServeHTTP)
		router.Get("/orders/export", exportHandler.ServeHTTP)
		router.Post("/bulk", bulkStartingHandler.ServeHTTP)
		router.Get("/bulk/status", bulkStatusHandler.ServeHTTP)
		router.Get("/bulk/download", bulkDownloadHandler.ServeHTTP)
	})

	return router
}
