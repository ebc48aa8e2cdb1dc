package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/roomshare/internal/billing"
	"github.com/mmynk/roomshare/internal/config"
	"github.com/mmynk/roomshare/internal/ledger"
	"github.com/mmynk/roomshare/internal/metrics"
	"github.com/mmynk/roomshare/internal/middleware"
	"github.com/mmynk/roomshare/internal/models"
	"github.com/mmynk/roomshare/internal/notify"
	"github.com/mmynk/roomshare/internal/payments"
	"github.com/mmynk/roomshare/internal/property"
	"github.com/mmynk/roomshare/internal/service"
	"github.com/mmynk/roomshare/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	shares := ledger.New(cfg.Household.TotalRent, ledger.WithLogger(logger))
	primary, err := shares.SetPrimary(cfg.Household.Primary.Name, cfg.Household.Primary.Email)
	if err != nil {
		return fmt.Errorf("failed to set primary occupant: %w", err)
	}
	m.SetAllocation(0, shares.TotalRentShares(), shares.TotalUtilitiesShares(), shares.Budget())

	bills := billing.NewLedger(logger)
	notifier, closeNotifier, err := newNotifier(cfg.Notify, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	core := &service.Core{
		Shares: shares,
		Bills:  bills,
		Generator: billing.NewGenerator(shares, bills,
			billing.WithDueDay(cfg.Household.DueDay),
			billing.WithGeneratorLogger(logger),
		),
		Payments: payments.New(shares, payments.WithLogger(logger)),
		Property: property.NewStore(models.PropertySettings{
			UnitNo:       cfg.Property.UnitNo,
			Address:      cfg.Property.Address,
			PropertyName: cfg.Property.PropertyName,
			WifiSSID:     cfg.Property.WifiSSID,
			WifiPassword: cfg.Property.WifiPassword,
		}, property.WithLogger(logger)),
		Metrics:  m,
		Notifier: notifier,
		Currency: service.Currency{
			Code:   cfg.Household.Currency.Code,
			Symbol: cfg.Household.Currency.Symbol,
			Name:   cfg.Household.Currency.Name,
		},
		Logger: logger,
	}

	mux := http.NewServeMux()
	service.Register(mux, core, connect.WithInterceptors(
		middleware.ActorInterceptor(),
		middleware.LoggingInterceptor(logger),
		m.Interceptor(),
		service.ValidationInterceptor(),
	))

	// h2c serves HTTP/2 without TLS for gRPC clients.
	handler := h2c.NewHandler(middleware.HTTPLogging(logger, middleware.CORS(mux)), &http2.Server{})
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	metricsServer := metrics.NewServer(cfg.Server.MetricsPort, registry, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Connect server starting",
			"address", server.Addr,
			"primary_id", primary.ID,
			"total_rent", cfg.Household.TotalRent,
			"currency", cfg.Household.Currency.Code,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("connect server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return errors.Join(server.Shutdown(shutdownCtx), metricsServer.Shutdown(shutdownCtx))
	})

	return g.Wait()
}

// newNotifier publishes to AMQP when a URL is configured and logs events
// otherwise.
func newNotifier(cfg config.NotifyConfig, logger *slog.Logger) (notify.Notifier, func(), error) {
	if cfg.AMQPURL == "" {
		logger.Info("No AMQP URL configured, logging billing events")
		return notify.LogNotifier{Logger: logger}, func() {}, nil
	}

	publisher, err := notify.DialAMQP(cfg.AMQPURL, cfg.Exchange, cfg.RoutingKey, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to AMQP: %w", err)
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("Failed to close AMQP publisher", "error", err)
		}
	}, nil
}
