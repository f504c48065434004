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

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Svaella/app-atension-api/internal/application/usecase"
	"github.com/Svaella/app-atension-api/internal/domain/port"
	"github.com/Svaella/app-atension-api/internal/domain/service"
	"github.com/Svaella/app-atension-api/internal/infrastructure/config"
	"github.com/Svaella/app-atension-api/internal/infrastructure/kafka"
	"github.com/Svaella/app-atension-api/internal/infrastructure/ml"
	"github.com/Svaella/app-atension-api/internal/infrastructure/outbox"
	"github.com/Svaella/app-atension-api/internal/infrastructure/postgres"
	"github.com/Svaella/app-atension-api/internal/infrastructure/telemetry"
	grpcpresentation "github.com/Svaella/app-atension-api/internal/presentation/grpc"
	"github.com/Svaella/app-atension-api/internal/presentation/rest"
	"github.com/Svaella/app-atension-api/pkg/events"
	pkgkafka "github.com/Svaella/app-atension-api/pkg/kafka"
	"github.com/Svaella/app-atension-api/pkg/observability"
	pkgpostgres "github.com/Svaella/app-atension-api/pkg/postgres"
)

const serviceName = "htad"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: serviceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting "+serviceName,
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"risk_policy", cfg.RiskPolicy,
		"kafka_tls", cfg.KafkaTLS,
		"kafka_sasl", cfg.KafkaSASLEnabled,
	)

	// Tracing is only exported when a collector is configured.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			SampleRatio: cfg.TraceSampleRatio,
			Insecure:    cfg.OTLPInsecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("tracer shutdown error", "error", err)
				}
			}()
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }()

	assessmentMetrics, err := telemetry.NewAssessmentMetrics(meterProvider.Meter(serviceName))
	if err != nil {
		logger.Error("failed to create assessment metrics", "error", err)
		os.Exit(1)
	}

	// Database connection.
	if cfg.AutoMigrate {
		version, err := pkgpostgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir)
		if err != nil {
			logger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		logger.Info("database migrated", "version", version)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, pkgpostgres.Config{
		URL:             cfg.DatabaseURL,
		ApplicationName: serviceName,
		MaxConns:        cfg.DatabaseMaxConns,
	})
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Wire infrastructure adapters.
	assessmentRepo := postgres.NewAssessmentRepository(pool)

	// Events are always written to the outbox. The relay only runs when
	// publication is enabled, so pending rows wait until it is.
	relayDone := make(chan struct{})
	relayCtx, stopRelay := context.WithCancel(ctx)
	defer stopRelay()
	if cfg.EventsEnabled {
		producer, err := pkgkafka.NewProducer(cfg.Kafka(serviceName))
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Warn("kafka producer close error", "error", err)
			}
		}()

		relay := outbox.NewRelay(pool,
			func(db pkgpostgres.Querier) events.OutboxRepository { return postgres.NewOutboxRepository(db) },
			kafka.NewPublisher(producer, cfg.KafkaTopic, logger),
			outbox.Config{Interval: cfg.OutboxInterval, BatchSize: cfg.OutboxBatchSize},
			logger,
		)
		go func() {
			defer close(relayDone)
			relay.Run(relayCtx)
		}()
	} else {
		close(relayDone)
		logger.Info("event publication disabled, events stay in the outbox")
	}

	predictor, err := newPredictor(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize predictor", "error", err)
		os.Exit(1)
	}

	// Wire domain services.
	thresholds, err := cfg.Thresholds()
	if err != nil {
		logger.Error("invalid risk policy", "error", err)
		os.Exit(1)
	}
	classifier, err := service.NewRiskClassifier(predictor, thresholds)
	if err != nil {
		logger.Error("failed to create risk classifier", "error", err)
		os.Exit(1)
	}
	encoder := service.NewFeatureEncoder()

	// Wire use cases.
	predictRiskUC := usecase.NewPredictRisk(encoder, classifier, assessmentMetrics)
	recordAssessmentUC := usecase.NewRecordAssessment(assessmentRepo, encoder, classifier, assessmentMetrics)
	getAssessmentUC := usecase.NewGetAssessment(assessmentRepo)
	listAssessmentsUC := usecase.NewListAssessments(assessmentRepo)

	// gRPC server.
	grpcHandler := grpcpresentation.NewAssessmentServiceHandler(predictRiskUC, recordAssessmentUC, getAssessmentUC, logger)
	grpcServer, err := grpcpresentation.NewServer(grpcHandler, grpcpresentation.ServerConfig{
		Address:         cfg.GRPCAddress(),
		TLSCertFile:     cfg.TLSCertFile,
		TLSKeyFile:      cfg.TLSKeyFile,
		TLSClientCAFile: cfg.TLSClientCAFile,
		Reflection:      cfg.GRPCReflection,
	}, logger)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	httpMux := http.NewServeMux()
	rest.NewAssessmentHandler(predictRiskUC, recordAssessmentUC, getAssessmentUC, listAssessmentsUC, logger).RegisterRoutes(httpMux)
	rest.NewHealthHandler(serviceName, map[string]rest.ReadinessCheck{
		"database": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}, logger).RegisterRoutes(httpMux)
	httpMux.Handle("GET /metrics", metricsHandler)

	var handler http.Handler = httpMux
	handler = rest.RecoverMiddleware(logger)(handler)
	handler = rest.LoggingMiddleware(logger)(handler)
	handler = otelhttp.NewHandler(handler, serviceName)

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second + cfg.ModelTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info(serviceName+" started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"events_enabled", cfg.EventsEnabled,
	)

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	logger.Info("shutting down " + serviceName)

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	stopRelay()
	<-relayDone

	logger.Info(serviceName + " stopped")
}

// newPredictor selects the model backend: a fixed stub, a remote model
// server, or the logistic artifact on disk, in that order.
func newPredictor(cfg *config.Config, logger *slog.Logger) (port.Predictor, error) {
	switch {
	case cfg.UseStubModel():
		logger.Warn("using stub model", "probability", cfg.StubProbability)
		return ml.NewStubModelClient(cfg.StubProbability, logger), nil
	case cfg.ModelURL != "":
		logger.Info("using remote model server", "url", cfg.ModelURL, "timeout", cfg.ModelTimeout)
		return ml.NewHTTPModelClient(cfg.ModelURL, cfg.ModelTimeout, logger), nil
	default:
		m, err := ml.LoadLogisticModel(cfg.ModelPath)
		if err != nil {
			return nil, err
		}
		logger.Info("model loaded", "path", cfg.ModelPath, "version", m.Version())
		return m, nil
	}
}
