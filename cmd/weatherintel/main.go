package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/weather-intel-service/internal/acquire"
	"github.com/couchcryptid/weather-intel-service/internal/adapter/earthdata"
	httpadapter "github.com/couchcryptid/weather-intel-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/weather-intel-service/internal/adapter/kafka"
	"github.com/couchcryptid/weather-intel-service/internal/analysis"
	"github.com/couchcryptid/weather-intel-service/internal/config"
	"github.com/couchcryptid/weather-intel-service/internal/features"
	"github.com/couchcryptid/weather-intel-service/internal/forecast"
	"github.com/couchcryptid/weather-intel-service/internal/observability"
	"github.com/couchcryptid/weather-intel-service/internal/risk"
	"github.com/couchcryptid/weather-intel-service/internal/synthetic"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	creds, err := earthdata.LoadCredentials(cfg.EarthdataNetrc)
	if err != nil {
		logger.Warn("earthdata credentials unavailable, real fetches disabled", "error", err)
	}
	if creds == nil {
		logger.Info("no earthdata credentials, all series will be simulated")
	}

	clients := map[string]acquire.SourceClient{
		"MERRA2_400":  earthdata.NewMERRA2Client(creds, cfg.FetchTimeout, logger),
		"IMERG_FINAL": earthdata.NewIMERGClient(),
	}

	synth := synthetic.New(uint64(time.Now().UnixNano()))
	manager := acquire.NewManager(clients, synth, acquire.Options{
		MaxDailyRequests: cfg.MaxDailyRequests,
		MaxRangeDays:     cfg.MaxRangeDays,
		CacheSize:        cfg.FetchCacheSize,
	}, logger, metrics)

	builder := features.NewBuilder(logger)
	forecaster := forecast.New(builder, logger, metrics)
	scorer := risk.NewScorer(forecaster, logger, metrics)

	// Results publication is feature-flagged via KAFKA_RESULTS_TOPIC /
	// KAFKA_ENABLED.
	var publisher analysis.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka results publication enabled", "topic", cfg.KafkaResultsTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("kafka results publication disabled")
	}

	service := analysis.NewService(manager, forecaster, scorer, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
