package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectoinject"
	"github.com/Gobusters/ectologger"
	"github.com/Gobusters/ectologger/zapadapter"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/Ramsey-B/aster/config"
	"github.com/Ramsey-B/aster/pkg/archive"
	"github.com/Ramsey-B/aster/pkg/cache"
	"github.com/Ramsey-B/aster/pkg/catalog"
	"github.com/Ramsey-B/aster/pkg/events"
	"github.com/Ramsey-B/aster/pkg/kafka"
	"github.com/Ramsey-B/aster/pkg/middleware"
	"github.com/Ramsey-B/aster/pkg/models"
	"github.com/Ramsey-B/aster/pkg/prediction"
	"github.com/Ramsey-B/aster/pkg/resolution"
	featureroutes "github.com/Ramsey-B/aster/pkg/routes/features"
	"github.com/Ramsey-B/aster/pkg/routes/health"
	"github.com/Ramsey-B/aster/pkg/routes/lightcurve"
	"github.com/Ramsey-B/aster/pkg/routes/predict"
	"github.com/Ramsey-B/aster/pkg/routes/resolve"
	"github.com/Ramsey-B/aster/pkg/tracing"
)

var version = "dev" // set via ldflags

func main() {
	_ = godotenv.Load()

	var cfg config.Config
	if err := ectoenv.BindEnv(&cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := buildLogger(cfg)

	tp := sdktrace.NewTracerProvider()
	otel.SetTracerProvider(tp)
	tracing.SetTracer(otel.Tracer(cfg.AppName))

	archiveClient := archive.NewHTTPClient(archive.Config{
		TAPURL:            cfg.ArchiveTAPURL,
		TESSCutURL:        cfg.TESSCutURL,
		LightcurveURL:     cfg.LightcurveURL,
		Timeout:           cfg.ArchiveTimeout,
		LightcurveTimeout: cfg.LightcurveTimeout,
		MaxResponseBytes:  cfg.ArchiveMaxResponseBytes,
	}, logger)

	adapters := []catalog.Adapter{
		catalog.NewTESSAdapter(archiveClient, logger),
		catalog.NewKeplerAdapter(archiveClient, logger),
		catalog.NewK2Adapter(archiveClient, logger),
	}

	store := cache.New(cache.Config{
		PredictionTTL: cfg.PredictionCacheTTL,
		FeaturesTTL:   cfg.FeaturesCacheTTL,
		LightcurveTTL: cfg.LightcurveCacheTTL,
	})

	modelClient := prediction.NewHTTPModelClient(cfg.ModelServiceURL, cfg.ModelServiceTimeout, logger)

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaOutputTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer producer.Close()
	}
	emitter := events.NewEmitter(producer, logger)

	aggregator := resolution.NewAggregator(adapters, emitter, logger)
	predictor := prediction.NewService(adapters, modelClient, prediction.Thresholds{
		models.MissionTESS:   cfg.TESSThreshold,
		models.MissionKepler: cfg.KeplerThreshold,
		models.MissionK2:     cfg.K2Threshold,
	}, store, emitter, logger)

	if err := registerDependencies(logger, archiveClient, store, modelClient, aggregator, predictor); err != nil {
		log.Fatalf("failed to register dependencies: %v", err)
	}

	checker := health.NewChecker(archiveClient, modelClient, version)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(middleware.Context())
	e.Use(middleware.Logger(logger))
	e.Use(otelecho.Middleware(cfg.AppName))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: cfg.AllowMethods,
	}))

	api := e.Group("/api/v1")
	resolve.Register(api.Group("/resolve"))
	featureroutes.Register(api.Group("/features"))
	predict.Register(api.Group("/predict"))
	lightcurve.Register(api.Group("/lightcurve"))
	checker.RegisterRoutes(e)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           e,
		ReadTimeout:       time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		logger.Infof("%s listening on :%d", cfg.AppName, cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("server stopped unexpectedly")
			os.Exit(1)
		}
	}()
	checker.SetReady(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	checker.SetReady(false)
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	_ = tp.Shutdown(ctx)
}

func buildLogger(cfg config.Config) ectologger.Logger {
	var zapLogger *zap.Logger
	var err error
	if cfg.PrettyLogs {
		zapLogger, err = zap.NewDevelopment()
	} else {
		zapLogger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	return zapadapter.NewZapEctoLogger(zapLogger, nil)
}

func registerDependencies(
	logger ectologger.Logger,
	archiveClient *archive.HTTPClient,
	store *cache.Cache,
	modelClient *prediction.HTTPModelClient,
	aggregator *resolution.Aggregator,
	predictor *prediction.Service,
) error {
	container, err := ectoinject.NewDIDefaultContainer()
	if err != nil {
		return err
	}

	if err := ectoinject.RegisterInstance[ectologger.Logger](container, logger); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[archive.Client](container, archiveClient); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*cache.Cache](container, store); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[prediction.ModelClient](container, modelClient); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*resolution.Aggregator](container, aggregator); err != nil {
		return err
	}
	if err := ectoinject.RegisterInstance[*prediction.Service](container, predictor); err != nil {
		return err
	}
	return nil
}
