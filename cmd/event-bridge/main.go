package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/assetstore"
	"github.com/slide-archive/histogramd/internal/bridge"
	"github.com/slide-archive/histogramd/internal/config"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/providers/jetstream"
	"github.com/slide-archive/histogramd/internal/reconciler"
	"github.com/slide-archive/histogramd/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadEventBridgeConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "event-bridge",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting Event Bridge")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open the blob assetstore
	assets, err := assetstore.Open(ctx, cfg.Assetstore.BucketURL)
	if err != nil {
		logger.Fatal("Failed to open assetstore", zap.Error(err), zap.String("bucket_url", cfg.Assetstore.BucketURL))
	}
	defer func() { _ = assets.Close() }()
	logger.Info("Opened assetstore", zap.String("bucket_url", cfg.Assetstore.BucketURL))

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	natsJS := adapter.NewNatsJetStream()

	// Create the event publisher (job progress annotations)
	publisher, err := jetstream.NewPublisher(jetstream.Config{
		URL:            cfg.NATS.URL,
		StreamName:     cfg.NATS.StreamName,
		MaxReconnects:  cfg.NATS.MaxReconnects,
		ReconnectWait:  cfg.NATS.ReconnectWait,
		ConnectionName: cfg.NATS.ConnectionName,
		PublishRetries: cfg.NATS.PublishRetries,
	}, natsJS, jsonAdapter)
	if err != nil {
		logger.Fatal("Failed to create publisher", zap.Error(err), zap.String("url", cfg.NATS.URL))
	}
	defer publisher.Close()

	// Create reconciler
	rec := reconciler.NewReconciler(dataStore, assets, publisher, jsonAdapter)

	// Create bridge
	eventBridge, err := bridge.NewBridge(
		bridge.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			ConsumerName:   cfg.NATS.ConsumerName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
			AckWaitTimeout: cfg.NATS.AckWait,
			MaxDeliver:     cfg.NATS.MaxDeliver,
			PoolWorkers:    cfg.Worker.PoolSize,
			PoolQueueSize:  cfg.Worker.QueueSize,
		},
		natsJS,
		rec,
		jsonAdapter,
	)
	if err != nil {
		logger.Fatal("Failed to create event bridge", zap.Error(err))
	}
	defer eventBridge.Close()
	logger.Info("Event bridge created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for bridge errors
	errCh := make(chan error, 1)

	// Start the bridge
	go func() {
		if err := eventBridge.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "bridge"))
		cancel()
	}

	// Give some time for graceful shutdown
	time.Sleep(time.Second)

	logger.Info("Event Bridge stopped")
}
