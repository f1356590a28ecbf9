package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/assetstore"
	"github.com/slide-archive/histogramd/internal/config"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/providers/jetstream"
	temporal "github.com/slide-archive/histogramd/internal/providers/temporal"
	"github.com/slide-archive/histogramd/internal/store"
	"github.com/slide-archive/histogramd/internal/workflows"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadWorkerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Debug:     cfg.Debug,
		SentryDSN: cfg.SentryDSN,
		Tags: map[string]string{
			"service": "compute-worker",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting Histogram Compute Worker")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Open the blob assetstore
	assets, err := assetstore.Open(ctx, cfg.Assetstore.BucketURL)
	if err != nil {
		logger.Fatal("Failed to open assetstore", zap.Error(err), zap.String("bucket_url", cfg.Assetstore.BucketURL))
	}
	defer func() { _ = assets.Close() }()
	logger.InfoCtx(ctx, "Opened assetstore", zap.String("bucket_url", cfg.Assetstore.BucketURL))

	// Initialize adapters
	jsonAdapter := adapter.NewJSON()
	jcsAdapter := adapter.NewJCS()
	natsJS := adapter.NewNatsJetStream()

	// Create the event publisher
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
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Initialize executor for activities
	executor := workflows.NewExecutor(dataStore, assets, publisher, jsonAdapter, jcsAdapter)

	// Connect to Temporal
	temporalClient, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
		Logger:    temporal.NewZapLoggerAdapter(logger.Default()),
	})
	if err != nil {
		logger.Fatal("Failed to connect to Temporal", zap.Error(err), zap.String("host_port", cfg.Temporal.HostPort))
	}
	defer temporalClient.Close()
	logger.InfoCtx(ctx, "Connected to Temporal", zap.String("namespace", cfg.Temporal.Namespace))

	// Create Temporal worker
	temporalWorker := worker.New(
		temporalClient,
		cfg.Temporal.TaskQueue,
		worker.Options{
			MaxConcurrentActivityExecutionSize: cfg.Temporal.MaxConcurrentActivityExecutionSize,
			WorkerActivitiesPerSecond:          cfg.Temporal.WorkerActivitiesPerSecond,
			MaxConcurrentActivityTaskPollers:   cfg.Temporal.MaxConcurrentActivityTaskPollers,
		})
	logger.InfoCtx(ctx, "Created Temporal worker", zap.String("taskQueue", cfg.Temporal.TaskQueue))

	// Create compute worker instance
	computeWorker := workflows.NewComputeWorker(executor)

	// Register workflows
	temporalWorker.RegisterWorkflow(computeWorker.ComputeHistogram)

	// Register activities
	temporalWorker.RegisterActivity(executor.DownloadSourceFile)
	temporalWorker.RegisterActivity(executor.ComputeHistogram)
	temporalWorker.RegisterActivity(executor.UploadResult)
	temporalWorker.RegisterActivity(executor.PublishJobStatus)
	logger.InfoCtx(ctx, "Registered workflows and activities")

	// Start worker
	err = temporalWorker.Start()
	if err != nil {
		logger.Fatal("Failed to start worker", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Worker started and listening for tasks")

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down worker...")
	temporalWorker.Stop()
	logger.Info("Worker stopped")
}
