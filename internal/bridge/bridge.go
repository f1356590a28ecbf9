// Package bridge consumes CMS lifecycle events from JetStream and
// feeds them to the reconciler.
package bridge

import (
	"context"
	"fmt"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/messaging"
	"github.com/slide-archive/histogramd/internal/reconciler"
)

// Config holds the configuration for the event bridge
type Config struct {
	URL            string
	StreamName     string
	ConsumerName   string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	AckWaitTimeout time.Duration
	MaxDeliver     int
	PoolWorkers    int
	PoolQueueSize  int
}

// Bridge defines the interface for the event bridge
type Bridge interface {
	// Run starts the event bridge
	Run(ctx context.Context) error
	// Close closes the bridge and cleans up resources
	Close()
}

type bridge struct {
	nc         adapter.NatsConn
	js         adapter.JetStream
	reconciler reconciler.Reconciler
	json       adapter.JSON
	config     Config
}

// NewBridge creates a new event bridge
func NewBridge(
	cfg Config,
	natsJS adapter.NatsJetStream,
	rec reconciler.Reconciler,
	jsonAdapter adapter.JSON,
) (Bridge, error) {
	opts := []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}

	nc, js, err := natsJS.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS and create JetStream: %w", err)
	}

	b := &bridge{
		nc:         nc,
		js:         js,
		reconciler: rec,
		json:       jsonAdapter,
		config:     cfg,
	}

	return b, nil
}

// Run starts the event bridge
func (b *bridge) Run(ctx context.Context) error {
	logger.Info("Starting event bridge", zap.String("stream", b.config.StreamName), zap.String("consumer", b.config.ConsumerName))

	// Subscribe to all CMS lifecycle subjects
	subject := "cms.>"

	// Create or get consumer
	consumerConfig := jetstream.ConsumerConfig{
		Durable:       b.config.ConsumerName,
		AckPolicy:     jetstream.AckExplicitPolicy,
		AckWait:       b.config.AckWaitTimeout,
		MaxDeliver:    b.config.MaxDeliver,
		FilterSubject: subject,
	}

	consumer, err := b.js.CreateOrUpdateConsumer(ctx, b.config.StreamName, consumerConfig)
	if err != nil {
		return fmt.Errorf("failed to create/update consumer: %w", err)
	}

	consumerInfo, err := consumer.Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to get consumer info: %w", err)
	}
	logger.Info("Consumer created/retrieved", zap.String("consumer", consumerInfo.Name))

	// Worker pool bounds how many events are reconciled at once
	pool := pond.NewPool(
		b.config.PoolWorkers,
		pond.WithQueueSize(b.config.PoolQueueSize),
		pond.WithContext(ctx),
	)
	defer pool.StopAndWait()

	// Create subscription
	msgChan := make(chan adapter.Message, 100)
	sub, err := consumer.Consume(func(msg adapter.Message) {
		msgChan <- msg
	})
	if err != nil {
		return fmt.Errorf("failed to create subscription: %w", err)
	}
	defer sub.Stop()

	logger.Info("Started consuming messages")

	// Process messages
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down event bridge")
			return ctx.Err()
		case msg := <-msgChan:
			if _, ok := pool.TrySubmit(func() {
				b.handleMessage(ctx, msg)
			}); !ok {
				// Pool saturated; let the server redeliver later.
				if err := msg.Nak(); err != nil {
					logger.Error(err, zap.String("message", "Failed to NAK message"))
				}
			}
		}
	}
}

// handleMessage processes a single NATS message
func (b *bridge) handleMessage(ctx context.Context, msg adapter.Message) {
	// Get metadata for logging
	metadata, _ := msg.Metadata()

	var deliveryCount uint64
	if metadata != nil {
		deliveryCount = metadata.NumDelivered
	}
	logger.Info("Received event",
		zap.String("subject", msg.Subject()),
		zap.Uint64("deliveryCount", deliveryCount),
	)

	handled, err := b.dispatch(ctx, msg.Subject(), msg.Data())
	if err != nil {
		if handled {
			logger.Error(err, zap.String("message", "Failed to handle event"), zap.String("subject", msg.Subject()))
			// NAK to retry
			if err := msg.Nak(); err != nil {
				logger.Error(err, zap.String("message", "Failed to NAK message"))
			}
		} else {
			logger.Error(err, zap.String("message", "Dropping unprocessable event"), zap.String("subject", msg.Subject()))
			// Terminate, redelivery cannot fix a bad payload
			if err := msg.Term(); err != nil {
				logger.Error(err, zap.String("message", "Failed to terminate message"))
			}
		}
		return
	}

	// ACK message after successful processing
	if err := msg.Ack(); err != nil {
		logger.Error(err, zap.String("message", "Failed to ACK message"))
	}
}

// dispatch routes an event to the reconciler handler for its subject.
// handled is false when the payload could not even be decoded; such
// messages are terminated rather than retried.
func (b *bridge) dispatch(ctx context.Context, subject string, data []byte) (handled bool, err error) {
	switch subject {
	case messaging.SubjectFileUploaded:
		var event domain.UploadCompleteEvent
		if err := b.json.Unmarshal(data, &event); err != nil {
			return false, fmt.Errorf("failed to unmarshal upload event: %w", err)
		}
		return true, b.reconciler.HandleUploadComplete(ctx, &event)
	case messaging.SubjectJobStatus:
		var event domain.JobStatusEvent
		if err := b.json.Unmarshal(data, &event); err != nil {
			return false, fmt.Errorf("failed to unmarshal job status event: %w", err)
		}
		return true, b.reconciler.HandleJobStatus(ctx, &event)
	case messaging.SubjectItemRemoved:
		var event domain.ItemRemovedEvent
		if err := b.json.Unmarshal(data, &event); err != nil {
			return false, fmt.Errorf("failed to unmarshal item removal event: %w", err)
		}
		return true, b.reconciler.HandleItemRemoved(ctx, &event)
	case messaging.SubjectFileRemoved:
		var event domain.FileRemovedEvent
		if err := b.json.Unmarshal(data, &event); err != nil {
			return false, fmt.Errorf("failed to unmarshal file removal event: %w", err)
		}
		return true, b.reconciler.HandleFileRemoved(ctx, &event)
	default:
		// Other subjects on the stream belong to other features.
		return true, nil
	}
}

// Close closes the bridge and cleans up resources
func (b *bridge) Close() {
	if b.nc == nil {
		return
	}

	b.nc.Close()
}
