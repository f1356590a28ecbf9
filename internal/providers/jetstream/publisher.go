package jetstream

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/messaging"
)

// Config holds the configuration for NATS JetStream connection
type Config struct {
	URL            string
	StreamName     string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
	PublishRetries uint64
}

type publisher struct {
	nc             adapter.NatsConn
	js             adapter.JetStream
	streamName     string
	json           adapter.JSON
	publishRetries uint64
}

// NewPublisher creates a new NATS JetStream publisher
func NewPublisher(cfg Config, natsJS adapter.NatsJetStream, jsonAdapter adapter.JSON) (messaging.Publisher, error) {
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

	return &publisher{
		nc:             nc,
		js:             js,
		streamName:     cfg.StreamName,
		json:           jsonAdapter,
		publishRetries: cfg.PublishRetries,
	}, nil
}

// PublishUploadComplete announces that a file finished uploading
func (p *publisher) PublishUploadComplete(ctx context.Context, event *domain.UploadCompleteEvent) error {
	return p.publish(ctx, messaging.SubjectFileUploaded, event)
}

// PublishJobStatus announces a job lifecycle transition
func (p *publisher) PublishJobStatus(ctx context.Context, event *domain.JobStatusEvent) error {
	return p.publish(ctx, messaging.SubjectJobStatus, event)
}

// PublishJobProgress attaches a progress message to a job
func (p *publisher) PublishJobProgress(ctx context.Context, message *domain.JobProgressMessage) error {
	return p.publish(ctx, messaging.SubjectJobProgress, message)
}

func (p *publisher) publish(ctx context.Context, subject string, payload interface{}) error {
	data, err := p.json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	logger.Debug("Publishing event", zap.String("subject", subject))

	operation := func() error {
		_, err := p.js.Publish(ctx, subject, data)
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), p.publishRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	return nil
}

// Close closes the NATS connection
func (p *publisher) Close() {
	if p.nc == nil {
		return
	}

	p.nc.Close()
}
