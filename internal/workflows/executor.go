package workflows

import (
	"context"
	"fmt"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/assetstore"
	"github.com/slide-archive/histogramd/internal/compute"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/messaging"
	"github.com/slide-archive/histogramd/internal/store"

	"go.uber.org/zap"
)

// ComputeInput identifies the source pixels and the histogram shape
// for a single compute activity.
type ComputeInput struct {
	JobID      string
	StorageKey string
	Label      bool
	Bitmask    bool
	Bins       int
}

// ComputeOutput points at the stored result document.
type ComputeOutput struct {
	ResultKey string
	SizeBytes int64
	Checksum  string
}

// UploadInput registers a stored result as a file and announces it on
// the bus.
type UploadInput struct {
	ItemID           string
	JobID            string
	UserID           string
	CorrelationToken string
	ResultKey        string
	SizeBytes        int64
	Checksum         string
}

// Executor defines the activities the compute workflow runs
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// DownloadSourceFile verifies the source file still exists and
	// returns its storage key
	DownloadSourceFile(ctx context.Context, fileID string) (string, error)
	// ComputeHistogram reads the image bytes, computes the histogram
	// and stores the canonical result document
	ComputeHistogram(ctx context.Context, input *ComputeInput) (*ComputeOutput, error)
	// UploadResult creates the result file record and publishes the
	// upload event carrying the correlation token
	UploadResult(ctx context.Context, input *UploadInput) (string, error)
	// PublishJobStatus reports a job lifecycle transition on the bus
	PublishJobStatus(ctx context.Context, event *domain.JobStatusEvent) error
}

type executor struct {
	store      store.Store
	assetstore assetstore.Assetstore
	publisher  messaging.Publisher
	json       adapter.JSON
	jcs        adapter.JCS
}

// NewExecutor creates a new activity executor
func NewExecutor(
	store store.Store,
	assetstore assetstore.Assetstore,
	publisher messaging.Publisher,
	json adapter.JSON,
	jcs adapter.JCS,
) Executor {
	return &executor{
		store:      store,
		assetstore: assetstore,
		publisher:  publisher,
		json:       json,
		jcs:        jcs,
	}
}

func (e *executor) DownloadSourceFile(ctx context.Context, fileID string) (string, error) {
	file, err := e.store.GetFile(ctx, fileID)
	if err != nil {
		return "", fmt.Errorf("failed to look up source file: %w", err)
	}
	if file == nil {
		return "", fmt.Errorf("%w: file %s", domain.ErrNotFound, fileID)
	}

	exists, err := e.assetstore.Exists(ctx, file.StorageKey)
	if err != nil {
		return "", fmt.Errorf("failed to check source object: %w", err)
	}
	if !exists {
		return "", fmt.Errorf("%w: object %s", domain.ErrNotFound, file.StorageKey)
	}

	return file.StorageKey, nil
}

func (e *executor) ComputeHistogram(ctx context.Context, input *ComputeInput) (*ComputeOutput, error) {
	data, err := e.assetstore.Fetch(ctx, input.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch source object: %w", err)
	}

	pixels, err := compute.DecodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	result, err := compute.Histogram(pixels, compute.Options{
		Label:   input.Label,
		Bitmask: input.Bitmask,
		Bins:    input.Bins,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute histogram: %w", err)
	}

	encoded, err := e.json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal histogram result: %w", err)
	}

	// canonicalize so identical results always produce identical bytes
	canonical, err := e.jcs.Transform(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize histogram result: %w", err)
	}

	key := fmt.Sprintf("histograms/%s.json", input.JobID)
	stored, err := e.assetstore.Put(ctx, key, canonical)
	if err != nil {
		return nil, fmt.Errorf("failed to store histogram result: %w", err)
	}

	return &ComputeOutput{
		ResultKey: stored.Key,
		SizeBytes: stored.SizeBytes,
		Checksum:  stored.Checksum,
	}, nil
}

func (e *executor) UploadResult(ctx context.Context, input *UploadInput) (string, error) {
	file, err := e.store.CreateFile(ctx, store.CreateFileInput{
		ItemID:     input.ItemID,
		Name:       fmt.Sprintf("histogram-%s.json", input.JobID),
		StorageKey: input.ResultKey,
		MimeType:   "application/json",
		SizeBytes:  input.SizeBytes,
		Checksum:   input.Checksum,
		CreatorID:  input.UserID,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create result file record: %w", err)
	}

	reference, err := e.json.Marshal(domain.ReferencePayload{
		IsHistogram:      true,
		CorrelationToken: input.CorrelationToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal upload reference: %w", err)
	}

	event := &domain.UploadCompleteEvent{
		File: domain.FileInfo{
			ID:       file.ID,
			ItemID:   file.ItemID,
			Name:     file.Name,
			MimeType: file.MimeType,
			Size:     file.SizeBytes,
		},
		UserID:    input.UserID,
		Reference: string(reference),
	}
	if err := e.publisher.PublishUploadComplete(ctx, event); err != nil {
		return "", fmt.Errorf("failed to publish upload event: %w", err)
	}

	logger.InfoCtx(ctx, "histogram result uploaded",
		zap.String("fileID", file.ID),
		zap.String("itemID", file.ItemID),
		zap.String("jobID", input.JobID))

	return file.ID, nil
}

func (e *executor) PublishJobStatus(ctx context.Context, event *domain.JobStatusEvent) error {
	if err := e.publisher.PublishJobStatus(ctx, event); err != nil {
		return fmt.Errorf("failed to publish job status: %w", err)
	}
	return nil
}
