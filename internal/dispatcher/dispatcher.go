// Package dispatcher turns synchronous histogram requests into compute
// workflow submissions. Each submission mints a provisional record
// carrying a fresh correlation token; the reconciler later binds the
// computed output back to that record.
package dispatcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/api/enums/v1"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/providers/temporal"
	"github.com/slide-archive/histogramd/internal/store"
	"github.com/slide-archive/histogramd/internal/store/schema"
	"github.com/slide-archive/histogramd/internal/workflows"
)

// Config holds dispatcher settings.
type Config struct {
	TaskQueue          string
	WorkflowRunTimeout time.Duration
}

// SubmitInput is a request to compute a histogram for an item.
type SubmitInput struct {
	ItemID  string
	Label   bool
	Bitmask bool
	// Notify asks for a user notification when the compute job ends
	Notify bool
	// FileID selects the source file explicitly. When nil the newest
	// image file of the item is used.
	FileID *string
	// Bins overrides the configured default when set.
	Bins *int
	User *domain.User
}

// Dispatcher submits histogram compute jobs
//
//go:generate mockgen -source=dispatcher.go -destination=../mocks/dispatcher.go -package=mocks -mock_names=Dispatcher=MockDispatcher
type Dispatcher interface {
	// Submit validates the request, mints the provisional record and
	// starts the compute workflow
	Submit(ctx context.Context, input SubmitInput) (*schema.Histogram, error)
}

type dispatcher struct {
	config       Config
	store        store.Store
	orchestrator temporal.TemporalOrchestrator
}

// NewDispatcher creates a new dispatcher instance
func NewDispatcher(config Config, store store.Store, orchestrator temporal.TemporalOrchestrator) Dispatcher {
	return &dispatcher{
		config:       config,
		store:        store,
		orchestrator: orchestrator,
	}
}

func (d *dispatcher) Submit(ctx context.Context, input SubmitInput) (*schema.Histogram, error) {
	item, err := d.store.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: item %s", domain.ErrNotFound, input.ItemID)
	}

	acl, err := domain.ParseACL(item.Access)
	if err != nil {
		return nil, fmt.Errorf("failed to parse item access: %w", err)
	}
	if !acl.Permits(input.User, domain.AccessWrite) {
		return nil, fmt.Errorf("%w: write access to item %s required", domain.ErrAccessDenied, input.ItemID)
	}

	var file *schema.File
	if input.FileID != nil {
		file, err = d.store.GetFile(ctx, *input.FileID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up file: %w", err)
		}
		if file == nil {
			return nil, fmt.Errorf("%w: file %s", domain.ErrNotFound, *input.FileID)
		}
		if file.ItemID != input.ItemID {
			return nil, domain.NewValidationError("fileId", "file must belong to item")
		}
	} else {
		file, err = d.store.NewestImageFile(ctx, input.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up item files: %w", err)
		}
		if file == nil {
			return nil, fmt.Errorf("%w: item %s has no image file", domain.ErrMissingParameter, input.ItemID)
		}
	}

	bins := 0
	if input.Bins != nil {
		if *input.Bins <= 0 {
			return nil, domain.NewValidationError("bins", "must be a positive integer")
		}
		bins = *input.Bins
	} else {
		bins, err = d.store.DefaultBins(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read default bin count: %w", err)
		}
	}

	jobID := uuid.NewString()
	token := uuid.NewString()
	workflowID := fmt.Sprintf("compute-histogram-%s", jobID)

	userID := ""
	if input.User != nil {
		userID = input.User.ID
	}

	// The record inherits the item's ACL so visibility of the
	// histogram tracks visibility of its source.
	record, err := d.store.CreateHistogram(ctx, store.CreateHistogramInput{
		ItemID:           input.ItemID,
		Label:            input.Label,
		Bitmask:          input.Bitmask,
		Bins:             bins,
		Notify:           input.Notify,
		CorrelationToken: token,
		JobID:            jobID,
		WorkflowID:       workflowID,
		Access:           []byte(item.Access),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create histogram record: %w", err)
	}

	w := workflows.NewComputeWorker(nil)
	_, err = d.orchestrator.ExecuteWorkflow(ctx, client.StartWorkflowOptions{
		ID:                    workflowID,
		TaskQueue:             d.config.TaskQueue,
		WorkflowRunTimeout:    d.config.WorkflowRunTimeout,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}, w.ComputeHistogram, &workflows.ComputeParams{
		JobID:            jobID,
		ItemID:           input.ItemID,
		FileID:           file.ID,
		Label:            input.Label,
		Bitmask:          input.Bitmask,
		Bins:             bins,
		CorrelationToken: token,
		UserID:           userID,
	})
	if err != nil {
		// The record is useless without a running workflow. Roll it
		// back so it cannot linger as a permanently expected record.
		if _, removeErr := d.store.RemoveHistogram(ctx, record.ID, true); removeErr != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to roll back histogram record: %w", removeErr),
				zap.String("histogramID", record.ID))
		}
		return nil, fmt.Errorf("failed to start compute workflow: %w", err)
	}

	logger.InfoCtx(ctx, "histogram compute submitted",
		zap.String("histogramID", record.ID),
		zap.String("itemID", input.ItemID),
		zap.String("jobID", jobID),
		zap.String("workflowID", workflowID))

	return record, nil
}

// WorkflowIDForJob derives the deterministic workflow ID of a job.
func WorkflowIDForJob(jobID string) string {
	return fmt.Sprintf("compute-histogram-%s", jobID)
}

// JobIDFromWorkflow recovers the job ID from a workflow ID, empty when
// the workflow ID was not minted by this dispatcher.
func JobIDFromWorkflow(workflowID string) string {
	const prefix = "compute-histogram-"
	if !strings.HasPrefix(workflowID, prefix) {
		return ""
	}
	return strings.TrimPrefix(workflowID, prefix)
}
