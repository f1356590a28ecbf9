package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
)

// ComputeHistogram computes a histogram for one source file
func (w *computeWorker) ComputeHistogram(ctx workflow.Context, params *ComputeParams) error {
	logger.Info("Computing histogram",
		zap.String("jobID", params.JobID),
		zap.String("itemID", params.ItemID),
		zap.String("fileID", params.FileID))

	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute, // large source images decode slowly
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	// Announce the job as running. Status events are advisory; a
	// failure here must not stop the compute itself.
	if err := workflow.ExecuteActivity(ctx, w.executor.PublishJobStatus,
		w.statusEvent(params, domain.JobStatusRunning)).Get(ctx, nil); err != nil {
		logger.Warn("Failed to publish running status (non-fatal)",
			zap.String("jobID", params.JobID),
			zap.Error(err))
	}

	// Step 1: Verify the source file and resolve its storage key
	var storageKey string
	err := workflow.ExecuteActivity(ctx, w.executor.DownloadSourceFile, params.FileID).Get(ctx, &storageKey)
	if err != nil {
		logger.Error(fmt.Errorf("failed to resolve source file: %w", err),
			zap.String("jobID", params.JobID),
			zap.String("fileID", params.FileID))
		return w.fail(ctx, params, err)
	}

	// Step 2: Decode the pixels, compute the histogram and store the
	// canonical result document
	var output *ComputeOutput
	err = workflow.ExecuteActivity(ctx, w.executor.ComputeHistogram, &ComputeInput{
		JobID:      params.JobID,
		StorageKey: storageKey,
		Label:      params.Label,
		Bitmask:    params.Bitmask,
		Bins:       params.Bins,
	}).Get(ctx, &output)
	if err != nil {
		logger.Error(fmt.Errorf("failed to compute histogram: %w", err),
			zap.String("jobID", params.JobID),
			zap.String("fileID", params.FileID))
		return w.fail(ctx, params, err)
	}

	// Step 3: Register the result file and publish the upload event
	// carrying the correlation token
	var resultFileID string
	err = workflow.ExecuteActivity(ctx, w.executor.UploadResult, &UploadInput{
		ItemID:           params.ItemID,
		JobID:            params.JobID,
		UserID:           params.UserID,
		CorrelationToken: params.CorrelationToken,
		ResultKey:        output.ResultKey,
		SizeBytes:        output.SizeBytes,
		Checksum:         output.Checksum,
	}).Get(ctx, &resultFileID)
	if err != nil {
		logger.Error(fmt.Errorf("failed to upload histogram result: %w", err),
			zap.String("jobID", params.JobID))
		return w.fail(ctx, params, err)
	}

	// Step 4: Announce success
	if err := workflow.ExecuteActivity(ctx, w.executor.PublishJobStatus,
		w.statusEvent(params, domain.JobStatusSuccess)).Get(ctx, nil); err != nil {
		logger.Warn("Failed to publish success status (non-fatal)",
			zap.String("jobID", params.JobID),
			zap.Error(err))
	}

	logger.Info("Histogram computed successfully",
		zap.String("jobID", params.JobID),
		zap.String("resultFileID", resultFileID))

	return nil
}

// fail reports the terminal error status before surfacing the failure
// to Temporal. The status event drives the reconciler's cleanup of the
// expected record.
func (w *computeWorker) fail(ctx workflow.Context, params *ComputeParams, cause error) error {
	if err := workflow.ExecuteActivity(ctx, w.executor.PublishJobStatus,
		w.statusEvent(params, domain.JobStatusError)).Get(ctx, nil); err != nil {
		logger.Warn("Failed to publish error status (non-fatal)",
			zap.String("jobID", params.JobID),
			zap.Error(err))
	}
	return cause
}

func (w *computeWorker) statusEvent(params *ComputeParams, status domain.JobStatus) *domain.JobStatusEvent {
	return &domain.JobStatusEvent{
		JobID: params.JobID,
		Meta: domain.JobMeta{
			Creator:          domain.JobCreator,
			Task:             domain.JobTask,
			CorrelationToken: params.CorrelationToken,
		},
		Status: status,
		UserID: params.UserID,
	}
}
