// Package reconciler binds asynchronous compute outcomes back to
// histogram records. It consumes upload, job status and removal events
// and is insensitive to the order they arrive in: each handler acts
// only on the state it can prove from the database.
package reconciler

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/assetstore"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	"github.com/slide-archive/histogramd/internal/messaging"
	"github.com/slide-archive/histogramd/internal/store"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

// notificationExpirySec bounds how long a finished-histogram
// notification stays visible to the user.
const notificationExpirySec = 30

// notificationType labels finished-histogram notifications.
const notificationType = "histogram.finished_histogram"

// Reconciler handles lifecycle events for histogram records
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks -mock_names=Reconciler=MockReconciler
type Reconciler interface {
	// HandleUploadComplete binds an uploaded result file to the single
	// expected record carrying its correlation token
	HandleUploadComplete(ctx context.Context, event *domain.UploadCompleteEvent) error
	// HandleJobStatus cleans up expected records whose compute job
	// ended without producing output
	HandleJobStatus(ctx context.Context, event *domain.JobStatusEvent) error
	// HandleItemRemoved cascades an item deletion to its histogram
	// records and their stored results
	HandleItemRemoved(ctx context.Context, event *domain.ItemRemovedEvent) error
	// HandleFileRemoved removes histogram records whose result file
	// was deleted
	HandleFileRemoved(ctx context.Context, event *domain.FileRemovedEvent) error
}

type reconciler struct {
	store      store.Store
	assetstore assetstore.Assetstore
	publisher  messaging.Publisher
	json       adapter.JSON
}

// NewReconciler creates a new reconciler instance
func NewReconciler(
	store store.Store,
	assetstore assetstore.Assetstore,
	publisher messaging.Publisher,
	json adapter.JSON,
) Reconciler {
	return &reconciler{
		store:      store,
		assetstore: assetstore,
		publisher:  publisher,
		json:       json,
	}
}

func (r *reconciler) HandleUploadComplete(ctx context.Context, event *domain.UploadCompleteEvent) error {
	reference, ok := domain.ParseReference(event.Reference)
	if !ok || !reference.IsHistogram {
		// Uploads belonging to other features pass through untouched.
		return nil
	}
	if reference.CorrelationToken == "" {
		logger.WarnCtx(ctx, "histogram upload carries no correlation token",
			zap.String("fileID", event.File.ID))
		return nil
	}

	record, matches, err := r.store.ResolveUpload(ctx, reference.CorrelationToken, event.File.ID)
	if err != nil {
		return fmt.Errorf("failed to resolve histogram upload: %w", err)
	}

	switch {
	case matches == 0:
		// The record was already resolved or its job was cleaned up.
		// Either way there is nothing left to bind the file to.
		logger.WarnCtx(ctx, "no expected histogram record for upload",
			zap.String("fileID", event.File.ID),
			zap.String("token", reference.CorrelationToken))
		return nil
	case matches > 1:
		// Tokens are minted per submission so this should never
		// happen. Touching any record would be a guess; touch none.
		logger.WarnCtx(ctx, "ambiguous histogram upload, multiple expected records share token",
			zap.String("fileID", event.File.ID),
			zap.String("token", reference.CorrelationToken),
			zap.Int("matches", matches))
		return nil
	}

	logger.InfoCtx(ctx, "histogram record resolved",
		zap.String("histogramID", record.ID),
		zap.String("fileID", event.File.ID))
	return nil
}

func (r *reconciler) HandleJobStatus(ctx context.Context, event *domain.JobStatusEvent) error {
	if event.Meta.Creator != domain.JobCreator || event.Meta.Task != domain.JobTask {
		// Job events from other features.
		return nil
	}

	status := event.EffectiveStatus()
	if !status.Terminal() {
		return nil
	}

	records, err := r.store.HistogramsByToken(ctx, event.Meta.CorrelationToken)
	if err != nil {
		return fmt.Errorf("failed to list histograms for token: %w", err)
	}
	if len(records) != 1 {
		logger.WarnCtx(ctx, "job event does not match exactly one histogram record",
			zap.String("jobID", event.JobID),
			zap.String("token", event.Meta.CorrelationToken),
			zap.Int("matches", len(records)))
		return nil
	}
	record := records[0]
	notify := record.Notify

	if status == domain.JobStatusSuccess {
		// Resolution happens through the upload event, which can
		// legitimately land after this one; Expected stays as it is.
		if record.Expected {
			logger.Debug("histogram job succeeded before upload event landed",
				zap.String("histogramID", record.ID),
				zap.String("jobID", event.JobID))
		}
		record.Notify = false
		if err := r.store.SaveHistogram(ctx, &record); err != nil {
			return fmt.Errorf("failed to save histogram record: %w", err)
		}
	} else {
		// The job failed or was canceled; the record will never resolve.
		if err := r.removeRecord(ctx, record.ID, false); err != nil {
			return err
		}
		logger.InfoCtx(ctx, "removed histogram record for failed job",
			zap.String("histogramID", record.ID),
			zap.String("jobID", event.JobID),
			zap.String("status", string(status)))
	}

	if notify {
		r.notifyJobEnded(ctx, &record, event, status)
	}
	return nil
}

// notifyJobEnded tells the submitting user how their histogram job
// ended. Failures here are logged, not returned: the record state is
// already settled and redelivering the event would double-apply it.
func (r *reconciler) notifyJobEnded(ctx context.Context, record *schema.Histogram, event *domain.JobStatusEvent, status domain.JobStatus) {
	fileID := ""
	if record.FileID != nil {
		fileID = *record.FileID
	}
	jobID := ""
	if record.JobID != nil {
		jobID = *record.JobID
	}

	var msg string
	switch status {
	case domain.JobStatusSuccess:
		msg = "Histogram created"
	case domain.JobStatusCanceled:
		msg = "Histogram creation canceled"
	default:
		msg = "FAILED: Histogram creation failed"
	}
	msg = fmt.Sprintf("%s for item %s, file %s", msg, record.ItemID, fileID)

	// A deleted job has nothing left to attach a progress message to.
	if !event.Deleted {
		if err := r.publisher.PublishJobProgress(ctx, &domain.JobProgressMessage{
			JobID:   jobID,
			UserID:  event.UserID,
			Message: msg,
		}); err != nil {
			logger.WarnCtx(ctx, "failed to publish job progress",
				zap.String("histogramID", record.ID),
				zap.Error(err))
		}
	}

	if event.UserID == "" {
		logger.WarnCtx(ctx, "notification requested but job event carries no user",
			zap.String("histogramID", record.ID),
			zap.String("jobID", event.JobID))
		return
	}

	data, err := r.json.Marshal(map[string]interface{}{
		"histogramId": record.ID,
		"itemId":      record.ItemID,
		"fileId":      fileID,
		"jobId":       jobID,
		"success":     status == domain.JobStatusSuccess,
		"status":      string(status),
	})
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to marshal notification payload: %w", err),
			zap.String("histogramID", record.ID))
		return
	}

	if err := r.store.CreateNotification(ctx, store.CreateNotificationInput{
		UserID:    event.UserID,
		Type:      notificationType,
		Data:      data,
		ExpirySec: notificationExpirySec,
	}); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to create notification: %w", err),
			zap.String("histogramID", record.ID))
	}
}

func (r *reconciler) HandleItemRemoved(ctx context.Context, event *domain.ItemRemovedEvent) error {
	records, err := r.store.HistogramsByItem(ctx, event.ItemID)
	if err != nil {
		return fmt.Errorf("failed to list histograms for item: %w", err)
	}

	for _, record := range records {
		if err := r.removeRecord(ctx, record.ID, false); err != nil {
			return err
		}
	}

	if len(records) > 0 {
		logger.InfoCtx(ctx, "removed histogram records for deleted item",
			zap.String("itemID", event.ItemID),
			zap.Int("count", len(records)))
	}
	return nil
}

func (r *reconciler) HandleFileRemoved(ctx context.Context, event *domain.FileRemovedEvent) error {
	records, err := r.store.HistogramsByFile(ctx, event.FileID)
	if err != nil {
		return fmt.Errorf("failed to list histograms for file: %w", err)
	}

	for _, record := range records {
		// The file row and its bytes are already being removed by
		// whoever fired the event; only the record itself goes.
		if err := r.removeRecord(ctx, record.ID, true); err != nil {
			return err
		}
		logger.InfoCtx(ctx, "removed histogram record for deleted result file",
			zap.String("histogramID", record.ID),
			zap.String("fileID", event.FileID))
	}
	return nil
}

// removeRecord deletes a histogram record and, unless keepFile, its
// result file row and stored bytes.
func (r *reconciler) removeRecord(ctx context.Context, id string, keepFile bool) error {
	removed, err := r.store.RemoveHistogram(ctx, id, keepFile)
	if err != nil {
		return fmt.Errorf("failed to remove histogram record: %w", err)
	}
	if removed == nil {
		return nil
	}

	if err := r.assetstore.Delete(ctx, removed.StorageKey); err != nil {
		// The record and file row are gone; an orphaned blob is
		// recoverable by a sweep, a failed event is not.
		logger.WarnCtx(ctx, "failed to delete histogram result object",
			zap.String("storageKey", removed.StorageKey),
			zap.Error(err))
	}
	return nil
}
