package messaging

import (
	"context"

	"github.com/slide-archive/histogramd/internal/domain"
)

// Subjects carried on the stream. The bridge consumes the first four;
// job progress is a fire-and-forget annotation for job pollers.
const (
	SubjectFileUploaded = "cms.file.uploaded"
	SubjectJobStatus    = "cms.job.status"
	SubjectItemRemoved  = "cms.item.removed"
	SubjectFileRemoved  = "cms.file.removed"
	SubjectJobProgress  = "cms.job.progress"
)

// Publisher defines the interface for publishing events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishUploadComplete announces that a file finished uploading
	PublishUploadComplete(ctx context.Context, event *domain.UploadCompleteEvent) error
	// PublishJobStatus announces a job lifecycle transition
	PublishJobStatus(ctx context.Context, event *domain.JobStatusEvent) error
	// PublishJobProgress attaches a progress message to a job
	PublishJobProgress(ctx context.Context, message *domain.JobProgressMessage) error
	// Close closes the connection
	Close()
}
