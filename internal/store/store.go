package store

import (
	"context"

	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/store/schema"
)

// HistogramFilter narrows FindHistograms results. Nil pointer fields
// are ignored. User scopes the result set to records the caller may
// read; a nil User matches public records only.
type HistogramFilter struct {
	ItemID           *string
	FileID           *string
	JobID            *string
	CorrelationToken *string
	Bins             *int
	Label            *bool
	Bitmask          *bool
	User *domain.User
	// Sort is "created" (default) or "updated"; always newest first.
	Sort   string
	Limit  int
	Offset uint64
}

// CreateHistogramInput carries the fields of a provisional histogram
// record minted at submission time.
type CreateHistogramInput struct {
	ItemID           string
	Label            bool
	Bitmask          bool
	Bins             int
	Notify           bool
	CorrelationToken string
	JobID            string
	WorkflowID       string
	Access           []byte
}

// CreateFileInput carries the metadata of a newly stored file.
type CreateFileInput struct {
	ItemID     string
	Name       string
	MimeType   string
	SizeBytes  int64
	StorageKey string
	Checksum   string
	CreatorID  string
}

// CreateNotificationInput carries a user-facing notification payload.
type CreateNotificationInput struct {
	UserID    string
	Type      string
	Data      []byte
	ExpirySec int
}

// RemovedFile describes a file row deleted as part of a cascading
// histogram removal, so callers can clean up the blob bytes.
type RemovedFile struct {
	FileID     string
	StorageKey string
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// FindHistograms lists histogram records matching the filter, newest first
	FindHistograms(ctx context.Context, filter HistogramFilter) ([]schema.Histogram, uint64, error)
	// GetHistogram retrieves a histogram record by ID, nil when absent
	GetHistogram(ctx context.Context, id string) (*schema.Histogram, error)
	// CreateHistogram mints a provisional (expected) histogram record
	CreateHistogram(ctx context.Context, input CreateHistogramInput) (*schema.Histogram, error)
	// SaveHistogram persists changes to an existing histogram record
	SaveHistogram(ctx context.Context, histogram *schema.Histogram) error
	// RemoveHistogram deletes a record and, unless keepFile, its result file row
	RemoveHistogram(ctx context.Context, id string, keepFile bool) (*RemovedFile, error)
	// SetHistogramAccess replaces the ACL on a histogram record
	SetHistogramAccess(ctx context.Context, id string, access []byte) error
	// HistogramsByToken lists records carrying the given correlation
	// token, capped at two rows since callers only need to tell one
	// match apart from none or many
	HistogramsByToken(ctx context.Context, token string) ([]schema.Histogram, error)
	// HistogramsByItem lists records derived from the given item
	HistogramsByItem(ctx context.Context, itemID string) ([]schema.Histogram, error)
	// HistogramsByFile lists records whose result file is the given file
	HistogramsByFile(ctx context.Context, fileID string) ([]schema.Histogram, error)
	// ResolveUpload binds an uploaded result file to the single record
	// holding the token. It returns the match count; the record is only
	// updated when the count is exactly one.
	ResolveUpload(ctx context.Context, token string, fileID string) (*schema.Histogram, int, error)

	// GetItem retrieves an item by ID, nil when absent
	GetItem(ctx context.Context, id string) (*schema.Item, error)
	// CreateItem creates an item
	CreateItem(ctx context.Context, item *schema.Item) error
	// GetFile retrieves a file by ID, nil when absent
	GetFile(ctx context.Context, id string) (*schema.File, error)
	// CreateFile creates a file row and returns it
	CreateFile(ctx context.Context, input CreateFileInput) (*schema.File, error)
	// RemoveFile deletes a file row
	RemoveFile(ctx context.Context, id string) error
	// NewestImageFile returns the most recent image-typed file of an item, nil when none
	NewestImageFile(ctx context.Context, itemID string) (*schema.File, error)

	// CreateNotification persists a short-lived user notification
	CreateNotification(ctx context.Context, input CreateNotificationInput) error

	// DefaultBins reads the configured default bin count
	DefaultBins(ctx context.Context) (int, error)
	// SetDefaultBins stores the default bin count, rejecting negatives
	SetDefaultBins(ctx context.Context, bins int) error
}
