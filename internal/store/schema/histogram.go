package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Histogram represents the histograms table, one record per requested
// histogram of an item's image file. A record starts out provisional
// (Expected=true) and is resolved once the computed result file has
// been uploaded.
type Histogram struct {
	// ID is the ULID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ItemID is the item whose image file the histogram describes
	ItemID string `gorm:"column:item_id;not null;type:text;index:idx_histograms_item_id"`
	// FileID is the computed result file, nil while the record is provisional
	FileID *string `gorm:"column:file_id;type:text;index:idx_histograms_file_id"`
	// Label, when true, restricts the histogram to non-zero pixels
	Label bool `gorm:"column:label;not null;default:false"`
	// Bitmask, when true, counts set bits per bit position instead of binning values
	Bitmask bool `gorm:"column:bitmask;not null;default:false"`
	// Bins is the requested bin count for non-8-bit data
	Bins int `gorm:"column:bins;not null"`
	// Notify, when true, asks for a user notification once the compute
	// job ends. The reconciler clears it when it fires the notification.
	Notify bool `gorm:"column:notify;not null;default:false"`
	// Expected is true while the record still awaits its result file
	Expected bool `gorm:"column:expected;not null;default:true;index:idx_histograms_expected"`
	// CorrelationToken ties the record to the upload produced by its job
	CorrelationToken *string `gorm:"column:correlation_token;type:text;index:idx_histograms_correlation_token"`
	// JobID is the compute job handling this record
	JobID *string `gorm:"column:job_id;type:text;index:idx_histograms_job_id"`
	// WorkflowID is the orchestrator workflow ID for the compute job
	WorkflowID *string `gorm:"column:workflow_id;type:text"`
	// Access is the record ACL copied from the item at submission time
	Access datatypes.JSON `gorm:"column:access;type:jsonb"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Histogram model
func (Histogram) TableName() string {
	return "histograms"
}
