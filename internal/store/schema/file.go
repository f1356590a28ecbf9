package schema

import "time"

// File represents the files table. File bytes live in the blob
// assetstore under StorageKey; this table holds the metadata.
type File struct {
	// ID is the ULID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// ItemID is the item the file belongs to
	ItemID string `gorm:"column:item_id;not null;type:text;index:idx_files_item_id"`
	// Name is the file name
	Name string `gorm:"column:name;not null;type:text"`
	// MimeType is the detected MIME type
	MimeType string `gorm:"column:mime_type;not null;type:text"`
	// SizeBytes is the file size in bytes
	SizeBytes int64 `gorm:"column:size_bytes;not null"`
	// StorageKey is the blob key in the assetstore bucket
	StorageKey string `gorm:"column:storage_key;not null;type:text"`
	// Checksum is the hex SHA-256 of the file bytes
	Checksum string `gorm:"column:checksum;not null;type:text"`
	// CreatorID is the user who uploaded the file
	CreatorID string `gorm:"column:creator_id;not null;type:text"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the File model
func (File) TableName() string {
	return "files"
}
