package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Item represents the items table. Items group uploaded files and carry
// the ACL that derived histogram records inherit.
type Item struct {
	// ID is the ULID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Name is the display name of the item
	Name string `gorm:"column:name;not null;type:text"`
	// CreatorID is the user who created the item
	CreatorID string `gorm:"column:creator_id;not null;type:text"`
	// Access is the item ACL
	Access datatypes.JSON `gorm:"column:access;type:jsonb"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Item model
func (Item) TableName() string {
	return "items"
}
