package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Notification represents the notifications table, short-lived user
// facing messages emitted when a histogram finishes.
type Notification struct {
	// ID is the ULID primary key
	ID string `gorm:"column:id;primaryKey;type:text"`
	// UserID is the notification recipient
	UserID string `gorm:"column:user_id;not null;type:text;index:idx_notifications_user_id"`
	// Type is the notification type discriminator
	Type string `gorm:"column:type;not null;type:text"`
	// Data is the type-specific payload
	Data datatypes.JSON `gorm:"column:data;type:jsonb"`
	// ExpiresAt is the timestamp after which the notification may be purged
	ExpiresAt time.Time `gorm:"column:expires_at;not null;type:timestamptz;index:idx_notifications_expires_at"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}
