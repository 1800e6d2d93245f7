package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType represents what triggered a notification
type NotificationType string

const (
	NotificationTaskAssigned NotificationType = "task_assigned"
	NotificationCommentAdded NotificationType = "comment_added"
)

// Notification is a stored, in-app message for a single user.
// Delivery (push, email) is out of scope; rows are only read back.
type Notification struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	UserID       uuid.UUID        `json:"user_id" db:"user_id"`
	Type         NotificationType `json:"type" db:"type"`
	Title        string           `json:"title" db:"title"`
	Body         string           `json:"body,omitempty" db:"body"`
	ResourceType string           `json:"resource_type" db:"resource_type"`
	ResourceID   uuid.UUID        `json:"resource_id" db:"resource_id"`
	ReadAt       *time.Time       `json:"read_at,omitempty" db:"read_at"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the Notification model
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new unread Notification
func NewNotification(userID uuid.UUID, typ NotificationType, title, resourceType string, resourceID uuid.UUID) *Notification {
	return &Notification{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         typ,
		Title:        title,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		CreatedAt:    time.Now(),
	}
}

// IsRead returns true once the recipient has marked the notification read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
