package models

import "time"

// NotificationType is the closed set of notification tags shared with the
// rendering collaborator (bell icon/label mapping on the frontend).
type NotificationType string

const (
	NotifTitleAssignment  NotificationType = "title_assignment"
	NotifReviewerAssigned NotificationType = "reviewer_assigned"
	NotifReviewerRemoved  NotificationType = "reviewer_removed"
	NotifReviewerUpdated  NotificationType = "reviewer_updated"
)

type Notification struct {
	NotificationID int              `gorm:"primaryKey;column:notification_id" json:"notification_id"`
	UserID         int              `gorm:"column:user_id" json:"user_id"`
	Title          string           `gorm:"column:title" json:"title"`
	Message        string           `gorm:"column:message" json:"message"`
	Type           NotificationType `gorm:"column:type" json:"type"`
	ContextType    string           `gorm:"column:context_type" json:"context_type"`
	ContextID      int              `gorm:"column:context_id" json:"context_id"`
	IsRead         bool             `gorm:"column:is_read" json:"is_read"`
	CreateAt       time.Time        `gorm:"column:create_at" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }
