package models

import "time"

// Assignment binds a user to a context (here: reviewer on a submission).
// Rows are soft-deactivated via is_active, never hard-deleted.
type Assignment struct {
	AssignmentID   int       `gorm:"primaryKey;column:assignment_id" json:"assignment_id"`
	AssignmentType string    `gorm:"column:assignment_type" json:"assignment_type"`
	ContextType    string    `gorm:"column:context_type" json:"context_type"`
	ContextID      int       `gorm:"column:context_id" json:"context_id"`
	UserID         int       `gorm:"column:user_id" json:"user_id"`
	Role           string    `gorm:"column:role" json:"role"` // user's role snapshot at assignment time
	IsActive       bool      `gorm:"column:is_active" json:"is_active"`
	AssignedDate   time.Time `gorm:"column:assigned_date" json:"assigned_date"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

const (
	AssignmentTypeReviewer = "reviewer"
	ContextTypeSubmission  = "submission"
)

func (Assignment) TableName() string {
	return "assignments"
}
