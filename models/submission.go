package models

import "time"

type Submission struct {
	SubmissionID int        `gorm:"primaryKey;column:submission_id" json:"submission_id"`
	GroupID      int        `gorm:"column:group_id" json:"group_id"`
	Title        string     `gorm:"column:title" json:"title"`
	Status       string     `gorm:"column:status" json:"status"`
	SubmittedAt  *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	CreateAt     *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Group ResearchGroup `gorm:"foreignKey:GroupID" json:"group,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}
