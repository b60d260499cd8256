package models

import "time"

type ResearchGroup struct {
	GroupID       int        `gorm:"primaryKey;column:group_id" json:"group_id"`
	GroupName     string     `gorm:"column:group_name" json:"group_name"`
	LeadStudentID *int       `gorm:"column:lead_student_id" json:"lead_student_id,omitempty"`
	CreateAt      *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt      *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt      *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	LeadStudent *User `gorm:"foreignKey:LeadStudentID" json:"lead_student,omitempty"`
}

func (ResearchGroup) TableName() string {
	return "research_groups"
}
