package models

import (
	"time"

	"gorm.io/gorm"
)

// ApplicationStatus defines the review state of an ambassador application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "PENDING"
	ApplicationStatusApproved ApplicationStatus = "APPROVED"
	ApplicationStatusRejected ApplicationStatus = "REJECTED"
)

// AmbassadorApplication is a student's request to join the ambassador program.
// Rows are never hard-deleted; a rejected applicant submits a fresh row and
// the latest row wins for status queries.
type AmbassadorApplication struct {
	gorm.Model
	UserID         uint              `gorm:"index;not null" json:"userId"`
	CollegeName    string            `gorm:"not null" json:"collegeName"`
	CollegeCity    string            `gorm:"not null" json:"collegeCity"`
	CollegeID      string            `gorm:"not null" json:"collegeId"` // institution-issued roll/ID number
	Year           string            `gorm:"not null" json:"year"`
	Branch         string            `gorm:"not null" json:"branch"`
	Phone          string            `gorm:"not null" json:"phone"`
	LinkedinURL    string            `gorm:"default:''" json:"linkedinUrl"`
	Motivation     string            `gorm:"type:text;not null" json:"motivation"`
	Experience     string            `gorm:"type:text" json:"experience"`
	IDProofPath    string            `gorm:"not null" json:"idProofPath"`
	Status         ApplicationStatus `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	ReviewedBy     uint              `gorm:"default:0" json:"reviewedBy"`
	ReviewedAt     *time.Time        `json:"reviewedAt,omitempty"`
	User           User              `gorm:"foreignKey:UserID" json:"-"`
}

func (AmbassadorApplication) TableName() string {
	return "ambassador_applications"
}
