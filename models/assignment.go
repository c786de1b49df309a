package models

import (
	"time"

	"gorm.io/gorm"
)

// Assignment statuses. Transitions are PENDING -> SUBMITTED -> REVIEWED only.
const (
	AssignmentPending   = "PENDING"
	AssignmentSubmitted = "SUBMITTED"
	AssignmentReviewed  = "REVIEWED"
)

// Assignment represents a piece of work given to a student. UserID is
// nil for a template awaiting batch fan-out or unassigned general work.
// The review fields are written together with the REVIEWED status flip.
type Assignment struct {
	gorm.Model
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	ModuleID    uint       `json:"module_id" gorm:"index"`
	UserID      *uint      `json:"user_id" gorm:"index"`
	Title       string     `json:"title"`
	Description string     `json:"description" gorm:"type:text"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status" gorm:"default:'PENDING';index"`
	Answer      string     `json:"answer" gorm:"type:text"`
	SubmittedAt *time.Time `json:"submitted_at"`
	Feedback    string     `json:"feedback" gorm:"type:text"`
	ReviewedBy  *uint      `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
