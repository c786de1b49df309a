package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course with progress.
// One row per (user, course); progress fields are recomputed from
// LessonCompletion rows, never incremented in place.
type Enrollment struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	CourseID         uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course"`
	Status           string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	TotalLessons     int        `json:"total_lessons" gorm:"default:0"`   // fixed at enrollment time
	CompletedLessons int        `json:"completed_lessons" gorm:"default:0"`
	Progress         int        `json:"progress" gorm:"default:0"` // completion percentage (0-100)
	IsCompleted      bool       `json:"is_completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"` // set once, on first transition to completed
	IsDeleted        bool       `gorm:"default:false"`
}

// LessonCompletion records that a user finished one lesson of a course.
// The unique index over the 4-tuple turns duplicate completion attempts
// into no-ops; rows are never deleted.
type LessonCompletion struct {
	gorm.Model
	UserID      uint `json:"user_id" gorm:"not null;uniqueIndex:idx_lesson_completions_tuple"`
	CourseID    uint `json:"course_id" gorm:"not null;uniqueIndex:idx_lesson_completions_tuple"`
	ModuleIndex int  `json:"module_index" gorm:"not null;uniqueIndex:idx_lesson_completions_tuple"`
	LessonIndex int  `json:"lesson_index" gorm:"not null;uniqueIndex:idx_lesson_completions_tuple"`
}
