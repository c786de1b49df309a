package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// QuizQuestion is one question of a quiz, stored inside Quiz.Questions.
// CorrectOption is the index into Options; Points defaults to 1.
type QuizQuestion struct {
	Text          string   `json:"text"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Points        int      `json:"points"`
}

// Quiz represents a quiz attached to a course module
type Quiz struct {
	gorm.Model
	CourseID     uint           `json:"course_id" gorm:"index;not null"`
	ModuleID     uint           `json:"module_id" gorm:"index"`
	Title        string         `json:"title"`
	Questions    datatypes.JSON `json:"questions"`                        // ordered []QuizQuestion
	PassingScore int            `json:"passing_score" gorm:"default:70"` // minimum percentage to pass
	IsPublished  bool           `json:"is_published" gorm:"default:false"`
	IsDeleted    bool           `gorm:"default:false"`
}

// QuizResult is one submission of a quiz. Rows are append-only and
// never updated after creation.
type QuizResult struct {
	gorm.Model
	UserID      uint           `json:"user_id" gorm:"index;not null"`
	QuizID      uint           `json:"quiz_id" gorm:"index;not null"`
	CourseID    uint           `json:"course_id" gorm:"index;not null"`
	Answers     datatypes.JSON `json:"answers"` // raw submitted []int
	Score       int            `json:"score"`
	TotalPoints int            `json:"total_points"`
	Percentage  int            `json:"percentage"`
	Passed      bool           `json:"passed"`
	TimeSpent   int            `json:"time_spent"` // seconds
}
