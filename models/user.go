package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name      string `json:"name"`
	Email     string `json:"email" gorm:"uniqueIndex"`
	Mobile    string `json:"mobile"`
	Password  string `json:"-"`
	Role      string `json:"role" gorm:"default:'USER'"` // USER, REVIEWER, ADMIN
	Batch     string `json:"batch" gorm:"index"`         // named cohort the student belongs to
	IsDeleted bool   `gorm:"default:false"`
}
