package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Service error taxonomy. The HTTP layer maps these with errors.Is:
// ErrNotFound -> 404, ErrInvalidState -> 400, conflicts -> 409.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidState       = errors.New("invalid state")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrCourseNotCompleted = errors.New("course not completed")
	ErrAlreadyRequested   = errors.New("already requested")
)

// isDuplicateKey reports whether err came from a unique-constraint
// violation. Gorm translates these to ErrDuplicatedKey for drivers it
// knows; the string checks cover sqlite used in tests.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
