package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"gorm.io/gorm"
)

// ProgressTracker records lesson completions and keeps enrollment
// progress consistent with them.
type ProgressTracker struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewProgressTracker(db *gorm.DB, invalidator *cache.Coordinator) *ProgressTracker {
	return &ProgressTracker{db: db, invalidator: invalidator}
}

// ProgressSnapshot is the result of a progress mutation or read.
type ProgressSnapshot struct {
	CompletedLessons int  `json:"completed_lessons"`
	TotalLessons     int  `json:"total_lessons"`
	Progress         int  `json:"progress"`
	IsCompleted      bool `json:"is_completed"`
}

// MarkLessonComplete records that the user finished one lesson and
// recomputes the enrollment's progress. Idempotent: repeating the call
// with the same tuple changes nothing after the first time. The
// completed count is always recomputed from completion rows, never
// incremented, so concurrent or retried calls cannot double-count.
func (t *ProgressTracker) MarkLessonComplete(ctx context.Context, userID, courseID uint, moduleIndex, lessonIndex int) (*ProgressSnapshot, error) {
	db := t.db.WithContext(ctx)

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	completion := models.LessonCompletion{
		UserID:      userID,
		CourseID:    courseID,
		ModuleIndex: moduleIndex,
		LessonIndex: lessonIndex,
	}
	if err := db.Create(&completion).Error; err != nil {
		// The unique index over the tuple turns a repeat into success
		if !isDuplicateKey(err) {
			return nil, err
		}
	}

	var completed int64
	if err := db.Model(&models.LessonCompletion{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&completed).Error; err != nil {
		return nil, err
	}

	applyProgress(&enrollment, int(completed), time.Now())

	if err := db.Save(&enrollment).Error; err != nil {
		return nil, err
	}

	t.invalidator.InvalidateEntity(ctx, cache.ResourceEnrollments, enrollment.ID)

	return &ProgressSnapshot{
		CompletedLessons: enrollment.CompletedLessons,
		TotalLessons:     enrollment.TotalLessons,
		Progress:         enrollment.Progress,
		IsCompleted:      enrollment.IsCompleted,
	}, nil
}

// applyProgress recomputes the derived enrollment fields from the
// completion count. A course with no gradable lessons pins progress at
// zero and never completes. CompletedAt is written only on the first
// transition into the completed state.
func applyProgress(enrollment *models.Enrollment, completed int, at time.Time) {
	enrollment.CompletedLessons = completed

	if enrollment.TotalLessons <= 0 {
		enrollment.Progress = 0
		enrollment.IsCompleted = false
		return
	}

	if completed > enrollment.TotalLessons {
		completed = enrollment.TotalLessons
		enrollment.CompletedLessons = completed
	}

	enrollment.Progress = int(math.Round(float64(completed) / float64(enrollment.TotalLessons) * 100))
	enrollment.IsCompleted = completed >= enrollment.TotalLessons

	switch {
	case enrollment.IsCompleted:
		enrollment.Status = "COMPLETED"
		if enrollment.CompletedAt == nil {
			completedAt := at
			enrollment.CompletedAt = &completedAt
		}
	case completed > 0:
		enrollment.Status = "IN_PROGRESS"
	}
}

// ModuleProgress is the per-module breakdown of a course progress read.
type ModuleProgress struct {
	ModuleIndex      int    `json:"module_index"`
	ModuleTitle      string `json:"module_title"`
	TotalLessons     int    `json:"total_lessons"`
	CompletedLessons int    `json:"completed_lessons"`
	Progress         int    `json:"progress"`
}

// CourseProgress is the full progress view for one enrollment.
type CourseProgress struct {
	ProgressSnapshot
	Status  string           `json:"status"`
	Modules []ModuleProgress `json:"modules"`
}

// GetCourseProgress assembles the enrollment snapshot plus a per-module
// breakdown. Reads are served cache-aside under a user-scoped key.
func (t *ProgressTracker) GetCourseProgress(ctx context.Context, userID, courseID uint) (*CourseProgress, error) {
	store := t.invalidator.Store()
	key := cache.UserListKey(cache.ResourceProgress, userID, cache.ListFilter{CourseID: courseID}, cache.SortSpec{}, 0, 0)

	var cached CourseProgress
	if store.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	db := t.db.WithContext(ctx)

	var enrollment models.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var modules []models.Module
	if err := db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error; err != nil {
		return nil, err
	}

	var completions []models.LessonCompletion
	if err := db.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&completions).Error; err != nil {
		return nil, err
	}
	completedPerModule := make(map[int]int)
	for _, completion := range completions {
		completedPerModule[completion.ModuleIndex]++
	}

	breakdown := make([]ModuleProgress, len(modules))
	for i, module := range modules {
		var total int64
		db.Model(&models.Lesson{}).
			Where("module_id = ? AND is_deleted = ? AND is_published = ?", module.ID, false, true).
			Count(&total)

		done := completedPerModule[module.OrderIndex]
		progress := 0
		if total > 0 {
			progress = int(math.Round(float64(done) / float64(total) * 100))
		}
		breakdown[i] = ModuleProgress{
			ModuleIndex:      module.OrderIndex,
			ModuleTitle:      module.Title,
			TotalLessons:     int(total),
			CompletedLessons: done,
			Progress:         progress,
		}
	}

	result := &CourseProgress{
		ProgressSnapshot: ProgressSnapshot{
			CompletedLessons: enrollment.CompletedLessons,
			TotalLessons:     enrollment.TotalLessons,
			Progress:         enrollment.Progress,
			IsCompleted:      enrollment.IsCompleted,
		},
		Status:  enrollment.Status,
		Modules: breakdown,
	}

	store.SetJSON(ctx, key, result, 0)
	return result, nil
}
