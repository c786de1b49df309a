package services

import (
	"context"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/jinzhu/now"
	"gorm.io/gorm"
)

// DashboardService assembles admin aggregate counts. Results are
// cached with a short TTL; every mutation fan-out also purges the
// dashboard keyspace, so the numbers follow writes.
type DashboardService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewDashboardService(db *gorm.DB, invalidator *cache.Coordinator) *DashboardService {
	return &DashboardService{db: db, invalidator: invalidator}
}

// DashboardSummary is the admin overview payload.
type DashboardSummary struct {
	TotalCourses         int64 `json:"total_courses"`
	ActiveEnrollments    int64 `json:"active_enrollments"`
	CompletionsThisWeek  int64 `json:"completions_this_week"`
	CompletionsThisMonth int64 `json:"completions_this_month"`
	PendingReviews       int64 `json:"pending_reviews"`
	QuizAttempts         int64 `json:"quiz_attempts"`
	QuizPassRate         int   `json:"quiz_pass_rate"` // percentage
}

const dashboardTTLSeconds = 60

// Summary computes the overview counts.
func (s *DashboardService) Summary(ctx context.Context) (*DashboardSummary, error) {
	store := s.invalidator.Store()
	key := cache.EntityKey(cache.ResourceDashboard, 0)

	var cached DashboardSummary
	if store.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	summary := &DashboardSummary{}

	if err := db.Model(&models.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true).
		Count(&summary.TotalCourses).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Enrollment{}).
		Where("is_deleted = ? AND is_completed = ?", false, false).
		Count(&summary.ActiveEnrollments).Error; err != nil {
		return nil, err
	}

	weekStart := now.BeginningOfWeek()
	monthStart := now.BeginningOfMonth()

	if err := db.Model(&models.Enrollment{}).
		Where("is_deleted = ? AND completed_at >= ?", false, weekStart).
		Count(&summary.CompletionsThisWeek).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Enrollment{}).
		Where("is_deleted = ? AND completed_at >= ?", false, monthStart).
		Count(&summary.CompletionsThisMonth).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Assignment{}).
		Where("is_deleted = ? AND status = ?", false, models.AssignmentSubmitted).
		Count(&summary.PendingReviews).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.QuizResult{}).Count(&summary.QuizAttempts).Error; err != nil {
		return nil, err
	}
	if summary.QuizAttempts > 0 {
		var passed int64
		if err := db.Model(&models.QuizResult{}).Where("passed = ?", true).Count(&passed).Error; err != nil {
			return nil, err
		}
		summary.QuizPassRate = int(passed * 100 / summary.QuizAttempts)
	}

	store.SetJSON(ctx, key, summary, dashboardTTLSeconds)
	return summary, nil
}
