package services

import (
	"context"
	"errors"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"gorm.io/gorm"
)

// ReviewNotifier is told about completed reviews. Implementations must
// not block the request path.
type ReviewNotifier interface {
	AssignmentReviewed(assignment *models.Assignment)
}

// AssignmentService owns the assignment state machine and batch fan-out.
type AssignmentService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
	notifier    ReviewNotifier
}

// NewAssignmentService returns an AssignmentService. notifier may be nil.
func NewAssignmentService(db *gorm.DB, invalidator *cache.Coordinator, notifier ReviewNotifier) *AssignmentService {
	return &AssignmentService{db: db, invalidator: invalidator, notifier: notifier}
}

// AssignmentInput is the admin payload for creating one assignment or a
// batch template.
type AssignmentInput struct {
	CourseID    uint
	ModuleID    uint
	UserID      *uint
	Title       string
	Description string
	DueDate     *time.Time
}

// Create stores a single assignment. With a UserID it is student work
// starting at PENDING; without one it is a template or unassigned
// general work.
func (s *AssignmentService) Create(ctx context.Context, input AssignmentInput) (*models.Assignment, error) {
	assignment := models.Assignment{
		CourseID:    input.CourseID,
		ModuleID:    input.ModuleID,
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      models.AssignmentPending,
	}
	if err := s.db.WithContext(ctx).Create(&assignment).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceAssignments, assignment.ID)
	return &assignment, nil
}

// Submit attaches the student's answer and moves the assignment to
// SUBMITTED. Legal from PENDING and from SUBMITTED (resubmission before
// review); a reviewed assignment can no longer change.
func (s *AssignmentService) Submit(ctx context.Context, assignmentID, userID uint, answer string) (*models.Assignment, error) {
	db := s.db.WithContext(ctx)

	assignment, err := s.load(db, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.UserID != nil && *assignment.UserID != userID {
		return nil, ErrNotFound
	}
	if assignment.Status == models.AssignmentReviewed {
		return nil, ErrInvalidState
	}

	now := time.Now()
	assignment.UserID = &userID
	assignment.Answer = answer
	assignment.SubmittedAt = &now
	assignment.Status = models.AssignmentSubmitted

	if err := db.Save(assignment).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceAssignments, assignment.ID)
	return assignment, nil
}

// Review writes the feedback sub-record and flips the status to
// REVIEWED in a single update, so readers see both or neither. Legal
// only from SUBMITTED.
func (s *AssignmentService) Review(ctx context.Context, assignmentID, reviewerID uint, feedback string) (*models.Assignment, error) {
	db := s.db.WithContext(ctx)

	assignment, err := s.load(db, assignmentID)
	if err != nil {
		return nil, err
	}
	if assignment.Status != models.AssignmentSubmitted {
		return nil, ErrInvalidState
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":      models.AssignmentReviewed,
		"feedback":    feedback,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}
	if err := db.Model(assignment).Updates(updates).Error; err != nil {
		return nil, err
	}

	assignment.Status = models.AssignmentReviewed
	assignment.Feedback = feedback
	assignment.ReviewedBy = &reviewerID
	assignment.ReviewedAt = &now

	s.invalidator.InvalidateEntity(ctx, cache.ResourceAssignments, assignment.ID)

	if s.notifier != nil {
		s.notifier.AssignmentReviewed(assignment)
	}
	return assignment, nil
}

// CreateBatch fans the template out to every student whose batch field
// matches batchName, one PENDING assignment each. Course validity is
// checked against the course's own batch name while membership comes
// from the user record; the two notions are kept separate on purpose
// (see DESIGN.md). Creation is at-least-partial: a failure partway
// through does not roll back earlier rows, and the count of rows
// actually created is reported either way.
func (s *AssignmentService) CreateBatch(ctx context.Context, courseID uint, batchName string, template AssignmentInput) (int, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	if course.Batch != batchName {
		return 0, ErrNotFound
	}

	var students []models.User
	if err := db.Where("batch = ? AND role = ? AND is_deleted = ?", batchName, "USER", false).
		Find(&students).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, student := range students {
		studentID := student.ID
		assignment := models.Assignment{
			CourseID:    courseID,
			ModuleID:    template.ModuleID,
			UserID:      &studentID,
			Title:       template.Title,
			Description: template.Description,
			DueDate:     template.DueDate,
			Status:      models.AssignmentPending,
		}
		if err := db.Create(&assignment).Error; err != nil {
			s.invalidator.InvalidateResource(ctx, cache.ResourceAssignments)
			return created, err
		}
		created++
	}

	s.invalidator.InvalidateResource(ctx, cache.ResourceAssignments)
	return created, nil
}

// List returns assignments filtered by the typed filter spec, served
// cache-aside. Student-scoped listings use a user-scoped key.
func (s *AssignmentService) List(ctx context.Context, filter cache.ListFilter, page, limit int) ([]models.Assignment, int64, error) {
	store := s.invalidator.Store()
	sort := cache.SortSpec{Field: "created_at", Desc: true}

	var key string
	if filter.StudentID != 0 {
		key = cache.UserListKey(cache.ResourceAssignments, filter.StudentID, filter, sort, page, limit)
	} else {
		key = cache.ListKey(cache.ResourceAssignments, filter, sort, page, limit)
	}

	type listPage struct {
		Assignments []models.Assignment `json:"assignments"`
		Total       int64               `json:"total"`
	}
	var cached listPage
	if store.GetJSON(ctx, key, &cached) {
		return cached.Assignments, cached.Total, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Assignment{}).Where("is_deleted = ?", false)
	if filter.CourseID != 0 {
		query = query.Where("course_id = ?", filter.CourseID)
	}
	if filter.StudentID != 0 {
		query = query.Where("user_id = ?", filter.StudentID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var assignments []models.Assignment
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Order("created_at desc").Find(&assignments).Error; err != nil {
		return nil, 0, err
	}

	store.SetJSON(ctx, key, listPage{Assignments: assignments, Total: total}, 0)
	return assignments, total, nil
}

// DueSoon returns unsubmitted, assigned work due within the window.
// Used by the reminder scheduler.
func (s *AssignmentService) DueSoon(ctx context.Context, window time.Duration) ([]models.Assignment, error) {
	cutoff := time.Now().Add(window)
	var assignments []models.Assignment
	err := s.db.WithContext(ctx).
		Where("status = ? AND is_deleted = ? AND user_id IS NOT NULL", models.AssignmentPending, false).
		Where("due_date IS NOT NULL AND due_date <= ? AND due_date >= ?", cutoff, time.Now()).
		Find(&assignments).Error
	return assignments, err
}

func (s *AssignmentService) load(db *gorm.DB, assignmentID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}
