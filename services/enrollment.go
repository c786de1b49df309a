package services

import (
	"context"
	"errors"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"gorm.io/gorm"
)

// EnrollmentService owns enrollments. TotalLessons is fixed from the
// course's published content at enrollment time.
type EnrollmentService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewEnrollmentService(db *gorm.DB, invalidator *cache.Coordinator) *EnrollmentService {
	return &EnrollmentService{db: db, invalidator: invalidator}
}

// Enroll registers the user in an active course. The unique index on
// (user, course) backs the duplicate check, so a racing double enroll
// resolves to ErrAlreadyEnrolled rather than two rows.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?", courseID, false, "ACTIVE").First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var totalLessons int64
	if err := db.Model(&models.Lesson{}).
		Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Count(&totalLessons).Error; err != nil {
		return nil, err
	}

	enrollment := models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       "ENROLLED",
		TotalLessons: int(totalLessons),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceEnrollments, enrollment.ID)
	return &enrollment, nil
}

// EnrollmentList is one page of a user's enrollments.
type EnrollmentList struct {
	Enrollments []EnrollmentWithCourse `json:"enrollments"`
	Total       int64                  `json:"total"`
	Page        int                    `json:"page"`
	Limit       int                    `json:"limit"`
}

// EnrollmentWithCourse pairs an enrollment with its course, fetched
// explicitly rather than preloaded.
type EnrollmentWithCourse struct {
	models.Enrollment
	Course models.Course `json:"course"`
}

// ListForUser returns the user's enrollments with course summaries.
// Cached under a user-scoped key so pages never leak across users.
func (s *EnrollmentService) ListForUser(ctx context.Context, userID uint, page, limit int) (*EnrollmentList, error) {
	store := s.invalidator.Store()
	key := cache.UserListKey(cache.ResourceEnrollments, userID, cache.ListFilter{}, cache.SortSpec{Field: "created_at", Desc: true}, page, limit)

	var cached EnrollmentList
	if store.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)
	query := db.Model(&models.Enrollment{}).Where("user_id = ? AND is_deleted = ?", userID, false)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Order("created_at desc").Find(&enrollments).Error; err != nil {
		return nil, err
	}

	courseIDs := make([]uint, len(enrollments))
	for i, enrollment := range enrollments {
		courseIDs[i] = enrollment.CourseID
	}
	var courses []models.Course
	if len(courseIDs) > 0 {
		if err := db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
			return nil, err
		}
	}
	coursesByID := make(map[uint]models.Course, len(courses))
	for _, course := range courses {
		coursesByID[course.ID] = course
	}

	result := &EnrollmentList{
		Enrollments: make([]EnrollmentWithCourse, len(enrollments)),
		Total:       total,
		Page:        page,
		Limit:       limit,
	}
	for i, enrollment := range enrollments {
		result.Enrollments[i] = EnrollmentWithCourse{
			Enrollment: enrollment,
			Course:     coursesByID[enrollment.CourseID],
		}
	}

	store.SetJSON(ctx, key, result, 0)
	return result, nil
}

// Get returns one enrollment by (user, course).
func (s *EnrollmentService) Get(ctx context.Context, userID, courseID uint) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &enrollment, nil
}
