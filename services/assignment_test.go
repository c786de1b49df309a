package services

import (
	"context"
	"testing"
	"time"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	reviewed []uint
}

func (n *recordingNotifier) AssignmentReviewed(assignment *models.Assignment) {
	n.reviewed = append(n.reviewed, assignment.ID)
}

func createTestAssignment(t *testing.T, service *AssignmentService, courseID uint, userID *uint) *models.Assignment {
	t.Helper()
	assignment, err := service.Create(context.Background(), AssignmentInput{
		CourseID: courseID,
		UserID:   userID,
		Title:    "Build a worker pool",
	})
	require.NoError(t, err)
	return assignment
}

func TestAssignmentSubmitThenReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	notifier := &recordingNotifier{}
	service := NewAssignmentService(db, newTestCoordinator(), notifier)

	student := createTestUser(t, db, "Indra", "spring-2026", "USER")
	reviewer := createTestUser(t, db, "Jaya", "", "REVIEWER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &student.ID)
	assert.Equal(t, models.AssignmentPending, assignment.Status)

	submitted, err := service.Submit(ctx, assignment.ID, student.ID, "my answer")
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentSubmitted, submitted.Status)
	assert.NotNil(t, submitted.SubmittedAt)

	reviewed, err := service.Review(ctx, assignment.ID, reviewer.ID, "solid work")
	require.NoError(t, err)
	assert.Equal(t, models.AssignmentReviewed, reviewed.Status)

	// The status flip and review fields land together
	var stored models.Assignment
	require.NoError(t, db.First(&stored, assignment.ID).Error)
	assert.Equal(t, models.AssignmentReviewed, stored.Status)
	assert.Equal(t, "solid work", stored.Feedback)
	require.NotNil(t, stored.ReviewedBy)
	assert.Equal(t, reviewer.ID, *stored.ReviewedBy)
	assert.NotNil(t, stored.ReviewedAt)

	assert.Equal(t, []uint{assignment.ID}, notifier.reviewed)
}

func TestAssignmentReviewBeforeSubmission(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Kiran", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &student.ID)

	_, err := service.Review(ctx, assignment.ID, 1, "too early")
	assert.ErrorIs(t, err, ErrInvalidState)

	var stored models.Assignment
	require.NoError(t, db.First(&stored, assignment.ID).Error)
	assert.Equal(t, models.AssignmentPending, stored.Status)
	assert.Empty(t, stored.Feedback)
}

func TestAssignmentSubmitAfterReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Lila", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &student.ID)

	_, err := service.Submit(ctx, assignment.ID, student.ID, "v1")
	require.NoError(t, err)
	_, err = service.Review(ctx, assignment.ID, 1, "done")
	require.NoError(t, err)

	_, err = service.Submit(ctx, assignment.ID, student.ID, "v2")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestAssignmentResubmitBeforeReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Mohan", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &student.ID)

	_, err := service.Submit(ctx, assignment.ID, student.ID, "v1")
	require.NoError(t, err)

	resubmitted, err := service.Submit(ctx, assignment.ID, student.ID, "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", resubmitted.Answer)
	assert.Equal(t, models.AssignmentSubmitted, resubmitted.Status)
}

func TestAssignmentSubmitByOtherStudent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	owner := createTestUser(t, db, "Nadia", "spring-2026", "USER")
	intruder := createTestUser(t, db, "Omar", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &owner.ID)

	_, err := service.Submit(ctx, assignment.ID, intruder.ID, "not mine")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignmentCreateBatch(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	createTestUser(t, db, "Puja", "spring-2026", "USER")
	createTestUser(t, db, "Qadir", "spring-2026", "USER")
	createTestUser(t, db, "Rina", "spring-2026", "USER")
	// other cohort, and a non-student in the right cohort
	createTestUser(t, db, "Sam", "fall-2025", "USER")
	createTestUser(t, db, "Tariq", "spring-2026", "ADMIN")

	created, err := service.CreateBatch(ctx, course.ID, "spring-2026", AssignmentInput{
		Title:       "Week 3 homework",
		Description: "Implement the thing",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	var assignments []models.Assignment
	require.NoError(t, db.Where("course_id = ?", course.ID).Find(&assignments).Error)
	require.Len(t, assignments, 3)

	seen := make(map[uint]bool)
	for _, assignment := range assignments {
		assert.Equal(t, models.AssignmentPending, assignment.Status)
		assert.Equal(t, "Week 3 homework", assignment.Title)
		require.NotNil(t, assignment.UserID)
		assert.False(t, seen[*assignment.UserID])
		seen[*assignment.UserID] = true
	}
}

func TestAssignmentCreateBatchWrongCohort(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	createTestUser(t, db, "Uma", "fall-2025", "USER")

	created, err := service.CreateBatch(ctx, course.ID, "fall-2025", AssignmentInput{Title: "hw"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, created)

	var count int64
	require.NoError(t, db.Model(&models.Assignment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignmentListStudentScoped(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Vikram", "spring-2026", "USER")
	other := createTestUser(t, db, "Wafa", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	createTestAssignment(t, service, course.ID, &student.ID)
	createTestAssignment(t, service, course.ID, &other.ID)

	mine, total, err := service.List(ctx, cache.ListFilter{StudentID: student.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, student.ID, *mine[0].UserID)

	all, total, err := service.List(ctx, cache.ListFilter{CourseID: course.ID}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)
}

func TestAssignmentListFreshAfterReview(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Yusuf", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")
	assignment := createTestAssignment(t, service, course.ID, &student.ID)
	_, err := service.Submit(ctx, assignment.ID, student.ID, "answer")
	require.NoError(t, err)

	pending, _, err := service.List(ctx, cache.ListFilter{Status: models.AssignmentSubmitted}, 1, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	_, err = service.Review(ctx, assignment.ID, 1, "ok")
	require.NoError(t, err)

	pending, _, err = service.List(ctx, cache.ListFilter{Status: models.AssignmentSubmitted}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAssignmentDueSoon(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewAssignmentService(db, newTestCoordinator(), nil)

	student := createTestUser(t, db, "Zara", "spring-2026", "USER")
	course := createTestCourse(t, db, "Concurrency", "spring-2026")

	soon := time.Now().Add(12 * time.Hour)
	far := time.Now().Add(96 * time.Hour)
	past := time.Now().Add(-time.Hour)

	for _, due := range []*time.Time{&soon, &far, &past, nil} {
		_, err := service.Create(ctx, AssignmentInput{
			CourseID: course.ID,
			UserID:   &student.ID,
			Title:    "hw",
			DueDate:  due,
		})
		require.NoError(t, err)
	}

	due, err := service.DueSoon(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.WithinDuration(t, soon, *due[0].DueDate, time.Second)
}
