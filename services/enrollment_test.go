package services

import (
	"context"
	"testing"

	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollFixesTotalLessons(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewEnrollmentService(db, newTestCoordinator())

	user := createTestUser(t, db, "Anil", "spring-2026", "USER")
	course := createTestCourse(t, db, "Networking", "spring-2026")

	module := models.Module{CourseID: course.ID, Title: "TCP"}
	require.NoError(t, db.Create(&module).Error)
	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Lesson", OrderIndex: i, IsPublished: true}).Error)
	}
	// Draft lessons do not count toward progress
	require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, ModuleID: module.ID, Title: "Draft", OrderIndex: 3}).Error)

	enrollment, err := service.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, enrollment.TotalLessons)
	assert.Equal(t, "ENROLLED", enrollment.Status)
	assert.Zero(t, enrollment.Progress)
}

func TestEnrollTwice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewEnrollmentService(db, newTestCoordinator())

	user := createTestUser(t, db, "Bela", "spring-2026", "USER")
	course := createTestCourse(t, db, "Networking", "spring-2026")

	_, err := service.Enroll(ctx, user.ID, course.ID)
	require.NoError(t, err)

	_, err = service.Enroll(ctx, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrAlreadyEnrolled)

	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", user.ID, course.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnrollInactiveCourse(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewEnrollmentService(db, newTestCoordinator())

	user := createTestUser(t, db, "Chand", "spring-2026", "USER")
	course := models.Course{Title: "Unreleased", Status: "DRAFT"}
	require.NoError(t, db.Create(&course).Error)

	_, err := service.Enroll(ctx, user.ID, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForUserPairsCourses(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewEnrollmentService(db, newTestCoordinator())

	user := createTestUser(t, db, "Deepa", "spring-2026", "USER")
	first := createTestCourse(t, db, "Networking", "spring-2026")
	second := createTestCourse(t, db, "Databases", "spring-2026")

	_, err := service.Enroll(ctx, user.ID, first.ID)
	require.NoError(t, err)
	_, err = service.Enroll(ctx, user.ID, second.ID)
	require.NoError(t, err)

	list, err := service.ListForUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
	require.Len(t, list.Enrollments, 2)

	titles := make(map[string]bool)
	for _, enrollment := range list.Enrollments {
		assert.Equal(t, enrollment.CourseID, enrollment.Course.ID)
		titles[enrollment.Course.Title] = true
	}
	assert.True(t, titles["Networking"])
	assert.True(t, titles["Databases"])
}

func TestListForUserFreshAfterEnroll(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewEnrollmentService(db, newTestCoordinator())

	user := createTestUser(t, db, "Ela", "spring-2026", "USER")
	first := createTestCourse(t, db, "Networking", "spring-2026")
	second := createTestCourse(t, db, "Databases", "spring-2026")

	_, err := service.Enroll(ctx, user.ID, first.ID)
	require.NoError(t, err)

	list, err := service.ListForUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	_, err = service.Enroll(ctx, user.ID, second.ID)
	require.NoError(t, err)

	list, err = service.ListForUser(ctx, user.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Total)
}
