package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory sqlite database named after
// the test, so parallel tests never share state.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Module{},
		&models.Lesson{},
		&models.Enrollment{},
		&models.LessonCompletion{},
		&models.Quiz{},
		&models.QuizResult{},
		&models.Assignment{},
		&models.CertificateRequest{},
		&models.Certificate{},
	))
	return db
}

func newTestCoordinator() *cache.Coordinator {
	return cache.NewCoordinator(cache.New(cache.NewMemoryBackend(), 60))
}

func createTestUser(t *testing.T, db *gorm.DB, name, batch, role string) models.User {
	t.Helper()
	user := models.User{
		Name:  name,
		Email: strings.ToLower(name) + "@example.com",
		Batch: batch,
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTestCourse(t *testing.T, db *gorm.DB, title, batch string) models.Course {
	t.Helper()
	course := models.Course{
		Title:       title,
		Batch:       batch,
		Status:      "ACTIVE",
		IsPublished: true,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createTestEnrollment(t *testing.T, db *gorm.DB, userID, courseID uint, totalLessons int) models.Enrollment {
	t.Helper()
	enrollment := models.Enrollment{
		UserID:       userID,
		CourseID:     courseID,
		Status:       "ENROLLED",
		TotalLessons: totalLessons,
	}
	require.NoError(t, db.Create(&enrollment).Error)
	return enrollment
}
