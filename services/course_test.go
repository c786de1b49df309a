package services

import (
	"context"
	"testing"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseListFilters(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	cheap := models.Course{Title: "Intro to Go", Price: 10, Batch: "spring-2026", Status: "ACTIVE", IsPublished: true}
	pricey := models.Course{Title: "Advanced Go", Price: 100, Batch: "spring-2026", Status: "ACTIVE", IsPublished: true}
	draft := models.Course{Title: "Hidden Go", Price: 10, Status: "DRAFT"}
	require.NoError(t, db.Create(&cheap).Error)
	require.NoError(t, db.Create(&pricey).Error)
	require.NoError(t, db.Create(&draft).Error)

	all, err := service.List(ctx, cache.ListFilter{}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)

	searched, err := service.List(ctx, cache.ListFilter{Search: "Advanced"}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, searched.Courses, 1)
	assert.Equal(t, "Advanced Go", searched.Courses[0].Title)

	max := 50.0
	affordable, err := service.List(ctx, cache.ListFilter{PriceMax: &max}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, affordable.Courses, 1)
	assert.Equal(t, "Intro to Go", affordable.Courses[0].Title)
}

func TestCourseListSortByPrice(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	for _, course := range []models.Course{
		{Title: "Mid", Price: 50, Status: "ACTIVE", IsPublished: true},
		{Title: "Cheap", Price: 10, Status: "ACTIVE", IsPublished: true},
		{Title: "Pricey", Price: 100, Status: "ACTIVE", IsPublished: true},
	} {
		c := course
		require.NoError(t, db.Create(&c).Error)
	}

	list, err := service.List(ctx, cache.ListFilter{}, cache.SortSpec{Field: "price", Desc: true}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Courses, 3)
	assert.Equal(t, "Pricey", list.Courses[0].Title)
	assert.Equal(t, "Cheap", list.Courses[2].Title)
}

func TestCourseListFreshAfterUpdate(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	course := createTestCourse(t, db, "Old Title", "spring-2026")

	list, err := service.List(ctx, cache.ListFilter{}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Courses, 1)
	assert.Equal(t, "Old Title", list.Courses[0].Title)

	_, err = service.Update(ctx, course.ID, CourseInput{Title: "New Title"})
	require.NoError(t, err)

	list, err = service.List(ctx, cache.ListFilter{}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	require.Len(t, list.Courses, 1)
	assert.Equal(t, "New Title", list.Courses[0].Title)
}

func TestCourseGetAssemblesContent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	course := createTestCourse(t, db, "Systems", "spring-2026")
	moduleA := models.Module{CourseID: course.ID, Title: "First", OrderIndex: 0}
	moduleB := models.Module{CourseID: course.ID, Title: "Second", OrderIndex: 1}
	require.NoError(t, db.Create(&moduleA).Error)
	require.NoError(t, db.Create(&moduleB).Error)
	require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, ModuleID: moduleA.ID, Title: "Live", IsPublished: true}).Error)
	require.NoError(t, db.Create(&models.Lesson{CourseID: course.ID, ModuleID: moduleA.ID, Title: "Draft"}).Error)

	detail, err := service.Get(ctx, course.ID)
	require.NoError(t, err)
	assert.Equal(t, "Systems", detail.Course.Title)
	require.Len(t, detail.Modules, 2)
	assert.Equal(t, "First", detail.Modules[0].Title)

	// Unpublished lessons stay out of the student-facing payload
	require.Len(t, detail.Modules[0].Lessons, 1)
	assert.Equal(t, "Live", detail.Modules[0].Lessons[0].Title)
	assert.Empty(t, detail.Modules[1].Lessons)
}

func TestCourseGetUnpublished(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	course := models.Course{Title: "Secret", Status: "DRAFT"}
	require.NoError(t, db.Create(&course).Error)

	_, err := service.Get(ctx, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCoursePublish(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	created, err := service.Create(ctx, CourseInput{Title: "Draft Course"})
	require.NoError(t, err)
	assert.Equal(t, "DRAFT", created.Status)
	assert.False(t, created.IsPublished)

	published, err := service.Publish(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", published.Status)
	assert.True(t, published.IsPublished)
}

func TestCourseDeleteHidesFromList(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	service := NewCourseService(db, newTestCoordinator())

	course := createTestCourse(t, db, "Short Lived", "spring-2026")

	list, err := service.List(ctx, cache.ListFilter{}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Total)

	require.NoError(t, service.Delete(ctx, course.ID))

	list, err = service.List(ctx, cache.ListFilter{}, cache.SortSpec{}, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, list.Total)

	_, err = service.Get(ctx, course.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
