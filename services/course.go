package services

import (
	"context"
	"errors"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/models"

	"gorm.io/gorm"
)

// CourseService owns the course catalog. List and detail reads are
// cache-aside; every mutation purges the course keyspace before
// returning.
type CourseService struct {
	db          *gorm.DB
	invalidator *cache.Coordinator
}

func NewCourseService(db *gorm.DB, invalidator *cache.Coordinator) *CourseService {
	return &CourseService{db: db, invalidator: invalidator}
}

// CourseList is one page of the catalog.
type CourseList struct {
	Courses []models.Course `json:"courses"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	Limit   int             `json:"limit"`
}

// List returns published courses matching the filter spec. Each filter
// field maps to one explicit predicate; the same filter always builds
// the same cache key.
func (s *CourseService) List(ctx context.Context, filter cache.ListFilter, sort cache.SortSpec, page, limit int) (*CourseList, error) {
	store := s.invalidator.Store()
	key := cache.ListKey(cache.ResourceCourses, filter, sort, page, limit)

	var cached CourseList
	if store.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	query := s.db.WithContext(ctx).Model(&models.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
	}
	if filter.Batch != "" {
		query = query.Where("batch = ?", filter.Batch)
	}
	if filter.PriceMin != nil {
		query = query.Where("price >= ?", *filter.PriceMin)
	}
	if filter.PriceMax != nil {
		query = query.Where("price <= ?", *filter.PriceMax)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	order := "created_at desc"
	if sort.Field != "" {
		order = sort.Field
		if sort.Desc {
			order += " desc"
		} else {
			order += " asc"
		}
	}

	var courses []models.Course
	if err := query.Offset((page - 1) * limit).Limit(limit).
		Order(order).Find(&courses).Error; err != nil {
		return nil, err
	}

	result := &CourseList{Courses: courses, Total: total, Page: page, Limit: limit}
	store.SetJSON(ctx, key, result, 0)
	return result, nil
}

// CourseDetail is a course with its modules and their lessons,
// assembled with explicit queries rather than preloads.
type CourseDetail struct {
	Course  models.Course      `json:"course"`
	Modules []ModuleWithLessons `json:"modules"`
}

type ModuleWithLessons struct {
	models.Module
	Lessons []models.Lesson `json:"lessons"`
}

// Get returns one published course with content, cache-aside under the
// entity key.
func (s *CourseService) Get(ctx context.Context, courseID uint) (*CourseDetail, error) {
	store := s.invalidator.Store()
	key := cache.EntityKey(cache.ResourceCourses, courseID)

	var cached CourseDetail
	if store.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
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

	var lessons []models.Lesson
	if err := db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("order_index asc").Find(&lessons).Error; err != nil {
		return nil, err
	}
	lessonsPerModule := make(map[uint][]models.Lesson)
	for _, lesson := range lessons {
		lessonsPerModule[lesson.ModuleID] = append(lessonsPerModule[lesson.ModuleID], lesson)
	}

	detail := &CourseDetail{Course: course, Modules: make([]ModuleWithLessons, len(modules))}
	for i, module := range modules {
		detail.Modules[i] = ModuleWithLessons{Module: module, Lessons: lessonsPerModule[module.ID]}
	}

	store.SetJSON(ctx, key, detail, 0)
	return detail, nil
}

// CourseInput is the admin payload for creating or updating a course.
type CourseInput struct {
	Title        string
	Description  string
	Author       string
	Price        *float64
	Batch        string
	Status       string
	ThumbnailURL string
}

// Create stores a new draft course.
func (s *CourseService) Create(ctx context.Context, input CourseInput) (*models.Course, error) {
	course := models.Course{
		Title:        input.Title,
		Description:  input.Description,
		Author:       input.Author,
		Batch:        input.Batch,
		ThumbnailURL: input.ThumbnailURL,
		Status:       "DRAFT",
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if err := s.db.WithContext(ctx).Create(&course).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, course.ID)
	return &course, nil
}

// Update modifies the provided fields of an existing course.
func (s *CourseService) Update(ctx context.Context, courseID uint, input CourseInput) (*models.Course, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Update only provided fields
	if input.Title != "" {
		course.Title = input.Title
	}
	if input.Description != "" {
		course.Description = input.Description
	}
	if input.Author != "" {
		course.Author = input.Author
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Batch != "" {
		course.Batch = input.Batch
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if input.ThumbnailURL != "" {
		course.ThumbnailURL = input.ThumbnailURL
	}

	if err := db.Save(&course).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, course.ID)
	return &course, nil
}

// Publish marks a course and its lessons live.
func (s *CourseService) Publish(ctx context.Context, courseID uint) (*models.Course, error) {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	course.IsPublished = true
	course.Status = "ACTIVE"
	if err := db.Save(&course).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, course.ID)
	return &course, nil
}

// Delete soft-deletes a course.
func (s *CourseService) Delete(ctx context.Context, courseID uint) error {
	db := s.db.WithContext(ctx)

	var course models.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	course.IsDeleted = true
	if err := db.Save(&course).Error; err != nil {
		return err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, course.ID)
	return nil
}

// AddModule appends a module to a course.
func (s *CourseService) AddModule(ctx context.Context, courseID uint, title, description string, orderIndex int) (*models.Module, error) {
	module := models.Module{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		OrderIndex:  orderIndex,
	}
	if err := s.db.WithContext(ctx).Create(&module).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, courseID)
	return &module, nil
}

// AddLesson appends a lesson to a module.
func (s *CourseService) AddLesson(ctx context.Context, lesson models.Lesson) (*models.Lesson, error) {
	if err := s.db.WithContext(ctx).Create(&lesson).Error; err != nil {
		return nil, err
	}

	s.invalidator.InvalidateEntity(ctx, cache.ResourceCourses, lesson.CourseID)
	return &lesson, nil
}
