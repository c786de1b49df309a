package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with filters and pagination
func (ctrl *Controller) GetAllCourses(c *fiber.Ctx) error {
	if _, ok := ctrl.requireUser(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedCourseList").(*CourseListRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	list, err := ctrl.Courses.List(c.Context(), reqData.Filter, reqData.Sort, reqData.Page, reqData.Limit)
	if err != nil {
		return serviceError(c, err, "Courses not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": list.Courses,
		"pagination": fiber.Map{
			"total": list.Total,
			"page":  list.Page,
			"limit": list.Limit,
		},
	})
}

// CourseListRequest is the validated list query.
type CourseListRequest struct {
	Filter cache.ListFilter
	Sort   cache.SortSpec
	Page   int
	Limit  int
}

// GetCourseDetails gets course details with modules and lessons
func (ctrl *Controller) GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	detail, err := ctrl.Courses.Get(c.Context(), courseID)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	// Enrollment state is per-user and never cached with the course
	isEnrolled := false
	if _, err := ctrl.Enrollments.Get(c.Context(), userID, courseID); err == nil {
		isEnrolled = true
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      detail.Course,
		"modules":     detail.Modules,
		"is_enrolled": isEnrolled,
	})
}

// AdminCreateCourse creates a new course
func (ctrl *Controller) AdminCreateCourse(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*services.CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctrl.Courses.Create(c.Context(), *reqData)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// AdminUpdateCourse updates an existing course
func (ctrl *Controller) AdminUpdateCourse(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedCourseUpdate").(*services.CourseInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := ctrl.Courses.Update(c.Context(), courseID, *reqData)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// AdminPublishCourse publishes a course
func (ctrl *Controller) AdminPublishCourse(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	course, err := ctrl.Courses.Publish(c.Context(), courseID)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// AdminDeleteCourse soft deletes a course
func (ctrl *Controller) AdminDeleteCourse(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	if err := ctrl.Courses.Delete(c.Context(), courseID); err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// AdminAddModule adds a module to a course
func (ctrl *Controller) AdminAddModule(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData := new(struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		OrderIndex  int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Title == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	module, err := ctrl.Courses.AddModule(c.Context(), courseID, reqData.Title, reqData.Description, reqData.OrderIndex)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// AdminDashboard returns aggregate platform counts
func (ctrl *Controller) AdminDashboard(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	summary, err := ctrl.Dashboard.Summary(c.Context())
	if err != nil {
		return serviceError(c, err, "Dashboard unavailable!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", summary)
}
