package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the current user in a course
func (ctrl *Controller) EnrollInCourse(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	enrollment, err := ctrl.Enrollments.Enroll(c.Context(), userID, courseID)
	if err != nil {
		return serviceError(c, err, "Course not found or not active!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// GetUserEnrollmentsList lists the current user's enrollments
func (ctrl *Controller) GetUserEnrollmentsList(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	// Set default pagination
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	list, err := ctrl.Enrollments.ListForUser(c.Context(), userID, page, limit)
	if err != nil {
		return serviceError(c, err, "Enrollments not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": list.Enrollments,
		"pagination": fiber.Map{
			"total": list.Total,
			"page":  list.Page,
			"limit": list.Limit,
		},
	})
}
