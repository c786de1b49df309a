package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete records a lesson completion for the current user
func (ctrl *Controller) MarkLessonComplete(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)
	moduleIndex := c.Locals("moduleIndex").(int)
	lessonIndex := c.Locals("lessonIndex").(int)

	snapshot, err := ctrl.Progress.MarkLessonComplete(c.Context(), userID, courseID, moduleIndex, lessonIndex)
	if err != nil {
		return serviceError(c, err, "User not enrolled in this course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete!", snapshot)
}

// GetUserProgress gets the user's progress in a course
func (ctrl *Controller) GetUserProgress(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := c.Locals("courseID").(uint)

	progress, err := ctrl.Progress.GetCourseProgress(c.Context(), userID, courseID)
	if err != nil {
		return serviceError(c, err, "User not enrolled in this course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", progress)
}
