package controllers

import (
	"errors"

	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/gofiber/fiber/v2"
)

// Controller bundles the course-area handlers with their dependencies,
// wired once at startup.
type Controller struct {
	Users        *services.UserService
	Courses      *services.CourseService
	Enrollments  *services.EnrollmentService
	Progress     *services.ProgressTracker
	Quizzes      *services.QuizService
	Assignments  *services.AssignmentService
	Certificates *services.CertificateService
	Dashboard    *services.DashboardService
}

func NewController(
	users *services.UserService,
	courses *services.CourseService,
	enrollments *services.EnrollmentService,
	progress *services.ProgressTracker,
	quizzes *services.QuizService,
	assignments *services.AssignmentService,
	certificates *services.CertificateService,
	dashboard *services.DashboardService,
) *Controller {
	return &Controller{
		Users:        users,
		Courses:      courses,
		Enrollments:  enrollments,
		Progress:     progress,
		Quizzes:      quizzes,
		Assignments:  assignments,
		Certificates: certificates,
		Dashboard:    dashboard,
	}
}

// requireUser resolves the JWT user id to an active user record.
func (ctrl *Controller) requireUser(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, false
	}
	if _, err := ctrl.Users.GetActive(c.Context(), userID); err != nil {
		return 0, false
	}
	return userID, true
}

// requireAdmin additionally checks the ADMIN role.
func (ctrl *Controller) requireAdmin(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, false
	}
	user, err := ctrl.Users.GetActive(c.Context(), userID)
	if err != nil || user.Role != "ADMIN" {
		return 0, false
	}
	return userID, true
}

// serviceError maps the service error taxonomy onto HTTP responses.
func serviceError(c *fiber.Ctx, err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, notFoundMsg, nil)
	case errors.Is(err, services.ErrInvalidState):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid state for this operation!", nil)
	case errors.Is(err, services.ErrAlreadyEnrolled):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "User already enrolled in this course!", nil)
	case errors.Is(err, services.ErrCourseNotCompleted):
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please complete the course first!", nil)
	case errors.Is(err, services.ErrAlreadyRequested):
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Request already exists!", nil)
	default:
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Something went wrong!", nil)
	}
}
