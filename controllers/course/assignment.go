package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/models"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/gofiber/fiber/v2"
)

// SubmitAssignment attaches the student's answer to an assignment
func (ctrl *Controller) SubmitAssignment(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	assignmentID := c.Locals("assignmentID").(uint)

	reqData := new(struct {
		Answer string `json:"answer"`
	})
	if err := c.BodyParser(reqData); err != nil || reqData.Answer == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Answer is required!", nil)
	}

	assignment, err := ctrl.Assignments.Submit(c.Context(), assignmentID, userID, reqData.Answer)
	if err != nil {
		return serviceError(c, err, "Assignment not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment submitted!", assignment)
}

// ReviewAssignment writes review feedback on a submitted assignment
func (ctrl *Controller) ReviewAssignment(c *fiber.Ctx) error {
	reviewerID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	user, err := ctrl.Users.GetActive(c.Context(), reviewerID)
	if err != nil || (user.Role != "ADMIN" && user.Role != "REVIEWER") {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Reviewer only.", nil)
	}

	assignmentID := c.Locals("assignmentID").(uint)

	reqData, ok := c.Locals("validatedReview").(*ReviewRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assignment, err := ctrl.Assignments.Review(c.Context(), assignmentID, reviewerID, reqData.Feedback)
	if err != nil {
		return serviceError(c, err, "Assignment not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment reviewed!", assignment)
}

// ReviewRequest is the validated review body.
type ReviewRequest struct {
	Feedback string `json:"feedback" validate:"required,min=1"`
}

// GetMyAssignments lists the current user's assignments
func (ctrl *Controller) GetMyAssignments(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := cache.ListFilter{StudentID: userID, Status: c.Query("status")}

	assignments, total, err := ctrl.Assignments.List(c.Context(), filter, page, limit)
	if err != nil {
		return serviceError(c, err, "Assignments not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// AdminCreateAssignment creates one assignment or template
func (ctrl *Controller) AdminCreateAssignment(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*services.AssignmentInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	reqData.CourseID = c.Locals("courseID").(uint)

	assignment, err := ctrl.Assignments.Create(c.Context(), *reqData)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// AdminCreateAssignmentBatch fans a template out to a student cohort
func (ctrl *Controller) AdminCreateAssignmentBatch(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	courseID := c.Locals("courseID").(uint)

	reqData, ok := c.Locals("validatedAssignmentBatch").(*AssignmentBatchRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := ctrl.Assignments.CreateBatch(c.Context(), courseID, reqData.BatchName, reqData.Template)
	if err != nil && created == 0 {
		return serviceError(c, err, "Course not found for this batch!")
	}
	// Partial failure still reports what was created
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Batch partially created!", fiber.Map{
			"created_count": created,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Batch created successfully!", fiber.Map{
		"created_count": created,
	})
}

// AssignmentBatchRequest is the validated batch fan-out body.
type AssignmentBatchRequest struct {
	BatchName string
	Template  services.AssignmentInput
}

// AdminListAssignments lists assignments with filters
func (ctrl *Controller) AdminListAssignments(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	filter := cache.ListFilter{
		CourseID:  uint(c.QueryInt("course", 0)),
		StudentID: uint(c.QueryInt("student", 0)),
		Status:    c.Query("status"),
	}
	if filter.Status != "" && filter.Status != models.AssignmentPending &&
		filter.Status != models.AssignmentSubmitted && filter.Status != models.AssignmentReviewed {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid status filter!", nil)
	}

	assignments, total, err := ctrl.Assignments.List(c.Context(), filter, page, limit)
	if err != nil {
		return serviceError(c, err, "Assignments not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", fiber.Map{
		"assignments": assignments,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
