package controllers

import (
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/gofiber/fiber/v2"
)

// GetQuiz returns a quiz with the answer key stripped
func (ctrl *Controller) GetQuiz(c *fiber.Ctx) error {
	if _, ok := ctrl.requireUser(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	quiz, questions, err := ctrl.Quizzes.Get(c.Context(), quizID)
	if err != nil {
		return serviceError(c, err, "Quiz not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", fiber.Map{
		"id":            quiz.ID,
		"course_id":     quiz.CourseID,
		"title":         quiz.Title,
		"passing_score": quiz.PassingScore,
		"questions":     questions,
	})
}

// SubmitQuiz scores a quiz submission and stores the result
func (ctrl *Controller) SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	reqData, ok := c.Locals("validatedQuizSubmission").(*QuizSubmissionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Enrollment gate: quizzes are scored only for enrolled students
	quiz, _, err := ctrl.Quizzes.Get(c.Context(), quizID)
	if err != nil {
		return serviceError(c, err, "Quiz not found!")
	}
	if _, err := ctrl.Enrollments.Get(c.Context(), userID, quiz.CourseID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "User not enrolled in this course!", nil)
	}

	result, score, err := ctrl.Quizzes.Submit(c.Context(), userID, quizID, reqData.Answers, reqData.TimeSpent)
	if err != nil {
		return serviceError(c, err, "Quiz not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted!", fiber.Map{
		"result":       result,
		"score":        score.Score,
		"total_points": score.TotalPoints,
		"percentage":   score.Percentage,
		"passed":       score.Passed,
		"per_question": score.PerQuestion,
	})
}

// QuizSubmissionRequest is the validated quiz submission body.
type QuizSubmissionRequest struct {
	Answers   []int `json:"answers"`
	TimeSpent int   `json:"time_spent"`
}

// GetQuizAttempts lists the user's attempts for a quiz
func (ctrl *Controller) GetQuizAttempts(c *fiber.Ctx) error {
	userID, ok := ctrl.requireUser(c)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	quizID := c.Locals("quizID").(uint)

	attempts, err := ctrl.Quizzes.Attempts(c.Context(), userID, quizID)
	if err != nil {
		return serviceError(c, err, "Quiz not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", attempts)
}

// AdminCreateQuiz creates a quiz with its questions
func (ctrl *Controller) AdminCreateQuiz(c *fiber.Ctx) error {
	if _, ok := ctrl.requireAdmin(c); !ok {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*services.QuizInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}
	reqData.CourseID = c.Locals("courseID").(uint)

	quiz, err := ctrl.Quizzes.Create(c.Context(), *reqData)
	if err != nil {
		return serviceError(c, err, "Course not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}
