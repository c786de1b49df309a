package courseValidator

import (
	"strings"
	"time"

	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/models"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateQuiz validates the admin quiz creation body
func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID     uint                  `json:"module_id"`
			Title        string                `json:"title" validate:"required,min=3"`
			Questions    []models.QuizQuestion `json:"questions" validate:"required,min=1"`
			PassingScore int                   `json:"passing_score" validate:"omitempty,gte=1,lte=100"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		// Correct option must point inside the option list
		for i, question := range reqData.Questions {
			if len(question.Options) < 2 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Each question needs at least two options!", nil)
			}
			if question.CorrectOption < 0 || question.CorrectOption >= len(question.Options) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Correct option out of range!", fiber.Map{
					"question": i,
				})
			}
		}

		c.Locals("validatedQuiz", &services.QuizInput{
			ModuleID:     reqData.ModuleID,
			Title:        reqData.Title,
			Questions:    reqData.Questions,
			PassingScore: reqData.PassingScore,
		})
		return c.Next()
	}
}

// CreateAssignment validates the admin assignment creation body
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleID    uint       `json:"module_id"`
			UserID      *uint      `json:"user_id"`
			Title       string     `json:"title" validate:"required,min=3"`
			Description string     `json:"description"`
			DueDate     *time.Time `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", &services.AssignmentInput{
			ModuleID:    reqData.ModuleID,
			UserID:      reqData.UserID,
			Title:       reqData.Title,
			Description: reqData.Description,
			DueDate:     reqData.DueDate,
		})
		return c.Next()
	}
}

// CreateAssignmentBatch validates the batch fan-out body
func CreateAssignmentBatch() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			BatchName   string     `json:"batch_name" validate:"required,min=1"`
			ModuleID    uint       `json:"module_id"`
			Title       string     `json:"title" validate:"required,min=3"`
			Description string     `json:"description"`
			DueDate     *time.Time `json:"due_date"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			errors := make(map[string]string)
			for _, fieldErr := range err.(validator.ValidationErrors) {
				errors[strings.ToLower(fieldErr.Field())] = "Invalid value!"
			}
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignmentBatch", &controllers.AssignmentBatchRequest{
			BatchName: reqData.BatchName,
			Template: services.AssignmentInput{
				ModuleID:    reqData.ModuleID,
				Title:       reqData.Title,
				Description: reqData.Description,
				DueDate:     reqData.DueDate,
			},
		})
		return c.Next()
	}
}

// ReviewAssignment validates the review body
func ReviewAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.ReviewRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"feedback": "Feedback is required!",
			})
		}

		c.Locals("validatedReview", reqData)
		return c.Next()
	}
}
