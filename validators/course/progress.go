package courseValidator

import (
	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/middleware"

	"github.com/gofiber/fiber/v2"
)

// MarkLessonComplete validates the lesson completion body
func MarkLessonComplete() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			ModuleIndex *int `json:"module_index"`
			LessonIndex *int `json:"lesson_index"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.ModuleIndex == nil || *reqData.ModuleIndex < 0 {
			errors["module_index"] = "Module index must be 0 or greater!"
		}
		if reqData.LessonIndex == nil || *reqData.LessonIndex < 0 {
			errors["lesson_index"] = "Lesson index must be 0 or greater!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("moduleIndex", *reqData.ModuleIndex)
		c.Locals("lessonIndex", *reqData.LessonIndex)
		return c.Next()
	}
}

// SubmitQuiz validates the quiz submission body
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.QuizSubmissionRequest)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.Answers) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Please answer at least one question!", nil)
		}
		for _, answer := range reqData.Answers {
			if answer < 0 {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answer index!", nil)
			}
		}
		if reqData.TimeSpent < 0 {
			reqData.TimeSpent = 0
		}

		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
