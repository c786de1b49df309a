package courseRoutes

import (
	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	validators "github.com/wahid1099/CourseMaster-Backend/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App, ctrl *controllers.Controller) {
	courseGroup := app.Group("/course")

	// Course listing and details (published courses)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), ctrl.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, validators.CourseID(), ctrl.GetCourseDetails)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), ctrl.EnrollInCourse)

	// Lesson completion and progress tracking
	courseGroup.Post("/:id/lesson/complete", middleware.JWTMiddleware, validators.CourseID(), validators.MarkLessonComplete(), ctrl.MarkLessonComplete)
	courseGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseID(), ctrl.GetUserProgress)

	// Quizzes
	quizGroup := app.Group("/quiz")
	quizGroup.Get("/:quiz_id", middleware.JWTMiddleware, validators.QuizID(), ctrl.GetQuiz)
	quizGroup.Post("/:quiz_id/submit", middleware.JWTMiddleware, validators.QuizID(), validators.SubmitQuiz(), ctrl.SubmitQuiz)
	quizGroup.Get("/:quiz_id/attempts", middleware.JWTMiddleware, validators.QuizID(), ctrl.GetQuizAttempts)

	// Assignments
	assignmentGroup := app.Group("/assignment")
	assignmentGroup.Get("/my", middleware.JWTMiddleware, ctrl.GetMyAssignments)
	assignmentGroup.Post("/:assignment_id/submit", middleware.JWTMiddleware, validators.AssignmentID(), ctrl.SubmitAssignment)
	assignmentGroup.Post("/:assignment_id/review", middleware.JWTMiddleware, validators.AssignmentID(), validators.ReviewAssignment(), ctrl.ReviewAssignment)

	// User enrollments and certificates
	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, ctrl.GetUserEnrollmentsList)
	userGroup.Get("/certificates", middleware.JWTMiddleware, ctrl.GetUserCertificates)

	// Certificate request
	courseGroup.Post("/:id/certificate/request", middleware.JWTMiddleware, validators.CourseID(), ctrl.RequestCertificate)
}
