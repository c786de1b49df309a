package courseRoutes

import (
	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	validators "github.com/wahid1099/CourseMaster-Backend/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course routes
func SetupAdminCourseRoutes(app *fiber.App, ctrl *controllers.Controller) {
	adminGroup := app.Group("/admin")

	// Course management
	adminGroup.Post("/course", middleware.JWTMiddleware, validators.CreateCourse(), ctrl.AdminCreateCourse)
	adminGroup.Put("/course/:id", middleware.JWTMiddleware, validators.CourseID(), validators.UpdateCourse(), ctrl.AdminUpdateCourse)
	adminGroup.Post("/course/:id/publish", middleware.JWTMiddleware, validators.CourseID(), ctrl.AdminPublishCourse)
	adminGroup.Delete("/course/:id", middleware.JWTMiddleware, validators.CourseID(), ctrl.AdminDeleteCourse)
	adminGroup.Post("/course/:id/module", middleware.JWTMiddleware, validators.CourseID(), ctrl.AdminAddModule)

	// Quiz management
	adminGroup.Post("/course/:id/quiz", middleware.JWTMiddleware, validators.CourseID(), validators.CreateQuiz(), ctrl.AdminCreateQuiz)

	// Assignment management
	adminGroup.Post("/course/:id/assignment", middleware.JWTMiddleware, validators.CourseID(), validators.CreateAssignment(), ctrl.AdminCreateAssignment)
	adminGroup.Post("/course/:id/assignment/batch", middleware.JWTMiddleware, validators.CourseID(), validators.CreateAssignmentBatch(), ctrl.AdminCreateAssignmentBatch)
	adminGroup.Get("/assignments", middleware.JWTMiddleware, ctrl.AdminListAssignments)

	// Certificates
	adminGroup.Post("/certificate/:request_id/approve", middleware.JWTMiddleware, validators.RequestID(), ctrl.ApproveCertificate)

	// Dashboard
	adminGroup.Get("/dashboard", middleware.JWTMiddleware, ctrl.AdminDashboard)
}
