package main

import (
	"log"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	"github.com/wahid1099/CourseMaster-Backend/config"
	authController "github.com/wahid1099/CourseMaster-Backend/controllers/auth"
	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/database"
	"github.com/wahid1099/CourseMaster-Backend/routers/authRoutes"
	"github.com/wahid1099/CourseMaster-Backend/routers/courseRoutes"
	"github.com/wahid1099/CourseMaster-Backend/services"
	"github.com/wahid1099/CourseMaster-Backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()
	db := database.Database.Db

	// Cache is strictly an optimization: a missing or unreachable Redis
	// leaves the store disabled and every request hits the database.
	store := cache.Disabled()
	var memoryBackend *cache.MemoryBackend
	if config.AppConfig.CacheEnabled {
		backend, err := cache.NewRedisBackend(
			config.AppConfig.RedisAddr,
			config.AppConfig.RedisPassword,
			config.AppConfig.RedisDB,
		)
		if err != nil {
			log.Printf("Warning: Redis unavailable (%v), falling back to in-memory cache", err)
			memoryBackend = cache.NewMemoryBackend()
			store = cache.New(memoryBackend, config.AppConfig.CacheTTL)
		} else {
			store = cache.New(backend, config.AppConfig.CacheTTL)
		}
	}
	invalidator := cache.NewCoordinator(store)

	users := services.NewUserService(db, config.AppConfig.SaltRound)
	courses := services.NewCourseService(db, invalidator)
	enrollments := services.NewEnrollmentService(db, invalidator)
	progress := services.NewProgressTracker(db, invalidator)
	quizzes := services.NewQuizService(db, invalidator)

	var notifier services.ReviewNotifier
	if webhook := utils.NewReviewWebhook(config.AppConfig.ReviewWebhookURL); webhook != nil {
		notifier = webhook
	}
	assignments := services.NewAssignmentService(db, invalidator, notifier)
	certificates := services.NewCertificateService(db, invalidator)
	dashboard := services.NewDashboardService(db, invalidator)

	ctrl := controllers.NewController(users, courses, enrollments, progress, quizzes, assignments, certificates, dashboard)
	authCtrl := authController.NewController(users)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	authRoutes.SetupAuthRoutes(app, authCtrl)
	courseRoutes.SetupCourseRoutes(app, ctrl)
	courseRoutes.SetupAdminCourseRoutes(app, ctrl)

	utils.StartReminderScheduler(db, assignments, memoryBackend)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
