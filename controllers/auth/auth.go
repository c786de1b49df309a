package authController

import (
	"errors"
	"log"

	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/models"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/gofiber/fiber/v2"
)

// Controller handles signup and login.
type Controller struct {
	Users *services.UserService
}

func NewController(users *services.UserService) *Controller {
	return &Controller{Users: users}
}

func (ctrl *Controller) Signup(c *fiber.Ctx) error {
	var reqData models.User

	// Parse Request Body
	if err := c.BodyParser(&reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Email == "" || reqData.Password == "" || reqData.Name == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Name, email and password are required!", nil)
	}

	user, err := ctrl.Users.Register(c.Context(), reqData)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Signup successful!", user)
}

func (ctrl *Controller) Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	user, err := ctrl.Users.Authenticate(c.Context(), reqData.Email, reqData.Password)
	if err != nil {
		if errors.Is(err, services.ErrBadCredentials) {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to login!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"token": token,
		"user":  user,
	})
}
