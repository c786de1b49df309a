package courseValidator

import (
	"strconv"
	"strings"

	"github.com/wahid1099/CourseMaster-Backend/cache"
	controllers "github.com/wahid1099/CourseMaster-Backend/controllers/course"
	"github.com/wahid1099/CourseMaster-Backend/middleware"
	"github.com/wahid1099/CourseMaster-Backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// paramUint parses a positive integer route parameter into c.Locals
func paramUint(name, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(name))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(local, uint(id))
		return c.Next()
	}
}

// CourseID validates the :id route parameter
func CourseID() fiber.Handler {
	return paramUint("id", "courseID")
}

// QuizID validates the :quiz_id route parameter
func QuizID() fiber.Handler {
	return paramUint("quiz_id", "quizID")
}

// AssignmentID validates the :assignment_id route parameter
func AssignmentID() fiber.Handler {
	return paramUint("assignment_id", "assignmentID")
}

// RequestID validates the :request_id route parameter
func RequestID() fiber.Handler {
	return paramUint("request_id", "requestID")
}

// CourseList validates the course list query and builds the typed filter
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 10)

		errors := make(map[string]string)
		if page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}
		if limit < 1 || limit > 100 {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		filter := cache.ListFilter{
			Status: strings.TrimSpace(c.Query("status")),
			Search: strings.TrimSpace(c.Query("search")),
			Batch:  strings.TrimSpace(c.Query("batch")),
		}
		if filter.Status != "" && filter.Status != "ACTIVE" && filter.Status != "INACTIVE" {
			errors["status"] = "Status must be ACTIVE or INACTIVE!"
		}

		if raw := c.Query("price_min"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value < 0 {
				errors["price_min"] = "Invalid minimum price!"
			} else {
				filter.PriceMin = &value
			}
		}
		if raw := c.Query("price_max"); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil || value < 0 {
				errors["price_max"] = "Invalid maximum price!"
			} else {
				filter.PriceMax = &value
			}
		}

		sort := cache.SortSpec{}
		switch c.Query("sort") {
		case "", "newest":
			sort = cache.SortSpec{Field: "created_at", Desc: true}
		case "title":
			sort = cache.SortSpec{Field: "title"}
		case "price":
			sort = cache.SortSpec{Field: "price"}
		case "price_desc":
			sort = cache.SortSpec{Field: "price", Desc: true}
		default:
			errors["sort"] = "Unknown sort option!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseList", &controllers.CourseListRequest{
			Filter: filter,
			Sort:   sort,
			Page:   page,
			Limit:  limit,
		})
		return c.Next()
	}
}

// CreateCourse validates the admin course creation body
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string   `json:"title" validate:"required,min=3"`
			Description  string   `json:"description"`
			Author       string   `json:"author"`
			Price        *float64 `json:"price" validate:"omitempty,gte=0"`
			Batch        string   `json:"batch"`
			ThumbnailURL string   `json:"thumbnail_url"`
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

		c.Locals("validatedCourse", &services.CourseInput{
			Title:        reqData.Title,
			Description:  reqData.Description,
			Author:       reqData.Author,
			Price:        reqData.Price,
			Batch:        reqData.Batch,
			ThumbnailURL: reqData.ThumbnailURL,
		})
		return c.Next()
	}
}

// UpdateCourse validates the admin course update body
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string   `json:"title"`
			Description  string   `json:"description"`
			Author       string   `json:"author"`
			Price        *float64 `json:"price" validate:"omitempty,gte=0"`
			Batch        string   `json:"batch"`
			Status       string   `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE INACTIVE"`
			ThumbnailURL string   `json:"thumbnail_url"`
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

		c.Locals("validatedCourseUpdate", &services.CourseInput{
			Title:        reqData.Title,
			Description:  reqData.Description,
			Author:       reqData.Author,
			Price:        reqData.Price,
			Batch:        reqData.Batch,
			Status:       reqData.Status,
			ThumbnailURL: reqData.ThumbnailURL,
		})
		return c.Next()
	}
}
