package catalogValidator

import (
	"keciapp/middleware"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func validationErrors(err error) map[string]string {
	errors := make(map[string]string)
	for _, fieldErr := range err.(validator.ValidationErrors) {
		errors[fieldErr.Field()] = "Failed on rule: " + fieldErr.Tag()
	}
	return errors
}

// idParam validates a positive integer path param and stashes it under key.
func idParam(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(key, id)
		return c.Next()
	}
}

func SeriesIDParam() fiber.Handler  { return idParam("id", "seriesID") }
func EpisodeIDParam() fiber.Handler { return idParam("id", "episodeID") }
func ArticleIDParam() fiber.Handler { return idParam("id", "articleID") }
func DailyIDParam() fiber.Handler   { return idParam("id", "dailyID") }
func WeeklyIDParam() fiber.Handler  { return idParam("id", "weeklyID") }

func CreateSeries() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title" validate:"required,min=2"`
			Description string `json:"description"`
			CoverImage  string `json:"cover_image"`
			Category    string `json:"category"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedSeries", reqData)
		return c.Next()
	}
}

func CreateEpisode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           string `json:"title" validate:"required,min=2"`
			Description     string `json:"description"`
			AudioURL        string `json:"audio_url" validate:"required,url"`
			DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
			SequenceNumber  int    `json:"sequence_number" validate:"required,gte=1"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedEpisode", reqData)
		return c.Next()
	}
}

func UpdateEpisode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title           *string `json:"title"`
			Description     *string `json:"description"`
			AudioURL        *string `json:"audio_url"`
			DurationSeconds *int    `json:"duration_seconds"`
			IsActive        *bool   `json:"is_active"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 2 {
			errors["title"] = "Title must be at least 2 characters!"
		}
		if reqData.DurationSeconds != nil && *reqData.DurationSeconds < 0 {
			errors["duration_seconds"] = "Duration cannot be negative!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedEpisodeUpdate", reqData)
		return c.Next()
	}
}

func CreateArticle() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title      string `json:"title" validate:"required,min=2"`
			Body       string `json:"body" validate:"required"`
			CoverImage string `json:"cover_image"`
			Author     string `json:"author"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedArticle", reqData)
		return c.Next()
	}
}

func CreateDailyContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Date     string `json:"date" validate:"required,datetime=2006-01-02"`
			Title    string `json:"title" validate:"required"`
			Text     string `json:"text" validate:"required"`
			Author   string `json:"author"`
			ImageURL string `json:"image_url"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedDaily", reqData)
		return c.Next()
	}
}

func CreateWeeklyContent() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			WeekStart   string `json:"week_start" validate:"required,datetime=2006-01-02"`
			Title       string `json:"title" validate:"required"`
			Description string `json:"description"`
			EpisodeIDs  []uint `json:"episode_ids"`
			ArticleIDs  []uint `json:"article_ids"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, validationErrors(err))
		}

		c.Locals("validatedWeekly", reqData)
		return c.Next()
	}
}
