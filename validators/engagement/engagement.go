package engagementValidator

import (
	"keciapp/middleware"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func idParam(param, key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(key, id)
		return c.Next()
	}
}

func NoteIDParam() fiber.Handler     { return idParam("id", "noteID") }
func QuestionIDParam() fiber.Handler { return idParam("id", "questionID") }

func CreateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EpisodeID *uint  `json:"episode_id"`
			ArticleID *uint  `json:"article_id"`
			Body      string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Note body is required!"
		}
		if reqData.EpisodeID != nil && reqData.ArticleID != nil {
			errors["target"] = "A note may reference an episode or an article, not both!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedNote", reqData)
		return c.Next()
	}
}

func UpdateNote() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Body string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Body) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"body": "Note body is required!"})
		}

		c.Locals("validatedNoteBody", reqData)
		return c.Next()
	}
}

func ToggleFavorite() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			EpisodeID *uint `json:"episode_id"`
			ArticleID *uint `json:"article_id"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if (reqData.EpisodeID == nil) == (reqData.ArticleID == nil) {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"target": "Exactly one of episode_id and article_id is required!",
			})
		}

		c.Locals("validatedFavorite", reqData)
		return c.Next()
	}
}

func AskQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Subject string `json:"subject"`
			Body    string `json:"body"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		if strings.TrimSpace(reqData.Subject) == "" {
			errors["subject"] = "Subject is required!"
		}
		if strings.TrimSpace(reqData.Body) == "" {
			errors["body"] = "Question body is required!"
		}
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func AnswerQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Answer string `json:"answer"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if strings.TrimSpace(reqData.Answer) == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"answer": "Answer is required!"})
		}

		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}
