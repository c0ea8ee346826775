package progressValidator

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

func EpisodeIDParam() fiber.Handler { return idParam("id", "episodeID") }
func ArticleIDParam() fiber.Handler { return idParam("id", "articleID") }
func DailyIDParam() fiber.Handler   { return idParam("id", "dailyID") }
func WeeklyIDParam() fiber.Handler  { return idParam("id", "weeklyID") }
func SeriesIDParam() fiber.Handler  { return idParam("id", "seriesID") }
