package catalogController

import (
	"encoding/json"
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"
	"time"

	"github.com/jinzhu/now"
	"gorm.io/datatypes"

	"github.com/gofiber/fiber/v2"
)

// idListJSON stores a catalog id list in a JSON column.
func idListJSON(ids []uint) datatypes.JSON {
	if ids == nil {
		ids = []uint{}
	}
	b, _ := json.Marshal(ids)
	return datatypes.JSON(b)
}

// AdminCreateDailyContent creates the affirmation for one calendar day.
func AdminCreateDailyContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedDaily").(*struct {
		Date     string `json:"date" validate:"required,datetime=2006-01-02"`
		Title    string `json:"title" validate:"required"`
		Text     string `json:"text" validate:"required"`
		Author   string `json:"author"`
		ImageURL string `json:"image_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	date, err := time.Parse("2006-01-02", reqData.Date)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format, expected YYYY-MM-DD!", nil)
	}

	var existing models.DailyContent
	if err := database.Database.Db.Where("date = ? AND is_deleted = ?", date, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Daily content for this date already exists!", nil)
	}

	body, err := json.Marshal(map[string]string{
		"title":     reqData.Title,
		"text":      reqData.Text,
		"author":    reqData.Author,
		"image_url": reqData.ImageURL,
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to format content body!", nil)
	}

	daily := models.DailyContent{
		Date: date,
		Body: datatypes.JSON(body),
	}

	if err := database.Database.Db.Create(&daily).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create daily content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Daily content created successfully!", daily)
}

// AdminPublishDailyContent toggles a day's publish flag.
func AdminPublishDailyContent(c *fiber.Ctx) error {
	dailyID := c.Locals("dailyID").(int)

	var daily models.DailyContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", dailyID, false).First(&daily).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Daily content not found!", nil)
	}

	daily.IsPublished = !daily.IsPublished
	if err := database.Database.Db.Save(&daily).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update daily content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Daily content publish state updated!", daily)
}

// AdminListDailyContent lists upcoming daily content.
func AdminListDailyContent(c *fiber.Ctx) error {
	var items []models.DailyContent
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("date desc").Limit(60).Find(&items).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch daily content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Daily content fetched successfully!", items)
}

// GetTodayContent returns today's published affirmation.
func GetTodayContent(c *fiber.Ctx) error {
	today := now.BeginningOfDay()

	var daily models.DailyContent
	err := database.Database.Db.
		Where("date = ? AND is_published = ? AND is_deleted = ?", today, true, false).
		First(&daily).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No content published for today!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Today's content fetched successfully!", daily)
}

// AdminCreateWeeklyContent creates a weekly bundle.
func AdminCreateWeeklyContent(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedWeekly").(*struct {
		WeekStart   string `json:"week_start" validate:"required,datetime=2006-01-02"`
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
		EpisodeIDs  []uint `json:"episode_ids"`
		ArticleIDs  []uint `json:"article_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	weekStart, err := time.Parse("2006-01-02", reqData.WeekStart)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid date format, expected YYYY-MM-DD!", nil)
	}

	var existing models.WeeklyContent
	if err := database.Database.Db.Where("week_start = ? AND is_deleted = ?", weekStart, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Weekly content for this week already exists!", nil)
	}

	weekly := models.WeeklyContent{
		WeekStart:   weekStart,
		Title:       reqData.Title,
		Description: reqData.Description,
		EpisodeIDs:  idListJSON(reqData.EpisodeIDs),
		ArticleIDs:  idListJSON(reqData.ArticleIDs),
	}

	if err := database.Database.Db.Create(&weekly).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create weekly content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Weekly content created successfully!", weekly)
}

// AdminPublishWeeklyContent toggles a weekly bundle's publish flag.
func AdminPublishWeeklyContent(c *fiber.Ctx) error {
	weeklyID := c.Locals("weeklyID").(int)

	var weekly models.WeeklyContent
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", weeklyID, false).First(&weekly).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Weekly content not found!", nil)
	}

	weekly.IsPublished = !weekly.IsPublished
	if err := database.Database.Db.Save(&weekly).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update weekly content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Weekly content publish state updated!", weekly)
}

// GetCurrentWeekContent returns this week's published bundle.
func GetCurrentWeekContent(c *fiber.Ctx) error {
	weekStart := now.BeginningOfWeek()

	var weekly models.WeeklyContent
	err := database.Database.Db.
		Where("week_start = ? AND is_published = ? AND is_deleted = ?", weekStart, true, false).
		First(&weekly).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No content published for the current week!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Weekly content fetched successfully!", weekly)
}
