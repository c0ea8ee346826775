package progressController

import (
	"errors"
	"keciapp/access"
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// unitColumn names the CompletionRecord reference column for each unit kind.
var unitColumn = map[string]string{
	"episode": "episode_id",
	"article": "article_id",
	"daily":   "daily_content_id",
	"weekly":  "weekly_content_id",
}

// markComplete upserts the completion row for one (user, unit) pair.
func markComplete(userID uint, kind string, unitID uint) error {
	db := database.Database.Db
	column := unitColumn[kind]
	now := time.Now()

	var record models.CompletionRecord
	err := db.Where("user_id = ? AND "+column+" = ?", userID, unitID).First(&record).Error
	if err == nil {
		return db.Model(&record).Updates(map[string]interface{}{
			"is_completed": true,
			"completed_at": now,
		}).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	record = models.CompletionRecord{
		UserID:      userID,
		IsCompleted: true,
		CompletedAt: &now,
	}
	switch kind {
	case "episode":
		record.EpisodeID = &unitID
	case "article":
		record.ArticleID = &unitID
	case "daily":
		record.DailyContentID = &unitID
	case "weekly":
		record.WeeklyContentID = &unitID
	}
	return db.Create(&record).Error
}

// MarkEpisodeComplete records that the caller finished an episode. The episode
// must be unlocked for them first.
func MarkEpisodeComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	episodeID := c.Locals("episodeID").(int)

	db := database.Database.Db

	var episode models.Episode
	if err := db.Where("id = ? AND is_active = ? AND is_deleted = ?", episodeID, true, false).First(&episode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Episode not found!", nil)
	}

	// The episode's rank is its position in the series' active ordering.
	var rank int64
	if err := db.Model(&models.Episode{}).
		Where("series_id = ? AND is_active = ? AND is_deleted = ? AND sequence_number <= ?",
			episode.SeriesID, true, false, episode.SequenceNumber).
		Count(&rank).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve episode position!", nil)
	}

	engine := access.NewEngine(db)
	unlocked, err := engine.IsUnlocked(userID, access.SeriesTarget(episode.SeriesID), int(rank))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check access!", nil)
	}
	if !unlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This episode is locked!", nil)
	}

	if err := markComplete(userID, "episode", episode.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Episode marked as completed!", nil)
}

// MarkArticleComplete records that the caller finished an article.
func MarkArticleComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	articleID := c.Locals("articleID").(int)

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_active = ? AND is_deleted = ?", articleID, true, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	if err := markComplete(userID, "article", article.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article marked as completed!", nil)
}

// MarkDailyComplete records that the caller finished a daily content day.
func MarkDailyComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	dailyID := c.Locals("dailyID").(int)

	var daily models.DailyContent
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", dailyID, true, false).First(&daily).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Daily content not found!", nil)
	}

	if err := markComplete(userID, "daily", daily.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Daily content marked as completed!", nil)
}

// MarkWeeklyComplete records that the caller finished a weekly bundle.
func MarkWeeklyComplete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	weeklyID := c.Locals("weeklyID").(int)

	var weekly models.WeeklyContent
	if err := database.Database.Db.Where("id = ? AND is_published = ? AND is_deleted = ?", weeklyID, true, false).First(&weekly).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Weekly content not found!", nil)
	}

	if err := markComplete(userID, "weekly", weekly.ID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record completion!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Weekly content marked as completed!", nil)
}

// GetSeriesProgress returns the caller's per-episode state for one series.
func GetSeriesProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	seriesID := c.Locals("seriesID").(int)

	db := database.Database.Db

	var episodes []models.Episode
	if err := db.Where("series_id = ? AND is_active = ? AND is_deleted = ?", seriesID, true, false).
		Order("sequence_number asc").Find(&episodes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch episodes!", nil)
	}
	if len(episodes) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found or has no episodes!", nil)
	}

	engine := access.NewEngine(db)
	accessibleRank := 0
	if grant, err := engine.GetGrant(userID, access.SeriesTarget(uint(seriesID))); err == nil {
		accessibleRank = grant.CurrentSequence
	}

	completedCount := 0
	type episodeProgress struct {
		EpisodeID   uint `json:"episode_id"`
		Rank        int  `json:"rank"`
		IsUnlocked  bool `json:"is_unlocked"`
		IsCompleted bool `json:"is_completed"`
	}
	progress := make([]episodeProgress, len(episodes))
	for i, episode := range episodes {
		rank := i + 1
		progress[i] = episodeProgress{
			EpisodeID:  episode.ID,
			Rank:       rank,
			IsUnlocked: rank <= accessibleRank,
		}
		var completion models.CompletionRecord
		if err := db.Where("user_id = ? AND episode_id = ? AND is_completed = ?", userID, episode.ID, true).First(&completion).Error; err == nil {
			progress[i].IsCompleted = true
			completedCount++
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"series_id":       seriesID,
		"accessible_rank": accessibleRank,
		"completed_count": completedCount,
		"total_episodes":  len(episodes),
		"episodes":        progress,
	})
}
