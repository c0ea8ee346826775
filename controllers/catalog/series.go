package catalogController

import (
	"keciapp/access"
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateSeries creates a new (unpublished) podcast series.
func AdminCreateSeries(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSeries").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		CoverImage  string `json:"cover_image"`
		Category    string `json:"category"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	series := models.Series{
		Title:       reqData.Title,
		Description: reqData.Description,
		CoverImage:  reqData.CoverImage,
	}
	if reqData.Category != "" {
		series.Category = reqData.Category
	}

	if err := database.Database.Db.Create(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Series created successfully!", series)
}

// AdminUpdateSeries updates title/description/cover/category of a series.
func AdminUpdateSeries(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(int)
	reqData, ok := c.Locals("validatedSeries").(*struct {
		Title       string `json:"title" validate:"required,min=2"`
		Description string `json:"description"`
		CoverImage  string `json:"cover_image"`
		Category    string `json:"category"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var series models.Series
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", seriesID, false).First(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	series.Title = reqData.Title
	series.Description = reqData.Description
	series.CoverImage = reqData.CoverImage
	if reqData.Category != "" {
		series.Category = reqData.Category
	}

	if err := database.Database.Db.Save(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series updated successfully!", series)
}

// AdminPublishSeries toggles a series' active flag.
func AdminPublishSeries(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(int)

	var series models.Series
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", seriesID, false).First(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	series.IsActive = !series.IsActive
	if err := database.Database.Db.Save(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series publish state updated!", series)
}

// AdminDeleteSeries soft-deletes a series.
func AdminDeleteSeries(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(int)

	result := database.Database.Db.Model(&models.Series{}).
		Where("id = ? AND is_deleted = ?", seriesID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete series!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series deleted successfully!", nil)
}

// AdminListSeries lists all series including unpublished ones.
func AdminListSeries(c *fiber.Ctx) error {
	var series []models.Series
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series fetched successfully!", series)
}

// AdminCreateEpisode adds an episode to a series.
func AdminCreateEpisode(c *fiber.Ctx) error {
	seriesID := c.Locals("seriesID").(int)
	reqData, ok := c.Locals("validatedEpisode").(*struct {
		Title           string `json:"title" validate:"required,min=2"`
		Description     string `json:"description"`
		AudioURL        string `json:"audio_url" validate:"required,url"`
		DurationSeconds int    `json:"duration_seconds" validate:"gte=0"`
		SequenceNumber  int    `json:"sequence_number" validate:"required,gte=1"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var series models.Series
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", seriesID, false).First(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	// Sequence numbers must stay unique within the series' active ordering.
	var clash models.Episode
	if err := database.Database.Db.Where("series_id = ? AND sequence_number = ? AND is_deleted = ?", seriesID, reqData.SequenceNumber, false).First(&clash).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Sequence number already used in this series!", nil)
	}

	episode := models.Episode{
		SeriesID:        uint(seriesID),
		Title:           reqData.Title,
		Description:     reqData.Description,
		AudioURL:        reqData.AudioURL,
		DurationSeconds: reqData.DurationSeconds,
		SequenceNumber:  reqData.SequenceNumber,
	}

	if err := database.Database.Db.Create(&episode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create episode!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Episode created successfully!", episode)
}

// AdminUpdateEpisode updates an episode's metadata or active flag.
func AdminUpdateEpisode(c *fiber.Ctx) error {
	episodeID := c.Locals("episodeID").(int)
	reqData, ok := c.Locals("validatedEpisodeUpdate").(*struct {
		Title           *string `json:"title"`
		Description     *string `json:"description"`
		AudioURL        *string `json:"audio_url"`
		DurationSeconds *int    `json:"duration_seconds"`
		IsActive        *bool   `json:"is_active"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var episode models.Episode
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", episodeID, false).First(&episode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Episode not found!", nil)
	}

	if reqData.Title != nil {
		episode.Title = *reqData.Title
	}
	if reqData.Description != nil {
		episode.Description = *reqData.Description
	}
	if reqData.AudioURL != nil {
		episode.AudioURL = *reqData.AudioURL
	}
	if reqData.DurationSeconds != nil {
		episode.DurationSeconds = *reqData.DurationSeconds
	}
	if reqData.IsActive != nil {
		episode.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(&episode).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update episode!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Episode updated successfully!", episode)
}

// AdminDeleteEpisode soft-deletes an episode.
func AdminDeleteEpisode(c *fiber.Ctx) error {
	episodeID := c.Locals("episodeID").(int)

	result := database.Database.Db.Model(&models.Episode{}).
		Where("id = ? AND is_deleted = ?", episodeID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete episode!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Episode not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Episode deleted successfully!", nil)
}

// ListSeries lists active series for users.
func ListSeries(c *fiber.Ctx) error {
	var series []models.Series
	if err := database.Database.Db.Where("is_active = ? AND is_deleted = ?", true, false).Order("created_at desc").Find(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch series!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series fetched successfully!", series)
}

// GetSeriesDetails returns one series with its active episodes annotated with
// the caller's unlock and completion state.
func GetSeriesDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	seriesID := c.Locals("seriesID").(int)

	db := database.Database.Db

	var series models.Series
	if err := db.Where("id = ? AND is_active = ? AND is_deleted = ?", seriesID, true, false).First(&series).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Series not found!", nil)
	}

	var episodes []models.Episode
	if err := db.Where("series_id = ? AND is_active = ? AND is_deleted = ?", seriesID, true, false).
		Order("sequence_number asc").Find(&episodes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch episodes!", nil)
	}

	engine := access.NewEngine(db)

	accessibleRank := 0
	if grant, err := engine.GetGrant(userID, access.SeriesTarget(series.ID)); err == nil {
		accessibleRank = grant.CurrentSequence
	}

	type episodeWithState struct {
		models.Episode
		Rank        int  `json:"rank"`
		IsUnlocked  bool `json:"is_unlocked"`
		IsCompleted bool `json:"is_completed"`
	}

	result := make([]episodeWithState, len(episodes))
	for i, episode := range episodes {
		rank := i + 1
		result[i] = episodeWithState{
			Episode:    episode,
			Rank:       rank,
			IsUnlocked: rank <= accessibleRank,
		}

		var completion models.CompletionRecord
		if err := db.Where("user_id = ? AND episode_id = ? AND is_completed = ?", userID, episode.ID, true).First(&completion).Error; err == nil {
			result[i].IsCompleted = true
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Series details fetched successfully!", fiber.Map{
		"series":          series,
		"episodes":        result,
		"accessible_rank": accessibleRank,
	})
}
