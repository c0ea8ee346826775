package engagementController

import (
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleFavorite adds or removes a favorite for one content unit. The second
// call on the same unit undoes the first.
func ToggleFavorite(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedFavorite").(*struct {
		EpisodeID *uint `json:"episode_id"`
		ArticleID *uint `json:"article_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	query := db.Where("user_id = ?", userID)
	if reqData.EpisodeID != nil {
		query = query.Where("episode_id = ?", *reqData.EpisodeID)
	} else {
		query = query.Where("article_id = ?", *reqData.ArticleID)
	}

	var existing models.Favorite
	if err := query.First(&existing).Error; err == nil {
		if err := db.Delete(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove favorite!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorite removed!", fiber.Map{"favorited": false})
	}

	favorite := models.Favorite{
		UserID:    userID,
		EpisodeID: reqData.EpisodeID,
		ArticleID: reqData.ArticleID,
	}
	if err := db.Create(&favorite).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add favorite!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorite added!", fiber.Map{"favorited": true})
}

func ListFavorites(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var favorites []models.Favorite
	if err := database.Database.Db.Where("user_id = ?", userID).
		Order("created_at desc").Find(&favorites).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch favorites!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Favorites fetched successfully!", favorites)
}
