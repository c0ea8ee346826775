package engagementController

import (
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"

	"github.com/gofiber/fiber/v2"
)

func CreateNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedNote").(*struct {
		EpisodeID *uint  `json:"episode_id"`
		ArticleID *uint  `json:"article_id"`
		Body      string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	note := models.Note{
		UserID:    userID,
		EpisodeID: reqData.EpisodeID,
		ArticleID: reqData.ArticleID,
		Body:      reqData.Body,
	}

	if err := database.Database.Db.Create(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Note created successfully!", note)
}

func ListNotes(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var notes []models.Note
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&notes).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch notes!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Notes fetched successfully!", notes)
}

func UpdateNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	noteID := c.Locals("noteID").(int)

	reqData, ok := c.Locals("validatedNoteBody").(*struct {
		Body string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var note models.Note
	if err := database.Database.Db.Where("id = ? AND user_id = ? AND is_deleted = ?", noteID, userID, false).First(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	note.Body = reqData.Body
	if err := database.Database.Db.Save(&note).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update note!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note updated successfully!", note)
}

func DeleteNote(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	noteID := c.Locals("noteID").(int)

	result := database.Database.Db.Model(&models.Note{}).
		Where("id = ? AND user_id = ? AND is_deleted = ?", noteID, userID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete note!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Note not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Note deleted successfully!", nil)
}
