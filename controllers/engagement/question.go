package engagementController

import (
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"
	"keciapp/utils"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AskQuestion creates a Q&A entry addressed to the staff.
func AskQuestion(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	question := models.Question{
		UserID:        userID,
		ReferenceCode: uuid.NewString(),
		Subject:       reqData.Subject,
		Body:          reqData.Body,
		Status:        "OPEN",
	}

	if err := database.Database.Db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question submitted successfully!", question)
}

// ListMyQuestions returns the caller's Q&A history.
func ListMyQuestions(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var questions []models.Question
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}

// AdminListQuestions lists questions for staff, open ones first.
func AdminListQuestions(c *fiber.Ctx) error {
	var questions []models.Question
	if err := database.Database.Db.Where("is_deleted = ?", false).
		Order("CASE status WHEN 'OPEN' THEN 0 ELSE 1 END, created_at desc").
		Find(&questions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch questions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Questions fetched successfully!", questions)
}

// AdminAnswerQuestion stores a staff answer and emails the asking user.
func AdminAnswerQuestion(c *fiber.Ctx) error {
	staffID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	questionID := c.Locals("questionID").(int)

	reqData, ok := c.Locals("validatedAnswer").(*struct {
		Answer string `json:"answer"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var question models.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	now := time.Now()
	question.Answer = reqData.Answer
	question.Status = "ANSWERED"
	question.AnsweredBy = &staffID
	question.AnsweredAt = &now

	if err := db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save answer!", nil)
	}

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", question.UserID, false).First(&user).Error; err == nil {
		go utils.SendQuestionAnsweredEmail(user.Email, user.Name, question.Subject, question.ReferenceCode)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer saved successfully!", question)
}
