package catalogController

import (
	"keciapp/access"
	"keciapp/database"
	"keciapp/middleware"
	"keciapp/models"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateArticle creates a new (unpublished) article.
func AdminCreateArticle(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedArticle").(*struct {
		Title      string `json:"title" validate:"required,min=2"`
		Body       string `json:"body" validate:"required"`
		CoverImage string `json:"cover_image"`
		Author     string `json:"author"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	article := models.Article{
		Title:      reqData.Title,
		Body:       reqData.Body,
		CoverImage: reqData.CoverImage,
		Author:     reqData.Author,
	}

	if err := database.Database.Db.Create(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Article created successfully!", article)
}

// AdminUpdateArticle updates an article.
func AdminUpdateArticle(c *fiber.Ctx) error {
	articleID := c.Locals("articleID").(int)
	reqData, ok := c.Locals("validatedArticle").(*struct {
		Title      string `json:"title" validate:"required,min=2"`
		Body       string `json:"body" validate:"required"`
		CoverImage string `json:"cover_image"`
		Author     string `json:"author"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	article.Title = reqData.Title
	article.Body = reqData.Body
	article.CoverImage = reqData.CoverImage
	article.Author = reqData.Author

	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article updated successfully!", article)
}

// AdminPublishArticle toggles an article's active flag.
func AdminPublishArticle(c *fiber.Ctx) error {
	articleID := c.Locals("articleID").(int)

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", articleID, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	article.IsActive = !article.IsActive
	if err := database.Database.Db.Save(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update article!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article publish state updated!", article)
}

// AdminDeleteArticle soft-deletes an article.
func AdminDeleteArticle(c *fiber.Ctx) error {
	articleID := c.Locals("articleID").(int)

	result := database.Database.Db.Model(&models.Article{}).
		Where("id = ? AND is_deleted = ?", articleID, false).
		Update("is_deleted", true)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete article!", nil)
	}
	if result.RowsAffected == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article deleted successfully!", nil)
}

// AdminListArticles lists all articles including unpublished ones.
func AdminListArticles(c *fiber.Ctx) error {
	var articles []models.Article
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("created_at desc").Find(&articles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully!", articles)
}

// ListArticles lists active articles; bodies are withheld until unlocked.
func ListArticles(c *fiber.Ctx) error {
	var articles []models.Article
	if err := database.Database.Db.Where("is_active = ? AND is_deleted = ?", true, false).Order("created_at desc").Find(&articles).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch articles!", nil)
	}

	for i := range articles {
		articles[i].Body = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Articles fetched successfully!", articles)
}

// GetArticle returns a full article if the caller holds a grant on it.
func GetArticle(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	articleID := c.Locals("articleID").(int)

	var article models.Article
	if err := database.Database.Db.Where("id = ? AND is_active = ? AND is_deleted = ?", articleID, true, false).First(&article).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Article not found!", nil)
	}

	engine := access.NewEngine(database.Database.Db)
	unlocked, err := engine.IsUnlocked(userID, access.ArticleTarget(article.ID), 1)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to check access!", nil)
	}
	if !unlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This article is locked!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Article fetched successfully!", article)
}
