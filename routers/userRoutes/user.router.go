package userRoutes

import (
	engagement "keciapp/controllers/engagement"
	progress "keciapp/controllers/progress"
	"keciapp/middleware"
	engagementValidators "keciapp/validators/engagement"
	progressValidators "keciapp/validators/progress"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes sets up progress tracking, notes, favorites and Q&A routes
func SetupUserRoutes(app *fiber.App) {
	// Progress tracking
	progressGroup := app.Group("/progress", middleware.JWTMiddleware)
	progressGroup.Post("/episode/:id/complete", progressValidators.EpisodeIDParam(), progress.MarkEpisodeComplete)
	progressGroup.Post("/article/:id/complete", progressValidators.ArticleIDParam(), progress.MarkArticleComplete)
	progressGroup.Post("/daily/:id/complete", progressValidators.DailyIDParam(), progress.MarkDailyComplete)
	progressGroup.Post("/weekly/:id/complete", progressValidators.WeeklyIDParam(), progress.MarkWeeklyComplete)
	progressGroup.Get("/series/:id", progressValidators.SeriesIDParam(), progress.GetSeriesProgress)

	// Notes
	noteGroup := app.Group("/note", middleware.JWTMiddleware)
	noteGroup.Post("/create", engagementValidators.CreateNote(), engagement.CreateNote)
	noteGroup.Get("/list", engagement.ListNotes)
	noteGroup.Put("/:id", engagementValidators.NoteIDParam(), engagementValidators.UpdateNote(), engagement.UpdateNote)
	noteGroup.Delete("/:id", engagementValidators.NoteIDParam(), engagement.DeleteNote)

	// Favorites
	favoriteGroup := app.Group("/favorite", middleware.JWTMiddleware)
	favoriteGroup.Post("/toggle", engagementValidators.ToggleFavorite(), engagement.ToggleFavorite)
	favoriteGroup.Get("/list", engagement.ListFavorites)

	// Q&A
	questionGroup := app.Group("/question", middleware.JWTMiddleware)
	questionGroup.Post("/ask", engagementValidators.AskQuestion(), engagement.AskQuestion)
	questionGroup.Get("/list", engagement.ListMyQuestions)

	adminQuestions := app.Group("/admin/question", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminQuestions.Get("/list", engagement.AdminListQuestions)
	adminQuestions.Post("/:id/answer", engagementValidators.QuestionIDParam(), engagementValidators.AnswerQuestion(), engagement.AdminAnswerQuestion)
}
