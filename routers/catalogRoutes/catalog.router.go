package catalogRoutes

import (
	controllers "keciapp/controllers/catalog"
	"keciapp/middleware"
	validators "keciapp/validators/catalog"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes sets up admin catalog management and the user-facing
// content surface
func SetupCatalogRoutes(app *fiber.App) {
	// Series management
	adminSeries := app.Group("/admin/series", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminSeries.Post("/create", validators.CreateSeries(), controllers.AdminCreateSeries)
	adminSeries.Get("/list", controllers.AdminListSeries)
	adminSeries.Put("/:id", validators.SeriesIDParam(), validators.CreateSeries(), controllers.AdminUpdateSeries)
	adminSeries.Delete("/:id", validators.SeriesIDParam(), controllers.AdminDeleteSeries)
	adminSeries.Post("/:id/publish", validators.SeriesIDParam(), controllers.AdminPublishSeries)
	adminSeries.Post("/:id/episode", validators.SeriesIDParam(), validators.CreateEpisode(), controllers.AdminCreateEpisode)

	// Episode management
	adminEpisode := app.Group("/admin/episode", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminEpisode.Put("/:id", validators.EpisodeIDParam(), validators.UpdateEpisode(), controllers.AdminUpdateEpisode)
	adminEpisode.Delete("/:id", validators.EpisodeIDParam(), controllers.AdminDeleteEpisode)

	// Article management
	adminArticle := app.Group("/admin/article", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminArticle.Post("/create", validators.CreateArticle(), controllers.AdminCreateArticle)
	adminArticle.Get("/list", controllers.AdminListArticles)
	adminArticle.Put("/:id", validators.ArticleIDParam(), validators.CreateArticle(), controllers.AdminUpdateArticle)
	adminArticle.Delete("/:id", validators.ArticleIDParam(), controllers.AdminDeleteArticle)
	adminArticle.Post("/:id/publish", validators.ArticleIDParam(), controllers.AdminPublishArticle)

	// Daily and weekly content management
	adminDaily := app.Group("/admin/daily", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminDaily.Post("/create", validators.CreateDailyContent(), controllers.AdminCreateDailyContent)
	adminDaily.Get("/list", controllers.AdminListDailyContent)
	adminDaily.Post("/:id/publish", validators.DailyIDParam(), controllers.AdminPublishDailyContent)

	adminWeekly := app.Group("/admin/weekly", middleware.JWTMiddleware, middleware.RequireRole("ADMIN"))
	adminWeekly.Post("/create", validators.CreateWeeklyContent(), controllers.AdminCreateWeeklyContent)
	adminWeekly.Post("/:id/publish", validators.WeeklyIDParam(), controllers.AdminPublishWeeklyContent)

	// User-facing catalog
	app.Get("/series/list", middleware.JWTMiddleware, controllers.ListSeries)
	app.Get("/series/:id", middleware.JWTMiddleware, validators.SeriesIDParam(), controllers.GetSeriesDetails)
	app.Get("/article/list", middleware.JWTMiddleware, controllers.ListArticles)
	app.Get("/article/:id", middleware.JWTMiddleware, validators.ArticleIDParam(), controllers.GetArticle)
	app.Get("/daily/today", middleware.JWTMiddleware, controllers.GetTodayContent)
	app.Get("/weekly/current", middleware.JWTMiddleware, controllers.GetCurrentWeekContent)
}
