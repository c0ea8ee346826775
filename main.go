package main

import (
	"keciapp/config"
	"keciapp/database"
	accessRoutes "keciapp/routers/accessRoutes"
	authRoutes "keciapp/routers/authRoutes"
	catalogRoutes "keciapp/routers/catalogRoutes"
	userRoutes "keciapp/routers/userRoutes"
	"keciapp/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"log"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	authRoutes.SetupAuthRoutes(app)
	accessRoutes.SetupAccessRoutes(app)
	catalogRoutes.SetupCatalogRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeDailyContentScheduler()
	utils.InitializeSubscriptionScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
