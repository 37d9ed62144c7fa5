package main

import (
	"floorplan_manager/config"
	"floorplan_manager/database"
	"floorplan_manager/handler"
	"floorplan_manager/helper"
	"floorplan_manager/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024, // ✅ cho phép upload ảnh nền tối đa 100MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept, X-Session-Id",
		AllowCredentials: true,
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	// cloudinary gắn vào context cho handler upload ảnh nền
	cld := helper.InitCloudinary()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("cld", cld)
		return c.Next()
	})

	handler.StartSessionSweeper()
	defer handler.StopSessionSweeper()
	handler.StartAvailabilityScheduler()
	defer handler.StopAvailabilityScheduler()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
