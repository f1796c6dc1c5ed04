package routes

import (
	"github.com/gofiber/fiber/v2"

	"demandai/handlers"
	"demandai/middleware"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)
	auth.Post("/init", handlers.HandleInitializeAdmin)

	// --- Data & Analytics Routes ---
	data := api.Group("/", middleware.JWTMiddleware)

	data.Post("/upload", handlers.HandleUpload)
	data.Get("/history", handlers.HandleGetHistory)
	data.Post("/clear-data", handlers.HandleClearData)

	data.Post("/forecast", handlers.HandleForecast)
	data.Post("/inventory", handlers.HandleInventoryPlan)

	data.Get("/dashboard", handlers.HandleDashboard)
	data.Get("/product-stats", handlers.HandleProductStats)
	data.Get("/products", handlers.HandleListProducts)

	data.Get("/notifications", handlers.HandleGetNotifications)
	data.Post("/notifications/read", handlers.HandleMarkNotificationsRead)
	data.Post("/notifications/clear", handlers.HandleClearNotifications)

	data.Post("/chat", handlers.HandleChat)
}
