package routes

import (
	"FoodWise-Backend/internal/api/handlers"
	"FoodWise-Backend/internal/middleware"
	"FoodWise-Backend/pkg/jwt"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App                 *fiber.App
	UserHandler         handlers.UserHandler
	ItemHandler         handlers.ItemHandler
	InsightHandler      handlers.InsightHandler
	NotificationHandler handlers.NotificationHandler
	Middleware          middleware.Middleware
	JWTService          jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Items()
	c.Insights()
	c.Notifications()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	// user routes
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Patch("/update", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateUser)
	}
}

func (c *Config) Items() {
	items := c.App.Group("/api/v1/items", c.Middleware.AuthMiddleware(c.JWTService))
	items.Get("/dashboard", c.ItemHandler.GetDashboard)
	items.Get("/expiring", c.ItemHandler.GetExpiringItems)

	// Basic CRUD operations
	items.Post("", c.ItemHandler.AddItem)
	items.Get("", c.ItemHandler.GetItems)
	items.Get("/:id", c.ItemHandler.GetItemDetails)
	items.Put("/:id", c.ItemHandler.UpdateItem)
	items.Delete("/:id", c.ItemHandler.DeleteItem)

	// Lifecycle and media operations
	items.Post("/:id/consume", c.ItemHandler.MarkConsumed)
	items.Post("/:id/waste", c.ItemHandler.MarkWasted)
	items.Post("/photo", c.ItemHandler.UploadItemPhoto)
}

func (c *Config) Insights() {
	insights := c.App.Group("/api/v1/insights", c.Middleware.AuthMiddleware(c.JWTService))
	insights.Get("/meals", c.InsightHandler.GetMealSuggestions)
	insights.Get("/groceries", c.InsightHandler.GetGrocerySuggestions)
	insights.Get("/report", c.InsightHandler.GetInventoryReport)
}

func (c *Config) Notifications() {
	notifications := c.App.Group("/api/v1/notifications", c.Middleware.AuthMiddleware(c.JWTService))
	notifications.Get("", c.NotificationHandler.GetNotifications)
	notifications.Patch("/read-all", c.NotificationHandler.MarkAllRead)
	notifications.Patch("/:id/read", c.NotificationHandler.MarkRead)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
