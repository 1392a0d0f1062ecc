package config

import (
	"os"
	"time"

	"FoodWise-Backend/internal/api/handlers"
	"FoodWise-Backend/internal/api/routes"
	"FoodWise-Backend/internal/middleware"
	"FoodWise-Backend/internal/utils"
	"FoodWise-Backend/internal/utils/storage"
	"FoodWise-Backend/pkg/insight"
	"FoodWise-Backend/pkg/item"
	"FoodWise-Backend/pkg/jwt"
	"FoodWise-Backend/pkg/notification"
	"FoodWise-Backend/pkg/prediction"
	"FoodWise-Backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	predictor := prediction.NewClient(utils.GetConfig("PREDICTION_API_URL"))

	// Repository
	userRepository := user.NewUserRepository(db)
	itemRepository := item.NewItemRepository(db)
	notificationRepository := notification.NewNotificationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	itemService := item.NewItemService(itemRepository, predictor, s3)
	insightService := insight.NewInsightService(itemRepository)
	notificationService := notification.NewNotificationService(notificationRepository)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	itemHandler := handlers.NewItemHandler(itemService, validator)
	insightHandler := handlers.NewInsightHandler(insightService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// daily expiry sweep
	sweeper := notification.NewSweeper(userRepository, itemRepository, notificationRepository)
	sweeper.Start()

	// routes
	routesConfig := routes.Config{
		App:                 app,
		UserHandler:         userHandler,
		ItemHandler:         itemHandler,
		InsightHandler:      insightHandler,
		NotificationHandler: notificationHandler,
		Middleware:          middlewares,
		JWTService:          jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
