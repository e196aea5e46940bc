package config

import (
	"FreshTrack/internal/api/handlers"
	"FreshTrack/internal/api/routes"
	"FreshTrack/internal/middleware"
	"FreshTrack/internal/utils"
	"FreshTrack/internal/utils/storage"
	"FreshTrack/pkg/jwt"
	"FreshTrack/pkg/notification"
	"FreshTrack/pkg/product"
	"FreshTrack/pkg/user"
	"FreshTrack/pkg/vision"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, *notification.Dispatcher, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	productRepository := product.NewProductRepository(db)
	reminderRepository := notification.NewReminderRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	visionClient := vision.NewClient(
		utils.GetConfig("GEMINI_API_KEY"),
		utils.GetConfig("GEMINI_MODEL"),
	)
	notifier := notification.NewMailNotifier(reminderRepository)
	scheduler := notification.NewScheduler(productRepository, notifier)
	productService := product.NewProductService(productRepository, scheduler, visionClient, s3)

	// Reminder delivery
	pollSeconds, err := strconv.Atoi(utils.GetConfig("REMINDER_POLL_SECONDS"))
	if err != nil || pollSeconds < 1 {
		pollSeconds = 60
	}
	dispatcher := notification.NewDispatcher(
		reminderRepository,
		userRepository,
		time.Duration(pollSeconds)*time.Second,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	productHandler := handlers.NewProductHandler(productService, validator)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ProductHandler: productHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, dispatcher, nil
}
