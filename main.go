package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"ids-dashboard/config"
	"ids-dashboard/handlers"
	"ids-dashboard/middleware"
	"ids-dashboard/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	// Initialize services
	services.InitServices(db, cfg.DatabaseName)
	services.InitTokenService(cfg.JWTSecret)
	handlers.Init(cfg)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())

	// CORS configuration - Allow frontend development server
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Session guard for the dashboard pages (redirects), separate from the
	// JSON API guard (401s)
	app.Use(middleware.NewPageGuard(middleware.DefaultPageGuardConfig()))

	// Auth endpoints
	auth := app.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Get("/me", handlers.GetCurrentUser)
	auth.Post("/logout", handlers.Logout)

	// Log store endpoints
	app.Get("/logs", handlers.GetLogs)
	app.Post("/logs", handlers.CreateLog)
	app.Get("/stats", handlers.GetStats)

	// Live log feed for open dashboards
	app.Get("/logs/stream", handlers.StreamUpgrade, websocket.New(handlers.HandleLogStream))

	// Authenticated account endpoints
	api := app.Group("/api", middleware.RequireAuth)
	api.Put("/profile", handlers.UpdateProfile)
	api.Put("/profile/password", handlers.UpdatePassword)
	api.Delete("/account", handlers.DeleteAccount)
	api.Get("/settings", handlers.GetSettings)
	api.Put("/settings", handlers.SaveSettings)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "ids-dashboard",
		})
	})

	// Built dashboard bundle; page routes fall through to the SPA entry
	// after the guard has allowed them
	app.Static("/", "./web/dist")
	for _, page := range middleware.DefaultPageGuardConfig().Pages {
		app.Get(page+"*", servePage)
	}

	// Start server
	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func servePage(c *fiber.Ctx) error {
	return c.SendFile("./web/dist/index.html")
}
