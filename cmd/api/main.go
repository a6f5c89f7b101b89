package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"alfredoptarigan/resume-mocker/internal/config"
	"alfredoptarigan/resume-mocker/internal/handlers"
	"alfredoptarigan/resume-mocker/internal/metrics"
	"alfredoptarigan/resume-mocker/internal/models"
	"alfredoptarigan/resume-mocker/internal/repositories"
	"alfredoptarigan/resume-mocker/internal/services"
	"alfredoptarigan/resume-mocker/internal/web"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}
	log.Println("✅ Config loaded successfully")

	// Initialize attempt ledger
	var attemptRepo repositories.AttemptRepository
	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}
		attemptRepo = repositories.NewAttemptRepository(db)
		log.Println("✅ Attempt ledger backed by postgres")
	} else {
		attemptRepo = repositories.NewMemoryAttemptRepository(cfg.Database.LedgerEntries)
		log.Printf("✅ Attempt ledger kept in memory (%d entries)\n", cfg.Database.LedgerEntries)
	}

	// Initialize model
	model, err := services.NewRoastModel(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize %s: %v", cfg.LLM.Provider, err)
	}
	log.Printf("✅ %s model %s initialized\n", model.Provider(), cfg.Model())

	// Initialize services
	encoder := services.NewFileEncoder(cfg.Storage.MaxFileSize, services.NewPDFInspector(cfg.Storage.MaxPDFPages))
	requestBuilder := services.NewRequestBuilder(cfg.Model(), cfg.Roast.Temperature)
	roastService := services.NewLimitedRoastService(
		services.NewRoastService(
			attemptRepo,
			encoder,
			requestBuilder,
			model,
			cfg.Model(),
			cfg.Roast.Timeout,
		),
		cfg.Roast.MaxConcurrent,
	)
	log.Println("✅ Services initialized successfully")

	// Initialize Handlers
	roastHandler := handlers.NewRoastHandler(roastService, cfg.Storage.MaxFileSize)
	attemptHandler := handlers.NewAttemptHandler(attemptRepo)
	healthHandler := handlers.NewHealthHandler(model.Provider(), cfg.Model())
	log.Println("✅ Handlers initialized")

	// Create Fiber app, leaving room for the multipart envelope around the
	// largest allowed file
	app := fiber.New(fiber.Config{
		AppName:      "The Resume Mocker",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    int(cfg.Storage.MaxFileSize) + 64*1024,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Routes
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.HandleHealth)
	api.Post("/roast", roastHandler.HandleRoast)
	api.Get("/attempts/:id", attemptHandler.HandleGetAttempt)

	// Single-page UI
	if err := web.Register(app); err != nil {
		log.Fatalf("❌ Failed to mount web page: %v", err)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("🔥 Roast page: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	message := err.Error()
	errorCode := string(services.KindUnknown)
	if code == fiber.StatusRequestEntityTooLarge {
		message = "That file is too large to roast."
		errorCode = string(services.KindInvalidFile)
	} else if code == fiber.StatusInternalServerError {
		log.Printf("❌ Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		message = services.UserMessage(err)
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Code:  errorCode,
	})
}
