// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"crossquote/internal/config"
	"crossquote/internal/events"
	"crossquote/internal/handlers"
	"crossquote/internal/middleware"
	"crossquote/internal/models"
	"crossquote/internal/repositories"
	"crossquote/internal/services/auth"
	"crossquote/internal/services/pricing"
	"crossquote/internal/services/quote"
	"crossquote/internal/services/report"
	"crossquote/internal/services/schedule"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, cfg *config.Config, publisher events.Publisher, logger *zap.Logger) {
	// Initialize repositories
	merchantRepo := repositories.NewMerchantRepository(repositories.DB)
	quoteRepo := repositories.NewQuoteRepository(repositories.DB)
	counter := repositories.NewOrderCounter(repositories.RedisClient)

	// Initialize the quoting engine
	resolver := schedule.NewResolver()
	solver := pricing.NewSolver()

	// Initialize auth service and handler
	authService := auth.NewService(merchantRepo, logger.Named("auth"))
	authHandler := handlers.NewAuthHandler(authService, cfg, logger.Named("auth"))

	// Initialize services in correct order
	quoteService := quote.NewService(
		merchantRepo,
		quoteRepo,
		counter,
		resolver,
		solver,
		publisher,
		logger.Named("quote"),
		&quote.NoopMetricsCollector{},
	)
	reportService := report.NewService(quoteRepo, cfg.ReportsDir, logger.Named("report"))

	// Initialize handlers
	quoteHandler := handlers.NewQuoteHandler(quoteService, logger.Named("quote"))
	catalogHandler := handlers.NewCatalogHandler(resolver)
	reportHandler := handlers.NewReportHandler(reportService, logger.Named("report"))
	adminHandler := handlers.NewAdminHandler(merchantRepo, logger.Named("admin"))

	// Public routes
	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	// The fee catalog is reference data and needs no session.
	api.Get("/countries", catalogHandler.ListCountries)
	api.Get("/countries/:code", catalogHandler.GetCountry)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to the CrossQuote API",
			"version": "1.0.0",
			"status":  "running",
		})
	})

	// Create middleware instance
	authMiddleware := middleware.NewAuthMiddleware(authService, logger.Named("auth"))

	// Protected routes
	protected := api.Use(authMiddleware.Handler)

	setupQuoteRoutes(protected, quoteHandler)
	setupAccountRoutes(protected, authHandler)
	setupReportRoutes(protected, reportHandler)
	setupAdminRoutes(protected, adminHandler)
}

func setupQuoteRoutes(router fiber.Router, h *handlers.QuoteHandler) {
	quotes := router.Group("/quotes")
	quotes.Post("/", middleware.HasPermission(models.PermissionQuoteWrite), h.CreateQuote)
	quotes.Post("/preview", middleware.HasPermission(models.PermissionQuoteRead), h.PreviewQuote)
	quotes.Get("/", middleware.HasPermission(models.PermissionQuoteRead), h.ListQuotes)
	quotes.Get("/:id", middleware.HasPermission(models.PermissionQuoteRead), h.GetQuote)
	quotes.Post("/:id/confirm", middleware.HasPermission(models.PermissionQuoteWrite), h.ConfirmQuote)
	quotes.Delete("/:id", middleware.HasPermission(models.PermissionQuoteWrite), h.DeleteQuote)
}

func setupAccountRoutes(router fiber.Router, authHandler *handlers.AuthHandler) {
	router.Post("/change-password", authHandler.ChangePassword)
	router.Post("/logout", authHandler.Logout)
}

func setupReportRoutes(router fiber.Router, h *handlers.ReportHandler) {
	router.Get("/reports/quotes", middleware.HasPermission(models.PermissionReportRead), h.ExportQuotes)
}

func setupAdminRoutes(router fiber.Router, h *handlers.AdminHandler) {
	admin := router.Group("/admin", middleware.RequireAdmin)
	admin.Get("/merchants", middleware.HasPermission(models.PermissionReadAdmin), h.ListMerchants)
	admin.Post("/merchants/:id/suspend", middleware.HasPermission(models.PermissionWriteAdmin), h.SuspendMerchant)
	admin.Post("/merchants/:id/reinstate", middleware.HasPermission(models.PermissionWriteAdmin), h.ReinstateMerchant)
	admin.Get("/stats/redis", handlers.CounterStats)
}
