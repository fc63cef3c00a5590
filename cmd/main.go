package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"movie-trends-dashboard/internal/catalog"
	"movie-trends-dashboard/internal/config"
	"movie-trends-dashboard/internal/database"
	"movie-trends-dashboard/internal/handler"
	"movie-trends-dashboard/internal/middleware"
	"movie-trends-dashboard/internal/models"
	"movie-trends-dashboard/internal/predictor"
	"movie-trends-dashboard/internal/service"
	"movie-trends-dashboard/internal/tmdb"
	"movie-trends-dashboard/internal/userstore"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Load datasets (fatal: every dashboard page depends on them)
	titles, err := catalog.LoadTitles(cfg.TitlesCSV)
	if err != nil {
		slog.Error("failed to load titles dataset", "path", cfg.TitlesCSV, "error", err)
		os.Exit(1)
	}
	imdb, err := catalog.LoadImdbTitles(cfg.ImdbCSV)
	if err != nil {
		slog.Error("failed to load top-rated dataset", "path", cfg.ImdbCSV, "error", err)
		os.Exit(1)
	}

	// User-record store
	var store userstore.Store
	switch cfg.UserStore.Backend {
	case "postgres":
		db, err := database.NewPostgres(cfg.DB)
		if err != nil {
			slog.Error("failed to connect to PostgreSQL", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store, err = userstore.NewPostgresStore(db)
		if err != nil {
			slog.Error("failed to initialize postgres user store", "error", err)
			os.Exit(1)
		}
	default:
		store, err = userstore.NewFileStore(cfg.UserStore.Path)
		if err != nil {
			slog.Error("failed to initialize file user store", "path", cfg.UserStore.Path, "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (non-fatal if unavailable)
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
	}

	// Load predictor artifacts (non-fatal: the endpoint reports unavailable)
	pred, err := predictor.Load(cfg.Predictor.ModelPath, cfg.Predictor.EncoderPath)
	if err != nil {
		slog.Warn("predictor unavailable", "error", err)
	}

	// Initialize layers
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)
	sessions := middleware.NewSessionManager(rdb)

	userSvc := service.NewUserService(store)
	dashboardSvc := service.NewDashboardService(titles, imdb, rdb)
	moviesSvc := service.NewMoviesService(tmdbClient, rdb)

	userHandler := handler.NewUserHandler(userSvc, sessions)
	checklistHandler := handler.NewChecklistHandler(userSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc, pred)
	moviesHandler := handler.NewMoviesHandler(moviesSvc)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Trends Dashboard",
		ServerHeader: "Movie-Trends-Dashboard",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())
	if rdb != nil {
		limiter := middleware.NewRateLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindowSeconds)
		app.Use(limiter.Handler())
	}

	// Swagger docs
	swaggerYAML, err := os.ReadFile("docs/swagger.yaml")
	if err != nil {
		slog.Warn("swagger.yaml not found, swagger UI will be unavailable", "error", err)
	} else {
		handler.RegisterSwagger(app, swaggerYAML)
	}

	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"titles":  len(titles),
			"movies":  len(imdb),
			"service": "movie-trends-dashboard",
		})
	})

	// Public API routes
	api := app.Group("/api/v1")
	api.Post("/auth/register", userHandler.Register)
	api.Post("/auth/login", userHandler.Login)

	api.Get("/dashboard/global-trends", dashboardHandler.GlobalTrends)
	api.Get("/dashboard/global-trends/genres", dashboardHandler.GenreBreakdown)
	api.Get("/dashboard/titles-over-time", dashboardHandler.TitlesOverTime)
	api.Get("/dashboard/gross-earnings", dashboardHandler.GrossEarnings)

	api.Get("/predictor/genres", dashboardHandler.PredictorGenres)
	api.Post("/predictor/predict", dashboardHandler.Predict)

	api.Get("/movies/popular", moviesHandler.Popular)
	api.Get("/movies/search", moviesHandler.Search)
	api.Get("/movies/suggestions", moviesHandler.Suggestions)
	api.Get("/movies/:id", moviesHandler.Detail)

	// Authenticated routes
	auth := api.Group("", sessions.Handler())
	auth.Post("/auth/logout", userHandler.Logout)
	auth.Get("/users/me", userHandler.GetProfile)
	auth.Put("/users/me", userHandler.UpdateProfile)

	auth.Get("/users/me/checklist", checklistHandler.GetChecklist)
	auth.Post("/users/me/checklist", checklistHandler.AddEntry)
	auth.Patch("/users/me/checklist/:id", checklistHandler.UpdateEntry)
	auth.Delete("/users/me/checklist/:id", checklistHandler.RemoveEntry)
	auth.Post("/users/me/checklist/:id/share", checklistHandler.ShareEntry)

	auth.Get("/users/me/notifications", checklistHandler.GetNotifications)
	auth.Post("/users/me/notifications/read", checklistHandler.MarkNotificationsRead)
	auth.Delete("/users/me/notifications", checklistHandler.ClearNotifications)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down dashboard service...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting dashboard service", "addr", addr, "titles", len(titles), "top_rated", len(imdb))
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
