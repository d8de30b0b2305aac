package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v3"
	"github.com/joho/godotenv"

	"github.com/RoqueChristian/analise-conexao/internal/config"
	"github.com/RoqueChristian/analise-conexao/internal/format"
	"github.com/RoqueChristian/analise-conexao/internal/handlers"
	"github.com/RoqueChristian/analise-conexao/internal/middleware"
	"github.com/RoqueChristian/analise-conexao/internal/services"
	"github.com/RoqueChristian/analise-conexao/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// File source for the two exports (local directory or S3 bucket)
	var source services.FileSource
	switch cfg.SourceBackend {
	case config.SourceS3:
		s3Source, err := services.NewS3Source(cfg.S3Bucket, cfg.S3Region, cfg.S3Prefix, cfg.AWSEndpoint)
		if err != nil {
			log.Fatalf("Failed to initialize S3 source: %v", err)
		}
		source = s3Source
		log.Printf("✓ Reading exports from s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
	default:
		source = services.NewLocalSource(cfg.DataDir)
		log.Printf("✓ Reading exports from %s", cfg.DataDir)
	}

	// Reconciliation pipeline
	validator := services.NewFeedValidator(cfg.MaxFileBytes)
	loader := services.NewLoader(source, validator)
	cache := services.NewDatasetCache()
	reconciler := services.NewReconciler(cfg.RegionColumn)
	analysis := services.NewAnalysis(loader, cache, reconciler, cfg.BillingFile, cfg.OrdersFile)
	log.Println("✓ Reconciliation pipeline initialized successfully")

	supplementary := services.NewSupplementary(source, validator, cfg.SupplementaryFile)
	exporter := services.NewExporter()
	formatter := format.NewCurrencyFormatter(cfg.CurrencyLocale, cfg.CurrencySymbol)

	// Initialize handlers
	overviewHandler := handlers.NewOverviewHandler(analysis, formatter)
	analysisHandler := handlers.NewAnalysisHandler(analysis)
	leaderboardHandler := handlers.NewLeaderboardHandler(analysis, formatter)
	supplementaryHandler := handlers.NewSupplementaryHandler(supplementary)
	exportHandler := handlers.NewExportHandler(analysis, exporter)

	app := fiber.New(fiber.Config{
		AppName:      "analise-conexao API v1.0",
		ErrorHandler: utils.ErrorHandler,
	})

	// Apply global middleware
	app.Use(middleware.CORS())

	// Health check endpoint
	app.Get("/health", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "analise-conexao",
		})
	})

	// API v1 routes
	v1 := app.Group("/v1")

	v1.Get("/overview", overviewHandler.GetOverview)

	v1.Get("/customers", analysisHandler.GetCustomers)
	v1.Get("/suppliers", analysisHandler.GetSuppliers)
	v1.Get("/branches", analysisHandler.GetBranches)
	v1.Get("/regions", analysisHandler.GetRegions)

	v1.Get("/leaderboards/customers", leaderboardHandler.GetTopCustomers)
	v1.Get("/leaderboards/suppliers", leaderboardHandler.GetTopSuppliers)

	v1.Get("/supplementary", supplementaryHandler.GetSupplementary)
	v1.Get("/export", exportHandler.GetExport)

	log.Println("✓ All routes configured successfully")
	log.Printf("🚀 analise-conexao API is running on :%d", cfg.Port)
	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.Port)))
}
