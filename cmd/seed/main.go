// cmd/seed/main.go
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/avolkova/reviewbrain/internal/config"
	"github.com/avolkova/reviewbrain/internal/database"
	"github.com/avolkova/reviewbrain/internal/seeder"
	"github.com/avolkova/reviewbrain/pkg/utils"
)

var (
	reviewsFile = flag.String("file", "reviews.csv", "Path to the reviews CSV export")
	batchSize   = flag.Int("batch", 100, "Insert batch size")
	dryRun      = flag.Bool("dry-run", false, "Parse and count rows without inserting")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
)

func main() {
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting review seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if !*dryRun && cfg.Database.URL == "" {
		logger.Fatal("DATABASE_URL is required unless --dry-run is set")
	}

	var loader *seeder.Loader
	if *dryRun {
		loader = seeder.NewLoader(nil, logger, *batchSize, true)
	} else {
		dbManager, err := database.NewManager(&database.Config{
			DatabaseURL: cfg.Database.URL,
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		loader = seeder.NewLoader(dbManager.DB, logger, *batchSize, false)
	}

	total, err := loader.Load(context.Background(), *reviewsFile)
	if err != nil {
		logger.WithError(err).Fatal("Review seeding failed")
	}

	logger.WithField("reviews", total).Info("Review seeding finished successfully!")
}
