package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/7lsnyc/notaryfindernow2/internal/archive"
	"github.com/7lsnyc/notaryfindernow2/internal/config"
	"github.com/7lsnyc/notaryfindernow2/internal/database"
	"github.com/7lsnyc/notaryfindernow2/internal/ingest"
	"github.com/7lsnyc/notaryfindernow2/internal/places"
	"github.com/7lsnyc/notaryfindernow2/internal/repository"
)

func main() {
	os.Exit(run())
}

// run performs one ingest and returns the process exit code. Deferred
// cleanup runs before the code reaches os.Exit.
func run() int {
	cfg, err := config.LoadIngest()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	var (
		cities        = flag.String("cities", os.Getenv("INGEST_CITIES"), `cities to ingest, e.g. "Austin, TX; Denver, CO" (default: built-in list)`)
		dryRun        = flag.Bool("dry-run", false, "log assembled records instead of writing them")
		migrate       = flag.Bool("migrate", false, "apply the database schema before ingesting")
		queryDelay    = flag.Duration("query-delay", cfg.QueryDelay, "pause between search queries")
		cityDelay     = flag.Duration("city-delay", cfg.CityDelay, "pause between cities")
		archiveBucket = flag.String("archive-bucket", cfg.ArchiveBucket, "S3 bucket for raw place details (optional)")
	)
	flag.Parse()

	if cfg.PlacesAPIKey == "" {
		log.Printf("GOOGLE_PLACES_API_KEY must be set")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var retry places.RetryPolicy = places.NoRetry{}
	if cfg.RetryAttempts > 0 {
		retry = places.Backoff{Attempts: cfg.RetryAttempts, Initial: time.Second, Max: 30 * time.Second}
	}
	client, err := places.NewClient(ctx, places.Options{
		APIKey:     cfg.PlacesAPIKey,
		Endpoint:   cfg.PlacesEndpoint,
		Retry:      retry,
		QueryDelay: *queryDelay,
	})
	if err != nil {
		log.Printf("failed to create places client: %v", err)
		return 1
	}

	var store ingest.NotaryStore = ingest.DryRunStore{}
	if !*dryRun {
		pool, err := database.Connect(ctx, cfg.DatabaseURL, database.Options{MaxConns: 2})
		if err != nil {
			log.Printf("failed to connect database: %v", err)
			return 1
		}
		defer pool.Close()

		if *migrate {
			if err := database.EnsureSchema(ctx, pool); err != nil {
				log.Printf("failed to apply schema: %v", err)
				return 1
			}
		}
		store = repository.NewPGXNotariesRepository(pool)
	}

	opts := ingest.Options{CityDelay: *cityDelay}
	if bucket := strings.TrimSpace(*archiveBucket); bucket != "" {
		a, err := archive.NewS3Archive(ctx, bucket, cfg.ArchivePrefix)
		if err != nil {
			log.Printf("failed to configure archive: %v", err)
			return 1
		}
		opts.Archive = a
	}

	targets := ingest.DefaultCities
	if *cities != "" {
		targets = ingest.ParseCities(*cities)
	}
	log.Printf("ingest starting cities=%d dry_run=%t archive=%t", len(targets), *dryRun, opts.Archive != nil)

	summary, err := ingest.NewPipeline(client, store, opts).Run(ctx, targets)
	summary.Log()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Printf("ingest interrupted")
			return 130
		}
		log.Printf("ingest failed: %v", err)
		return 1
	}
	return 0
}
