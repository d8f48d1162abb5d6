package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"github.com/qs3c/travelmart_server/config"
	"github.com/qs3c/travelmart_server/internal/database"
	"github.com/qs3c/travelmart_server/internal/pkg/pubsub"
	"github.com/qs3c/travelmart_server/internal/pkg/queue"
	"github.com/qs3c/travelmart_server/internal/repository"
	"github.com/qs3c/travelmart_server/internal/service"
)

var (
	dryRun         = flag.Bool("dry-run", true, "Dry run mode, only count slots without writing")
	reminderWindow = flag.Duration("reminder-window", 0, "Override reminder window (e.g. 24h)")
	timeout        = flag.Duration("timeout", time.Minute, "Sweep timeout")
)

func main() {
	flag.Parse()

	log.Println("Starting expiry sweep...")
	log.Printf("Mode: dry-run=%v", *dryRun)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	window := *reminderWindow
	if window <= 0 {
		window = time.Duration(cfg.Advertisement.ReminderWindowHours) * time.Hour
	}

	sweeper := service.NewExpiryService(
		repository.NewAdvertisementRepository(db),
		queue.NewQueue(rdb, cfg.Queue.NotificationQueue),
		pubsub.NewPublisher(rdb),
		window,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result, err := sweeper.Sweep(ctx, time.Now(), *dryRun)
	if err != nil {
		log.Fatalf("Expiry sweep failed: %v", err)
	}

	log.Println(strings.Repeat("=", 60))
	log.Println("Expiry Sweep Summary")
	log.Println(strings.Repeat("=", 60))
	log.Printf("Expired slots: %d", result.Expired)
	log.Printf("Reminders: %d", result.Reminders)
	if result.DryRun {
		log.Println("DRY RUN MODE - nothing was written")
		log.Println("Run with -dry-run=false to apply")
	}
	log.Println(strings.Repeat("=", 60))
}
