package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/summary-evaluator/internal/adapter/repository"
	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/database"
	"github.com/johnquangdev/summary-evaluator/internal/usecase/meeting"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
)

// Usage: go run ./scripts/seed [-file data/meetings.yaml]
func main() {
	file := flag.String("file", "data/meetings.yaml", "meeting fixture to import")
	flag.Parse()

	log.Println("🚀 Seeding meetings...")

	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	svc := meeting.NewService(repository.NewMeetingRepository(db), logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := svc.ImportFile(ctx, *file)
	if err != nil {
		log.Fatalf("Failed to import %s: %v", *file, err)
	}
	log.Printf("✅ Imported %d meeting(s) from %s", n, *file)
}
