package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	migrate "github.com/rubenv/sql-migrate"

	"github.com/johnquangdev/summary-evaluator/internal/infrastructure/database"
	"github.com/johnquangdev/summary-evaluator/pkg/config"
)

// Usage: go run ./scripts/migrate [-dir migrations] [-steps N] up|down|status
func main() {
	dir := flag.String("dir", database.MigrationsDir, "directory holding sql-migrate files")
	steps := flag.Int("steps", 0, "maximum migrations to apply (0 = all; down defaults to 1)")
	flag.Parse()

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	// Load configuration
	cfg, err := config.Read()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	switch command {
	case "up":
		log.Printf("🔄 Applying migrations from %s/ ...", *dir)
		n, err := database.Migrate(db, *dir, migrate.Up, *steps)
		if err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		log.Printf("✅ Successfully applied %d migration(s)!", n)

	case "down":
		limit := *steps
		if limit == 0 {
			limit = 1
		}
		log.Printf("⏪ Rolling back %d migration(s) ...", limit)
		n, err := database.Migrate(db, *dir, migrate.Down, limit)
		if err != nil {
			log.Fatalf("Failed to roll back migrations: %v", err)
		}
		log.Printf("✅ Rolled back %d migration(s)", n)

	case "status":
		records, err := database.MigrationStatus(db)
		if err != nil {
			log.Fatalf("Failed to read migration status: %v", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "MIGRATION\tAPPLIED AT")
		for _, r := range records {
			fmt.Fprintf(w, "%s\t%s\n", r.Id, r.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		w.Flush()

	default:
		log.Fatalf("Unknown command %q (want up, down or status)", command)
	}
}
