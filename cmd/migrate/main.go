// Command migrate applies or inspects the embedded schema migrations.
//
// Usage:
//
//	migrate [up|down|status]
//
// Requires DATABASE_DSN environment variable to be set. The default command is up.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/bookloan-backend/internal/adapter/postgres"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: migrate [up|down|status]")
	}
	flag.Parse()

	command := "up"
	if flag.NArg() > 0 {
		command = flag.Arg(0)
	}

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := postgres.OpenMigrationDB(ctx, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	provider, err := postgres.NewMigrationProvider(db)
	if err != nil {
		log.Fatal(err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		printResults(results)
		if err != nil {
			log.Fatalf("up: %v", err)
		}
	case "down":
		result, err := provider.Down(ctx)
		if result != nil {
			printResults([]*goose.MigrationResult{result})
		}
		if err != nil {
			log.Fatalf("down: %v", err)
		}
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format(time.RFC3339)
			}
			fmt.Printf("%-6d %-40s %s\n", s.Source.Version, s.Source.Path, applied)
		}
	default:
		flag.Usage()
		os.Exit(2)
	}
}

func printResults(results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Println("no migrations to apply")
		return
	}
	for _, r := range results {
		fmt.Printf("%-6d %-8s %-40s %s\n", r.Source.Version, r.Direction, r.Source.Path, r.Duration)
	}
}
