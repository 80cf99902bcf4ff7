package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"chat-animation/config"
	"chat-animation/internal/repository"
	"chat-animation/pkg/database"
)

const usage = `
Chat Animation Settings - Database CLI Tool

Usage:
  migrate [command]

Commands:
  up          Create the animation_settings_kv table
  down        Drop the animation_settings_kv table (DANGEROUS)
  status      Show database connection and table status
  truncate    Delete every stored slot (DANGEROUS)

Examples:
  go run cmd/migrate/main.go up
  go run cmd/migrate/main.go status
`

func main() {
	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)
	ctx := context.Background()

	cfg := config.LoadConfig()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer db.Close()

	switch command {
	case "up":
		log.Println("🚀 Running migrations UP...")
		if err := repository.EnsureKeyValueSchema(ctx, db); err != nil {
			log.Fatalf("❌ Migration failed: %v", err)
		}
		log.Println("✅ Migrations completed successfully!")
	case "down":
		log.Println("⬇️  Dropping animation_settings_kv...")
		if err := repository.DropKeyValueSchema(ctx, db); err != nil {
			log.Fatalf("❌ Rollback failed: %v", err)
		}
		log.Println("✅ Rollback completed successfully!")
	case "status":
		showStatus(ctx, db)
	case "truncate":
		log.Println("⚠️  WARNING: This will delete every stored animation slot!")
		if err := repository.TruncateKeyValues(ctx, db); err != nil {
			log.Fatalf("❌ Truncate failed: %v", err)
		}
		log.Println("✅ Table truncated!")
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func showStatus(ctx context.Context, db repository.DBTX) {
	log.Println("✅ Database connection: OK")

	exists, count, err := repository.KeyValueStats(ctx, db)
	switch {
	case err != nil:
		log.Printf("⚠️  Error checking table animation_settings_kv: %v", err)
	case exists:
		log.Printf("✅ Table %-22s exists (%d rows)", "animation_settings_kv", count)
	default:
		log.Printf("❌ Table %-22s does not exist", "animation_settings_kv")
	}
}
