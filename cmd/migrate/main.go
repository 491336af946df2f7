package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/chestno/chestno/internal/config"
	"github.com/chestno/chestno/internal/logger"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "Print migration SQL without executing it")
	dir := flag.String("dir", "migrations", "Directory containing migration files")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logger.NewLogger()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	files, err := filepath.Glob(filepath.Join(*dir, "*.up.sql"))
	if err != nil {
		logger.Fatalw("Failed to list migration files", "error", err)
	}
	sort.Strings(files)

	if len(files) == 0 {
		logger.Fatalw("No migration files found", "dir", *dir)
	}

	if *dryRun {
		logger.Info("Dry run mode - printing migration SQL without executing")
		for _, file := range files {
			sql, err := os.ReadFile(file)
			if err != nil {
				logger.Fatalw("Failed to read migration file", "file", file, "error", err)
			}
			fmt.Printf("-- %s\n%s\n", file, sql)
		}
		return
	}

	dsn := cfg.Postgres.GetDSN()
	logger.Infow("Connecting to database", "host", cfg.Postgres.Host)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logger.Fatalw("Failed to connect to postgres", "error", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Info("Running database migrations...")
	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			logger.Fatalw("Failed to read migration file", "file", file, "error", err)
		}
		if _, err := db.ExecContext(ctx, string(sql)); err != nil {
			logger.Fatalw("Failed to apply migration", "file", file, "error", err)
		}
		logger.Infow("Applied migration", "file", file)
	}

	logger.Info("Migration completed successfully")
}
