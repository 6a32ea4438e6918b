package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("path", "", "path to an export file or directory of .jsonl exports (required)")
	userID := flag.Int("user", 1, "user ID to import into")
	dryRun := flag.Bool("dry-run", false, "report counts without inserting into database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *exportPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-import -config config.yaml -path /path/to/exports [-user 1] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	files, err := collectExports(*exportPath)
	if err != nil {
		log.Error("collecting export files", "path", *exportPath, "error", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		log.Error("no .jsonl export files found", "path", *exportPath)
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	dsn := cfg.Database.DSN()

	// Run migrations
	if err := storage.RunMigrations(dsn, "migrations"); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("migrations applied")

	ctx := context.Background()

	if *dryRun {
		log.Info("DRY RUN mode — no data will be written to the database")
	}

	// Connect database
	db, err := storage.New(ctx, dsn)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("database connected")

	var parsed, inserted int64
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			log.Error("opening export", "file", file, "error", err)
			os.Exit(1)
		}
		raws, err := ingest.ParseExport(f)
		f.Close()
		if err != nil {
			log.Error("parsing export", "file", file, "error", err)
			os.Exit(1)
		}
		parsed += int64(len(raws))

		if *dryRun {
			log.Info("parsed", "file", file, "events", len(raws))
			continue
		}

		rows := make([]models.EventRow, 0, len(raws))
		for _, raw := range raws {
			rows = append(rows, models.EventRow{
				ID:         uuid.New(),
				UserID:     *userID,
				Kind:       raw.Kind,
				OccurredAt: raw.Timestamp,
				Name:       raw.Name,
				Day:        raw.Day,
				Exercise:   raw.Exercise,
				Weight:     string(raw.Weight),
				Reps:       string(raw.Reps),
			})
		}
		n, err := db.AppendEvents(ctx, rows)
		if err != nil {
			log.Error("appending events", "file", file, "error", err)
			os.Exit(1)
		}
		inserted += n
		log.Info("imported", "file", file, "events", len(rows), "inserted", n)
	}

	log.Info("import complete", "files", len(files), "events_parsed", parsed, "events_inserted", inserted)
}

// collectExports returns the .jsonl files under path, or path itself if it
// is a file.
func collectExports(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".jsonl") {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}
