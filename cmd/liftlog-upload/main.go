package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/claude/liftlog/internal/upload"
)

func main() {
	serverURL := flag.String("server", "", "liftlog server URL (required, e.g. http://localhost:8080)")
	apiKey := flag.String("api-key", os.Getenv("LIFTLOG_AUTH_API_KEY"), "API key (defaults to LIFTLOG_AUTH_API_KEY)")
	exportDir := flag.String("path", "", "directory of .jsonl event exports (required)")
	stateDir := flag.String("state-dir", defaultStateDir(), "directory for the upload state database")
	dryRun := flag.Bool("dry-run", false, "report what would be uploaded without sending")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *serverURL == "" || *exportDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-upload -server http://host:port -path /path/to/exports [-api-key KEY] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	info, err := os.Stat(*exportDir)
	if err != nil || !info.IsDir() {
		log.Error("export path does not exist or is not a directory", "path", *exportDir)
		os.Exit(1)
	}

	state, err := upload.OpenStateDB(*stateDir)
	if err != nil {
		log.Error("opening state db", "error", err)
		os.Exit(1)
	}
	defer state.Close()

	client := upload.NewClient(*serverURL, *apiKey)
	uploader := upload.New(client, state, log, *dryRun)

	stats, err := uploader.Run(*exportDir)
	if err != nil {
		log.Error("upload run failed", "error", err)
		os.Exit(1)
	}

	log.Info("upload complete",
		"files_sent", stats.FilesSent,
		"files_skipped", stats.FilesSkipped,
		"files_errored", stats.FilesErrored,
	)
	if stats.FilesErrored > 0 {
		os.Exit(1)
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + "/liftlog-upload"
	}
	return ".liftlog-upload"
}
