// Package upload walks a directory of JSONL event exports and sends the
// ones the server has not seen yet.
package upload

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Stats summarizes one upload run.
type Stats struct {
	FilesSent    int
	FilesSkipped int
	FilesErrored int
}

// Uploader ties the HTTP client to the local dedup state.
type Uploader struct {
	client *Client
	state  *StateDB
	log    *slog.Logger
	dryRun bool
}

// New creates an Uploader.
func New(client *Client, state *StateDB, log *slog.Logger, dryRun bool) *Uploader {
	return &Uploader{client: client, state: state, log: log, dryRun: dryRun}
}

// Run uploads every .jsonl export under dir that has not been sent before.
// A single bad file is logged and counted, not fatal: the rest of the
// directory still goes through.
func (u *Uploader) Run(dir string) (*Stats, error) {
	stats := &Stats{}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".jsonl") {
			return nil
		}

		relPath, err := filepath.Rel(dir, path)
		if err != nil {
			relPath = path
		}

		if err := u.uploadFile(dir, relPath, stats); err != nil {
			u.log.Error("upload failed", "file", relPath, "error", err)
			stats.FilesErrored++
		}
		return nil
	})
	if err != nil {
		return stats, fmt.Errorf("walking %s: %w", dir, err)
	}

	return stats, nil
}

func (u *Uploader) uploadFile(dir, relPath string, stats *Stats) error {
	path := filepath.Join(dir, relPath)

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing: %w", err)
	}

	sent, err := u.state.IsUploaded(relPath, info.Size(), hash)
	if err != nil {
		return fmt.Errorf("checking state: %w", err)
	}
	if sent {
		stats.FilesSkipped++
		return nil
	}

	if u.dryRun {
		u.log.Info("would upload", "file", relPath, "size", info.Size())
		stats.FilesSent++
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := u.client.SendExport(data); err != nil {
		return err
	}
	if err := u.state.MarkUploaded(relPath, info.Size(), hash); err != nil {
		return fmt.Errorf("recording state: %w", err)
	}

	u.log.Info("uploaded", "file", relPath, "size", info.Size())
	stats.FilesSent++
	return nil
}
