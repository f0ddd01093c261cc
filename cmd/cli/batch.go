package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/sevigo/repro-warden/internal/config"
	"github.com/sevigo/repro-warden/internal/github"
	"github.com/sevigo/repro-warden/internal/gitutil"
	"github.com/sevigo/repro-warden/internal/logger"
	"github.com/sevigo/repro-warden/internal/report"
	"github.com/sevigo/repro-warden/internal/review"
	"github.com/sevigo/repro-warden/internal/snapshot"
	"github.com/sevigo/repro-warden/internal/tracker"
	"github.com/sevigo/repro-warden/internal/util"
)

var (
	batchOutputDir string
	batchSync      bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [snapshot-dir]",
	Short: "Review every snapshot in a directory",
	Long: `Evaluate every snapshot file (.json, .yaml, .yml) in a directory and write one
review document per repository.

Repositories are processed in parallel, but all tracker calls for a single
repository stay on one goroutine so each sync reads current tracker state
immediately before acting.

Examples:
  repro-warden batch snapshots/
  repro-warden batch --sync --output-dir reviews/ snapshots/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	batchCmd.Flags().StringVar(&batchOutputDir, "output-dir", ".", "Directory to write review documents into")
	batchCmd.Flags().BoolVar(&batchSync, "sync", false, "Also synchronize tracking issues for each repository")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if batchSync {
		if err := cfg.ValidateForSync(); err != nil {
			return err
		}
	}
	log := logger.NewLogger(logger.Config{
		Level:  cfg.LogLevel.String(),
		Format: cfg.LogFormat,
		Output: "stderr",
	}, nil)

	entries, err := os.ReadDir(args[0])
	if err != nil {
		return fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.BatchWorkers)

	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !snapshot.IsSnapshotFile(entry.Name()) {
			continue
		}
		processed++
		path := filepath.Join(args[0], entry.Name())
		g.Go(func() error {
			return processOne(gctx, cfg, renderer, log, path)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	successColor.Printf("Reviewed %d repositories.\n", processed)
	return nil
}

// processOne evaluates, renders, and optionally syncs a single
// repository. Evaluate and render are pure; the sync stage runs
// sequentially here, which is what serializes tracker calls within a
// repository.
func processOne(ctx context.Context, cfg *config.Config, renderer *report.Renderer, log *slog.Logger, path string) error {
	snap, err := snapshot.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	rv, err := review.Evaluate(snap, time.Now())
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	doc, err := renderer.Render(rv)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	owner, repo, err := gitutil.ParseRepoURL(snap.RepoURL)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	outPath := filepath.Join(batchOutputDir, util.ReportFileName(owner, repo))
	if err := os.WriteFile(outPath, []byte(doc), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	log.Info("wrote review", "repo", snap.RepoURL, "path", outPath)

	if !batchSync {
		return nil
	}

	gh, err := github.NewTrackerFromConfig(ctx, cfg, owner, repo, log)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if _, err := tracker.NewSynchronizer(gh, log).Sync(ctx, rv); err != nil {
		return fmt.Errorf("%s: sync failed: %w", path, err)
	}
	return nil
}
