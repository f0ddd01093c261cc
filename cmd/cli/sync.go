package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/repro-warden/internal/config"
	"github.com/sevigo/repro-warden/internal/core"
	"github.com/sevigo/repro-warden/internal/github"
	"github.com/sevigo/repro-warden/internal/gitutil"
	"github.com/sevigo/repro-warden/internal/logger"
	"github.com/sevigo/repro-warden/internal/review"
	"github.com/sevigo/repro-warden/internal/snapshot"
	"github.com/sevigo/repro-warden/internal/tracker"
)

var syncDryRun bool

var syncCmd = &cobra.Command{
	Use:   "sync [snapshot-file]",
	Short: "Synchronize tracking issues with the review results",
	Long: `Evaluate a repository snapshot and synchronize GitHub tracking issues with
the results: one issue per failing criterion plus an aggregating epic issue.

Synchronization is idempotent. Issues are identified by deterministic titles,
so repeated runs never create duplicates; fixed criteria close their issues and
regressions reopen them.

Examples:
  repro-warden sync snapshot.json
  repro-warden sync --dry-run snapshot.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runSync,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Print the sync plan without mutating the tracker")
	rootCmd.AddCommand(syncCmd)
}

func runSync(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateForSync(); err != nil {
		return err
	}
	log := logger.NewLogger(logger.Config{
		Level:  cfg.LogLevel.String(),
		Format: cfg.LogFormat,
		Output: "stderr",
	}, nil)

	snap, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}

	owner, repo, err := gitutil.ParseRepoURL(snap.RepoURL)
	if err != nil {
		return err
	}

	rv, err := review.Evaluate(snap, time.Now())
	if err != nil {
		return err
	}

	gh, err := github.NewTrackerFromConfig(ctx, cfg, owner, repo, log)
	if err != nil {
		return err
	}
	syncer := tracker.NewSynchronizer(gh, log)

	var plan *core.SyncPlan
	if syncDryRun {
		plan, err = syncer.Plan(ctx, rv)
	} else {
		plan, err = syncer.Sync(ctx, rv)
	}
	if err != nil {
		return err
	}

	printPlan(plan, syncDryRun)
	return nil
}

func printPlan(plan *core.SyncPlan, dryRun bool) {
	prefix := ""
	if dryRun {
		prefix = "[DRY RUN] "
	}
	if plan.Empty() {
		successColor.Printf("%sTracker already in sync, nothing to do.\n", prefix)
	}
	for _, op := range plan.Ops {
		switch op.Action {
		case core.ActionCreate:
			fmt.Printf("%screate  %q\n", prefix, op.Title)
		case core.ActionUpdate:
			fmt.Printf("%supdate  #%d %q\n", prefix, op.Number, op.Title)
		case core.ActionClose:
			fmt.Printf("%sclose   #%d %q\n", prefix, op.Number, op.Title)
		case core.ActionReopen:
			fmt.Printf("%sreopen  #%d %q\n", prefix, op.Number, op.Title)
		}
	}
	for _, w := range plan.Warnings {
		warnColor.Printf("%swarning: %s\n", prefix, w)
	}
}
