package tracker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sevigo/repro-warden/internal/core"
)

// Tracker defines the operations the synchronizer needs from an
// external issue tracker. The tracker is a shared, externally mutable
// resource: implementations perform blocking I/O, own their retry
// policy, and never cache state across calls.
type Tracker interface {
	// ListIssues returns all issues of the repository, open and closed.
	ListIssues(ctx context.Context) ([]core.TrackedIssue, error)
	CreateIssue(ctx context.Context, title, body string) (core.TrackedIssue, error)
	UpdateIssue(ctx context.Context, number int, body string) error
	CloseIssue(ctx context.Context, number int) error
	ReopenIssue(ctx context.Context, number int, body string) error
}

// Synchronizer maps reviews onto tracker issues. It re-queries the
// tracker immediately before acting on every run; correctness under
// concurrent external edits comes from the deterministic title lookup,
// not from locking (the tracker offers none).
type Synchronizer struct {
	tracker Tracker
	logger  *slog.Logger
}

// NewSynchronizer creates a synchronizer for the given tracker.
func NewSynchronizer(tracker Tracker, logger *slog.Logger) *Synchronizer {
	if tracker == nil {
		panic("tracker cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Synchronizer{tracker: tracker, logger: logger}
}

// Plan queries the current tracker state and computes the mutations
// needed to reflect the review. It performs no writes.
func (s *Synchronizer) Plan(ctx context.Context, rv *core.Review) (*core.SyncPlan, error) {
	issues, err := s.tracker.ListIssues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracker issues: %w", err)
	}
	plan, err := BuildPlan(rv, issues)
	if err != nil {
		return nil, err
	}
	for _, w := range plan.Warnings {
		s.logger.Warn("tracker data-integrity warning", "repo", rv.RepoURL, "warning", w)
	}
	return plan, nil
}

// Sync plans against fresh tracker state and applies the plan. The
// returned plan reflects what was attempted. A partial failure leaves
// the tracker safe to re-sync: every mutation is guarded by the
// title lookup in the next run's plan, so repeating a sync never
// creates a duplicate issue.
func (s *Synchronizer) Sync(ctx context.Context, rv *core.Review) (*core.SyncPlan, error) {
	plan, err := s.Plan(ctx, rv)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(ctx, plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// Apply executes the plan's operations in order: per-criterion
// operations first, the epic last, so the epic never references an
// issue the run failed to create.
func (s *Synchronizer) Apply(ctx context.Context, plan *core.SyncPlan) error {
	if plan == nil {
		return fmt.Errorf("plan cannot be nil")
	}
	for _, op := range plan.Ops {
		if err := s.apply(ctx, op); err != nil {
			return fmt.Errorf("failed to %s issue %q: %w", op.Action, op.Title, err)
		}
	}
	return nil
}

func (s *Synchronizer) apply(ctx context.Context, op core.SyncOp) error {
	switch op.Action {
	case core.ActionCreate:
		created, err := s.tracker.CreateIssue(ctx, op.Title, op.Body)
		if err != nil {
			return err
		}
		s.logger.Info("created tracking issue", "title", op.Title, "number", created.Number)
		return nil
	case core.ActionUpdate:
		if err := s.tracker.UpdateIssue(ctx, op.Number, op.Body); err != nil {
			return err
		}
		s.logger.Info("updated tracking issue", "title", op.Title, "number", op.Number)
		return nil
	case core.ActionClose:
		if err := s.tracker.CloseIssue(ctx, op.Number); err != nil {
			return err
		}
		s.logger.Info("closed tracking issue", "title", op.Title, "number", op.Number)
		return nil
	case core.ActionReopen:
		if err := s.tracker.ReopenIssue(ctx, op.Number, op.Body); err != nil {
			return err
		}
		s.logger.Info("reopened tracking issue", "title", op.Title, "number", op.Number)
		return nil
	default:
		return fmt.Errorf("unknown sync action %q", op.Action)
	}
}
