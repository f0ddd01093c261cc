package tracker

import (
	"fmt"

	"github.com/sevigo/repro-warden/internal/core"
)

// BuildPlan maps a review onto the current tracker state and returns
// the ordered set of mutations needed to make the tracker reflect the
// review: per-criterion operations in evaluation order, the epic
// operation last. It is a pure function of its inputs, so the
// synchronizer's idempotence reduces to a simple property: identical
// review and tracker state produce an identical plan, and a tracker
// already in sync produces an empty one.
func BuildPlan(rv *core.Review, issues []core.TrackedIssue) (*core.SyncPlan, error) {
	if rv == nil {
		return nil, fmt.Errorf("review cannot be nil")
	}

	byTitle, duplicates := indexByTitle(issues)
	plan := &core.SyncPlan{RepoURL: rv.RepoURL}

	var openTitles []string
	anyNeedsIssue := false

	for _, res := range rv.Results {
		title, err := IssueTitle(res.CriterionID)
		if err != nil {
			return nil, err
		}

		if duplicates[title] {
			// Two issues carry the same deterministic title. Picking one
			// would be guessing, so synchronization for this criterion is
			// skipped and reported.
			plan.Warnings = append(plan.Warnings, fmt.Sprintf(
				"criterion %q: multiple issues titled %q; skipping synchronization", res.CriterionID, title))
			if res.NeedsIssue() {
				anyNeedsIssue = true
				openTitles = append(openTitles, title)
			}
			continue
		}

		existing, exists := byTitle[title]

		if res.NeedsIssue() {
			anyNeedsIssue = true
			openTitles = append(openTitles, title)
			body := issueBody(res)
			switch {
			case !exists:
				plan.Ops = append(plan.Ops, core.SyncOp{
					Action:      core.ActionCreate,
					CriterionID: res.CriterionID,
					Title:       title,
					Body:        body,
				})
			case !existing.Open:
				// Regression: the criterion was fixed once and broke again.
				plan.Ops = append(plan.Ops, core.SyncOp{
					Action:      core.ActionReopen,
					CriterionID: res.CriterionID,
					Title:       title,
					Body:        body,
					Number:      existing.Number,
				})
			case existing.Body != body:
				plan.Ops = append(plan.Ops, core.SyncOp{
					Action:      core.ActionUpdate,
					CriterionID: res.CriterionID,
					Title:       title,
					Body:        body,
					Number:      existing.Number,
				})
			default:
				// Open and current: leave untouched.
			}
			continue
		}

		// Criterion passes: close its issue if one is open.
		if exists && existing.Open {
			plan.Ops = append(plan.Ops, core.SyncOp{
				Action:      core.ActionClose,
				CriterionID: res.CriterionID,
				Title:       title,
				Number:      existing.Number,
			})
		}
	}

	if err := planEpic(plan, rv.RepoURL, byTitle, duplicates, anyNeedsIssue, openTitles); err != nil {
		return nil, err
	}
	return plan, nil
}

// planEpic appends the operation (if any) for the aggregating epic
// issue. The epic is created on first failure, regenerated whenever
// its body drifts, closed only when everything passes, and never
// deleted.
func planEpic(plan *core.SyncPlan, repoURL string, byTitle map[string]core.TrackedIssue, duplicates map[string]bool, anyNeedsIssue bool, openTitles []string) error {
	title := EpicTitle()
	if duplicates[title] {
		plan.Warnings = append(plan.Warnings, fmt.Sprintf(
			"epic: multiple issues titled %q; skipping synchronization", title))
		return nil
	}

	existing, exists := byTitle[title]

	if !anyNeedsIssue {
		if exists && existing.Open {
			plan.Ops = append(plan.Ops, core.SyncOp{
				Action: core.ActionClose,
				Title:  title,
				Number: existing.Number,
			})
		}
		return nil
	}

	body := epicBody(repoURL, openTitles)
	switch {
	case !exists:
		plan.Ops = append(plan.Ops, core.SyncOp{
			Action: core.ActionCreate,
			Title:  title,
			Body:   body,
		})
	case !existing.Open:
		plan.Ops = append(plan.Ops, core.SyncOp{
			Action: core.ActionReopen,
			Title:  title,
			Body:   body,
			Number: existing.Number,
		})
	case existing.Body != body:
		plan.Ops = append(plan.Ops, core.SyncOp{
			Action: core.ActionUpdate,
			Title:  title,
			Body:   body,
			Number: existing.Number,
		})
	}
	return nil
}

// indexByTitle indexes tracker issues by title and flags titles that
// occur more than once. Only titles belonging to this tool's
// deterministic scheme are considered; everything else in the tracker
// is ignored.
func indexByTitle(issues []core.TrackedIssue) (map[string]core.TrackedIssue, map[string]bool) {
	ours := make(map[string]bool, len(issueTitles)+1)
	for _, t := range issueTitles {
		ours[t] = true
	}
	ours[epicTitle] = true

	byTitle := make(map[string]core.TrackedIssue)
	duplicates := make(map[string]bool)
	for _, is := range issues {
		if !ours[is.Title] {
			continue
		}
		if _, seen := byTitle[is.Title]; seen {
			duplicates[is.Title] = true
			continue
		}
		byTitle[is.Title] = is
	}
	return byTitle, duplicates
}
