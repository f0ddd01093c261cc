// Package github implements the issue tracker interface on top of the
// GitHub API.
package github

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/repro-warden/internal/core"
	"github.com/sevigo/repro-warden/internal/tracker"
)

// issueTracker adapts the official go-github client to the
// tracker.Tracker interface for a single repository. GitHub I/O is the
// only retryable error class in the system, so every call runs under
// an exponential backoff.
type issueTracker struct {
	client  *github.Client
	owner   string
	repo    string
	logger  *slog.Logger
	backoff func() backoff.BackOff
}

// NewIssueTracker wraps an authenticated go-github client as a
// tracker.Tracker scoped to owner/repo.
func NewIssueTracker(client *github.Client, owner, repo string, logger *slog.Logger) tracker.Tracker {
	return &issueTracker{
		client: client,
		owner:  owner,
		repo:   repo,
		logger: logger,
		backoff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxElapsedTime = 30 * time.Second
			return b
		},
	}
}

// NewPATTracker creates an issue tracker authenticated with a Personal
// Access Token. This is the usual path for CLI use.
func NewPATTracker(ctx context.Context, token, owner, repo string, logger *slog.Logger) tracker.Tracker {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)
	return NewIssueTracker(github.NewClient(tc), owner, repo, logger)
}

// ListIssues returns every issue of the repository, open and closed,
// handling pagination. Pull requests share the issues endpoint on
// GitHub and are filtered out.
func (t *issueTracker) ListIssues(ctx context.Context) ([]core.TrackedIssue, error) {
	var all []core.TrackedIssue
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	for {
		var issues []*github.Issue
		var resp *github.Response
		err := t.retry(ctx, func() error {
			var err error
			issues, resp, err = t.client.Issues.ListByRepo(ctx, t.owner, t.repo, opts)
			return err
		})
		if err != nil {
			t.logger.Error("failed to list issues", "owner", t.owner, "repo", t.repo, "error", err)
			return nil, err
		}

		for _, is := range issues {
			if is.IsPullRequest() {
				continue
			}
			all = append(all, core.TrackedIssue{
				Title:  is.GetTitle(),
				Body:   is.GetBody(),
				Open:   is.GetState() == "open",
				Number: is.GetNumber(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.ListOptions.Page = resp.NextPage
	}

	return all, nil
}

// CreateIssue opens a new issue and returns the tracker's view of it,
// including the assigned number.
func (t *issueTracker) CreateIssue(ctx context.Context, title, body string) (core.TrackedIssue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(title),
		Body:  github.Ptr(body),
	}
	var created *github.Issue
	err := t.retry(ctx, func() error {
		var err error
		created, _, err = t.client.Issues.Create(ctx, t.owner, t.repo, req)
		return err
	})
	if err != nil {
		t.logger.Error("failed to create issue", "owner", t.owner, "repo", t.repo, "title", title, "error", err)
		return core.TrackedIssue{}, err
	}
	return core.TrackedIssue{
		Title:  created.GetTitle(),
		Body:   created.GetBody(),
		Open:   true,
		Number: created.GetNumber(),
	}, nil
}

// UpdateIssue replaces the body of an existing issue.
func (t *issueTracker) UpdateIssue(ctx context.Context, number int, body string) error {
	return t.edit(ctx, number, &github.IssueRequest{Body: github.Ptr(body)})
}

// CloseIssue closes an issue, marking its criterion as remediated.
func (t *issueTracker) CloseIssue(ctx context.Context, number int) error {
	return t.edit(ctx, number, &github.IssueRequest{State: github.Ptr("closed")})
}

// ReopenIssue reopens a previously closed issue after a regression and
// refreshes its body in the same edit.
func (t *issueTracker) ReopenIssue(ctx context.Context, number int, body string) error {
	return t.edit(ctx, number, &github.IssueRequest{
		State: github.Ptr("open"),
		Body:  github.Ptr(body),
	})
}

func (t *issueTracker) edit(ctx context.Context, number int, req *github.IssueRequest) error {
	err := t.retry(ctx, func() error {
		_, _, err := t.client.Issues.Edit(ctx, t.owner, t.repo, number, req)
		return err
	})
	if err != nil {
		t.logger.Error("failed to edit issue", "owner", t.owner, "repo", t.repo, "number", number, "error", err)
	}
	return err
}

// retry runs op under the tracker's backoff policy, honoring context
// cancellation. Non-transient API errors abort immediately.
func (t *issueTracker) retry(ctx context.Context, op func() error) error {
	return backoff.Retry(func() error {
		err := op()
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, backoff.WithContext(t.backoff(), ctx))
}

func isRetryable(err error) bool {
	switch e := err.(type) {
	case *github.RateLimitError, *github.AbuseRateLimitError:
		return true
	case *github.ErrorResponse:
		return e.Response != nil && e.Response.StatusCode >= 500
	}
	// Transport-level errors (timeouts, resets) are retryable.
	return true
}
