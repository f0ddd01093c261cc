package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/go-github/v73/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limit", &github.RateLimitError{}, true},
		{"abuse rate limit", &github.AbuseRateLimitError{}, true},
		{
			"server error",
			&github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusBadGateway}},
			true,
		},
		{
			"not found",
			&github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusNotFound}},
			false,
		},
		{
			"unauthorized",
			&github.ErrorResponse{Response: &http.Response{StatusCode: http.StatusUnauthorized}},
			false,
		},
		{"transport error", fmt.Errorf("connection reset by peer"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryable(tt.err))
		})
	}
}

// newStubTracker points an issueTracker at a stub API server with a
// zero-wait retry policy so tests run instantly.
func newStubTracker(t *testing.T, handler http.Handler) *issueTracker {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(nil)
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	client.BaseURL = base

	return &issueTracker{
		client: client,
		owner:  "example",
		repo:   "repro-demo",
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		backoff: func() backoff.BackOff {
			return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, 3)
		},
	}
}

func TestListIssues_PaginatesAndFiltersPullRequests(t *testing.T) {
	var pageOne = []map[string]any{
		{"number": 1, "title": "Reproducibility: add a license", "state": "open", "body": "a"},
		{"number": 2, "title": "Fix typo", "state": "open", "body": "b",
			"pull_request": map[string]any{"url": "https://example.invalid/pr/2"}},
	}
	var pageTwo = []map[string]any{
		{"number": 3, "title": "Reproducibility review", "state": "closed", "body": "c"},
	}

	it := newStubTracker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "all", r.URL.Query().Get("state"))
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("page") == "2" {
			_ = json.NewEncoder(w).Encode(pageTwo)
			return
		}
		// Only the page parameter of the Link URL matters to the client.
		w.Header().Set("Link", `<https://api.github.invalid/repos/example/repro-demo/issues?page=2>; rel="next"`)
		_ = json.NewEncoder(w).Encode(pageOne)
	}))

	issues, err := it.ListIssues(context.Background())
	require.NoError(t, err)
	require.Len(t, issues, 2, "the pull request must be filtered out")

	assert.Equal(t, 1, issues[0].Number)
	assert.True(t, issues[0].Open)
	assert.Equal(t, 3, issues[1].Number)
	assert.False(t, issues[1].Open)
}

func TestRetry_RecoversFromServerErrors(t *testing.T) {
	var calls int
	it := newStubTracker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]map[string]any{})
	}))

	_, err := it.ListIssues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_AbortsOnClientError(t *testing.T) {
	var calls int
	it := newStubTracker(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := it.ListIssues(context.Background())
	require.Error(t, err)
	assert.Equal(t, 1, calls, "a 404 must not be retried")
}
