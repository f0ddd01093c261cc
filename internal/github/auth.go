package github

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/bradleyfalzon/ghinstallation/v2"
	"github.com/google/go-github/v73/github"
	"golang.org/x/oauth2"

	"github.com/sevigo/repro-warden/internal/config"
	"github.com/sevigo/repro-warden/internal/tracker"
)

// NewInstallationTracker creates an issue tracker authenticated as a
// GitHub App installation. This is the path for running the reviewer
// as an App rather than with a personal token.
func NewInstallationTracker(ctx context.Context, cfg *config.Config, owner, repo string, logger *slog.Logger) (tracker.Tracker, error) {
	logger.Info("creating GitHub installation client", "installation_id", cfg.GitHubInstallationID)

	privateKey, err := os.ReadFile(cfg.GitHubPrivateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read private key from %s: %w", cfg.GitHubPrivateKeyPath, err)
	}

	appTransport, err := ghinstallation.NewAppsTransport(http.DefaultTransport, cfg.GitHubAppID, privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub App transport: %w", err)
	}
	appClient := github.NewClient(&http.Client{Transport: appTransport})

	token, _, err := appClient.Apps.CreateInstallationToken(ctx, cfg.GitHubInstallationID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create installation token for installation ID %d: %w", cfg.GitHubInstallationID, err)
	}
	if token.GetToken() == "" {
		return nil, fmt.Errorf("received an empty installation token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token.GetToken()})
	tc := oauth2.NewClient(ctx, ts)
	return NewIssueTracker(github.NewClient(tc), owner, repo, logger), nil
}

// NewTrackerFromConfig picks the authentication mode from the
// configuration: a PAT when one is set, the App installation flow
// otherwise.
func NewTrackerFromConfig(ctx context.Context, cfg *config.Config, owner, repo string, logger *slog.Logger) (tracker.Tracker, error) {
	if cfg.GitHubToken != "" {
		return NewPATTracker(ctx, cfg.GitHubToken, owner, repo, logger), nil
	}
	return NewInstallationTracker(ctx, cfg, owner, repo, logger)
}
