package gitutil

import (
	"fmt"
	"regexp"
	"strings"
)

var repoSlugRegex = regexp.MustCompile(`^([A-Za-z0-9_.-]+)/([A-Za-z0-9_.-]+)$`)

// ParseRepoURL parses a GitHub repository URL or an owner/repo slug
// and extracts the owner and repository name.
// Supported formats:
//
//	https://github.com/{owner}/{repo}
//	https://github.com/{owner}/{repo}.git
//	{owner}/{repo}
func ParseRepoURL(url string) (owner, repo string, err error) {
	// Normalize URL
	s := strings.TrimSuffix(url, "/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimPrefix(s, "https://github.com/")
	s = strings.TrimPrefix(s, "http://github.com/")
	s = strings.TrimPrefix(s, "git@github.com:")

	matches := repoSlugRegex.FindStringSubmatch(s)
	if len(matches) != 3 {
		return "", "", fmt.Errorf("invalid repository URL or slug: %s", url)
	}

	return matches[1], matches[2], nil
}
