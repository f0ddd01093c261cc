package util

import (
	"fmt"
	"regexp"
	"strings"
)

var fileNameRegexp = regexp.MustCompile("[^a-z0-9_.-]+")

// ReportFileName builds a filesystem-safe review document name from the
// repository owner and name.
func ReportFileName(owner, repo string) string {
	safeOwner := fileNameRegexp.ReplaceAllString(strings.ToLower(owner), "")
	safeRepo := fileNameRegexp.ReplaceAllString(strings.ToLower(repo), "")

	name := fmt.Sprintf("%s-%s-review.md", safeOwner, safeRepo)

	const maxFileNameLength = 255
	if len(name) > maxFileNameLength {
		name = name[:maxFileNameLength]
	}
	return name
}
