// Package tracker synchronizes criterion results with an external
// issue tracker. Issue identity is content-addressed: titles are a
// pure function of criterion identity, so repeated runs always look
// up the same issues before mutating anything.
package tracker

import (
	"fmt"
	"strings"

	"github.com/sevigo/repro-warden/internal/core"
)

// issueTitles maps each criterion to its deterministic issue title.
// Titles derive from criterion identity only, never from rendered
// text, so retitling across runs cannot happen.
var issueTitles = map[core.CriterionID]string{
	core.CriterionLicense:     "Reproducibility: add a license",
	core.CriterionReadme:      "Reproducibility: add a README",
	core.CriterionIssues:      "Reproducibility: enable the issue tracker",
	core.CriterionArchive:     "Reproducibility: archive the repository",
	core.CriterionInstallDocs: "Reproducibility: document installation",
	core.CriterionInstallable: "Reproducibility: make the code installable",
	core.CriterionStyle:       "Reproducibility: apply a community code style",
}

// epicTitle is the deterministic title of the single aggregating issue.
const epicTitle = "Reproducibility review"

// IssueTitle returns the deterministic issue title for a criterion.
func IssueTitle(id core.CriterionID) (string, error) {
	title, ok := issueTitles[id]
	if !ok {
		return "", fmt.Errorf("no issue title defined for criterion %q", id)
	}
	return title, nil
}

// EpicTitle returns the deterministic title of the epic issue.
func EpicTitle() string {
	return epicTitle
}

// issueBody builds the issue body for a failing or unassessable
// criterion result. It is deterministic given the result, which the
// planner relies on to detect content drift.
func issueBody(res core.CriterionResult) string {
	var b strings.Builder
	b.WriteString(res.Body)
	if res.Remediation != "" {
		b.WriteString("\n\n**Suggested action:**\n\n")
		b.WriteString(res.Remediation)
	}
	return b.String()
}

// epicBody regenerates the epic issue body from the titles of the
// criterion issues that should currently be open. It deliberately
// references issues by title rather than tracker-assigned number so
// the body is identical whether the issues exist yet or are being
// created in the same run.
func epicBody(repoURL string, openTitles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reproducibility review of %s.\n\n", repoURL)
	b.WriteString("The following criteria currently have open issues:\n\n")
	for _, t := range openTitles {
		fmt.Fprintf(&b, "- %s\n", t)
	}
	b.WriteString("\nThis issue is regenerated on every review run and closes when all criteria pass.")
	return b.String()
}
