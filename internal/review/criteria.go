package review

import (
	"fmt"
	"strings"

	"github.com/sevigo/repro-warden/internal/core"
)

// Each criterion is evaluated by a small state machine: the evaluator
// picks exactly one branch (pass, fail, or not_applicable) and that
// branch carries its own fully rendered body text. Keeping the text
// next to the branch makes every variant independently testable and
// avoids nested template conditionals.

type evaluator func(s *core.RepoSnapshot) core.CriterionResult

var evaluators = map[core.CriterionID]evaluator{
	core.CriterionLicense:     evalLicense,
	core.CriterionReadme:      evalReadme,
	core.CriterionIssues:      evalIssues,
	core.CriterionArchive:     evalArchive,
	core.CriterionInstallDocs: evalInstallDocs,
	core.CriterionInstallable: evalInstallable,
	core.CriterionStyle:       evalStyle,
}

const licensePickGuide = "If you are unsure which license to pick, the MIT License is a " +
	"simple permissive default for research software; https://choosealicense.com walks " +
	"through the alternatives. Add the text as a `LICENSE` file in the repository root."

func evalLicense(s *core.RepoSnapshot) core.CriterionResult {
	if !s.HasLicense {
		return core.CriterionResult{
			CriterionID: core.CriterionLicense,
			Status:      core.StatusFail,
			Body: "No license file was found in the repository root. Without an explicit " +
				"license, reuse of this code is legally ambiguous even when the source is public.",
			Remediation: licensePickGuide,
		}
	}
	if s.LicenseName == core.LicenseUnknown {
		// Graded pass: a license exists, but it is not one the
		// detector could map to an SPDX identifier.
		return core.CriterionResult{
			CriterionID: core.CriterionLicense,
			Status:      core.StatusPass,
			Body: "A license file is present. However, it is not a standard " +
				"SPDX-recognized license, which complicates automated compliance checks " +
				"and may deter downstream reuse. Consider replacing it with a standard " +
				"license such as MIT, BSD-3-Clause, or Apache-2.0.",
		}
	}
	body := "A license file is present."
	if s.LicenseName != "" {
		body = fmt.Sprintf("A license file is present (%s).", s.LicenseName)
	}
	return core.CriterionResult{
		CriterionID: core.CriterionLicense,
		Status:      core.StatusPass,
		Body:        body,
	}
}

func evalReadme(s *core.RepoSnapshot) core.CriterionResult {
	if !s.HasReadme {
		return core.CriterionResult{
			CriterionID: core.CriterionReadme,
			Status:      core.StatusFail,
			Body: "No README was found in the repository root. The README is the entry " +
				"point for anyone trying to understand or reproduce this work.",
			Remediation: "Add a `README.md` (or `README.rst`) describing what the project " +
				"does, how to install it, and how to cite it.",
		}
	}
	return core.CriterionResult{
		CriterionID: core.CriterionReadme,
		Status:      core.StatusPass,
		Body:        "A README is present in the repository root.",
	}
}

func evalIssues(s *core.RepoSnapshot) core.CriterionResult {
	if !s.HasIssues {
		return core.CriterionResult{
			CriterionID: core.CriterionIssues,
			Status:      core.StatusFail,
			Body: "The repository has no public issue tracker enabled, so readers have " +
				"no sanctioned channel for reporting problems with the code or the results.",
			Remediation: "Enable the issue tracker in the repository settings.",
		}
	}
	return core.CriterionResult{
		CriterionID: core.CriterionIssues,
		Status:      core.StatusPass,
		Body:        "A public issue tracker is enabled.",
	}
}

func evalArchive(s *core.RepoSnapshot) core.CriterionResult {
	// Precondition: archival linkage is assessed by searching the
	// README, so a missing README makes this criterion unassessable.
	if !s.HasReadme {
		return core.CriterionResult{
			CriterionID: core.CriterionArchive,
			Status:      core.StatusNotApplicable,
			Body: "Archival linkage could not be assessed because the repository has no " +
				"README to search for an archive badge. This is not a pass: once a README " +
				"exists, an archive reference is still expected.",
			Remediation: "Add a README first, then archive the repository on Zenodo and " +
				"include the DOI badge in it.",
		}
	}
	if !s.HasZenodoBadge {
		return core.CriterionResult{
			CriterionID: core.CriterionArchive,
			Status:      core.StatusFail,
			Body: "The README does not reference an archival record. Repository hosting is " +
				"not permanent; an archived snapshot with a DOI is what makes the code " +
				"citable and recoverable.",
			Remediation: "Archive the repository on Zenodo (https://zenodo.org) and add the " +
				"generated DOI badge (`https://zenodo.org/badge/...`) to the README.",
		}
	}
	return core.CriterionResult{
		CriterionID: core.CriterionArchive,
		Status:      core.StatusPass,
		Body:        "The README links an archival record via a Zenodo badge.",
	}
}

func evalInstallDocs(s *core.RepoSnapshot) core.CriterionResult {
	if !s.HasReadme {
		return core.CriterionResult{
			CriterionID: core.CriterionInstallDocs,
			Status:      core.StatusNotApplicable,
			Body: "Installation documentation could not be assessed because the repository " +
				"has no README. This is not a pass: installation instructions are still " +
				"expected once a README exists.",
			Remediation: "Add a README first, then document the installation steps in a " +
				"dedicated section.",
		}
	}
	if !s.HasInstallationSection {
		return core.CriterionResult{
			CriterionID: core.CriterionInstallDocs,
			Status:      core.StatusFail,
			Body: "The README has no recognizable installation section. " +
				installHeaderHint(s.ReadmeType),
			Remediation: "Add an installation section to the README using the convention " +
				"above, covering installation from the package index and from source.",
		}
	}
	return core.CriterionResult{
		CriterionID: core.CriterionInstallDocs,
		Status:      core.StatusPass,
		Body:        "The README documents installation in a dedicated section.",
	}
}

// installHeaderHint quotes the exact section-header convention the
// checker expects for the given README markup flavor.
func installHeaderHint(rt core.ReadmeType) string {
	switch rt {
	case core.ReadmeMarkdown:
		return "For a Markdown README, add a second-level heading exactly like:\n\n" +
			"```markdown\n## Installation\n```"
	case core.ReadmeRST:
		return "For a reStructuredText README, add an underlined section heading exactly like:\n\n" +
			"```rst\nInstallation\n------------\n```"
	default:
		return "For a plain-text README, add a line reading `Installation` followed by the " +
			"installation steps."
	}
}

func evalInstallable(s *core.RepoSnapshot) core.CriterionResult {
	if !s.HasPackagingConfig {
		res := core.CriterionResult{
			CriterionID: core.CriterionInstallable,
			Status:      core.StatusFail,
			Body: "No packaging configuration (`pyproject.toml`, `setup.cfg`, or `setup.py`) " +
				"was found, so the code cannot be installed as a package and is unlikely to be " +
				"reusable outside its own checkout.",
			Remediation: "Add a `pyproject.toml` declaring the package metadata and its dependencies.",
		}
		if len(s.RootLevelScripts) > 0 {
			res.Remediation += fmt.Sprintf(
				"\n\nThe repository keeps %s at the root level. Move %s into the package and "+
					"invoke %s as submodules (e.g. `python -m package.script`) so the code is "+
					"importable after installation.",
				backtickJoin(s.RootLevelScripts), plural(len(s.RootLevelScripts), "it", "them"),
				plural(len(s.RootLevelScripts), "it", "them"))
		}
		return res
	}
	if s.PackagingScore == core.MaxPackagingScore {
		return core.CriterionResult{
			CriterionID: core.CriterionInstallable,
			Status:      core.StatusPass,
			Body:        "Packaging configuration is present and the package metadata is complete.",
		}
	}
	// Pass with incomplete metadata: the package installs, but the
	// scorer found gaps worth listing verbatim.
	var b strings.Builder
	fmt.Fprintf(&b, "Packaging configuration is present, but the metadata scored %d/%d. "+
		"Completing it improves how the package surfaces on the package index.",
		s.PackagingScore, core.MaxPackagingScore)
	var rem strings.Builder
	for i, failure := range s.PackagingFailures {
		fmt.Fprintf(&rem, "%d. %s\n", i+1, failure)
	}
	return core.CriterionResult{
		CriterionID: core.CriterionInstallable,
		Status:      core.StatusPass,
		Body:        b.String(),
		Remediation: strings.TrimRight(rem.String(), "\n"),
	}
}

func evalStyle(s *core.RepoSnapshot) core.CriterionResult {
	if !s.IsStyleConformant {
		return core.CriterionResult{
			CriterionID: core.CriterionStyle,
			Status:      core.StatusFail,
			Body: "The code does not conform to a community style standard. Consistent " +
				"formatting lowers the barrier for readers and contributors.",
			Remediation: "Run an auto-formatter (such as `black .`) over the codebase and " +
				"add it to the project's continuous integration.",
		}
	}
	return core.CriterionResult{
		CriterionID: core.CriterionStyle,
		Status:      core.StatusPass,
		Body:        "The code conforms to a community style standard.",
	}
}

func backtickJoin(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "`" + it + "`"
	}
	return strings.Join(quoted, ", ")
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
