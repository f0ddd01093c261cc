// Package core defines the essential data structures that form the
// backbone of the application: the repository fact snapshot, the
// reproducibility criteria and their results, and the tracker-facing
// sync types. These components are deliberately free of I/O so the
// evaluation pipeline stays pure and testable.
package core

import "fmt"

// ReadmeType identifies the markup flavor of a repository README.
// It drives which section-header convention the install-docs
// criterion quotes in its failure text.
type ReadmeType string

const (
	ReadmeMarkdown ReadmeType = "markdown"
	ReadmeRST      ReadmeType = "rst"
	ReadmeText     ReadmeType = "text"
	ReadmeNone     ReadmeType = "none"
)

// ParseReadmeType validates a raw readme_type value from a snapshot file.
func ParseReadmeType(s string) (ReadmeType, error) {
	switch ReadmeType(s) {
	case ReadmeMarkdown, ReadmeRST, ReadmeText, ReadmeNone:
		return ReadmeType(s), nil
	case "":
		return ReadmeNone, nil
	default:
		return "", fmt.Errorf("unknown readme type %q", s)
	}
}

// MaxPackagingScore is the ceiling of the external metadata-quality
// scorer. A repository scoring the ceiling has complete packaging
// metadata.
const MaxPackagingScore = 10

// LicenseUnknown is the distinguished license name reported when a
// license file was detected but could not be matched to a standard
// SPDX identifier.
const LicenseUnknown = "Unknown"

// RepoSnapshot is the immutable fact set about one repository at one
// commit. It is produced by an external retrieval layer (file
// inspection, a packaging metadata scorer, and a style linter) and
// consumed read-only by the evaluation engine.
type RepoSnapshot struct {
	RepoURL   string `json:"repo_url" yaml:"repo_url"`
	Branch    string `json:"branch" yaml:"branch"`
	CommitSHA string `json:"commit_sha" yaml:"commit_sha"`

	HasLicense  bool   `json:"has_license" yaml:"has_license"`
	LicenseName string `json:"license_name,omitempty" yaml:"license_name,omitempty"`

	HasReadme  bool       `json:"has_readme" yaml:"has_readme"`
	ReadmeType ReadmeType `json:"readme_type" yaml:"readme_type"`

	HasIssues      bool `json:"has_issues" yaml:"has_issues"`
	HasZenodoBadge bool `json:"has_zenodo_badge" yaml:"has_zenodo_badge"`

	HasInstallationSection bool `json:"has_installation_section" yaml:"has_installation_section"`

	HasPackagingConfig bool     `json:"has_packaging_config" yaml:"has_packaging_config"`
	PackagingScore     int      `json:"packaging_score" yaml:"packaging_score"`
	PackagingFailures  []string `json:"packaging_failures,omitempty" yaml:"packaging_failures,omitempty"`

	IsStyleConformant bool     `json:"is_style_conformant" yaml:"is_style_conformant"`
	RootLevelScripts  []string `json:"root_level_scripts,omitempty" yaml:"root_level_scripts,omitempty"`
}

// Validate checks the invariants the retrieval layer is supposed to
// uphold. Violations indicate a malformed snapshot file rather than a
// deficient repository.
func (s *RepoSnapshot) Validate() error {
	if s.RepoURL == "" {
		return fmt.Errorf("snapshot is missing repo_url")
	}
	if s.CommitSHA == "" {
		return fmt.Errorf("snapshot is missing commit_sha")
	}
	if _, err := ParseReadmeType(string(s.ReadmeType)); err != nil {
		return err
	}
	if s.HasReadme && s.ReadmeType == ReadmeNone {
		return fmt.Errorf("snapshot claims a README but readme_type is %q", ReadmeNone)
	}
	if !s.HasReadme && s.ReadmeType != ReadmeNone {
		return fmt.Errorf("snapshot has readme_type %q without a README", s.ReadmeType)
	}
	if s.PackagingScore < 0 || s.PackagingScore > MaxPackagingScore {
		return fmt.Errorf("packaging_score %d out of range 0..%d", s.PackagingScore, MaxPackagingScore)
	}
	return nil
}
