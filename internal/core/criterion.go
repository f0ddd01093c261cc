package core

import "time"

// CriterionID is the stable slug identifying one reproducibility check.
type CriterionID string

const (
	CriterionLicense     CriterionID = "license"
	CriterionReadme      CriterionID = "readme"
	CriterionIssues      CriterionID = "issues"
	CriterionArchive     CriterionID = "archive"
	CriterionInstallDocs CriterionID = "install-docs"
	CriterionInstallable CriterionID = "installable"
	CriterionStyle       CriterionID = "style"
)

// Criterion describes one reproducibility check: its slug, a human
// title, and its position in the fixed evaluation order. Position
// matters because some criteria are unevaluable when an earlier one
// fails (archive and install-docs both presuppose a README).
type Criterion struct {
	ID    CriterionID
	Title string
	Order int
}

// Criteria is the fixed, ordered checklist. Evaluation, rendering, and
// issue synchronization all iterate this slice so the three outputs
// stay aligned.
var Criteria = []Criterion{
	{ID: CriterionLicense, Title: "License", Order: 1},
	{ID: CriterionReadme, Title: "README", Order: 2},
	{ID: CriterionIssues, Title: "Issue Tracker", Order: 3},
	{ID: CriterionArchive, Title: "Archival Record", Order: 4},
	{ID: CriterionInstallDocs, Title: "Installation Documentation", Order: 5},
	{ID: CriterionInstallable, Title: "Installable Package", Order: 6},
	{ID: CriterionStyle, Title: "Code Style", Order: 7},
}

// CriterionByID looks a criterion up by its slug.
func CriterionByID(id CriterionID) (Criterion, bool) {
	for _, c := range Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// Status is the outcome of evaluating one criterion.
type Status string

const (
	// StatusPass means the criterion is satisfied.
	StatusPass Status = "pass"
	// StatusFail means the criterion is not satisfied.
	StatusFail Status = "fail"
	// StatusNotApplicable means the criterion could not be assessed
	// because a prerequisite criterion failed. It indicates an
	// unassessable but presumptively deficient state and must never be
	// conflated with a pass.
	StatusNotApplicable Status = "not_applicable"
)

// CriterionResult is the outcome of one criterion for one snapshot.
// Body carries the human-facing explanation for whichever branch
// applied; Remediation, when present, tells the maintainer what to do.
type CriterionResult struct {
	CriterionID CriterionID
	Status      Status
	Body        string
	Remediation string
}

// Title resolves the human title for the result's criterion.
func (r CriterionResult) Title() string {
	c, _ := CriterionByID(r.CriterionID)
	return c.Title
}

// NeedsIssue reports whether this result warrants an open tracking
// issue. Both explicit failures and unassessable criteria do.
func (r CriterionResult) NeedsIssue() bool {
	return r.Status == StatusFail || r.Status == StatusNotApplicable
}

// Review is the full outcome of evaluating one snapshot: one result
// per criterion in evaluation order, the aggregate verdict, and
// provenance. Reviews are computed fresh each run and never persisted
// internally; their only durable forms are the rendered document and
// the synchronized tracker issues.
type Review struct {
	Results   []CriterionResult
	PassesAll bool

	RepoURL     string
	Branch      string
	CommitSHA   string
	GeneratedAt time.Time
}

// ResultFor returns the result for the given criterion.
func (rv *Review) ResultFor(id CriterionID) (CriterionResult, bool) {
	for _, r := range rv.Results {
		if r.CriterionID == id {
			return r, true
		}
	}
	return CriterionResult{}, false
}
