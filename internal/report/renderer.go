// Package report renders a review into a deterministic Markdown
// document. Rendering is a pure function of the review: identical
// input yields byte-identical output, which the issue synchronizer
// relies on to detect body drift without false positives.
package report

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/sevigo/repro-warden/internal/core"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

const reviewTemplate = "review.md.tmpl"

// Renderer turns reviews into Markdown documents using an embedded
// fixed-structure template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded review template. A parse failure is
// a build defect, not a runtime condition, so it is returned rather
// than masked.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded review template: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

type section struct {
	Number      int
	Title       string
	StatusLabel string
	Body        string
	Remediation string
}

type document struct {
	RepoSlug       string
	Sections       []section
	PassesAll      bool
	CriterionCount int
	FailCount      int
	FailedTitles   string
	GeneratedAt    string
	CommitSHA      string
	Branch         string
}

// Render produces the Markdown review document. A criterion result
// lacking its body is a fatal configuration error: the engine is
// supposed to render every branch, so an empty body means the pipeline
// is miswired and must surface immediately.
func (r *Renderer) Render(rv *core.Review) (string, error) {
	if rv == nil {
		return "", fmt.Errorf("review cannot be nil")
	}
	if len(rv.Results) == 0 {
		return "", fmt.Errorf("review has no criterion results")
	}

	doc := document{
		RepoSlug:       repoSlug(rv.RepoURL),
		PassesAll:      rv.PassesAll,
		CriterionCount: len(rv.Results),
		GeneratedAt:    rv.GeneratedAt.UTC().Format(time.RFC3339),
		CommitSHA:      rv.CommitSHA,
		Branch:         rv.Branch,
	}

	var failed []string
	for i, res := range rv.Results {
		if res.Body == "" {
			return "", fmt.Errorf("criterion %q has no rendered body", res.CriterionID)
		}
		title := res.Title()
		if title == "" {
			return "", fmt.Errorf("unknown criterion %q in review", res.CriterionID)
		}
		if res.Status != core.StatusPass {
			failed = append(failed, title)
		}
		doc.Sections = append(doc.Sections, section{
			Number:      i + 1,
			Title:       title,
			StatusLabel: statusLabel(res.Status),
			Body:        res.Body,
			Remediation: res.Remediation,
		})
	}
	doc.FailCount = len(failed)
	doc.FailedTitles = strings.Join(failed, ", ")

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, reviewTemplate, doc); err != nil {
		return "", fmt.Errorf("failed to render review: %w", err)
	}
	return buf.String(), nil
}

func statusLabel(st core.Status) string {
	switch st {
	case core.StatusPass:
		return "✅ Pass"
	case core.StatusFail:
		return "❌ Fail"
	case core.StatusNotApplicable:
		return "⚠️ Not assessable"
	default:
		return string(st)
	}
}

// repoSlug reduces a repository URL to its owner/name form for the
// document heading, falling back to the raw URL.
func repoSlug(repoURL string) string {
	trimmed := strings.TrimSuffix(strings.TrimSuffix(repoURL, "/"), ".git")
	if idx := strings.Index(trimmed, "github.com/"); idx >= 0 {
		return trimmed[idx+len("github.com/"):]
	}
	return trimmed
}
