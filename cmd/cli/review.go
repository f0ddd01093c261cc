package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/sevigo/repro-warden/internal/core"
	"github.com/sevigo/repro-warden/internal/report"
	"github.com/sevigo/repro-warden/internal/review"
	"github.com/sevigo/repro-warden/internal/snapshot"
)

var (
	reviewOutput  string
	reviewPretty  bool
	reviewSummary bool
)

// Color definitions
var (
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
)

var reviewCmd = &cobra.Command{
	Use:   "review [snapshot-file]",
	Short: "Evaluate a repository snapshot and render the review document",
	Long: `Evaluate a repository snapshot against the reproducibility checklist and
render the Markdown review document.

The snapshot file is produced by the retrieval layer and may be JSON or YAML.

Examples:
  repro-warden review snapshot.json
  repro-warden review --pretty --summary snapshot.yaml
  repro-warden review --output review.md snapshot.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", "", "Write the review document to a file instead of stdout")
	reviewCmd.Flags().BoolVar(&reviewPretty, "pretty", false, "Render the review for the terminal")
	reviewCmd.Flags().BoolVar(&reviewSummary, "summary", false, "Print a per-criterion status table")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(_ *cobra.Command, args []string) error {
	snap, err := snapshot.Load(args[0])
	if err != nil {
		return err
	}

	rv, err := review.Evaluate(snap, time.Now())
	if err != nil {
		return err
	}

	renderer, err := report.NewRenderer()
	if err != nil {
		return err
	}
	doc, err := renderer.Render(rv)
	if err != nil {
		return err
	}

	if reviewOutput != "" {
		if err := os.WriteFile(reviewOutput, []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write review to %s: %w", reviewOutput, err)
		}
		successColor.Printf("Wrote review to %s\n", reviewOutput)
	} else if reviewPretty {
		rendered, err := glamour.Render(doc, "dark")
		if err != nil {
			return fmt.Errorf("failed to render review for terminal: %w", err)
		}
		fmt.Print(rendered)
	} else {
		fmt.Print(doc)
	}

	if reviewSummary {
		printSummaryTable(rv)
	}

	if !rv.PassesAll {
		warnColor.Println("Not all criteria pass; see the review for remediation steps.")
	}
	return nil
}

func printSummaryTable(rv *core.Review) {
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header([]string{"Criterion", "Status"})
	for _, res := range rv.Results {
		_ = table.Append([]string{res.Title(), statusCell(res.Status)})
	}
	_ = table.Render()
}

func statusCell(st core.Status) string {
	switch st {
	case core.StatusPass:
		return successColor.Sprint("pass")
	case core.StatusFail:
		return errorColor.Sprint("fail")
	case core.StatusNotApplicable:
		return warnColor.Sprint("not assessable")
	default:
		return string(st)
	}
}
