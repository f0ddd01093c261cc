// Package review implements the evaluation engine. It turns an
// immutable repository snapshot into an ordered set of criterion
// results plus an aggregate verdict. Evaluation is a pure function of
// the snapshot: no network, no clock except the caller-supplied
// generation timestamp.
package review

import (
	"fmt"
	"time"

	"github.com/sevigo/repro-warden/internal/core"
)

// Evaluate computes the review for one snapshot. Results are produced
// in the fixed evaluation order of core.Criteria, exactly one result
// per criterion. PassesAll is true only when every criterion passes;
// a not_applicable result counts against it because it marks an
// unassessable, presumptively deficient state.
func Evaluate(s *core.RepoSnapshot, generatedAt time.Time) (*core.Review, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	rv := &core.Review{
		Results:     make([]core.CriterionResult, 0, len(core.Criteria)),
		PassesAll:   true,
		RepoURL:     s.RepoURL,
		Branch:      s.Branch,
		CommitSHA:   s.CommitSHA,
		GeneratedAt: generatedAt.UTC(),
	}

	for _, c := range core.Criteria {
		eval, ok := evaluators[c.ID]
		if !ok {
			return nil, fmt.Errorf("no evaluator registered for criterion %q", c.ID)
		}
		res := eval(s)
		if res.CriterionID != c.ID {
			return nil, fmt.Errorf("evaluator for %q produced result for %q", c.ID, res.CriterionID)
		}
		if res.Body == "" {
			return nil, fmt.Errorf("evaluator for %q produced an empty body", c.ID)
		}
		if res.Status != core.StatusPass {
			rv.PassesAll = false
		}
		rv.Results = append(rv.Results, res)
	}

	return rv, nil
}
