package core

// TrackedIssue is the synchronizer's view of one issue in the external
// tracker. Identity is carried entirely by the deterministic title;
// Number is assigned by the tracker on creation and is zero for issues
// that only exist in a pending sync plan.
type TrackedIssue struct {
	Title  string
	Body   string
	Open   bool
	Number int
}

// SyncAction is one of the four mutations the synchronizer may plan
// against the tracker.
type SyncAction string

const (
	ActionCreate SyncAction = "create"
	ActionUpdate SyncAction = "update"
	ActionClose  SyncAction = "close"
	ActionReopen SyncAction = "reopen"
)

// SyncOp is a single planned mutation. CriterionID is empty for
// operations on the epic issue. Number is zero for creates.
type SyncOp struct {
	Action      SyncAction
	CriterionID CriterionID
	Title       string
	Body        string
	Number      int
}

// SyncPlan is the ordered list of mutations one sync run wants to
// apply: per-criterion operations in evaluation order, the epic
// operation last. Warnings carry data-integrity findings (such as
// duplicate deterministic titles) for criteria whose synchronization
// was skipped rather than guessed.
type SyncPlan struct {
	RepoURL  string
	Ops      []SyncOp
	Warnings []string
}

// Empty reports whether the plan contains no mutations.
func (p *SyncPlan) Empty() bool {
	return len(p.Ops) == 0
}

// Creates counts planned issue creations, epic included.
func (p *SyncPlan) Creates() int {
	n := 0
	for _, op := range p.Ops {
		if op.Action == ActionCreate {
			n++
		}
	}
	return n
}
