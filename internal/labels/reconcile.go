package labels

import "sort"

// Plan is the minimal set of label mutations for one pull request.
type Plan struct {
	// NeedAdd are wanted labels the pull request does not have yet.
	NeedAdd []string
	// NeedRemove are unwanted labels the pull request still has.
	NeedRemove []string
}

// IsEmpty reports whether no API call is needed.
func (p Plan) IsEmpty() bool {
	return len(p.NeedAdd) == 0 && len(p.NeedRemove) == 0
}

// Diff computes the plan that moves current towards merged.
//
//	NeedAdd    = merged.ToAdd()    - current
//	NeedRemove = merged.ToRemove() ∩ current
func Diff(current []string, merged ChangeSet) Plan {
	have := make(map[string]struct{}, len(current))
	for _, l := range current {
		have[l] = struct{}{}
	}

	var plan Plan
	for l := range merged.toAdd {
		if _, ok := have[l]; !ok {
			plan.NeedAdd = append(plan.NeedAdd, l)
		}
	}
	for l := range merged.toRemove {
		if _, ok := have[l]; ok {
			plan.NeedRemove = append(plan.NeedRemove, l)
		}
	}
	sort.Strings(plan.NeedAdd)
	sort.Strings(plan.NeedRemove)

	return plan
}

// PullRequestView is a read-only snapshot used for reconciliation.
type PullRequestView struct {
	Number  int
	Current []string
	Changes ChangeSet
}

// NewPullRequestView copies current and changes into a new view.
func NewPullRequestView(number int, current []string, changes ChangeSet) PullRequestView {
	cur := make([]string, len(current))
	copy(cur, current)
	return PullRequestView{
		Number:  number,
		Current: cur,
		Changes: Merge(changes),
	}
}

// Overlap returns labels the rules disagree on.
func (v PullRequestView) Overlap() []string {
	return v.Changes.ToAddAndRemove()
}

// Plan returns Diff(v.Current, v.Changes).
func (v PullRequestView) Plan() Plan {
	return Diff(v.Current, v.Changes)
}
