package labels

import (
	"strings"

	"github.com/douhashi/merge-labeler/internal/mergeability"
)

const (
	// DefaultBehindLabel marks a pull request whose head is behind its base branch.
	DefaultBehindLabel = "behind"
	// DefaultConflictLabel marks a pull request with merge conflicts.
	DefaultConflictLabel = "conflict"
)

// Rule decides, for exactly one label, whether it should be added or removed.
// A rule never abstains.
type Rule struct {
	Name  string
	Label string
	Want  func(pr *mergeability.PullRequestData) bool
}

// Evaluate runs the rule and returns a ChangeSet holding exactly one entry.
func (r Rule) Evaluate(pr *mergeability.PullRequestData) ChangeSet {
	set := NewChangeSet()
	if r.Want(pr) {
		set.Add(r.Label)
	} else {
		set.Remove(r.Label)
	}
	return set
}

// BehindRule adds label when GitHub reports mergeable_state "behind".
func BehindRule(label string) Rule {
	return Rule{
		Name:  "behind",
		Label: label,
		Want: func(pr *mergeability.PullRequestData) bool {
			return strings.EqualFold(pr.MergeableState, "behind")
		},
	}
}

// ConflictRule adds label when GitHub reports mergeable == false.
// An unresolved (nil) mergeable does not count as a conflict.
func ConflictRule(label string) Rule {
	return Rule{
		Name:  "conflict",
		Label: label,
		Want: func(pr *mergeability.PullRequestData) bool {
			return pr.Mergeable != nil && !*pr.Mergeable
		},
	}
}

// LabelNames are the label names the default rules manage.
type LabelNames struct {
	Behind   string
	Conflict string
}

// DefaultLabelNames returns "behind" and "conflict".
func DefaultLabelNames() LabelNames {
	return LabelNames{Behind: DefaultBehindLabel, Conflict: DefaultConflictLabel}
}

// DefaultRules returns the behind and conflict rules.
func DefaultRules(names LabelNames) []Rule {
	return []Rule{
		BehindRule(names.Behind),
		ConflictRule(names.Conflict),
	}
}

// Evaluate runs every rule against pr and merges the results.
func Evaluate(pr *mergeability.PullRequestData, rules ...Rule) ChangeSet {
	sets := make([]ChangeSet, 0, len(rules))
	for _, r := range rules {
		sets = append(sets, r.Evaluate(pr))
	}
	return Merge(sets...)
}
