package mergeability

import "fmt"

// PullRequestRef identifies a pull request on the remote platform.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// PullRequestData is the subset of a pull request the label rules look at.
// Mergeable is nil while GitHub is still computing mergeability.
type PullRequestData struct {
	Number         int
	Title          string
	HeadSHA        string
	Mergeable      *bool
	MergeableState string
	Labels         []string
	Draft          bool
}

// IsMergeabilityKnown reports whether GitHub has finished computing mergeability.
func (p *PullRequestData) IsMergeabilityKnown() bool {
	return p != nil && p.Mergeable != nil
}

// State is the resolution state of a single Resolve call.
type State int

const (
	// StateUnknown is the state right after the computation was triggered.
	StateUnknown State = iota
	// StateResolving means "mergeable" was observed as null at least once.
	StateResolving
	// StateResolved is terminal success.
	StateResolved
	// StateFailed is terminal failure.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "Unknown"
	case StateResolving:
		return "Resolving"
	case StateResolved:
		return "Resolved"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Resolution records how a Resolve call ended.
type Resolution struct {
	State State
	// Attempts is the number of polling fetches, excluding the trigger fetch.
	Attempts    int
	PullRequest *PullRequestData
	Err         error
}
