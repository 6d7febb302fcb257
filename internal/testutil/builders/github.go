package builders

import (
	"github.com/google/go-github/v50/github"
)

// PullRequestBuilder builds github.PullRequest instances for testing
type PullRequestBuilder struct {
	pr *github.PullRequest
}

// NewPullRequestBuilder creates a new PullRequestBuilder with sensible defaults.
// mergeable is null by default, as GitHub returns it before computing it.
func NewPullRequestBuilder() *PullRequestBuilder {
	return &PullRequestBuilder{
		pr: &github.PullRequest{
			Number:         github.Int(1),
			State:          github.String("open"),
			Title:          github.String("Default Pull Request"),
			MergeableState: github.String("unknown"),
			Draft:          github.Bool(false),
			Labels:         []*github.Label{},
			Head: &github.PullRequestBranch{
				Ref: github.String("feature"),
				SHA: github.String("0123456789abcdef0123456789abcdef01234567"),
			},
			Base: &github.PullRequestBranch{
				Ref: github.String("main"),
			},
		},
	}
}

// WithNumber sets the pull request number
func (b *PullRequestBuilder) WithNumber(number int) *PullRequestBuilder {
	b.pr.Number = github.Int(number)
	return b
}

// WithTitle sets the pull request title
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.pr.Title = github.String(title)
	return b
}

// WithHeadSHA sets the head commit SHA
func (b *PullRequestBuilder) WithHeadSHA(sha string) *PullRequestBuilder {
	b.pr.Head.SHA = github.String(sha)
	return b
}

// WithMergeable sets mergeable and mergeable_state
func (b *PullRequestBuilder) WithMergeable(mergeable bool, state string) *PullRequestBuilder {
	b.pr.Mergeable = github.Bool(mergeable)
	b.pr.MergeableState = github.String(state)
	return b
}

// WithUnknownMergeable resets mergeable to null
func (b *PullRequestBuilder) WithUnknownMergeable() *PullRequestBuilder {
	b.pr.Mergeable = nil
	b.pr.MergeableState = github.String("unknown")
	return b
}

// Behind marks the pull request as mergeable but behind its base branch
func (b *PullRequestBuilder) Behind() *PullRequestBuilder {
	return b.WithMergeable(true, "behind")
}

// Conflicting marks the pull request as having merge conflicts
func (b *PullRequestBuilder) Conflicting() *PullRequestBuilder {
	return b.WithMergeable(false, "dirty")
}

// WithDraft sets the draft flag
func (b *PullRequestBuilder) WithDraft(draft bool) *PullRequestBuilder {
	b.pr.Draft = github.Bool(draft)
	return b
}

// WithLabels sets the pull request labels
func (b *PullRequestBuilder) WithLabels(labels ...string) *PullRequestBuilder {
	b.pr.Labels = make([]*github.Label, len(labels))
	for i, label := range labels {
		b.pr.Labels[i] = NewLabelBuilder().WithName(label).Build()
	}
	return b
}

// Build returns a copy of the built pull request
func (b *PullRequestBuilder) Build() *github.PullRequest {
	pr := *b.pr
	pr.Labels = append([]*github.Label(nil), b.pr.Labels...)
	if b.pr.Head != nil {
		head := *b.pr.Head
		pr.Head = &head
	}
	return &pr
}

// LabelBuilder builds github.Label instances for testing
type LabelBuilder struct {
	label *github.Label
}

// NewLabelBuilder creates a new LabelBuilder with sensible defaults
func NewLabelBuilder() *LabelBuilder {
	return &LabelBuilder{
		label: &github.Label{
			Name:  github.String("default-label"),
			Color: github.String("ededed"),
		},
	}
}

// WithName sets the label name
func (b *LabelBuilder) WithName(name string) *LabelBuilder {
	b.label.Name = github.String(name)
	return b
}

// WithColor sets the label color
func (b *LabelBuilder) WithColor(color string) *LabelBuilder {
	b.label.Color = github.String(color)
	return b
}

// Build returns a copy of the built label
func (b *LabelBuilder) Build() *github.Label {
	label := *b.label
	return &label
}

// RepositoryBuilder builds github.Repository instances for testing
type RepositoryBuilder struct {
	repo *github.Repository
}

// NewRepositoryBuilder creates a new RepositoryBuilder with sensible defaults
func NewRepositoryBuilder() *RepositoryBuilder {
	return &RepositoryBuilder{
		repo: &github.Repository{
			Name:     github.String("merge-labeler"),
			FullName: github.String("douhashi/merge-labeler"),
			Owner: &github.User{
				Login: github.String("douhashi"),
			},
		},
	}
}

// WithOwnerAndName sets the owner login, the name and the full name
func (b *RepositoryBuilder) WithOwnerAndName(owner, name string) *RepositoryBuilder {
	b.repo.Owner = &github.User{Login: github.String(owner)}
	b.repo.Name = github.String(name)
	b.repo.FullName = github.String(owner + "/" + name)
	return b
}

// Build returns a copy of the built repository
func (b *RepositoryBuilder) Build() *github.Repository {
	repo := *b.repo
	return &repo
}
