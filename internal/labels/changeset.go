// Package labels turns per-rule label decisions into a single add/remove plan.
package labels

import (
	"encoding/json"
	"sort"
)

// ChangeSet is a pair of label sets: labels to add and labels to remove.
// A label may sit in both sets; ToAddAndRemove reports such labels instead
// of silently picking one side.
type ChangeSet struct {
	toAdd    map[string]struct{}
	toRemove map[string]struct{}
}

// NewChangeSet returns an empty ChangeSet.
func NewChangeSet() ChangeSet {
	return ChangeSet{
		toAdd:    make(map[string]struct{}),
		toRemove: make(map[string]struct{}),
	}
}

// Add queues a label to be added.
func (c *ChangeSet) Add(label string) {
	if c.toAdd == nil {
		c.toAdd = make(map[string]struct{})
	}
	c.toAdd[label] = struct{}{}
}

// Remove queues a label to be removed.
func (c *ChangeSet) Remove(label string) {
	if c.toRemove == nil {
		c.toRemove = make(map[string]struct{})
	}
	c.toRemove[label] = struct{}{}
}

// ToAdd returns the labels to add, sorted.
func (c ChangeSet) ToAdd() []string {
	return sortedKeys(c.toAdd)
}

// ToRemove returns the labels to remove, sorted.
func (c ChangeSet) ToRemove() []string {
	return sortedKeys(c.toRemove)
}

// ToAddAndRemove returns labels that are queued for both add and remove.
// A non-empty result means two rules disagree.
func (c ChangeSet) ToAddAndRemove() []string {
	var both []string
	for l := range c.toAdd {
		if _, ok := c.toRemove[l]; ok {
			both = append(both, l)
		}
	}
	sort.Strings(both)
	return both
}

// Adds reports whether label is queued for adding.
func (c ChangeSet) Adds(label string) bool {
	_, ok := c.toAdd[label]
	return ok
}

// Removes reports whether label is queued for removal.
func (c ChangeSet) Removes(label string) bool {
	_, ok := c.toRemove[label]
	return ok
}

// IsEmpty reports whether nothing is queued.
func (c ChangeSet) IsEmpty() bool {
	return len(c.toAdd) == 0 && len(c.toRemove) == 0
}

// String renders the set as JSON, e.g. {"toAdd":["conflict"],"toRemove":[]}.
func (c ChangeSet) String() string {
	b, _ := json.Marshal(struct {
		ToAdd    []string `json:"toAdd"`
		ToRemove []string `json:"toRemove"`
	}{
		ToAdd:    nonNil(c.ToAdd()),
		ToRemove: nonNil(c.ToRemove()),
	})
	return string(b)
}

// Merge unions every set into a new ChangeSet. Inputs are copied, never
// aliased, and nothing is dropped: a label added by one set and removed by
// another ends up in both sides of the result.
func Merge(sets ...ChangeSet) ChangeSet {
	m := NewChangeSet()
	for _, s := range sets {
		for l := range s.toAdd {
			m.Add(l)
		}
		for l := range s.toRemove {
			m.Remove(l)
		}
	}
	return m
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
