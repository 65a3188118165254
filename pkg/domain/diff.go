package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Snapshot is a copy of the rules and variables a generator holds at one point.
type Snapshot struct {
	// Symbols lists the keys of Rules in first-insertion order.
	Symbols   []string
	Rules     map[string][]Rule
	Variables map[string]string
}

// GrammarDiff represents the changes between two snapshots.
// It is designed to be serialized to JSON for reload reports.
type GrammarDiff struct {
	Added   []string `json:"added,omitempty"`
	Removed []string `json:"removed,omitempty"`
	// Changed lists symbols present in both snapshots whose alternatives differ.
	Changed []string `json:"changed,omitempty"`

	// Variables contains only changed, added or deleted keys.
	// For deletions, the key is present with a nil value.
	Variables map[string]*string `json:"variables,omitempty"`
}

// Diff calculates the difference between oldSnap and newSnap.
// If oldSnap is nil, every symbol and variable of newSnap counts as added.
// It returns nil when nothing changed.
func Diff(oldSnap, newSnap *Snapshot) *GrammarDiff {
	if newSnap == nil {
		return nil
	}
	if oldSnap == nil {
		oldSnap = &Snapshot{}
	}

	diff := &GrammarDiff{}

	for _, sym := range newSnap.Symbols {
		oldRules, exists := oldSnap.Rules[sym]
		if !exists {
			diff.Added = append(diff.Added, sym)
		} else if !sameRules(oldRules, newSnap.Rules[sym]) {
			diff.Changed = append(diff.Changed, sym)
		}
	}
	for _, sym := range oldSnap.Symbols {
		if _, exists := newSnap.Rules[sym]; !exists {
			diff.Removed = append(diff.Removed, sym)
		}
	}

	diff.Variables = diffVariables(oldSnap.Variables, newSnap.Variables)

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// sameRules compares alternatives by what they generate. Nil and empty tags are
// equal, as are an unset weight and a weight of 1.
func sameRules(a, b []Rule) bool {
	return slices.EqualFunc(a, b, func(x, y Rule) bool {
		return x.Symbol == y.Symbol &&
			x.Text == y.Text &&
			x.EffectiveWeight() == y.EffectiveWeight() &&
			slices.Equal(x.Tags, y.Tags)
	})
}

func diffVariables(old, new map[string]string) map[string]*string {
	delta := make(map[string]*string)

	// Check for Added or Modified
	for k, newVal := range new {
		if oldVal, exists := old[k]; !exists || oldVal != newVal {
			v := newVal
			delta[k] = &v
		}
	}

	// Check for Deletions
	for k := range old {
		if _, exists := new[k]; !exists {
			delta[k] = nil
		}
	}

	// Return nil if delta is empty so omitempty can remove the key
	if len(delta) == 0 {
		return nil
	}
	return delta
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *GrammarDiff) IsEmpty() bool {
	return len(d.Added) == 0 &&
		len(d.Removed) == 0 &&
		len(d.Changed) == 0 &&
		len(d.Variables) == 0
}

// String summarizes the diff on one line, e.g. "+wind ~weather -season 1 variables".
func (d *GrammarDiff) String() string {
	if d == nil || d.IsEmpty() {
		return "no changes"
	}
	var parts []string
	for _, s := range d.Added {
		parts = append(parts, "+"+s)
	}
	for _, s := range d.Changed {
		parts = append(parts, "~"+s)
	}
	for _, s := range d.Removed {
		parts = append(parts, "-"+s)
	}
	if n := len(d.Variables); n > 0 {
		parts = append(parts, fmt.Sprintf("%d variables", n))
	}
	return strings.Join(parts, " ")
}
