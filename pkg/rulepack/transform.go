package rulepack

import (
	"sort"
	"strings"

	"github.com/aretw0/rulegen/pkg/domain"
)

// Merge combines packs into a new pack with the given id.
// Rules are concatenated in order and variables are last-write-wins, the same
// precedence the generator applies when loading the packs one by one.
// An empty name defaults to "Merged: " followed by the source names.
func Merge(id, name string, packs ...domain.RulePack) domain.RulePack {
	if name == "" {
		names := make([]string, len(packs))
		for i, p := range packs {
			names[i] = p.DisplayName()
		}
		name = "Merged: " + strings.Join(names, ", ")
	}

	merged := domain.RulePack{
		ID:        id,
		Name:      name,
		Rules:     []domain.Rule{},
		Variables: map[string]string{},
	}
	for _, p := range packs {
		merged.Rules = append(merged.Rules, p.Clone().Rules...)
		for k, v := range p.Variables {
			merged.Variables[k] = v
		}
	}
	return merged
}

// FilterByTags returns a copy of the pack keeping only rules that carry at least one
// of the tags. Untagged rules are dropped. Variables and metadata are kept.
func FilterByTags(pack domain.RulePack, tags ...string) domain.RulePack {
	filtered := pack.Clone()
	filtered.Rules = []domain.Rule{}
	for _, r := range pack.Clone().Rules {
		if r.HasAnyTag(tags...) {
			filtered.Rules = append(filtered.Rules, r)
		}
	}
	return filtered
}

// AllTags returns the distinct tags used by the pack, sorted.
func AllTags(pack domain.RulePack) []string {
	seen := make(map[string]struct{})
	for _, r := range pack.Rules {
		for _, t := range r.Tags {
			seen[t] = struct{}{}
		}
	}

	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}
