package engine

import (
	"sort"
	"strings"
)

// TaskClassification is what scoring looks at: one category plus ordered tags.
type TaskClassification struct {
	Category string   `json:"category"`
	Tags     []string `json:"tags"`
}

// RuleTable maps categories and tags to stat deltas. It is read-only after construction.
type RuleTable struct {
	categories map[string]StatVector
	tags       map[string]StatVector
}

// NewRuleTable copies the given maps so later changes to them do not leak in.
func NewRuleTable(categories, tags map[string]StatVector) RuleTable {
	rt := RuleTable{
		categories: make(map[string]StatVector, len(categories)),
		tags:       make(map[string]StatVector, len(tags)),
	}
	for k, v := range categories {
		rt.categories[k] = v
	}
	for k, v := range tags {
		rt.tags[k] = v
	}
	return rt
}

// DefaultRules returns the built-in tables.
func DefaultRules() RuleTable {
	return NewRuleTable(
		map[string]StatVector{
			"fitness":   Vec(6, 0, 1, 4, 0),
			"learning":  Vec(0, 5, 6, 0, 2),
			"planning":  Vec(0, 2, 1, 0, 6),
			"recovery":  Vec(4, 0, 0, 2, 1),
			"execution": Vec(2, 3, 0, 4, 2),
		},
		map[string]StatVector{
			"deepWork":      Vec(0, 2, 3, 2, 1),
			"collaboration": Vec(0, 3, 1, 0, 2),
			"mindfulness":   Vec(2, 0, 1, 1, 0),
			"strength":      Vec(2, 0, 0, 3, 0),
		},
	)
}

// Merge returns a table with other's entries layered over rt's.
func (rt RuleTable) Merge(other RuleTable) RuleTable {
	out := NewRuleTable(rt.categories, rt.tags)
	for k, v := range other.categories {
		out.categories[k] = v
	}
	for k, v := range other.tags {
		out.tags[k] = v
	}
	return out
}

func (rt RuleTable) Category(name string) (StatVector, bool) {
	v, ok := rt.categories[name]
	return v, ok
}

func (rt RuleTable) Tag(name string) (StatVector, bool) {
	v, ok := rt.tags[name]
	return v, ok
}

func (rt RuleTable) CategoryNames() []string {
	return sortedKeys(rt.categories)
}

func (rt RuleTable) TagNames() []string {
	return sortedKeys(rt.tags)
}

// ComputeDelta scores a classification. Unknown category or tags contribute zero,
// and a tag listed twice counts twice.
func (rt RuleTable) ComputeDelta(c TaskClassification) StatVector {
	total := Zero()
	if v, ok := rt.categories[c.Category]; ok {
		total = Add(total, v)
	}
	for _, tag := range c.Tags {
		if v, ok := rt.tags[tag]; ok {
			total = Add(total, v)
		}
	}
	return total
}

// NormalizeTags trims whitespace and drops empty tags. Order and repeats are kept.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

func sortedKeys(m map[string]StatVector) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
