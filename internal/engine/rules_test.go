package engine

import "testing"

func TestComputeDelta(t *testing.T) {
	rules := DefaultRules()
	tests := []struct {
		name string
		in   TaskClassification
		want StatVector
	}{
		{
			name: "unknown category no tags",
			in:   TaskClassification{Category: "juggling"},
			want: Zero(),
		},
		{
			name: "empty classification",
			in:   TaskClassification{},
			want: Zero(),
		},
		{
			name: "category only",
			in:   TaskClassification{Category: "planning"},
			want: Vec(0, 2, 1, 0, 6),
		},
		{
			name: "fitness with strength",
			in:   TaskClassification{Category: "fitness", Tags: []string{"strength"}},
			want: Vec(8, 0, 1, 7, 0), // {6,0,1,4,0} + {2,0,0,3,0}
		},
		{
			name: "duplicate tags apply twice",
			in:   TaskClassification{Category: "fitness", Tags: []string{"strength", "strength"}},
			want: Vec(10, 0, 1, 10, 0),
		},
		{
			name: "unknown tags are ignored",
			in:   TaskClassification{Category: "learning", Tags: []string{"nope", "deepWork"}},
			want: Vec(0, 7, 9, 2, 3),
		},
		{
			name: "tags without category",
			in:   TaskClassification{Tags: []string{"mindfulness", "collaboration"}},
			want: Vec(2, 3, 2, 1, 2),
		},
		{
			name: "category match is case sensitive",
			in:   TaskClassification{Category: "Fitness"},
			want: Zero(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.ComputeDelta(tt.in)
			if got != tt.want {
				t.Fatalf("ComputeDelta(%+v)=%v, want %v", tt.in, got, tt.want)
			}
			if again := rules.ComputeDelta(tt.in); again != got {
				t.Fatalf("not deterministic: %v then %v", got, again)
			}
		})
	}
}

func TestRuleTableIsolatedFromSourceMaps(t *testing.T) {
	cats := map[string]StatVector{"walk": Vec(1, 0, 0, 0, 0)}
	rt := NewRuleTable(cats, nil)
	cats["walk"] = Vec(50, 0, 0, 0, 0)
	cats["swim"] = Vec(5, 0, 0, 0, 0)

	if got := rt.ComputeDelta(TaskClassification{Category: "walk"}); got != Vec(1, 0, 0, 0, 0) {
		t.Fatalf("walk=%v, want {1,0,0,0,0}", got)
	}
	if _, ok := rt.Category("swim"); ok {
		t.Fatalf("swim leaked into rule table")
	}
}

func TestRuleTableMerge(t *testing.T) {
	base := DefaultRules()
	merged := base.Merge(NewRuleTable(
		map[string]StatVector{"fitness": Vec(1, 1, 1, 1, 1)},
		map[string]StatVector{"reading": Vec(0, 0, 4, 0, 0)},
	))

	if got, _ := merged.Category("fitness"); got != Vec(1, 1, 1, 1, 1) {
		t.Fatalf("fitness override=%v", got)
	}
	if got, _ := base.Category("fitness"); got != Vec(6, 0, 1, 4, 0) {
		t.Fatalf("merge mutated base: %v", got)
	}
	if _, ok := merged.Tag("reading"); !ok {
		t.Fatalf("expected reading tag after merge")
	}
	if len(merged.TagNames()) != len(base.TagNames())+1 {
		t.Fatalf("tag names=%v", merged.TagNames())
	}
}

func TestParseTags(t *testing.T) {
	got := ParseTags("deepWork, strength", " ", "strength")
	want := []string{"deepWork", "strength", "strength"}
	if len(got) != len(want) {
		t.Fatalf("ParseTags=%v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ParseTags[%d]=%q, want %q", i, got[i], want[i])
		}
	}
}
