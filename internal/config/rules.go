package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"statline/internal/engine"
)

// RulesFile models the YAML rules file. Entries override the built-in tables.
//
//	baseline:
//	  stamina: 72
//	categories:
//	  fitness: {stamina: 6, intelligence: 1, power: 4}
//	tags:
//	  strength: {stamina: 2, power: 3}
type RulesFile struct {
	Baseline   map[string]int            `yaml:"baseline"`
	Categories map[string]map[string]int `yaml:"categories"`
	Tags       map[string]map[string]int `yaml:"tags"`
}

// Rules is the resolved scoring setup.
type Rules struct {
	Table    engine.RuleTable
	Baseline engine.StatVector
}

// DefaultRules returns the built-in tables and baseline.
func DefaultRules() Rules {
	return Rules{Table: engine.DefaultRules(), Baseline: engine.DefaultBaseline()}
}

// LoadRules reads path and layers it over the defaults. An empty path yields the defaults.
func LoadRules(path string) (Rules, error) {
	if path == "" {
		return DefaultRules(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules %s: %w", path, err)
	}
	return RulesFromYAML(data)
}

func RulesFromYAML(data []byte) (Rules, error) {
	var f RulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Rules{}, fmt.Errorf("invalid rules yaml: %w", err)
	}

	out := DefaultRules()
	if len(f.Baseline) > 0 {
		base, err := vectorFromMap(out.Baseline, f.Baseline)
		if err != nil {
			return Rules{}, fmt.Errorf("baseline: %w", err)
		}
		for _, s := range engine.AllStats {
			if n := base.Get(s); n < engine.StatMin || n > engine.StatMax {
				return Rules{}, fmt.Errorf("baseline %s=%d outside [%d, %d]", s, n, engine.StatMin, engine.StatMax)
			}
		}
		out.Baseline = base
	}

	cats, err := vectorsFromMaps(f.Categories)
	if err != nil {
		return Rules{}, fmt.Errorf("categories: %w", err)
	}
	tags, err := vectorsFromMaps(f.Tags)
	if err != nil {
		return Rules{}, fmt.Errorf("tags: %w", err)
	}
	out.Table = out.Table.Merge(engine.NewRuleTable(cats, tags))
	return out, nil
}

func vectorsFromMaps(in map[string]map[string]int) (map[string]engine.StatVector, error) {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]engine.StatVector, len(in))
	for _, name := range names {
		if name == "" {
			return nil, fmt.Errorf("empty rule name")
		}
		v, err := vectorFromMap(engine.Zero(), in[name])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out[name] = v
	}
	return out, nil
}

func vectorFromMap(base engine.StatVector, m map[string]int) (engine.StatVector, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	v := base
	for _, k := range keys {
		s, err := engine.ParseStat(k)
		if err != nil {
			return engine.StatVector{}, err
		}
		v = v.With(s, m[k])
	}
	return v, nil
}
