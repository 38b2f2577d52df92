package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"statline/internal/engine"
)

func TestNewViperDefaultsWithoutFile(t *testing.T) {
	t.Setenv("STATLINE_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	v, err := NewViper()
	require.NoError(t, err)
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "127.0.0.1:8787", cfg.ListenAddr)
	assert.Empty(t, cfg.DBPath)
}

func TestNewViperFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "statline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db: /data/stats.db\nlog-level: info\nlisten: 0.0.0.0:9000\n"), 0o644))
	t.Setenv("STATLINE_CONFIG", path)
	t.Setenv("STATLINE_LOG_LEVEL", "debug")

	v, err := NewViper()
	require.NoError(t, err)
	cfg, err := FromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "/data/stats.db", cfg.DBPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:9000", cfg.ListenAddr)
}

func TestValidateRejectsBadFormat(t *testing.T) {
	cfg := Config{LogFormat: "xml", ListenAddr: ":1"}
	assert.Error(t, cfg.Validate())

	cfg = Config{LogFormat: "json"}
	assert.Error(t, cfg.Validate())
}

func TestRulesFromYAMLOverridesDefaults(t *testing.T) {
	rules, err := RulesFromYAML([]byte(`
baseline:
  stamina: 50
  tm: 40
categories:
  fitness: {stamina: 10}
  reading: {int: 4, skills: 1}
tags:
  heavy: {power: 5}
`))
	require.NoError(t, err)

	assert.Equal(t, engine.Vec(50, 64, 78, 60, 40), rules.Baseline)

	fitness, ok := rules.Table.Category("fitness")
	require.True(t, ok)
	assert.Equal(t, engine.Vec(10, 0, 0, 0, 0), fitness)

	reading, ok := rules.Table.Category("reading")
	require.True(t, ok)
	assert.Equal(t, engine.Vec(0, 1, 4, 0, 0), reading)

	_, ok = rules.Table.Category("learning")
	assert.True(t, ok, "defaults not in the file are kept")

	assert.Equal(t, engine.Vec(0, 0, 0, 5, 0), rules.Table.ComputeDelta(engine.TaskClassification{Tags: []string{"heavy"}}))
}

func TestRulesFromYAMLErrors(t *testing.T) {
	cases := map[string]string{
		"unknown stat":      "categories:\n  fitness: {charisma: 1}\n",
		"baseline too high": "baseline:\n  power: 101\n",
		"not yaml":          "categories: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := RulesFromYAML([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadRulesEmptyPathIsDefault(t *testing.T) {
	rules, err := LoadRules("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultBaseline(), rules.Baseline)
	assert.Equal(t, engine.DefaultRules().CategoryNames(), rules.Table.CategoryNames())
}
