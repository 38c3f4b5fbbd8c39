package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fyerfyer/logic-sim/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "circuitsim.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, "log_level: debug\nexport_format: mermaid\nworkers: 2\nrender: true\n")
	t.Setenv("CIRCUITSIM_WORKERS", "8")
	t.Setenv("CIRCUITSIM_MAX_SWEEP_INPUTS", "10")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "mermaid", cfg.ExportFormat)
	assert.True(t, cfg.Render)
	assert.Equal(t, 8, cfg.Workers, "environment wins over the file")
	assert.Equal(t, 10, cfg.MaxSweepInputs)
	assert.Equal(t, "dot", cfg.DotBinary)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"unknown key", "colour: blue\n", "unknown config keys: colour"},
		{"bad level", "log_level: chatty\n", "unknown log level"},
		{"bad export", "export_format: svg\n", "unknown export format"},
		{"bad netlist", "netlist_format: verilog\n", "unknown netlist format"},
		{"bad workers", "workers: 0\n", "workers must be positive"},
		{"bad sweep", "max_sweep_inputs: 64\n", "max_sweep_inputs"},
		{"bad yaml", "workers: [\n", "failed to parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(writeConfig(t, tt.content))
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "read config")
}
