// Package config loads simulator settings from a YAML file and CIRCUITSIM_*
// environment variables.
package config

import (
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/fyerfyer/logic-sim/pkg/export"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

// EnvPrefix prefixes environment overrides, e.g. CIRCUITSIM_LOG_LEVEL.
const EnvPrefix = "CIRCUITSIM_"

// Config holds the simulator settings.
type Config struct {
	LogLevel       string `mapstructure:"log_level" yaml:"log_level"`
	NetlistFormat  string `mapstructure:"netlist_format" yaml:"netlist_format"`
	ExportFormat   string `mapstructure:"export_format" yaml:"export_format"`
	DotBinary      string `mapstructure:"dot_binary" yaml:"dot_binary"`
	Render         bool   `mapstructure:"render" yaml:"render"`
	OutputDir      string `mapstructure:"output_dir" yaml:"output_dir"`
	MaxSweepInputs int    `mapstructure:"max_sweep_inputs" yaml:"max_sweep_inputs"`
	Workers        int    `mapstructure:"workers" yaml:"workers"`
	MetricsFile    string `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel:       "info",
		NetlistFormat:  "auto",
		ExportFormat:   "dot",
		DotBinary:      "dot",
		OutputDir:      ".",
		MaxSweepInputs: 16,
		Workers:        4,
	}
}

// Load reads path (if non-empty) over the defaults and applies environment
// overrides.
func Load(path string) (Config, error) {
	raw := make(map[string]interface{})
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "read config")
		}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return Config{}, errors.Wrapf(err, "failed to parse %s", path)
		}
	}
	for _, kv := range os.Environ() {
		key, value, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix) {
			raw[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
		}
	}

	cfg := Default()
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		Metadata:         &md,
	})
	if err != nil {
		return Config{}, errors.WithStack(err)
	}
	if err := dec.Decode(raw); err != nil {
		return Config{}, errors.Wrap(err, "decode config")
	}
	if len(md.Unused) > 0 {
		return Config{}, errors.Errorf("unknown config keys: %s", strings.Join(md.Unused, ", "))
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting is usable.
func (c Config) Validate() error {
	if _, err := utils.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := utils.ParseFormat(c.NetlistFormat); err != nil {
		return err
	}
	if _, err := export.ParseFormat(c.ExportFormat); err != nil {
		return err
	}
	if c.MaxSweepInputs < 1 || c.MaxSweepInputs > 30 {
		return errors.Errorf("max_sweep_inputs must be between 1 and 30, got %d", c.MaxSweepInputs)
	}
	if c.Workers < 1 {
		return errors.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}
