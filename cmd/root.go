package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/config"
	"github.com/fyerfyer/logic-sim/pkg/metrics"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

var (
	cfgFile  string
	cfg      config.Config
	logger   = utils.NewNopLogger()
	recorder = metrics.NewRecorder()
)

var rootCmd = &cobra.Command{
	Use:           "circuitsim",
	Short:         "circuitsim simulates combinational logic circuits",
	Long:          `circuitsim reads a netlist of logic gates, checks it for structural errors, evaluates it for input assignments and exports it for diagram rendering.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel, _ = flags.GetString("log-level")
		}
		if flags.Changed("format") {
			cfg.NetlistFormat, _ = flags.GetString("format")
		}
		if flags.Changed("metrics-file") {
			cfg.MetricsFile, _ = flags.GetString("metrics-file")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		level, _ := utils.ParseLogLevel(cfg.LogLevel)
		if logFile, _ := flags.GetString("log-file"); logFile != "" {
			logger, err = utils.NewFileLogger(level, logFile)
			if err != nil {
				return err
			}
		} else {
			logger = utils.NewLogger(level)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the command tree, then closes the logger and writes the
// metrics textfile whether or not the command succeeded.
func run() error {
	cfg = config.Default()
	err := rootCmd.Execute()
	if cfg.MetricsFile != "" {
		logger.Debug("writing metrics", "file", cfg.MetricsFile)
		if werr := recorder.WriteTextfile(cfg.MetricsFile); werr != nil && err == nil {
			err = werr
		}
	}
	if cerr := logger.Close(); cerr != nil && err == nil {
		err = cerr
	}
	logger = utils.NewNopLogger()
	return err
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: error, warn, info, debug, trace")
	rootCmd.PersistentFlags().String("log-file", "", "Log file (default: stderr)")
	rootCmd.PersistentFlags().String("format", "auto", "Netlist format: auto, commands, bench")
	rootCmd.PersistentFlags().String("metrics-file", "", "Write Prometheus metrics to this file on exit")
	rootCmd.PersistentFlags().Bool("lenient", false, "Skip rejected netlist definitions instead of failing")
}

// loadCircuit parses and validates the netlist at path.
func loadCircuit(cmd *cobra.Command, path string) (*circuit.Validated, error) {
	format, err := utils.ParseFormat(cfg.NetlistFormat)
	if err != nil {
		return nil, err
	}
	lenient, _ := cmd.Flags().GetBool("lenient")

	logger.Info("Parsing circuit", "file", path, "format", format)
	v, err := utils.ParseNetlistFile(path, utils.ParseOptions{
		Format:  format,
		Lenient: lenient,
		Logger:  logger,
	})
	recorder.ObserveBuild(v, err)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build circuit")
	}
	return v, nil
}
