package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logic-sim/pkg/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <netlist>",
	Short: "Export the circuit graph for diagram rendering",
	Long:  `Writes the circuit as a Graphviz DOT, Mermaid or YAML node/edge description. With --render, DOT output is also turned into a PNG using Graphviz.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("to") {
			cfg.ExportFormat, _ = flags.GetString("to")
		}
		if flags.Changed("out") {
			cfg.OutputDir, _ = flags.GetString("out")
		}
		if flags.Changed("render") {
			cfg.Render, _ = flags.GetBool("render")
		}
		format, err := export.ParseFormat(cfg.ExportFormat)
		if err != nil {
			return err
		}

		v, err := loadCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if stdout, _ := flags.GetBool("stdout"); stdout {
			return export.Write(out, export.Describe(v), format)
		}

		path, err := export.WriteFile(cfg.OutputDir, v, format)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s file saved as '%s'\n", format, path)

		if !cfg.Render {
			return nil
		}
		if format != export.FormatDOT {
			logger.Warning("render skipped, only DOT output can be rendered", "format", format)
			return nil
		}
		png, err := export.Render(cmd.Context(), cfg.DotBinary, path)
		if errors.Is(err, export.ErrRendererNotFound) {
			logger.Warning("Graphviz not installed, the DOT file can still be rendered manually", "binary", cfg.DotBinary)
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Circuit diagram saved as '%s'\n", png)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("to", "dot", "Output format: dot, mermaid, yaml")
	exportCmd.Flags().String("out", ".", "Output directory")
	exportCmd.Flags().Bool("stdout", false, "Write to stdout instead of a file")
	exportCmd.Flags().Bool("render", false, "Run Graphviz on the DOT file")
	rootCmd.AddCommand(exportCmd)
}
