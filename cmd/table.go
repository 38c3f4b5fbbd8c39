package main

import (
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logic-sim/pkg/algorithm"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

var tableCmd = &cobra.Command{
	Use:   "table <netlist>",
	Short: "Print the full truth table of a circuit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		rows, err := algorithm.TruthTable(cmd.Context(), v, algorithm.Options{
			Workers:   cfg.Workers,
			MaxInputs: cfg.MaxSweepInputs,
			Logger:    logger,
			Observer:  recorder,
		})
		if err != nil {
			return err
		}

		columns := append(v.InputNames(), v.OutputNames()...)
		title := "Truth table for " + v.Name
		vectors := algorithm.Vectors(v, rows)
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			logger.Info("Writing truth table", "rows", len(rows), "file", path)
			return utils.WriteVectorsFile(path, title, columns, vectors)
		}
		return utils.WriteVectors(cmd.OutOrStdout(), title, columns, vectors)
	},
}

func init() {
	tableCmd.Flags().StringP("output", "o", "", "Write the table to a file instead of stdout")
	rootCmd.AddCommand(tableCmd)
}
