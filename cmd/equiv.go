package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/fyerfyer/logic-sim/pkg/algorithm"
)

var equivCmd = &cobra.Command{
	Use:   "equiv <netlist> <netlist>",
	Short: "Check that two circuits compute the same outputs",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		left, err := loadCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		right, err := loadCircuit(cmd, args[1])
		if err != nil {
			return err
		}

		ce, err := algorithm.Equivalent(cmd.Context(), left, right, algorithm.Options{
			Workers:   cfg.Workers,
			MaxInputs: cfg.MaxSweepInputs,
			Logger:    logger,
			Observer:  recorder,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if ce == nil {
			fmt.Fprintf(out, "%s and %s are equivalent\n", left.Name, right.Name)
			return nil
		}

		var inputs []string
		for _, name := range left.InputNames() {
			inputs = append(inputs, fmt.Sprintf("%s=%s", name, ce.Assignment[name]))
		}
		fmt.Fprintf(out, "Counterexample: %s\n", strings.Join(inputs, " "))
		for _, name := range left.OutputNames() {
			fmt.Fprintf(out, "  %s: %s vs %s\n", name, ce.Left[name], ce.Right[name])
		}
		return errors.Errorf("%s and %s differ", left.Name, right.Name)
	},
}

func init() {
	rootCmd.AddCommand(equivCmd)
}
