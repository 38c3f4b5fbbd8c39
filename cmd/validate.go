package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fyerfyer/logic-sim/pkg/utils"
)

var validateCmd = &cobra.Command{
	Use:   "validate <netlist>",
	Short: "Check a netlist for structural errors",
	Long:  `Builds the circuit and reports arity errors, multiple drivers, driven inputs, dangling nets and combinational cycles.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if err := utils.WriteSummary(out, v); err != nil {
			return err
		}
		fmt.Fprintln(out, "Circuit is valid")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
