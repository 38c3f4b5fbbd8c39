package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/metrics"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <netlist>",
	Short: "Evaluate a circuit for input assignments",
	Long: `Evaluates the circuit once per --set round, or interactively for each line read from stdin.
A round is either positional values in input declaration order ("1 0") or name=value pairs ("A=1 B=0").
Type EXIT to leave an interactive session.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := loadCircuit(cmd, args[0])
		if err != nil {
			return err
		}
		s := &session{
			circuit:  v,
			recorder: recorder,
			log:      logger.With("session", uuid.NewString()),
			out:      cmd.OutOrStdout(),
		}

		rounds, _ := cmd.Flags().GetStringArray("set")
		if len(rounds) > 0 {
			for _, r := range rounds {
				if err := s.round(r); err != nil {
					return err
				}
			}
			return nil
		}

		if err := utils.WriteSummary(s.out, v); err != nil {
			return err
		}
		s.prompt = term.IsTerminal(int(os.Stdin.Fd()))
		return s.loop(cmd.InOrStdin())
	},
}

func init() {
	simulateCmd.Flags().StringArray("set", nil, "Input assignment for one round (repeatable)")
	rootCmd.AddCommand(simulateCmd)
}

// session evaluates successive assignments against one circuit.
type session struct {
	circuit  *circuit.Validated
	recorder *metrics.Recorder
	log      *utils.Logger
	out      io.Writer
	prompt   bool
}

// round parses and evaluates one assignment line and prints the report.
func (s *session) round(line string) error {
	assignment, err := utils.ParseAssignment(line, s.circuit.InputNames())
	if err != nil {
		return err
	}
	values, err := s.recorder.Run(s.circuit, assignment)
	if err != nil {
		return err
	}
	s.log.Simulation("round complete", "assignment", line)

	rule := strings.Repeat("-", 40)
	fmt.Fprintf(s.out, "\n%s\nSIMULATION RESULTS\n%s\n", rule, rule)
	return utils.WriteReport(s.out, s.circuit, values)
}

// loop reads rounds until EOF or EXIT. Bad rounds are reported and the user
// may retry.
func (s *session) loop(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		if s.prompt {
			fmt.Fprintf(s.out, "\nEnter values for %s (or EXIT): ", strings.Join(s.circuit.InputNames(), " "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.EqualFold(line, "EXIT") || strings.EqualFold(line, "QUIT") {
			break
		}
		if err := s.round(line); err != nil {
			s.log.Debug("round rejected", "error", err)
			fmt.Fprintf(s.out, "Error: %v\nPlease try again.\n", err)
		}
	}
	return errors.Wrap(scanner.Err(), "read input")
}
