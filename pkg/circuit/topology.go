package circuit

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Topology contains the evaluation schedule and structural statistics of a
// circuit.
type Topology struct {
	Gates        []*Gate
	Lines        []*Line
	Levels       []int   // Level of each net, indexed by net ID
	MaxLevel     int     // Depth of the circuit in gates
	Order        []*Gate // Gates in evaluation order
	FanoutPoints []*Line // Nets feeding more than one gate
}

// NewTopology creates a new topology analyzer over the given gates and nets
func NewTopology(gates []*Gate, lines []*Line) *Topology {
	return &Topology{
		Gates:  gates,
		Lines:  lines,
		Levels: make([]int, len(lines)),
	}
}

// Analyze computes the evaluation order and statistics. It fails with
// CombinationalCycle when some gates can never be evaluated.
func (t *Topology) Analyze() error {
	if err := t.ComputeLevels(); err != nil {
		return err
	}
	t.IdentifyFanoutPoints()
	return nil
}

// ComputeLevels schedules gates with Kahn's algorithm, one wave at a time.
// Undriven nets are level 0; a gate output sits one level above its deepest
// input. Gates that become ready in the same wave run in declaration order.
func (t *Topology) ComputeLevels() error {
	pending := make([]int, len(t.Gates))
	var wave []*Gate
	for _, g := range t.Gates {
		for _, in := range g.Inputs {
			if in.IsDriven() {
				pending[g.ID]++
			}
		}
		if pending[g.ID] == 0 {
			wave = append(wave, g)
		}
	}

	t.Order = make([]*Gate, 0, len(t.Gates))
	t.MaxLevel = 0
	for len(wave) > 0 {
		var next []*Gate
		for _, g := range wave {
			level := 0
			for _, in := range g.Inputs {
				if t.Levels[in.ID] > level {
					level = t.Levels[in.ID]
				}
			}
			level++
			t.Levels[g.Output.ID] = level
			if level > t.MaxLevel {
				t.MaxLevel = level
			}
			t.Order = append(t.Order, g)

			// A fanout gate appears once per input it takes from this net.
			for _, fo := range g.Output.OutputGates {
				pending[fo.ID]--
				if pending[fo.ID] == 0 {
					next = append(next, fo)
				}
			}
		}
		sort.Slice(next, func(i, j int) bool { return next[i].ID < next[j].ID })
		wave = next
	}

	if len(t.Order) == len(t.Gates) {
		return nil
	}
	nets := t.cycleNets(pending)
	return NewError(CombinationalCycle,
		fmt.Sprintf("combinational cycle through nets: %s", strings.Join(nets, ", ")), nets...)
}

// cycleNets trims unresolved gates that feed no other unresolved gate until
// only gates on or between cycles remain, and returns their output nets.
func (t *Topology) cycleNets(pending []int) []string {
	stuck := make(map[*Gate]bool)
	for _, g := range t.Gates {
		if pending[g.ID] > 0 {
			stuck[g] = true
		}
	}
	for changed := true; changed; {
		changed = false
		for g := range stuck {
			feeds := false
			for _, fo := range g.Output.OutputGates {
				if stuck[fo] {
					feeds = true
					break
				}
			}
			if !feeds {
				delete(stuck, g)
				changed = true
			}
		}
	}

	var nets []string
	for _, g := range t.Gates {
		if stuck[g] {
			nets = append(nets, g.Output.Name)
		}
	}
	return nets
}

// IdentifyFanoutPoints identifies all fanout points in the circuit
func (t *Topology) IdentifyFanoutPoints() {
	t.FanoutPoints = make([]*Line, 0)

	for _, line := range t.Lines {
		if len(line.OutputGates) > 1 {
			t.FanoutPoints = append(t.FanoutPoints, line)
		}
	}
}

func (t *Topology) clone() *Topology {
	return &Topology{
		Gates:        slices.Clone(t.Gates),
		Lines:        slices.Clone(t.Lines),
		Levels:       slices.Clone(t.Levels),
		MaxLevel:     t.MaxLevel,
		Order:        slices.Clone(t.Order),
		FanoutPoints: slices.Clone(t.FanoutPoints),
	}
}

// Level returns the level of l, or -1 if l is not part of the topology.
func (t *Topology) Level(l *Line) int {
	if l == nil || l.ID >= len(t.Levels) {
		return -1
	}
	return t.Levels[l.ID]
}
