// Package algorithm runs exhaustive sweeps over the input space of validated
// circuits: truth tables and equivalence checks.
package algorithm

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/fyerfyer/logic-sim/pkg/circuit"
	"github.com/fyerfyer/logic-sim/pkg/utils"
)

// ErrTooManyInputs is returned when a sweep would exceed the configured
// number of primary inputs.
var ErrTooManyInputs = errors.New("too many primary inputs for exhaustive sweep")

// RunObserver is notified after every Run of a sweep. ObserveGates follows
// each successful run with the number of gates it evaluated.
type RunObserver interface {
	ObserveRun(d time.Duration, err error)
	ObserveGates(n int)
}

// Options controls sweeps.
type Options struct {
	Workers   int // Concurrent evaluators, at least 1
	MaxInputs int // Upper bound on primary inputs, 0 means 16
	Logger    *utils.Logger
	Observer  RunObserver
}

func (o Options) withDefaults() Options {
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.MaxInputs <= 0 {
		o.MaxInputs = 16
	}
	if o.Logger == nil {
		o.Logger = utils.NewNopLogger()
	}
	return o
}

// Assignment returns assignment number index over names: names[0] is the
// most significant bit.
func Assignment(names []string, index uint64) map[string]circuit.LogicValue {
	a := make(map[string]circuit.LogicValue, len(names))
	for i, name := range names {
		shift := uint(len(names) - 1 - i)
		a[name] = circuit.Bool(index>>shift&1 == 1)
	}
	return a
}

// Row is one line of a truth table.
type Row struct {
	Inputs  map[string]circuit.LogicValue
	Outputs []circuit.LogicValue // In output declaration order
}

// TruthTable evaluates v for every assignment of its primary inputs. Rows are
// in binary counting order.
func TruthTable(ctx context.Context, v *circuit.Validated, opts Options) ([]Row, error) {
	opts = opts.withDefaults()
	inputs := v.InputNames()
	if len(inputs) > opts.MaxInputs {
		return nil, errors.Wrapf(ErrTooManyInputs, "%d inputs, limit %d", len(inputs), opts.MaxInputs)
	}

	total := uint64(1) << uint(len(inputs))
	rows := make([]Row, total)
	err := forEachChunk(ctx, total, opts.Workers, func(ctx context.Context, lo, hi uint64) error {
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			a := Assignment(inputs, i)
			vals, err := run(v, a, opts.Observer)
			if err != nil {
				return errors.Wrapf(err, "assignment %d", i)
			}
			rows[i] = Row{Inputs: a, Outputs: v.OutputValues(vals)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Simulation("truth table complete", "circuit", v.Name, "rows", total, "workers", opts.Workers)
	return rows, nil
}

// Vectors flattens rows into name/value maps covering inputs and outputs.
func Vectors(v *circuit.Validated, rows []Row) []map[string]circuit.LogicValue {
	outputs := v.OutputNames()
	vectors := make([]map[string]circuit.LogicValue, len(rows))
	for i, r := range rows {
		m := make(map[string]circuit.LogicValue, len(r.Inputs)+len(outputs))
		for k, val := range r.Inputs {
			m[k] = val
		}
		for j, name := range outputs {
			m[name] = r.Outputs[j]
		}
		vectors[i] = m
	}
	return vectors
}

// Counterexample is an assignment on which two circuits disagree.
type Counterexample struct {
	Index      uint64
	Assignment map[string]circuit.LogicValue
	Left       circuit.Values // Output values of the first circuit
	Right      circuit.Values // Output values of the second circuit
}

// Equivalent checks that a and b produce identical outputs for every
// assignment. Both must declare the same primary input and output names. It
// returns nil when they are equivalent, otherwise the lowest numbered
// counterexample.
func Equivalent(ctx context.Context, a, b *circuit.Validated, opts Options) (*Counterexample, error) {
	opts = opts.withDefaults()
	inputs := a.InputNames()
	if !sameNames(inputs, b.InputNames()) {
		return nil, errors.Errorf("primary inputs differ: %v vs %v", inputs, b.InputNames())
	}
	outputs := a.OutputNames()
	if !sameNames(outputs, b.OutputNames()) {
		return nil, errors.Errorf("primary outputs differ: %v vs %v", outputs, b.OutputNames())
	}
	if len(inputs) > opts.MaxInputs {
		return nil, errors.Wrapf(ErrTooManyInputs, "%d inputs, limit %d", len(inputs), opts.MaxInputs)
	}

	var (
		mu    sync.Mutex
		first *Counterexample
	)
	total := uint64(1) << uint(len(inputs))
	err := forEachChunk(ctx, total, opts.Workers, func(ctx context.Context, lo, hi uint64) error {
		for i := lo; i < hi; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			asg := Assignment(inputs, i)
			left, err := run(a, asg, opts.Observer)
			if err != nil {
				return err
			}
			right, err := run(b, asg, opts.Observer)
			if err != nil {
				return err
			}
			if diff := compareOutputs(outputs, left, right); diff != nil {
				diff.Index, diff.Assignment = i, asg
				mu.Lock()
				if first == nil || i < first.Index {
					first = diff
				}
				mu.Unlock()
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	opts.Logger.Simulation("equivalence check complete", "left", a.Name, "right", b.Name,
		"assignments", total, "equivalent", first == nil)
	return first, nil
}

func compareOutputs(outputs []string, left, right circuit.Values) *Counterexample {
	same := true
	for _, name := range outputs {
		if left[name] != right[name] {
			same = false
			break
		}
	}
	if same {
		return nil
	}
	ce := &Counterexample{Left: make(circuit.Values), Right: make(circuit.Values)}
	for _, name := range outputs {
		ce.Left[name] = left[name]
		ce.Right[name] = right[name]
	}
	return ce
}

func sameNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	set := make(map[string]bool, len(a))
	for _, n := range a {
		set[n] = true
	}
	for _, n := range b {
		if !set[n] {
			return false
		}
	}
	return true
}

func run(v *circuit.Validated, a map[string]circuit.LogicValue, obs RunObserver) (circuit.Values, error) {
	start := time.Now()
	vals, err := v.Run(a)
	if obs != nil {
		obs.ObserveRun(time.Since(start), err)
		if err == nil {
			obs.ObserveGates(v.NumGates())
		}
	}
	return vals, err
}

// forEachChunk splits [0, total) into contiguous chunks and processes them on
// at most workers goroutines.
func forEachChunk(ctx context.Context, total uint64, workers int, fn func(ctx context.Context, lo, hi uint64) error) error {
	chunk := (total + uint64(workers) - 1) / uint64(workers)
	if chunk == 0 {
		chunk = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for lo := uint64(0); lo < total; lo += chunk {
		lo, hi := lo, min(lo+chunk, total)
		g.Go(func() error { return fn(ctx, lo, hi) })
	}
	return g.Wait()
}
