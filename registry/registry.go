// SPDX-License-Identifier: MIT

// Package registry is the fixed dispatch table that exposes the numeric
// routines by name to hosts (the coper CLI, embedding programs).
//
// The table is built once at package init and never mutated. Call converts
// every failure, including a panic inside a routine, into an error, so a bad
// input can never take the host process down.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/coper/covariance"
	"github.com/katalvlaran/coper/matrix"
	"github.com/katalvlaran/coper/pcor"
)

var (
	// ErrUnknownRoutine is returned by Call for a name not in the table.
	ErrUnknownRoutine = errors.New("registry: unknown routine")

	// ErrRoutinePanic wraps a panic recovered from inside a routine.
	ErrRoutinePanic = errors.New("registry: routine panicked")
)

// Routine is the uniform signature every table entry adapts to.
type Routine func(m matrix.Matrix, cfg Config) (*matrix.Dense, error)

// Config carries the tunables a host may forward. Zero values mean defaults.
//
// Fields:
//   - Method            : covariance estimator name ("sam", "ml", "lw"); used by
//     routines that estimate; "" keeps the routine's own method.
//   - ConditionThreshold: maximum condition number of Σ (0 → 1e12).
//   - Tolerance         : allowed |pcor| excess over 1 (0 → 1e-6).
//   - Clamp             : clamp partial correlations into [-1,1].
type Config struct {
	Method             string
	ConditionThreshold float64
	Tolerance          float64
	Clamp              bool
}

// Entry describes one registered routine.
type Entry struct {
	Name  string  // stable symbolic name
	Arity int     // number of matrix arguments
	Doc   string  // one-line description
	Fn    Routine // implementation
}

// table holds every routine, keyed by Name.
var table = map[string]Entry{}

func init() {
	for _, e := range []Entry{
		{Name: "cov_sam", Arity: 1, Doc: "unbiased sample (SAM) covariance of data columns", Fn: estimateWith(covariance.MethodSAM)},
		{Name: "cov_ml", Arity: 1, Doc: "maximum-likelihood covariance of data columns", Fn: estimateWith(covariance.MethodML)},
		{Name: "cov_lw", Arity: 1, Doc: "Ledoit-Wolf shrinkage covariance of data columns", Fn: estimateWith(covariance.MethodLedoitWolf)},
		{Name: "cov2cor", Arity: 1, Doc: "covariance to correlation matrix", Fn: cov2cor},
		{Name: "cov2pcor", Arity: 1, Doc: "covariance to partial-correlation matrix", Fn: cov2pcor},
		{Name: "pcor_sam", Arity: 1, Doc: "data to partial correlations (estimate, then derive)", Fn: pcorFromData},
	} {
		register(e)
	}
}

// register adds e to the table; duplicate names are a programming error.
func register(e Entry) {
	if _, dup := table[e.Name]; dup {
		panic(fmt.Sprintf("registry: duplicate routine %q", e.Name))
	}
	table[e.Name] = e
}

// Lookup returns the entry registered under name.
func Lookup(name string) (Entry, bool) {
	e, ok := table[name]

	return e, ok
}

// Names returns all routine names in sorted order.
func Names() []string {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Call dispatches name on m. Unknown names yield ErrUnknownRoutine; a panic
// inside the routine is recovered and returned wrapped in ErrRoutinePanic.
func Call(name string, m matrix.Matrix, cfg Config) (out *matrix.Dense, err error) {
	e, ok := table[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownRoutine)
	}
	defer func() {
		if r := recover(); r != nil {
			out = nil
			err = fmt.Errorf("%s: %v: %w", name, r, ErrRoutinePanic)
		}
	}()

	return e.Fn(m, cfg)
}

// ---------- adapters ----------

// estimateWith binds a default method; cfg.Method overrides it.
func estimateWith(def covariance.Method) Routine {
	return func(m matrix.Matrix, cfg Config) (*matrix.Dense, error) {
		method, err := methodOr(cfg.Method, def)
		if err != nil {
			return nil, err
		}

		return covariance.Estimate(m, covariance.WithMethod(method))
	}
}

func cov2cor(m matrix.Matrix, _ Config) (*matrix.Dense, error) {
	return covariance.ToCorrelation(m)
}

func cov2pcor(m matrix.Matrix, cfg Config) (*matrix.Dense, error) {
	return pcor.Derive(m, pcorOptions(cfg)...)
}

func pcorFromData(m matrix.Matrix, cfg Config) (*matrix.Dense, error) {
	sigma, err := estimateWith(covariance.MethodSAM)(m, cfg)
	if err != nil {
		return nil, err
	}

	return pcor.Derive(sigma, pcorOptions(cfg)...)
}

// methodOr parses name, falling back to def for "".
func methodOr(name string, def covariance.Method) (covariance.Method, error) {
	if name == "" {
		return def, nil
	}

	return covariance.ParseMethod(name)
}

// pcorOptions translates the non-zero Config fields into pcor options.
// Out-of-domain values are passed through and make the option constructor
// panic, which Call reports as ErrRoutinePanic.
func pcorOptions(cfg Config) []pcor.Option {
	var opts []pcor.Option
	if cfg.ConditionThreshold != 0 {
		opts = append(opts, pcor.WithConditionThreshold(cfg.ConditionThreshold))
	}
	if cfg.Tolerance != 0 {
		opts = append(opts, pcor.WithTolerance(cfg.Tolerance))
	}
	if cfg.Clamp {
		opts = append(opts, pcor.WithClamp())
	}

	return opts
}
