// Package solver checks a schematic's constraint system for satisfiability
// with an external delta-decision backend.
//
// Key features:
//   - Backend interface with a dReal subprocess implementation.
//   - Solve compiles a schematic and reports either an interval model over
//     every design variable or unsatisfiability.
//   - Precision and traversal tuning via functional options.
//
// Errors:
//   - ErrNoBackend     - Solve called without an available backend.
//   - ErrBackendOutput - the backend produced output that could not be parsed.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/translate"
)

var (
	// ErrNoBackend means no solver backend was configured or found.
	ErrNoBackend = errors.New("solver: no backend available")
	// ErrBackendOutput means the backend's output could not be parsed.
	ErrBackendOutput = errors.New("solver: unparsable backend output")
)

// Interval is a closed real interval in which a variable's value lies.
type Interval struct {
	Lo float64
	Hi float64
}

// Model maps every design variable to its satisfying interval.
type Model map[string]Interval

// Result is the outcome of a satisfiability check.
type Result struct {
	// Sat reports whether the design is delta-satisfiable.
	Sat bool
	// Model holds the witness intervals when Sat is true.
	Model Model
}

// NoSolution reports that the design was proven infeasible.
func (r *Result) NoSolution() bool { return !r.Sat }

// Backend decides delta-satisfiability of a constraint conjunction.
// It returns the model and true when delta-sat, (nil, false) when unsat.
type Backend interface {
	CheckSat(ctx context.Context, cs []expr.Constraint, precision float64) (Model, bool, error)
}

// Options bundle the tunables of Solve.
type Options struct {
	// Precision is the delta handed to the backend.
	Precision float64
	// Backend performs the satisfiability check; defaults to dReal on PATH.
	Backend Backend
	// Translate is forwarded to the schematic compiler.
	Translate []translate.Option
	// Logger receives solve progress records; discards by default.
	Logger *slog.Logger
}

// DefaultPrecision mirrors the delta dReal itself defaults to.
const DefaultPrecision = 0.001

// DefaultOptions returns the baseline Solve configuration.
func DefaultOptions() Options {
	return Options{
		Precision: DefaultPrecision,
		Logger:    discardLogger(),
	}
}

// Option mutates Options.
type Option func(*Options)

// WithPrecision sets the delta-decision precision.
func WithPrecision(delta float64) Option {
	return func(o *Options) {
		if delta > 0 {
			o.Precision = delta
		}
	}
}

// WithBackend installs a satisfiability backend.
func WithBackend(b Backend) Option {
	return func(o *Options) { o.Backend = b }
}

// WithTranslateOptions forwards options to the schematic compiler.
func WithTranslateOptions(opts ...translate.Option) Option {
	return func(o *Options) { o.Translate = append(o.Translate, opts...) }
}

// WithLogger installs a logger for solve progress records.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// Solve compiles the schematic into its constraint system and checks it.
// A nil error with Result.Sat == false means the design is proven
// infeasible; translation and backend failures surface as errors.
func Solve(ctx context.Context, sch *schematic.Schematic, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Backend == nil {
		b, err := FindDReal()
		if err != nil {
			return nil, err
		}
		o.Backend = b
	}

	// 1. Compile the schematic.
	tOpts := append([]translate.Option{translate.WithLogger(o.Logger)}, o.Translate...)
	cs, err := translate.New(sch, tOpts...).Translate()
	if err != nil {
		return nil, fmt.Errorf("solver: translate: %w", err)
	}
	o.Logger.Debug("translated schematic",
		"constraints", len(cs), "variables", len(expr.Vars(cs...)))

	// 2. Hand the conjunction to the backend.
	model, sat, err := o.Backend.CheckSat(ctx, cs, o.Precision)
	if err != nil {
		return nil, err
	}
	if !sat {
		return &Result{}, nil
	}

	return &Result{Sat: true, Model: model}, nil
}
