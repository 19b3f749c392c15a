package solver

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/droplab/mfsat/expr"
)

// DReal runs the dReal delta-decision procedure as a subprocess, feeding
// it the SMT-LIB rendering of the constraint system.
type DReal struct {
	// Path of the dreal binary.
	Path string
	// Logger receives invocation records; discards when nil.
	Logger *slog.Logger
}

// FindDReal locates dreal on PATH.
func FindDReal() (*DReal, error) {
	path, err := exec.LookPath("dreal")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoBackend, err)
	}

	return &DReal{Path: path}, nil
}

// CheckSat writes the problem to a temporary file, invokes dreal with
// model production enabled and parses the verdict.
func (d *DReal) CheckSat(ctx context.Context, cs []expr.Constraint, precision float64) (Model, bool, error) {
	log := d.Logger
	if log == nil {
		log = discardLogger()
	}

	// 1. Materialize the problem; dreal takes a file argument.
	dir, err := os.MkdirTemp("", "mfsat-*")
	if err != nil {
		return nil, false, fmt.Errorf("solver: temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "circuit.smt2")
	if err := os.WriteFile(file, []byte(Script(cs, precision)), 0o600); err != nil {
		return nil, false, fmt.Errorf("solver: write problem: %w", err)
	}

	// 2. Invoke the solver.
	args := []string{
		"--precision", strconv.FormatFloat(precision, 'f', -1, 64),
		"--model",
		file,
	}
	log.Debug("invoking dreal", "path", d.Path, "args", args)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, d.Path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		// dreal exits nonzero on malformed input, not on unsat.
		return nil, false, fmt.Errorf("solver: dreal: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	return ParseOutput(stdout.String())
}

// ParseOutput interprets dreal's stdout. The first line is the
// verdict ("unsat" or "delta-sat with delta = ..."); with --model each
// following line binds one variable to an interval:
//
//	x : [ 0.001, 0.0015 ]
func ParseOutput(out string) (Model, bool, error) {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, false, fmt.Errorf("%w: empty output", ErrBackendOutput)
	}

	verdict := strings.TrimSpace(lines[0])
	switch {
	case verdict == "unsat":
		return nil, false, nil
	case strings.HasPrefix(verdict, "delta-sat"):
	default:
		return nil, false, fmt.Errorf("%w: %q", ErrBackendOutput, verdict)
	}

	model := make(Model, len(lines)-1)
	for _, line := range lines[1:] {
		name, iv, err := parseBinding(line)
		if err != nil {
			return nil, false, err
		}
		if name != "" {
			model[name] = iv
		}
	}

	return model, true, nil
}

// parseBinding parses one "name : [ lo, hi ]" model line. Blank lines
// yield an empty name. Point bindings "name : [ v ]" collapse to a
// degenerate interval.
func parseBinding(line string) (string, Interval, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", Interval{}, nil
	}

	name, rest, ok := strings.Cut(line, ":")
	if !ok {
		return "", Interval{}, fmt.Errorf("%w: %q", ErrBackendOutput, line)
	}
	name = strings.TrimSpace(name)

	rest = strings.TrimSpace(rest)
	rest = strings.TrimPrefix(rest, "[")
	rest = strings.TrimSuffix(rest, "]")

	bounds := strings.Split(rest, ",")
	if len(bounds) == 1 {
		v, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
		if err != nil {
			return "", Interval{}, fmt.Errorf("%w: %q", ErrBackendOutput, line)
		}

		return name, Interval{Lo: v, Hi: v}, nil
	}
	if len(bounds) != 2 {
		return "", Interval{}, fmt.Errorf("%w: %q", ErrBackendOutput, line)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(bounds[0]), 64)
	if err != nil {
		return "", Interval{}, fmt.Errorf("%w: %q", ErrBackendOutput, line)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(bounds[1]), 64)
	if err != nil {
		return "", Interval{}, fmt.Errorf("%w: %q", ErrBackendOutput, line)
	}

	return name, Interval{Lo: lo, Hi: hi}, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
