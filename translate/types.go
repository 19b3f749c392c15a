// Package translate compiles a built schematic into the conjunction of
// nonlinear real-arithmetic constraints that encodes its physics and
// geometry.
//
// The engine is a kind-dispatched recursive walker: translation starts at
// every input port and follows directed channels downstream, invoking the
// handler registered for each node and channel kind. Handlers append
// constraints and recurse; a visited set makes re-entering an already
// translated node or channel a no-op, so shared downstream subgraphs are
// emitted exactly once. After the walk, every node is constrained to the
// chip bounding box.
//
// The dispatch table is an immutable value owned by the Translator and is
// populated once at construction; kinds are the closed enumerations of
// package schematic.
//
// Errors (topology violations, raised before anything reaches a solver):
//
//	ErrNoInput             - schematic has no input port.
//	ErrNoOutput            - an input cannot reach any output port.
//	ErrNoConnection        - a port has no channels at all.
//	ErrInputHasPredecessor - a channel flows into an input port.
//	ErrOutputHasSuccessor  - a channel flows out of an output port.
//	ErrConnectionCount     - junction has the wrong number of channels.
//	ErrPhaseTag            - junction channels are tagged incorrectly.
//	ErrMissingVoltage      - an electrophoretic electrode has no voltage pin.
//	ErrAnalyteData         - analyte arrays missing or length-mismatched.
//	ErrNoPath              - no directed path between the electrodes.
package translate

import (
	"errors"
	"io"
	"log/slog"
)

var (
	// ErrNoInput indicates a schematic without any input port.
	ErrNoInput = errors.New("translate: schematic has no input")

	// ErrNoOutput indicates an input port that reaches no output port.
	ErrNoOutput = errors.New("translate: input has no reachable output")

	// ErrNoConnection indicates a port with no connected channels.
	ErrNoConnection = errors.New("translate: port has no connections")

	// ErrInputHasPredecessor indicates a channel into an input port.
	ErrInputHasPredecessor = errors.New("translate: channel into input port")

	// ErrOutputHasSuccessor indicates a channel out of an output port.
	ErrOutputHasSuccessor = errors.New("translate: channel out of output port")

	// ErrConnectionCount indicates a junction with the wrong channel count.
	ErrConnectionCount = errors.New("translate: wrong connection count")

	// ErrPhaseTag indicates missing or invalid phase tags at a junction.
	ErrPhaseTag = errors.New("translate: invalid phase tag")

	// ErrMissingVoltage indicates an electrode port without a voltage pin.
	ErrMissingVoltage = errors.New("translate: electrode has no voltage")

	// ErrAnalyteData indicates missing or mismatched analyte parameters.
	ErrAnalyteData = errors.New("translate: invalid analyte data")

	// ErrNoPath indicates no directed channel path between two nodes.
	ErrNoPath = errors.New("translate: no path between nodes")
)

// Physically sane open-interval guards applied to unknowns the user did not
// pin. Values follow common microfluidic operating ranges.
const (
	minPressure = 1e-6 // Pa, above one micropascal
	maxPressure = 1e6  // Pa, below one megapascal

	minFlowRate = 1e-12 // m^3/s
	maxFlowRate = 1e-3  // m^3/s

	minViscosity = 1e-4 // Pa*s, liquid helium is 1.58e-4
	maxViscosity = 100  // Pa*s

	minDensity = 500  // kg/m^3, no working liquid is lighter
	maxDensity = 2000 // kg/m^3

	minDimension = 1e-9 // m, channel length/width/height floor
	maxLength    = 1    // m
	maxBreadth   = 0.01 // m, width/height ceiling

	maxResistance = 1e9 // kg/(m^4*s), from max pressure over min flow

	maxField    = 1e6  // V/m
	maxMobility = 1e10 // m^2/(V*s)
	maxTime     = 1e6  // s, peak arrival ceiling
)

// epsilonFactor relates the T-junction sharpness parameter to the
// continuous channel width (0.01*w for liquid droplets, Steijn et al.).
const epsilonFactor = 0.01

// sigmaFactor converts the injection-band width to the initial standard
// deviation of the concentration profile (sigma0 ~ W/(2*2.355)).
const sigmaFactor = 2 * 2.355

// Options holds configurable parameters of a Translator.
type Options struct {
	// CritAngleDeg is the critical crossing angle in degrees; junction
	// channel pairs must cross at least this sharply. Default 0.5.
	CritAngleDeg float64

	// ResolutionC bounds the valley-to-peak concentration ratio between
	// adjacent analyte peaks: lower means more discernible peaks.
	ResolutionC float64

	// ResolutionP scales the minimum-resolvable-concentration floor:
	// higher forces every peak closer to the maximum concentration.
	ResolutionP float64

	// ResolutionQF is the arbitrary quality factor of the band model
	// (rule of thumb 0.9).
	ResolutionQF float64

	// Logger receives traversal debug records; discards by default.
	Logger *slog.Logger
}

// Option configures optional behavior of a Translator.
type Option func(*Options)

// DefaultOptions returns the Options used when none are supplied:
// 0.5 degree critical angle, resolution constants c=0.1 p=0.5 qf=0.9,
// discarding logger.
func DefaultOptions() Options {
	return Options{
		CritAngleDeg: 0.5,
		ResolutionC:  0.1,
		ResolutionP:  0.5,
		ResolutionQF: 0.9,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithCritAngle sets the critical crossing angle in degrees.
func WithCritAngle(deg float64) Option {
	return func(o *Options) { o.CritAngleDeg = deg }
}

// WithSeparationResolution sets the electrophoretic resolution constants
// (all in (0,1]): c valley-to-peak ratio, p concentration-floor scale,
// qf band quality factor.
func WithSeparationResolution(c, p, qf float64) Option {
	return func(o *Options) {
		o.ResolutionC = c
		o.ResolutionP = p
		o.ResolutionQF = qf
	}
}

// WithLogger installs a logger for traversal debug records.
// A nil logger has no effect.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
