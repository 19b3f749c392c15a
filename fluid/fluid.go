// Package fluid is a static library of physical properties for working
// fluids commonly used in microfluidic devices, plus per-analyte transport
// parameters for electrophoretic samples.
//
// Lookups are pure and side-effect free. A zero-valued property field means
// the library has no default and the corresponding design unknown stays free
// for the solver to determine.
//
// Errors:
//   - ErrUnknownFluid    the fluid name is not in the table.
//   - ErrUnknownAnalyte  the analyte reference is not in the table.
package fluid

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownFluid is returned by Lookup for a name absent from the table.
	ErrUnknownFluid = errors.New("fluid: unknown fluid")

	// ErrUnknownAnalyte is returned by Analytes for an absent reference.
	ErrUnknownAnalyte = errors.New("fluid: unknown analyte")
)

// Default is the fluid name used when a port does not specify one.
// It carries no property defaults: every unknown stays solver-determined.
const Default = "default"

// Properties holds the bulk properties of a fluid.
// Zero fields mean "no default value known".
type Properties struct {
	Density     float64 // kg/m^3
	Resistivity float64 // Ohm/m
	Viscosity   float64 // Pa*s
	Analyte     string  // analyte set reference for electrophoretic samples
}

// AnalyteSet holds per-species transport parameters for a sample.
// All slices have the same length, one entry per analyte.
type AnalyteSet struct {
	Diffusivity          []float64 // m^2/s
	InitialConcentration []float64 // mol/m^3
	Charge               []float64 // C
	Radius               []float64 // m
}

// Len returns the number of analytes in the set.
func (a AnalyteSet) Len() int { return len(a.Diffusivity) }

var properties = map[string]Properties{
	Default:          {Analyte: Default},
	"water":          {Density: 999.87, Resistivity: 182000, Viscosity: 0.001, Analyte: Default},
	"mineraloil":     {Density: 800, Resistivity: 1e10, Viscosity: 0.0003051, Analyte: Default},
	"polyacrylamide": {Density: 1100, Resistivity: 14.28, Viscosity: 0.003, Analyte: Default},
	"epsample":       {Density: 999.87, Resistivity: 18200, Viscosity: 0.001, Analyte: "epsample"},
}

var analytes = map[string]AnalyteSet{
	Default: {},
	"epsample": {
		Diffusivity:          []float64{0.1, 0.1, 0.1, 0.1},
		InitialConcentration: []float64{0.2, 0.2, 0.2, 0.2},
		Charge:               []float64{-1, -2, -3, -4},
		Radius:               []float64{0.05, 0.05, 0.05, 0.05},
	},
}

// Lookup returns the bulk properties of the named fluid.
func Lookup(name string) (Properties, error) {
	p, ok := properties[name]
	if !ok {
		return Properties{}, fmt.Errorf("%w: %q", ErrUnknownFluid, name)
	}

	return p, nil
}

// Analytes returns the analyte parameter set for the given reference,
// typically Properties.Analyte from a prior Lookup.
func Analytes(ref string) (AnalyteSet, error) {
	a, ok := analytes[ref]
	if !ok {
		return AnalyteSet{}, fmt.Errorf("%w: %q", ErrUnknownAnalyte, ref)
	}

	return a, nil
}
