package fluid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplab/mfsat/fluid"
)

func TestLookup_Water(t *testing.T) {
	p, err := fluid.Lookup("water")
	require.NoError(t, err)
	assert.Equal(t, 999.87, p.Density)
	assert.Equal(t, 0.001, p.Viscosity)
	assert.Equal(t, fluid.Default, p.Analyte)
}

func TestLookup_DefaultHasNoValues(t *testing.T) {
	p, err := fluid.Lookup(fluid.Default)
	require.NoError(t, err)
	assert.Zero(t, p.Density)
	assert.Zero(t, p.Viscosity)
	assert.Zero(t, p.Resistivity)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := fluid.Lookup("mercury")
	assert.ErrorIs(t, err, fluid.ErrUnknownFluid)
}

func TestAnalytes_SampleSet(t *testing.T) {
	p, err := fluid.Lookup("epsample")
	require.NoError(t, err)

	a, err := fluid.Analytes(p.Analyte)
	require.NoError(t, err)
	assert.Equal(t, 4, a.Len())
	assert.Len(t, a.InitialConcentration, a.Len())
	assert.Len(t, a.Charge, a.Len())
	assert.Len(t, a.Radius, a.Len())
}

func TestAnalytes_Unknown(t *testing.T) {
	_, err := fluid.Analytes("nosuchset")
	assert.ErrorIs(t, err, fluid.ErrUnknownAnalyte)
}
