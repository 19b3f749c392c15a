package translate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/translate"
)

// buildSingleChannel wires one input port to one output port through a
// single rectangular channel, pinning the entry pressure.
func buildSingleChannel(t testing.TB) *schematic.Schematic {
	t.Helper()

	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput,
		schematic.WithPressure(2000),
		schematic.WithFluid("water"),
	))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("in", "out"))

	return sch
}

// render joins the constraint conjunction into one searchable string.
func render(cs []expr.Constraint) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}

	return strings.Join(parts, "\n")
}

func TestTranslate_NoInput(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddNode("n"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrNoInput)
}

func TestTranslate_InputWithoutOutput(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput))
	require.NoError(t, sch.AddNode("n"))
	require.NoError(t, sch.AddChannel("in", "n"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrNoOutput)
	assert.Contains(t, err.Error(), "in")
}

func TestTranslate_InputWithPredecessor(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput))
	require.NoError(t, sch.AddNode("n"))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("n", "in"))
	require.NoError(t, sch.AddChannel("in", "out"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrInputHasPredecessor)
}

func TestTranslate_OutputWithSuccessor(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddNode("n"))
	require.NoError(t, sch.AddChannel("in", "out"))
	require.NoError(t, sch.AddChannel("out", "n"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrOutputHasSuccessor)
}

func TestTranslate_SingleChannel(t *testing.T) {
	sch := buildSingleChannel(t)
	cs, err := translate.New(sch).Translate()
	require.NoError(t, err)
	require.NotEmpty(t, cs)

	text := render(cs)

	// Pinned pressure collapses to an equality; the free output pressure
	// keeps its guard bounds.
	assert.Contains(t, text, "(in_pressure == 2000)")
	assert.Contains(t, text, "(out_pressure > 1e-06)")
	assert.Contains(t, text, "(out_pressure < 1e+06)")

	// Water seeds viscosity and density pins on the input port.
	assert.Contains(t, text, "(in_viscosity == 0.001)")
	assert.Contains(t, text, "(in_density == 999.87)")

	// Channel geometry and hydraulics.
	assert.Contains(t, text, "in_out_length")
	assert.Contains(t, text, "(in_out_resistance < 1e+09)")
	assert.Contains(t, text, "(in_out_flow_rate == in_flow_rate)")
	assert.Contains(t, text, "(in_out_viscosity == in_viscosity)")

	// Downstream pressure follows the channel drop.
	assert.Contains(t, text, "(out_pressure == (in_pressure - (in_out_resistance * in_out_flow_rate)))")

	// Unpinned input flow follows from pressure and channel cross-section.
	assert.Contains(t, text, "(in_out_width * in_out_height)")

	// Chip bounding box covers every node.
	assert.Contains(t, text, "(out_x <= 0.1)")
	assert.Contains(t, text, "(in_y >= 0)")
}

func TestTranslate_SharedNodeEmittedOnce(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in1", schematic.KindInput))
	require.NoError(t, sch.AddPort("in2", schematic.KindInput))
	require.NoError(t, sch.AddNode("mix"))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("in1", "mix"))
	require.NoError(t, sch.AddChannel("in2", "mix"))
	require.NoError(t, sch.AddChannel("mix", "out"))

	cs, err := translate.New(sch).Translate()
	require.NoError(t, err)

	text := render(cs)
	assert.Equal(t, 1, strings.Count(text, "(mix_viscosity > 0.0001)"))
	assert.Equal(t, 1, strings.Count(text, "(mix_out_length >"))

	// Both incoming branches constrain the shared node pressure.
	assert.Contains(t, text, "(mix_pressure == (in1_pressure - (in1_mix_resistance * in1_mix_flow_rate)))")
	assert.Contains(t, text, "(mix_pressure == (in2_pressure - (in2_mix_resistance * in2_mix_flow_rate)))")
}

func TestTranslate_DensityCarriesThroughSingleBranch(t *testing.T) {
	sch := buildSingleChannel(t)
	cs, err := translate.New(sch).Translate()
	require.NoError(t, err)

	assert.Contains(t, render(cs), "(out_density == in_density)")
}

func buildTJunction(t testing.TB, phases ...schematic.Phase) *schematic.Schematic {
	t.Helper()

	cont, disp := schematic.PhaseContinuous, schematic.PhaseDispersed
	if len(phases) == 2 {
		cont, disp = phases[0], phases[1]
	}

	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("oil", schematic.KindInput, schematic.WithFluid("mineraloil")))
	require.NoError(t, sch.AddPort("water", schematic.KindInput, schematic.WithFluid("water")))
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindTJunction)))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("oil", "j", schematic.WithPhase(cont)))
	require.NoError(t, sch.AddChannel("water", "j", schematic.WithPhase(disp)))
	require.NoError(t, sch.AddChannel("j", "out", schematic.WithPhase(schematic.PhaseOutput)))

	return sch
}

func TestTranslate_TJunction(t *testing.T) {
	sch := buildTJunction(t)
	cs, err := translate.New(sch).Translate()
	require.NoError(t, err)

	text := render(cs)

	// Geometry coupling between the arms.
	assert.Contains(t, text, "(oil_j_width == j_out_width)")
	assert.Contains(t, text, "(oil_j_height == j_out_height)")
	assert.Contains(t, text, "(water_j_height == j_out_height)")

	// Corner sharpness and droplet volume at the outlet.
	assert.Contains(t, text, "(j_epsilon == (oil_j_width * 0.01))")
	assert.Contains(t, text, "(j_out_droplet_volume == ")

	// Flow conservation across the junction.
	assert.Contains(t, text, "((oil_j_flow_rate + water_j_flow_rate) == j_out_flow_rate)")

	// Continuous inflow, junction and outlet are collinear: the signed
	// triangle area over their coordinates vanishes.
	assert.Contains(t, text,
		"((((oil_x * (out_y - j_y)) + ((out_x * (j_y - oil_y)) + (j_x * (oil_y - out_y)))) / 2) == 0)")

	// Continuous arm and outlet form a straight line.
	vars := expr.Vars(cs...)
	assert.Contains(t, vars, "j_epsilon")
	assert.Contains(t, vars, "j_out_droplet_volume")
}

func TestTranslate_TJunctionConnectionCount(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput))
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindTJunction)))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("in", "j", schematic.WithPhase(schematic.PhaseContinuous)))
	require.NoError(t, sch.AddChannel("j", "out"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrConnectionCount)
}

func TestTranslate_TJunctionBadPhase(t *testing.T) {
	sch := buildTJunction(t, schematic.PhaseContinuous, schematic.PhaseContinuous)

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrPhaseTag)
}

// buildEPCross wires the four arms of an electrophoretic cross: sample
// injection and cathode inflows, separation outflow to the anode and a
// waste outflow.
func buildEPCross(t testing.TB, anodeOpts ...schematic.PortOption) *schematic.Schematic {
	t.Helper()

	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("sample", schematic.KindInput, schematic.WithFluid("epsample")))
	require.NoError(t, sch.AddPort("cathode", schematic.KindInput, schematic.WithVoltage(0)))
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindEPCross)))
	require.NoError(t, sch.AddPort("waste", schematic.KindOutput))

	opts := append([]schematic.PortOption{}, anodeOpts...)
	require.NoError(t, sch.AddPort("anode", schematic.KindOutput, opts...))

	require.NoError(t, sch.AddChannel("sample", "j"))
	require.NoError(t, sch.AddChannel("cathode", "j", schematic.WithPhase(schematic.PhaseTail)))
	require.NoError(t, sch.AddChannel("j", "waste"))
	require.NoError(t, sch.AddChannel("j", "anode",
		schematic.WithPhase(schematic.PhaseSeparation),
		schematic.WithSamplingRate(0.01),
	))

	return sch
}

func TestTranslate_EPCross(t *testing.T) {
	sch := buildEPCross(t, schematic.WithVoltage(1500))
	cs, err := translate.New(sch).Translate()
	require.NoError(t, err)

	vars := expr.Vars(cs...)

	// Field over the cathode-to-anode path.
	assert.Contains(t, vars, "j_E")

	// The sample fluid carries four analytes.
	assert.Contains(t, vars, "j_mu_0")
	assert.Contains(t, vars, "j_mu_3")
	assert.Contains(t, vars, "j_t_peak_3")
	assert.Contains(t, vars, "j_t_min_0")
	assert.Contains(t, vars, "j_diff_2")
	assert.NotContains(t, vars, "j_mu_4")

	assert.Contains(t, vars, "j_sigma0")
	assert.Contains(t, vars, "j_C_floor")
	assert.Contains(t, vars, "j_C_negligible")
	assert.Contains(t, vars, "j_anode_detector")

	text := render(cs)

	// Arm geometry coupling.
	assert.Contains(t, text, "(cathode_j_width == j_anode_width)")
	assert.Contains(t, text, "(sample_j_height == j_waste_height)")

	// Detector sits along the separation channel.
	assert.Contains(t, text, "(j_anode_detector <= j_anode_length)")

	// Peak separation honors the detector sampling interval.
	assert.Contains(t, text, "(j_t_peak_0 + 0.01)")
}

func TestTranslate_EPCrossMissingVoltage(t *testing.T) {
	sch := buildEPCross(t)

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrMissingVoltage)
}

func TestTranslate_EPCrossMissingAnalytes(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("sample", schematic.KindInput, schematic.WithFluid("water")))
	require.NoError(t, sch.AddPort("cathode", schematic.KindInput, schematic.WithVoltage(0)))
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindEPCross)))
	require.NoError(t, sch.AddPort("waste", schematic.KindOutput))
	require.NoError(t, sch.AddPort("anode", schematic.KindOutput, schematic.WithVoltage(1500)))
	require.NoError(t, sch.AddChannel("sample", "j"))
	require.NoError(t, sch.AddChannel("cathode", "j", schematic.WithPhase(schematic.PhaseTail)))
	require.NoError(t, sch.AddChannel("j", "waste"))
	require.NoError(t, sch.AddChannel("j", "anode", schematic.WithPhase(schematic.PhaseSeparation)))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrAnalyteData)
}

func TestTranslate_EPCrossConnectionCount(t *testing.T) {
	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("sample", schematic.KindInput))
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindEPCross)))
	require.NoError(t, sch.AddPort("waste", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("sample", "j"))
	require.NoError(t, sch.AddChannel("j", "waste"))

	_, err := translate.New(sch).Translate()
	assert.ErrorIs(t, err, translate.ErrConnectionCount)
}

func TestTranslate_CritAngleOption(t *testing.T) {
	sch := buildTJunction(t)
	cs, err := translate.New(sch, translate.WithCritAngle(45)).Translate()
	require.NoError(t, err)

	// cos^2(45 deg) = 0.5 up to float rounding.
	assert.Contains(t, render(cs), "(0.50000000000000")
}
