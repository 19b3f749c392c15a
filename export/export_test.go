package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplab/mfsat/export"
	"github.com/droplab/mfsat/schematic"
	"github.com/droplab/mfsat/solver"
)

func buildSolved(t *testing.T) (*schematic.Schematic, solver.Model) {
	t.Helper()

	sch := schematic.New(0, 0, 0.1, 0.1)
	require.NoError(t, sch.AddPort("in", schematic.KindInput))
	require.NoError(t, sch.AddPort("out", schematic.KindOutput))
	require.NoError(t, sch.AddChannel("in", "out"))

	model := solver.Model{
		"in_pressure":   {Lo: 1999.9, Hi: 2000.1},
		"in_out_length": {Lo: 0.001, Hi: 0.0015},
		"out_x":         {Lo: 0.05, Hi: 0.05},
	}

	return sch, model
}

func TestIR(t *testing.T) {
	sch, model := buildSolved(t)

	doc, err := export.IR(sch, model, "single channel")
	require.NoError(t, err)

	assert.Equal(t, "single channel", doc.Name)

	// Both elements are ports, identified by insertion order.
	require.Contains(t, doc.Nodes, "pT0")
	require.Contains(t, doc.Nodes, "pT1")
	assert.Equal(t, "input", doc.Nodes["pT0"].Type)
	assert.Equal(t, "in", doc.Nodes["pT0"].PortAttrs)
	assert.Contains(t, doc.PortTypes, "pT0")
	assert.Empty(t, doc.NodeTypes)

	// Solved intervals ride along as [lo, hi] attribute pairs.
	assert.Equal(t, [2]float64{1999.9, 2000.1}, doc.Nodes["pT0"].Attributes["pressure"])
	assert.Equal(t, [2]float64{0.05, 0.05}, doc.Nodes["pT1"].Attributes["x"])

	require.Contains(t, doc.Connections, "ch0")
	assert.Equal(t, "in", doc.Connections["ch0"].From)
	assert.Equal(t, "out", doc.Connections["ch0"].To)
	assert.Equal(t, [2]float64{0.001, 0.0015}, doc.Connections["ch0"].Attributes["length"])

	// Unsolved variables stay out of the attribute maps.
	assert.NotContains(t, doc.Connections["ch0"].Attributes, "width")
}

func TestIR_JunctionLandsInNodeTypes(t *testing.T) {
	sch, _ := buildSolved(t)
	require.NoError(t, sch.AddNode("j", schematic.WithKind(schematic.KindTJunction)))

	doc, err := export.IR(sch, solver.Model{}, "t")
	require.NoError(t, err)

	assert.Contains(t, doc.NodeTypes, "pT2")
	assert.NotContains(t, doc.PortTypes, "pT2")
}

func TestMarshalIR(t *testing.T) {
	sch, model := buildSolved(t)

	data, err := export.MarshalIR(sch, model, "single channel")
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, `"name":"single channel"`)
	assert.Contains(t, s, `"portTypes"`)
	assert.Contains(t, s, `"connections"`)
}

func TestLoadMapping(t *testing.T) {
	src := "chip.pIn: in_pressure\nchip.lChannel: in_out_length\n"

	m, err := export.LoadMapping(strings.NewReader(src))
	require.NoError(t, err)

	assert.Equal(t, export.Mapping{
		"chip.pIn":      "in_pressure",
		"chip.lChannel": "in_out_length",
	}, m)
}

func TestModelica(t *testing.T) {
	model := solver.Model{
		"in_pressure":   {Lo: 1999.5, Hi: 2000.5},
		"in_out_length": {Lo: 0.25, Hi: 0.75},
	}
	m := export.Mapping{
		"chip.pIn":      "in_pressure",
		"chip.lChannel": "in_out_length",
	}

	out, err := export.Modelica(m, model)
	require.NoError(t, err)

	// Midpoints, in lexical parameter order.
	assert.Equal(t, "chip.lChannel = 0.5\nchip.pIn = 2000\n", out)
}

func TestModelica_UnknownVariable(t *testing.T) {
	m := export.Mapping{"chip.x": "missing_var"}

	_, err := export.Modelica(m, solver.Model{})
	assert.ErrorIs(t, err, export.ErrUnknownVariable)
}
