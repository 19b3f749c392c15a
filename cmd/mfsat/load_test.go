package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/droplab/mfsat/schematic"
)

const singleChannelJSON = `{
	"name": "single channel",
	"chip": {"xMin": 0, "yMin": 0, "xMax": 0.1, "yMax": 0.1},
	"nodes": [
		{"name": "in", "kind": "input", "pressure": 2000, "fluid": "water"},
		{"name": "out", "kind": "output", "position": [0.05, 0.05]}
	],
	"channels": [
		{"from": "in", "to": "out", "width": 0.0005}
	]
}`

func TestLoadCircuit(t *testing.T) {
	sch, name, err := loadCircuit(strings.NewReader(singleChannelJSON))
	require.NoError(t, err)

	assert.Equal(t, "single channel", name)

	_, _, xmax, _ := sch.Bounds()
	assert.Equal(t, 0.1, xmax)

	in, ok := sch.Node("in")
	require.True(t, ok)
	assert.Equal(t, schematic.KindInput, in.Kind)
	assert.True(t, in.MinPressure.Set())
	assert.Equal(t, 2000.0, in.MinPressure.Value())

	out, ok := sch.Node("out")
	require.True(t, ok)
	assert.True(t, out.MinX.Set())
	assert.Equal(t, 0.05, out.MinX.Value())

	ch, ok := sch.Channel("in", "out")
	require.True(t, ok)
	assert.True(t, ch.MinWidth.Set())
	assert.Equal(t, schematic.PhaseNone, ch.Phase)
}

func TestLoadCircuit_UnknownKind(t *testing.T) {
	src := `{"chip": {}, "nodes": [{"name": "x", "kind": "valve"}]}`

	_, _, err := loadCircuit(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valve")
}

func TestLoadCircuit_UnknownPhase(t *testing.T) {
	src := `{
		"chip": {"xMax": 1, "yMax": 1},
		"nodes": [
			{"name": "a", "kind": "input"},
			{"name": "b", "kind": "output"}
		],
		"channels": [{"from": "a", "to": "b", "phase": "plasma"}]
	}`

	_, _, err := loadCircuit(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plasma")
}

func TestLoadCircuit_BuilderErrorsSurface(t *testing.T) {
	src := `{
		"chip": {"xMax": 1, "yMax": 1},
		"nodes": [{"name": "a", "kind": "input"}],
		"channels": [{"from": "a", "to": "missing"}]
	}`

	_, _, err := loadCircuit(strings.NewReader(src))
	assert.ErrorIs(t, err, schematic.ErrNodeNotFound)
}

func TestLoadCircuit_RejectsUnknownFields(t *testing.T) {
	src := `{"chip": {}, "nodes": [], "pipes": []}`

	_, _, err := loadCircuit(strings.NewReader(src))
	assert.Error(t, err)
}
