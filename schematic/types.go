// Package schematic holds the directed attributed graph describing a
// microfluidic circuit: ports and junction nodes as vertices, channels as
// edges, plus the chip bounding box.
//
// The graph is built once through AddPort / AddNode / AddChannel and is then
// read-only: every physical quantity of a node or channel is represented by
// exactly one symbolic unknown created at insertion time, optionally
// accompanied by a user-pinned literal (a Pin). Whether a quantity is fixed
// by equality or merely bounded is decided later by the translation engine,
// never here.
//
// Errors (branch with errors.Is):
//
//	ErrEmptyName         - node name is the empty string.
//	ErrDuplicateName     - a node with this name already exists.
//	ErrNodeNotFound      - a channel endpoint references an unknown node.
//	ErrDuplicateChannel  - a channel between this ordered pair already exists.
//	ErrNegativeValue     - a negative literal where positivity is required.
//	ErrUnknownKind       - node/channel kind outside the closed enumeration.
//	ErrUnknownPhase      - phase tag outside the closed enumeration.
//	ErrBadPortKind       - AddPort with a kind other than Input or Output.
package schematic

import (
	"errors"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/fluid"
)

// Sentinel errors for builder validation. All are raised synchronously at
// the offending Add* call, before any translation occurs.
var (
	// ErrEmptyName indicates an empty node name.
	ErrEmptyName = errors.New("schematic: empty name")

	// ErrDuplicateName indicates a node name collision.
	ErrDuplicateName = errors.New("schematic: duplicate name")

	// ErrNodeNotFound indicates a channel endpoint that was never declared.
	ErrNodeNotFound = errors.New("schematic: node not found")

	// ErrDuplicateChannel indicates a second channel on the same ordered pair.
	ErrDuplicateChannel = errors.New("schematic: duplicate channel")

	// ErrNegativeValue indicates a negative literal for a positive quantity.
	ErrNegativeValue = errors.New("schematic: negative value")

	// ErrUnknownKind indicates a kind value outside the closed enumeration.
	ErrUnknownKind = errors.New("schematic: unknown kind")

	// ErrUnknownPhase indicates a phase value outside the closed enumeration.
	ErrUnknownPhase = errors.New("schematic: unknown phase")

	// ErrBadPortKind indicates AddPort with a non-port kind.
	ErrBadPortKind = errors.New("schematic: port kind must be input or output")

	// ErrChannelNotFound indicates an Attribute ref naming an absent channel.
	ErrChannelNotFound = errors.New("schematic: channel not found")

	// ErrUnknownAttribute indicates an Attribute name with no unknown.
	ErrUnknownAttribute = errors.New("schematic: unknown attribute")
)

// NodeKind is the closed enumeration of vertex kinds. Each kind has exactly
// one translation handler registered by the translation engine.
type NodeKind uint8

const (
	// KindNode is a plain junction where channels meet.
	KindNode NodeKind = iota

	// KindInput is a port where fluid enters the circuit.
	KindInput

	// KindOutput is a port where fluid exits the circuit.
	KindOutput

	// KindTJunction is a droplet-generating three-channel junction.
	KindTJunction

	// KindEPCross is a four-channel electrophoretic cross.
	KindEPCross

	nodeKindEnd // sentinel for range checks, keep last
)

// String implements fmt.Stringer.
func (k NodeKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	case KindTJunction:
		return "t-junction"
	case KindEPCross:
		return "ep-cross"
	default:
		return "unknown"
	}
}

// Valid reports whether k is a member of the enumeration.
func (k NodeKind) Valid() bool { return k < nodeKindEnd }

// ChannelKind is the closed enumeration of channel cross-section shapes.
type ChannelKind uint8

const (
	// Rectangle is a rectangular cross-section channel.
	Rectangle ChannelKind = iota

	channelKindEnd // sentinel for range checks, keep last
)

// String implements fmt.Stringer.
func (k ChannelKind) String() string {
	if k == Rectangle {
		return "rectangle"
	}

	return "unknown"
}

// Valid reports whether k is a member of the enumeration.
func (k ChannelKind) Valid() bool { return k < channelKindEnd }

// Phase tags the role of a channel at a junction-kind node. Plain channels
// carry PhaseNone; only junction handlers consult the tag.
type Phase uint8

const (
	// PhaseNone marks a channel with no junction role.
	PhaseNone Phase = iota

	// PhaseContinuous is the continuous (carrier) inflow of a T-junction.
	PhaseContinuous

	// PhaseDispersed is the dispersed (droplet) inflow of a T-junction.
	PhaseDispersed

	// PhaseOutput is the single outflow of a T-junction.
	PhaseOutput

	// PhaseTail is the cathode-side channel of an electrophoretic cross.
	PhaseTail

	// PhaseSeparation is the anode-side separation channel of an
	// electrophoretic cross.
	PhaseSeparation

	phaseEnd // sentinel for range checks, keep last
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseNone:
		return "none"
	case PhaseContinuous:
		return "continuous"
	case PhaseDispersed:
		return "dispersed"
	case PhaseOutput:
		return "output"
	case PhaseTail:
		return "tail"
	case PhaseSeparation:
		return "separation"
	default:
		return "unknown"
	}
}

// Valid reports whether p is a member of the enumeration.
func (p Phase) Valid() bool { return p < phaseEnd }

// Pin is an optional user-supplied literal for a symbolic unknown.
// An unset Pin leaves the unknown solver-determined (only bounded);
// a set Pin makes the translation engine assert equality with Value.
type Pin struct {
	val float64
	ok  bool
}

// PinAt returns a set Pin carrying v.
func PinAt(v float64) Pin { return Pin{val: v, ok: true} }

// Set reports whether the pin carries a value.
func (p Pin) Set() bool { return p.ok }

// Value returns the pinned literal; zero when unset.
func (p Pin) Value() float64 { return p.val }

// Node is a vertex of the circuit graph: a port or a junction.
// The Expr fields are the symbolic unknowns created at insertion time;
// their identity never changes. The Min* pins record user-supplied literals.
type Node struct {
	Name string
	Kind NodeKind

	Pressure  expr.Expr // Pa
	FlowRate  expr.Expr // m^3/s
	Viscosity expr.Expr // Pa*s
	Density   expr.Expr // kg/m^3
	X, Y      expr.Expr // m

	MinPressure  Pin
	MinFlowRate  Pin
	MinViscosity Pin
	MinDensity   Pin
	MinX, MinY   Pin

	// MinResistivity holds the fluid library's electrical resistivity
	// default. No hydraulic constraint consumes it; it rides along for
	// electrophoretic tooling reading the solved schematic.
	MinResistivity Pin // Ohm/m

	// Electrical port attributes, set only on electrode ports of an
	// electrophoretic cross.
	Voltage Pin // V
	Current Pin // A

	// Analytes carries per-species transport parameters for sample-bearing
	// ports; empty elsewhere.
	Analytes fluid.AnalyteSet
}

// Channel is a directed edge carrying fluid between two nodes.
type Channel struct {
	From, To string
	Kind     ChannelKind
	Phase    Phase

	Length        expr.Expr // m
	Width         expr.Expr // m
	Height        expr.Expr // m
	FlowRate      expr.Expr // m^3/s
	DropletVolume expr.Expr // m^3
	Viscosity     expr.Expr // Pa*s
	Resistance    expr.Expr // kg/(m^4*s)

	// Detector is the detector position along a separation channel,
	// measured from the junction; nil unless Phase is PhaseSeparation.
	Detector expr.Expr // m

	MinLength Pin
	MinWidth  Pin
	MinHeight Pin

	// SamplingRate is the minimum resolvable peak separation time of the
	// detector on a separation channel.
	SamplingRate Pin // s
}
