package schematic

import (
	"fmt"

	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/fluid"
)

// Schematic is the circuit graph under construction: nodes, channels, and
// the chip bounding box. It has exactly one mutator (the Add* builder calls)
// and becomes effectively read-only once translation starts, so no locking
// is needed.
type Schematic struct {
	xmin, ymin, xmax, ymax float64

	nodes     map[string]*Node
	nodeOrder []string // insertion order, keeps traversal deterministic

	channels  map[pair]*Channel
	chanOrder []pair

	succ map[string][]string // ordered successor node names
	pred map[string][]string // ordered predecessor node names
}

// pair is the ordered endpoint key of a channel.
type pair struct {
	from, to string
}

// New creates an empty schematic with the given chip bounding box
// [xmin,ymin,xmax,ymax] (m). All node positions must satisfy the box.
func New(xmin, ymin, xmax, ymax float64) *Schematic {
	return &Schematic{
		xmin:     xmin,
		ymin:     ymin,
		xmax:     xmax,
		ymax:     ymax,
		nodes:    make(map[string]*Node),
		channels: make(map[pair]*Channel),
		succ:     make(map[string][]string),
		pred:     make(map[string][]string),
	}
}

// Bounds returns the chip bounding box.
func (s *Schematic) Bounds() (xmin, ymin, xmax, ymax float64) {
	return s.xmin, s.ymin, s.xmax, s.ymax
}

// AddPort creates a fluid entry or exit point. kind must be KindInput or
// KindOutput. Fluid library defaults seed the viscosity and density pins
// unless the chosen fluid has none.
func (s *Schematic) AddPort(name string, kind NodeKind, opts ...PortOption) error {
	if kind != KindInput && kind != KindOutput {
		return fmt.Errorf("AddPort(%q): %w: got %s", name, ErrBadPortKind, kind)
	}

	cfg := defaultPortConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.kind = kind

	return s.addNode(fmt.Sprintf("AddPort(%q)", name), name, cfg)
}

// AddNode creates a junction node (default KindNode; override with
// WithKind for T-junctions and electrophoretic crosses).
func (s *Schematic) AddNode(name string, opts ...PortOption) error {
	cfg := defaultPortConfig()
	cfg.fluid = "" // junctions carry no fluid of their own
	for _, opt := range opts {
		opt(&cfg)
	}

	return s.addNode(fmt.Sprintf("AddNode(%q)", name), name, cfg)
}

// addNode validates cfg and inserts the node, seeding one symbolic unknown
// per physical quantity. The unknowns never change identity afterwards.
func (s *Schematic) addNode(op, name string, cfg portConfig) error {
	// 1. Name and kind validation.
	if name == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyName)
	}
	if !cfg.kind.Valid() {
		return fmt.Errorf("%s: %w: NodeKind(%d)", op, ErrUnknownKind, cfg.kind)
	}
	if _, exists := s.nodes[name]; exists {
		return fmt.Errorf("%s: %w", op, ErrDuplicateName)
	}

	// 2. Sign validation: positive-only quantities reject negatives.
	//    Voltage may be negative (relative electrode potential).
	if err := requirePositive(op, "pressure", cfg.pressure); err != nil {
		return err
	}
	if err := requirePositive(op, "flow_rate", cfg.flowRate); err != nil {
		return err
	}
	if err := requirePositive(op, "x", cfg.x); err != nil {
		return err
	}
	if err := requirePositive(op, "y", cfg.y); err != nil {
		return err
	}
	if err := requirePositive(op, "current", cfg.current); err != nil {
		return err
	}

	n := &Node{
		Name:        name,
		Kind:        cfg.kind,
		Pressure:    expr.Var(name + "_pressure"),
		FlowRate:    expr.Var(name + "_flow_rate"),
		Viscosity:   expr.Var(name + "_viscosity"),
		Density:     expr.Var(name + "_density"),
		X:           expr.Var(name + "_x"),
		Y:           expr.Var(name + "_y"),
		MinPressure: cfg.pressure,
		MinFlowRate: cfg.flowRate,
		MinX:        cfg.x,
		MinY:        cfg.y,
		Voltage:     cfg.voltage,
		Current:     cfg.current,
	}

	// 3. Fluid defaults: library viscosity/density become unpinned-by-user
	//    defaults; a zero library field leaves the unknown free.
	if cfg.fluid != "" {
		props, err := fluid.Lookup(cfg.fluid)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if props.Viscosity != 0 {
			n.MinViscosity = PinAt(props.Viscosity)
		}
		if props.Density != 0 {
			n.MinDensity = PinAt(props.Density)
		}
		if props.Resistivity != 0 {
			n.MinResistivity = PinAt(props.Resistivity)
		}
		set, err := fluid.Analytes(props.Analyte)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		n.Analytes = set
	}

	s.nodes[name] = n
	s.nodeOrder = append(s.nodeOrder, name)

	return nil
}

// AddChannel creates a directed channel between two existing nodes.
// At most one channel may exist per ordered endpoint pair.
func (s *Schematic) AddChannel(from, to string, opts ...ChannelOption) error {
	op := fmt.Sprintf("AddChannel(%q, %q)", from, to)

	cfg := defaultChannelConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 1. Endpoint and kind validation.
	if _, ok := s.nodes[from]; !ok {
		return fmt.Errorf("%s: %w: %q", op, ErrNodeNotFound, from)
	}
	if _, ok := s.nodes[to]; !ok {
		return fmt.Errorf("%s: %w: %q", op, ErrNodeNotFound, to)
	}
	key := pair{from: from, to: to}
	if _, dup := s.channels[key]; dup {
		return fmt.Errorf("%s: %w", op, ErrDuplicateChannel)
	}
	if !cfg.kind.Valid() {
		return fmt.Errorf("%s: %w: ChannelKind(%d)", op, ErrUnknownKind, cfg.kind)
	}
	if !cfg.phase.Valid() {
		return fmt.Errorf("%s: %w: Phase(%d)", op, ErrUnknownPhase, cfg.phase)
	}

	// 2. Sign validation for pinned dimensions.
	if err := requirePositive(op, "length", cfg.length); err != nil {
		return err
	}
	if err := requirePositive(op, "width", cfg.width); err != nil {
		return err
	}
	if err := requirePositive(op, "height", cfg.height); err != nil {
		return err
	}
	if err := requirePositive(op, "sampling_rate", cfg.samplingRate); err != nil {
		return err
	}

	prefix := from + "_" + to + "_"
	ch := &Channel{
		From:          from,
		To:            to,
		Kind:          cfg.kind,
		Phase:         cfg.phase,
		Length:        expr.Var(prefix + "length"),
		Width:         expr.Var(prefix + "width"),
		Height:        expr.Var(prefix + "height"),
		FlowRate:      expr.Var(prefix + "flow_rate"),
		DropletVolume: expr.Var(prefix + "droplet_volume"),
		Viscosity:     expr.Var(prefix + "viscosity"),
		Resistance:    expr.Var(prefix + "resistance"),
		MinLength:     cfg.length,
		MinWidth:      cfg.width,
		MinHeight:     cfg.height,
		SamplingRate:  cfg.samplingRate,
	}
	if cfg.phase == PhaseSeparation {
		ch.Detector = expr.Var(prefix + "detector")
	}

	s.channels[key] = ch
	s.chanOrder = append(s.chanOrder, key)
	s.succ[from] = append(s.succ[from], to)
	s.pred[to] = append(s.pred[to], from)

	return nil
}

// Node returns the named node, if present.
func (s *Schematic) Node(name string) (*Node, bool) {
	n, ok := s.nodes[name]

	return n, ok
}

// Channel returns the channel on the ordered pair (from, to), if present.
func (s *Schematic) Channel(from, to string) (*Channel, bool) {
	ch, ok := s.channels[pair{from: from, to: to}]

	return ch, ok
}

// Nodes returns all nodes in insertion order.
func (s *Schematic) Nodes() []*Node {
	out := make([]*Node, len(s.nodeOrder))
	for i, name := range s.nodeOrder {
		out[i] = s.nodes[name]
	}

	return out
}

// Channels returns all channels in insertion order.
func (s *Schematic) Channels() []*Channel {
	out := make([]*Channel, len(s.chanOrder))
	for i, key := range s.chanOrder {
		out[i] = s.channels[key]
	}

	return out
}

// Successors returns the nodes reachable from name over one outgoing
// channel, in channel insertion order.
func (s *Schematic) Successors(name string) []string { return s.succ[name] }

// Predecessors returns the nodes with a channel into name, in channel
// insertion order.
func (s *Schematic) Predecessors(name string) []string { return s.pred[name] }

// requirePositive rejects a set pin carrying a negative value.
func requirePositive(op, what string, p Pin) error {
	if p.Set() && p.Value() < 0 {
		return fmt.Errorf("%s: %w: %s = %g", op, ErrNegativeValue, what, p.Value())
	}

	return nil
}
