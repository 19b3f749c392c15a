package translate

import (
	"github.com/droplab/mfsat/expr"
	"github.com/droplab/mfsat/schematic"
)

// nodeHandler emits the constraints of one node and recurses downstream.
type nodeHandler func(t *Translator, n *schematic.Node) error

// channelHandler emits the constraints of one channel and recurses into its
// downstream node.
type channelHandler func(t *Translator, ch *schematic.Channel) error

// Translator walks a schematic and accumulates its constraint set.
// It is single-use: construct, call Translate once, read the result.
type Translator struct {
	sch  *schematic.Schematic
	opts Options

	// Dispatch tables, populated once at construction and never mutated.
	nodes    map[schematic.NodeKind]nodeHandler
	channels map[schematic.ChannelKind]channelHandler

	// Visited sets make re-entry a no-op so shared subgraphs are emitted once.
	seenNodes    map[string]bool
	seenChannels map[[2]string]bool

	exprs []expr.Constraint
}

// New creates a Translator over a fully built schematic.
func New(sch *schematic.Schematic, opts ...Option) *Translator {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return &Translator{
		sch:  sch,
		opts: o,
		nodes: map[schematic.NodeKind]nodeHandler{
			schematic.KindNode:      (*Translator).translateNode,
			schematic.KindInput:     (*Translator).translateInput,
			schematic.KindOutput:    (*Translator).translateOutput,
			schematic.KindTJunction: (*Translator).translateTJunction,
			schematic.KindEPCross:   (*Translator).translateEPCross,
		},
		channels: map[schematic.ChannelKind]channelHandler{
			schematic.Rectangle: (*Translator).translateChannel,
		},
		seenNodes:    make(map[string]bool),
		seenChannels: make(map[[2]string]bool),
	}
}

// Translate compiles the schematic into its constraint conjunction.
// Topology violations abort with an error before any constraint list is
// returned; on success the emitted order is deterministic for a fixed
// build sequence.
func (t *Translator) Translate() ([]expr.Constraint, error) {
	// 1. Locate input ports; a schematic without one is invalid.
	var inputs []*schematic.Node
	for _, n := range t.sch.Nodes() {
		if n.Kind == schematic.KindInput {
			inputs = append(inputs, n)
		}
	}
	if len(inputs) == 0 {
		return nil, ErrNoInput
	}

	// 2. Every input must reach at least one output.
	for _, in := range inputs {
		if !t.reachesOutput(in.Name) {
			return nil, wrapNode(ErrNoOutput, in.Name)
		}
	}

	// 3. Recursive emission: one top-level call per input port covers the
	//    reachable subgraph; the visited sets absorb shared branches.
	for _, in := range inputs {
		t.opts.Logger.Debug("translate input", "node", in.Name)
		if err := t.visitNode(in.Name); err != nil {
			return nil, err
		}
	}

	// 4. Chip bounding box applies to every node, translated or not.
	xmin, ymin, xmax, ymax := t.sch.Bounds()
	for _, n := range t.sch.Nodes() {
		t.emit(
			expr.Ge(n.X, expr.Lit(xmin)),
			expr.Ge(n.Y, expr.Lit(ymin)),
			expr.Le(n.X, expr.Lit(xmax)),
			expr.Le(n.Y, expr.Lit(ymax)),
		)
	}

	return t.exprs, nil
}

// emit appends constraints to the accumulating conjunction.
func (t *Translator) emit(cs ...expr.Constraint) {
	t.exprs = append(t.exprs, cs...)
}

// visitNode dispatches the named node to its kind handler exactly once.
func (t *Translator) visitNode(name string) error {
	if t.seenNodes[name] {
		return nil
	}
	t.seenNodes[name] = true

	n, _ := t.sch.Node(name)
	t.opts.Logger.Debug("visit node", "node", name, "kind", n.Kind.String())

	return t.nodes[n.Kind](t, n)
}

// visitChannel dispatches the channel to its kind handler exactly once.
func (t *Translator) visitChannel(from, to string) error {
	key := [2]string{from, to}
	if t.seenChannels[key] {
		return nil
	}
	t.seenChannels[key] = true

	ch, _ := t.sch.Channel(from, to)
	t.opts.Logger.Debug("visit channel", "from", from, "to", to)

	return t.channels[ch.Kind](t, ch)
}

// reachesOutput reports whether an output port is reachable from start by
// breadth-first search over directed channels.
func (t *Translator) reachesOutput(start string) bool {
	seen := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		n, _ := t.sch.Node(cur)
		if n.Kind == schematic.KindOutput {
			return true
		}
		for _, next := range t.sch.Successors(cur) {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}

	return false
}

func wrapNode(err error, name string) error {
	return &nodeError{err: err, name: name}
}

// nodeError attaches the offending node name to a sentinel.
type nodeError struct {
	err  error
	name string
}

func (e *nodeError) Error() string { return e.err.Error() + ": " + e.name }
func (e *nodeError) Unwrap() error { return e.err }
