package export

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/droplab/mfsat/solver"
)

// ErrUnknownVariable means a mapping refers to a variable absent from the
// solved model.
var ErrUnknownVariable = errors.New("export: unknown variable in mapping")

// Mapping translates Modelica parameter names to design variable names.
// It is loaded from a YAML table:
//
//	tJunction.lCont: oil_j_length
//	tJunction.wCont: oil_j_width
type Mapping map[string]string

// LoadMapping reads a YAML name table.
func LoadMapping(r io.Reader) (Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("export: read mapping: %w", err)
	}

	var m Mapping
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("export: parse mapping: %w", err)
	}

	return m, nil
}

// Modelica renders parameter assignments for a solved model, one
// "name = value" line per mapping entry in lexical order. Each interval
// collapses to its midpoint, the way Modelica expects point parameters.
func Modelica(m Mapping, model solver.Model) (string, error) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		iv, ok := model[m[name]]
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownVariable, m[name])
		}
		mid := (iv.Lo + iv.Hi) / 2
		b.WriteString(name)
		b.WriteString(" = ")
		b.WriteString(strconv.FormatFloat(mid, 'g', -1, 64))
		b.WriteString("\n")
	}

	return b.String(), nil
}
