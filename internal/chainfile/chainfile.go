// Package chainfile loads hand-authored reverse-mode chains from YAML.
//
// Format:
//
//	name: inverse-norm
//	chain:
//	  - pow: 2
//	  - sum
//	  - sqrt
//	  - inv
//	  - exp
//	input: [0.7, 0.3]
//
// A step is either a bare operation name or a single-key mapping:
//
//	- pow: 0.5                          # elementwise power
//	- map: [sin, cos, {pow: 2}]         # per-index dispatch
//	- op: {name: scale, params: [3]}    # custom registered rule
//
// Bare names other than the built-ins become named operations; whether a
// rule exists for them is decided by the registry when the chain runs.
package chainfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/tangent/internal/autodiff"
	"github.com/born-ml/tangent/internal/autodiff/ops"
)

// File is a parsed chain file.
type File struct {
	Name  string    `yaml:"name"`
	Steps []Step    `yaml:"chain"`
	Input []float64 `yaml:"input,omitempty"`
}

// Step is one chain entry.
type Step struct {
	Op ops.Op
}

// Chain returns the file's steps as an executable chain.
func (f *File) Chain() autodiff.Chain {
	chain := make(autodiff.Chain, len(f.Steps))
	for i, s := range f.Steps {
		chain[i] = s.Op
	}
	return chain
}

// Load reads and parses the chain file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("chainfile: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("chainfile: %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a chain file from YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("chain has no steps")
	}
	return &f, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	op, err := parseOp(node)
	if err != nil {
		return err
	}
	s.Op = op
	return nil
}

var builtins = map[string]ops.Op{
	"sin":  ops.Sin,
	"cos":  ops.Cos,
	"exp":  ops.Exp,
	"sqrt": ops.Sqrt,
	"inv":  ops.Inv,
	"sum":  ops.Sum,
}

func parseOp(node *yaml.Node) (ops.Op, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" {
			return ops.Op{}, fmt.Errorf("line %d: empty operation name", node.Line)
		}
		if op, ok := builtins[node.Value]; ok {
			return op, nil
		}
		if node.Value == "pow" || node.Value == "map" {
			return ops.Op{}, fmt.Errorf("line %d: %s needs a parameter", node.Line, node.Value)
		}
		return ops.Named(node.Value), nil

	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return ops.Op{}, fmt.Errorf("line %d: step must have exactly one key", node.Line)
		}
		return parseParameterized(node.Content[0], node.Content[1])
	}
	return ops.Op{}, fmt.Errorf("line %d: unsupported step", node.Line)
}

func parseParameterized(key, value *yaml.Node) (ops.Op, error) {
	switch key.Value {
	case "pow":
		var p float64
		if err := value.Decode(&p); err != nil {
			return ops.Op{}, fmt.Errorf("line %d: pow exponent: %w", value.Line, err)
		}
		return ops.Pow(p), nil

	case "map":
		if value.Kind != yaml.SequenceNode {
			return ops.Op{}, fmt.Errorf("line %d: map expects a list of operations", value.Line)
		}
		fns := make([]ops.Op, len(value.Content))
		for i, item := range value.Content {
			fn, err := parseOp(item)
			if err != nil {
				return ops.Op{}, err
			}
			fns[i] = fn
		}
		return ops.Map(fns...), nil

	case "op":
		var named struct {
			Name   string    `yaml:"name"`
			Params []float64 `yaml:"params"`
		}
		if err := value.Decode(&named); err != nil {
			return ops.Op{}, fmt.Errorf("line %d: op: %w", value.Line, err)
		}
		if named.Name == "" {
			return ops.Op{}, fmt.Errorf("line %d: op needs a name", value.Line)
		}
		return ops.Named(named.Name, named.Params...), nil
	}
	return ops.Op{}, fmt.Errorf("line %d: unknown step key %q", key.Line, key.Value)
}
