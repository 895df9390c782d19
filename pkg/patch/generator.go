// Package patch turns a variant's field table and a caller parameter mapping into
// line-addressed sed edits against a Phantom .setup file.
//
// Parameter keys that are not registered for the variant are dropped without error.
// They are logged at info level so typos remain visible; whether they should become a
// hard error is an open product question.
package patch

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/go-go-golems/phantom-slurm-generator/pkg/variant"
)

// SpecSource is the registry capability the generator needs.
type SpecSource interface {
	SpecsFor(v variant.Variant) ([]variant.ParameterSpec, error)
}

type Generator struct {
	specs SpecSource
}

func NewGenerator(specs SpecSource) *Generator {
	return &Generator{specs: specs}
}

// Instructions resolves one instruction per registered field, in registration order.
func (g *Generator) Instructions(v variant.Variant, params map[string]string, target string) ([]Instruction, error) {
	specs, err := g.specs.SpecsFor(v)
	if err != nil {
		return nil, err
	}

	if dropped := UnknownKeys(specs, params); len(dropped) > 0 {
		log.Info().Str("variant", string(v)).Strs("keys", dropped).Msg("ignoring parameters not registered for variant")
	}

	out := make([]Instruction, 0, len(specs))
	for _, s := range specs {
		value, ok := params[s.Name]
		if !ok {
			value = s.Default
		}
		out = append(out, Instruction{
			Line:        s.Line,
			Name:        s.Name,
			Value:       value,
			Description: s.Description,
			Target:      target,
		})
	}
	log.Debug().Str("variant", string(v)).Str("target", target).Int("instructions", len(out)).Msg("patch instructions resolved")
	return out, nil
}

// Generate returns the rendered shell commands, one per instruction.
func (g *Generator) Generate(v variant.Variant, params map[string]string, target string) ([]string, error) {
	ins, err := g.Instructions(v, params, target)
	if err != nil {
		return nil, err
	}
	lines := make([]string, len(ins))
	for i, in := range ins {
		lines[i] = in.Render()
	}
	return lines, nil
}

// UnknownKeys lists the keys of params that no spec names, sorted.
func UnknownKeys(specs []variant.ParameterSpec, params map[string]string) []string {
	if len(params) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		known[s.Name] = struct{}{}
	}
	var unknown []string
	for k := range params {
		if _, ok := known[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// SetupFile is the .setup file phantomsetup writes for a variant.
func SetupFile(v variant.Variant) string {
	return fmt.Sprintf("%s.setup", v)
}
