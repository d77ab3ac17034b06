// Package specyaml loads a jsondsl.Builder from a YAML parameter-set
// document, the declarative counterpart to building one in Go code.
package specyaml

import (
	"fmt"
	"regexp"

	"github.com/goccy/go-yaml"

	"github.com/bitop-dev/jsondsl/jsondsl"
)

// Document is the YAML structure of a parameter-set file: an ordered
// list of parameters plus the group constraints evaluated over them.
type Document struct {
	Parameters []Parameter       `yaml:"parameters"`
	Groups     []GroupConstraint `yaml:"groups"`
}

// Parameter is the YAML structure of a single declared field. Default
// is applied whenever the document sets it to a non-null value; a
// parameter needing a literal null default should use AllowNull
// instead, since default injection happens before null handling runs.
type Parameter struct {
	Name         string      `yaml:"name"`
	Type         string      `yaml:"type"`
	Required     bool        `yaml:"required"`
	AllowNull    bool        `yaml:"allow_null"`
	Default      any         `yaml:"default"`
	AllowValues  []any       `yaml:"allow_values"`
	RejectValues []any       `yaml:"reject_values"`
	Pattern      string      `yaml:"pattern"`
	Items        *Parameter  `yaml:"items"`
	Nested       []Parameter `yaml:"properties"`
}

// GroupConstraint is the YAML structure of a cross-field constraint.
type GroupConstraint struct {
	Kind string   `yaml:"kind"`
	Keys []string `yaml:"keys"`
}

// Load parses a YAML parameter-set document into an equivalent
// jsondsl.Builder.
func Load(data []byte) (*jsondsl.Builder, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("specyaml: parse document: %w", err)
	}

	b := jsondsl.NewBuilder()
	for _, p := range doc.Parameters {
		if err := declare(b, p); err != nil {
			return nil, err
		}
	}
	for _, g := range doc.Groups {
		if err := declareGroup(b, g); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func declare(b *jsondsl.Builder, p Parameter) error {
	coercer, err := coercerFor(p)
	if err != nil {
		return err
	}

	var pattern *regexp.Regexp
	if p.Pattern != "" {
		pattern, err = regexp.Compile(p.Pattern)
		if err != nil {
			return fmt.Errorf("specyaml: parameter %q has invalid pattern %q: %w", p.Name, p.Pattern, err)
		}
	}

	if len(p.Nested) > 0 {
		var nestErr error
		nest := func(sub *jsondsl.Builder) {
			for _, child := range p.Nested {
				if err := declare(sub, child); err != nil && nestErr == nil {
					nestErr = err
				}
			}
		}
		if p.Required {
			b.ReqNested(p.Name, coercer, nest)
		} else {
			b.OptNested(p.Name, coercer, nest)
		}
		return nestErr
	}

	configure := func(pb *jsondsl.ParamBuilder) {
		pb.Coerce(coercer)
		if p.AllowNull {
			pb.AllowNull()
		}
		if p.Default != nil {
			pb.Default(p.Default)
		}
		if len(p.AllowValues) > 0 {
			pb.AllowValues(p.AllowValues...)
		}
		if len(p.RejectValues) > 0 {
			pb.RejectValues(p.RejectValues...)
		}
		if pattern != nil {
			pb.Regex(pattern)
		}
	}
	if p.Required {
		b.Req(p.Name, configure)
	} else {
		b.Opt(p.Name, configure)
	}
	return nil
}

// coercerFor maps a YAML "type" string to a jsondsl.Coercer. "array"
// additionally consults Items for an element coercer.
func coercerFor(p Parameter) (jsondsl.Coercer, error) {
	switch p.Type {
	case "", "string":
		return jsondsl.String(), nil
	case "i64":
		return jsondsl.I64(), nil
	case "u64":
		return jsondsl.U64(), nil
	case "f64":
		return jsondsl.F64(), nil
	case "boolean":
		return jsondsl.Boolean(), nil
	case "null":
		return jsondsl.Null(), nil
	case "object":
		return jsondsl.Object(), nil
	case "array":
		if p.Items == nil {
			return jsondsl.Array(), nil
		}
		inner, err := coercerFor(*p.Items)
		if err != nil {
			return nil, err
		}
		return jsondsl.ArrayOf(inner), nil
	default:
		return nil, fmt.Errorf("specyaml: parameter %q has unknown type %q", p.Name, p.Type)
	}
}

func declareGroup(b *jsondsl.Builder, g GroupConstraint) error {
	switch g.Kind {
	case "mutually_exclusive":
		b.MutuallyExclusive(g.Keys...)
	case "exactly_one_of":
		b.ExactlyOneOf(g.Keys...)
	case "at_least_one_of":
		b.AtLeastOneOf(g.Keys...)
	default:
		return fmt.Errorf("specyaml: unknown group constraint kind %q", g.Kind)
	}
	return nil
}
