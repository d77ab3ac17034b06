// Package schemaimport builds a jsondsl.Builder from a JSON Schema
// document. It treats github.com/santhosh-tekuri/jsonschema/v6 as an
// external collaborator purely for schema well-formedness: the
// compiler decides whether the schema document itself is valid JSON
// Schema, and this package never reimplements schema validation
// semantics. The walk that follows only inspects the schema's own
// decoded JSON to emit equivalent jsondsl.Builder calls.
package schemaimport

import (
	"bytes"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/bitop-dev/jsondsl/jsondsl"
)

// Importer builds jsondsl.Builders from JSON Schema documents. Its
// Logger, if set, receives a debug line for every property whose
// schema type is absent or unrecognized and therefore falls back to
// a permissive string coercer.
type Importer struct {
	Logger *slog.Logger
}

// NewImporter returns an Importer that logs fallbacks to logger. A
// nil logger is replaced with slog.Default().
func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{Logger: logger}
}

// FromJSONSchema compiles schemaBytes with the jsonschema/v6 compiler
// to confirm it is well-formed JSON Schema, then walks its decoded
// document to build an equivalent jsondsl.Builder. A schema that does
// not compile is reported as an error rather than silently skipped.
func FromJSONSchema(schemaBytes []byte) (*jsondsl.Builder, error) {
	return NewImporter(nil).FromJSONSchema(schemaBytes)
}

// FromJSONSchema is the Importer method form of the package-level
// function, logging type fallbacks through i.Logger.
func (i *Importer) FromJSONSchema(schemaBytes []byte) (*jsondsl.Builder, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
	if err != nil {
		return nil, fmt.Errorf("schemaimport: unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	const url = "mem://schemaimport/schema"
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("schemaimport: add schema resource: %w", err)
	}
	if _, err := c.Compile(url); err != nil {
		return nil, fmt.Errorf("schemaimport: schema does not compile: %w", err)
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schemaimport: root schema value must be a JSON object")
	}

	b := jsondsl.NewBuilder()
	i.walkObjectSchema(b, root)
	return b, nil
}

// walkObjectSchema reads the "properties" and "required" keywords of
// an object schema and declares one jsondsl parameter per property.
func (i *Importer) walkObjectSchema(b *jsondsl.Builder, schema map[string]any) {
	required := stringSet(schema["required"])
	properties, _ := schema["properties"].(map[string]any)

	for name, rawProp := range properties {
		prop, ok := rawProp.(map[string]any)
		if !ok {
			continue
		}
		i.declareProperty(b, name, required[name], prop)
	}
}

func (i *Importer) declareProperty(b *jsondsl.Builder, name string, required bool, prop map[string]any) {
	coercer, nestedObject, nestedArrayOfObject := i.coercerForSchema(name, prop)

	switch {
	case nestedObject:
		nest := func(sub *jsondsl.Builder) { i.walkObjectSchema(sub, prop) }
		if required {
			b.ReqNested(name, coercer, nest)
		} else {
			b.OptNested(name, coercer, nest)
		}
		return
	case nestedArrayOfObject:
		items, _ := prop["items"].(map[string]any)
		nest := func(sub *jsondsl.Builder) { i.walkObjectSchema(sub, items) }
		if required {
			b.ReqNested(name, coercer, nest)
		} else {
			b.OptNested(name, coercer, nest)
		}
		return
	}

	if enumValues, ok := prop["enum"].([]any); ok && len(enumValues) > 0 {
		configure := func(pb *jsondsl.ParamBuilder) {
			pb.Coerce(coercer).AllowValues(enumValues...)
		}
		if required {
			b.Req(name, configure)
		} else {
			b.Opt(name, configure)
		}
		return
	}

	if pattern, ok := prop["pattern"].(string); ok && pattern != "" {
		if re, err := regexp.Compile(pattern); err == nil {
			configure := func(pb *jsondsl.ParamBuilder) {
				pb.Coerce(coercer).Regex(re)
			}
			if required {
				b.Req(name, configure)
			} else {
				b.Opt(name, configure)
			}
			return
		} else if i.Logger != nil {
			i.Logger.Debug("schemaimport: skipping unparsable pattern",
				"property", name, "pattern", pattern, "error", err)
		}
	}

	if required {
		b.ReqTyped(name, coercer)
	} else {
		b.OptTyped(name, coercer)
	}
}

// coercerForSchema maps a JSON Schema "type" keyword (and "items" for
// arrays) to a jsondsl.Coercer. Unknown or absent types fall back to
// a string coercer; the fallback is logged at debug level since it
// silently narrows what the imported ParameterSet will accept.
func (i *Importer) coercerForSchema(name string, prop map[string]any) (c jsondsl.Coercer, nestedObject bool, nestedArrayOfObject bool) {
	typ, _ := prop["type"].(string)
	switch typ {
	case "integer":
		return jsondsl.I64(), false, false
	case "number":
		return jsondsl.F64(), false, false
	case "boolean":
		return jsondsl.Boolean(), false, false
	case "null":
		return jsondsl.Null(), false, false
	case "object":
		return jsondsl.Object(), true, false
	case "array":
		items, _ := prop["items"].(map[string]any)
		if items == nil {
			return jsondsl.Array(), false, false
		}
		itemType, _ := items["type"].(string)
		if itemType == "object" {
			return jsondsl.Array(), false, true
		}
		itemCoercer, _, _ := i.coercerForSchema(name, items)
		return jsondsl.ArrayOf(itemCoercer), false, false
	case "string":
		return jsondsl.String(), false, false
	default:
		if i.Logger != nil {
			i.Logger.Debug("schemaimport: falling back to string coercer for unrecognized schema type",
				"property", name, "type", typ)
		}
		return jsondsl.String(), false, false
	}
}

func stringSet(v any) map[string]bool {
	out := make(map[string]bool)
	list, _ := v.([]any)
	for _, e := range list {
		if s, ok := e.(string); ok {
			out[s] = true
		}
	}
	return out
}
