// Binary paramcheck validates a JSON document against a parameter
// specification loaded from a YAML parameter-set file or a JSON
// Schema document.
//
// Usage:
//
//	paramcheck [flags] <document.json>
//
// Flags:
//
//	-spec    path to a YAML parameter-set file
//	-schema  path to a JSON Schema file (mutually exclusive with -spec)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/bitop-dev/jsondsl/jsondsl"
	"github.com/bitop-dev/jsondsl/schemaimport"
	"github.com/bitop-dev/jsondsl/specyaml"
)

func main() {
	specPath := flag.String("spec", "", "path to a YAML parameter-set file")
	schemaPath := flag.String("schema", "", "path to a JSON Schema file")
	flag.Parse()

	if (*specPath == "") == (*schemaPath == "") {
		fatalf("exactly one of -spec or -schema is required")
	}
	if flag.NArg() != 1 {
		fatalf("usage: paramcheck [-spec file.yaml | -schema file.json] <document.json>")
	}

	builder, err := loadBuilder(*specPath, *schemaPath)
	if err != nil {
		fatalf("%v", err)
	}
	params, err := builder.Build()
	if err != nil {
		fatalf("build parameter set: %v", err)
	}

	docBytes, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fatalf("read document: %v", err)
	}
	obj, err := jsondsl.DecodeJSON(docBytes)
	if err != nil {
		fatalf("decode document: %v", err)
	}

	report := params.Process(obj)
	if report.OK() {
		out, err := jsondsl.Marshal(obj)
		if err != nil {
			fatalf("marshal result: %v", err)
		}
		fmt.Printf("ok  correlation_id=%s\n%s\n", report.CorrelationID, out)
		return
	}

	fmt.Fprintf(os.Stderr, "invalid  correlation_id=%s\n", report.ShortID())
	for _, e := range report.Errors {
		fmt.Fprintf(os.Stderr, "  %-20s %s", e.Kind, e.Path)
		if e.Detail != "" {
			fmt.Fprintf(os.Stderr, "  %s", e.Detail)
		}
		fmt.Fprintln(os.Stderr)
	}
	os.Exit(1)
}

func loadBuilder(specPath, schemaPath string) (*jsondsl.Builder, error) {
	if specPath != "" {
		data, err := os.ReadFile(specPath)
		if err != nil {
			return nil, fmt.Errorf("read spec: %w", err)
		}
		return specyaml.Load(data)
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return schemaimport.FromJSONSchema(data)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal: "+format+"\n", args...)
	os.Exit(1)
}
