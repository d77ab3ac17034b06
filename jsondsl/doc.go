// Package jsondsl validates and normalizes JSON-shaped input against a
// declaratively-built parameter specification.
//
// Callers describe the expected shape of an input document with a
// [Builder] — which keys are required, which are optional, what
// primitive type each must be, which nested sub-shapes apply, and
// which cross-field constraints hold — then build an immutable
// [ParameterSet] and apply it to concrete JSON values with
// [ParameterSet.Process]. Processing both mutates the input in place
// to coerce compatible representations (the string "1" becomes the
// number 1 when an integer is expected) and returns a [Report]
// describing every validation failure found, each tagged with a
// JSON-pointer-style path.
//
// A built ParameterSet is immutable and safe for concurrent use by
// many goroutines; Process mutates only the map passed to it.
package jsondsl
