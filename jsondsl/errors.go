package jsondsl

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrorKind identifies the semantic category of a validation failure.
// The well-known kinds below cover everything the core engine emits;
// custom validators (validate_with) are free to define their own
// kind constants for errors they return.
type ErrorKind string

const (
	KindRequired          ErrorKind = "required"
	KindWrongType         ErrorKind = "wrong_type"
	KindWrongValue        ErrorKind = "wrong_value"
	KindMutuallyExclusive ErrorKind = "mutually_exclusive"
	KindExactlyOne        ErrorKind = "exactly_one"
	KindAtLeastOne        ErrorKind = "at_least_one"
)

// Error is a single structured validation failure. Kind carries the
// semantic meaning; Detail is an optional short human-readable
// string. Params is populated only for the three group-constraint
// kinds and holds the keys the constraint was evaluated over.
type Error struct {
	Kind   ErrorKind
	Path   string
	Detail string
	Params []string
}

func (e Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Detail)
}

// Report is the ordered list of errors produced by applying a
// ParameterSet to a JSON value. A report is returned regardless of
// error count; the caller decides whether a non-empty report
// constitutes failure.
type Report struct {
	// CorrelationID is a random per-call token for log correlation.
	// It carries no validation semantics and is not part of the
	// equality of two otherwise-identical reports.
	CorrelationID string
	Errors        []Error
}

func newReport() *Report {
	return &Report{CorrelationID: uuid.New().String()}
}

func (r *Report) add(errs ...Error) {
	r.Errors = append(r.Errors, errs...)
}

// OK reports whether the report contains no errors.
func (r *Report) OK() bool {
	return len(r.Errors) == 0
}

// ShortID returns the first 8 characters of CorrelationID, for
// compact log tags where the full UUID would be noise.
func (r *Report) ShortID() string {
	if len(r.CorrelationID) < 8 {
		return r.CorrelationID
	}
	return r.CorrelationID[:8]
}

// ByKind returns the subset of errors with the given kind, in the
// order they were recorded.
func (r *Report) ByKind(kind ErrorKind) []Error {
	var out []Error
	for _, e := range r.Errors {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// AsError adapts the report to a single Go error for callers that
// want fail-fast semantics at their own boundary. Returns nil when
// the report is empty.
func (r *Report) AsError() error {
	if r.OK() {
		return nil
	}
	return r
}

// Error implements the error interface so *Report can be returned
// from AsError and used anywhere a plain error is expected.
func (r *Report) Error() string {
	if r.OK() {
		return ""
	}
	parts := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

// joinPath appends a segment to a parent JSON-pointer-style path.
func joinPath(parent, segment string) string {
	return parent + "/" + segment
}

// groupPath renders the enclosing path for group-validator errors:
// the literal root is "/" rather than "".
func groupPath(enclosing string) string {
	if enclosing == "" {
		return "/"
	}
	return enclosing
}
