package jsondsl

import "strconv"

// ParamValidator is a predicate over a single parameter's value,
// invoked with strict reporting whether the enclosing ParameterSet
// was built in strict mode (reserved for callers; the core engine
// always passes false).
type ParamValidator func(value any, path string, strict bool) []Error

// Parameter describes one named field within a ParameterSet: its
// coercion, presence/default policy, null handling, and the
// validators applied to its value.
type Parameter struct {
	Name         string
	Coercer      Coercer
	Nested       *ParameterSet
	Required     bool
	Default      any
	HasDefault   bool
	AllowNull    bool
	Validators   []ParamValidator
	AllowValues  []any
	RejectValues []any
	Regex        Regexp
}

// Regexp is the interface accepted for Parameter.Regex; satisfied by
// *regexp.Regexp. Matching uses only FindStringIndex.
type Regexp interface {
	MatchString(s string) bool
	FindStringIndex(s string) []int
}

// apply runs the full per-field pipeline against obj — presence and
// default resolution, null handling, coercion, nested recursion, then
// validators — appending any errors to report. enclosingPath is the
// JSON-pointer path of obj itself ("" at the document root).
func (p *Parameter) apply(obj map[string]any, enclosingPath string, report *Report) {
	path := joinPath(enclosingPath, p.Name)

	value, present := obj[p.Name]
	if !present {
		switch {
		case p.Required:
			report.add(Error{Kind: KindRequired, Path: path})
			return
		case p.HasDefault:
			obj[p.Name] = p.Default
			value = p.Default
		default:
			return
		}
	}

	if value == nil {
		if p.AllowNull {
			return
		}
		report.add(Error{Kind: KindWrongType, Path: path, Detail: "coercion of null value to non-nullable field not allowed"})
		return
	}

	if p.Coercer != nil {
		repl, replaced, errs := p.Coercer.Coerce(value, path)
		if len(errs) > 0 {
			report.add(errs...)
			return
		}
		if replaced {
			obj[p.Name] = repl
			value = repl
		}
	}

	if p.Nested != nil {
		switch v := value.(type) {
		case map[string]any:
			p.Nested.process(v, path, report)
		case []any:
			for i, elem := range v {
				if em, ok := elem.(map[string]any); ok {
					p.Nested.process(em, joinPath(path, strconv.Itoa(i)), report)
				}
			}
		}
	}

	p.runValidators(value, path, report)
}

func (p *Parameter) runValidators(value any, path string, report *Report) {
	if len(p.AllowValues) > 0 {
		if !anyDeepEqual(p.AllowValues, value) {
			report.add(Error{Kind: KindWrongValue, Path: path, Detail: "value is not in the list of allowed values"})
		}
	}
	if len(p.RejectValues) > 0 {
		if anyDeepEqual(p.RejectValues, value) {
			report.add(Error{Kind: KindWrongValue, Path: path, Detail: "value is in the list of rejected values"})
		}
	}
	if p.Regex != nil {
		s, ok := value.(string)
		if !ok {
			report.add(Error{Kind: KindWrongType, Path: path, Detail: "regex validator requires a string value"})
		} else if !fullMatch(p.Regex, s) {
			report.add(Error{Kind: KindWrongValue, Path: path, Detail: "value does not match the required pattern"})
		}
	}
	for _, v := range p.Validators {
		report.add(v(value, path, false)...)
	}
}

func fullMatch(re Regexp, s string) bool {
	loc := re.FindStringIndex(s)
	return loc != nil && loc[0] == 0 && loc[1] == len(s)
}

func anyDeepEqual(list []any, value any) bool {
	for _, v := range list {
		if deepEqual(v, value) {
			return true
		}
	}
	return false
}
