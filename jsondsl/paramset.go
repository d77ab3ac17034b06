package jsondsl

// ParameterSet is an ordered collection of Parameters plus group
// constraints describing an expected JSON object shape. It is built
// once by a Builder and is immutable and safe for concurrent use
// thereafter; Process mutates only the map passed to it.
type ParameterSet struct {
	Parameters []*Parameter
	Groups     []GroupValidator
}

// Process applies the ParameterSet to value, mutating it in place
// wherever coercion or default injection applies, and returns the
// full Validation Report. value is expected to be a JSON object
// (map[string]any); any other shape produces a single WrongType
// error at the root path "/".
func (ps *ParameterSet) Process(value any) *Report {
	report := newReport()
	obj, ok := value.(map[string]any)
	if !ok {
		report.add(Error{Kind: KindWrongType, Path: "/", Detail: "input must be a JSON object"})
		return report
	}
	ps.process(obj, "", report)
	return report
}

// process runs the declared parameters and group validators against
// obj, whose own JSON-pointer path is enclosingPath.
func (ps *ParameterSet) process(obj map[string]any, enclosingPath string, report *Report) {
	for _, p := range ps.Parameters {
		p.apply(obj, enclosingPath, report)
	}
	path := groupPath(enclosingPath)
	for _, g := range ps.Groups {
		report.add(g.Validate(obj, path)...)
	}
}
