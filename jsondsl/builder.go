package jsondsl

import "fmt"

// Builder fluently constructs an immutable ParameterSet. A zero-value
// Builder is usable; prefer NewBuilder for clarity.
type Builder struct {
	params []*Parameter
	groups []GroupValidator
	names  map[string]struct{}
	err    error
}

// NewBuilder returns an empty Builder ready for req*/opt* calls.
func NewBuilder() *Builder {
	return &Builder{names: make(map[string]struct{})}
}

func (b *Builder) addParam(name string, required bool) *Parameter {
	if b.names == nil {
		b.names = make(map[string]struct{})
	}
	if _, dup := b.names[name]; dup && b.err == nil {
		b.err = fmt.Errorf("jsondsl: duplicate parameter name %q", name)
	}
	b.names[name] = struct{}{}
	p := &Parameter{Name: name, Required: required}
	b.params = append(b.params, p)
	return p
}

// ReqDefined declares a required parameter with no coercion.
func (b *Builder) ReqDefined(name string) *Builder {
	b.addParam(name, true)
	return b
}

// OptDefined declares an optional parameter with no coercion.
func (b *Builder) OptDefined(name string) *Builder {
	b.addParam(name, false)
	return b
}

// ReqTyped declares a required parameter coerced with c.
func (b *Builder) ReqTyped(name string, c Coercer) *Builder {
	b.addParam(name, true).Coercer = c
	return b
}

// OptTyped declares an optional parameter coerced with c.
func (b *Builder) OptTyped(name string, c Coercer) *Builder {
	b.addParam(name, false).Coercer = c
	return b
}

// ReqNested declares a required parameter coerced with c (normally
// Object() or an Array()/ArrayOf variant) whose coerced value — or
// each object element of it, if it is an array — is then validated
// against the ParameterSet built by configure.
func (b *Builder) ReqNested(name string, c Coercer, configure func(*Builder)) *Builder {
	return b.nested(name, true, c, configure)
}

// OptNested is the optional counterpart of ReqNested.
func (b *Builder) OptNested(name string, c Coercer, configure func(*Builder)) *Builder {
	return b.nested(name, false, c, configure)
}

func (b *Builder) nested(name string, required bool, c Coercer, configure func(*Builder)) *Builder {
	p := b.addParam(name, required)
	p.Coercer = c
	nb := NewBuilder()
	configure(nb)
	nested, err := nb.Build()
	if err != nil && b.err == nil {
		b.err = err
	}
	p.Nested = nested
	return b
}

// ParamBuilder fine-tunes a single Parameter inside a Req/Opt
// configure closure: coercion, default, null policy, and validators.
type ParamBuilder struct {
	param *Parameter
}

// Coerce sets the parameter's Coercer.
func (pb *ParamBuilder) Coerce(c Coercer) *ParamBuilder {
	pb.param.Coercer = c
	return pb
}

// Nested attaches a sub-ParameterSet, applied after coercion to an
// object value or to each object element of an array value.
func (pb *ParamBuilder) Nested(configure func(*Builder)) *ParamBuilder {
	nb := NewBuilder()
	configure(nb)
	nested, err := nb.Build()
	if err == nil {
		pb.param.Nested = nested
	}
	return pb
}

// Default sets the value injected when the parameter is absent.
func (pb *ParamBuilder) Default(v any) *ParamBuilder {
	pb.param.Default = v
	pb.param.HasDefault = true
	return pb
}

// AllowNull permits an explicit JSON null for this parameter,
// skipping coercion and validators when present.
func (pb *ParamBuilder) AllowNull() *ParamBuilder {
	pb.param.AllowNull = true
	return pb
}

// AllowValues restricts the coerced value to one of vals
// (deep-equality).
func (pb *ParamBuilder) AllowValues(vals ...any) *ParamBuilder {
	pb.param.AllowValues = vals
	return pb
}

// RejectValues forbids the coerced value from deep-equaling any of
// vals.
func (pb *ParamBuilder) RejectValues(vals ...any) *ParamBuilder {
	pb.param.RejectValues = vals
	return pb
}

// Regex requires the coerced value to be a string that fully matches
// re. A non-string value always errors WrongType, never attempting a
// match.
func (pb *ParamBuilder) Regex(re Regexp) *ParamBuilder {
	pb.param.Regex = re
	return pb
}

// ValidateWith appends a custom validator, run after the built-in
// allow/reject/regex checks in insertion order.
func (pb *ParamBuilder) ValidateWith(fn ParamValidator) *ParamBuilder {
	pb.param.Validators = append(pb.param.Validators, fn)
	return pb
}

// Req declares a required parameter configured by fn.
func (b *Builder) Req(name string, configure func(*ParamBuilder)) *Builder {
	p := b.addParam(name, true)
	configure(&ParamBuilder{param: p})
	return b
}

// Opt declares an optional parameter configured by fn.
func (b *Builder) Opt(name string, configure func(*ParamBuilder)) *Builder {
	p := b.addParam(name, false)
	configure(&ParamBuilder{param: p})
	return b
}

// MutuallyExclusive declares a group constraint: at most one of keys
// may be present.
func (b *Builder) MutuallyExclusive(keys ...string) *Builder {
	b.groups = append(b.groups, MutuallyExclusive(keys...))
	return b
}

// ExactlyOneOf declares a group constraint: exactly one of keys must
// be present.
func (b *Builder) ExactlyOneOf(keys ...string) *Builder {
	b.groups = append(b.groups, ExactlyOneOf(keys...))
	return b
}

// AtLeastOneOf declares a group constraint: at least one of keys must
// be present.
func (b *Builder) AtLeastOneOf(keys ...string) *Builder {
	b.groups = append(b.groups, AtLeastOneOf(keys...))
	return b
}

// ValidateWith declares a custom group-level validator, evaluated
// over the enclosing object after all per-field processing.
func (b *Builder) ValidateWith(fn func(obj map[string]any, path string) []Error) *Builder {
	b.groups = append(b.groups, GroupValidatorFunc(fn))
	return b
}

// Build finalizes the Builder into an immutable ParameterSet. It
// returns an error if two parameters share a name, or if an error was
// recorded while building a nested ParameterSet.
func (b *Builder) Build() (*ParameterSet, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &ParameterSet{Parameters: b.params, Groups: b.groups}, nil
}

// MustBuild is Build but panics instead of returning an error.
func (b *Builder) MustBuild() *ParameterSet {
	ps, err := b.Build()
	if err != nil {
		panic(err)
	}
	return ps
}

// Describe returns a short one-line-per-parameter summary (name,
// required/optional, primitive type) for debugging. It never
// triggers validation.
func (b *Builder) Describe() string {
	out := ""
	for _, p := range b.params {
		presence := "optional"
		if p.Required {
			presence = "required"
		}
		typ := "untyped"
		if p.Coercer != nil {
			typ = p.Coercer.PrimitiveType().String()
		}
		out += fmt.Sprintf("%s: %s (%s)\n", p.Name, presence, typ)
	}
	return out
}

// Build is a convenience function equivalent to building a fresh
// Builder via configure then calling Build.
func Build(configure func(*Builder)) (*ParameterSet, error) {
	b := NewBuilder()
	configure(b)
	return b.Build()
}

// MustBuildSet is Build but panics instead of returning an error.
func MustBuildSet(configure func(*Builder)) *ParameterSet {
	ps, err := Build(configure)
	if err != nil {
		panic(err)
	}
	return ps
}
