package jsondsl

// GroupValidator is a cross-field constraint evaluated over the
// enclosing object after every parameter has been processed.
type GroupValidator interface {
	Validate(obj map[string]any, path string) []Error
}

func present(obj map[string]any, keys []string) int {
	n := 0
	for _, k := range keys {
		if _, ok := obj[k]; ok {
			n++
		}
	}
	return n
}

type mutuallyExclusiveValidator struct{ keys []string }

// MutuallyExclusive returns a GroupValidator that errs when more than
// one of keys is present in the enclosing object.
func MutuallyExclusive(keys ...string) GroupValidator {
	return mutuallyExclusiveValidator{keys: keys}
}

func (v mutuallyExclusiveValidator) Validate(obj map[string]any, path string) []Error {
	if present(obj, v.keys) > 1 {
		return []Error{{Kind: KindMutuallyExclusive, Path: path, Params: v.keys}}
	}
	return nil
}

type exactlyOneOfValidator struct{ keys []string }

// ExactlyOneOf returns a GroupValidator that errs unless exactly one
// of keys is present in the enclosing object.
func ExactlyOneOf(keys ...string) GroupValidator {
	return exactlyOneOfValidator{keys: keys}
}

func (v exactlyOneOfValidator) Validate(obj map[string]any, path string) []Error {
	if present(obj, v.keys) != 1 {
		return []Error{{Kind: KindExactlyOne, Path: path, Params: v.keys}}
	}
	return nil
}

type atLeastOneOfValidator struct{ keys []string }

// AtLeastOneOf returns a GroupValidator that errs when none of keys
// is present in the enclosing object.
func AtLeastOneOf(keys ...string) GroupValidator {
	return atLeastOneOfValidator{keys: keys}
}

func (v atLeastOneOfValidator) Validate(obj map[string]any, path string) []Error {
	if present(obj, v.keys) == 0 {
		return []Error{{Kind: KindAtLeastOne, Path: path, Params: v.keys}}
	}
	return nil
}

// GroupValidatorFunc adapts a plain function to GroupValidator, for
// custom group-level predicates built with Builder.ValidateWith.
type GroupValidatorFunc func(obj map[string]any, path string) []Error

func (f GroupValidatorFunc) Validate(obj map[string]any, path string) []Error {
	return f(obj, path)
}
