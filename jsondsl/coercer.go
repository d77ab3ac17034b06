package jsondsl

import "strconv"

// PrimitiveType is the closed set of JSON-value shapes a Coercer can
// target. File is reserved for future use and unused by the core
// engine.
type PrimitiveType int

const (
	TypeString PrimitiveType = iota
	TypeI64
	TypeU64
	TypeF64
	TypeBoolean
	TypeNull
	TypeArray
	TypeObject
	TypeFile
)

func (t PrimitiveType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeI64:
		return "i64"
	case TypeU64:
		return "u64"
	case TypeF64:
		return "f64"
	case TypeBoolean:
		return "boolean"
	case TypeNull:
		return "null"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeFile:
		return "file"
	default:
		return "unknown"
	}
}

// Coercer normalizes a single JSON value to a declared primitive
// type. Coerce reports whether value already matched (replaced ==
// false) or returns a replacement value (replaced == true); any
// non-empty errs means value could not be coerced at all, and the
// caller must not use replacement.
type Coercer interface {
	PrimitiveType() PrimitiveType
	Coerce(value any, path string) (replacement any, replaced bool, errs []Error)
}

func wrongType(path, detail string) []Error {
	return []Error{{Kind: KindWrongType, Path: path, Detail: detail}}
}

// StringCoercer accepts strings as-is and formats any number to its
// canonical base-10 string representation.
type StringCoercer struct{}

func (StringCoercer) PrimitiveType() PrimitiveType { return TypeString }

func (StringCoercer) Coerce(value any, path string) (any, bool, []Error) {
	if _, ok := value.(string); ok {
		return nil, false, nil
	}
	if kind, i, u, f := classifyNumber(value); kind != notNumber {
		return formatNumber(kind, i, u, f), true, nil
	}
	return nil, false, wrongType(path, "can't coerce value to string")
}

func formatNumber(kind numKind, i int64, u uint64, f float64) string {
	switch kind {
	case intKind:
		return strconv.FormatInt(i, 10)
	case uintKind:
		return strconv.FormatUint(u, 10)
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

// I64Coercer accepts int64 as-is, widens u64/f64 with an unchecked Go
// conversion (u64 casts, f64 truncates toward zero), and parses
// base-10 numeric strings. Overflow on cast from u64 or f64 is
// unchecked — see DESIGN.md.
type I64Coercer struct{}

func (I64Coercer) PrimitiveType() PrimitiveType { return TypeI64 }

func (I64Coercer) Coerce(value any, path string) (any, bool, []Error) {
	switch kind, i, u, f := classifyNumber(value); kind {
	case intKind:
		return nil, false, nil
	case uintKind:
		return int64(u), true, nil
	case floatKind:
		return int64(f), true, nil
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, false, wrongType(path, "can't coerce string value to i64")
		}
		return n, true, nil
	}
	return nil, false, wrongType(path, "can't coerce value to i64")
}

// U64Coercer accepts u64 as-is, widens i64/f64 with an unchecked Go
// conversion, and parses base-10 numeric strings.
type U64Coercer struct{}

func (U64Coercer) PrimitiveType() PrimitiveType { return TypeU64 }

func (U64Coercer) Coerce(value any, path string) (any, bool, []Error) {
	switch kind, i, u, f := classifyNumber(value); kind {
	case uintKind:
		return nil, false, nil
	case intKind:
		return uint64(i), true, nil
	case floatKind:
		return uint64(f), true, nil
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, false, wrongType(path, "can't coerce string value to u64")
		}
		return n, true, nil
	}
	return nil, false, wrongType(path, "can't coerce value to u64")
}

// F64Coercer accepts f64 as-is, widens i64/u64 with an unchecked Go
// conversion, and parses base-10 numeric strings.
type F64Coercer struct{}

func (F64Coercer) PrimitiveType() PrimitiveType { return TypeF64 }

func (F64Coercer) Coerce(value any, path string) (any, bool, []Error) {
	switch kind, i, u, f := classifyNumber(value); kind {
	case floatKind:
		return nil, false, nil
	case intKind:
		return float64(i), true, nil
	case uintKind:
		return float64(u), true, nil
	}
	if s, ok := value.(string); ok {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false, wrongType(path, "can't coerce string value to f64")
		}
		return n, true, nil
	}
	return nil, false, wrongType(path, "can't coerce value to f64")
}

// BooleanCoercer accepts bool as-is and the literal strings "true"
// and "false".
type BooleanCoercer struct{}

func (BooleanCoercer) PrimitiveType() PrimitiveType { return TypeBoolean }

func (BooleanCoercer) Coerce(value any, path string) (any, bool, []Error) {
	if _, ok := value.(bool); ok {
		return nil, false, nil
	}
	if s, ok := value.(string); ok {
		switch s {
		case "true":
			return true, true, nil
		case "false":
			return false, true, nil
		}
		return nil, false, wrongType(path, "can't coerce this string value to boolean, correct values are 'true' and 'false'")
	}
	return nil, false, wrongType(path, "can't coerce value to boolean")
}

// NullCoercer accepts JSON null as-is and, surprisingly but by
// design (see DESIGN.md's Open Question resolution), treats the
// empty string as null. Every other value is an error.
type NullCoercer struct{}

func (NullCoercer) PrimitiveType() PrimitiveType { return TypeNull }

func (NullCoercer) Coerce(value any, path string) (any, bool, []Error) {
	if value == nil {
		return nil, false, nil
	}
	if s, ok := value.(string); ok {
		if s == "" {
			return nil, true, nil
		}
		return nil, false, wrongType(path, "can't coerce this string value to null, the only correct value is the empty string")
	}
	return nil, false, wrongType(path, "can't coerce value to null")
}

// ObjectCoercer only asserts that value is a JSON object; it never
// replaces the value.
type ObjectCoercer struct{}

func (ObjectCoercer) PrimitiveType() PrimitiveType { return TypeObject }

func (ObjectCoercer) Coerce(value any, path string) (any, bool, []Error) {
	if _, ok := value.(map[string]any); ok {
		return nil, false, nil
	}
	return nil, false, wrongType(path, "can't coerce non-object value to the object type")
}

// ArrayCoercer asserts that value is a JSON array and, when Sub is
// set, coerces every element in place with Sub. Element errors are
// accumulated: every element is visited regardless of earlier
// failures.
type ArrayCoercer struct {
	Sub Coercer
}

func (ArrayCoercer) PrimitiveType() PrimitiveType { return TypeArray }

func (c ArrayCoercer) Coerce(value any, path string) (any, bool, []Error) {
	arr, ok := value.([]any)
	if !ok {
		return nil, false, wrongType(path, "can't coerce non-array value to the array type")
	}
	if c.Sub == nil {
		return nil, false, nil
	}

	var errs []Error
	for i, elem := range arr {
		itemPath := joinPath(path, strconv.Itoa(i))
		repl, replaced, elemErrs := c.Sub.Coerce(elem, itemPath)
		if len(elemErrs) > 0 {
			errs = append(errs, elemErrs...)
			continue
		}
		if replaced {
			arr[i] = repl
		}
	}
	if len(errs) > 0 {
		return nil, false, errs
	}
	return nil, false, nil
}

// String returns a Coercer that accepts strings and string-formats
// any number.
func String() Coercer { return StringCoercer{} }

// I64 returns a Coercer for signed 64-bit integers.
func I64() Coercer { return I64Coercer{} }

// U64 returns a Coercer for unsigned 64-bit integers.
func U64() Coercer { return U64Coercer{} }

// F64 returns a Coercer for 64-bit floats.
func F64() Coercer { return F64Coercer{} }

// Boolean returns a Coercer for JSON booleans.
func Boolean() Coercer { return BooleanCoercer{} }

// Null returns a Coercer for JSON null (plus the empty string).
func Null() Coercer { return NullCoercer{} }

// Array returns a Coercer that only asserts a JSON array shape.
func Array() Coercer { return ArrayCoercer{} }

// ArrayOf returns a Coercer that asserts a JSON array shape and
// coerces every element with inner.
func ArrayOf(inner Coercer) Coercer { return ArrayCoercer{Sub: inner} }

// Object returns a Coercer that only asserts a JSON object shape.
func Object() Coercer { return ObjectCoercer{} }
