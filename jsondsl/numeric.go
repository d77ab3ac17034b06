package jsondsl

import (
	"encoding/json"
	"strconv"
)

// numKind classifies which of the three numeric primitive types a Go
// value represents, so coercers can tell an already-int64 value from
// one that merely happens to convert cleanly: a value already in the
// declared shape is left untouched rather than rewritten in place.
type numKind int

const (
	notNumber numKind = iota
	intKind
	uintKind
	floatKind
)

// classifyNumber inspects v and, if it is any of the numeric
// representations the package accepts (native Go integers/floats or
// json.Number from a decoder with UseNumber), returns its kind plus
// the value widened to int64/uint64/float64 as appropriate.
func classifyNumber(v any) (kind numKind, i int64, u uint64, f float64) {
	switch n := v.(type) {
	case int:
		return intKind, int64(n), 0, 0
	case int8:
		return intKind, int64(n), 0, 0
	case int16:
		return intKind, int64(n), 0, 0
	case int32:
		return intKind, int64(n), 0, 0
	case int64:
		return intKind, n, 0, 0
	case uint:
		return uintKind, 0, uint64(n), 0
	case uint8:
		return uintKind, 0, uint64(n), 0
	case uint16:
		return uintKind, 0, uint64(n), 0
	case uint32:
		return uintKind, 0, uint64(n), 0
	case uint64:
		return uintKind, 0, n, 0
	case float32:
		return floatKind, 0, 0, float64(n)
	case float64:
		return floatKind, 0, 0, n
	case json.Number:
		if iv, err := n.Int64(); err == nil {
			return intKind, iv, 0, 0
		}
		if uv, err := strconv.ParseUint(string(n), 10, 64); err == nil {
			return uintKind, 0, uv, 0
		}
		if fv, err := n.Float64(); err == nil {
			return floatKind, 0, 0, fv
		}
	}
	return notNumber, 0, 0, 0
}
