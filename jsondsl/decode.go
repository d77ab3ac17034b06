package jsondsl

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrNotObject is returned by DecodeJSON when the document's root
// value is not a JSON object.
var ErrNotObject = errors.New("jsondsl: root JSON value is not an object")

// DecodeJSON decodes a JSON object document into the map[string]any
// representation this package operates on, with numbers classified
// as int64, uint64, or float64 (rather than encoding/json's default
// of collapsing every number to float64). This preserves the
// signed/unsigned/float source distinction so that, for example, an
// already-integral input is recognized as "already of the correct
// shape" by I64Coercer instead of being treated as a float that
// merely happens to have no fractional part.
func DecodeJSON(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	normalized := normalize(raw)
	obj, ok := normalized.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return obj, nil
}

func normalize(v any) any {
	switch val := v.(type) {
	case json.Number:
		kind, i, u, f := classifyNumber(val)
		switch kind {
		case intKind:
			return i
		case uintKind:
			return u
		default:
			return f
		}
	case map[string]any:
		for k, e := range val {
			val[k] = normalize(e)
		}
		return val
	case []any:
		for i, e := range val {
			val[i] = normalize(e)
		}
		return val
	default:
		return v
	}
}

// Marshal serializes value (normally the map[string]any produced by
// DecodeJSON and mutated by Process) back to compact JSON text.
func Marshal(value any) ([]byte, error) {
	return json.Marshal(value)
}
