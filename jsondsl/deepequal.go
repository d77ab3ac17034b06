package jsondsl

// deepEqual compares two JSON-shaped values for semantic equality.
// Numeric values are compared across kinds (1, 1.0, "would not" —
// strings are never treated as numbers here) so a declared
// allow_values/reject_values literal written as an int in Go code
// still matches a float64 decoded from JSON text.
func deepEqual(a, b any) bool {
	if ak, ai, au, af := classifyNumber(a); ak != notNumber {
		bk, bi, bu, bf := classifyNumber(b)
		if bk == notNumber {
			return false
		}
		return numericEqual(ak, ai, au, af, bk, bi, bu, bf)
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !deepEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !deepEqual(v, bvv) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

func numericEqual(ak numKind, ai int64, au uint64, af float64, bk numKind, bi int64, bu uint64, bf float64) bool {
	toFloat := func(k numKind, i int64, u uint64, f float64) float64 {
		switch k {
		case intKind:
			return float64(i)
		case uintKind:
			return float64(u)
		default:
			return f
		}
	}
	if ak == intKind && bk == intKind {
		return ai == bi
	}
	if ak == uintKind && bk == uintKind {
		return au == bu
	}
	return toFloat(ak, ai, au, af) == toFloat(bk, bi, bu, bf)
}
