package jsondsl_test

import (
	"regexp"
	"testing"

	"github.com/bitop-dev/jsondsl/jsondsl"
)

// assertProcessed runs params against the JSON text in, asserts the
// report is empty, and asserts the mutated document serializes back
// to the JSON text want.
func assertProcessed(t *testing.T, params *jsondsl.ParameterSet, in, want string) {
	t.Helper()
	obj, err := jsondsl.DecodeJSON([]byte(in))
	if err != nil {
		t.Fatalf("decode %q: %v", in, err)
	}
	report := params.Process(obj)
	if !report.OK() {
		t.Fatalf("process(%q): unexpected errors: %v", in, report.Errors)
	}
	got, err := jsondsl.Marshal(obj)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	if string(got) != want {
		t.Errorf("process(%q) = %q, want %q", in, got, want)
	}
}

// assertError runs params against the JSON text in and asserts the
// report contains exactly one error of the given kind at path.
func assertError(t *testing.T, params *jsondsl.ParameterSet, in string, kind jsondsl.ErrorKind, path string) {
	t.Helper()
	obj, err := jsondsl.DecodeJSON([]byte(in))
	if err != nil {
		t.Fatalf("decode %q: %v", in, err)
	}
	report := params.Process(obj)
	errs := report.ByKind(kind)
	if len(errs) != 1 {
		t.Fatalf("process(%q): expected exactly one %s error at %s, got %v", in, kind, path, report.Errors)
	}
	if errs[0].Path != path {
		t.Errorf("process(%q): expected %s error at %s, got %v", in, kind, path, errs)
	}
}

func TestProcessEmptyBuilder(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {})
	assertProcessed(t, params, `{"a":1}`, `{"a":1}`)
}

func TestProcessSimpleRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqDefined("a")
	})
	assertProcessed(t, params, `{"a":1}`, `{"a":1}`)
	assertError(t, params, `{}`, jsondsl.KindRequired, "/a")
}

func TestProcessI64Require(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.I64())
	})
	assertProcessed(t, params, `{"a":"1"}`, `{"a":1}`)
	assertProcessed(t, params, `{"a": 1.112}`, `{"a":1}`)
	assertError(t, params, `{"a": "not-int"}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": {"a": 1}}`, jsondsl.KindWrongType, "/a")
}

func TestProcessStringRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.String())
	})
	assertProcessed(t, params, `{"a":"1"}`, `{"a":"1"}`)
	assertProcessed(t, params, `{"a":1}`, `{"a":"1"}`)
	assertProcessed(t, params, `{"a":1.112}`, `{"a":"1.112"}`)
	assertError(t, params, `{"a": {}}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": null}`, jsondsl.KindWrongType, "/a")
}

func TestProcessBooleanRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.Boolean())
	})
	assertProcessed(t, params, `{"a":true}`, `{"a":true}`)
	assertProcessed(t, params, `{"a":false}`, `{"a":false}`)
	assertProcessed(t, params, `{"a":"true"}`, `{"a":true}`)
	assertProcessed(t, params, `{"a":"false"}`, `{"a":false}`)
	assertError(t, params, `{"a": null}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": 1}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": "not-bool"}`, jsondsl.KindWrongType, "/a")
}

func TestProcessSimpleArrayRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.Array())
	})
	assertProcessed(t, params, `{"a":[1,"2",[3]]}`, `{"a":[1,"2",[3]]}`)
	assertError(t, params, `{"a": {}}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": "test"}`, jsondsl.KindWrongType, "/a")
}

func TestProcessTypedArrayRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.ArrayOf(jsondsl.String()))
	})
	assertProcessed(t, params, `{"a":[1,"2",3.1]}`, `{"a":["1","2","3.1"]}`)
	assertError(t, params, `{"a": {}}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a": [1,2,{}]}`, jsondsl.KindWrongType, "/a/2")
}

func TestProcessArrayWithNestedRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqNested("a", jsondsl.Array(), func(sub *jsondsl.Builder) {
			sub.ReqTyped("b", jsondsl.String())
			sub.ReqTyped("c", jsondsl.ArrayOf(jsondsl.U64()))
		})
	})
	assertProcessed(t, params, `{"a":[{"b":1,"c":["1"]}]}`, `{"a":[{"b":"1","c":[1]}]}`)
	assertError(t, params, `{"a":[{"b":{},"c":["1"]}]}`, jsondsl.KindWrongType, "/a/0/b")
	assertError(t, params, `{"a":[{"b":1,"c":[{}]}]}`, jsondsl.KindWrongType, "/a/0/c/0")
}

func TestProcessObjectRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.Object())
	})
	assertProcessed(t, params, `{"a":{}}`, `{"a":{}}`)
	assertError(t, params, `{"a":[]}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a":""}`, jsondsl.KindWrongType, "/a")
}

func TestProcessObjectWithNestedRequire(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqNested("a", jsondsl.Object(), func(sub *jsondsl.Builder) {
			sub.ReqTyped("b", jsondsl.F64())
			sub.ReqTyped("c", jsondsl.ArrayOf(jsondsl.String()))
		})
	})
	assertProcessed(t, params, `{"a":{"b":"1.22","c":[1.112,""]}}`, `{"a":{"b":1.22,"c":["1.112",""]}}`)
	assertError(t, params, `{"a":{"b":"not-f64","c":[]}}`, jsondsl.KindWrongType, "/a/b")
	assertError(t, params, `{"a":{"b":"1.22","c":[1.112,{}]}}`, jsondsl.KindWrongType, "/a/c/1")
}

func TestProcessRequireAllowsNull(t *testing.T) {
	noNull := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.String())
		})
	})
	assertError(t, noNull, `{"a":null}`, jsondsl.KindWrongType, "/a")

	allowNull := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.String())
			a.AllowNull()
		})
	})
	assertProcessed(t, allowNull, `{"a":null}`, `{"a":null}`)
}

func TestValidateAllowValues(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.String())
			a.AllowValues("allowed1", "allowed2")
		})
	})
	assertProcessed(t, params, `{"a":"allowed1"}`, `{"a":"allowed1"}`)
	assertProcessed(t, params, `{"a":"allowed2"}`, `{"a":"allowed2"}`)
	assertError(t, params, `{"a":"not in allowed"}`, jsondsl.KindWrongValue, "/a")
}

func TestValidateRejectValues(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.String())
			a.RejectValues("rejected1", "rejected2")
		})
	})
	assertProcessed(t, params, `{"a":"some"}`, `{"a":"some"}`)
	assertError(t, params, `{"a":"rejected1"}`, jsondsl.KindWrongValue, "/a")
	assertError(t, params, `{"a":"rejected2"}`, jsondsl.KindWrongValue, "/a")
}

func TestValidateWithFunctionValidator(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.U64())
			a.ValidateWith(func(value any, path string, strict bool) []jsondsl.Error {
				if v, ok := value.(uint64); ok && v == 2 {
					return nil
				}
				return []jsondsl.Error{{Kind: jsondsl.KindWrongType, Path: path, Detail: "value is not exactly 2"}}
			})
		})
	})
	assertProcessed(t, params, `{"a":"2"}`, `{"a":2}`)
	assertError(t, params, `{"a":3}`, jsondsl.KindWrongType, "/a")
	assertError(t, params, `{"a":"3"}`, jsondsl.KindWrongType, "/a")
}

func TestValidateWithRegex(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.String())
			a.Regex(regexp.MustCompile("^test$"))
		})
	})
	assertProcessed(t, params, `{"a":"test"}`, `{"a":"test"}`)
	assertError(t, params, `{"a":"2"}`, jsondsl.KindWrongValue, "/a")
	assertError(t, params, `{"a":"test "}`, jsondsl.KindWrongValue, "/a")

	// A regex can't be applied to a list, so a list value never
	// passes regex validation — it always errs WrongType rather than
	// attempting a match.
	arrayParams := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Req("a", func(a *jsondsl.ParamBuilder) {
			a.Coerce(jsondsl.Array())
			a.Regex(regexp.MustCompile("^test$"))
		})
	})
	assertError(t, arrayParams, `{"a":[]}`, jsondsl.KindWrongType, "/a")
}

func TestValidateOpt(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqDefined("a")
		p.OptTyped("b", jsondsl.U64())
	})
	assertProcessed(t, params, `{"a":"test"}`, `{"a":"test"}`)
	assertProcessed(t, params, `{"a":"test","b":"1"}`, `{"a":"test","b":1}`)
}

func TestValidateOptWithDefault(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.Opt("a", func(a *jsondsl.ParamBuilder) {
			a.Default("default")
		})
	})
	assertProcessed(t, params, `{"a":"test"}`, `{"a":"test"}`)
	assertProcessed(t, params, `{}`, `{"a":"default"}`)
}

func TestValidateMutuallyExclusive(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.OptDefined("a")
		p.OptDefined("b")
		p.MutuallyExclusive("a", "b")
	})
	assertProcessed(t, params, `{"a":1}`, `{"a":1}`)
	assertProcessed(t, params, `{"b":1}`, `{"b":1}`)
	assertProcessed(t, params, `{}`, `{}`)
	assertError(t, params, `{"a":1,"b":1}`, jsondsl.KindMutuallyExclusive, "/")
}

func TestValidateExactlyOneOf(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.OptDefined("a")
		p.OptDefined("b")
		p.ExactlyOneOf("a", "b")
	})
	assertProcessed(t, params, `{"a":1}`, `{"a":1}`)
	assertProcessed(t, params, `{"b":1}`, `{"b":1}`)
	assertError(t, params, `{}`, jsondsl.KindExactlyOne, "/")
	assertError(t, params, `{"a":1,"b":1}`, jsondsl.KindExactlyOne, "/")
}

func TestValidateAtLeastOneOf(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.OptDefined("a")
		p.OptDefined("b")
		p.AtLeastOneOf("a", "b")
	})
	assertProcessed(t, params, `{"a":1}`, `{"a":1}`)
	assertProcessed(t, params, `{"b":1}`, `{"b":1}`)
	assertProcessed(t, params, `{"a":1,"b":1}`, `{"a":1,"b":1}`)
	assertError(t, params, `{}`, jsondsl.KindAtLeastOne, "/")
}

func TestValidateWithGroupFunction(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.OptDefined("a")
		p.OptDefined("b")
		p.ValidateWith(func(obj map[string]any, path string) []jsondsl.Error {
			return []jsondsl.Error{{Kind: jsondsl.KindWrongType, Path: path, Detail: "you shall not pass"}}
		})
	})
	assertError(t, params, `{}`, jsondsl.KindWrongType, "/")
}

func TestIdempotenceOnValidInput(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.I64())
	})
	obj, err := jsondsl.DecodeJSON([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	first := params.Process(obj)
	if !first.OK() {
		t.Fatalf("unexpected errors: %v", first.Errors)
	}
	firstJSON, _ := jsondsl.Marshal(obj)

	second := params.Process(obj)
	if !second.OK() {
		t.Fatalf("unexpected errors on second pass: %v", second.Errors)
	}
	secondJSON, _ := jsondsl.Marshal(obj)
	if string(firstJSON) != string(secondJSON) {
		t.Errorf("processing twice changed value: %s -> %s", firstJSON, secondJSON)
	}
}

func TestNoCrossParameterLeakage(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqTyped("a", jsondsl.I64())
		p.ReqTyped("b", jsondsl.String())
	})
	obj, err := jsondsl.DecodeJSON([]byte(`{"a":"not-int","b":1}`))
	if err != nil {
		t.Fatal(err)
	}
	report := params.Process(obj)
	if len(report.ByKind(jsondsl.KindWrongType)) != 1 {
		t.Fatalf("expected exactly one WrongType error, got %v", report.Errors)
	}
	if got := obj["b"]; got != "1" {
		t.Errorf("sibling parameter b was not processed: got %#v", got)
	}
}

func TestGroupArithmetic(t *testing.T) {
	for _, tc := range []struct {
		name string
		in   string
		kind jsondsl.ErrorKind
		errs int
	}{
		{"mutex-none", `{}`, jsondsl.KindMutuallyExclusive, 0},
		{"mutex-one", `{"a":1}`, jsondsl.KindMutuallyExclusive, 0},
		{"mutex-both", `{"a":1,"b":1}`, jsondsl.KindMutuallyExclusive, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
				p.OptDefined("a")
				p.OptDefined("b")
				p.MutuallyExclusive("a", "b")
			})
			obj, err := jsondsl.DecodeJSON([]byte(tc.in))
			if err != nil {
				t.Fatal(err)
			}
			report := params.Process(obj)
			if got := len(report.ByKind(tc.kind)); got != tc.errs {
				t.Errorf("%s: got %d %s errors, want %d", tc.in, got, tc.kind, tc.errs)
			}
		})
	}
}

func TestReportShortID(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqDefined("a")
	})
	obj, err := jsondsl.DecodeJSON([]byte(`{"a":1}`))
	if err != nil {
		t.Fatal(err)
	}
	report := params.Process(obj)
	short := report.ShortID()
	if len(short) != 8 {
		t.Fatalf("expected an 8-character short id, got %q", short)
	}
	if report.CorrelationID[:8] != short {
		t.Errorf("ShortID() = %q, want prefix of %q", short, report.CorrelationID)
	}
}

func TestCorrelationIDDiffersPerCall(t *testing.T) {
	params := jsondsl.MustBuildSet(func(p *jsondsl.Builder) {
		p.ReqDefined("a")
	})
	obj1, _ := jsondsl.DecodeJSON([]byte(`{"a":1}`))
	obj2, _ := jsondsl.DecodeJSON([]byte(`{"a":1}`))
	r1 := params.Process(obj1)
	r2 := params.Process(obj2)
	if r1.CorrelationID == "" || r2.CorrelationID == "" {
		t.Fatal("expected non-empty correlation IDs")
	}
	if r1.CorrelationID == r2.CorrelationID {
		t.Error("expected distinct correlation IDs across calls")
	}
	if len(r1.Errors) != len(r2.Errors) {
		t.Errorf("expected identical error counts, got %d vs %d", len(r1.Errors), len(r2.Errors))
	}
}
