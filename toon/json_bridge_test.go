package toon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ============================================================
// JSON Bridge Tests
// ============================================================

func TestFromJSON_KeyOrderPreserved(t *testing.T) {
	v, err := FromJSON([]byte(`{"z":1,"a":2,"m":3}`))
	if err != nil {
		t.Fatal(err)
	}
	fields, err := v.AsFields()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"z", "a", "m"}
	for i, f := range fields {
		if f.Key != want[i] {
			t.Fatalf("field %d = %q, want %q", i, f.Key, want[i])
		}
	}
}

func TestFromJSON_Values(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Value
	}{
		{"null", `null`, Null()},
		{"bool", `true`, Bool(true)},
		{"int", `42`, Int(42)},
		{"big int exact", `9007199254740993`, Int(9007199254740993)},
		{"float", `2.5`, Float(2.5)},
		{"integral float folds", `5.0`, Int(5)},
		{"string", `"hi"`, Str("hi")},
		{"array", `[1,"a",null]`, Arr(Int(1), Str("a"), Null())},
		{"empty object", `{}`, Obj()},
		{"empty array", `[]`, Arr()},
		{
			"nested", `{"a":{"b":[1,2]}}`,
			Obj(F("a", Obj(F("b", Arr(Int(1), Int(2)))))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("FromJSON failed: %v", err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromJSON_Errors(t *testing.T) {
	for _, input := range []string{``, `{`, `{"a":}`, `[1,]`, `{"a":1} extra`} {
		if _, err := FromJSON([]byte(input)); err == nil {
			t.Errorf("FromJSON(%q) should fail", input)
		}
	}
}

func TestToJSON(t *testing.T) {
	v := Obj(
		F("z", Int(1)),
		F("a", Str("x\"y")),
		F("list", Arr(Bool(true), Null(), Float(0.5))),
	)
	got, err := ToJSON(v)
	if err != nil {
		t.Fatal(err)
	}
	want := `{"z":1,"a":"x\"y","list":[true,null,0.5]}`
	if string(got) != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	docs := []string{
		`{"id":1,"name":"Ada","tags":["a","b"],"meta":{"ok":true}}`,
		`[{"id":1},{"id":2}]`,
		`"lone string"`,
		`[]`,
		`{}`,
	}
	for _, doc := range docs {
		v, err := FromJSON([]byte(doc))
		if err != nil {
			t.Fatalf("FromJSON(%s): %v", doc, err)
		}
		out, err := ToJSON(v)
		if err != nil {
			t.Fatalf("ToJSON(%s): %v", doc, err)
		}
		if string(out) != doc {
			t.Errorf("JSON round trip: got %s, want %s", out, doc)
		}
	}
}

func TestJSONToTOONToJSON(t *testing.T) {
	doc := `{"users":[{"id":1,"name":"Alice"},{"id":2,"name":"Bob"}],"total":2}`
	v, err := FromJSON([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := Decode(Encode(v))
	if err != nil {
		t.Fatal(err)
	}
	out, err := ToJSON(decoded)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("got %s, want %s", out, doc)
	}
}
