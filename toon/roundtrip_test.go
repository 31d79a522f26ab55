package toon

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ============================================================
// Round-Trip Properties
// ============================================================

func roundtripValues() map[string]*Value {
	return map[string]*Value{
		"primitive int":    Int(42),
		"primitive float":  Float(3.5),
		"primitive string": Str("hello world"),
		"primitive bool":   Bool(true),
		"null":             Null(),
		"flat object": Obj(
			F("id", Int(1)),
			F("name", Str("Ada")),
			F("score", Float(99.5)),
			F("active", Bool(true)),
			F("notes", Null()),
		),
		"nested object": Obj(
			F("outer", Obj(
				F("inner", Obj(F("deep", Str("value")))),
				F("sibling", Int(2)),
			)),
		),
		"inline array":  Arr(Int(1), Int(2), Int(3)),
		"empty array":   Arr(),
		"string array":  Arr(Str("a"), Str("b b"), Str("c,d")),
		"array of null": Arr(Null(), Null()),
		"tabular": Arr(
			Obj(F("id", Int(1)), F("name", Str("Alice"))),
			Obj(F("id", Int(2)), F("name", Str("Bob"))),
		),
		"mixed list": Arr(
			Int(1),
			Str("two"),
			Obj(F("three", Int(3))),
			Arr(Int(4), Int(5)),
		),
		"list of lists": Arr(
			Arr(Int(1), Int(2)),
			Arr(),
			Arr(Str("x")),
		),
		"object items with continuation": Arr(
			Obj(F("id", Int(1)), F("tags", Arr(Str("a"))), F("ok", Bool(true))),
			Obj(F("id", Int(2)), F("nested", Obj(F("x", Int(9)))), F("ok", Bool(false))),
		),
		"awkward strings": Obj(
			F("quoted", Str(" leading")),
			F("numeric", Str("123")),
			F("octal", Str("0123")),
			F("reserved", Str("true")),
			F("escapes", Str("a\nb\tc")),
			F("dash", Str("-start")),
			F("empty", Str("")),
		),
		"awkward keys": Obj(
			F("plain_key", Int(1)),
			F("with space", Int(2)),
			F("with:colon", Int(3)),
			F("", Int(4)),
		),
	}
}

func TestRoundTrip(t *testing.T) {
	for name, v := range roundtripValues() {
		t.Run(name, func(t *testing.T) {
			text := Encode(v)
			got, err := Decode(text)
			if err != nil {
				t.Fatalf("Decode failed: %v\nencoded:\n%s", err, text)
			}
			if diff := cmp.Diff(v, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s\nencoded:\n%s", diff, text)
			}
		})
	}
}

func TestRoundTrip_Delimiters(t *testing.T) {
	v := Obj(
		F("nums", Arr(Int(1), Int(2), Int(3))),
		F("rows", Arr(
			Obj(F("a", Int(1)), F("b", Str("x"))),
			Obj(F("a", Int(2)), F("b", Str("y"))),
		)),
	)
	for _, delim := range []rune{',', '\t', '|'} {
		opts := DefaultEncodeOptions()
		opts.Delimiter = delim
		text := EncodeWithOptions(v, opts)
		got, err := Decode(text)
		if err != nil {
			t.Fatalf("delim %q: decode failed: %v\nencoded:\n%s", delim, err, text)
		}
		if diff := cmp.Diff(v, got); diff != "" {
			t.Errorf("delim %q mismatch (-want +got):\n%s", delim, diff)
		}
	}
}

func TestRoundTrip_LengthMarker(t *testing.T) {
	v := Arr(Int(1), Arr(Int(2)), Obj(F("a", Int(3))))
	opts := DefaultEncodeOptions()
	opts.LengthMarker = LengthMarker
	text := EncodeWithOptions(v, opts)
	got, err := Decode(text)
	if err != nil {
		t.Fatalf("decode failed: %v\nencoded:\n%s", err, text)
	}
	if diff := cmp.Diff(v, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestReencodeIdempotence(t *testing.T) {
	for name, v := range roundtripValues() {
		t.Run(name, func(t *testing.T) {
			once := Encode(v)
			decoded, err := Decode(once)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			twice := Encode(decoded)
			if once != twice {
				t.Errorf("re-encoding not stable:\nfirst:\n%s\nsecond:\n%s", once, twice)
			}
		})
	}
}

func TestRoundTrip_NumericTypesPreserved(t *testing.T) {
	v := Obj(F("i", Int(5)), F("f", Float(5.5)))
	got, err := Decode(Encode(v))
	if err != nil {
		t.Fatal(err)
	}
	if k := got.Get("i").Kind(); k != KindInt {
		t.Errorf("int decoded as %s", k)
	}
	if k := got.Get("f").Kind(); k != KindFloat {
		t.Errorf("float decoded as %s", k)
	}
}

// ============================================================
// Benchmarks
// ============================================================

func benchmarkDoc() *Value {
	rows := make([]*Value, 50)
	for i := 0; i < 50; i++ {
		rows[i] = Obj(
			F("id", Int(int64(i))),
			F("name", Str("user name")),
			F("score", Float(float64(i)+0.5)),
			F("active", Bool(i%2 == 0)),
		)
	}
	return Obj(
		F("users", Arr(rows...)),
		F("meta", Obj(F("count", Int(50)), F("source", Str("bench")))),
	)
}

func BenchmarkEncode(b *testing.B) {
	doc := benchmarkDoc()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Encode(doc)
	}
}

func BenchmarkDecode(b *testing.B) {
	text := Encode(benchmarkDoc())
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Decode(text); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkOutputSize is not a timing benchmark; it reports how much
// smaller tabular TOON output is than the equivalent JSON.
func BenchmarkOutputSize(b *testing.B) {
	doc := benchmarkDoc()
	text := Encode(doc)
	jsonText, err := ToJSON(doc)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportMetric(float64(len(text)), "toon-bytes")
	b.ReportMetric(float64(len(jsonText)), "json-bytes")
	for i := 0; i < b.N; i++ {
		_ = Encode(doc)
	}
	_ = json.Valid(jsonText)
}
