package toon

import "testing"

// ============================================================
// Bare String / Escape Tests
// ============================================================

func TestIsSafeBare(t *testing.T) {
	tests := []struct {
		input string
		delim rune
		safe  bool
	}{
		{"hello", ',', true},
		{"hello world", ',', true},
		{"snake_case.dotted", ',', true},
		{"", ',', false},
		{"null", ',', false},
		{"true", ',', false},
		{"false", ',', false},
		{"123", ',', false},
		{"-4.5", ',', false},
		{"1e3", ',', false},
		{"0123", ',', false},
		{" leading", ',', false},
		{"trailing ", ',', false},
		{"a[b", ',', false},
		{"a]b", ',', false},
		{"a{b", ',', false},
		{"a}b", ',', false},
		{"a:b", ',', false},
		{"a-b", ',', false},
		{`a"b`, ',', false},
		{"a\tb", ',', true},
		{"a\tb", '\t', false},
		{"a,b", ',', false},
		{"a,b", '|', true},
		{"a\x00b", ',', false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isSafeBare(tt.input, tt.delim); got != tt.safe {
				t.Errorf("isSafeBare(%q, %q) = %v, want %v", tt.input, tt.delim, got, tt.safe)
			}
		})
	}
}

func TestIsValidBareKey(t *testing.T) {
	valid := []string{"a", "_x", "Key9", "a.b.c", "snake_case"}
	invalid := []string{"", "9a", "a-b", "a b", ".a", "ключ", "a,b"}

	for _, s := range valid {
		if !isValidBareKey(s) {
			t.Errorf("isValidBareKey(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if isValidBareKey(s) {
			t.Errorf("isValidBareKey(%q) = true, want false", s)
		}
	}
}

func TestEscapeUnescape(t *testing.T) {
	tests := []struct {
		raw     string
		escaped string
	}{
		{"plain", "plain"},
		{`back\slash`, `back\\slash`},
		{`say "hi"`, `say \"hi\"`},
		{"line\nbreak", `line\nbreak`},
		{"cr\rtab\t", `cr\rtab\t`},
		{"bell\x07", `bell`},
		{"del\x7f", `del`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := escapeString(tt.raw)
			if got != tt.escaped {
				t.Errorf("escapeString(%q) = %q, want %q", tt.raw, got, tt.escaped)
			}
			back, err := unescapeString(got)
			if err != nil {
				t.Fatalf("unescapeString(%q) failed: %v", got, err)
			}
			if back != tt.raw {
				t.Errorf("unescape(escape(%q)) = %q", tt.raw, back)
			}
		})
	}
}

func TestUnescape_Unicode(t *testing.T) {
	got, err := unescapeString(`snow☃man`)
	if err != nil {
		t.Fatal(err)
	}
	if got != "snow☃man" {
		t.Errorf("got %q", got)
	}
}

func TestUnescape_Errors(t *testing.T) {
	bad := []string{
		`trailing\`,
		`unknown\q`,
		`short\u12`,
		`nothex\uwxyz`,
	}
	for _, s := range bad {
		if _, err := unescapeString(s); err == nil {
			t.Errorf("unescapeString(%q) should fail", s)
		}
	}
}
