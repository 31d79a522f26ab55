package toon

import (
	"fmt"
	"strings"
)

// ============================================================
// Bare String / Key Safety
// ============================================================

// isSafeBare reports whether s can be written without quotes in a
// value position, given the active delimiter.
func isSafeBare(s string, delim rune) bool {
	if s == "" {
		return false
	}
	switch s {
	case "null", "true", "false":
		return false
	}
	if looksLikeNumber(s) || looksOctal(s) {
		return false
	}
	if s != strings.TrimSpace(s) {
		return false
	}
	for _, r := range s {
		switch r {
		case '[', ']', '{', '}', ':', '-', '"':
			return false
		}
		if r == delim {
			return false
		}
		if r < 0x20 || r == 0x7F {
			return false
		}
	}
	return true
}

// isValidBareKey reports whether s can be written as an unquoted key.
func isValidBareKey(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		alpha := (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_'
		digit := r >= '0' && r <= '9'
		if i == 0 {
			if !alpha {
				return false
			}
			continue
		}
		if !alpha && !digit && r != '.' {
			return false
		}
	}
	return true
}

// looksLikeNumber reports whether s parses fully as a decimal number
// (integer or float, optional exponent). Leading zeros disqualify the
// integer part; those are handled by looksOctal.
func looksLikeNumber(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		fracStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == fracStart {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '-' || s[i] == '+') {
			i++
		}
		expStart := i
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == expStart {
			return false
		}
	}
	return i == len(s)
}

// looksOctal reports whether s has a leading zero followed by more
// digits ("0123"). Such strings stay quoted so the decoder never
// misreads them as numbers.
func looksOctal(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if len(s) < 2 || s[0] != '0' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ============================================================
// Escape / Unescape
// ============================================================

// escapeString escapes a string for quoted output.
func escapeString(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7F {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// unescapeString is the inverse of escapeString. It fails on a
// trailing backslash, an unknown escape letter, or a malformed
// \uXXXX sequence.
func unescapeString(s string) (string, error) {
	if !strings.ContainsRune(s, '\\') {
		return s, nil
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i >= len(s) {
			return "", fmt.Errorf("trailing backslash in string")
		}
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			if i+4 >= len(s) {
				return "", fmt.Errorf("incomplete \\u escape")
			}
			var code rune
			for _, h := range s[i+1 : i+5] {
				d := hexDigit(byte(h))
				if d < 0 {
					return "", fmt.Errorf("invalid \\u escape %q", s[i+1:i+5])
				}
				code = code<<4 | rune(d)
			}
			sb.WriteRune(code)
			i += 4
		default:
			return "", fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return sb.String(), nil
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}
