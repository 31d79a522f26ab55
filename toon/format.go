package toon

import (
	"strconv"
	"strings"
)

// ============================================================
// Primitive Formatting
// ============================================================

// formatPrimitive renders a scalar value to text. The delimiter
// decides whether a string needs quoting.
func formatPrimitive(v *Value, delim rune) string {
	if v.IsNull() {
		return "null"
	}
	switch v.kind {
	case KindBool:
		if v.boolVal {
			return "true"
		}
		return "false"
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindFloat:
		return formatFloat(v.floatVal)
	case KindString:
		return formatString(v.strVal, delim)
	default:
		return "null"
	}
}

// formatFloat renders a float in fixed-point decimal with no exponent
// notation and no trailing zeros.
func formatFloat(f float64) string {
	// 'f' never uses exponent form; -1 gives the shortest digits
	// that round-trip, which also leaves no trailing zeros.
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatString renders a string, bare when safe and quoted otherwise.
func formatString(s string, delim rune) string {
	if isSafeBare(s, delim) {
		return s
	}
	return `"` + escapeString(s) + `"`
}

// formatKey renders an object key or tabular field name.
func formatKey(s string) string {
	if isValidBareKey(s) {
		return s
	}
	return `"` + escapeString(s) + `"`
}

// ============================================================
// Array Headers
// ============================================================

// formatHeader renders an array header line (without the inline tail):
//
//	key?[marker?length delim?]{fields}?:
//
// The delimiter appears inside the brackets when it differs from the
// default comma; tabular headers (those with a field list) always
// carry it, since the rows that follow depend on it.
func formatHeader(key string, hasKey bool, length int, fields []string, delim rune, marker rune) string {
	var sb strings.Builder
	if hasKey {
		sb.WriteString(formatKey(key))
	}
	sb.WriteByte('[')
	if marker != 0 {
		sb.WriteRune(marker)
	}
	sb.WriteString(strconv.Itoa(length))
	if len(fields) > 0 || delim != DefaultDelimiter {
		sb.WriteRune(delim)
	}
	sb.WriteByte(']')
	if len(fields) > 0 {
		sb.WriteByte('{')
		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(formatKey(f))
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(':')
	return sb.String()
}
