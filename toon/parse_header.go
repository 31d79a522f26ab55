package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Array Header Parsing
// ============================================================
//
// Header format:
//
//	key?[marker?length delim?]{fields}?: inline_tail?
//
// The delimiter character inside the brackets, when present, governs
// the inline tail and any tabular rows under this header. Field
// lists are always comma-separated regardless of the row delimiter.

// arrayHeader is a parsed array header line.
type arrayHeader struct {
	key       string
	hasKey    bool
	length    int
	delim     rune
	fields    []string
	hasFields bool
	tail      string // inline values after the colon, "" if none
}

// parseArrayHeader classifies a stripped line as an array header and
// parses it. ok is false when the line is not a header (a key:value
// line, list item, or bare primitive); err is only meaningful for
// lines that are headers but malformed in a way that cannot be read
// another way.
func parseArrayHeader(text string) (h arrayHeader, ok bool, err error) {
	i := 0

	// Optional key, either quoted or everything before the first
	// unquoted bracket.
	if strings.HasPrefix(text, `"`) {
		end := closingQuote(text)
		if end < 0 || end+1 >= len(text) || text[end+1] != '[' {
			return h, false, nil // quoted key:value line, or not ours
		}
		key, uerr := unescapeString(text[1:end])
		if uerr != nil {
			return h, true, uerr
		}
		h.key = key
		h.hasKey = true
		i = end + 1
	} else {
		bi := indexUnquoted(text, '[')
		ci := indexUnquoted(text, ':')
		if bi < 0 || (ci >= 0 && ci < bi) {
			return h, false, nil
		}
		h.key = strings.TrimSpace(text[:bi])
		h.hasKey = h.key != ""
		i = bi
	}

	// Bracketed length: [marker?digits delim?]
	i++ // consume '['
	if i < len(text) && text[i] == LengthMarker {
		i++
	}
	start := i
	for i < len(text) && text[i] >= '0' && text[i] <= '9' {
		i++
	}
	if i == start {
		return h, false, nil
	}
	n, aerr := strconv.Atoi(text[start:i])
	if aerr != nil {
		return h, true, fmt.Errorf("invalid array length %q", text[start:i])
	}
	h.length = n

	h.delim = DefaultDelimiter
	if i < len(text) {
		switch text[i] {
		case ',', '\t', '|':
			h.delim = rune(text[i])
			i++
		}
	}
	if i >= len(text) || text[i] != ']' {
		return h, false, nil
	}
	i++

	// Optional field list: {a,b,c}
	if i < len(text) && text[i] == '{' {
		end := i + indexUnquoted(text[i:], '}')
		if end < i {
			return h, true, fmt.Errorf("unterminated field list")
		}
		fields, ferr := parseFieldList(text[i+1 : end])
		if ferr != nil {
			return h, true, ferr
		}
		h.fields = fields
		h.hasFields = true
		i = end + 1
	}

	if i >= len(text) || text[i] != ':' {
		return h, false, nil
	}
	h.tail = strings.TrimSpace(text[i+1:])
	return h, true, nil
}

// parseFieldList splits a {fields} clause on unquoted commas and
// decodes each field name with the key quoting rules.
func parseFieldList(inner string) ([]string, error) {
	if strings.TrimSpace(inner) == "" {
		return nil, fmt.Errorf("empty field list")
	}
	parts := splitDelimited(inner, ',')
	fields := make([]string, len(parts))
	for i, p := range parts {
		name, err := parseKey(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		fields[i] = name
	}
	return fields, nil
}

// parseKey decodes a key token: quoted keys are unescaped, bare keys
// are taken as-is.
func parseKey(s string) (string, error) {
	if !strings.HasPrefix(s, `"`) {
		return s, nil
	}
	end := closingQuote(s)
	if end < 0 {
		return "", fmt.Errorf("unterminated quoted key")
	}
	if end != len(s)-1 {
		return "", fmt.Errorf("unexpected characters after quoted key")
	}
	return unescapeString(s[1:end])
}

// closingQuote returns the index of the quote terminating a string
// that starts with one, or -1.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i
		}
	}
	return -1
}
