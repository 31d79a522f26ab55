package toon

import "strings"

// line is one non-blank input line with its indentation depth and
// 1-based source line number.
type line struct {
	depth int
	text  string
	num   int
}

// scanLines splits input into depth-tagged lines. Blank lines are
// dropped; depth is floor(leadingSpaces / indent).
func scanLines(input string, indent int) []line {
	if indent < 1 {
		indent = 1
	}
	var out []line
	num := 0
	for len(input) > 0 {
		raw := input
		if idx := strings.IndexByte(input, '\n'); idx >= 0 {
			raw = input[:idx]
			input = input[idx+1:]
		} else {
			input = ""
		}
		num++
		raw = strings.TrimRight(raw, "\r")

		spaces := 0
		for spaces < len(raw) && raw[spaces] == ' ' {
			spaces++
		}
		text := strings.TrimSpace(raw[spaces:])
		if text == "" {
			continue
		}
		out = append(out, line{depth: spaces / indent, text: text, num: num})
	}
	return out
}

// lineCursor walks a slice of scanned lines.
type lineCursor struct {
	lines []line
	pos   int
}

func newLineCursor(lines []line) *lineCursor {
	return &lineCursor{lines: lines}
}

// peek returns the current line without advancing, or nil at the end.
func (c *lineCursor) peek() *line {
	if c.pos >= len(c.lines) {
		return nil
	}
	return &c.lines[c.pos]
}

// advance moves past the current line and returns it.
func (c *lineCursor) advance() *line {
	ln := c.peek()
	if ln != nil {
		c.pos++
	}
	return ln
}

// atEnd reports whether the cursor is exhausted.
func (c *lineCursor) atEnd() bool {
	return c.pos >= len(c.lines)
}

// atDepthBoundary reports whether the body scoped to expected depth
// has ended: end of input, or the next line dedents past it.
func (c *lineCursor) atDepthBoundary(expected int) bool {
	ln := c.peek()
	return ln == nil || ln.depth < expected
}

// ============================================================
// Quote-Aware Splitting
// ============================================================

// indexUnquoted returns the index of the first occurrence of b
// outside double quotes, or -1.
func indexUnquoted(s string, b byte) int {
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && c == b:
			return i
		}
	}
	return -1
}

// splitDelimited splits s on the delimiter outside double quotes.
func splitDelimited(s string, delim rune) []string {
	var parts []string
	start := 0
	inQuote := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inQuote && c == '\\':
			i++
		case c == '"':
			inQuote = !inQuote
		case !inQuote && rune(c) == delim:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
