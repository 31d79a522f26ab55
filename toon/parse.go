package toon

import (
	"fmt"
	"strconv"
	"strings"
)

// DecodeError is the failure type for all decode operations. Line is
// the 1-based source line, 0 when unknown.
type DecodeError struct {
	Message string
	Line    int
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// DecodeOptions configures the decoder.
type DecodeOptions struct {
	// Indent is the number of spaces per nesting level (default 2)
	Indent int

	// Strict enforces declared array lengths against actual body
	// sizes (default true via DefaultDecodeOptions)
	Strict bool
}

// DefaultDecodeOptions returns sensible defaults.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{Indent: 2, Strict: true}
}

// Decode parses TOON text into a Value using default options.
func Decode(input string) (*Value, error) {
	return DecodeWithOptions(input, DefaultDecodeOptions())
}

// DecodeWithOptions parses TOON text into a Value. Decoding either
// fully succeeds or fails with a *DecodeError; no partial result is
// returned alongside an error.
func DecodeWithOptions(input string, opts DecodeOptions) (*Value, error) {
	if opts.Indent < 1 {
		opts.Indent = 2
	}
	d := &decoder{
		cur:  newLineCursor(scanLines(input, opts.Indent)),
		opts: opts,
	}
	return d.decodeDocument()
}

type decoder struct {
	cur  *lineCursor
	opts DecodeOptions
}

func (d *decoder) errf(ln *line, format string, args ...any) error {
	num := 0
	if ln != nil {
		num = ln.num
	}
	return &DecodeError{Message: fmt.Sprintf(format, args...), Line: num}
}

// ============================================================
// Root Dispatch
// ============================================================

func (d *decoder) decodeDocument() (*Value, error) {
	first := d.cur.peek()
	if first == nil {
		return Arr(), nil
	}

	// A keyless array header opens a root array; its body sits one
	// level deeper than the header itself.
	h, ok, err := parseArrayHeader(first.text)
	if ok && err != nil {
		return nil, d.errf(first, "%s", err)
	}
	if ok && !h.hasKey {
		d.cur.advance()
		v, err := d.decodeArrayBody(h, first, 1)
		if err != nil {
			return nil, err
		}
		if !d.cur.atEnd() {
			return nil, d.errf(d.cur.peek(), "unexpected content after root array")
		}
		return v, nil
	}

	// A single line with no key separator is a bare primitive.
	if len(d.cur.lines) == 1 && !ok && indexUnquoted(first.text, ':') < 0 {
		return d.parsePrimitive(first.text, first)
	}

	return d.decodeObjectBody(0)
}

// ============================================================
// Objects
// ============================================================

// decodeObjectBody consumes sibling members at the expected depth,
// stopping at the first shallower line or end of input.
func (d *decoder) decodeObjectBody(depth int) (*Value, error) {
	var fields []Field
	for !d.cur.atDepthBoundary(depth) {
		ln := d.cur.peek()
		if ln.depth > depth {
			return nil, d.errf(ln, "unexpected indentation")
		}

		h, ok, err := parseArrayHeader(ln.text)
		if ok && err != nil {
			return nil, d.errf(ln, "%s", err)
		}
		if ok {
			if !h.hasKey {
				return nil, d.errf(ln, "array header requires a key inside an object")
			}
			d.cur.advance()
			v, err := d.decodeArrayBody(h, ln, depth+1)
			if err != nil {
				return nil, err
			}
			fields = append(fields, Field{Key: h.key, Value: v})
			continue
		}

		key, rest, err := d.splitKeyValue(ln)
		if err != nil {
			return nil, err
		}
		d.cur.advance()

		var v *Value
		if rest == "" {
			if !d.cur.atDepthBoundary(depth + 1) {
				v, err = d.decodeObjectBody(depth + 1)
			} else {
				v = Null()
			}
		} else {
			v, err = d.parsePrimitive(rest, ln)
		}
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Key: key, Value: v})
	}
	return Obj(fields...), nil
}

// splitKeyValue splits a member line on its first unquoted colon.
func (d *decoder) splitKeyValue(ln *line) (key, rest string, err error) {
	ci := indexUnquoted(ln.text, ':')
	if ci < 0 {
		return "", "", d.errf(ln, "missing ':' in key-value line")
	}
	key, kerr := parseKey(strings.TrimSpace(ln.text[:ci]))
	if kerr != nil {
		return "", "", d.errf(ln, "%s", kerr)
	}
	return key, strings.TrimSpace(ln.text[ci+1:]), nil
}

// ============================================================
// Arrays
// ============================================================

// decodeArrayBody reconstructs an array from its parsed header. The
// header line has been consumed; bodyDepth scopes the lines that
// belong to this array.
func (d *decoder) decodeArrayBody(h arrayHeader, headerLn *line, bodyDepth int) (*Value, error) {
	if h.hasFields {
		return d.decodeTabular(h, headerLn, bodyDepth)
	}

	// Inline form: values ride the header line.
	if h.tail != "" {
		cells := splitDelimited(h.tail, h.delim)
		elems := make([]*Value, len(cells))
		for i, c := range cells {
			v, err := d.parsePrimitive(strings.TrimSpace(c), headerLn)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		if err := d.checkLength(h, headerLn, len(elems)); err != nil {
			return nil, err
		}
		return Arr(elems...), nil
	}

	// Itemized list form: one dash line per element.
	var elems []*Value
	for !d.cur.atDepthBoundary(bodyDepth) {
		ln := d.cur.peek()
		if ln.depth > bodyDepth {
			return nil, d.errf(ln, "unexpected indentation")
		}
		if ln.text != "-" && !strings.HasPrefix(ln.text, "- ") {
			return nil, d.errf(ln, "expected list item")
		}
		d.cur.advance()
		v, err := d.decodeListItem(ln, bodyDepth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	if err := d.checkLength(h, headerLn, len(elems)); err != nil {
		return nil, err
	}
	return Arr(elems...), nil
}

// decodeTabular reads delimiter-joined rows against the declared
// field list. Missing trailing cells decode as null; surplus cells
// are a strict-mode error.
func (d *decoder) decodeTabular(h arrayHeader, headerLn *line, bodyDepth int) (*Value, error) {
	if h.tail != "" {
		return nil, d.errf(headerLn, "unexpected inline values after tabular header")
	}
	var rows []*Value
	for !d.cur.atDepthBoundary(bodyDepth) {
		ln := d.cur.peek()
		if ln.depth > bodyDepth {
			return nil, d.errf(ln, "unexpected indentation")
		}
		d.cur.advance()

		cells := splitDelimited(ln.text, h.delim)
		if len(cells) > len(h.fields) {
			if d.opts.Strict {
				return nil, d.errf(ln, "row has %d values, header declares %d fields", len(cells), len(h.fields))
			}
			cells = cells[:len(h.fields)]
		}
		fields := make([]Field, len(h.fields))
		for i, name := range h.fields {
			v := Null()
			if i < len(cells) {
				var err error
				v, err = d.parsePrimitive(strings.TrimSpace(cells[i]), ln)
				if err != nil {
					return nil, err
				}
			}
			fields[i] = Field{Key: name, Value: v}
		}
		rows = append(rows, Obj(fields...))
	}
	if err := d.checkLength(h, headerLn, len(rows)); err != nil {
		return nil, err
	}
	return Arr(rows...), nil
}

// decodeListItem reconstructs one dash-prefixed element. itemDepth is
// the depth of the dash line; members of an object item are logically
// one level deeper.
func (d *decoder) decodeListItem(ln *line, itemDepth int) (*Value, error) {
	if ln.text == "-" {
		return Obj(), nil
	}
	rest := strings.TrimSpace(ln.text[2:])

	h, ok, err := parseArrayHeader(rest)
	if ok && err != nil {
		return nil, d.errf(ln, "%s", err)
	}
	if ok {
		if !h.hasKey {
			// The item is itself an array.
			return d.decodeArrayBody(h, ln, itemDepth+1)
		}
		// Object item whose first member is an array. The array body
		// sits under the member's logical depth.
		av, err := d.decodeArrayBody(h, ln, itemDepth+2)
		if err != nil {
			return nil, err
		}
		return d.finishObjectItem(Field{Key: h.key, Value: av}, itemDepth)
	}

	if indexUnquoted(rest, ':') >= 0 {
		key, valText, err := d.splitKeyValue(&line{depth: ln.depth, text: rest, num: ln.num})
		if err != nil {
			return nil, err
		}
		var v *Value
		if valText == "" {
			if !d.cur.atDepthBoundary(itemDepth + 2) {
				v, err = d.decodeObjectBody(itemDepth + 2)
			} else {
				v = Null()
			}
		} else {
			v, err = d.parsePrimitive(valText, ln)
		}
		if err != nil {
			return nil, err
		}
		return d.finishObjectItem(Field{Key: key, Value: v}, itemDepth)
	}

	return d.parsePrimitive(rest, ln)
}

// finishObjectItem collects the remaining members of an object list
// item, which are indented one level below the dash line.
func (d *decoder) finishObjectItem(first Field, itemDepth int) (*Value, error) {
	obj, err := d.decodeObjectBody(itemDepth + 1)
	if err != nil {
		return nil, err
	}
	obj.objVal = append([]Field{first}, obj.objVal...)
	return obj, nil
}

// checkLength enforces the declared header length in strict mode.
func (d *decoder) checkLength(h arrayHeader, headerLn *line, actual int) error {
	if d.opts.Strict && actual != h.length {
		return d.errf(headerLn, "length mismatch: header declares %d, found %d", h.length, actual)
	}
	return nil
}

// ============================================================
// Primitives
// ============================================================

// parsePrimitive parses a scalar token: quoted string, literal,
// number, or bare string.
func (d *decoder) parsePrimitive(s string, ln *line) (*Value, error) {
	if strings.HasPrefix(s, `"`) {
		end := closingQuote(s)
		if end < 0 {
			return nil, d.errf(ln, "unterminated quoted string")
		}
		if end != len(s)-1 {
			return nil, d.errf(ln, "unexpected characters after closing quote")
		}
		str, err := unescapeString(s[1:end])
		if err != nil {
			return nil, d.errf(ln, "%s", err)
		}
		return Str(str), nil
	}

	switch s {
	case "null":
		return Null(), nil
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	}

	// Leading-zero integers stay strings so values like "0123"
	// survive a round trip.
	if looksLikeNumber(s) && !looksOctal(s) {
		if !strings.ContainsAny(s, ".eE") {
			if i, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Int(i), nil
			}
			// Out of int64 range: keep the magnitude as a float.
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f), nil
		}
	}

	return Str(s), nil
}
