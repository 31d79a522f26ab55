package toon

import "strings"

// DefaultDelimiter separates values in inline arrays and tabular rows.
const DefaultDelimiter = ','

// LengthMarker is the marker character accepted before a header length.
const LengthMarker = '#'

// EncodeOptions configures the encoder.
type EncodeOptions struct {
	// Indent is the number of spaces per nesting level (default 2)
	Indent int

	// Delimiter separates inline array values and tabular row cells.
	// One of ',', '\t', '|' (default ',').
	Delimiter rune

	// LengthMarker, when non-zero, is written before the length in
	// array headers ("[#3]:"). Cosmetic only.
	LengthMarker rune
}

// DefaultEncodeOptions returns sensible defaults.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Indent:    2,
		Delimiter: DefaultDelimiter,
	}
}

// Encode converts a Go value to TOON text using default options.
// It never fails: unsupported leaf types degrade to null.
func Encode(v any) string {
	return EncodeWithOptions(v, DefaultEncodeOptions())
}

// EncodeWithOptions converts a Go value to TOON text.
func EncodeWithOptions(v any, opts EncodeOptions) string {
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = DefaultDelimiter
	}
	e := &encoder{
		opts:   opts,
		indent: strings.Repeat(" ", opts.Indent),
	}
	e.encodeRoot(FromGo(v))
	return e.String()
}

// ============================================================
// Line Buffer
// ============================================================

// encoder accumulates (depth, text) pairs and renders them as
// indented lines.
type encoder struct {
	sb     strings.Builder
	opts   EncodeOptions
	indent string
	lines  int
}

// line appends one output line at the given depth.
func (e *encoder) line(depth int, text string) {
	if e.lines > 0 {
		e.sb.WriteByte('\n')
	}
	for i := 0; i < depth; i++ {
		e.sb.WriteString(e.indent)
	}
	e.sb.WriteString(text)
	e.lines++
}

// String renders the accumulated output.
func (e *encoder) String() string {
	return e.sb.String()
}

// ============================================================
// Encoding
// ============================================================

func (e *encoder) encodeRoot(v *Value) {
	switch v.Kind() {
	case KindObject:
		// A root-level empty object emits nothing.
		for _, f := range v.objVal {
			e.encodeField(f.Key, f.Value, 0)
		}
	case KindArray:
		e.encodeArray("", false, v, 0, "", 1)
	default:
		e.line(0, formatPrimitive(v, e.opts.Delimiter))
	}
}

// encodeField emits one object member at the given depth.
func (e *encoder) encodeField(key string, v *Value, depth int) {
	switch v.Kind() {
	case KindObject:
		e.line(depth, formatKey(key)+":")
		for _, f := range v.objVal {
			e.encodeField(f.Key, f.Value, depth+1)
		}
	case KindArray:
		e.encodeArray(key, true, v, depth, "", depth+1)
	default:
		e.line(depth, formatKey(key)+": "+formatPrimitive(v, e.opts.Delimiter))
	}
}

// encodeArray emits an array, choosing among the inline, tabular and
// itemized list forms. The header line is written at depth with the
// given prefix (a list-item dash, or nothing); the body goes at
// bodyDepth.
func (e *encoder) encodeArray(key string, hasKey bool, v *Value, depth int, prefix string, bodyDepth int) {
	delim := e.opts.Delimiter
	elems := v.arrVal

	header := func(fields []string) string {
		return prefix + formatHeader(key, hasKey, len(elems), fields, delim, e.opts.LengthMarker)
	}

	// Empty array: header only.
	if len(elems) == 0 {
		e.line(depth, header(nil))
		return
	}

	// Inline: all elements primitive.
	if allPrimitive(elems) {
		parts := make([]string, len(elems))
		for i, el := range elems {
			parts[i] = formatPrimitive(el, delim)
		}
		e.line(depth, header(nil)+" "+strings.Join(parts, string(delim)))
		return
	}

	// Tabular: uniform objects with primitive values.
	if fields, ok := tabularFields(elems); ok {
		e.line(depth, header(fields))
		for _, row := range elems {
			cells := make([]string, len(fields))
			for i, f := range fields {
				cells[i] = formatPrimitive(row.Get(f), delim)
			}
			e.line(bodyDepth, strings.Join(cells, string(delim)))
		}
		return
	}

	// Itemized list: one dash line per element. Arrays of arrays land
	// here too; each all-primitive child collapses onto its dash line.
	e.line(depth, header(nil))
	for _, el := range elems {
		e.encodeListItem(el, bodyDepth)
	}
}

// encodeListItem emits one "- " entry of an itemized list at depth.
func (e *encoder) encodeListItem(v *Value, depth int) {
	switch v.Kind() {
	case KindArray:
		e.encodeArray("", false, v, depth, "- ", depth+1)
	case KindObject:
		if len(v.objVal) == 0 {
			e.line(depth, "-")
			return
		}
		// First member rides the dash line; the rest indent beneath.
		// Members are logically one level below the dash, so a nested
		// container under the first key opens two levels down.
		first := v.objVal[0]
		switch first.Value.Kind() {
		case KindObject:
			e.line(depth, "- "+formatKey(first.Key)+":")
			for _, f := range first.Value.objVal {
				e.encodeField(f.Key, f.Value, depth+2)
			}
		case KindArray:
			e.encodeArray(first.Key, true, first.Value, depth, "- ", depth+2)
		default:
			e.line(depth, "- "+formatKey(first.Key)+": "+formatPrimitive(first.Value, e.opts.Delimiter))
		}
		for _, f := range v.objVal[1:] {
			e.encodeField(f.Key, f.Value, depth+1)
		}
	default:
		e.line(depth, "- "+formatPrimitive(v, e.opts.Delimiter))
	}
}

// ============================================================
// Representation Selection
// ============================================================

// allPrimitive reports whether every element is a scalar.
func allPrimitive(elems []*Value) bool {
	for _, el := range elems {
		if !el.isPrimitive() {
			return false
		}
	}
	return true
}

// tabularFields checks whether a list qualifies for tabular form:
// every element an object with the same key set (order-insensitive)
// and every value primitive. Returns the field order of the first row.
func tabularFields(elems []*Value) ([]string, bool) {
	first := elems[0]
	if first.Kind() != KindObject || len(first.objVal) == 0 {
		return nil, false
	}

	fields := make([]string, len(first.objVal))
	set := make(map[string]struct{}, len(first.objVal))
	for i, f := range first.objVal {
		if _, dup := set[f.Key]; dup {
			return nil, false
		}
		fields[i] = f.Key
		set[f.Key] = struct{}{}
	}

	for _, el := range elems {
		if el.Kind() != KindObject || len(el.objVal) != len(fields) {
			return nil, false
		}
		seen := make(map[string]struct{}, len(fields))
		for _, f := range el.objVal {
			if _, ok := set[f.Key]; !ok {
				return nil, false
			}
			if _, dup := seen[f.Key]; dup {
				return nil, false
			}
			seen[f.Key] = struct{}{}
			if !f.Value.isPrimitive() {
				return nil, false
			}
		}
	}
	return fields, true
}
