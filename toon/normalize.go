package toon

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
)

// maxSafeInt is the largest integer a float64 represents exactly.
const maxSafeInt = 1<<53 - 1

// FromGo normalizes an arbitrary Go value into a canonical Value
// tree. It is a total function: unsupported types (funcs, channels,
// complex numbers) become null rather than erroring.
//
// Notable rules:
//   - integral floats in the IEEE-exact range fold to Int
//   - NaN and ±Inf become null; negative zero becomes zero
//   - time.Time renders as an RFC 3339 string
//   - []byte renders as a base64 string
//   - values implementing json.Marshaler normalize via that hook
//   - Go map keys are sorted for deterministic output (Go maps carry
//     no insertion order); use Obj/F literals to control field order
func FromGo(v any) *Value {
	switch val := v.(type) {
	case nil:
		return Null()
	case *Value:
		if val == nil {
			return Null()
		}
		return val
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int64:
		return Int(val)
	case float64:
		return normalizeFloat(val)
	case string:
		return Str(val)
	case json.Number:
		return normalizeNumber(val)
	case time.Time:
		return Str(val.Format(time.RFC3339))
	case []byte:
		return Str(base64.StdEncoding.EncodeToString(val))
	case []any:
		elems := make([]*Value, len(val))
		for i, el := range val {
			elems[i] = FromGo(el)
		}
		return Arr(elems...)
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fields := make([]Field, len(keys))
		for i, k := range keys {
			fields[i] = Field{Key: k, Value: FromGo(val[k])}
		}
		return Obj(fields...)
	case json.Marshaler:
		return normalizeMarshaler(val)
	}
	return reflectValue(reflect.ValueOf(v))
}

func normalizeFloat(f float64) *Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	// Fold integral floats (JSON numbers arrive as float64) and
	// collapse -0 to 0 along the way.
	if f == math.Trunc(f) && f >= -maxSafeInt && f <= maxSafeInt {
		return Int(int64(f))
	}
	return Float(f)
}

func normalizeNumber(n json.Number) *Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Int(i)
		}
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return normalizeFloat(f)
	}
	return Null()
}

func normalizeMarshaler(m json.Marshaler) *Value {
	data, err := m.MarshalJSON()
	if err != nil {
		return Null()
	}
	v, err := FromJSON(data)
	if err != nil {
		return Null()
	}
	return v
}

// reflectValue normalizes the long tail of Go types.
func reflectValue(rv reflect.Value) *Value {
	if !rv.IsValid() {
		return Null()
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return Null()
		}
		return FromGo(rv.Elem().Interface())

	case reflect.Bool:
		return Bool(rv.Bool())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u <= math.MaxInt64 {
			return Int(int64(u))
		}
		return Float(float64(u))

	case reflect.Float32, reflect.Float64:
		return normalizeFloat(rv.Float())

	case reflect.String:
		return Str(rv.String())

	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return Str(base64.StdEncoding.EncodeToString(rv.Bytes()))
		}
		elems := make([]*Value, rv.Len())
		for i := range elems {
			elems[i] = FromGo(rv.Index(i).Interface())
		}
		return Arr(elems...)

	case reflect.Map:
		return reflectMap(rv)

	case reflect.Struct:
		return Obj(structFields(rv)...)
	}

	// func, chan, complex, unsafe pointer
	return Null()
}

// reflectMap normalizes a Go map. A map whose keys are exactly the
// integers 0..n-1 is treated as a sequence; anything else becomes an
// object with stringified keys in sorted order.
func reflectMap(rv reflect.Value) *Value {
	if seq, ok := sequenceFromIntMap(rv); ok {
		return seq
	}

	type kv struct {
		key string
		val reflect.Value
	}
	entries := make([]kv, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, kv{stringifyKey(iter.Key()), iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	fields := make([]Field, len(entries))
	for i, e := range entries {
		fields[i] = Field{Key: e.key, Value: FromGo(e.val.Interface())}
	}
	return Obj(fields...)
}

func sequenceFromIntMap(rv reflect.Value) (*Value, bool) {
	if rv.Len() == 0 {
		return nil, false
	}
	switch rv.Type().Key().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return nil, false
	}

	byIndex := make(map[int64]reflect.Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		var i int64
		k := iter.Key()
		switch k.Kind() {
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
			u := k.Uint()
			if u > math.MaxInt64 {
				return nil, false
			}
			i = int64(u)
		default:
			i = k.Int()
		}
		if i < 0 || i >= int64(rv.Len()) {
			return nil, false
		}
		byIndex[i] = iter.Value()
	}
	if len(byIndex) != rv.Len() {
		return nil, false
	}

	elems := make([]*Value, rv.Len())
	for i := range elems {
		elems[i] = FromGo(byIndex[int64(i)].Interface())
	}
	return Arr(elems...), true
}

func stringifyKey(k reflect.Value) string {
	if k.Kind() == reflect.String {
		return k.String()
	}
	return fmt.Sprint(k.Interface())
}

// structFields normalizes exported struct fields in declaration
// order, honoring the name and "-" parts of json tags. Anonymous
// embedded structs without a tag are flattened.
func structFields(rv reflect.Value) []Field {
	t := rv.Type()
	var fields []Field
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if sf.PkgPath != "" {
			continue // unexported
		}
		name := sf.Name
		tag := sf.Tag.Get("json")
		if tag == "-" {
			continue
		}
		if tag != "" {
			if idx := strings.IndexByte(tag, ','); idx >= 0 {
				tag = tag[:idx]
			}
			if tag != "" {
				name = tag
			}
		}
		if sf.Anonymous && sf.Tag.Get("json") == "" && sf.Type.Kind() == reflect.Struct {
			fields = append(fields, structFields(rv.Field(i))...)
			continue
		}
		fields = append(fields, Field{Key: name, Value: FromGo(rv.Field(i).Interface())})
	}
	return fields
}
