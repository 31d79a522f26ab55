// Package toon implements TOON, a token-oriented, line-structured
// text notation for tree-shaped data.
//
// TOON is designed to be:
//   - Token-cheap (bare strings, no braces, arrays declare their
//     length once instead of repeating per-row keys)
//   - Human-readable (indentation-sensitive, one value per line)
//   - Round-trippable to JSON
//
// # Data Model
//
// Scalars: null, bool, int, float, string
// Containers: object (ordered fields), array
//
// # Syntax
//
// Objects are key: value lines; nesting is two-space indentation:
//
//	user:
//	  id: 42
//	  name: Ada
//
// An array picks the most compact of three forms. All-primitive
// arrays go inline on one line:
//
//	tags[3]: alpha,beta,gamma
//
// Arrays of uniform objects become a table, one delimiter-joined row
// per element:
//
//	users[2,]{id,name}:
//	  1,Alice
//	  2,Bob
//
// Everything else is an itemized list:
//
//	mixed[3]:
//	  - 1
//	  - name: x
//	  - [2]: a,b
//
// Strings are bare when unambiguous and double-quoted otherwise;
// quoting uses backslash escapes (\\ \" \n \r \t \uXXXX).
//
// # Usage
//
//	text := toon.Encode(map[string]any{"id": 1, "name": "Ada"})
//	v, err := toon.Decode(text)
//
// Encode accepts arbitrary Go values and never fails; unsupported
// leaf types degrade to null. Decode fails with a *DecodeError
// carrying the offending line number. Strict mode (the default)
// rejects declared array lengths that disagree with the body.
package toon
