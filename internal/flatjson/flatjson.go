// Package flatjson is a deliberately small JSON codec for single-level
// objects whose values are plain strings.
//
// It does not understand escapes, nesting or arrays on the decode side.
// Commas or colons inside a value split it apart, and the encoder copies
// values verbatim without escaping. Callers that need real JSON should not
// use this package.
package flatjson

import (
	"errors"
	"strconv"
	"strings"
)

// ErrNotObject is returned when the input is not wrapped in braces.
var ErrNotObject = errors.New("flatjson: input is not a braced object")

// Decode parses a flat object such as {"a":"1","b":"2"} into a map.
//
// Pairs that do not split into exactly one key and one non-empty value are
// skipped; empty parts after the last colon do not count. Quotes are stripped from both sides, wherever they appear.
// An input without surrounding braces yields ErrNotObject; "{}" yields an
// empty map and no error.
func Decode(s string) (map[string]string, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != '{' || s[len(s)-1] != '}' {
		return nil, ErrNotObject
	}

	fields := make(map[string]string)
	for _, pair := range strings.Split(s[1:len(s)-1], ",") {
		kv := splitTrimmed(pair, ":")
		if len(kv) != 2 || kv[1] == "" {
			continue
		}
		fields[unquote(kv[0])] = unquote(kv[1])
	}
	return fields, nil
}

// splitTrimmed splits s around sep and drops trailing empty parts
func splitTrimmed(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

func unquote(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), `"`, "")
}

// Field is one key/value member of an encoded object.
type Field struct {
	Key   string
	Value string
	Bare  bool // write Value without quotes (booleans, numbers)
}

// String returns a quoted string field.
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Bool returns a bare boolean field.
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: strconv.FormatBool(value), Bare: true}
}

// Object is an ordered list of fields.
type Object []Field

// AppendTo appends the encoded object to b.
func (o Object) AppendTo(b []byte) []byte {
	b = append(b, '{')
	for i, f := range o {
		if i > 0 {
			b = append(b, ',')
		}
		b = append(b, '"')
		b = append(b, f.Key...)
		b = append(b, '"', ':')
		if f.Bare {
			b = append(b, f.Value...)
			continue
		}
		b = append(b, '"')
		b = append(b, f.Value...)
		b = append(b, '"')
	}
	return append(b, '}')
}

// String returns the encoded object.
func (o Object) String() string {
	return string(o.AppendTo(nil))
}

// EncodeArray encodes objs as a JSON array, preserving their order.
// A nil or empty slice encodes as "[]".
func EncodeArray(objs []Object) []byte {
	b := make([]byte, 0, 2+len(objs)*64)
	b = append(b, '[')
	for i, o := range objs {
		if i > 0 {
			b = append(b, ',')
		}
		b = o.AppendTo(b)
	}
	return append(b, ']')
}
