// Package jsonpath navigates loosely shaped JSON documents without failing on
// missing or wrongly typed nodes.
//
// Every lookup returns a Value. A lookup that walks off the document, indexes
// into a scalar or goes out of range yields the absent Value instead of an
// error, so callers only check the leaves they actually need.
package jsonpath

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Parse for text that is not a JSON document.
var ErrInvalidJSON = errors.New("invalid JSON")

// Value is a node of a parsed document, or the absent sentinel.
type Value struct {
	r gjson.Result
}

// Parse validates text and returns its root node.
func Parse(text string) (Value, error) {
	if !gjson.Valid(text) {
		return Value{}, ErrInvalidJSON
	}
	return Value{r: gjson.Parse(text)}, nil
}

// Get walks path from v. Each step is a string object key or an int array
// index; any other step type yields the absent Value.
func (v Value) Get(path ...any) Value {
	cur := v.r
	for _, step := range path {
		switch s := step.(type) {
		case string:
			if !cur.IsObject() {
				return Value{}
			}
			cur = cur.Get(escape(s))
		case int:
			if !cur.IsArray() || s < 0 {
				return Value{}
			}
			elems := cur.Array()
			if s >= len(elems) {
				return Value{}
			}
			cur = elems[s]
		default:
			return Value{}
		}
		if !cur.Exists() {
			return Value{}
		}
	}
	return Value{r: cur}
}

// Exists reports whether the node is present. A JSON null is present.
func (v Value) Exists() bool {
	return v.r.Exists()
}

// IsArray reports whether the node is a JSON array.
func (v Value) IsArray() bool {
	return v.r.IsArray()
}

// IsObject reports whether the node is a JSON object.
func (v Value) IsObject() bool {
	return v.r.IsObject()
}

// IsNumber reports whether the node is a JSON number.
func (v Value) IsNumber() bool {
	return v.r.Type == gjson.Number
}

// Seq returns the elements of an array node and nil for anything else.
func (v Value) Seq() []Value {
	if !v.r.IsArray() {
		return nil
	}
	elems := v.r.Array()
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[i] = Value{r: e}
	}
	return out
}

// Str returns the scalar text of a string, number or boolean node and ""
// for everything else, including JSON null.
func (v Value) Str() string {
	switch v.r.Type {
	case gjson.String:
		return v.r.Str
	case gjson.Number, gjson.True, gjson.False:
		return v.r.String()
	default:
		return ""
	}
}

// Uint returns the node as an unsigned integer. Negative numbers and numbers
// with a non-zero fraction are rejected.
func (v Value) Uint() (uint64, bool) {
	if v.r.Type != gjson.Number {
		return 0, false
	}
	if n, err := strconv.ParseUint(v.r.Raw, 10, 64); err == nil {
		return n, true
	}
	f := v.r.Num
	if f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
		return 0, false
	}
	return uint64(f), true
}

// Int returns the node as a signed integer. Numbers with a non-zero fraction
// are rejected.
func (v Value) Int() (int64, bool) {
	if v.r.Type != gjson.Number {
		return 0, false
	}
	if n, err := strconv.ParseInt(v.r.Raw, 10, 64); err == nil {
		return n, true
	}
	f := v.r.Num
	if f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// Raw returns the JSON text of the node, or "" when absent.
func (v Value) Raw() string {
	return v.r.Raw
}

// escape quotes the characters gjson treats as path syntax so that s is
// matched as a literal object key.
func escape(s string) string {
	if strings.IndexFunc(s, isPathSyntax) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isPathSyntax(r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isPathSyntax(r rune) bool {
	return strings.ContainsRune(`.*?|#@\!=<>%~{}[]",:`, r)
}
