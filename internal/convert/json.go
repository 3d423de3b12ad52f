package convert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"

	"github.com/nucleus/cmis-core/pkg/cmis"
)

// =============================================================================
// ORDERED JSON
// =============================================================================

// Object is a decoded JSON object that remembers key order. Values are
// *Object, []any, string, json.Number, bool or nil.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]any)}
}

// Set stores a value. A repeated key keeps its first position.
func (o *Object) Set(key string, value any) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
	return o
}

// Keys returns the keys in wire order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Value returns the value stored under key, or nil.
func (o *Object) Value(key string) any {
	v, _ := o.Get(key)
	return v
}

// String returns a scalar value as text, or "" when absent, null or nested.
func (o *Object) String(key string) string {
	s, _ := scalarText(o.Value(key))
	return s
}

// Bool returns a JSON boolean, or nil when absent or not a boolean.
func (o *Object) Bool(key string) *bool {
	b, ok := o.Value(key).(bool)
	if !ok {
		return nil
	}
	return &b
}

// Int64 returns a JSON integer, or nil when absent or not an integer.
func (o *Object) Int64(key string) *int64 {
	n, ok := o.Value(key).(json.Number)
	if !ok {
		return nil
	}
	i, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return nil
	}
	return &i
}

// BigInt returns a JSON integer of any size, or nil.
func (o *Object) BigInt(key string) *big.Int {
	n, ok := o.Value(key).(json.Number)
	if !ok {
		return nil
	}
	i, ok := new(big.Int).SetString(n.String(), 10)
	if !ok {
		return nil
	}
	return i
}

// Strings returns an array of scalars as text. A bare scalar yields one
// element; nulls are skipped.
func (o *Object) Strings(key string) []string {
	switch v := o.Value(key).(type) {
	case nil:
		return nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := scalarText(item); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		if s, ok := scalarText(v); ok {
			return []string{s}
		}
		return nil
	}
}

// MarshalJSON writes the object back with its key order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// =============================================================================
// DECODING
// =============================================================================

// Parse decodes a JSON document keeping object key order and number text.
func Parse(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, cmis.WrapError(cmis.ErrInvalidResponse, "decode JSON", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, cmis.NewError(cmis.ErrInvalidResponse, "trailing data after JSON value")
	}
	return v, nil
}

// ParseObject decodes a JSON document that must be an object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, cmis.Errorf(cmis.ErrInvalidResponse, "expected JSON object, got %s", jsonKind(v))
	}
	return obj, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil

	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	}

	return nil, fmt.Errorf("unexpected delimiter %v", delim)
}

// =============================================================================
// SHAPE HELPERS
// =============================================================================

func asObject(raw any, what string) (*Object, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case *Object:
		return v, nil
	}
	return nil, cmis.Errorf(cmis.ErrInvalidResponse, "%s: expected JSON object, got %s", what, jsonKind(raw))
}

func asArray(raw any, what string) ([]any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	}
	return nil, cmis.Errorf(cmis.ErrInvalidResponse, "%s: expected JSON array, got %s", what, jsonKind(raw))
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case *Object:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, int, int64:
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// scalarText renders a JSON scalar as text. Nested values and null report false.
func scalarText(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case json.Number:
		return x.String(), true
	case bool:
		return strconv.FormatBool(x), true
	}
	return "", false
}
