package ninepay

import (
	"bytes"
	"encoding/json"
	"reflect"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	apperrors "github.com/ninepay-go/ninepay/internal/shared/errors"
)

// Payload is an insertion-ordered mapping of wire names to values. Values are
// scalars, json.Number amounts or nested payloads. Serialization of the same
// logical payload is byte-for-byte reproducible. The zero value is an empty
// payload ready to use.
type Payload struct {
	keys   []string
	values map[string]any
}

func NewPayload() *Payload {
	return &Payload{values: make(map[string]any)}
}

// Set stores a value. Replacing an existing key keeps its original position.
func (p *Payload) Set(key string, value any) *Payload {
	if p.values == nil {
		p.values = make(map[string]any)
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return p
}

func (p *Payload) Get(key string) (any, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Payload) Keys() []string {
	keys := make([]string, len(p.keys))
	copy(keys, p.keys)
	return keys
}

func (p *Payload) Len() int {
	return len(p.keys)
}

// Finalize returns a copy with empty, nil and zero-equivalent values removed.
// Nested payloads are finalized first and dropped when nothing is left.
func (p *Payload) Finalize() *Payload {
	out := NewPayload()
	for _, k := range p.keys {
		v := p.values[k]
		if nested, ok := v.(*Payload); ok {
			if nested == nil {
				continue
			}
			v = nested.Finalize()
		}
		if isEmptyValue(v) {
			continue
		}
		out.Set(k, v)
	}
	return out
}

// ToMap converts the payload, including nested payloads, to plain maps.
func (p *Payload) ToMap() map[string]any {
	m := make(map[string]any, len(p.keys))
	for _, k := range p.keys {
		v := p.values[k]
		if nested, ok := v.(*Payload); ok && nested != nil {
			v = nested.ToMap()
		}
		m[k] = v
	}
	return m
}

// MarshalJSON writes the fields in insertion order with HTML escaping disabled.
// Keys and string values must be valid UTF-8; the encoder would otherwise
// substitute U+FFFD and sign bytes the caller never supplied.
func (p *Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if !utf8.ValidString(k) {
			return nil, apperrors.NewValidationError("payload key is not valid UTF-8")
		}
		key, err := canonicalJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshalValue(k, p.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Canonical returns the canonical JSON serialization of the payload.
func (p *Payload) Canonical() (string, error) {
	b, err := p.MarshalJSON()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalValue(field string, v any) ([]byte, error) {
	switch val := v.(type) {
	case *Payload:
		if val != nil {
			return val.MarshalJSON()
		}
	case string:
		if !utf8.ValidString(val) {
			return nil, apperrors.NewValidationError(field + " is not valid UTF-8")
		}
	}
	return canonicalJSON(v)
}

func canonicalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func isEmptyValue(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case *Payload:
		return val == nil || val.Len() == 0
	case json.Number:
		d, err := decimal.NewFromString(string(val))
		return err == nil && d.IsZero()
	case decimal.Decimal:
		return val.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
