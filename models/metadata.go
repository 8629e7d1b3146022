package models

import (
	"database/sql/driver"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"io"
)

// Metadata is the open-ended attribute bag attached to an asset. Keys keep
// their insertion order; values are always strings.
type Metadata struct {
	keys   []string
	values map[string]string
}

func NewMetadata(pairs ...string) Metadata {
	var m Metadata
	for i := 0; i+1 < len(pairs); i += 2 {
		m.Set(pairs[i], pairs[i+1])
	}
	return m
}

func (m Metadata) Len() int { return len(m.keys) }

func (m Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m Metadata) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Set overwrites an existing key in place or appends a new one.
func (m *Metadata) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Metadata) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m Metadata) Clone() Metadata {
	var out Metadata
	for _, k := range m.keys {
		out.Set(k, m.values[k])
	}
	return out
}

// Merge returns a copy of m with every entry of overlay applied on top:
// overlay keys win, keys only present in m are preserved, new keys are
// appended in overlay order.
func (m Metadata) Merge(overlay Metadata) Metadata {
	out := m.Clone()
	for _, k := range overlay.keys {
		out.Set(k, overlay.values[k])
	}
	return out
}

func (m Metadata) MarshalJSON() ([]byte, error) {
	stream := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowStream(nil)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnStream(stream)

	stream.WriteObjectStart()
	for i, k := range m.keys {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectField(k)
		stream.WriteString(m.values[k])
	}
	stream.WriteObjectEnd()
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// UnmarshalJSON keeps document key order. Null values are dropped, non-string
// scalars and nested values are kept as their raw JSON text.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	iter := jsoniter.ConfigCompatibleWithStandardLibrary.BorrowIterator(data)
	defer jsoniter.ConfigCompatibleWithStandardLibrary.ReturnIterator(iter)

	var out Metadata
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		*m = out
		return nil
	case jsoniter.ObjectValue:
	default:
		return fmt.Errorf("metadata must be a JSON object")
	}

	iter.ReadObjectCB(func(it *jsoniter.Iterator, key string) bool {
		switch it.WhatIsNext() {
		case jsoniter.StringValue:
			out.Set(key, it.ReadString())
		case jsoniter.NilValue:
			it.ReadNil()
		default:
			out.Set(key, string(it.SkipAndReturnBytes()))
		}
		return true
	})
	if iter.Error != nil && iter.Error != io.EOF {
		return fmt.Errorf("failed to decode metadata: %w", iter.Error)
	}
	*m = out
	return nil
}

// Value stores metadata as a JSON text parameter, suitable for a ::jsonb cast.
func (m Metadata) Value() (driver.Value, error) {
	b, err := m.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		if len(v) == 0 {
			*m = Metadata{}
			return nil
		}
		return m.UnmarshalJSON(v)
	case string:
		if v == "" {
			*m = Metadata{}
			return nil
		}
		return m.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("unsupported metadata column type %T", src)
	}
}
