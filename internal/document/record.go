package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrFieldMissing is returned when a requested key was never written.
	ErrFieldMissing = errors.New("field missing")
	// ErrFieldType is returned when a stored value does not decode into the
	// requested type.
	ErrFieldType = errors.New("field has wrong type")
	// ErrDuplicateField is returned when a key is written twice.
	ErrDuplicateField = errors.New("duplicate field")
)

// Record is an ordered set of keyed fields. It implements the engine's
// FieldWriter and FieldReader; values are kept as JSON so a record can be
// written to disk, sent over the wire or stored in a database unchanged.
type Record struct {
	keys   []string
	values map[string]json.RawMessage
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{values: map[string]json.RawMessage{}}
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.keys)
}

// Keys returns the field keys in write order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Raw returns the JSON form of the field stored under key.
func (r *Record) Raw(key string) (json.RawMessage, bool) {
	v, ok := r.values[key]
	return v, ok
}

// WriteField stores value under key. Keys are write-once.
func (r *Record) WriteField(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode field %q: %w", key, err)
	}
	return r.put(key, data)
}

func (r *Record) put(key string, data json.RawMessage) error {
	if r.values == nil {
		r.values = map[string]json.RawMessage{}
	}
	if _, ok := r.values[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateField, key)
	}
	r.keys = append(r.keys, key)
	r.values[key] = data
	return nil
}

// ReadField decodes the field stored under key into dst.
func (r *Record) ReadField(key string, dst any) error {
	data, ok := r.values[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFieldMissing, key)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrFieldType, key, err)
	}
	return nil
}

// MarshalJSON writes the record as a JSON object in key order.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(r.values[k])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("record: expected object, got %v", tok)
	}

	out := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("record: expected key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		if err := out.put(key, raw); err != nil {
			return err
		}
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*r = *out
	return nil
}

// MarshalYAML writes the record as a YAML mapping in key order.
func (r *Record) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range r.keys {
		var v any
		dec := json.NewDecoder(bytes.NewReader(r.values[k]))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("record: field %q: %w", k, err)
		}
		var val yaml.Node
		if err := val.Encode(yamlValue(v)); err != nil {
			return nil, fmt.Errorf("record: field %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// yamlValue turns json.Number leaves into int64 or float64 so they are
// emitted as plain YAML numbers.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = yamlValue(e)
		}
	case []any:
		for i, e := range t {
			t[i] = yamlValue(e)
		}
	}
	return v
}

// UnmarshalYAML reads a YAML mapping, keeping its key order.
func (r *Record) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("record: line %d: expected mapping", node.Line)
	}

	out := NewRecord()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		var v any
		if err := node.Content[i+1].Decode(&v); err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("record: field %q: %w", key, err)
		}
		if err := out.put(key, data); err != nil {
			return err
		}
	}
	*r = *out
	return nil
}
