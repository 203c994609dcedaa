package soocial

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"

	"gopkg.in/yaml.v3"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindAbsent is an element with no children, no attributes and no text.
	KindAbsent Kind = iota
	// KindScalar is trimmed element text.
	KindScalar
	// KindRecord is a keyed mapping of heterogeneous children and attributes.
	KindRecord
	// KindList is an ordered sequence of repeated children.
	KindList
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindScalar:
		return "scalar"
	case KindRecord:
		return "record"
	case KindList:
		return "list"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is the decoded form of an XML subtree. The zero Value is Absent.
type Value struct {
	kind   Kind
	text   string
	record *Record
	list   []Value
}

// Absent returns the empty Value.
func Absent() Value {
	return Value{}
}

// Scalar wraps text.
func Scalar(text string) Value {
	return Value{kind: KindScalar, text: text}
}

// RecordOf wraps a Record. A nil record is treated as empty.
func RecordOf(record *Record) Value {
	if record == nil {
		record = NewRecord()
	}

	return Value{kind: KindRecord, record: record}
}

// ListOf wraps items in document order.
func ListOf(items ...Value) Value {
	list := make([]Value, len(items))
	copy(list, items)

	return Value{kind: KindList, list: list}
}

// Kind reports the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether v carries nothing.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Text returns the scalar text.
func (v Value) Text() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}

	return v.text, true
}

// Record returns the underlying record.
func (v Value) Record() (*Record, bool) {
	if v.kind != KindRecord {
		return nil, false
	}

	return v.record, true
}

// List returns the list items. The returned slice must not be modified.
func (v Value) List() ([]Value, bool) {
	if v.kind != KindList {
		return nil, false
	}

	return v.list, true
}

// Lookup returns the field stored under key when v is a Record.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindRecord {
		return Absent(), false
	}

	return v.record.Get(key)
}

// StringOr returns the scalar text stored under key, or def when the field is
// missing or not a scalar.
func (v Value) StringOr(key, def string) string {
	field, ok := v.Lookup(key)
	if !ok {
		return def
	}

	text, ok := field.Text()
	if !ok {
		return def
	}

	return text
}

// Len returns the number of list items or record fields, and zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindRecord:
		return v.record.Len()
	default:
		return 0
	}
}

// Interface converts v to plain Go data: nil, string, map[string]any or []any.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.text
	case KindRecord:
		out := make(map[string]any, v.record.Len())
		for key, field := range v.record.All() {
			out[key] = field.Interface()
		}

		return out
	case KindList:
		out := make([]any, 0, len(v.list))
		for _, item := range v.list {
			out = append(out, item.Interface())
		}

		return out
	default:
		return nil
	}
}

// MarshalJSON implements json.Marshaler, keeping record fields in document order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.text)
	case KindRecord:
		return v.record.MarshalJSON()
	case KindList:
		var buf bytes.Buffer

		buf.WriteByte('[')

		for i, item := range v.list {
			if i > 0 {
				buf.WriteByte(',')
			}

			data, err := item.MarshalJSON()
			if err != nil {
				return nil, err
			}

			buf.Write(data)
		}

		buf.WriteByte(']')

		return buf.Bytes(), nil
	default:
		return []byte("null"), nil
	}
}

// MarshalYAML implements yaml.Marshaler, keeping record fields in document order.
func (v Value) MarshalYAML() (interface{}, error) {
	return v.yamlNode(), nil
}

func (v Value) yamlNode() *yaml.Node {
	switch v.kind {
	case KindScalar:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.text}
	case KindRecord:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, field := range v.record.All() {
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				field.yamlNode(),
			)
		}

		return node
	case KindList:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			node.Content = append(node.Content, item.yamlNode())
		}

		return node
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// Record is an ordered mapping from tag or attribute name to Value.
type Record struct {
	keys   []string
	fields map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]Value)}
}

// Set stores value under key. Setting an existing key replaces its value but
// keeps its original position. The zero Record is ready to use.
func (r *Record) Set(key string, value Value) {
	if r.fields == nil {
		r.fields = make(map[string]Value)
	}

	if _, exists := r.fields[key]; !exists {
		r.keys = append(r.keys, key)
	}

	r.fields[key] = value
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	if r == nil {
		return Absent(), false
	}

	value, ok := r.fields[key]

	return value, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}

	keys := make([]string, len(r.keys))
	copy(keys, r.keys)

	return keys
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}

	return len(r.keys)
}

// All iterates over the fields in insertion order.
func (r *Record) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		if r == nil {
			return
		}

		for _, key := range r.keys {
			if !yield(key, r.fields[key]) {
				return
			}
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	i := 0
	for key, field := range r.All() {
		if i > 0 {
			buf.WriteByte(',')
		}

		i++

		name, err := json.Marshal(key)
		if err != nil {
			return nil, fmt.Errorf("encoding field name %q: %w", key, err)
		}

		data, err := field.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding field %q: %w", key, err)
		}

		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(data)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
