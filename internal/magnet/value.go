package magnet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// Value holds a protocol parameter that is a scalar when the key appeared once and a
// sequence when it appeared more than once. The zero Value is unset.
type Value[T any] struct {
	items []T
	seq   bool
}

// Scalar returns a Value holding a single item.
func Scalar[T any](v T) Value[T] {
	return Value[T]{items: []T{v}}
}

// Sequence returns a Value that is a sequence even when it holds zero or one items.
func Sequence[T any](vs ...T) Value[T] {
	return Value[T]{items: slices.Clone(vs), seq: true}
}

// Push appends v, promoting a scalar to a sequence.
func (v *Value[T]) Push(x T) {
	if len(v.items) > 0 {
		v.seq = true
	}
	v.items = append(v.items, x)
}

func (v Value[T]) IsSet() bool {
	return v.seq || len(v.items) > 0
}

// IsZero lets encoding/json omit unset values.
func (v Value[T]) IsZero() bool {
	return !v.IsSet()
}

func (v Value[T]) IsSequence() bool {
	return v.seq
}

func (v Value[T]) Len() int {
	return len(v.items)
}

// Items returns the values in occurrence order. A scalar yields one item.
func (v Value[T]) Items() []T {
	return slices.Clone(v.items)
}

func (v Value[T]) First() (T, bool) {
	if len(v.items) == 0 {
		var zero T
		return zero, false
	}
	return v.items[0], true
}

func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch {
	case !v.IsSet():
		return []byte("null"), nil
	case v.seq:
		return json.Marshal(v.items)
	default:
		return json.Marshal(v.items[0])
	}
}

// UnmarshalJSON tries the sequence form first, so a Value[[]string] reads ["a","b"] as one
// scalar list and [["a"],["b"]] as a sequence of two.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*v = Value[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err == nil {
		*v = Sequence(items...)
		return nil
	}
	var one T
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("magnet: value is neither %T nor a list of it: %w", one, err)
	}
	*v = Scalar(one)
	return nil
}

// OrderedSet is a string set that remembers first-insertion order.
type OrderedSet struct {
	items []string
	seen  map[string]struct{}
}

func NewOrderedSet(items ...string) *OrderedSet {
	s := &OrderedSet{seen: make(map[string]struct{}, len(items))}
	s.Add(items...)
	return s
}

// Add inserts items not already present, keeping first-occurrence order.
func (s *OrderedSet) Add(items ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{}, len(items))
	}
	for _, item := range items {
		if _, ok := s.seen[item]; ok {
			continue
		}
		s.seen[item] = struct{}{}
		s.items = append(s.items, item)
	}
}

func (s *OrderedSet) Has(item string) bool {
	_, ok := s.seen[item]
	return ok
}

func (s *OrderedSet) Len() int {
	return len(s.items)
}

// Items never returns nil.
func (s *OrderedSet) Items() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Params keeps pass-through parameters in the order their keys were first seen.
type Params struct {
	keys   []string
	values map[string]Value[string]
}

// Push appends val under key, promoting an existing scalar to a sequence.
func (p *Params) Push(key, val string) {
	cur, ok := p.values[key]
	if !ok {
		p.keys = append(p.keys, key)
	}
	cur.Push(val)
	p.set(key, cur)
}

// Set replaces the value of key, keeping its original position.
func (p *Params) Set(key string, v Value[string]) {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.set(key, v)
}

func (p *Params) set(key string, v Value[string]) {
	if p.values == nil {
		p.values = make(map[string]Value[string])
	}
	p.values[key] = v
}

func (p Params) Get(key string) (Value[string], bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *Params) Del(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	p.keys = slices.DeleteFunc(p.keys, func(k string) bool { return k == key })
}

func (p Params) Keys() []string {
	return slices.Clone(p.keys)
}

func (p Params) Len() int {
	return len(p.keys)
}

func (p Params) IsZero() bool {
	return len(p.keys) == 0
}

func (p Params) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range p.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := p.values[k].MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON streams the object so key order survives.
func (p *Params) UnmarshalJSON(data []byte) error {
	*p = Params{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("magnet: params must be a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("magnet: unexpected params key %v", tok)
		}
		var v Value[string]
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("magnet: params %q: %w", key, err)
		}
		p.Set(key, v)
	}
	_, err = dec.Token()
	return err
}
