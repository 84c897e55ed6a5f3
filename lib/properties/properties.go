package properties

import (
	"bufio"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Set is an ordered string->string map with overwrite semantics.
// The zero value is an empty set ready for use.
type Set struct {
	keys   []string
	values map[string]string
}

// New returns an empty Set.
func New() *Set {
	return &Set{values: make(map[string]string)}
}

// FromPairs builds a Set from alternating key/value arguments.
// A trailing key without a value is stored with an empty value.
func FromPairs(kv ...string) *Set {
	s := New()
	for i := 0; i < len(kv); i += 2 {
		value := ""
		if i+1 < len(kv) {
			value = kv[i+1]
		}
		s.Set(kv[i], value)
	}
	return s
}

// Get returns the value stored under key and whether the key is present.
func (s *Set) Get(key string) (string, bool) {
	if s == nil || s.values == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present, even with an empty value.
func (s *Set) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set stores value under key, overwriting any previous value.
// New keys are appended to the iteration order; existing keys keep their slot.
func (s *Set) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Delete removes key from the set.
func (s *Set) Delete(key string) {
	if s == nil || s.values == nil {
		return
	}
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Merge calls Set for every key of other, in other's order.
// Later merges win over earlier ones.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		s.Set(k, other.values[k])
	}
}

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := New()
	c.Merge(s)
	return c
}

// Map returns the contents of s as a plain map.
func (s *Set) Map() map[string]string {
	out := make(map[string]string, s.Len())
	if s == nil {
		return out
	}
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// WriteTo writes s as "key=value" lines in insertion order.
func (s *Set) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, k := range s.Keys() {
		n, err := fmt.Fprintf(bw, "%s=%s\n", k, s.values[k])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// MarshalYAML renders s as a YAML mapping that keeps insertion order.
func (s *Set) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range s.Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s.values[k]},
		)
	}
	return node, nil
}
