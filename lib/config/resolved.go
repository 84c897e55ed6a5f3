package config

import "github.com/tungsten-replicator/configure-service/lib/properties"

// Resolved is the read-only outcome of configuration resolution.
type Resolved struct {
	props *properties.Set
}

// NewResolved wraps a copy of s.
func NewResolved(s *properties.Set) *Resolved {
	return &Resolved{props: s.Clone()}
}

// Lookup returns the value of key and whether it is present.
func (r *Resolved) Lookup(key string) (string, bool) {
	return r.props.Get(key)
}

// Get returns the value of key, or "" when absent.
func (r *Resolved) Get(key string) string {
	v, _ := r.props.Get(key)
	return v
}

// Has reports whether key is present.
func (r *Resolved) Has(key string) bool {
	return r.props.Has(key)
}

// Equals reports whether key is present with exactly want.
func (r *Resolved) Equals(key, want string) bool {
	v, ok := r.props.Get(key)
	return ok && v == want
}

// Keys returns the resolved keys in merge order.
func (r *Resolved) Keys() []string {
	return r.props.Keys()
}

// Len returns the number of resolved keys.
func (r *Resolved) Len() int {
	return r.props.Len()
}

// Properties returns a mutable copy of the resolved set.
func (r *Resolved) Properties() *properties.Set {
	return r.props.Clone()
}

// RelayMode reports whether binlog extraction goes through the relay log.
func (r *Resolved) RelayMode() bool {
	return r.Equals(ReplExtractMethod, ExtractMethodRelay)
}
