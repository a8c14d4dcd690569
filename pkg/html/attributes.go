package html

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Attributes is an insertion-ordered attribute map. Setting an existing
// name replaces its value but keeps its original position.
//
// A nil *Attributes behaves as an empty map for reads.
type Attributes struct {
	m *linkedhashmap.Map
}

// NewAttributes returns an empty attribute map.
func NewAttributes() *Attributes {
	return &Attributes{m: linkedhashmap.New()}
}

// Get returns the value of the named attribute.
func (a *Attributes) Get(name string) (string, bool) {
	if a == nil || a.m == nil {
		return "", false
	}
	v, ok := a.m.Get(name)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set stores an attribute value.
func (a *Attributes) Set(name, value string) {
	if a.m == nil {
		a.m = linkedhashmap.New()
	}
	a.m.Put(name, value)
}

// Remove deletes an attribute if present.
func (a *Attributes) Remove(name string) {
	if a == nil || a.m == nil {
		return
	}
	a.m.Remove(name)
}

// Len returns the number of attributes.
func (a *Attributes) Len() int {
	if a == nil || a.m == nil {
		return 0
	}
	return a.m.Size()
}

// Names returns the attribute names in insertion order.
func (a *Attributes) Names() []string {
	if a == nil || a.m == nil {
		return nil
	}
	keys := a.m.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Clone returns an independent copy.
func (a *Attributes) Clone() *Attributes {
	c := NewAttributes()
	for _, name := range a.Names() {
		v, _ := a.Get(name)
		c.Set(name, v)
	}
	return c
}
