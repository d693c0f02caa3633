// object.go: the Object container backing VTObject values.
package coco

import "sort"

// Object is an ordered string-keyed mapping. Iteration order is the sorted
// key order, so rendering and structural comparison are deterministic
// regardless of insertion history. Keys are unique; every entry is a
// fully-formed Value.
type Object struct {
	entries map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{entries: map[string]Value{}}
}

// ObjectFrom builds an Object from a plain Go map.
func ObjectFrom(m map[string]Value) *Object {
	o := NewObject()
	for k, v := range m {
		o.entries[k] = v
	}
	return o
}

// Obj wraps an Object into a Value.
func Obj(o *Object) Value { return Value{Tag: VTObject, Data: o} }

// Get returns the bound value and whether the key exists.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.entries[key]
	return v, ok
}

// Set inserts or overwrites a binding.
func (o *Object) Set(key string, v Value) {
	o.entries[key] = v
}

// Len reports the number of entries.
func (o *Object) Len() int { return len(o.entries) }

// SortedKeys returns the keys in iteration order.
func (o *Object) SortedKeys() []string {
	keys := make([]string, 0, len(o.entries))
	for k := range o.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone deep-copies the object.
func (o *Object) Clone() *Object {
	out := NewObject()
	for k, v := range o.entries {
		out.entries[k] = v.Clone()
	}
	return out
}
