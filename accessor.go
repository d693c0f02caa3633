// accessor.go: nested field/index chain resolution and write-back mutation.
package coco

import "fmt"

// FieldAccessor resolves an ordered key chain (e.g. a.b[0].c evaluated to
// ["b", 0, "c"]) against a base container value. Reads walk the chain with
// GetField; writes locate the penultimate container, replace the final slot
// and return the whole mutated base, which the evaluator must write back to
// the binding owning the root variable (copy semantics make the mutation
// durable only through that re-assignment).
type FieldAccessor struct {
	value  Value
	fields []Value
}

// NewFieldAccessor wraps a base value and its evaluated key chain.
func NewFieldAccessor(value Value, fields []Value) *FieldAccessor {
	return &FieldAccessor{value: value, fields: fields}
}

// Get resolves the whole chain to the addressed value.
func (fa *FieldAccessor) Get() (Value, error) {
	container, err := fa.container()
	if err != nil {
		return Null, err
	}
	return container.GetField(fa.last())
}

// Set writes v into the final slot of the chain and returns the mutated base
// container for write-back.
func (fa *FieldAccessor) Set(v Value) (Value, error) {
	base := fa.value.Clone()

	// Walk to the penultimate container, remembering the path so each
	// mutated level can be stitched back into its parent.
	containers := []Value{base}
	cur := base
	for i := 0; i < len(fa.fields)-1; i++ {
		if !isContainer(cur) {
			return Null, fmt.Errorf("cannot access field of %s", cur.TypeName())
		}
		next, err := cur.GetField(fa.fields[i])
		if err != nil {
			return Null, err
		}
		containers = append(containers, next)
		cur = next
	}

	mutated, err := cur.SetField(fa.last(), v)
	if err != nil {
		return Null, err
	}

	// Stitch the mutated container back up the chain.
	for i := len(containers) - 2; i >= 0; i-- {
		mutated, err = containers[i].SetField(fa.fields[i], mutated)
		if err != nil {
			return Null, err
		}
	}
	return mutated, nil
}

// container resolves all but the last key, yielding the penultimate
// container for the final read.
func (fa *FieldAccessor) container() (Value, error) {
	cur := fa.value
	for i := 0; i < len(fa.fields)-1; i++ {
		if !isContainer(cur) {
			return Null, fmt.Errorf("cannot access field of %s", cur.TypeName())
		}
		next, err := cur.GetField(fa.fields[i])
		if err != nil {
			return Null, err
		}
		cur = next
	}
	if !isContainer(cur) {
		return Null, fmt.Errorf("cannot access field of %s", cur.TypeName())
	}
	return cur, nil
}

func (fa *FieldAccessor) last() Value {
	if len(fa.fields) == 0 {
		return Null
	}
	return fa.fields[len(fa.fields)-1]
}

func isContainer(v Value) bool {
	switch v.Tag {
	case VTString, VTArray, VTObject:
		return true
	default:
		return false
	}
}
