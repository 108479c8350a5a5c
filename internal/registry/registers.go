// Package registry implements the named storage of spec.md §4.3: registers
// (scalars), lists (homogeneous sequences), and functions (built-ins and
// customs), grounded on the teacher's FunctionRegistry/ClassRegistry pattern
// of a flat ordered name -> entry map with sequential name allocation
// (internal/interp/types/function_registry.go) — adapted from
// case-insensitive unit-qualified lookup to the engine's own r_i/l_i/f_i
// naming convention, which callers never type by hand.
package registry

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

// RegisterStore maps r_i names to scalar (Int/Float/Bool) values.
type RegisterStore struct {
	order []string
	names map[string]value.Value
	next  int
}

// NewRegisterStore creates an empty register store.
func NewRegisterStore() *RegisterStore {
	return &RegisterStore{names: make(map[string]value.Value)}
}

func isPrimitive(v value.Value) bool {
	return v.Kind == value.Int || v.Kind == value.Float || v.Kind == value.Bool
}

// Create allocates a fresh r_i name bound to v. Rejects non-primitive input.
func (s *RegisterStore) Create(v value.Value) (string, *errors.EngineError) {
	if !isPrimitive(v) {
		return "", errors.New(errors.TypeMismatch, errors.ErrMsgNotPrimitive)
	}
	name := fmt.Sprintf("r_%d", s.next)
	s.next++
	s.order = append(s.order, name)
	s.names[name] = v
	return name, nil
}

// Update overwrites the value bound to name. Rejects non-primitive input.
func (s *RegisterStore) Update(name string, v value.Value) *errors.EngineError {
	if !isPrimitive(v) {
		return errors.New(errors.TypeMismatch, errors.ErrMsgNotPrimitive)
	}
	if _, ok := s.names[name]; !ok {
		return errors.UnknownNameError(name)
	}
	s.names[name] = v
	return nil
}

// Delete removes name from the store.
func (s *RegisterStore) Delete(name string) *errors.EngineError {
	if _, ok := s.names[name]; !ok {
		return errors.UnknownNameError(name)
	}
	delete(s.names, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns the value bound to name.
func (s *RegisterStore) Get(name string) (value.Value, *errors.EngineError) {
	v, ok := s.names[name]
	if !ok {
		return value.Value{}, errors.UnknownNameError(name)
	}
	return v, nil
}

// Names returns all register names in creation order, matching the
// teacher's "keep insertion order when enumerating for UI listings" note.
func (s *RegisterStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IsValid reports whether name is a currently bound register.
func (s *RegisterStore) IsValid(name string) bool {
	_, ok := s.names[name]
	return ok
}

// Clone returns a deep copy, used by façade snapshotting.
func (s *RegisterStore) Clone() *RegisterStore {
	cp := &RegisterStore{
		order: append([]string(nil), s.order...),
		names: make(map[string]value.Value, len(s.names)),
		next:  s.next,
	}
	for k, v := range s.names {
		cp.names[k] = v.Clone()
	}
	return cp
}
