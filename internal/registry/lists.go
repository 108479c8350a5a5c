package registry

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

// ListStore maps l_i names to homogeneous lists of primitives.
type ListStore struct {
	order []string
	lists map[string][]value.Value
	next  int
}

// NewListStore creates an empty list store.
func NewListStore() *ListStore {
	return &ListStore{lists: make(map[string][]value.Value)}
}

func isHomogeneous(elems []value.Value) bool {
	if len(elems) == 0 {
		return true
	}
	kind := homogeneousKind(elems[0])
	if kind == value.Unknown {
		return false
	}
	for _, e := range elems[1:] {
		if homogeneousKind(e) != kind {
			return false
		}
	}
	return true
}

// homogeneousKind folds Int and Float together as "Num" (value.Int used as
// the representative tag), mirroring typeterm's Num ground type.
func homogeneousKind(v value.Value) value.Kind {
	switch v.Kind {
	case value.Int, value.Float:
		return value.Int
	case value.Bool:
		return value.Bool
	}
	return value.Unknown
}

// Create allocates a fresh l_i name bound to elems. Elements must be all of
// the same supported kind (Num or Bool), or the list may be empty.
func (s *ListStore) Create(elems []value.Value) (string, *errors.EngineError) {
	if !isHomogeneous(elems) {
		return "", errors.New(errors.TypeMismatch, "elements are not all of the same supported type")
	}
	name := fmt.Sprintf("l_%d", s.next)
	s.next++
	s.order = append(s.order, name)
	s.lists[name] = cloneList(elems)
	return name, nil
}

// Update replaces the entire list bound to name, subject to the same
// homogeneity check as Create.
func (s *ListStore) Update(name string, elems []value.Value) *errors.EngineError {
	if _, ok := s.lists[name]; !ok {
		return errors.UnknownNameError(name)
	}
	if !isHomogeneous(elems) {
		return errors.Newf(errors.TypeMismatch, errors.ErrMsgListElementType, name)
	}
	s.lists[name] = cloneList(elems)
	return nil
}

// Delete removes name from the store.
func (s *ListStore) Delete(name string) *errors.EngineError {
	if _, ok := s.lists[name]; !ok {
		return errors.UnknownNameError(name)
	}
	delete(s.lists, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Get returns a deep copy of the list bound to name.
func (s *ListStore) Get(name string) ([]value.Value, *errors.EngineError) {
	l, ok := s.lists[name]
	if !ok {
		return nil, errors.UnknownNameError(name)
	}
	return cloneList(l), nil
}

// Names returns all list names in creation order.
func (s *ListStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// IsValid reports whether name is a currently bound list.
func (s *ListStore) IsValid(name string) bool {
	_, ok := s.lists[name]
	return ok
}

// elementAllowed checks whether v's kind belongs to the list's supported
// element set (spec.md §4.3 supported_element_types).
func elementAllowed(list []value.Value, v value.Value) bool {
	rep := value.NewList(list)
	allowed := value.SupportedElementTypes(rep)
	if allowed == nil {
		return false
	}
	_, ok := allowed[v.Kind]
	return ok
}

// GetElement returns the element at index, deferring IndexError to the
// caller as spec.md §4.3 directs ("Getting an element defers IndexError to
// the caller").
func (s *ListStore) GetElement(name string, index int) (value.Value, *errors.EngineError) {
	l, ok := s.lists[name]
	if !ok {
		return value.Value{}, errors.UnknownNameError(name)
	}
	if index < 0 || index >= len(l) {
		return value.Value{}, errors.IndexOutOfRangeError(index, len(l))
	}
	return l[index].Clone(), nil
}

// Append adds v to the end of the list bound to name, after checking v's
// type belongs to the list's supported element set.
func (s *ListStore) Append(name string, v value.Value) *errors.EngineError {
	l, ok := s.lists[name]
	if !ok {
		return errors.UnknownNameError(name)
	}
	if !elementAllowed(l, v) {
		return errors.Newf(errors.TypeMismatch, errors.ErrMsgListElementType, name)
	}
	s.lists[name] = append(l, v.Clone())
	return nil
}

// InsertElement inserts v at index, shifting subsequent elements right.
func (s *ListStore) InsertElement(name string, index int, v value.Value) *errors.EngineError {
	l, ok := s.lists[name]
	if !ok {
		return errors.UnknownNameError(name)
	}
	if index < 0 || index > len(l) {
		return errors.IndexOutOfRangeError(index, len(l))
	}
	if !elementAllowed(l, v) {
		return errors.Newf(errors.TypeMismatch, errors.ErrMsgListElementType, name)
	}
	grown := append(l, value.Value{})
	copy(grown[index+1:], grown[index:])
	grown[index] = v.Clone()
	s.lists[name] = grown
	return nil
}

// UpdateElement replaces the element at index.
func (s *ListStore) UpdateElement(name string, index int, v value.Value) *errors.EngineError {
	l, ok := s.lists[name]
	if !ok {
		return errors.UnknownNameError(name)
	}
	if index < 0 || index >= len(l) {
		return errors.IndexOutOfRangeError(index, len(l))
	}
	if !elementAllowed(l, v) {
		return errors.Newf(errors.TypeMismatch, errors.ErrMsgListElementType, name)
	}
	l[index] = v.Clone()
	return nil
}

// DeleteElement removes the element at index, shifting subsequent indices
// down.
func (s *ListStore) DeleteElement(name string, index int) *errors.EngineError {
	l, ok := s.lists[name]
	if !ok {
		return errors.UnknownNameError(name)
	}
	if index < 0 || index >= len(l) {
		return errors.IndexOutOfRangeError(index, len(l))
	}
	s.lists[name] = append(l[:index], l[index+1:]...)
	return nil
}

func cloneList(elems []value.Value) []value.Value {
	cp := make([]value.Value, len(elems))
	for i, e := range elems {
		cp[i] = e.Clone()
	}
	return cp
}

// Clone returns a deep copy, used by façade snapshotting.
func (s *ListStore) Clone() *ListStore {
	cp := &ListStore{
		order: append([]string(nil), s.order...),
		lists: make(map[string][]value.Value, len(s.lists)),
		next:  s.next,
	}
	for k, v := range s.lists {
		cp.lists[k] = cloneList(v)
	}
	return cp
}
