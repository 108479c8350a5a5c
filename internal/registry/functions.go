package registry

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

// FunctionStore holds the fixed built-in catalogue plus the growing set of
// custom functions (f_i names) produced by successful demonstrations. It
// implements value.Resolver so a custom function's interpreter can look up
// any callee by name uniformly.
type FunctionStore struct {
	builtins    map[string]value.Function
	customs     map[string]value.Function
	customOrder []string
	next        int
}

// NewFunctionStore creates a function store seeded with the given built-in
// catalogue (see internal/builtins.RegisterAll).
func NewFunctionStore(builtins map[string]value.Function) *FunctionStore {
	return &FunctionStore{
		builtins: builtins,
		customs:  make(map[string]value.Function),
	}
}

// RegisterCustom allocates a fresh f_i name for fn and stores it.
func (s *FunctionStore) RegisterCustom(fn value.Function) string {
	name := fmt.Sprintf("f_%d", s.next)
	s.next++
	s.customs[name] = fn
	s.customOrder = append(s.customOrder, name)
	return name
}

// DeleteCustom removes a custom function by name.
func (s *FunctionStore) DeleteCustom(name string) *errors.EngineError {
	if _, ok := s.customs[name]; !ok {
		return errors.UnknownNameError(name)
	}
	delete(s.customs, name)
	for i, n := range s.customOrder {
		if n == name {
			s.customOrder = append(s.customOrder[:i], s.customOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Resolve implements value.Resolver: built-ins first, then customs. "self"
// is handled by the caller (internal/function), never stored here.
func (s *FunctionStore) Resolve(name string) (value.Function, bool) {
	if fn, ok := s.builtins[name]; ok {
		return fn, true
	}
	if fn, ok := s.customs[name]; ok {
		return fn, true
	}
	return nil, false
}

// Builtins returns the built-in catalogue (get_builtins in spec.md §6).
func (s *FunctionStore) Builtins() map[string]value.Function {
	out := make(map[string]value.Function, len(s.builtins))
	for k, v := range s.builtins {
		out[k] = v
	}
	return out
}

// CustomNames returns the names of all registered custom functions in
// creation order (get_custom_function_names in spec.md §6).
func (s *FunctionStore) CustomNames() []string {
	out := make([]string, len(s.customOrder))
	copy(out, s.customOrder)
	return out
}

// IsCustom reports whether name is a registered custom function.
func (s *FunctionStore) IsCustom(name string) bool {
	_, ok := s.customs[name]
	return ok
}

// IsBuiltin reports whether name is a catalogue built-in.
func (s *FunctionStore) IsBuiltin(name string) bool {
	_, ok := s.builtins[name]
	return ok
}

// Clone returns a copy with its own custom-name map and order; built-ins are
// stateless and shared, and custom function values are shared by reference
// since generate_function already gives each custom function its own
// deep-copied constant environment (spec.md §4.6).
func (s *FunctionStore) Clone() *FunctionStore {
	cp := &FunctionStore{
		builtins:    s.builtins,
		customs:     make(map[string]value.Function, len(s.customs)),
		customOrder: append([]string(nil), s.customOrder...),
		next:        s.next,
	}
	for k, v := range s.customs {
		cp.customs[k] = v
	}
	return cp
}
