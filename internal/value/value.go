// Package value implements the runtime value model of spec.md §3:
// V ::= int | float | bool | [P] | Function, where P ::= int | float | bool
// (lists are homogeneous over primitives; functions are first-class but
// never stored inside a list). The sentinel Unknown stands in for a
// partially-evaluated recursive call during synthesis.
package value

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/typeterm"
)

// Kind tags the shape of a Value.
type Kind uint8

const (
	// Int is a 64-bit integer.
	Int Kind = iota
	// Float is a 64-bit float.
	Float
	// Bool is a boolean.
	Bool
	// List is a homogeneous sequence of primitives.
	List
	// Func is a first-class function value.
	Func
	// Unknown is the "no result yet" sentinel produced by partial recursion.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case Int:
		return "Int"
	case Float:
		return "Float"
	case Bool:
		return "Bool"
	case List:
		return "List"
	case Func:
		return "Func"
	case Unknown:
		return "Unknown"
	}
	return "?"
}

// Function is the uniform call contract shared by built-ins and custom
// functions (spec.md §4.5). Implementations live in internal/builtins and
// internal/function; this package imports only typeterm, so both of those
// packages can depend on it.
type Function interface {
	// UID returns an identifier, unique among the built-in and custom
	// functions of one façade, used for equality between Function-valued
	// constants.
	UID() uint64
	// Signature returns the function's type term.
	Signature() *typeterm.Term
	// Call invokes the function with already-evaluated arguments, resolving
	// any named callees (built-ins, other customs) through resolver; a
	// custom function handles "self" itself.
	Call(args []Value, resolver Resolver) (Value, error)
	// Name returns a display name for diagnostics (builtin operator name, or
	// the registry name a custom function was bound under).
	Name() string
}

// Resolver looks up a callable by name: built-ins by their catalogue name,
// customs by their registry name (f_i), and the pseudo-name "self" inside a
// custom function's own call.
type Resolver interface {
	Resolve(name string) (Function, bool)
}

// Value is a tagged union over the value model above.
type Value struct {
	Kind  Kind
	Int   int64
	Float float64
	Bool  bool
	List  []Value // elements are always Int, Float, or Bool valued
	Func  Function
}

// NewInt constructs an integer value.
func NewInt(v int64) Value { return Value{Kind: Int, Int: v} }

// NewFloat constructs a float value.
func NewFloat(v float64) Value { return Value{Kind: Float, Float: v} }

// NewBool constructs a boolean value.
func NewBool(v bool) Value { return Value{Kind: Bool, Bool: v} }

// NewList constructs a list value, deep-copying the element slice so callers
// cannot observe or mutate the stored interior (spec.md §4.3).
func NewList(elems []Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{Kind: List, List: cp}
}

// NewFunc constructs a function value.
func NewFunc(fn Function) Value { return Value{Kind: Func, Func: fn} }

// NewUnknown constructs the unknown sentinel.
func NewUnknown() Value { return Value{Kind: Unknown} }

// IsUnknown reports whether v is the unknown sentinel.
func (v Value) IsUnknown() bool { return v.Kind == Unknown }

// Clone returns a deep copy of v (lists get a fresh backing slice; scalars
// and function references are copied by value/reference as appropriate).
func (v Value) Clone() Value {
	if v.Kind == List {
		return NewList(v.List)
	}
	return v
}

// IsNumeric reports whether v holds an Int or Float.
func (v Value) IsNumeric() bool { return v.Kind == Int || v.Kind == Float }

// AsFloat returns v's numeric value widened to float64; panics if v is not
// numeric (callers must check IsNumeric first — this mirrors the teacher's
// convention of only calling narrow accessors after a type check).
func (v Value) AsFloat() float64 {
	switch v.Kind {
	case Int:
		return float64(v.Int)
	case Float:
		return v.Float
	}
	panic(fmt.Sprintf("value: AsFloat called on non-numeric Kind %s", v.Kind))
}

// String renders a value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case Int:
		return fmt.Sprintf("%d", v.Int)
	case Float:
		return fmt.Sprintf("%g", v.Float)
	case Bool:
		return fmt.Sprintf("%t", v.Bool)
	case List:
		return fmt.Sprintf("%v", v.List)
	case Func:
		return fmt.Sprintf("<func %s>", v.Func.Name())
	case Unknown:
		return "<unknown>"
	}
	return "?"
}

// Equal reports value equality used when deduplicating demonstration
// constants: Function-valued constants compare by UID, everything else by
// value (spec.md §4.6 add_constant).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Int:
		return a.Int == b.Int
	case Float:
		return a.Float == b.Float
	case Bool:
		return a.Bool == b.Bool
	case Func:
		return a.Func != nil && b.Func != nil && a.Func.UID() == b.Func.UID()
	case List:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if !Equal(a.List[i], b.List[i]) {
				return false
			}
		}
		return true
	case Unknown:
		return true
	}
	return false
}
