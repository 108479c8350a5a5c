// Package function implements the function execution model of spec.md §4.5:
// a uniform call contract shared by built-ins (internal/builtins) and
// synthesized custom functions, with the recursive "self" escape hatch that
// lets a partially-demonstrated function legitimately produce an unknown
// result instead of aborting. Grounded on the teacher's evaluator dispatch
// over AST nodes (internal/interp), generalized here to dispatch over branch
// tree instructions instead of a parsed expression tree.
package function

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/branchtree"
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/typeterm"
	"github.com/cwbudde/go-pbd/internal/value"
)

// CustomFunction is a synthesized, possibly recursive function: a signature,
// a branch tree recorded by demonstration, and the constant environment
// captured while it was demonstrated.
type CustomFunction struct {
	uid         uint64
	name        string
	signature   *typeterm.Term
	tree        *branchtree.Node
	constNames  []string
	constValues map[string]value.Value
}

// NewCustom constructs a custom function from the result of demonstration
// (spec.md §4.6 generate_function). constValues is taken by reference; the
// caller (internal/demo) has already deep-copied it.
func NewCustom(uid uint64, signature *typeterm.Term, tree *branchtree.Node, constNames []string, constValues map[string]value.Value) *CustomFunction {
	return &CustomFunction{
		uid:         uid,
		name:        fmt.Sprintf("f_%d", uid),
		signature:   signature,
		tree:        tree,
		constNames:  constNames,
		constValues: constValues,
	}
}

// UID returns the identifier assigned at synthesis time.
func (f *CustomFunction) UID() uint64 { return f.uid }

// Signature returns the synthesized type signature.
func (f *CustomFunction) Signature() *typeterm.Term { return f.signature }

// Name returns the registry name this function was bound under.
func (f *CustomFunction) Name() string { return f.name }

// SetName rebinds the display name, called by the registry once it
// allocates this function's f_i name.
func (f *CustomFunction) SetName(name string) { f.name = name }

// ConstantNames returns the constant names captured at synthesis, in
// allocation order (used for diagnostics and tests).
func (f *CustomFunction) ConstantNames() []string {
	return append([]string(nil), f.constNames...)
}

// Call implements the shared contract of spec.md §4.5.
func (f *CustomFunction) Call(args []value.Value, resolver value.Resolver) (value.Value, error) {
	for _, a := range args {
		if a.IsUnknown() {
			return value.Value{}, errors.NoneAsFunArgError()
		}
	}

	env := make(map[string]value.Value, len(args)+len(f.constValues))
	for k, v := range f.constValues {
		env[k] = v.Clone()
	}

	if f.signature.IsArrow() {
		if err := CheckArgumentSignature(f.signature, args); err != nil {
			return value.Value{}, err
		}
		for i, a := range args {
			env[fmt.Sprintf("in_%d", i)] = a
		}
	}

	return f.execNode(f.tree, env, resolver)
}

func isSelfCall(instr branchtree.Instruction) bool {
	return len(instr.Expr) > 0 && instr.Expr[0] == "self"
}

func (f *CustomFunction) execNode(node *branchtree.Node, env map[string]value.Value, resolver value.Resolver) (value.Value, error) {
	for _, instr := range node.Block {
		switch instr.Kind {
		case branchtree.Naming:
			result, err := f.execNaming(instr, env, resolver)
			if err != nil {
				ee, ok := err.(*errors.EngineError)
				if ok && (ee.Kind == errors.NoneAsFunArg || (isSelfCall(instr) && ee.Kind == errors.IndexOutOfRange)) {
					env[instr.TempName] = value.NewUnknown()
					continue
				}
				return value.Value{}, err
			}
			env[instr.TempName] = result

		case branchtree.Branch:
			condVal, ok := env[instr.CondName]
			if !ok {
				return value.Value{}, errors.UnknownNameError(instr.CondName)
			}
			tok := branchtree.False
			if condVal.Bool {
				tok = branchtree.True
			}
			child := node.Child(tok)
			if child == nil {
				return value.Value{}, errors.ChildMissingError(string(tok))
			}
			return f.execNode(child, env, resolver)

		case branchtree.Ret:
			v, ok := env[instr.RetName]
			if !ok {
				return value.Value{}, errors.UnknownNameError(instr.RetName)
			}
			return v, nil
		}
	}
	return value.Value{}, errors.New(errors.RuntimeError, "branch tree block ended without ret or branch")
}

func (f *CustomFunction) execNaming(instr branchtree.Instruction, env map[string]value.Value, resolver value.Resolver) (value.Value, error) {
	calleeName := instr.Expr[0]
	argNames := instr.Expr[1:]
	args := make([]value.Value, len(argNames))
	for i, an := range argNames {
		v, ok := env[an]
		if !ok {
			return value.Value{}, errors.UnknownNameError(an)
		}
		args[i] = v
	}

	var callee value.Function
	switch bound, isBound := env[calleeName]; {
	case calleeName == "self":
		callee = f
	case isBound && bound.Kind == value.Func:
		// The callee name is itself bound to a function value (a
		// higher-order parameter, e.g. an input supplied as "+" or "not"),
		// rather than a catalogue name. Env takes priority over the
		// resolver so a locally bound function shadows any builtin of the
		// same name.
		callee = bound.Func
	default:
		fn, ok := resolver.Resolve(calleeName)
		if !ok {
			return value.Value{}, errors.UnknownNameError(calleeName)
		}
		callee = fn
	}
	return callee.Call(args, resolver)
}
