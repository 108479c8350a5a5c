// Package builtins implements the fixed catalogue of spec.md §4.4:
// arithmetic, comparison, boolean, and list operators, each satisfying the
// uniform value.Function call contract shared with custom functions.
// Grounded on the teacher's builtins registry (internal/interp/builtins),
// adapted from a name/arity/category table of many scripting-language
// intrinsics down to this engine's small, closed operator set.
package builtins

import (
	"math"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/function"
	"github.com/cwbudde/go-pbd/internal/typeterm"
	"github.com/cwbudde/go-pbd/internal/value"
)

// Builtin is a fixed-signature built-in function identified by its operator
// name (spec.md §3 Function: "built-in (identified by operator name)").
type Builtin struct {
	id        uint64
	name      string
	signature *typeterm.Term
	compute   func(args []value.Value, resolver value.Resolver) (value.Value, error)
}

// UID returns the id (1..N) assigned when the catalogue was built.
func (b *Builtin) UID() uint64 { return b.id }

// Signature returns the operator's declared type.
func (b *Builtin) Signature() *typeterm.Term { return b.signature }

// Name returns the operator name, e.g. "+", "map".
func (b *Builtin) Name() string { return b.name }

// Call implements the shared contract: reject the unknown sentinel, check
// the argument signature against the declared type, then compute.
func (b *Builtin) Call(args []value.Value, resolver value.Resolver) (value.Value, error) {
	for _, a := range args {
		if a.IsUnknown() {
			return value.Value{}, errors.NoneAsFunArgError()
		}
	}
	if err := function.CheckArgumentSignature(b.signature, args); err != nil {
		return value.Value{}, err
	}
	return b.compute(args, resolver)
}

func numArrow2(result *typeterm.Term) *typeterm.Term {
	return typeterm.App(typeterm.Num(), typeterm.App(typeterm.Num(), result))
}

func boolArrow2() *typeterm.Term {
	return typeterm.App(typeterm.Bool(), typeterm.App(typeterm.Bool(), typeterm.Bool()))
}

// RegisterAll builds the fixed catalogue, keyed by operator name, with
// sequential unique ids starting at 1. Within the arithmetic, comparison and
// boolean groups the ids follow map iteration order, so which operator gets
// which id is not fixed.
func RegisterAll() map[string]value.Function {
	out := make(map[string]value.Function)
	var next uint64 = 1
	add := func(b *Builtin) {
		b.id = next
		next++
		out[b.name] = b
	}

	for name, op := range arithmeticOps {
		add(&Builtin{name: name, signature: numArrow2(typeterm.Num()), compute: op})
	}
	for name, op := range comparisonOps {
		add(&Builtin{name: name, signature: numArrow2(typeterm.Bool()), compute: op})
	}
	for name, op := range booleanBinOps {
		add(&Builtin{name: name, signature: boolArrow2(), compute: op})
	}
	add(&Builtin{
		name:      "not",
		signature: typeterm.App(typeterm.Bool(), typeterm.Bool()),
		compute:   computeNot,
	})

	add(&Builtin{
		name:      "len",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.Num()),
		compute:   computeLen,
	})
	add(&Builtin{
		name:      "head",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.Var("a")),
		compute:   computeHead,
	})
	add(&Builtin{
		name:      "last",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.Var("a")),
		compute:   computeLast,
	})
	add(&Builtin{
		name:      "tail",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("a"))),
		compute:   computeTail,
	})
	add(&Builtin{
		name:      "init",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("a"))),
		compute:   computeInit,
	})
	add(&Builtin{
		name: "concat",
		signature: typeterm.App(typeterm.List(typeterm.Var("a")),
			typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("a")))),
		compute: computeConcat,
	})
	add(&Builtin{
		name: "cons",
		signature: typeterm.App(typeterm.Var("a"),
			typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("a")))),
		compute: computeCons,
	})
	add(&Builtin{
		name: "map",
		signature: typeterm.App(
			typeterm.App(typeterm.Var("a"), typeterm.Var("b")),
			typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("b"))),
		),
		compute: computeMap,
	})
	add(&Builtin{
		name: "filter",
		// result-element type variable reused (Var "a"), not fresh, so the
		// constraint set ties the output list's element type to the input's.
		signature: typeterm.App(
			typeterm.App(typeterm.Var("a"), typeterm.Bool()),
			typeterm.App(typeterm.List(typeterm.Var("a")), typeterm.List(typeterm.Var("a"))),
		),
		compute: computeFilter,
	})

	return out
}

var arithmeticOps = map[string]func(args []value.Value, resolver value.Resolver) (value.Value, error){
	"+":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "+") },
	"-":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "-") },
	"*":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "*") },
	"/":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "/") },
	"//": func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "//") },
	"%":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numBinOp(args[0], args[1], "%") },
}

var comparisonOps = map[string]func(args []value.Value, resolver value.Resolver) (value.Value, error){
	"==": func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], "==") },
	"!=": func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], "!=") },
	">":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], ">") },
	"<":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], "<") },
	">=": func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], ">=") },
	"<=": func(args []value.Value, _ value.Resolver) (value.Value, error) { return numCompare(args[0], args[1], "<=") },
}

var booleanBinOps = map[string]func(args []value.Value, resolver value.Resolver) (value.Value, error){
	"and": func(args []value.Value, _ value.Resolver) (value.Value, error) { return value.NewBool(args[0].Bool && args[1].Bool), nil },
	"or":  func(args []value.Value, _ value.Resolver) (value.Value, error) { return value.NewBool(args[0].Bool || args[1].Bool), nil },
}

func computeNot(args []value.Value, _ value.Resolver) (value.Value, error) {
	return value.NewBool(!args[0].Bool), nil
}

func bothInt(a, b value.Value) bool { return a.Kind == value.Int && b.Kind == value.Int }

func numBinOp(a, b value.Value, op string) (value.Value, error) {
	switch op {
	case "+":
		if bothInt(a, b) {
			return value.NewInt(a.Int + b.Int), nil
		}
		return value.NewFloat(a.AsFloat() + b.AsFloat()), nil
	case "-":
		if bothInt(a, b) {
			return value.NewInt(a.Int - b.Int), nil
		}
		return value.NewFloat(a.AsFloat() - b.AsFloat()), nil
	case "*":
		if bothInt(a, b) {
			return value.NewInt(a.Int * b.Int), nil
		}
		return value.NewFloat(a.AsFloat() * b.AsFloat()), nil
	case "/":
		if b.AsFloat() == 0 {
			return value.Value{}, errors.DivideByZeroError()
		}
		return value.NewFloat(a.AsFloat() / b.AsFloat()), nil
	case "//":
		if b.AsFloat() == 0 {
			return value.Value{}, errors.DivideByZeroError()
		}
		if bothInt(a, b) {
			q := a.Int / b.Int
			if (a.Int%b.Int != 0) && ((a.Int < 0) != (b.Int < 0)) {
				q--
			}
			return value.NewInt(q), nil
		}
		return value.NewFloat(math.Floor(a.AsFloat() / b.AsFloat())), nil
	case "%":
		if b.AsFloat() == 0 {
			return value.Value{}, errors.DivideByZeroError()
		}
		if bothInt(a, b) {
			m := a.Int % b.Int
			if m != 0 && ((m < 0) != (b.Int < 0)) {
				m += b.Int
			}
			return value.NewInt(m), nil
		}
		return value.NewFloat(math.Mod(math.Mod(a.AsFloat(), b.AsFloat())+b.AsFloat(), b.AsFloat())), nil
	}
	panic("builtins: unknown arithmetic op " + op)
}

func numCompare(a, b value.Value, op string) (value.Value, error) {
	var lt, eq bool
	if bothInt(a, b) {
		lt = a.Int < b.Int
		eq = a.Int == b.Int
	} else {
		lt = a.AsFloat() < b.AsFloat()
		eq = a.AsFloat() == b.AsFloat()
	}
	switch op {
	case "==":
		return value.NewBool(eq), nil
	case "!=":
		return value.NewBool(!eq), nil
	case ">":
		return value.NewBool(!lt && !eq), nil
	case "<":
		return value.NewBool(lt), nil
	case ">=":
		return value.NewBool(!lt), nil
	case "<=":
		return value.NewBool(lt || eq), nil
	}
	panic("builtins: unknown comparison op " + op)
}

func computeLen(args []value.Value, _ value.Resolver) (value.Value, error) {
	return value.NewInt(int64(len(args[0].List))), nil
}

func computeHead(args []value.Value, _ value.Resolver) (value.Value, error) {
	l := args[0].List
	if len(l) == 0 {
		return value.Value{}, errors.EmptySequenceError("head")
	}
	return l[0].Clone(), nil
}

func computeLast(args []value.Value, _ value.Resolver) (value.Value, error) {
	l := args[0].List
	if len(l) == 0 {
		return value.Value{}, errors.EmptySequenceError("last")
	}
	return l[len(l)-1].Clone(), nil
}

func computeTail(args []value.Value, _ value.Resolver) (value.Value, error) {
	l := args[0].List
	if len(l) == 0 {
		return value.Value{}, errors.EmptySequenceError("tail")
	}
	return value.NewList(l[1:]), nil
}

func computeInit(args []value.Value, _ value.Resolver) (value.Value, error) {
	l := args[0].List
	if len(l) == 0 {
		return value.Value{}, errors.EmptySequenceError("init")
	}
	return value.NewList(l[:len(l)-1]), nil
}

func computeConcat(args []value.Value, _ value.Resolver) (value.Value, error) {
	out := make([]value.Value, 0, len(args[0].List)+len(args[1].List))
	out = append(out, args[0].List...)
	out = append(out, args[1].List...)
	return value.NewList(out), nil
}

func computeCons(args []value.Value, _ value.Resolver) (value.Value, error) {
	out := make([]value.Value, 0, len(args[1].List)+1)
	out = append(out, args[0])
	out = append(out, args[1].List...)
	return value.NewList(out), nil
}

func computeMap(args []value.Value, resolver value.Resolver) (value.Value, error) {
	fn := args[0].Func
	out := make([]value.Value, 0, len(args[1].List))
	for _, elem := range args[1].List {
		r, err := fn.Call([]value.Value{elem}, resolver)
		if err != nil {
			return value.Value{}, err
		}
		out = append(out, r)
	}
	return value.NewList(out), nil
}

func computeFilter(args []value.Value, resolver value.Resolver) (value.Value, error) {
	fn := args[0].Func
	out := make([]value.Value, 0, len(args[1].List))
	for _, elem := range args[1].List {
		r, err := fn.Call([]value.Value{elem}, resolver)
		if err != nil {
			return value.Value{}, err
		}
		if r.Bool {
			out = append(out, elem)
		}
	}
	return value.NewList(out), nil
}
