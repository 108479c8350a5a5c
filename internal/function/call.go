package function

import (
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/typeterm"
	"github.com/cwbudde/go-pbd/internal/value"
)

// argumentChain types each argument independently and alpha-converts it
// with a shared offset under the "z_" argument-typing prefix (glossary: "z_
// in argument typing"), then right-folds the results into an arrow chain —
// spec.md §4.2 infer_argument_signature without the trailing result term.
func argumentChain(args []value.Value) (*typeterm.Term, error) {
	terms := make([]*typeterm.Term, len(args))
	offset := 0
	for i, a := range args {
		t := value.InferType(a)
		renamed, next, err := typeterm.AlphaConvert(t, "z_", offset)
		if err != nil {
			return nil, err
		}
		terms[i] = renamed
		offset = next
	}
	return typeterm.CombineIntoApp(terms)
}

// CheckArgumentSignature implements the arity-and-type check step shared by
// every callee (spec.md §4.5 step 3): build the argument chain, unify it
// against the callee's declared input prefix, and report NoSolution as
// TypeMismatch. Used by both CustomFunction.Call and internal/builtins.
func CheckArgumentSignature(signature *typeterm.Term, args []value.Value) *errors.EngineError {
	if len(args) == 0 {
		return nil
	}
	argChain, err := argumentChain(args)
	if err != nil {
		return errors.Wrap(errors.TypeMismatch, err)
	}
	prefix := typeterm.DropLastTypeApp(signature)
	if prefix == nil {
		return errors.TypeMismatchError(argChain.String(), signature.String())
	}
	if _, uerr := typeterm.Unify([]typeterm.Equation{{Left: argChain, Right: prefix}}); uerr != nil {
		return errors.Wrap(errors.TypeMismatch, uerr)
	}
	return nil
}
