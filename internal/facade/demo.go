package facade

import (
	"strings"

	"github.com/cwbudde/go-pbd/internal/branchtree"
	"github.com/cwbudde/go-pbd/internal/demo"
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/function"
	"github.com/cwbudde/go-pbd/internal/typeterm"
	"github.com/cwbudde/go-pbd/internal/value"
)

// CreateFunction implements spec.md §6 create_function: starts a fresh
// demonstration and transitions interactive -> demonstration (spec.md §4.7).
func (s *State) CreateFunction() *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if s.Mode != Interactive {
			return struct{}{}, errors.WrongModeError(string(s.Mode))
		}
		s.Demo = demo.New()
		s.demoInputValues = make(map[string]value.Value)
		s.Selected = nil
		s.Mode = DemonstrationMode
		return struct{}{}, nil
	})
	return err
}

// nameExists reports whether name resolves against any live registry
// (register, list, or function), used to validate a plain selection outside
// an active demonstration.
func (s *State) nameExists(name string) bool {
	if s.Registers.IsValid(name) {
		return true
	}
	if s.Lists.IsValid(name) {
		return true
	}
	_, ok := s.Functions.Resolve(name)
	return ok
}

// currentValueOf reads the live value currently bound to an external name:
// a register's scalar, a list (wrapped as a List value), or a function
// (wrapped as a Func value, so that a function name can itself flow through
// select/apply as a first-class higher-order argument).
func (s *State) currentValueOf(name string) (value.Value, *errors.EngineError) {
	if s.Registers.IsValid(name) {
		return s.Registers.Get(name)
	}
	if s.Lists.IsValid(name) {
		l, err := s.Lists.Get(name)
		if err != nil {
			return value.Value{}, err
		}
		return value.NewList(l), nil
	}
	if fn, ok := s.Functions.Resolve(name); ok {
		return value.NewFunc(fn), nil
	}
	return value.Value{}, errors.UnknownNameError(name)
}

// valueOfDemoName resolves an already-resolved demonstration-local name
// (spec.md §3's const_i/in_j/temp_k name spaces) to its concrete value for
// the current example: inputs are tracked by the façade (demoInputValues),
// constants and temporaries by the Demonstration itself.
func (s *State) valueOfDemoName(resolved string) (value.Value, *errors.EngineError) {
	if strings.HasPrefix(resolved, "in_") {
		if v, ok := s.demoInputValues[resolved]; ok {
			return v, nil
		}
		return value.Value{}, errors.UnknownNameError(resolved)
	}
	return s.Demo.GetValue(resolved)
}

// Select implements spec.md §6 select: resolves name into the active
// demonstration's name spaces when recording (allocating a fresh input or
// constant per the is_variable flag, or reusing name directly if it is
// already a temporary from this example), or simply validates the name
// against the live registries otherwise, and appends it to the selection
// list.
func (s *State) Select(name string, isVariable bool) (int, *errors.EngineError) {
	return withRollback(s, func() (int, *errors.EngineError) {
		resolved := name
		if s.Mode == DemonstrationMode {
			d := s.Demo
			switch {
			case d.IsValidTemporary(name):
				resolved = name
			case isVariable:
				resolved = d.AddInput(name)
				v, verr := s.currentValueOf(name)
				if verr != nil {
					return 0, verr
				}
				s.demoInputValues[resolved] = v
			default:
				v, verr := s.currentValueOf(name)
				if verr != nil {
					return 0, verr
				}
				resolved = d.AddConstant(v)
			}
		} else if !s.nameExists(name) {
			return 0, errors.UnknownNameError(name)
		}
		s.Selected = append(s.Selected, Selection{Original: name, Resolved: resolved, IsVariable: isVariable})
		return len(s.Selected) - 1, nil
	})
}

// Unselect implements spec.md §6 unselect: removes the selection at idx.
// Once allocated, an input or constant name space entry is never retracted
// (spec.md §3: "Constants are immutable once created") — only the pending
// selection list shrinks.
func (s *State) Unselect(idx int) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if idx < 0 || idx >= len(s.Selected) {
			return struct{}{}, errors.IndexOutOfRangeError(idx, len(s.Selected))
		}
		s.Selected = append(append([]Selection(nil), s.Selected[:idx]...), s.Selected[idx+1:]...)
		return struct{}{}, nil
	})
	return err
}

// UnselectAll implements spec.md §6 unselect_all.
func (s *State) UnselectAll() {
	s.Selected = nil
}

// GetSelected implements spec.md §6 get_selected.
func (s *State) GetSelected() []Selection {
	return append([]Selection(nil), s.Selected...)
}

func asEngineError(err error) *errors.EngineError {
	if err == nil {
		return nil
	}
	if ee, ok := err.(*errors.EngineError); ok {
		return ee
	}
	return errors.Wrap(errors.RuntimeError, err)
}

// storeResult implements the interactive-mode half of spec.md §4.7's apply:
// "mutates the live registries ... application evaluates and stores result
// as a new register or list".
func (s *State) storeResult(v value.Value) (string, *errors.EngineError) {
	switch v.Kind {
	case value.List:
		return s.Lists.Create(v.List)
	case value.Int, value.Float, value.Bool:
		return s.Registers.Create(v)
	default:
		return "", errors.UnsupportedResultError(v.Kind.String())
	}
}

func (s *State) resolveSelectedArgs() ([]string, []value.Value, *errors.EngineError) {
	argNames := make([]string, len(s.Selected))
	argValues := make([]value.Value, len(s.Selected))
	for i, sel := range s.Selected {
		argNames[i] = sel.Resolved
		v, err := s.valueOfDemoName(sel.Resolved)
		if err != nil {
			return nil, nil, err
		}
		argValues[i] = v
	}
	return argNames, argValues, nil
}

func (s *State) resolveSelectedArgsLive() ([]value.Value, *errors.EngineError) {
	argValues := make([]value.Value, len(s.Selected))
	for i, sel := range s.Selected {
		v, err := s.currentValueOf(sel.Resolved)
		if err != nil {
			return nil, err
		}
		argValues[i] = v
	}
	return argValues, nil
}

// Apply implements spec.md §6 apply: in interactive mode it evaluates the
// named function over the current selection immediately and stores the
// result as a new register or list; in demonstration mode it records a
// naming instruction and the corresponding unification constraint instead.
// is_variable marks the function name itself as a variable (a higher-order
// input) rather than a fixed callee — spec.md §8 scenario 2.
func (s *State) Apply(functionName string, isVariable bool) (string, *errors.EngineError) {
	return withRollback(s, func() (string, *errors.EngineError) {
		switch s.Mode {
		case Interactive:
			return s.applyInteractive(functionName)
		case DemonstrationMode:
			return s.applyDemonstration(functionName, isVariable)
		default:
			return "", errors.WrongModeError(string(s.Mode))
		}
	})
}

func (s *State) applyInteractive(functionName string) (string, *errors.EngineError) {
	fn, ok := s.Functions.Resolve(functionName)
	if !ok {
		return "", errors.UnknownNameError(functionName)
	}
	args, err := s.resolveSelectedArgsLive()
	if err != nil {
		return "", err
	}
	result, cerr := fn.Call(args, s.Functions)
	if cerr != nil {
		return "", asEngineError(cerr)
	}
	s.Selected = nil
	return s.storeResult(result)
}

func (s *State) applyDemonstration(functionName string, isVariable bool) (string, *errors.EngineError) {
	d := s.Demo
	argNames, argValues, err := s.resolveSelectedArgs()
	if err != nil {
		return "", err
	}

	var calleeName string
	var calleeType *typeterm.Term
	var fnValue value.Function

	if isVariable {
		current, verr := s.currentValueOf(functionName)
		if verr != nil {
			return "", verr
		}
		calleeName = d.AddInput(functionName)
		s.demoInputValues[calleeName] = current
		fnValue = current.Func
		t, terr := d.TypeOf(calleeName)
		if terr != nil {
			return "", terr
		}
		calleeType = t
	} else {
		fn, ok := s.Functions.Resolve(functionName)
		if !ok {
			return "", errors.UnknownNameError(functionName)
		}
		calleeName = functionName
		fnValue = fn
		calleeType = d.AlphaConvertCalleeSignature(fn.Signature())
	}

	result, rerr := evalForDemonstration(fnValue, argValues, s.Functions)
	if rerr != nil {
		return "", rerr
	}

	expr := append([]string{calleeName}, argNames...)
	temp, derr := d.AddFunctionApplication(expr, calleeType, result)
	if derr != nil {
		return "", derr
	}
	s.Selected = nil
	return temp, nil
}

// evalForDemonstration calls fn with args, converting the NoneAsFunArg an
// unknown argument produces into the unknown sentinel result rather than an
// error — a demonstrated (non-recursive) application can legitimately be
// fed a temp that came from an earlier, still-incomplete recursive call.
func evalForDemonstration(fn value.Function, args []value.Value, resolver value.Resolver) (value.Value, *errors.EngineError) {
	if fn == nil {
		return value.Value{}, errors.New(errors.TypeMismatch, "selected function value is not callable")
	}
	result, err := fn.Call(args, resolver)
	if err == nil {
		return result, nil
	}
	ee := asEngineError(err)
	if ee.Kind == errors.NoneAsFunArg {
		return value.NewUnknown(), nil
	}
	return value.Value{}, ee
}

// Recurse implements spec.md §6 recurse: applies "self" (the function under
// synthesis) to the current selection, walking the partial branch tree
// recorded so far (spec.md §4.6 add_recursive_application). A self-call
// landing on a path not yet demonstrated legitimately yields the unknown
// sentinel rather than failing (spec.md §7).
func (s *State) Recurse() (string, *errors.EngineError) {
	return withRollback(s, func() (string, *errors.EngineError) {
		if s.Mode != DemonstrationMode {
			return "", errors.WrongModeError(string(s.Mode))
		}
		d := s.Demo
		argNames, argValues, err := s.resolveSelectedArgs()
		if err != nil {
			return "", err
		}

		partial := d.BuildPartialFunction()
		result, cerr := partial.Call(argValues, s.Functions)
		var resultValue value.Value
		if cerr != nil {
			ee := asEngineError(cerr)
			if ee.Kind == errors.NoneAsFunArg || ee.Kind == errors.IndexOutOfRange {
				resultValue = value.NewUnknown()
			} else {
				return "", ee
			}
		} else {
			resultValue = result
		}

		temp, derr := d.AddRecursiveApplication(argNames, resultValue)
		if derr != nil {
			return "", derr
		}
		s.Selected = nil
		return temp, nil
	})
}

func (s *State) singleSelected() (Selection, *errors.EngineError) {
	if len(s.Selected) != 1 {
		return Selection{}, errors.ExpectedOneSelectedError(len(s.Selected))
	}
	return s.Selected[0], nil
}

// Branch implements spec.md §6 branch: consumes the single selected name as
// the boolean condition, evaluates its current value, and descends into the
// corresponding branch-tree child.
func (s *State) Branch() *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if s.Mode != DemonstrationMode {
			return struct{}{}, errors.WrongModeError(string(s.Mode))
		}
		sel, serr := s.singleSelected()
		if serr != nil {
			return struct{}{}, serr
		}
		v, verr := s.valueOfDemoName(sel.Resolved)
		if verr != nil {
			return struct{}{}, verr
		}
		if v.Kind != value.Bool {
			return struct{}{}, errors.BranchNotBoolError(sel.Original)
		}
		if berr := s.Demo.Branch(sel.Resolved, v.Bool); berr != nil {
			return struct{}{}, berr
		}
		s.Selected = nil
		return struct{}{}, nil
	})
	return err
}

// RetResult is the outcome of a ret() call: either further examples remain
// (Remaining non-empty, FunctionName empty — spec.md's "remaining_examples,
// null"), or synthesis is complete (Remaining empty, FunctionName set).
type RetResult struct {
	Remaining    [][]branchtree.Token
	FunctionName string
}

// Ret implements spec.md §6 ret: consumes the single selected name as the
// return value. If unexplored branches remain, the façade switches to
// between mode and calls prepare(); otherwise it unifies the accumulated
// constraints, registers the synthesized function, and returns to
// interactive mode (spec.md §4.7).
func (s *State) Ret() (RetResult, *errors.EngineError) {
	return withRollback(s, func() (RetResult, *errors.EngineError) {
		if s.Mode != DemonstrationMode {
			return RetResult{}, errors.WrongModeError(string(s.Mode))
		}
		sel, serr := s.singleSelected()
		if serr != nil {
			return RetResult{}, serr
		}
		d := s.Demo
		if rerr := d.Ret(sel.Resolved); rerr != nil {
			return RetResult{}, rerr
		}
		s.Selected = nil

		remaining := d.RemainingExamples()
		if len(remaining) > 0 {
			d.Prepare()
			s.Mode = Between
			return RetResult{Remaining: remaining}, nil
		}

		uid := s.nextFuncID
		s.nextFuncID++
		fn, gerr := d.GenerateFunction(uid)
		if gerr != nil {
			return RetResult{}, gerr
		}
		name := s.Functions.RegisterCustom(fn)
		if cf, ok := fn.(*function.CustomFunction); ok {
			cf.SetName(name)
		}
		s.Demo = nil
		s.demoInputValues = nil
		s.Mode = Interactive
		return RetResult{FunctionName: name}, nil
	})
}

// Cont implements spec.md §6 cont: between -> demonstration, refreshing
// every active input's concrete value from its external source so the next
// example's applications evaluate against the values the user just edited.
func (s *State) Cont() *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if s.Mode != Between {
			return struct{}{}, errors.WrongModeError(string(s.Mode))
		}
		for inJ, external := range s.Demo.InputExternalNames() {
			v, verr := s.currentValueOf(external)
			if verr != nil {
				return struct{}{}, verr
			}
			s.demoInputValues[inJ] = v
		}
		s.Mode = DemonstrationMode
		return struct{}{}, nil
	})
	return err
}

// GetTempNames implements spec.md §6 get_temp_names.
func (s *State) GetTempNames() []string {
	if s.Demo == nil {
		return nil
	}
	return s.Demo.GetTempNames()
}

// GetComputation implements spec.md §6 get_computation.
func (s *State) GetComputation(temp string) ([]string, *errors.EngineError) {
	if s.Demo == nil {
		return nil, errors.NoActiveDemoError()
	}
	return s.Demo.GetComputation(temp)
}

// GetValue implements spec.md §6 get_value: resolves a demonstration-local
// name (input, constant, or temporary) when a demonstration is active,
// falling back to the live registries/functions otherwise.
func (s *State) GetValue(name string) (value.Value, *errors.EngineError) {
	if s.Demo != nil {
		if strings.HasPrefix(name, "in_") {
			if v, ok := s.demoInputValues[name]; ok {
				return v, nil
			}
		} else if v, err := s.Demo.GetValue(name); err == nil {
			return v, nil
		}
	}
	return s.currentValueOf(name)
}

// IsValidTemporary implements spec.md §6 is_valid_temporary.
func (s *State) IsValidTemporary(name string) bool {
	return s.Demo != nil && s.Demo.IsValidTemporary(name)
}
