// Package demo implements the demonstration engine of spec.md §4.6: it
// records user actions as instructions in a branch tree, manages the three
// disjoint name spaces (constants, inputs, temporaries), accumulates
// unification constraints, and finally emits a custom function. Grounded on
// the teacher's evaluator-plus-environment pattern (internal/interp), here
// specialized to a single linear recording pass instead of tree-walking
// evaluation of a parsed AST.
package demo

import (
	"fmt"

	"github.com/cwbudde/go-pbd/internal/branchtree"
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/function"
	"github.com/cwbudde/go-pbd/internal/typeterm"
	"github.com/cwbudde/go-pbd/internal/value"
)

type tempEntry struct {
	Expr  []string
	Value value.Value
}

type recursiveCallPos struct {
	Node       *branchtree.Node
	BlockIndex int
}

// Demonstration records one in-progress function synthesis.
type Demonstration struct {
	constantOrder []string
	constants     map[string]value.Value

	inputOrder []string
	inputs     map[string]string // external name -> in_j
	inputsRev  map[string]string // in_j -> external name

	tempOrder []string
	temps     map[string]tempEntry

	types map[string]*typeterm.Term

	constraints []typeterm.Equation

	recursiveCalls []recursiveCallPos

	tree         *branchtree.Node
	cursor       *branchtree.Node
	blockCounter int

	nextIDConst    int
	nextIDInput    int
	nextIDTemp     int
	prevNextIDTemp int

	varOffset int // shared counter for w_/y_ fresh-variable allocation

	wOut *typeterm.Term
}

// New creates an empty demonstration rooted at a fresh, empty branch tree.
func New() *Demonstration {
	root := branchtree.NewNode(nil)
	return &Demonstration{
		constants: make(map[string]value.Value),
		inputs:    make(map[string]string),
		inputsRev: make(map[string]string),
		temps:     make(map[string]tempEntry),
		types:     make(map[string]*typeterm.Term),
		tree:      root,
		cursor:    root,
	}
}

func (d *Demonstration) freshVar(prefix string) *typeterm.Term {
	v := typeterm.Var(fmt.Sprintf("%s%d", prefix, d.varOffset))
	d.varOffset++
	return v
}

func (d *Demonstration) wOutVar() *typeterm.Term {
	if d.wOut == nil {
		d.wOut = typeterm.Var("w_out")
	}
	return d.wOut
}

// TypeOf resolves a name (const_i, in_j, or temp_k) to its accumulated type.
func (d *Demonstration) TypeOf(name string) (*typeterm.Term, *errors.EngineError) {
	if t, ok := d.types[name]; ok {
		return t, nil
	}
	return nil, errors.UnknownNameError(name)
}

// AlphaConvertCalleeSignature freshens a callee's signature for this call
// site using the demonstration's own shared offset counter and the "y_"
// function-signature prefix (glossary: "y_ in function signatures"). Callers
// (the façade) resolve the callee's Function first and pass its Signature()
// through here before calling AddFunctionApplication.
func (d *Demonstration) AlphaConvertCalleeSignature(sig *typeterm.Term) *typeterm.Term {
	renamed, next, _ := typeterm.AlphaConvert(sig, "y_", d.varOffset)
	d.varOffset = next
	return renamed
}

// AddInput implements spec.md §4.6 add_input: returns the existing in_j for
// a previously-seen external name, or allocates a fresh one and retroactively
// extends every previously recorded self-call's argument list so recursive
// calls always see every input.
func (d *Demonstration) AddInput(externalName string) string {
	if name, ok := d.inputs[externalName]; ok {
		return name
	}
	name := fmt.Sprintf("in_%d", d.nextIDInput)
	d.nextIDInput++
	d.inputs[externalName] = name
	d.inputsRev[name] = externalName
	d.inputOrder = append(d.inputOrder, name)
	d.types[name] = d.freshVar("w_")
	for _, pos := range d.recursiveCalls {
		pos.Node.Block[pos.BlockIndex].Expr = append(pos.Node.Block[pos.BlockIndex].Expr, name)
	}
	return name
}

// InputExternalNames returns the reverse of the input name space: in_j ->
// the external (register/list/function) name it was captured from. Used by
// the façade to refresh each input's concrete value for a new example
// (spec.md §4.7 cont).
func (d *Demonstration) InputExternalNames() map[string]string {
	out := make(map[string]string, len(d.inputsRev))
	for k, v := range d.inputsRev {
		out[k] = v
	}
	return out
}

// IsInputSource reports whether externalName was captured as a demonstration
// input (the "in use" predicate of spec.md's glossary).
func (d *Demonstration) IsInputSource(externalName string) bool {
	_, ok := d.inputs[externalName]
	return ok
}

// InputNames returns the in_j names in allocation order.
func (d *Demonstration) InputNames() []string {
	return append([]string(nil), d.inputOrder...)
}

// AddConstant implements spec.md §4.6 add_constant: dedupes by value
// (Function constants by unique id), else deep-copies v, types it, and
// alpha-converts the inferred type with the demonstration-local "w_" prefix.
func (d *Demonstration) AddConstant(v value.Value) string {
	for _, name := range d.constantOrder {
		if value.Equal(d.constants[name], v) {
			return name
		}
	}
	name := fmt.Sprintf("const_%d", d.nextIDConst)
	d.nextIDConst++
	d.constantOrder = append(d.constantOrder, name)
	d.constants[name] = v.Clone()

	t := value.InferType(v)
	renamed, next, _ := typeterm.AlphaConvert(t, "w_", d.varOffset)
	d.varOffset = next
	d.types[name] = renamed
	return name
}

// appendOrMatch appends instr to the cursor's block if no instruction is yet
// recorded at the current position, or verifies literal equality against the
// one already recorded there (spec.md §4.6 add_function_application). It
// reports whether the append was fresh (vs. a replay match), which callers
// use to avoid double-registering recursive-call fixup positions.
func (d *Demonstration) appendOrMatch(instr branchtree.Instruction) (fresh bool, err *errors.EngineError) {
	block := d.cursor.Block
	if d.blockCounter < len(block) {
		expected := block[d.blockCounter]
		if !expected.Equal(instr) {
			return false, errors.InstructionMismatchError()
		}
		d.blockCounter++
		return false, nil
	}
	d.cursor.Block = append(d.cursor.Block, instr)
	d.blockCounter++
	return true, nil
}

// AddFunctionApplication implements spec.md §4.6 add_function_application.
// calleeType is the type equated with the argument chain: for a catalogue or
// custom callee, its fresh, call-site alpha-converted signature (see
// AlphaConvertCalleeSignature); for a callee that is itself a demonstration
// input, that input's type. expr is
// [function_name, arg_name_1, ..., arg_name_k].
func (d *Demonstration) AddFunctionApplication(expr []string, calleeType *typeterm.Term, result value.Value) (string, *errors.EngineError) {
	tempName := fmt.Sprintf("temp_%d", d.nextIDTemp)
	instr := branchtree.NewNaming(tempName, expr)
	if _, err := d.appendOrMatch(instr); err != nil {
		return "", err
	}
	d.nextIDTemp++

	d.tempOrder = append(d.tempOrder, tempName)
	d.temps[tempName] = tempEntry{Expr: append([]string(nil), expr...), Value: result}

	wVar := d.freshVar("w_")
	d.types[tempName] = wVar

	argTerms := make([]*typeterm.Term, 0, len(expr))
	for _, argName := range expr[1:] {
		t, err := d.TypeOf(argName)
		if err != nil {
			return "", err
		}
		argTerms = append(argTerms, t)
	}
	argTerms = append(argTerms, wVar)
	rhs, cerr := typeterm.CombineIntoApp(argTerms)
	if cerr != nil {
		return "", errors.Wrap(errors.TypeMismatch, cerr)
	}
	d.constraints = append(d.constraints, typeterm.Equation{Left: calleeType, Right: rhs})
	return tempName, nil
}

// AddRecursiveApplication implements spec.md §4.6 add_recursive_application:
// as AddFunctionApplication, but the callee is "self" (the function under
// synthesis), the left-hand side of the constraint is the in-progress
// abstract signature rather than a resolved callee type, and result may
// legitimately be the unknown sentinel.
func (d *Demonstration) AddRecursiveApplication(argNames []string, result value.Value) (string, *errors.EngineError) {
	expr := append([]string{"self"}, argNames...)
	tempName := fmt.Sprintf("temp_%d", d.nextIDTemp)
	instr := branchtree.NewNaming(tempName, expr)

	node := d.cursor
	fresh, err := d.appendOrMatch(instr)
	if err != nil {
		return "", err
	}
	blockIndex := d.blockCounter - 1
	if fresh {
		d.recursiveCalls = append(d.recursiveCalls, recursiveCallPos{Node: node, BlockIndex: blockIndex})
	}
	d.nextIDTemp++

	d.tempOrder = append(d.tempOrder, tempName)
	d.temps[tempName] = tempEntry{Expr: append([]string(nil), expr...), Value: result}

	wVar := d.freshVar("w_")
	d.types[tempName] = wVar

	inTypes := make([]*typeterm.Term, 0, len(d.inputOrder)+1)
	for _, in := range d.inputOrder {
		inTypes = append(inTypes, d.types[in])
	}
	inTypes = append(inTypes, d.wOutVar())
	lhs, cerr := typeterm.CombineIntoApp(inTypes)
	if cerr != nil {
		return "", errors.Wrap(errors.TypeMismatch, cerr)
	}

	argTerms := make([]*typeterm.Term, 0, len(argNames)+1)
	for _, a := range argNames {
		t, terr := d.TypeOf(a)
		if terr != nil {
			return "", terr
		}
		argTerms = append(argTerms, t)
	}
	argTerms = append(argTerms, wVar)
	rhs, cerr2 := typeterm.CombineIntoApp(argTerms)
	if cerr2 != nil {
		return "", errors.Wrap(errors.TypeMismatch, cerr2)
	}

	d.constraints = append(d.constraints, typeterm.Equation{Left: lhs, Right: rhs})
	return tempName, nil
}

// Branch implements spec.md §4.6 branch: appends the Bool constraint and the
// branch instruction, then descends into the named child (creating it if
// this is the first demonstration to take this turn).
func (d *Demonstration) Branch(condName string, condValue bool) *errors.EngineError {
	condType, err := d.TypeOf(condName)
	if err != nil {
		return err
	}
	d.constraints = append(d.constraints, typeterm.Equation{Left: condType, Right: typeterm.Bool()})

	instr := branchtree.NewBranch(condName)
	if _, err := d.appendOrMatch(instr); err != nil {
		return err
	}

	tok := branchtree.False
	if condValue {
		tok = branchtree.True
	}
	child := d.cursor.Child(tok)
	if child == nil {
		childPath := append(append([]branchtree.Token(nil), d.cursor.Path...), tok)
		child = branchtree.NewNode(childPath)
		d.cursor.SetChild(tok, child)
	}
	d.cursor = child
	d.blockCounter = 0
	return nil
}

// Ret implements spec.md §4.6 ret: ties name's type to the single shared
// w_out variable and appends the return instruction.
func (d *Demonstration) Ret(name string) *errors.EngineError {
	t, err := d.TypeOf(name)
	if err != nil {
		return err
	}
	d.constraints = append(d.constraints, typeterm.Equation{Left: t, Right: d.wOutVar()})

	instr := branchtree.NewRet(name)
	if _, err := d.appendOrMatch(instr); err != nil {
		return err
	}
	return nil
}

// Prepare implements spec.md §4.6 prepare: rewinds the cursor to the root
// for the next example, clears per-example temporaries, records the temp-id
// high-water mark in prevNextIDTemp, and restarts temp numbering at zero so
// replayed instructions along already-explored paths reproduce the same
// temporary names. prevNextIDTemp is not read when numbering temporaries;
// fresh temporaries on a newly explored path continue from the replayed
// count.
func (d *Demonstration) Prepare() {
	d.cursor = d.tree
	d.blockCounter = 0
	d.temps = make(map[string]tempEntry)
	d.tempOrder = nil
	d.prevNextIDTemp = d.nextIDTemp
	d.nextIDTemp = 0
}

// RemainingExamples implements spec.md §4.6 remaining_examples.
func (d *Demonstration) RemainingExamples() [][]branchtree.Token {
	return branchtree.RemainingExamples(d.tree)
}

// GenerateFunction implements spec.md §4.6 generate_function: unifies the
// accumulated constraints together with the abstract signature equation,
// then returns a custom function bound to the solved signature, a frozen
// copy of the branch tree, and a deep copy of the constants.
func (d *Demonstration) GenerateFunction(uniqueID uint64) (value.Function, *errors.EngineError) {
	inTypes := make([]*typeterm.Term, 0, len(d.inputOrder)+1)
	for _, in := range d.inputOrder {
		inTypes = append(inTypes, d.types[in])
	}
	inTypes = append(inTypes, d.wOutVar())
	sigRHS, cerr := typeterm.CombineIntoApp(inTypes)
	if cerr != nil {
		return nil, errors.Wrap(errors.TypeMismatch, cerr)
	}

	wSig := typeterm.Var("w_sig")
	eqs := make([]typeterm.Equation, 0, len(d.constraints)+1)
	eqs = append(eqs, d.constraints...)
	eqs = append(eqs, typeterm.Equation{Left: wSig, Right: sigRHS})

	solved, uerr := typeterm.Unify(eqs)
	if uerr != nil {
		return nil, uerr
	}

	var signature *typeterm.Term
	for _, eq := range solved {
		if eq.Left.IsVar() && eq.Left.VarName() == "w_sig" {
			signature = eq.Right
			break
		}
	}
	if signature == nil {
		signature = wSig
	}

	constNames := append([]string(nil), d.constantOrder...)
	constValues := make(map[string]value.Value, len(d.constants))
	for k, v := range d.constants {
		constValues[k] = v.Clone()
	}

	return function.NewCustom(uniqueID, signature, d.tree.Clone(), constNames, constValues), nil
}

// ProvisionalSignature builds the not-yet-solved abstract signature from the
// inputs recorded so far plus the shared w_out variable, the same shape as
// the left-hand side used by AddRecursiveApplication and GenerateFunction's
// w_sig equation, but without running unification. Used to type-check a
// self-call attempted mid-demonstration, before every branch (and therefore
// every constraint) has been recorded.
func (d *Demonstration) ProvisionalSignature() *typeterm.Term {
	inTypes := make([]*typeterm.Term, 0, len(d.inputOrder)+1)
	for _, in := range d.inputOrder {
		inTypes = append(inTypes, d.types[in])
	}
	inTypes = append(inTypes, d.wOutVar())
	sig, _ := typeterm.CombineIntoApp(inTypes)
	return sig
}

// BuildPartialFunction wraps the branch tree recorded so far (however
// incomplete) as a throwaway custom function, for evaluating a recursive
// "self" call mid-demonstration (spec.md §4.6's Recurse operation): walking
// the same partial tree the user is building mirrors how the finished
// function will evaluate its own recursive calls, including legitimately
// hitting a missing child on a path not yet demonstrated.
func (d *Demonstration) BuildPartialFunction() *function.CustomFunction {
	constNames := append([]string(nil), d.constantOrder...)
	constValues := make(map[string]value.Value, len(d.constants))
	for k, v := range d.constants {
		constValues[k] = v.Clone()
	}
	return function.NewCustom(0, d.ProvisionalSignature(), d.tree, constNames, constValues)
}

// GetTempNames returns the temporaries recorded in the current example, in
// allocation order.
func (d *Demonstration) GetTempNames() []string {
	return append([]string(nil), d.tempOrder...)
}

// GetComputation returns the recorded expression bound to a temporary
// (spec.md §6 get_computation).
func (d *Demonstration) GetComputation(temp string) ([]string, *errors.EngineError) {
	e, ok := d.temps[temp]
	if !ok {
		return nil, errors.UnknownNameError(temp)
	}
	return append([]string(nil), e.Expr...), nil
}

// GetValue resolves a constant or temporary to its value (spec.md §6
// get_value, restricted to this demonstration's own name spaces).
func (d *Demonstration) GetValue(name string) (value.Value, *errors.EngineError) {
	if v, ok := d.constants[name]; ok {
		return v.Clone(), nil
	}
	if e, ok := d.temps[name]; ok {
		return e.Value.Clone(), nil
	}
	return value.Value{}, errors.UnknownNameError(name)
}

// IsValidTemporary reports whether name is a temporary in the current
// example (spec.md §6 is_valid_temporary).
func (d *Demonstration) IsValidTemporary(name string) bool {
	_, ok := d.temps[name]
	return ok
}

func findNodeByPath(root *branchtree.Node, path []branchtree.Token) *branchtree.Node {
	n := root
	for _, tok := range path {
		if n == nil {
			return nil
		}
		n = n.Child(tok)
	}
	return n
}

// Clone deep-copies the demonstration, including the branch tree and the
// cursor/recursive-call positions remapped into the copy, for façade
// snapshot/rollback (spec.md §4.7).
func (d *Demonstration) Clone() *Demonstration {
	cp := &Demonstration{
		constantOrder:  append([]string(nil), d.constantOrder...),
		constants:      make(map[string]value.Value, len(d.constants)),
		inputOrder:     append([]string(nil), d.inputOrder...),
		inputs:         make(map[string]string, len(d.inputs)),
		inputsRev:      make(map[string]string, len(d.inputsRev)),
		tempOrder:      append([]string(nil), d.tempOrder...),
		temps:          make(map[string]tempEntry, len(d.temps)),
		types:          make(map[string]*typeterm.Term, len(d.types)),
		constraints:    append([]typeterm.Equation(nil), d.constraints...),
		blockCounter:   d.blockCounter,
		nextIDConst:    d.nextIDConst,
		nextIDInput:    d.nextIDInput,
		nextIDTemp:     d.nextIDTemp,
		prevNextIDTemp: d.prevNextIDTemp,
		varOffset:      d.varOffset,
		wOut:           d.wOut,
	}
	for k, v := range d.constants {
		cp.constants[k] = v.Clone()
	}
	for k, v := range d.inputs {
		cp.inputs[k] = v
	}
	for k, v := range d.inputsRev {
		cp.inputsRev[k] = v
	}
	for k, v := range d.temps {
		cp.temps[k] = tempEntry{Expr: append([]string(nil), v.Expr...), Value: v.Value.Clone()}
	}
	for k, v := range d.types {
		cp.types[k] = v // terms are structurally immutable, safe to share
	}

	cp.tree = d.tree.Clone()
	cp.cursor = findNodeByPath(cp.tree, d.cursor.Path)

	cp.recursiveCalls = make([]recursiveCallPos, len(d.recursiveCalls))
	for i, pos := range d.recursiveCalls {
		cp.recursiveCalls[i] = recursiveCallPos{
			Node:       findNodeByPath(cp.tree, pos.Node.Path),
			BlockIndex: pos.BlockIndex,
		}
	}
	return cp
}
