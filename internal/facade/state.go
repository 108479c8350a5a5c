// Package facade implements the mode-aware state façade of spec.md §4.7: the
// single entry point driving register/list/function storage and the
// demonstration recorder, enforcing the interactive/demonstration/between
// mode invariants and the transactional snapshot/rollback contract on every
// mutating call. Grounded on the teacher's top-level Interpreter struct
// (internal/interp) that similarly owns all runtime stores behind one
// façade object.
package facade

import (
	"github.com/cwbudde/go-pbd/internal/builtins"
	"github.com/cwbudde/go-pbd/internal/demo"
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/registry"
	"github.com/cwbudde/go-pbd/internal/value"
)

// Mode is one of the three façade states.
type Mode string

const (
	// Interactive allows unrestricted mutation; apply evaluates immediately.
	Interactive Mode = "interactive"
	// DemonstrationMode records instructions and constraints instead of
	// mutating registries.
	DemonstrationMode Mode = "demonstration"
	// Between permits editing non-input registers/lists while the user
	// prepares the next example.
	Between Mode = "between"
)

// Selection is one entry of the façade's selection list: a name already
// resolved into the active demonstration's name spaces (const_i, in_j, or
// temp_k), paired with the is_variable flag it was selected under.
type Selection struct {
	Original   string
	Resolved   string
	IsVariable bool
}

// State is the top-level façade: register/list/function storage, the
// optional active demonstration, the current mode, the pending selection
// list, and the function unique-id counter.
type State struct {
	Registers *registry.RegisterStore
	Lists     *registry.ListStore
	Functions *registry.FunctionStore

	Demo *demo.Demonstration
	Mode Mode

	Selected []Selection

	// demoInputValues holds the current example's concrete value for each
	// active demonstration input (in_j), keyed by that input's name. The
	// abstract Demonstration model only tracks input *types*; the façade is
	// responsible for feeding it concrete values so that apply/recurse/branch
	// can evaluate live during recording (spec.md §4.6, §4.7 cont).
	demoInputValues map[string]value.Value

	nextFuncID uint64
}

// New creates a fresh façade in interactive mode with the built-in
// catalogue pre-registered. Custom function ids start after the built-in
// ids (1..N), so no custom function shares a UID with a built-in.
func New() *State {
	catalogue := builtins.RegisterAll()
	return &State{
		Registers:  registry.NewRegisterStore(),
		Lists:      registry.NewListStore(),
		Functions:  registry.NewFunctionStore(catalogue),
		Mode:       Interactive,
		nextFuncID: uint64(len(catalogue)) + 1,
	}
}

// Clone deep-copies the entire façade, used both for transactional rollback
// and as the Cloner implementation the external snapshotter relies on.
func (s *State) Clone() *State {
	cp := &State{
		Registers:  s.Registers.Clone(),
		Lists:      s.Lists.Clone(),
		Functions:  s.Functions.Clone(),
		Mode:       s.Mode,
		Selected:   append([]Selection(nil), s.Selected...),
		nextFuncID: s.nextFuncID,
	}
	if s.Demo != nil {
		cp.Demo = s.Demo.Clone()
	}
	if s.demoInputValues != nil {
		cp.demoInputValues = make(map[string]value.Value, len(s.demoInputValues))
		for k, v := range s.demoInputValues {
			cp.demoInputValues[k] = v.Clone()
		}
	}
	return cp
}

// restore overwrites s in place with snap's fields, used to undo a failed
// mutating call without changing the pointer callers hold.
func (s *State) restore(snap *State) {
	s.Registers = snap.Registers
	s.Lists = snap.Lists
	s.Functions = snap.Functions
	s.Demo = snap.Demo
	s.Mode = snap.Mode
	s.Selected = snap.Selected
	s.demoInputValues = snap.demoInputValues
	s.nextFuncID = snap.nextFuncID
}

// withRollback snapshots s, runs fn, and restores the snapshot if fn
// reports an error — spec.md §4.7's transactional rollback property.
func withRollback[R any](s *State, fn func() (R, *errors.EngineError)) (R, *errors.EngineError) {
	snap := s.Clone()
	result, err := fn()
	if err != nil {
		s.restore(snap)
		var zero R
		return zero, err
	}
	return result, nil
}

func (s *State) isInUse(name string) bool {
	return s.Demo != nil && s.Demo.IsInputSource(name)
}

// guardUpdateInUse gates update_register/update_list/element mutators on "in
// use" only while actively recording (demonstration mode); between mode
// exists precisely so the user can re-point an in-use input at the next
// example's value (original source state.py: update_register/update_list
// check is_demonstration(), not is_between()).
func (s *State) guardUpdateInUse(name string) *errors.EngineError {
	if s.Mode == DemonstrationMode && s.isInUse(name) {
		return errors.InUseError(name)
	}
	return nil
}

// guardDeleteInUse gates delete_register/delete_list on "in use" in both
// demonstration and between mode (original source: delete_register/
// delete_list check is_demonstration() or is_between()).
func (s *State) guardDeleteInUse(name string) *errors.EngineError {
	if (s.Mode == DemonstrationMode || s.Mode == Between) && s.isInUse(name) {
		return errors.InUseError(name)
	}
	return nil
}

// CurrentMode returns the façade's current mode (spec.md §6 current_mode).
func (s *State) CurrentMode() string { return string(s.Mode) }
