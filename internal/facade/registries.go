package facade

import (
	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

// CreateRegister implements spec.md §6 create_register.
func (s *State) CreateRegister(v value.Value) (string, *errors.EngineError) {
	return withRollback(s, func() (string, *errors.EngineError) {
		return s.Registers.Create(v)
	})
}

// UpdateRegister implements spec.md §6 update_register. In use only blocks
// the update while actively recording (demonstration mode); between mode is
// exempt, since it exists precisely so an in-use input can be re-pointed at
// the next example's value (spec.md §8 scenario 3).
func (s *State) UpdateRegister(name string, v value.Value) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Registers.Update(name, v)
	})
	return err
}

// DeleteRegister implements spec.md §6 delete_register, gated on "in use" in
// both demonstration and between mode.
func (s *State) DeleteRegister(name string) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardDeleteInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Registers.Delete(name)
	})
	return err
}

// GetRegister implements spec.md §6 get_register.
func (s *State) GetRegister(name string) (value.Value, *errors.EngineError) {
	return s.Registers.Get(name)
}

// GetRegisterNames implements spec.md §6 get_register_names.
func (s *State) GetRegisterNames() []string { return s.Registers.Names() }

// IsValidRegister implements spec.md §6 is_valid_register.
func (s *State) IsValidRegister(name string) bool { return s.Registers.IsValid(name) }

// CreateList implements spec.md §6 analogous list create.
func (s *State) CreateList(elems []value.Value) (string, *errors.EngineError) {
	return withRollback(s, func() (string, *errors.EngineError) {
		return s.Lists.Create(elems)
	})
}

// UpdateList implements spec.md §6 analogous list update. §9's open question
// ("validates not in use but does not call through on success") is resolved
// here: the in-use check (gated like UpdateRegister, to demonstration mode
// only) still guards the mutation, but once it passes the update is always
// performed — the source's bug, where passing the check silently short-
// circuited without mutating, is not reproduced.
func (s *State) UpdateList(name string, elems []value.Value) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.Update(name, elems)
	})
	return err
}

// DeleteList implements spec.md §6 analogous list delete, gated on "in use"
// in both demonstration and between mode.
func (s *State) DeleteList(name string) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardDeleteInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.Delete(name)
	})
	return err
}

// GetList implements spec.md §6 list retrieval.
func (s *State) GetList(name string) ([]value.Value, *errors.EngineError) {
	return s.Lists.Get(name)
}

// GetListNames mirrors GetRegisterNames for lists.
func (s *State) GetListNames() []string { return s.Lists.Names() }

// IsValidList implements spec.md §6 is_valid_list.
func (s *State) IsValidList(name string) bool { return s.Lists.IsValid(name) }

// GetListElement implements spec.md §6 get_list_element.
func (s *State) GetListElement(name string, index int) (value.Value, *errors.EngineError) {
	return s.Lists.GetElement(name, index)
}

// AppendToList implements spec.md §6 append_to_list, gated like UpdateList.
func (s *State) AppendToList(name string, v value.Value) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.Append(name, v)
	})
	return err
}

// InsertListElement implements spec.md §6 insert_list_element, gated like
// UpdateList.
func (s *State) InsertListElement(name string, index int, v value.Value) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.InsertElement(name, index, v)
	})
	return err
}

// UpdateListElement implements spec.md §6 update_list_element, gated like
// UpdateList.
func (s *State) UpdateListElement(name string, index int, v value.Value) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.UpdateElement(name, index, v)
	})
	return err
}

// DeleteListElement implements spec.md §6 delete_list_element, gated like
// UpdateList (element removal is a mutation of list_name, not a structural
// delete of the list itself, so it follows the update rule, not the delete
// rule).
func (s *State) DeleteListElement(name string, index int) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if err := s.guardUpdateInUse(name); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, s.Lists.DeleteElement(name, index)
	})
	return err
}

// GetBuiltins implements spec.md §6 get_builtins.
func (s *State) GetBuiltins() map[string]value.Function { return s.Functions.Builtins() }

// GetCustomFunctionNames implements spec.md §6 get_custom_function_names.
func (s *State) GetCustomFunctionNames() []string { return s.Functions.CustomNames() }

// DeleteFunction deletes a custom function. Disallowed while a demonstration
// is active, in either demonstration or between mode (original source
// delete_function: "TODO: Why not?" — kept because deletion could invalidate
// in-progress constraints referencing it).
func (s *State) DeleteFunction(name string) *errors.EngineError {
	_, err := withRollback(s, func() (struct{}, *errors.EngineError) {
		if s.Demo != nil {
			return struct{}{}, errors.CannotDeleteFuncError(name)
		}
		return struct{}{}, s.Functions.DeleteCustom(name)
	})
	return err
}
