package registry

import (
	"testing"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

func TestRegisterStore_CreateRejectsNonPrimitive(t *testing.T) {
	s := NewRegisterStore()
	_, err := s.Create(value.NewList(nil))
	if err == nil || err.Kind != errors.TypeMismatch {
		t.Fatalf("expected TypeMismatch creating a register from a list, got %v", err)
	}
}

func TestRegisterStore_CreateUpdateGet(t *testing.T) {
	s := NewRegisterStore()
	name, err := s.Create(value.NewInt(3))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if name != "r_0" {
		t.Errorf("first register name = %q, want r_0", name)
	}
	got, gerr := s.Get(name)
	if gerr != nil || got.Int != 3 {
		t.Fatalf("Get after Create = %v, %v, want 3", got, gerr)
	}
	if err := s.Update(name, value.NewInt(7)); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, gerr = s.Get(name)
	if gerr != nil || got.Int != 7 {
		t.Fatalf("Get after Update = %v, %v, want 7", got, gerr)
	}
}

func TestRegisterStore_UpdateUnknownName(t *testing.T) {
	s := NewRegisterStore()
	if err := s.Update("r_99", value.NewInt(1)); err == nil || err.Kind != errors.UnknownName {
		t.Fatalf("expected UnknownName updating a nonexistent register, got %v", err)
	}
}

func TestRegisterStore_DeleteAndNamesOrder(t *testing.T) {
	s := NewRegisterStore()
	r0, _ := s.Create(value.NewInt(1))
	r1, _ := s.Create(value.NewInt(2))
	r2, _ := s.Create(value.NewInt(3))

	if err := s.Delete(r1); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.IsValid(r1) {
		t.Error("r1 should no longer be valid after Delete")
	}
	names := s.Names()
	want := []string{r0, r2}
	if len(names) != len(want) || names[0] != want[0] || names[1] != want[1] {
		t.Errorf("Names() after deleting the middle entry = %v, want %v", names, want)
	}

	if err := s.Delete(r1); err == nil || err.Kind != errors.UnknownName {
		t.Errorf("deleting an already-deleted register should report UnknownName, got %v", err)
	}
}

func TestRegisterStore_CloneBreaksSharing(t *testing.T) {
	s := NewRegisterStore()
	name, _ := s.Create(value.NewInt(1))
	cp := s.Clone()
	if err := cp.Update(name, value.NewInt(2)); err != nil {
		t.Fatalf("Update on clone: %v", err)
	}
	orig, _ := s.Get(name)
	if orig.Int != 1 {
		t.Errorf("mutating the clone affected the original: got %d, want 1", orig.Int)
	}
}
