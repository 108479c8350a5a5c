package registry

import (
	"testing"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/value"
)

func TestListStore_CreateRejectsHeterogeneous(t *testing.T) {
	s := NewListStore()
	_, err := s.Create([]value.Value{value.NewInt(1), value.NewBool(true)})
	if err == nil || err.Kind != errors.TypeMismatch {
		t.Fatalf("expected TypeMismatch for a mixed Int/Bool list, got %v", err)
	}
}

func TestListStore_CreateAllowsEmptyAndHomogeneous(t *testing.T) {
	s := NewListStore()
	if _, err := s.Create(nil); err != nil {
		t.Errorf("empty list should be accepted, got %v", err)
	}
	if _, err := s.Create([]value.Value{value.NewInt(1), value.NewFloat(2.5)}); err != nil {
		t.Errorf("Int/Float mix should be accepted as Num, got %v", err)
	}
}

func TestListStore_GetReturnsDeepCopy(t *testing.T) {
	s := NewListStore()
	name, _ := s.Create([]value.Value{value.NewInt(1)})
	got, err := s.Get(name)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got[0] = value.NewInt(99)
	again, _ := s.Get(name)
	if again[0].Int == 99 {
		t.Error("Get should return a copy that does not alias the stored list")
	}
}

func TestListStore_UpdateRejectsHeterogeneous(t *testing.T) {
	s := NewListStore()
	name, _ := s.Create([]value.Value{value.NewInt(1)})
	err := s.Update(name, []value.Value{value.NewBool(true)})
	if err == nil || err.Kind != errors.TypeMismatch {
		t.Fatalf("expected TypeMismatch updating with a different element kind, got %v", err)
	}
	current, _ := s.Get(name)
	if len(current) != 1 || current[0].Int != 1 {
		t.Errorf("failed Update should not have mutated the list, got %v", current)
	}
}

func TestListStore_GetElementBounds(t *testing.T) {
	s := NewListStore()
	name, _ := s.Create([]value.Value{value.NewInt(10), value.NewInt(20)})
	v, err := s.GetElement(name, 1)
	if err != nil || v.Int != 20 {
		t.Fatalf("GetElement(1) = %v, %v, want 20", v, err)
	}
	if _, err := s.GetElement(name, 5); err == nil || err.Kind != errors.IndexOutOfRange {
		t.Errorf("expected IndexOutOfRange for an out-of-bounds index, got %v", err)
	}
}

func TestListStore_AppendRejectsDisallowedKind(t *testing.T) {
	s := NewListStore()
	name, _ := s.Create([]value.Value{value.NewBool(true)})
	if err := s.Append(name, value.NewInt(1)); err == nil || err.Kind != errors.TypeMismatch {
		t.Fatalf("appending an Int onto a Bool list should fail, got %v", err)
	}
	if err := s.Append(name, value.NewBool(false)); err != nil {
		t.Fatalf("appending a matching Bool should succeed, got %v", err)
	}
	got, _ := s.Get(name)
	if len(got) != 2 || got[1].Bool != false {
		t.Errorf("Append result = %v, want [true false]", got)
	}
}

func TestListStore_InsertUpdateDeleteElement(t *testing.T) {
	s := NewListStore()
	name, _ := s.Create([]value.Value{value.NewInt(1), value.NewInt(3)})

	if err := s.InsertElement(name, 1, value.NewInt(2)); err != nil {
		t.Fatalf("InsertElement: %v", err)
	}
	got, _ := s.Get(name)
	if len(got) != 3 || got[1].Int != 2 {
		t.Fatalf("after InsertElement(1, 2) = %v, want [1 2 3]", got)
	}

	if err := s.UpdateElement(name, 0, value.NewInt(100)); err != nil {
		t.Fatalf("UpdateElement: %v", err)
	}
	got, _ = s.Get(name)
	if got[0].Int != 100 {
		t.Fatalf("after UpdateElement(0, 100) = %v, want first element 100", got)
	}

	if err := s.DeleteElement(name, 1); err != nil {
		t.Fatalf("DeleteElement: %v", err)
	}
	got, _ = s.Get(name)
	want := []int64{100, 3}
	if len(got) != len(want) {
		t.Fatalf("after DeleteElement(1) = %v, want len %d", got, len(want))
	}
	for i, w := range want {
		if got[i].Int != w {
			t.Errorf("element %d = %d, want %d", i, got[i].Int, w)
		}
	}
}

func TestListStore_DeleteAndNamesOrder(t *testing.T) {
	s := NewListStore()
	l0, _ := s.Create(nil)
	l1, _ := s.Create(nil)

	if err := s.Delete(l0); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.IsValid(l0) {
		t.Error("l0 should no longer be valid")
	}
	names := s.Names()
	if len(names) != 1 || names[0] != l1 {
		t.Errorf("Names() after delete = %v, want [%s]", names, l1)
	}
}
