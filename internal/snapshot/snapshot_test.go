package snapshot

import "testing"

type counter struct{ n int }

func (c counter) Clone() counter { return counter{n: c.n} }

func TestHistory_UndoRedo(t *testing.T) {
	h := New[counter](3)
	h.CreateSnapshot(counter{1})
	h.CreateSnapshot(counter{2})
	h.CreateSnapshot(counter{3})

	got, ok := h.Undo()
	if !ok || got.n != 2 {
		t.Fatalf("undo: got %+v, ok=%v", got, ok)
	}
	got, ok = h.Undo()
	if !ok || got.n != 1 {
		t.Fatalf("undo: got %+v, ok=%v", got, ok)
	}
	if _, ok := h.Undo(); ok {
		t.Fatalf("expected no earlier snapshot")
	}
	got, ok = h.Redo()
	if !ok || got.n != 2 {
		t.Fatalf("redo: got %+v, ok=%v", got, ok)
	}
}

func TestHistory_NewSnapshotInvalidatesRedo(t *testing.T) {
	h := New[counter](3)
	h.CreateSnapshot(counter{1})
	h.CreateSnapshot(counter{2})
	h.Undo()
	h.CreateSnapshot(counter{99})
	if _, ok := h.Redo(); ok {
		t.Fatalf("expected redo history to be invalidated by new snapshot")
	}
	got, _ := h.Restore()
	if got.n != 99 {
		t.Fatalf("got %+v", got)
	}
}

func TestHistory_WrapAroundAtCapacity(t *testing.T) {
	h := New[counter](2)
	h.CreateSnapshot(counter{1})
	h.CreateSnapshot(counter{2})
	h.CreateSnapshot(counter{3})
	if _, ok := h.Undo(); !ok {
		t.Fatalf("expected one step of undo history after wrap")
	}
	got, _ := h.Restore()
	if got.n != 2 {
		t.Fatalf("got %+v, want oldest retained entry (2)", got)
	}
}

func TestHistory_CloneIndependence(t *testing.T) {
	h := New[counter](2)
	original := counter{n: 5}
	h.CreateSnapshot(original)
	got, _ := h.Restore()
	got.n = 999
	got2, _ := h.Restore()
	if got2.n != 5 {
		t.Fatalf("restore returned shared state: %+v", got2)
	}
}
