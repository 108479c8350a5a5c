package facade

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/cwbudde/go-pbd/internal/value"
)

// TestDemo_DoubleComputationSnapshot pins the branch-tree instruction stream
// recorded while demonstrating f(x) = x + x, so that a future change to
// naming or temp numbering shows up as a diff instead of silently drifting.
func TestDemo_DoubleComputationSnapshot(t *testing.T) {
	st := New()
	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function: %v", err)
	}

	r0, err := st.CreateRegister(value.NewInt(3))
	if err != nil {
		t.Fatalf("create_register: %v", err)
	}
	if _, err := st.Select(r0, true); err != nil {
		t.Fatalf("select 1: %v", err)
	}
	if _, err := st.Select(r0, true); err != nil {
		t.Fatalf("select 2: %v", err)
	}
	temp, err := st.Apply("+", false)
	if err != nil {
		t.Fatalf("apply +: %v", err)
	}

	computation, cerr := st.GetComputation(temp)
	if cerr != nil {
		t.Fatalf("get_computation: %v", cerr)
	}
	snaps.MatchSnapshot(t, fmt.Sprintf("%s_expr", temp), computation)

	if _, err := st.Select(temp, false); err != nil {
		t.Fatalf("select temp: %v", err)
	}
	ret, rerr := st.Ret()
	if rerr != nil {
		t.Fatalf("ret: %v", rerr)
	}
	snaps.MatchSnapshot(t, "synthesized_function_name", ret.FunctionName)
}
