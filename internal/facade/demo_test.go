package facade

import (
	"testing"

	"github.com/cwbudde/go-pbd/internal/value"
)

func TestDemo_Double(t *testing.T) {
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
	if _, err := st.Select(temp, false); err != nil {
		t.Fatalf("select temp: %v", err)
	}
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret: %v", err)
	}
	if ret.FunctionName == "" {
		t.Fatalf("expected a synthesized function, got remaining examples %v", ret.Remaining)
	}
	if st.CurrentMode() != string(Interactive) {
		t.Fatalf("expected interactive mode after full ret, got %s", st.CurrentMode())
	}

	r1, err := st.CreateRegister(value.NewInt(20))
	if err != nil {
		t.Fatalf("create_register 20: %v", err)
	}
	if _, err := st.Select(r1, false); err != nil {
		t.Fatalf("select 20: %v", err)
	}
	resultName, err := st.Apply(ret.FunctionName, false)
	if err != nil {
		t.Fatalf("apply synthesized: %v", err)
	}
	result, err := st.GetRegister(resultName)
	if err != nil {
		t.Fatalf("get_register: %v", err)
	}
	if result.Kind != value.Int || result.Int != 40 {
		t.Fatalf("expected 40, got %v", result)
	}
}

func TestDemo_HigherOrder(t *testing.T) {
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
	temp, err := st.Apply("+", true)
	if err != nil {
		t.Fatalf("apply +(variable): %v", err)
	}
	if _, err := st.Select(temp, false); err != nil {
		t.Fatalf("select temp: %v", err)
	}
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret: %v", err)
	}
	fname := ret.FunctionName

	cases := []struct {
		op   string
		want int64
	}{
		{"+", 40},
		{"*", 400},
	}
	for _, c := range cases {
		r1, err := st.CreateRegister(value.NewInt(20))
		if err != nil {
			t.Fatalf("create_register 20: %v", err)
		}
		if _, err := st.Select(r1, false); err != nil {
			t.Fatalf("select 20: %v", err)
		}
		if _, err := st.Select(c.op, false); err != nil {
			t.Fatalf("select %s: %v", c.op, err)
		}
		resultName, err := st.Apply(fname, false)
		if err != nil {
			t.Fatalf("apply %s(20,%s): %v", fname, c.op, err)
		}
		result, err := st.GetRegister(resultName)
		if err != nil {
			t.Fatalf("get_register: %v", err)
		}
		if result.Kind != value.Int || result.Int != c.want {
			t.Fatalf("%s(20,%s): expected %d, got %v", fname, c.op, c.want, result)
		}
	}
}

func TestDemo_Branch(t *testing.T) {
	st := New()
	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function: %v", err)
	}

	rInput, err := st.CreateRegister(value.NewInt(4))
	if err != nil {
		t.Fatalf("create_register input: %v", err)
	}
	rTwo, err := st.CreateRegister(value.NewInt(2))
	if err != nil {
		t.Fatalf("create_register 2: %v", err)
	}
	rZero, err := st.CreateRegister(value.NewInt(0))
	if err != nil {
		t.Fatalf("create_register 0: %v", err)
	}

	demonstrateParity := func(expect []value.Value) {
		t.Helper()
		if _, err := st.Select(rInput, true); err != nil {
			t.Fatalf("select input: %v", err)
		}
		if _, err := st.Select(rTwo, false); err != nil {
			t.Fatalf("select 2: %v", err)
		}
		mod, err := st.Apply("%", false)
		if err != nil {
			t.Fatalf("apply %%: %v", err)
		}
		if _, err := st.Select(mod, false); err != nil {
			t.Fatalf("select mod: %v", err)
		}
		if _, err := st.Select(rZero, false); err != nil {
			t.Fatalf("select 0: %v", err)
		}
		eq, err := st.Apply("==", false)
		if err != nil {
			t.Fatalf("apply ==: %v", err)
		}
		if _, err := st.Select(eq, false); err != nil {
			t.Fatalf("select eq: %v", err)
		}
		if err := st.Branch(); err != nil {
			t.Fatalf("branch: %v", err)
		}
		listName, err := st.CreateList(expect)
		if err != nil {
			t.Fatalf("create_list: %v", err)
		}
		if _, err := st.Select(listName, false); err != nil {
			t.Fatalf("select list: %v", err)
		}
	}

	demonstrateParity([]value.Value{value.NewInt(0), value.NewInt(0)})
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret (even): %v", err)
	}
	if len(ret.Remaining) == 0 {
		t.Fatalf("expected an unexplored odd path")
	}
	if st.CurrentMode() != string(Between) {
		t.Fatalf("expected between mode, got %s", st.CurrentMode())
	}

	if err := st.UpdateRegister(rInput, value.NewInt(3)); err != nil {
		t.Fatalf("update_register on an in-use input must be allowed in between mode: %v", err)
	}
	if err := st.Cont(); err != nil {
		t.Fatalf("cont: %v", err)
	}

	demonstrateParity([]value.Value{value.NewInt(1), value.NewInt(1)})
	ret, err = st.Ret()
	if err != nil {
		t.Fatalf("ret (odd): %v", err)
	}
	if ret.FunctionName == "" {
		t.Fatalf("expected synthesis to complete, remaining %v", ret.Remaining)
	}

	checkCall := func(input int64, want []int64) {
		t.Helper()
		r, err := st.CreateRegister(value.NewInt(input))
		if err != nil {
			t.Fatalf("create_register %d: %v", input, err)
		}
		if _, err := st.Select(r, false); err != nil {
			t.Fatalf("select %d: %v", input, err)
		}
		resultName, err := st.Apply(ret.FunctionName, false)
		if err != nil {
			t.Fatalf("apply %s(%d): %v", ret.FunctionName, input, err)
		}
		result, err := st.GetList(resultName)
		if err != nil {
			t.Fatalf("get_list: %v", err)
		}
		if len(result) != len(want) {
			t.Fatalf("expected %v, got %v", want, result)
		}
		for i, w := range want {
			if result[i].Int != w {
				t.Fatalf("expected %v, got %v", want, result)
			}
		}
	}

	checkCall(42, []int64{0, 0})
	checkCall(43, []int64{1, 1})
}

// TestDemo_MapViaBuiltin implements spec.md §8 scenario 4: with f0 = λx. x+1,
// map(f0, [1,2,3]) = [2,3,4] and map(not, [true,false]) = [false,true], both
// driven entirely through interactive-mode apply (no demonstration recording
// for the map call itself).
func TestDemo_MapViaBuiltin(t *testing.T) {
	st := New()
	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function: %v", err)
	}
	rx, err := st.CreateRegister(value.NewInt(5))
	if err != nil {
		t.Fatalf("create_register x: %v", err)
	}
	if _, err := st.Select(rx, true); err != nil {
		t.Fatalf("select x: %v", err)
	}
	rOne, err := st.CreateRegister(value.NewInt(1))
	if err != nil {
		t.Fatalf("create_register 1: %v", err)
	}
	if _, err := st.Select(rOne, false); err != nil {
		t.Fatalf("select 1: %v", err)
	}
	temp, err := st.Apply("+", false)
	if err != nil {
		t.Fatalf("apply +: %v", err)
	}
	if _, err := st.Select(temp, false); err != nil {
		t.Fatalf("select temp: %v", err)
	}
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret: %v", err)
	}
	f0 := ret.FunctionName

	listName, err := st.CreateList([]value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)})
	if err != nil {
		t.Fatalf("create_list: %v", err)
	}
	if _, err := st.Select(f0, false); err != nil {
		t.Fatalf("select f0: %v", err)
	}
	if _, err := st.Select(listName, false); err != nil {
		t.Fatalf("select list: %v", err)
	}
	mapped, err := st.Apply("map", false)
	if err != nil {
		t.Fatalf("apply map(f0, list): %v", err)
	}
	result, err := st.GetList(mapped)
	if err != nil {
		t.Fatalf("get_list: %v", err)
	}
	wantInts := []int64{2, 3, 4}
	if len(result) != len(wantInts) {
		t.Fatalf("expected %v, got %v", wantInts, result)
	}
	for i, w := range wantInts {
		if result[i].Int != w {
			t.Fatalf("expected %v, got %v", wantInts, result)
		}
	}

	boolList, err := st.CreateList([]value.Value{value.NewBool(true), value.NewBool(false)})
	if err != nil {
		t.Fatalf("create_list bools: %v", err)
	}
	if _, err := st.Select("not", false); err != nil {
		t.Fatalf("select not: %v", err)
	}
	if _, err := st.Select(boolList, false); err != nil {
		t.Fatalf("select bool list: %v", err)
	}
	mappedBools, err := st.Apply("map", false)
	if err != nil {
		t.Fatalf("apply map(not, list): %v", err)
	}
	boolResult, err := st.GetList(mappedBools)
	if err != nil {
		t.Fatalf("get_list bools: %v", err)
	}
	wantBools := []bool{false, true}
	if len(boolResult) != len(wantBools) {
		t.Fatalf("expected %v, got %v", wantBools, boolResult)
	}
	for i, w := range wantBools {
		if boolResult[i].Bool != w {
			t.Fatalf("expected %v, got %v", wantBools, boolResult)
		}
	}
}

// TestDemo_RecursiveMap implements spec.md §8 scenario 5: first demonstrate
// isEmpty: [a] -> Bool, then synthesize a recursive map using isEmpty,
// head/tail, a higher-order function input, cons, and self-recursion, whose
// base case (on []) returns [] and whose step destructures, applies the
// input function to the head, recurses on the tail, and conses.
func TestDemo_RecursiveMap(t *testing.T) {
	st := New()

	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function (isEmpty): %v", err)
	}
	isEmptyArg, err := st.CreateList(nil)
	if err != nil {
		t.Fatalf("create_list (isEmpty input): %v", err)
	}
	if _, err := st.Select(isEmptyArg, true); err != nil {
		t.Fatalf("select list: %v", err)
	}
	lenTemp, err := st.Apply("len", false)
	if err != nil {
		t.Fatalf("apply len: %v", err)
	}
	if _, err := st.Select(lenTemp, false); err != nil {
		t.Fatalf("select lenTemp: %v", err)
	}
	rZero, err := st.CreateRegister(value.NewInt(0))
	if err != nil {
		t.Fatalf("create_register 0: %v", err)
	}
	if _, err := st.Select(rZero, false); err != nil {
		t.Fatalf("select 0: %v", err)
	}
	eqTemp, err := st.Apply("==", false)
	if err != nil {
		t.Fatalf("apply ==: %v", err)
	}
	if _, err := st.Select(eqTemp, false); err != nil {
		t.Fatalf("select eqTemp: %v", err)
	}
	retEmpty, err := st.Ret()
	if err != nil {
		t.Fatalf("ret (isEmpty): %v", err)
	}
	isEmpty := retEmpty.FunctionName

	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function (map): %v", err)
	}
	listName, err := st.CreateList([]value.Value{value.NewBool(true)})
	if err != nil {
		t.Fatalf("create_list (map input, non-empty): %v", err)
	}

	// Register the function input before the list input is first used, so
	// the synthesized signature comes out function-first, (a -> b) -> [a] ->
	// [b], matching spec.md §8 scenario 5 — the pending selection is
	// immediately unselected again, since the input name-space entry, once
	// allocated, is never retracted.
	idxFn, err := st.Select("not", true)
	if err != nil {
		t.Fatalf("select f (pre-register): %v", err)
	}
	if err := st.Unselect(idxFn); err != nil {
		t.Fatalf("unselect f (pre-register): %v", err)
	}

	demonstrateStep := func() {
		t.Helper()
		if _, err := st.Select(listName, true); err != nil {
			t.Fatalf("select list (isEmpty check): %v", err)
		}
		isEmptyTemp, err := st.Apply(isEmpty, false)
		if err != nil {
			t.Fatalf("apply isEmpty: %v", err)
		}
		if _, err := st.Select(isEmptyTemp, false); err != nil {
			t.Fatalf("select isEmptyTemp: %v", err)
		}
		if err := st.Branch(); err != nil {
			t.Fatalf("branch: %v", err)
		}
	}

	demonstrateStep()

	if _, err := st.Select(listName, true); err != nil {
		t.Fatalf("select list (head): %v", err)
	}
	headTemp, err := st.Apply("head", false)
	if err != nil {
		t.Fatalf("apply head: %v", err)
	}
	if _, err := st.Select(listName, true); err != nil {
		t.Fatalf("select list (tail): %v", err)
	}
	tailTemp, err := st.Apply("tail", false)
	if err != nil {
		t.Fatalf("apply tail: %v", err)
	}
	if _, err := st.Select(headTemp, false); err != nil {
		t.Fatalf("select headTemp: %v", err)
	}
	fHeadTemp, err := st.Apply("not", true)
	if err != nil {
		t.Fatalf("apply f(head): %v", err)
	}
	if _, err := st.Select("not", true); err != nil {
		t.Fatalf("select f for recursion: %v", err)
	}
	if _, err := st.Select(tailTemp, false); err != nil {
		t.Fatalf("select tail for recursion: %v", err)
	}
	recResult, err := st.Recurse()
	if err != nil {
		t.Fatalf("recurse: %v", err)
	}
	if _, err := st.Select(fHeadTemp, false); err != nil {
		t.Fatalf("select fHeadTemp: %v", err)
	}
	if _, err := st.Select(recResult, false); err != nil {
		t.Fatalf("select recResult: %v", err)
	}
	consResult, err := st.Apply("cons", false)
	if err != nil {
		t.Fatalf("apply cons: %v", err)
	}
	if _, err := st.Select(consResult, false); err != nil {
		t.Fatalf("select consResult: %v", err)
	}
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret (non-empty step): %v", err)
	}
	if len(ret.Remaining) == 0 {
		t.Fatalf("expected the empty-list base case to remain unexplored")
	}
	if st.CurrentMode() != string(Between) {
		t.Fatalf("expected between mode, got %s", st.CurrentMode())
	}

	if err := st.UpdateList(listName, nil); err != nil {
		t.Fatalf("update_list to empty (in-use input, between mode): %v", err)
	}
	if err := st.Cont(); err != nil {
		t.Fatalf("cont: %v", err)
	}

	demonstrateStep()

	emptyResult, err := st.CreateList(nil)
	if err != nil {
		t.Fatalf("create_list (empty-case return value): %v", err)
	}
	if _, err := st.Select(emptyResult, false); err != nil {
		t.Fatalf("select empty return: %v", err)
	}
	ret, err = st.Ret()
	if err != nil {
		t.Fatalf("ret (empty base case): %v", err)
	}
	if ret.FunctionName == "" {
		t.Fatalf("expected synthesis to complete, remaining %v", ret.Remaining)
	}
	mapFn := ret.FunctionName

	callList, err := st.CreateList([]value.Value{value.NewBool(true), value.NewBool(false), value.NewBool(true)})
	if err != nil {
		t.Fatalf("create_list (call): %v", err)
	}
	if _, err := st.Select("not", false); err != nil {
		t.Fatalf("select not (call): %v", err)
	}
	if _, err := st.Select(callList, false); err != nil {
		t.Fatalf("select call list: %v", err)
	}
	resultName, err := st.Apply(mapFn, false)
	if err != nil {
		t.Fatalf("apply %s(not, list): %v", mapFn, err)
	}
	result, err := st.GetList(resultName)
	if err != nil {
		t.Fatalf("get_list: %v", err)
	}
	want := []bool{false, true, false}
	if len(result) != len(want) {
		t.Fatalf("expected %v, got %v", want, result)
	}
	for i, w := range want {
		if result[i].Bool != w {
			t.Fatalf("expected %v, got %v", want, result)
		}
	}
}

// TestDemo_ConditionalMap implements spec.md §8 scenario 6: a function
// [a] -> Bool -> (a -> a) -> (a -> a) -> [a] that maps its first function
// input when the flag is true and its second when false. Its two (a -> a)
// inputs are the builtin "not" and a separately-synthesized identity
// function, demonstrated without recursion (direct select+ret of the input).
func TestDemo_ConditionalMap(t *testing.T) {
	st := New()

	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function (id): %v", err)
	}
	idArg, err := st.CreateRegister(value.NewInt(0))
	if err != nil {
		t.Fatalf("create_register (id input): %v", err)
	}
	if _, err := st.Select(idArg, true); err != nil {
		t.Fatalf("select id input: %v", err)
	}
	retID, err := st.Ret()
	if err != nil {
		t.Fatalf("ret (id): %v", err)
	}
	idFn := retID.FunctionName

	if err := st.CreateFunction(); err != nil {
		t.Fatalf("create_function (conditional map): %v", err)
	}
	listName, err := st.CreateList([]value.Value{
		value.NewBool(true), value.NewBool(false), value.NewBool(true), value.NewBool(true), value.NewBool(false),
	})
	if err != nil {
		t.Fatalf("create_list: %v", err)
	}
	flagReg, err := st.CreateRegister(value.NewBool(true))
	if err != nil {
		t.Fatalf("create_register flag: %v", err)
	}

	// Register the four inputs (list, flag, f, g) in signature order, each
	// immediately unselected so the pending selection stays empty — an
	// input's name-space entry, once allocated, is never retracted (only the
	// pending selection list shrinks).
	for _, reg := range []struct {
		name string
	}{{listName}, {flagReg}, {"not"}, {idFn}} {
		idx, err := st.Select(reg.name, true)
		if err != nil {
			t.Fatalf("select %s: %v", reg.name, err)
		}
		if err := st.Unselect(idx); err != nil {
			t.Fatalf("unselect %s: %v", reg.name, err)
		}
	}

	if _, err := st.Select(flagReg, true); err != nil {
		t.Fatalf("select flag: %v", err)
	}
	if err := st.Branch(); err != nil {
		t.Fatalf("branch: %v", err)
	}

	if _, err := st.Select("not", true); err != nil {
		t.Fatalf("select f (true branch): %v", err)
	}
	if _, err := st.Select(listName, true); err != nil {
		t.Fatalf("select list (true branch): %v", err)
	}
	mapTrue, err := st.Apply("map", false)
	if err != nil {
		t.Fatalf("apply map(f, list): %v", err)
	}
	if _, err := st.Select(mapTrue, false); err != nil {
		t.Fatalf("select mapTrue: %v", err)
	}
	ret, err := st.Ret()
	if err != nil {
		t.Fatalf("ret (true branch): %v", err)
	}
	if len(ret.Remaining) == 0 {
		t.Fatalf("expected the false-flag path to remain unexplored")
	}

	if err := st.UpdateRegister(flagReg, value.NewBool(false)); err != nil {
		t.Fatalf("update_register flag (in-use input, between mode): %v", err)
	}
	if err := st.Cont(); err != nil {
		t.Fatalf("cont: %v", err)
	}

	if _, err := st.Select(flagReg, true); err != nil {
		t.Fatalf("select flag (false branch): %v", err)
	}
	if err := st.Branch(); err != nil {
		t.Fatalf("branch (false branch): %v", err)
	}
	if _, err := st.Select(idFn, true); err != nil {
		t.Fatalf("select g (false branch): %v", err)
	}
	if _, err := st.Select(listName, true); err != nil {
		t.Fatalf("select list (false branch): %v", err)
	}
	mapFalse, err := st.Apply("map", false)
	if err != nil {
		t.Fatalf("apply map(g, list): %v", err)
	}
	if _, err := st.Select(mapFalse, false); err != nil {
		t.Fatalf("select mapFalse: %v", err)
	}
	ret, err = st.Ret()
	if err != nil {
		t.Fatalf("ret (false branch): %v", err)
	}
	if ret.FunctionName == "" {
		t.Fatalf("expected synthesis to complete, remaining %v", ret.Remaining)
	}
	condMap := ret.FunctionName

	callOnce := func(flag bool, want []bool) {
		t.Helper()
		checkList, err := st.CreateList([]value.Value{
			value.NewBool(true), value.NewBool(false), value.NewBool(true), value.NewBool(true), value.NewBool(false),
		})
		if err != nil {
			t.Fatalf("create_list (call): %v", err)
		}
		flagCheck, err := st.CreateRegister(value.NewBool(flag))
		if err != nil {
			t.Fatalf("create_register flag (call): %v", err)
		}
		if _, err := st.Select(checkList, false); err != nil {
			t.Fatalf("select call list: %v", err)
		}
		if _, err := st.Select(flagCheck, false); err != nil {
			t.Fatalf("select call flag: %v", err)
		}
		if _, err := st.Select("not", false); err != nil {
			t.Fatalf("select call f: %v", err)
		}
		if _, err := st.Select(idFn, false); err != nil {
			t.Fatalf("select call g: %v", err)
		}
		resultName, err := st.Apply(condMap, false)
		if err != nil {
			t.Fatalf("apply %s: %v", condMap, err)
		}
		result, err := st.GetList(resultName)
		if err != nil {
			t.Fatalf("get_list: %v", err)
		}
		if len(result) != len(want) {
			t.Fatalf("flag=%v: expected %v, got %v", flag, want, result)
		}
		for i, w := range want {
			if result[i].Bool != w {
				t.Fatalf("flag=%v: expected %v, got %v", flag, want, result)
			}
		}
	}

	callOnce(true, []bool{false, true, false, false, true})
	callOnce(false, []bool{true, false, true, true, false})
}
