package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cwbudde/go-pbd/internal/errors"
	"github.com/cwbudde/go-pbd/internal/facade"
	"github.com/cwbudde/go-pbd/internal/value"
)

// script replays a fixed sequence of façade calls end to end: it records one
// or more examples of a function, synthesizes it, and evaluates it against a
// sample input. There is no textual source language to run here, so this
// stands in for the teacher's "run a .dws file" — it runs a demonstration
// instead.
type script struct {
	name        string
	description string
	run         func(st *facade.State) (string, *errors.EngineError)
}

var scripts = []script{
	{
		name:        "double",
		description: "demonstrate f(x) = x + x from a single example",
		run:         runDoubleScript,
	},
	{
		name:        "higher-order",
		description: "demonstrate f(x, op) = op(x, x) with the operator itself as an input",
		run:         runHigherOrderScript,
	},
	{
		name:        "branch",
		description: "demonstrate an even/odd branch over two examples",
		run:         runBranchScript,
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo [script]",
	Short: "Replay a built-in demonstration script",
	Long: `Replay a scripted sequence of façade calls (create_function, select,
apply, branch, ret, cont) against the synthesis engine and print the
resulting function's signature and a sample evaluation.

Run without arguments to list the available scripts.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		fmt.Println("available demonstration scripts:")
		for _, s := range scripts {
			fmt.Printf("  %-14s %s\n", s.name, s.description)
		}
		return nil
	}

	name := args[0]
	for _, s := range scripts {
		if s.name != name {
			continue
		}
		st := facade.New()
		result, err := s.run(st)
		if err != nil {
			color.Red("demonstration failed: %s", err.Error())
			return err
		}
		color.Green("function synthesized")
		fmt.Println(result)
		return nil
	}

	err := fmt.Errorf("unknown script %q", name)
	color.Red(err.Error())
	return err
}

func runDoubleScript(st *facade.State) (string, *errors.EngineError) {
	if err := st.CreateFunction(); err != nil {
		return "", err
	}
	r0, err := st.CreateRegister(value.NewInt(3))
	if err != nil {
		return "", err
	}
	if _, err := st.Select(r0, true); err != nil {
		return "", err
	}
	if _, err := st.Select(r0, true); err != nil {
		return "", err
	}
	temp, err := st.Apply("+", false)
	if err != nil {
		return "", err
	}
	if _, err := st.Select(temp, false); err != nil {
		return "", err
	}
	ret, err := st.Ret()
	if err != nil {
		return "", err
	}
	fname := ret.FunctionName

	r1, err := st.CreateRegister(value.NewInt(20))
	if err != nil {
		return "", err
	}
	if _, err := st.Select(r1, false); err != nil {
		return "", err
	}
	resultName, err := st.Apply(fname, false)
	if err != nil {
		return "", err
	}
	resultVal, err := st.GetValue(resultName)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s: Num -> Num\n%s(20) = %s", fname, fname, resultVal.String()), nil
}

func runHigherOrderScript(st *facade.State) (string, *errors.EngineError) {
	if err := st.CreateFunction(); err != nil {
		return "", err
	}
	r0, err := st.CreateRegister(value.NewInt(3))
	if err != nil {
		return "", err
	}
	if _, err := st.Select(r0, true); err != nil {
		return "", err
	}
	if _, err := st.Select(r0, true); err != nil {
		return "", err
	}
	temp, err := st.Apply("+", true)
	if err != nil {
		return "", err
	}
	if _, err := st.Select(temp, false); err != nil {
		return "", err
	}
	ret, err := st.Ret()
	if err != nil {
		return "", err
	}
	fname := ret.FunctionName

	r1, err := st.CreateRegister(value.NewInt(20))
	if err != nil {
		return "", err
	}

	if _, err := st.Select(r1, false); err != nil {
		return "", err
	}
	if _, err := st.Select("+", false); err != nil {
		return "", err
	}
	plusResult, err := st.Apply(fname, false)
	if err != nil {
		return "", err
	}
	plusVal, err := st.GetValue(plusResult)
	if err != nil {
		return "", err
	}

	if _, err := st.Select(r1, false); err != nil {
		return "", err
	}
	if _, err := st.Select("*", false); err != nil {
		return "", err
	}
	timesResult, err := st.Apply(fname, false)
	if err != nil {
		return "", err
	}
	timesVal, err := st.GetValue(timesResult)
	if err != nil {
		return "", err
	}

	sig := "?"
	if fn, ok := st.Functions.Resolve(fname); ok {
		sig = fn.Signature().String()
	}
	return fmt.Sprintf("%s: %s\n%s(20, +) = %s\n%s(20, *) = %s",
		fname, sig, fname, plusVal.String(), fname, timesVal.String()), nil
}

func runBranchScript(st *facade.State) (string, *errors.EngineError) {
	if err := st.CreateFunction(); err != nil {
		return "", err
	}

	rInput, err := st.CreateRegister(value.NewInt(4))
	if err != nil {
		return "", err
	}
	rTwo, err := st.CreateRegister(value.NewInt(2))
	if err != nil {
		return "", err
	}
	rZero, err := st.CreateRegister(value.NewInt(0))
	if err != nil {
		return "", err
	}

	recordExample := func() (*facade.RetResult, *errors.EngineError) {
		if _, err := st.Select(rInput, true); err != nil {
			return nil, err
		}
		if _, err := st.Select(rTwo, false); err != nil {
			return nil, err
		}
		mod, err := st.Apply("%", false)
		if err != nil {
			return nil, err
		}
		if _, err := st.Select(mod, false); err != nil {
			return nil, err
		}
		if _, err := st.Select(rZero, false); err != nil {
			return nil, err
		}
		isEven, err := st.Apply("==", false)
		if err != nil {
			return nil, err
		}
		if _, err := st.Select(isEven, false); err != nil {
			return nil, err
		}
		if err := st.Branch(); err != nil {
			return nil, err
		}

		var listElems []value.Value
		current, verr := st.GetValue(rInput)
		if verr != nil {
			return nil, verr
		}
		if current.Int%2 == 0 {
			listElems = []value.Value{value.NewInt(0), value.NewInt(0)}
		} else {
			listElems = []value.Value{value.NewInt(1), value.NewInt(1)}
		}
		listName, lerr := st.CreateList(listElems)
		if lerr != nil {
			return nil, lerr
		}
		if _, err := st.Select(listName, false); err != nil {
			return nil, err
		}
		ret, rerr := st.Ret()
		if rerr != nil {
			return nil, rerr
		}
		return &ret, nil
	}

	even, err := recordExample()
	if err != nil {
		return "", err
	}
	if len(even.Remaining) == 0 {
		return "", errors.New(errors.InvariantMismatch, "expected an unexplored odd path after the even example")
	}

	if err := st.UpdateRegister(rInput, value.NewInt(3)); err != nil {
		return "", err
	}
	if err := st.Cont(); err != nil {
		return "", err
	}

	odd, err := recordExample()
	if err != nil {
		return "", err
	}
	fname := odd.FunctionName

	r42, err := st.CreateRegister(value.NewInt(42))
	if err != nil {
		return "", err
	}
	if _, err := st.Select(r42, false); err != nil {
		return "", err
	}
	res42, err := st.Apply(fname, false)
	if err != nil {
		return "", err
	}
	val42, err := st.GetValue(res42)
	if err != nil {
		return "", err
	}

	r43, err := st.CreateRegister(value.NewInt(43))
	if err != nil {
		return "", err
	}
	if _, err := st.Select(r43, false); err != nil {
		return "", err
	}
	res43, err := st.Apply(fname, false)
	if err != nil {
		return "", err
	}
	val43, err := st.GetValue(res43)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s: Num -> [Num]\n%s(42) = %s\n%s(43) = %s",
		fname, fname, val42.String(), fname, val43.String()), nil
}
