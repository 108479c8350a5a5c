package typeterm

import "github.com/cwbudde/go-pbd/internal/errors"

// Equation is an ordered pair of type terms representing a unification
// constraint, per spec.md §3.
type Equation struct {
	Left  *Term
	Right *Term
}

// Unify solves a list of equations by repeatedly applying the rule table of
// spec.md §4.1 (delete, decompose, conflict, swap, eliminate, occurs check)
// until no rule applies to any remaining equation, then runs the support
// filter over the solved set. The solved output has a Var on the left of
// every equation, no left-hand variable occurring on its own right-hand
// side, and no two equations sharing a left-hand variable.
//
// Failures are reported uniformly as *errors.EngineError with Kind
// NoSolution (conflict, occurs check) or UnsupportedType (support filter).
func Unify(eqs []Equation) ([]Equation, *errors.EngineError) {
	work := append([]Equation(nil), eqs...)
	var solved []Equation

	for len(work) > 0 {
		eq := work[0]
		work = work[1:]
		l, r := eq.Left, eq.Right

		switch {
		case Equal(l, r):
			// delete
			continue

		case l.kind != KindVar && r.kind != KindVar && l.kind == r.kind:
			// decompose: matching non-variable heads with differing components
			switch l.kind {
			case KindList:
				work = append([]Equation{{l.elem, r.elem}}, work...)
			case KindApp:
				work = append([]Equation{{l.dom, r.dom}, {l.cod, r.cod}}, work...)
			default:
				// Num/Bool with no components would already have matched Equal above.
			}
			continue

		case l.kind != KindVar && r.kind != KindVar && l.kind != r.kind:
			// conflict: two different non-variable heads
			return nil, errors.NoSolutionConflict(l.String(), r.String())

		case l.kind != KindVar && r.kind == KindVar:
			// swap: orient as variable = term
			work = append([]Equation{{r, l}}, work...)
			continue

		default: // l.kind == KindVar
			x := l.name
			if Occurs(x, r) {
				// occurs check: x = t, x in fv(t), t non-variable (r == Var(x)
				// would already have been caught by the Equal/delete rule above).
				return nil, errors.OccursCheckFailed(x, r.String())
			}
			solved = substituteInEquations(x, r, solved)
			work = substituteInEquations(x, r, work)
			solved = append(solved, Equation{Var(x), r})
			continue
		}
	}

	if err := checkSupportFilter(solved); err != nil {
		return nil, err
	}
	return solved, nil
}

func substituteInEquations(name string, t *Term, eqs []Equation) []Equation {
	if len(eqs) == 0 {
		return eqs
	}
	out := make([]Equation, len(eqs))
	for i, eq := range eqs {
		out[i] = Equation{Subst(name, t, eq.Left), Subst(name, t, eq.Right)}
	}
	return out
}

func checkSupportFilter(solved []Equation) *errors.EngineError {
	for _, eq := range solved {
		if err := checkSupported(eq.Right); err != nil {
			return err
		}
	}
	return nil
}

// checkSupported implements spec.md §4.1's post-unification support filter:
// every List must contain Num, Bool, or a Var (never another List or an
// App); App recurses into both its domain and codomain.
func checkSupported(t *Term) *errors.EngineError {
	if t == nil {
		return nil
	}
	switch t.kind {
	case KindVar, KindNum, KindBool:
		return nil
	case KindList:
		switch t.elem.kind {
		case KindNum, KindBool, KindVar:
			return nil
		default:
			return errors.UnsupportedTypeError(t.String())
		}
	case KindApp:
		if err := checkSupported(t.dom); err != nil {
			return err
		}
		return checkSupported(t.cod)
	}
	return nil
}

// CheckSupportFragment runs the support filter on a single term, outside of
// a full unification pass.
func CheckSupportFragment(t *Term) *errors.EngineError {
	return checkSupported(t)
}
