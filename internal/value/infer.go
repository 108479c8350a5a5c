package value

import "github.com/cwbudde/go-pbd/internal/typeterm"

// InferType maps a runtime Value to its type term (spec.md §4.2
// infer_value_type): bool -> Bool, int/float -> Num, [] -> List(Var "a")
// (a fresh variable, alpha-converted by the caller), [x, ...] ->
// List(InferType(x)).
//
// Open question preserved from spec.md §9: a non-empty list is typed by its
// first element only, without verifying homogeneity — list creation/update
// enforce homogeneity separately (see internal/registry). This split is
// intentional, not an oversight: homogeneity is checked where a list is
// stored, not each time a list value is typed.
func InferType(v Value) *typeterm.Term {
	switch v.Kind {
	case Bool:
		return typeterm.Bool()
	case Int, Float:
		return typeterm.Num()
	case List:
		if len(v.List) == 0 {
			return typeterm.List(typeterm.Var("a"))
		}
		return typeterm.List(InferType(v.List[0]))
	case Func:
		return v.Func.Signature()
	}
	return typeterm.Var("a")
}

// SupportedElementTypes implements spec.md §4.3's supported_element_types:
// given a value already known to be a list, returns which scalar kinds may
// be inserted/updated/appended into it. An empty list accepts either Num or
// Bool; a Num list accepts only Num; a Bool list accepts only Bool.
func SupportedElementTypes(v Value) map[Kind]struct{} {
	t := InferType(v)
	if t.Kind() != typeterm.KindList {
		return nil
	}
	switch t.Elem().Kind() {
	case typeterm.KindVar:
		return map[Kind]struct{}{Int: {}, Float: {}, Bool: {}}
	case typeterm.KindNum:
		return map[Kind]struct{}{Int: {}, Float: {}}
	case typeterm.KindBool:
		return map[Kind]struct{}{Bool: {}}
	}
	return nil
}

// InferArgumentSignature implements spec.md §4.2 infer_argument_signature:
// types each argument independently, alpha-converts each with a shared
// offset (so two different empty lists do not get forced to the same
// element type), then right-folds the results into an arrow chain ending in
// result.
func InferArgumentSignature(args []Value, result *typeterm.Term, prefix string, offset int) (*typeterm.Term, int, error) {
	if len(args) == 0 {
		return result, offset, nil
	}
	terms := make([]*typeterm.Term, 0, len(args)+1)
	next := offset
	for _, arg := range args {
		t := InferType(arg)
		renamed, newOffset, err := typeterm.AlphaConvert(t, prefix, next)
		if err != nil {
			return nil, 0, err
		}
		terms = append(terms, renamed)
		next = newOffset
	}
	terms = append(terms, result)
	combined, err := typeterm.CombineIntoApp(terms)
	if err != nil {
		return nil, 0, err
	}
	return combined, next, nil
}
