// Package branchtree implements the binary decision tree of spec.md §4.6:
// every demonstrated execution path is a sequence of "T"/"F" tokens from the
// root, each node holding the block of instructions executed along that
// path. A node's branch instruction, if present, is always the last
// instruction of its block, and its two children correspond to the two
// outcomes — grounded on the teacher's AST-node-with-children shape
// (internal/interp/types) generalized here to a fixed binary fan-out.
package branchtree

// Token is one step of a path from the tree root.
type Token string

const (
	// True marks the branch taken when a condition evaluated true.
	True Token = "T"
	// False marks the branch taken when a condition evaluated false.
	False Token = "F"
)

// InstrKind distinguishes the naming form from the two control forms.
type InstrKind uint8

const (
	// Naming is `(temp_name, expr)` with expr = [function_name, arg names...].
	Naming InstrKind = iota
	// Branch is `(none, ["branch", cond_name])`.
	Branch
	// Ret is `(none, ["ret", name])`.
	Ret
)

// Instruction is one step of a block: either a naming form binding a fresh
// temporary to a function application, or one of the two control forms.
type Instruction struct {
	Kind InstrKind

	// Naming fields.
	TempName string
	Expr     []string // [function_name, arg_name_1, ..., arg_name_k]

	// Branch field.
	CondName string

	// Ret field.
	RetName string
}

// NewNaming constructs a naming instruction.
func NewNaming(tempName string, expr []string) Instruction {
	e := make([]string, len(expr))
	copy(e, expr)
	return Instruction{Kind: Naming, TempName: tempName, Expr: e}
}

// NewBranch constructs a branch instruction.
func NewBranch(condName string) Instruction {
	return Instruction{Kind: Branch, CondName: condName}
}

// NewRet constructs a return instruction.
func NewRet(name string) Instruction {
	return Instruction{Kind: Ret, RetName: name}
}

// Equal reports whether two instructions are literally identical, used to
// detect a demonstrated instruction diverging from the one already recorded
// at the cursor's position (spec.md §7 InvariantMismatch).
func (i Instruction) Equal(o Instruction) bool {
	if i.Kind != o.Kind {
		return false
	}
	switch i.Kind {
	case Naming:
		if i.TempName != o.TempName || len(i.Expr) != len(o.Expr) {
			return false
		}
		for k := range i.Expr {
			if i.Expr[k] != o.Expr[k] {
				return false
			}
		}
		return true
	case Branch:
		return i.CondName == o.CondName
	case Ret:
		return i.RetName == o.RetName
	}
	return false
}

// Node is one position in the branch tree: the path that reaches it, the
// instructions executed along that path, and its two possible children.
type Node struct {
	Path  []Token
	Block []Instruction
	True  *Node
	False *Node
}

// NewNode creates an empty node reached by path. path is copied, so the
// caller may reuse or extend its slice afterwards.
func NewNode(path []Token) *Node {
	return &Node{Path: append([]Token(nil), path...)}
}

// Child returns the existing child for tok, or nil.
func (n *Node) Child(tok Token) *Node {
	if tok == True {
		return n.True
	}
	return n.False
}

// SetChild attaches child under tok, creating it if child is freshly built
// via NewNode by the caller.
func (n *Node) SetChild(tok Token, child *Node) {
	if tok == True {
		n.True = child
	} else {
		n.False = child
	}
}

// LastInstruction returns the last instruction of the block, or the zero
// value and false if the block is empty.
func (n *Node) LastInstruction() (Instruction, bool) {
	if len(n.Block) == 0 {
		return Instruction{}, false
	}
	return n.Block[len(n.Block)-1], true
}

// IsTerminated reports whether the node's block ends in a ret instruction
// (this path is fully demonstrated, no further examples needed here).
func (n *Node) IsTerminated() bool {
	last, ok := n.LastInstruction()
	return ok && last.Kind == Ret
}

// IsBranched reports whether the node's block ends in a branch instruction.
func (n *Node) IsBranched() bool {
	last, ok := n.LastInstruction()
	return ok && last.Kind == Branch
}

// Clone deep-copies the subtree rooted at n. Used by demonstration/façade
// snapshotting to break sharing between the live tree and a rollback
// snapshot.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		Path:  append([]Token(nil), n.Path...),
		Block: make([]Instruction, len(n.Block)),
	}
	for i, instr := range n.Block {
		cp.Block[i] = instr
		cp.Block[i].Expr = append([]string(nil), instr.Expr...)
	}
	cp.True = n.True.Clone()
	cp.False = n.False.Clone()
	return cp
}

// RemainingExamples walks the tree depth-first and returns the path of every
// node where demonstration is incomplete: a node whose block neither ends in
// ret nor branch (the path was abandoned mid-block — should not occur in a
// well-formed tree, but is reported defensively), or a branched node missing
// one of its two children (spec.md §4.6).
func RemainingExamples(root *Node) [][]Token {
	if root == nil {
		return nil
	}
	var out [][]Token
	var walk func(n *Node)
	walk = func(n *Node) {
		switch {
		case n.IsTerminated():
			return
		case n.IsBranched():
			if n.True == nil {
				out = append(out, append(append([]Token(nil), n.Path...), True))
			} else {
				walk(n.True)
			}
			if n.False == nil {
				out = append(out, append(append([]Token(nil), n.Path...), False))
			} else {
				walk(n.False)
			}
		default:
			out = append(out, append([]Token(nil), n.Path...))
		}
	}
	walk(root)
	return out
}
