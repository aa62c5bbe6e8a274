// Package ir implements the linear intermediate representation this
// front end lowers to, and the control-flow graph built on top of it.
package ir

import "fmt"

// InstId is the stable zero-based position of an instruction within its
// owning function's instruction list. It never changes once assigned;
// CFG construction may rewrite an instruction's payload in place but
// never relocates it.
type InstId int

// NoInst is the sentinel used where an InstId field is not yet known,
// e.g. curLoop outside any loop.
const NoInst InstId = -1

// BlockId is the zero-based index of a basic block within its function.
type BlockId int

// Cc is the two-operand condition code carried by IfFalse and Branch.
type Cc int

const (
	Eq Cc = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

func (cc Cc) String() string {
	switch cc {
	case Eq:
		return "=="
	case Ne:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Le:
		return "<="
	case Ge:
		return ">="
	default:
		return "?"
	}
}

// BinOp is the set of value-producing binary operators the IR carries;
// comparisons are represented separately as Cc on IfFalse/Branch rather
// than as a BinOp, since they never produce an i64 value in this
// language.
type BinOp int

const (
	Add BinOp = iota
	Sub
	Mul
	Div
	Mod
	Shl
	Shr
)

func (op BinOp) String() string {
	switch op {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mul"
	case Div:
		return "Div"
	case Mod:
		return "Mod"
	case Shl:
		return "Shl"
	case Shr:
		return "Shr"
	default:
		return "?"
	}
}

// InstData is implemented by every instruction variant. IsValue reports
// whether the instruction produces an i64 result referenceable by later
// instructions (printed as `%iid = ...`) or is a void effect/terminator
// (printed as ` iid ...`).
type InstData interface {
	IsValue() bool
	Dump(id InstId) string
}

// Targetable is implemented by the two pre-CFG control-flow forms whose
// target is a forward-patched InstId.
type Targetable interface {
	Target() InstId
	SetTarget(id InstId)
}

type ConstantInst struct{ Value int64 }

func (ConstantInst) IsValue() bool { return true }
func (i ConstantInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = Constant %d", id, i.Value)
}

type ParameterInst struct{}

func (ParameterInst) IsValue() bool { return true }
func (i ParameterInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = Parameter", id)
}

type AllocInst struct{}

func (AllocInst) IsValue() bool { return true }
func (i AllocInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = Alloc", id)
}

type StoreInst struct{ Src, Dest InstId }

func (StoreInst) IsValue() bool { return false }
func (i StoreInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d Store %%%d at %%%d", id, i.Src, i.Dest)
}

type LoadInst struct{ Src InstId }

func (LoadInst) IsValue() bool { return true }
func (i LoadInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = Load %%%d", id, i.Src)
}

type BinaryInst struct {
	Op       BinOp
	Lhs, Rhs InstId
}

func (BinaryInst) IsValue() bool { return true }
func (i BinaryInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = %s %%%d, %%%d", id, i.Op, i.Lhs, i.Rhs)
}

type NegInst struct{ Src InstId }

func (NegInst) IsValue() bool { return true }
func (i NegInst) Dump(id InstId) string {
	return fmt.Sprintf("%%%d = Neg %%%d", id, i.Src)
}

type ReturnInst struct{ Src InstId }

func (ReturnInst) IsValue() bool { return false }
func (i ReturnInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d Return %%%d", id, i.Src)
}

type ReturnVoidInst struct{}

func (ReturnVoidInst) IsValue() bool { return false }
func (i ReturnVoidInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d ReturnVoid", id)
}

type CallInst struct {
	Name string
	Args []InstId
}

func (CallInst) IsValue() bool { return true }
func (i CallInst) Dump(id InstId) string {
	s := fmt.Sprintf("%%%d = Call %s, args:", id, i.Name)
	for idx, a := range i.Args {
		if idx > 0 {
			s += ","
		}
		s += fmt.Sprintf(" %%%d", a)
	}
	return s
}

// IfFalseInst is the pre-CFG conditional branch: it jumps to target when
// the comparison is false, and falls through otherwise.
type IfFalseInst struct {
	Op1, Op2 InstId
	Cc       Cc
	to       InstId
}

func (IfFalseInst) IsValue() bool { return false }
func (i IfFalseInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d IfFalse %%%d %s %%%d, goto %d", id, i.Op1, i.Cc, i.Op2, i.to)
}
func (i *IfFalseInst) Target() InstId     { return i.to }
func (i *IfFalseInst) SetTarget(t InstId) { i.to = t }

// GotoInst is the pre-CFG unconditional jump.
type GotoInst struct{ to InstId }

func (GotoInst) IsValue() bool { return false }
func (i GotoInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d Goto %d", id, i.to)
}
func (i *GotoInst) Target() InstId     { return i.to }
func (i *GotoInst) SetTarget(t InstId) { i.to = t }

// BranchInst is the post-CFG conditional terminator; its targets are
// carried by the owning block's successor list, in (true, false) order.
type BranchInst struct {
	Op1, Op2 InstId
	Cc       Cc
}

func (BranchInst) IsValue() bool { return false }
func (i BranchInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d Branch %%%d %s %%%d", id, i.Op1, i.Cc, i.Op2)
}

// JumpInst is the post-CFG unconditional terminator.
type JumpInst struct{}

func (JumpInst) IsValue() bool { return false }
func (i JumpInst) Dump(id InstId) string {
	return fmt.Sprintf(" %d Jump", id)
}

// Function is one function's linear IR: an append-only instruction list
// indexed by InstId, plus CFG state populated by BuildCFG (package-level
// CFG builder) once lowering is complete.
type Function struct {
	Name      string
	Insts     []InstData
	Constants map[int64]InstId

	Blocks []*BasicBlock
	Layout []InstNode // parallel to Insts once the CFG is built
}

// NewFunction creates an empty function ready for lowering.
func NewFunction(name string) *Function {
	return &Function{
		Name:      name,
		Constants: make(map[int64]InstId),
	}
}

// CreateInst appends data as a new instruction and returns its id.
func (f *Function) CreateInst(data InstData) InstId {
	id := InstId(len(f.Insts))
	f.Insts = append(f.Insts, data)
	return id
}

// Len is the current instruction count, used both as "current position"
// during lowering and as an endpoint for backpatching.
func (f *Function) Len() InstId {
	return InstId(len(f.Insts))
}
