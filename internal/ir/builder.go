package ir

import (
	"fmt"

	"github.com/antonromanov1/ctl/internal/ast"
)

// Builder lowers one validated AST Function into linear IR. It makes a
// single forward pass and owns no state beyond one function at a time;
// a fresh Builder is created per function by BuildFunction.
type Builder struct {
	f    *Function
	vars map[string]InstId

	// breaks holds one frame per active while loop; each frame collects
	// the InstIds of the placeholder Gotos produced by break statements
	// lexically inside that loop.
	breaks [][]InstId
	// curLoop is the target a continue jumps to for the innermost loop.
	curLoop InstId
}

// BuildFunction lowers fn into a fresh ir.Function.
func BuildFunction(fn *ast.Function) *Function {
	b := &Builder{
		f:       NewFunction(fn.Name),
		vars:    make(map[string]InstId),
		curLoop: NoInst,
	}

	for _, param := range fn.Params {
		id := b.f.CreateInst(ParameterInst{})
		b.vars[param.Name] = id
	}

	lastWasReturn := false
	for _, stmt := range fn.Body {
		b.lowerStmt(stmt)
		lastWasReturn = isReturnLike(stmt)
	}

	if len(fn.Body) == 0 || !lastWasReturn {
		b.f.CreateInst(ReturnVoidInst{})
	}

	return b.f
}

func isReturnLike(s ast.Stmt) bool {
	switch s.(type) {
	case *ast.ReturnStmt, *ast.ReturnVoidStmt:
		return true
	default:
		return false
	}
}

func (b *Builder) findOrCreateConstant(n int64) InstId {
	if id, ok := b.f.Constants[n]; ok {
		return id
	}
	id := b.f.CreateInst(ConstantInst{Value: n})
	b.f.Constants[n] = id
	return id
}

// lowerExpr lowers a value-producing expression and returns the id of
// the instruction holding its result.
func (b *Builder) lowerExpr(e ast.Expr) InstId {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return b.findOrCreateConstant(n.Value)

	case *ast.Ident:
		if id, ok := b.vars[n.Name]; ok {
			if _, isParam := b.f.Insts[id].(ParameterInst); isParam {
				return id
			}
			return b.f.CreateInst(LoadInst{Src: id})
		}
		panic(fmt.Sprintf("internal error: unresolved identifier %q reached the IR builder", n.Name))

	case *ast.UnaryExpr:
		src := b.lowerExpr(n.Value)
		return b.f.CreateInst(NegInst{Src: src})

	case *ast.BinaryExpr:
		if n.Op.IsComparison() {
			panic("internal error: comparison reached value-position lowering")
		}
		lhs := b.lowerExpr(n.Left)
		rhs := b.lowerExpr(n.Right)
		return b.f.CreateInst(BinaryInst{Op: binOpFromAst(n.Op), Lhs: lhs, Rhs: rhs})

	case *ast.CallExpr:
		args := make([]InstId, len(n.Args))
		for i, a := range n.Args {
			args[i] = b.lowerExpr(a)
		}
		return b.f.CreateInst(CallInst{Name: n.Name, Args: args})

	default:
		panic(fmt.Sprintf("internal error: %T has no value lowering", e))
	}
}

func binOpFromAst(op ast.BinOp) BinOp {
	switch op {
	case ast.OpAdd:
		return Add
	case ast.OpSub:
		return Sub
	case ast.OpMul:
		return Mul
	case ast.OpDiv:
		return Div
	case ast.OpMod:
		return Mod
	case ast.OpShl:
		return Shl
	case ast.OpShr:
		return Shr
	default:
		panic(fmt.Sprintf("internal error: %v is not an arithmetic operator", op))
	}
}

func ccFromAst(op ast.BinOp) Cc {
	switch op {
	case ast.OpEq:
		return Eq
	case ast.OpNe:
		return Ne
	case ast.OpLt:
		return Lt
	case ast.OpGt:
		return Gt
	case ast.OpLe:
		return Le
	case ast.OpGe:
		return Ge
	default:
		panic(fmt.Sprintf("internal error: %v is not a comparison operator", op))
	}
}

// lowerCondition lowers a comparison's two operands, each of which must
// itself be an identifier or an integer literal in this dialect (richer
// conditions are rejected by the parser before the builder ever sees
// them).
func (b *Builder) lowerCondition(cond ast.Expr) (op1, op2 InstId, cc Cc) {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok || !bin.Op.IsComparison() {
		panic("internal error: non-comparison condition reached the IR builder")
	}
	op1 = b.lowerOperand(bin.Left)
	op2 = b.lowerOperand(bin.Right)
	cc = ccFromAst(bin.Op)
	return
}

func (b *Builder) lowerOperand(e ast.Expr) InstId {
	switch e.(type) {
	case *ast.Ident, *ast.IntLiteral:
		return b.lowerExpr(e)
	default:
		panic(fmt.Sprintf("internal error: condition operand %T is not an identifier or integer literal", e))
	}
}

func (b *Builder) lowerStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		alloc := b.f.CreateInst(AllocInst{})
		b.vars[n.Name] = alloc
		value := b.lowerExpr(n.Expr)
		b.f.CreateInst(StoreInst{Src: value, Dest: alloc})

	case *ast.AssignStmt:
		alloc, ok := b.vars[n.Name]
		if !ok {
			panic(fmt.Sprintf("internal error: unresolved assignment target %q reached the IR builder", n.Name))
		}
		value := b.lowerExpr(n.Expr)
		b.f.CreateInst(StoreInst{Src: value, Dest: alloc})

	case *ast.ReturnStmt:
		value := b.lowerExpr(n.Expr)
		b.f.CreateInst(ReturnInst{Src: value})

	case *ast.ReturnVoidStmt:
		b.f.CreateInst(ReturnVoidInst{})

	case *ast.ExprStmt:
		b.lowerExpr(n.Expr)

	case *ast.BlockStmt:
		for _, stmt := range n.Stmts {
			b.lowerStmt(stmt)
		}

	case *ast.IfStmt:
		b.lowerIf(n)

	case *ast.WhileStmt:
		b.lowerWhile(n)

	case *ast.BreakStmt:
		b.lowerBreak()

	case *ast.ContinueStmt:
		b.lowerContinue()

	default:
		panic(fmt.Sprintf("internal error: %T has no statement lowering", s))
	}
}

// lowerIf implements the exact backpatch pattern:
//
//	k:    IfFalse op1 cc op2, target = label_after_then
//	      <then body>
//	...:  Goto target = label_end        ; only when else is present
//	...:  <else body>                    ; only when else is present
//	L_end:
func (b *Builder) lowerIf(n *ast.IfStmt) {
	op1, op2, cc := b.lowerCondition(n.Cond)
	ifFalseID := b.f.CreateInst(&IfFalseInst{Op1: op1, Op2: op2, Cc: cc, to: NoInst})

	b.lowerStmt(n.Then)

	if n.Else == nil {
		b.patchTarget(ifFalseID, b.f.Len())
		return
	}

	gotoID := b.f.CreateInst(&GotoInst{to: NoInst})
	b.patchTarget(ifFalseID, b.f.Len())
	b.lowerStmt(n.Else)
	b.patchTarget(gotoID, b.f.Len())
}

func (b *Builder) patchTarget(id InstId, target InstId) {
	t, ok := b.f.Insts[id].(Targetable)
	if !ok {
		panic(fmt.Sprintf("internal error: instruction %d is not backpatchable", id))
	}
	t.SetTarget(target)
}

func (b *Builder) lowerWhile(n *ast.WhileStmt) {
	if lit, ok := n.Cond.(*ast.BoolLiteral); ok {
		if lit.Value {
			b.lowerInfiniteLoop(n.Body)
		}
		// The conditional-loop reading of `while (false)` executes the
		// body zero times; nothing is lowered for it.
		return
	}

	b.lowerGeneralWhile(n)
}

func (b *Builder) lowerInfiniteLoop(body ast.Stmt) {
	loopBegin := b.f.Len()
	b.pushBreaks()
	savedLoop := b.curLoop
	b.curLoop = loopBegin

	b.lowerStmt(body)
	b.f.CreateInst(&GotoInst{to: loopBegin})

	end := b.f.Len()
	b.patchBreaks(end)
	b.curLoop = savedLoop
}

func (b *Builder) lowerGeneralWhile(n *ast.WhileStmt) {
	b.pushBreaks()

	op1, op2, cc := b.lowerCondition(n.Cond)
	ifFalseID := b.f.CreateInst(&IfFalseInst{Op1: op1, Op2: op2, Cc: cc, to: NoInst})

	continueTarget := b.chooseContinueTarget(op1, op2, ifFalseID)
	savedLoop := b.curLoop
	b.curLoop = continueTarget

	b.lowerStmt(n.Body)
	b.f.CreateInst(&GotoInst{to: continueTarget})

	end := b.f.Len()
	b.patchTarget(ifFalseID, end)
	b.patchBreaks(end)
	b.curLoop = savedLoop
}

// chooseContinueTarget implements the rule that a `continue` must
// re-read any memory operand in the condition, so it targets the
// earliest Load among the condition's two operands if either lowered to
// one; otherwise it targets the IfFalse itself.
func (b *Builder) chooseContinueTarget(op1, op2, ifFalseID InstId) InstId {
	candidates := []InstId{op1, op2}
	var earliest InstId = NoInst
	for _, id := range candidates {
		if _, ok := b.f.Insts[id].(LoadInst); ok {
			if earliest == NoInst || id < earliest {
				earliest = id
			}
		}
	}
	if earliest != NoInst {
		return earliest
	}
	return ifFalseID
}

func (b *Builder) lowerBreak() {
	if len(b.breaks) == 0 {
		panic("internal error: break outside any active loop reached the IR builder")
	}
	id := b.f.CreateInst(&GotoInst{to: NoInst})
	top := len(b.breaks) - 1
	b.breaks[top] = append(b.breaks[top], id)
}

func (b *Builder) lowerContinue() {
	if b.curLoop == NoInst {
		panic("internal error: continue outside any active loop reached the IR builder")
	}
	b.f.CreateInst(&GotoInst{to: b.curLoop})
}

func (b *Builder) pushBreaks() {
	b.breaks = append(b.breaks, nil)
}

func (b *Builder) patchBreaks(target InstId) {
	top := len(b.breaks) - 1
	for _, id := range b.breaks[top] {
		b.patchTarget(id, target)
	}
	b.breaks = b.breaks[:top]
}
