package assembler

import (
	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/types"
)

func (a *Assembler) ExprId(name string) {
	if a.guardDone("ExprId") {
		return
	}
	if _, ok := a.Syms.Resolve(name); !ok {
		a.fail(errUnknownSymbol, "unknown identifier %q%s", name, a.suggestSuffix(name))
	}
	a.pushOperand(ast.Ident(name))
}

func (a *Assembler) ExprNat(n int) {
	if a.guardDone("ExprNat") {
		return
	}
	a.pushOperand(ast.Nat(n))
}

func (a *Assembler) ExprTrue() {
	if a.guardDone("ExprTrue") {
		return
	}
	a.pushOperand(ast.Bool(true))
}

func (a *Assembler) ExprFalse() {
	if a.guardDone("ExprFalse") {
		return
	}
	a.pushOperand(ast.Bool(false))
}

// callMark records the operand-stack depth at ExprCallBegin; ExprCallEnd
// pops that mark again but takes its operands by count (argCount arguments,
// then the callee), not by slicing at the mark.
func (a *Assembler) ExprCallBegin() {
	if a.guardDone("ExprCallBegin") {
		return
	}
	a.callMarks = append(a.callMarks, len(a.operands))
}

func (a *Assembler) ExprCallEnd(argCount int) {
	if a.guardDone("ExprCallEnd") {
		return
	}
	args := a.popOperands(argCount)
	callee := a.popOperand()

	if callee.Kind == ast.KindIdent {
		if fi, ok := a.funcs[callee.Ident]; ok && fi.building {
			a.fail(errRecursiveFunction, "function %q cannot call itself", callee.Ident)
		}
	}

	n := len(a.callMarks)
	if n > 0 {
		a.callMarks = a.callMarks[:n-1]
	}
	a.pushOperand(ast.Call(callee, args))
}

func (a *Assembler) ExprArray() {
	if a.guardDone("ExprArray") {
		return
	}
	idx := a.popOperand()
	arr := a.popOperand()
	a.pushOperand(ast.Index(arr, idx))
}

func (a *Assembler) ExprPostIncrement() {
	if a.guardDone("ExprPostIncrement") {
		return
	}
	a.pushOperand(ast.Unary(ast.OpPostInc, a.popOperand()))
}

func (a *Assembler) ExprPostDecrement() {
	if a.guardDone("ExprPostDecrement") {
		return
	}
	a.pushOperand(ast.Unary(ast.OpPostDec, a.popOperand()))
}

func (a *Assembler) ExprPreIncrement() {
	if a.guardDone("ExprPreIncrement") {
		return
	}
	a.pushOperand(ast.Unary(ast.OpPreInc, a.popOperand()))
}

func (a *Assembler) ExprPreDecrement() {
	if a.guardDone("ExprPreDecrement") {
		return
	}
	a.pushOperand(ast.Unary(ast.OpPreDec, a.popOperand()))
}

func (a *Assembler) ExprAssignment(op ast.Op) {
	if a.guardDone("ExprAssignment") {
		return
	}
	rhs := a.popOperand()
	lhs := a.popOperand()
	a.pushOperand(ast.Binary(op, lhs, rhs))
}

func (a *Assembler) ExprUnary(op ast.Op) {
	if a.guardDone("ExprUnary") {
		return
	}
	a.pushOperand(ast.Unary(op, a.popOperand()))
}

func (a *Assembler) ExprBinary(op ast.Op) {
	if a.guardDone("ExprBinary") {
		return
	}
	rhs := a.popOperand()
	lhs := a.popOperand()
	a.pushOperand(ast.Binary(op, lhs, rhs))
}

func (a *Assembler) ExprTernary(op ast.Op) {
	if a.guardDone("ExprTernary") {
		return
	}
	c := a.popOperand()
	b := a.popOperand()
	x := a.popOperand()
	a.pushOperand(ast.Ternary(op, x, b, c))
}

func (a *Assembler) ExprInlineIf() {
	if a.guardDone("ExprInlineIf") {
		return
	}
	c := a.popOperand()
	b := a.popOperand()
	x := a.popOperand()
	a.pushOperand(ast.Ternary(ast.OpInlineIf, x, b, c))
}

func (a *Assembler) ExprComma() {
	if a.guardDone("ExprComma") {
		return
	}
	rhs := a.popOperand()
	lhs := a.popOperand()
	a.pushOperand(ast.Comma([]*ast.Expr{lhs, rhs}))
}

// ExprDot restricts field access to records and process references, per
// spec.md §4.4's "dot operator restricted to records/processes" edge case.
// The assembler cannot always resolve a receiver's static type eagerly (a
// parameter's type may still be a placeholder until DeclFuncEnd), so this
// checks what it can — a receiver that is a plain identifier resolving to a
// symbol whose type is not a record, process or template is rejected;
// everything else is deferred to the builder's caller.
func (a *Assembler) ExprDot(fieldName string) {
	if a.guardDone("ExprDot") {
		return
	}
	recv := a.popOperand()
	if recv.Kind == ast.KindIdent {
		if id, ok := a.Syms.Resolve(recv.Ident); ok {
			if t, err := a.Syms.GetType(id); err == nil {
				cls := a.Types.Class(a.Types.ClearFlags(t))
				if cls != types.Record && cls != types.Process && cls != types.Template {
					a.fail(errBadType, "%q is not a record or process; cannot use %q", recv.Ident, fieldName)
				}
			}
		}
	}
	a.pushOperand(ast.Dot(recv, fieldName))
}

func (a *Assembler) ExprDeadlock() {
	if a.guardDone("ExprDeadlock") {
		return
	}
	a.pushOperand(ast.Deadlock())
}

func (a *Assembler) ExprForAllBegin(name string) {
	if a.guardDone("ExprForAllBegin") {
		return
	}
	typ := a.popType()
	f := a.Syms.AddFrame()
	a.Syms.ActivateFrame(f)
	if _, err := a.Syms.AddSymbol(name, typ, nil); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
	a.quantStack = append(a.quantStack, iterFrame{name: name, typ: typ, frame: f})
}

func (a *Assembler) ExprForAllEnd(name string) {
	if a.guardDone("ExprForAllEnd") {
		return
	}
	body := a.popOperand()
	qf := a.popQuant(name)
	if parent := a.Syms.GetParentFrame(); parent != -1 {
		a.Syms.ActivateFrame(parent)
	}
	a.pushOperand(ast.Quantifier(ast.OpForAll, qf.name, qf.typ, body))
}

func (a *Assembler) ExprExistsBegin(name string) {
	if a.guardDone("ExprExistsBegin") {
		return
	}
	typ := a.popType()
	f := a.Syms.AddFrame()
	a.Syms.ActivateFrame(f)
	if _, err := a.Syms.AddSymbol(name, typ, nil); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
	a.quantStack = append(a.quantStack, iterFrame{name: name, typ: typ, frame: f})
}

func (a *Assembler) ExprExistsEnd(name string) {
	if a.guardDone("ExprExistsEnd") {
		return
	}
	body := a.popOperand()
	qf := a.popQuant(name)
	if parent := a.Syms.GetParentFrame(); parent != -1 {
		a.Syms.ActivateFrame(parent)
	}
	a.pushOperand(ast.Quantifier(ast.OpExists, qf.name, qf.typ, body))
}

func (a *Assembler) popQuant(name string) iterFrame {
	n := len(a.quantStack) - 1
	if n < 0 {
		a.fail(errSyntax, "quantifier end without matching begin")
		return iterFrame{name: name}
	}
	qf := a.quantStack[n]
	a.quantStack = a.quantStack[:n]
	if qf.name != name {
		a.fail(errSyntax, "quantifier end name %q does not match begin %q", name, qf.name)
	}
	return qf
}
