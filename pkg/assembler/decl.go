package assembler

import (
	"github.com/txta-go/txta/pkg/ast"
)

func (a *Assembler) DeclTypeDef(name string) {
	if a.guardDone("DeclTypeDef") {
		return
	}
	aliased := a.popType()
	named := a.Types.AddNamedType(aliased)
	if _, err := a.Syms.AddSymbol(name, named, nil); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
}

func (a *Assembler) DeclVar(name string, hasInit bool) {
	if a.guardDone("DeclVar") {
		return
	}
	var init any
	if hasInit {
		init = a.popOperand()
	}
	if len(a.typeStack) == 0 {
		a.fail(errSyntax, "declVar: no pending type")
		return
	}
	typ := a.typeStack[len(a.typeStack)-1]
	if _, err := a.Syms.AddSymbol(name, typ, init); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
}

// DeclInitialiserList pops n initialiser operands and pushes back a single
// Comma-joined operand representing the aggregate initialiser.
func (a *Assembler) DeclInitialiserList(n int) {
	if a.guardDone("DeclInitialiserList") {
		return
	}
	items := a.popOperands(n)
	a.pushOperand(ast.Comma(items))
}

func (a *Assembler) DeclFieldInit(name string) {
	if a.guardDone("DeclFieldInit") {
		return
	}
	// "declFieldInit overwrites the top of the operand stack only when
	// name is non-empty; positional initialisers retain their index."
	// See spec.md §9 Open Questions.
	if name == "" {
		return
	}
	if len(a.operands) == 0 {
		a.fail(errSyntax, "declFieldInit: no pending operand")
		return
	}
	a.operands[len(a.operands)-1].Name = name
}

func (a *Assembler) DeclParameter(name string, byRef bool) {
	if a.guardDone("DeclParameter") {
		return
	}
	if len(a.typeStack) == 0 {
		a.fail(errSyntax, "declParameter: no pending type")
		return
	}
	typ := a.typeStack[len(a.typeStack)-1]
	if byRef {
		typ = a.Types.MakeReference(typ)
	}
	a.params = append(a.params, ast.Select{Name: name, Type: typ})
	if _, err := a.Syms.AddSymbol(name, typ, nil); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
}

func (a *Assembler) DeclFuncBegin(name string) {
	if a.guardDone("DeclFuncBegin") {
		return
	}
	fi := &funcInfo{name: name, building: true}
	a.funcs[name] = fi
	a.funcStack = append(a.funcStack, a.curFunc)
	a.curFunc = fi

	f := a.Syms.AddFrame()
	a.Syms.ActivateFrame(f)
}

func (a *Assembler) DeclFuncEnd() {
	if a.guardDone("DeclFuncEnd") {
		return
	}
	if a.curFunc != nil {
		a.curFunc.building = false
	}
	a.params = nil
	if parent := a.Syms.GetParentFrame(); parent != -1 {
		a.Syms.ActivateFrame(parent)
	}
	n := len(a.funcStack)
	if n > 0 {
		a.curFunc = a.funcStack[n-1]
		a.funcStack = a.funcStack[:n-1]
	} else {
		a.curFunc = nil
	}
}

func (a *Assembler) DeclProgress(isDefault bool) {
	if a.guardDone("DeclProgress") {
		return
	}
	if !isDefault {
		a.popOperand()
	}
	a.progressCount++
}
