// Package printer implements the pretty printer (C9): a second concrete
// Builder, driven by the exact same text/XML frontend call sequence as the
// assembler (C5/C6), that composes canonical XTA source text instead of an
// *ast.System. Feeding its output back through pkg/textdriver and comparing
// against the original input is the round-trip oracle spec.md §4 describes.
//
// A Visitor-based printer walking an already-assembled *ast.System (the
// teacher's pkg/visitors.DebugPrinter shape) was considered and rejected:
// ast.System carries no record of declarations at all (DeclVar/DeclTypeDef
// never produce an ast.Stmt; they are pure symbol-table side effects in the
// assembler), so a printer downstream of Builder.Done could never recover a
// template's or the file's declaration section. Driving the printer directly
// off the same Builder calls the assembler sees is the only way to observe
// every declaration as it happens, hence the string-stack design mirrored
// below from pkg/assembler/*.go.
package printer

import (
	"fmt"
	"strings"

	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
)

var _ builder.Builder = (*Printer)(nil)

type iterFrame struct {
	name, typ string
}

type funcFrame struct {
	ret, name string
	params    []string
}

type locState struct {
	name                          string
	invariant                     string
	urgent, committed             bool
	winning, losing               bool
}

type templateState struct {
	name      string
	params    []string
	locOrder  []string
	locs      map[string]*locState
	init      string
	edgesText []string
}

type edgeState struct {
	from, to     string
	controllable bool
	selects      []string
	guard        string
	sync         string
	update       string
}

// Printer accumulates canonical text as the frontend drives it, using
// string-typed stacks shaped exactly like the assembler's operand/type/
// field-name/statement stacks (see pkg/assembler/types.go, expr.go, stmt.go)
// so the same push/pop call sequence that builds an *ast.System there
// instead composes source text here.
type Printer struct {
	output strings.Builder

	operands   []string
	types      []string
	fieldNames []string

	pendingParams []string
	declSink      []*[]string // stack of decl-line sinks; top receives DeclVar/DeclTypeDef/func-def text

	stmts      []string
	blockMarks []int
	iterStack  []iterFrame
	quantStack []iterFrame
	funcStack  []*funcFrame

	curTemplate *templateState
	edgeStack   []*edgeState

	pendingSystemNames []string
	chanPriorityGroups []*[]string
	procPriorityOrder  []string

	errs, warns []string
}

// New returns a Printer ready to be driven as a Builder. Global declarations
// (anything emitted outside a ProcBegin/ProcEnd pair) collect in the bottom
// decl sink and are written to the output buffer by Done.
func New() *Printer {
	p := &Printer{}
	p.declSink = []*[]string{{}}
	return p
}

// String returns the accumulated canonical text.
func (p *Printer) String() string { return p.output.String() }

func (p *Printer) pushOperand(s string) { p.operands = append(p.operands, s) }

func (p *Printer) popOperand() string {
	n := len(p.operands)
	if n == 0 {
		return ""
	}
	s := p.operands[n-1]
	p.operands = p.operands[:n-1]
	return s
}

func (p *Printer) popOperands(n int) []string {
	if n <= 0 {
		return nil
	}
	if n > len(p.operands) {
		n = len(p.operands)
	}
	m := len(p.operands)
	out := append([]string(nil), p.operands[m-n:]...)
	p.operands = p.operands[:m-n]
	return out
}

func (p *Printer) pushType(s string) { p.types = append(p.types, s) }

func (p *Printer) peekType() string {
	if len(p.types) == 0 {
		return "int"
	}
	return p.types[len(p.types)-1]
}

func (p *Printer) popType() string {
	n := len(p.types)
	if n == 0 {
		return "int"
	}
	s := p.types[n-1]
	p.types = p.types[:n-1]
	return s
}

func (p *Printer) pushStmt(s string) { p.stmts = append(p.stmts, s) }

func (p *Printer) popStmt() string {
	n := len(p.stmts)
	if n == 0 {
		return ";\n"
	}
	s := p.stmts[n-1]
	p.stmts = p.stmts[:n-1]
	return s
}

// emitDecl routes one finished declaration line (already ending in ";" or a
// closing "}") to the currently active sink: a template's declaration
// section while one is open, the top-level output otherwise.
func (p *Printer) emitDecl(line string) {
	top := p.declSink[len(p.declSink)-1]
	*top = append(*top, line)
}

// reindent prefixes every non-blank line of s (which must end in "\n") by
// one nesting level, for embedding an already-rendered statement or block
// inside a new enclosing block.
func reindent(s string) string {
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		if l == "" {
			continue
		}
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func prefixText(pr builder.Prefix) string {
	switch pr {
	case builder.PrefixConst:
		return "const "
	case builder.PrefixUrgent:
		return "urgent "
	case builder.PrefixBroadcast:
		return "broadcast "
	case builder.PrefixUrgentBroadcast:
		return "urgent broadcast "
	case builder.PrefixMeta:
		return "meta "
	default:
		return ""
	}
}

// --- type construction (mirrors pkg/assembler/types.go) ---

func (p *Printer) TypeBool(pr builder.Prefix) { p.pushType(prefixText(pr) + "bool") }
func (p *Printer) TypeInt(pr builder.Prefix)  { p.pushType(prefixText(pr) + "int") }

func (p *Printer) TypeBoundedInt(pr builder.Prefix) {
	bounds := p.popOperands(2)
	lo, hi := "0", "0"
	if len(bounds) == 2 {
		lo, hi = bounds[0], bounds[1]
	}
	p.pushType(fmt.Sprintf("%sint[%s,%s]", prefixText(pr), lo, hi))
}

func (p *Printer) TypeScalar(pr builder.Prefix) {
	n := p.popOperand()
	p.pushType(fmt.Sprintf("%sscalar[%s]", prefixText(pr), n))
}

func (p *Printer) TypeChannel(pr builder.Prefix) { p.pushType(prefixText(pr) + "chan") }
func (p *Printer) TypeClock(pr builder.Prefix)   { p.pushType(prefixText(pr) + "clock") }
func (p *Printer) TypeVoid(pr builder.Prefix)    { p.pushType(prefixText(pr) + "void") }

func (p *Printer) TypeName(pr builder.Prefix, name string) { p.pushType(prefixText(pr) + name) }

// TypeArrayOfSize pops the element type then n size operands, innermost
// dimension popped first, wrapping with "[size]" suffixes closest-to-element
// first — the exact order pkg/assembler/types.go applies to the type id.
func (p *Printer) TypeArrayOfSize(n int) {
	elem := p.popType()
	dims := make([]string, n)
	for i := 0; i < n; i++ {
		dims[i] = p.popOperand()
	}
	for i := 0; i < n; i++ {
		elem = fmt.Sprintf("%s[%s]", elem, dims[i])
	}
	p.pushType(elem)
}

// TypeArrayOfType pops n size-types already on the type stack (reversed back
// into declaration order) then the element type underneath them.
func (p *Printer) TypeArrayOfType(n int) {
	sizeTypes := make([]string, n)
	for i := n - 1; i >= 0; i-- {
		sizeTypes[i] = p.popType()
	}
	elem := p.popType()
	for i := n - 1; i >= 0; i-- {
		elem = fmt.Sprintf("%s[%s]", elem, sizeTypes[i])
	}
	p.pushType(elem)
}

func (p *Printer) StructField(name string) { p.fieldNames = append(p.fieldNames, name) }

func (p *Printer) TypeStruct(pr builder.Prefix, fieldCount int) {
	if fieldCount > len(p.fieldNames) {
		fieldCount = len(p.fieldNames)
	}
	if fieldCount > len(p.types) {
		fieldCount = len(p.types)
	}
	fieldTypes := make([]string, fieldCount)
	for i := fieldCount - 1; i >= 0; i-- {
		fieldTypes[i] = p.popType()
	}
	names := p.fieldNames[len(p.fieldNames)-fieldCount:]
	p.fieldNames = p.fieldNames[:len(p.fieldNames)-fieldCount]

	var sb strings.Builder
	sb.WriteString(prefixText(pr))
	sb.WriteString("struct { ")
	for i := 0; i < fieldCount; i++ {
		fmt.Fprintf(&sb, "%s %s; ", fieldTypes[i], names[i])
	}
	sb.WriteString("}")
	p.pushType(sb.String())
}

func (p *Printer) TypeDuplicate() {
	if len(p.types) == 0 {
		p.pushType("int")
		return
	}
	p.pushType(p.types[len(p.types)-1])
}

func (p *Printer) TypePop() { p.popType() }

// --- declarations ---

func (p *Printer) DeclTypeDef(name string) {
	aliased := p.popType()
	p.emitDecl(fmt.Sprintf("typedef %s %s;", aliased, name))
}

func (p *Printer) DeclVar(name string, hasInit bool) {
	var init string
	if hasInit {
		init = p.popOperand()
	}
	typ := p.peekType()
	line := fmt.Sprintf("%s %s", typ, name)
	if hasInit {
		line += " = " + init
	}
	p.emitDecl(line + ";")
}

func (p *Printer) DeclInitialiserList(n int) {
	items := p.popOperands(n)
	p.pushOperand("{" + strings.Join(items, ", ") + "}")
}

func (p *Printer) DeclFieldInit(name string) {
	if name == "" || len(p.operands) == 0 {
		return
	}
	p.operands[len(p.operands)-1] = name + ": " + p.operands[len(p.operands)-1]
}

// DeclParameter appends one rendered "type name" (or "type &name") fragment
// to the pending parameter buffer shared by the next ProcBegin or
// DeclFuncBegin, matching how the grammar driver calls DeclParameter for
// both template and function parameter lists before the respective begin or
// end call that consumes them (see pkg/textdriver/driver.go walkParam).
func (p *Printer) DeclParameter(name string, byRef bool) {
	typ := p.peekType()
	amp := ""
	if byRef {
		amp = "&"
	}
	p.pendingParams = append(p.pendingParams, fmt.Sprintf("%s %s%s", typ, amp, name))
}

// DeclFuncBegin captures the return type still on top of the type stack
// (the grammar driver TypePops it immediately after this call, discarding
// it for the assembler but not before the printer has read it) and opens a
// fresh pending-parameter buffer, symmetric with ProcBegin's reset.
func (p *Printer) DeclFuncBegin(name string) {
	ret := "void"
	if len(p.types) > 0 {
		ret = p.types[len(p.types)-1]
	}
	p.funcStack = append(p.funcStack, &funcFrame{ret: ret, name: name})
	p.pendingParams = nil
}

func (p *Printer) DeclFuncEnd() {
	body := p.popStmt()
	n := len(p.funcStack)
	if n == 0 {
		return
	}
	fn := p.funcStack[n-1]
	p.funcStack = p.funcStack[:n-1]
	fn.params = p.pendingParams
	p.pendingParams = nil
	line := fmt.Sprintf("%s %s(%s) %s", fn.ret, fn.name, strings.Join(fn.params, ", "), body)
	p.emitDecl(strings.TrimSuffix(line, "\n"))
}

func (p *Printer) DeclProgress(isDefault bool) {
	if isDefault {
		p.emitDecl("progress: default;")
		return
	}
	e := p.popOperand()
	p.emitDecl(fmt.Sprintf("progress: %s;", e))
}

// --- statements ---

func (p *Printer) BlockBegin() { p.blockMarks = append(p.blockMarks, len(p.stmts)) }

func (p *Printer) BlockEnd() {
	n := len(p.blockMarks)
	if n == 0 {
		return
	}
	mark := p.blockMarks[n-1]
	p.blockMarks = p.blockMarks[:n-1]
	body := append([]string(nil), p.stmts[mark:]...)
	p.stmts = p.stmts[:mark]

	var sb strings.Builder
	sb.WriteString("{\n")
	for _, s := range body {
		sb.WriteString(reindent(s))
	}
	sb.WriteString("}\n")
	p.pushStmt(sb.String())
}

func (p *Printer) EmptyStatement() { p.pushStmt(";\n") }

func (p *Printer) ForBegin() {}

func (p *Printer) ForEnd() {
	body := p.popStmt()
	post := p.popOperand()
	cond := p.popOperand()
	init := p.popOperand()
	p.pushStmt(fmt.Sprintf("for (%s; %s; %s) %s", init, cond, post, body))
}

func (p *Printer) IterationBegin(name string) {
	typ := p.popType()
	p.iterStack = append(p.iterStack, iterFrame{name: name, typ: typ})
}

func (p *Printer) IterationEnd(name string) {
	body := p.popStmt()
	n := len(p.iterStack)
	if n == 0 {
		p.pushStmt(body)
		return
	}
	it := p.iterStack[n-1]
	p.iterStack = p.iterStack[:n-1]
	p.pushStmt(fmt.Sprintf("for (%s : %s) %s", it.name, it.typ, body))
}

func (p *Printer) WhileBegin() {}

func (p *Printer) WhileEnd() {
	body := p.popStmt()
	cond := p.popOperand()
	p.pushStmt(fmt.Sprintf("while (%s) %s", cond, body))
}

// DoWhileBegin/End render the `do ... while (cond);` surface form
// symmetrically with while, per DESIGN.md's Open Question decision on
// do-while round-tripping.
func (p *Printer) DoWhileBegin() {}

func (p *Printer) DoWhileEnd() {
	cond := p.popOperand()
	body := p.popStmt()
	p.pushStmt(fmt.Sprintf("do %s while (%s);\n", strings.TrimSuffix(body, "\n"), cond))
}

func (p *Printer) IfBegin() {}
func (p *Printer) IfElse()  {}

func (p *Printer) IfEnd(hasElse bool) {
	var elseText string
	if hasElse {
		elseText = p.popStmt()
	}
	thenText := p.popStmt()
	cond := p.popOperand()
	var sb strings.Builder
	fmt.Fprintf(&sb, "if (%s) %s", cond, thenText)
	if hasElse {
		fmt.Fprintf(&sb, "else %s", elseText)
	}
	p.pushStmt(sb.String())
}

func (p *Printer) ExprStatement() {
	e := p.popOperand()
	p.pushStmt(e + ";\n")
}

func (p *Printer) ReturnStatement(hasValue bool) {
	if hasValue {
		e := p.popOperand()
		p.pushStmt(fmt.Sprintf("return %s;\n", e))
		return
	}
	p.pushStmt("return;\n")
}

func (p *Printer) BreakStatement()    { p.pushStmt("break;\n") }
func (p *Printer) ContinueStatement() { p.pushStmt("continue;\n") }

// --- expressions ---

func (p *Printer) ExprId(name string)  { p.pushOperand(name) }
func (p *Printer) ExprNat(n int)       { p.pushOperand(fmt.Sprintf("%d", n)) }
func (p *Printer) ExprTrue()           { p.pushOperand("true") }
func (p *Printer) ExprFalse()          { p.pushOperand("false") }
func (p *Printer) ExprCallBegin()      {}

func (p *Printer) ExprCallEnd(argCount int) {
	args := p.popOperands(argCount)
	callee := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", ")))
}

func (p *Printer) ExprArray() {
	idx := p.popOperand()
	arr := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s[%s]", arr, idx))
}

func (p *Printer) ExprPostIncrement() { p.pushOperand(p.popOperand() + "++") }
func (p *Printer) ExprPostDecrement() { p.pushOperand(p.popOperand() + "--") }
func (p *Printer) ExprPreIncrement()  { p.pushOperand("++" + p.popOperand()) }
func (p *Printer) ExprPreDecrement()  { p.pushOperand("--" + p.popOperand()) }

func (p *Printer) ExprAssignment(op ast.Op) {
	rhs := p.popOperand()
	lhs := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s %s %s", lhs, opSymbol(op), rhs))
}

func (p *Printer) ExprUnary(op ast.Op) {
	p.pushOperand(opSymbol(op) + p.popOperand())
}

func (p *Printer) ExprBinary(op ast.Op) {
	rhs := p.popOperand()
	lhs := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s %s %s", lhs, opSymbol(op), rhs))
}

func (p *Printer) ExprTernary(op ast.Op) {
	c := p.popOperand()
	b := p.popOperand()
	x := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s %s %s %s", x, opSymbol(op), b, c))
}

func (p *Printer) ExprInlineIf() {
	c := p.popOperand()
	b := p.popOperand()
	x := p.popOperand()
	p.pushOperand(fmt.Sprintf("%s ? %s : %s", x, b, c))
}

func (p *Printer) ExprComma() {
	rhs := p.popOperand()
	lhs := p.popOperand()
	p.pushOperand(lhs + ", " + rhs)
}

func (p *Printer) ExprDot(fieldName string) {
	p.pushOperand(p.popOperand() + "." + fieldName)
}

func (p *Printer) ExprDeadlock() { p.pushOperand("deadlock") }

func (p *Printer) ExprForAllBegin(name string) {
	typ := p.popType()
	p.quantStack = append(p.quantStack, iterFrame{name: name, typ: typ})
}

func (p *Printer) ExprForAllEnd(name string) {
	body := p.popOperand()
	n := len(p.quantStack)
	qf := iterFrame{name: name}
	if n > 0 {
		qf = p.quantStack[n-1]
		p.quantStack = p.quantStack[:n-1]
	}
	p.pushOperand(fmt.Sprintf("forall (%s : %s) %s", qf.name, qf.typ, body))
}

func (p *Printer) ExprExistsBegin(name string) {
	typ := p.popType()
	p.quantStack = append(p.quantStack, iterFrame{name: name, typ: typ})
}

func (p *Printer) ExprExistsEnd(name string) {
	body := p.popOperand()
	n := len(p.quantStack)
	qf := iterFrame{name: name}
	if n > 0 {
		qf = p.quantStack[n-1]
		p.quantStack = p.quantStack[:n-1]
	}
	p.pushOperand(fmt.Sprintf("exists (%s : %s) %s", qf.name, qf.typ, body))
}

// opSymbol renders an ast.Op back to its XTA spelling. The games-style
// temporal operators (OpUntilA, OpUntilW, OpControl*) have no textdriver
// grammar production yet (see DESIGN.md); their spellings below are a
// best-effort placeholder kept consistent with the property-language prefix
// spec.md §9 leaves open.
func opSymbol(op ast.Op) string {
	switch op {
	case ast.OpNeg:
		return "-"
	case ast.OpNot:
		return "!"
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpMod:
		return "%"
	case ast.OpMin:
		return "<?"
	case ast.OpMax:
		return ">?"
	case ast.OpLt:
		return "<"
	case ast.OpLe:
		return "<="
	case ast.OpGt:
		return ">"
	case ast.OpGe:
		return ">="
	case ast.OpEq:
		return "=="
	case ast.OpNeq:
		return "!="
	case ast.OpAnd:
		return "&&"
	case ast.OpOr:
		return "||"
	case ast.OpBitAnd:
		return "&"
	case ast.OpBitOr:
		return "|"
	case ast.OpBitXor:
		return "^"
	case ast.OpShl:
		return "<<"
	case ast.OpShr:
		return ">>"
	case ast.OpAssign:
		return "="
	case ast.OpAssignAdd:
		return "+="
	case ast.OpAssignSub:
		return "-="
	case ast.OpAssignMul:
		return "*="
	case ast.OpAssignDiv:
		return "/="
	case ast.OpAssignMod:
		return "%="
	case ast.OpAssignOr:
		return "|="
	case ast.OpAssignAnd:
		return "&="
	case ast.OpAssignXor:
		return "^="
	case ast.OpAssignShl:
		return "<<="
	case ast.OpAssignShr:
		return ">>="
	case ast.OpUntilA:
		return "until"
	case ast.OpUntilW:
		return "weak-until"
	case ast.OpControl:
		return "control:"
	case ast.OpControlEDiamond:
		return "E<> control:"
	case ast.OpControlT:
		return "control_t*"
	default:
		return "?"
	}
}

// --- processes ---

// ProcBegin opens a template, consuming the pending parameter buffer exactly
// as pkg/assembler.Assembler.ProcBegin does.
func (p *Printer) ProcBegin(name string) {
	p.curTemplate = &templateState{
		name:   name,
		params: p.pendingParams,
		locs:   make(map[string]*locState),
	}
	p.pendingParams = nil
	sink := []string{}
	p.declSink = append(p.declSink, &sink)
}

func (p *Printer) ProcEnd() {
	t := p.curTemplate
	if t == nil {
		return
	}
	n := len(p.declSink)
	var decls []string
	if n > 1 {
		decls = *p.declSink[n-1]
		p.declSink = p.declSink[:n-1]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "process %s(%s) {\n", t.name, strings.Join(t.params, ", "))
	for _, d := range decls {
		sb.WriteString(reindent(d + "\n"))
	}
	if len(t.locOrder) > 0 {
		sb.WriteString("  state ")
		names := make([]string, len(t.locOrder))
		copy(names, t.locOrder)
		sb.WriteString(strings.Join(names, ", "))
		sb.WriteString(";\n")
		for _, name := range t.locOrder {
			loc := t.locs[name]
			if loc.invariant != "" {
				fmt.Fprintf(&sb, "  state %s { %s };\n", name, loc.invariant)
			}
		}
		var urgent, commit, winning, losing []string
		for _, name := range t.locOrder {
			loc := t.locs[name]
			if loc.urgent {
				urgent = append(urgent, name)
			}
			if loc.committed {
				commit = append(commit, name)
			}
			if loc.winning {
				winning = append(winning, name)
			}
			if loc.losing {
				losing = append(losing, name)
			}
		}
		if len(urgent) > 0 {
			fmt.Fprintf(&sb, "  urgent %s;\n", strings.Join(urgent, ", "))
		}
		if len(commit) > 0 {
			fmt.Fprintf(&sb, "  commit %s;\n", strings.Join(commit, ", "))
		}
		if len(winning) > 0 {
			fmt.Fprintf(&sb, "  winning %s;\n", strings.Join(winning, ", "))
		}
		if len(losing) > 0 {
			fmt.Fprintf(&sb, "  losing %s;\n", strings.Join(losing, ", "))
		}
	}
	if t.init != "" {
		fmt.Fprintf(&sb, "  init %s;\n", t.init)
	}
	for _, e := range t.edgesText {
		sb.WriteString(reindent(e))
	}
	sb.WriteString("}")
	p.emitDecl(sb.String())
	p.curTemplate = nil
}

func (p *Printer) addLocation(name string) *locState {
	if p.curTemplate == nil {
		return &locState{name: name}
	}
	if loc, ok := p.curTemplate.locs[name]; ok {
		return loc
	}
	loc := &locState{name: name}
	p.curTemplate.locs[name] = loc
	p.curTemplate.locOrder = append(p.curTemplate.locOrder, name)
	return loc
}

func (p *Printer) ProcState(name string, hasInvariant bool) {
	var inv string
	if hasInvariant {
		inv = p.popOperand()
	}
	loc := p.addLocation(name)
	loc.invariant = inv
}

func (p *Printer) ProcStateUrgent(name string) {
	if loc, ok := p.curTemplate.locs[name]; ok {
		loc.urgent = true
	}
}

func (p *Printer) ProcStateCommit(name string) {
	if loc, ok := p.curTemplate.locs[name]; ok {
		loc.committed = true
	}
}

func (p *Printer) ProcStateInit(name string) {
	if p.curTemplate != nil {
		p.curTemplate.init = name
	}
}

func (p *Printer) ProcStateWinning(name string) {
	if loc, ok := p.curTemplate.locs[name]; ok {
		loc.winning = true
	}
}

func (p *Printer) ProcStateLosing(name string) {
	if loc, ok := p.curTemplate.locs[name]; ok {
		loc.losing = true
	}
}

func (p *Printer) ProcEdgeBegin(from, to string, controllable bool) {
	p.edgeStack = append(p.edgeStack, &edgeState{from: from, to: to, controllable: controllable})
}

func (p *Printer) curEdge() *edgeState {
	n := len(p.edgeStack)
	if n == 0 {
		return &edgeState{}
	}
	return p.edgeStack[n-1]
}

func (p *Printer) ProcSelect(id string) {
	typ := p.popType()
	e := p.curEdge()
	e.selects = append(e.selects, fmt.Sprintf("%s : %s", id, typ))
}

func (p *Printer) ProcGuard() { p.curEdge().guard = p.popOperand() }

func (p *Printer) ProcSync(kind ast.Sync) {
	e := p.curEdge()
	if kind == ast.SyncNone {
		return
	}
	chanText := p.popOperand()
	suffix := "?"
	if kind == ast.SyncBang {
		suffix = "!"
	}
	e.sync = chanText + suffix
}

func (p *Printer) ProcUpdate() { p.curEdge().update = p.popOperand() }

func (p *Printer) ProcEdgeEnd(from, to string) {
	n := len(p.edgeStack)
	if n == 0 {
		return
	}
	e := p.edgeStack[n-1]
	p.edgeStack = p.edgeStack[:n-1]

	var sb strings.Builder
	fmt.Fprintf(&sb, "trans %s -> %s", e.from, e.to)
	if !e.controllable {
		sb.WriteString("[!]")
	}
	var labels []string
	for _, s := range e.selects {
		labels = append(labels, "select "+s+";")
	}
	if e.guard != "" {
		labels = append(labels, "guard "+e.guard+";")
	}
	if e.sync != "" {
		labels = append(labels, "sync "+e.sync+";")
	}
	if e.update != "" {
		labels = append(labels, "assign "+e.update+";")
	}
	if len(labels) == 0 {
		sb.WriteString(";\n")
	} else {
		sb.WriteString(" { ")
		sb.WriteString(strings.Join(labels, " "))
		sb.WriteString(" };\n")
	}
	if p.curTemplate != nil {
		p.curTemplate.edgesText = append(p.curTemplate.edgesText, sb.String())
	}
}

// --- system ---

func (p *Printer) InstantiationBegin(id string, paramCount int, template string) {}

func (p *Printer) InstantiationEnd(id string, paramCount int, template string, argCount int) {
	args := p.popOperands(argCount)
	p.emitDecl(fmt.Sprintf("%s = %s(%s);", id, template, strings.Join(args, ", ")))
}

func (p *Printer) Process(name string) { p.pendingSystemNames = append(p.pendingSystemNames, name) }

func (p *Printer) IncProcPriority() {}

func (p *Printer) IncChanPriority() {
	p.chanPriorityGroups = append(p.chanPriorityGroups, &[]string{})
}

func (p *Printer) ChanPriority() {
	if len(p.chanPriorityGroups) == 0 {
		p.IncChanPriority()
	}
	g := p.chanPriorityGroups[len(p.chanPriorityGroups)-1]
	*g = append(*g, p.popOperand())
}

func (p *Printer) ProcPriority(name string) {
	p.procPriorityOrder = append(p.procPriorityOrder, name)
}

func (p *Printer) DefaultChanPriority() {
	if len(p.chanPriorityGroups) == 0 {
		p.IncChanPriority()
	}
	g := p.chanPriorityGroups[len(p.chanPriorityGroups)-1]
	*g = append(*g, "default")
}

// Done finalizes the printer's output: global declarations (the bottom
// decl-sink frame), every template, instantiation, priority declaration and
// the system line, each rendered in the order the frontend produced them.
// Done never fails in the printer's own right (malformed input is already
// reported by the frontend through HandleError); it returns (nil, nil) to
// satisfy the Builder interface's shared Done signature, the same way the
// teacher's DebugPrinter has no Done-equivalent return value at all, just a
// String() accessor.
func (p *Printer) Done() (*ast.System, error) {
	if len(p.declSink) > 0 {
		for _, line := range *p.declSink[0] {
			p.output.WriteString(line)
			p.output.WriteString("\n")
		}
	}
	for _, g := range p.chanPriorityGroups {
		fmt.Fprintf(&p.output, "chan priority %s;\n", strings.Join(*g, " < "))
	}
	for _, name := range p.procPriorityOrder {
		fmt.Fprintf(&p.output, "process priority %s;\n", name)
	}
	if len(p.pendingSystemNames) > 0 {
		fmt.Fprintf(&p.output, "system %s;\n", strings.Join(p.pendingSystemNames, ", "))
	}
	return nil, nil
}

func (p *Printer) AddPosition(pos, offset, line int, file string) {}

// HandleError/HandleWarning record frontend diagnostics for a caller to
// inspect via Errors/Warnings; the printer itself never refuses to render
// whatever partial text the call sequence produced.
func (p *Printer) HandleError(msg string)   { p.errs = append(p.errs, msg) }
func (p *Printer) HandleWarning(msg string) { p.warns = append(p.warns, msg) }

// Errors returns every HandleError message received so far.
func (p *Printer) Errors() []string { return p.errs }

// Warnings returns every HandleWarning message received so far.
func (p *Printer) Warnings() []string { return p.warns }
