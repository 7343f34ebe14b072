// Package builder defines the push-style Builder protocol (C4): the single
// abstract interface that both text and XML frontends drive, and that the
// assembler (C5/C6) and pretty printer (C9) implement uniformly — the same
// "one big interface, two concrete implementations" shape as the teacher's
// ast.Visitor / BaseVisitor pair, generalized from pull (visit) to push
// (build).
package builder

import (
	"github.com/txta-go/txta/pkg/ast"
)

// Prefix is the fixed enum of type-declaration prefixes.
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixConst
	PrefixUrgent
	PrefixBroadcast
	PrefixUrgentBroadcast
	PrefixMeta
)

// Builder is the push interface driven by the text and XML frontends. Every
// method corresponds to one production recognized by the grammar; the
// concrete implementation maintains whatever hidden stacks it needs to turn
// the call sequence into a finished artifact (an AST, for the assembler; a
// string, for the pretty printer).
type Builder interface {
	// --- type construction ---
	TypeBool(p Prefix)
	TypeInt(p Prefix)
	TypeBoundedInt(p Prefix) // pops two operands: lower, upper bound
	TypeChannel(p Prefix)
	TypeClock(p Prefix)
	TypeVoid(p Prefix)
	TypeScalar(p Prefix) // pops one operand: value count
	TypeName(p Prefix, name string)
	TypeArrayOfSize(n int)
	TypeArrayOfType(n int)
	TypeStruct(p Prefix, fieldCount int)
	TypeDuplicate()
	TypePop()
	StructField(name string)

	// --- declarations ---
	DeclTypeDef(name string)
	DeclVar(name string, hasInit bool)
	DeclInitialiserList(n int)
	DeclFieldInit(name string)
	DeclParameter(name string, byRef bool)
	DeclFuncBegin(name string)
	DeclFuncEnd()
	DeclProgress(isDefault bool)

	// --- statements ---
	BlockBegin()
	BlockEnd()
	EmptyStatement()
	ForBegin()
	ForEnd()
	IterationBegin(name string)
	IterationEnd(name string)
	WhileBegin()
	WhileEnd()
	DoWhileBegin()
	DoWhileEnd()
	IfBegin()
	IfElse()
	IfEnd(hasElse bool)
	ExprStatement()
	ReturnStatement(hasValue bool)
	BreakStatement()
	ContinueStatement()

	// --- expressions ---
	ExprId(name string)
	ExprNat(n int)
	ExprTrue()
	ExprFalse()
	ExprCallBegin()
	ExprCallEnd(argCount int)
	ExprArray()
	ExprPostIncrement()
	ExprPostDecrement()
	ExprPreIncrement()
	ExprPreDecrement()
	ExprAssignment(op ast.Op)
	ExprUnary(op ast.Op)
	ExprBinary(op ast.Op)
	ExprTernary(op ast.Op)
	ExprInlineIf()
	ExprComma()
	ExprDot(fieldName string)
	ExprDeadlock()
	ExprForAllBegin(name string)
	ExprForAllEnd(name string)
	ExprExistsBegin(name string)
	ExprExistsEnd(name string)

	// --- processes ---
	ProcBegin(name string)
	ProcEnd()
	ProcState(name string, hasInvariant bool)
	ProcStateUrgent(name string)
	ProcStateCommit(name string)
	ProcStateInit(name string)
	ProcStateWinning(name string)
	ProcStateLosing(name string)
	ProcEdgeBegin(from, to string, controllable bool)
	ProcEdgeEnd(from, to string)
	ProcSelect(id string)
	ProcGuard()
	ProcSync(kind ast.Sync)
	ProcUpdate()

	// --- system ---
	InstantiationBegin(id string, paramCount int, template string)
	InstantiationEnd(id string, paramCount int, template string, argCount int)
	Process(name string)
	Done() (*ast.System, error)
	IncProcPriority()
	IncChanPriority()
	ChanPriority()
	ProcPriority(name string)
	DefaultChanPriority()

	// --- diagnostics ---
	AddPosition(pos, offset, line int, file string)
	HandleError(msg string)
	HandleWarning(msg string)
}
