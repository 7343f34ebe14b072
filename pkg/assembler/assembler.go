// Package assembler implements the concrete system/template/edge assembler
// (C5/C6): a Builder that maintains the operand/type/array/parameter stacks
// described in spec.md §4.4 and SPEC_FULL.md's design notes, and emits a
// *ast.System.
//
// Grounded on UTAP's systembuilder.h for the method list and the consistency
// checks this layer (as opposed to a later type checker) is responsible for,
// and on the teacher's visitors.SemanticAnalyzer for the Go shape of an
// error-accumulating pass (slice of typed errors, addError helper).
package assembler

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
	"github.com/txta-go/txta/pkg/symtab"
	"github.com/txta-go/txta/pkg/types"
)

// errKind names one of spec.md §7's structured error kinds.
type errKind string

const (
	errLex               errKind = "LexError"
	errSyntax            errKind = "SyntaxError"
	errUnknownTag        errKind = "UnknownTag"
	errUnexpectedTag     errKind = "UnexpectedTag"
	errSiblingOrder      errKind = "SiblingOrder"
	errUnclosedTag       errKind = "UnclosedTag"
	errDuplicateSymbol   errKind = "DuplicateSymbol"
	errUnknownSymbol     errKind = "UnknownSymbol"
	errBadType           errKind = "BadType"
	errBadID             errKind = "BadId"
	errArityMismatch     errKind = "ArityMismatch"
	errRecursiveFunction errKind = "RecursiveFunction"
	errStateNotDeclared  errKind = "StateNotDeclared"
	errInitNotDeclared   errKind = "InitNotDeclared"
	errConflictingFlags  errKind = "ConflictingStateFlags"
	errAfterDone         errKind = "AfterDone"
)

// Diag is one structured diagnostic.
type Diag struct {
	Kind    errKind
	Message string
}

func (d Diag) String() string { return fmt.Sprintf("%s: %s", d.Kind, d.Message) }

// ErrorHandler receives formatted diagnostics, as spec.md §6/§7 describes.
type ErrorHandler interface {
	HandleError(msg string)
	HandleWarning(msg string)
}

// funcInfo tracks a declared function for the direct-recursion check.
type funcInfo struct {
	name     string
	building bool
}

// edgeMarks accumulates one edge's sub-labels (select binders, guard, sync,
// update) between ProcEdgeBegin and ProcEdgeEnd, in the order
// procSelect*/procGuard?/procSync?/procUpdate? that spec.md §4.4 "Edge
// construction" describes. A second call of the same sub-label setter for
// one edge replaces the earlier value; the repeat is not reported.
type edgeMarks struct {
	from, to     string
	controllable bool
	selects      []ast.Select
	guard        *ast.Expr
	syncKind     ast.Sync
	syncChan     *ast.Expr
	update       *ast.Expr
}

// Assembler is the concrete Builder that builds a *ast.System.
type Assembler struct {
	Types *types.Registry
	Syms  *symtab.Table

	errHandler ErrorHandler
	SessionID  uuid.UUID

	done     bool
	hadError bool

	// names usable on the system line: template names and instantiation
	// identifiers, both populated as they are declared.
	knownProcess map[string]bool

	// expression operand stack
	operands []*ast.Expr

	// type construction stack
	typeStack []types.ID
	// paired field-name stack for TypeStruct/StructField
	fieldNames []string
	// array-dimension stack (pending sizes for TypeArrayOfSize/OfType)
	arraySizes []int

	// statement result stack: every completed statement production
	// appends exactly one *ast.Stmt here.
	stmts []*ast.Stmt
	// block-nesting marks: index into stmts at each BlockBegin.
	blockMarks []int

	// iteration (statement-level) frame bookkeeping
	iterStack []iterFrame

	// quantifier (forall/exists) frame bookkeeping, same shape as iterStack
	quantStack []iterFrame

	// call-expression operand-stack marks (currently unused for slicing,
	// kept for symmetry with edgeMarks and to let ExprCallEnd validate
	// nesting depth in a later pass)
	callMarks []int

	// declared parameters, accumulated between DeclFuncBegin/End and
	// during instantiation parameter counting.
	params []ast.Select

	// function under construction
	funcs     map[string]*funcInfo
	curFunc   *funcInfo
	funcStack []*funcInfo

	// template under construction
	curTemplate *ast.Template
	declaredLoc map[string]bool
	locIndex    map[string]int // name -> index into curTemplate.Locations
	procFrame   symtab.FrameID
	edgeStack   []*edgeMarks

	// instantiation under construction (InstantiationBegin/End)
	instName     string
	instTemplate string

	// progress measures (DeclProgress)
	progressCount int

	sys *ast.System
}

type iterFrame struct {
	name  string
	typ   types.ID
	frame symtab.FrameID
}

// New creates an Assembler with a fresh type registry and symbol table.
func New(errHandler ErrorHandler) *Assembler {
	return &Assembler{
		Types:        types.New(),
		Syms:         symtab.New(),
		errHandler:   errHandler,
		SessionID:    uuid.New(),
		funcs:        make(map[string]*funcInfo),
		declaredLoc:  make(map[string]bool),
		knownProcess: make(map[string]bool),
		sys:          &ast.System{},
	}
}

var _ builder.Builder = (*Assembler)(nil)

func (a *Assembler) fail(kind errKind, format string, args ...any) {
	a.hadError = true
	msg := fmt.Sprintf(format, args...)
	if a.errHandler != nil {
		a.errHandler.HandleError(fmt.Sprintf("%s: %s", kind, msg))
	}
}

func (a *Assembler) warn(format string, args ...any) {
	if a.errHandler != nil {
		a.errHandler.HandleWarning(fmt.Sprintf(format, args...))
	}
}

func (a *Assembler) guardDone(method string) bool {
	if a.done {
		a.fail(errAfterDone, "%s called after Done", method)
		return true
	}
	return false
}

// --- operand stack helpers ---

func (a *Assembler) pushOperand(e *ast.Expr) { a.operands = append(a.operands, e) }

func (a *Assembler) popOperand() *ast.Expr {
	if len(a.operands) == 0 {
		a.fail(errSyntax, "operand stack underflow")
		return ast.Ident("<error>")
	}
	n := len(a.operands) - 1
	e := a.operands[n]
	a.operands = a.operands[:n]
	return e
}

func (a *Assembler) popOperands(n int) []*ast.Expr {
	out := make([]*ast.Expr, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = a.popOperand()
	}
	return out
}

// --- type stack helpers ---

func (a *Assembler) pushType(t types.ID) { a.typeStack = append(a.typeStack, t) }

func (a *Assembler) popType() types.ID {
	if len(a.typeStack) == 0 {
		a.fail(errSyntax, "type stack underflow")
		return types.ID(types.Void)
	}
	n := len(a.typeStack) - 1
	t := a.typeStack[n]
	a.typeStack = a.typeStack[:n]
	return t
}

func evalConstInt(e *ast.Expr) (int, bool) {
	switch {
	case e.Kind == ast.KindNat:
		return e.Nat, true
	case e.Kind == ast.KindInternal && e.Op == ast.OpNeg && len(e.Children) == 1:
		v, ok := evalConstInt(e.Children[0])
		return -v, ok
	default:
		return 0, false
	}
}

func (a *Assembler) applyPrefix(t types.ID, p builder.Prefix) types.ID {
	switch p {
	case builder.PrefixConst:
		return a.Types.MakeConstant(t)
	case builder.PrefixMeta:
		return a.Types.MakeSideEffectFree(t)
	default:
		return t
	}
}
