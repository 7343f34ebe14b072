package textdriver

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
)

// StartSymbol selects which production the driver parses the input as,
// mirroring spec.md §4.6's "full-file, local-declaration-block,
// parameter-list, expression, invariant, guard, sync, assign, system-line"
// list. Invariant/guard/assign share the expression grammar; StartSync
// parses a `<chan> !` / `<chan> ?` label and calls ProcSync itself. The
// shared ones are kept as distinct constants because a future caller-visible difference
// (e.g. a stricter side-effect-free check on invariants) hangs off this
// value, not off the grammar.
type StartSymbol int

const (
	StartFile StartSymbol = iota
	StartLocalDecl
	StartParameters
	StartExpression
	StartInvariant
	StartGuard
	StartSync
	StartAssign
	StartSystemLine
)

// Syntax names a reserved-word variant (old, new, property). ParseXTA
// stores it on the walker, but no parse step consults it: the grammar
// matches every keyword spelling literally, whichever variant is passed.
type Syntax int

const (
	OldSyntax Syntax = iota
	NewSyntax
	PropertySyntax
)

var (
	fileParser   = participle.MustBuild[File](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
	declsParser  = participle.MustBuild[declList](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
	paramsParser = participle.MustBuild[paramList](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
	exprParser   = participle.MustBuild[Expr](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
	syncParser   = participle.MustBuild[SyncDecl](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
	systemParser = participle.MustBuild[sysList](participle.Lexer(xtaLexer), participle.Elide("Whitespace", "CommentLine", "CommentBlock"), participle.UseLookahead(4))
)

type declList struct {
	Decls []*Decl `@@*`
}

type paramList struct {
	Params []*Param `(@@ ("," @@)*)?`
}

type sysList struct {
	Stmts []*SysStmt `@@*`
}

// ParseXTA parses source under the given syntax/start-symbol combination and
// drives b accordingly, forwarding malformed-input diagnostics to b's own
// HandleError. It returns 0 on success and -1 if the input could not be
// parsed at all (spec.md §6 "Exit status"); for StartParameters it instead
// returns the number of parameters recognized, matching the builder
// protocol's own parameter-count return convention.
func ParseXTA(source string, b builder.Builder, syntax Syntax, start StartSymbol) int {
	w := &walker{b: b, syntax: syntax, templateArity: make(map[string]int)}
	switch start {
	case StartFile:
		f, err := fileParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		w.walkFile(f)
	case StartLocalDecl:
		d, err := declsParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		for _, decl := range d.Decls {
			w.walkDecl(decl)
		}
	case StartParameters:
		p, err := paramsParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		for _, param := range p.Params {
			w.walkParam(param)
		}
		return len(p.Params)
	case StartExpression, StartInvariant, StartGuard, StartAssign:
		e, err := exprParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		w.emitExpr(e)
	case StartSync:
		s, err := syncParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		w.emitExpr(s.Chan)
		kind := ast.SyncQuery
		if s.Kind == "!" {
			kind = ast.SyncBang
		}
		w.b.ProcSync(kind)
	case StartSystemLine:
		s, err := systemParser.ParseString("", source)
		if err != nil {
			b.HandleError(fmt.Sprintf("SyntaxError: %v", err))
			return -1
		}
		w.walkSysStmts(s.Stmts)
	}
	return 0
}

// walker carries the single Builder being driven plus the active syntax
// mask, and recursively turns a parsed tree into Builder calls in
// depth-first, left-to-right order (spec.md §5 "Ordering guarantee").
type walker struct {
	b      builder.Builder
	syntax Syntax

	// templateArity records each process template's declared formal
	// parameter count as its ProcDef is walked, so a later instantiation's
	// InstantiationBegin/End pair reports the template's real expected
	// arity rather than the argument count it happens to parse.
	templateArity map[string]int
}

func (w *walker) walkFile(f *File) {
	for _, d := range f.Decls {
		w.walkDecl(d)
	}
	for _, p := range f.Procs {
		w.walkProc(p)
	}
	w.walkSysStmts(f.System)
}

func (w *walker) walkDecl(d *Decl) {
	switch {
	case d.TypeDef != nil:
		w.walkType(d.TypeDef.Type)
		w.b.DeclTypeDef(d.TypeDef.Name)
	case d.Func != nil:
		w.walkFunc(d.Func)
	case d.Var != nil:
		w.walkVarDecl(d.Var)
	}
}

// walkVarDecl walks the shared TypeSpec once, then duplicates it per
// declarator via TypeDuplicate so an array declarator (`int x, y[3];`) only
// wraps its own copy and leaves the base type intact for the remaining
// names in the list.
func (w *walker) walkVarDecl(v *VarDecl) {
	w.walkType(v.Type)
	for _, decl := range v.Declarators {
		w.b.TypeDuplicate()
		for i := len(decl.Dims) - 1; i >= 0; i-- {
			w.emitExpr(decl.Dims[i])
		}
		if len(decl.Dims) > 0 {
			w.b.TypeArrayOfSize(len(decl.Dims))
		}
		hasInit := decl.Init != nil
		if hasInit {
			w.walkInit(decl.Init)
		}
		w.b.DeclVar(decl.Name, hasInit)
		w.b.TypePop()
	}
	w.b.TypePop()
}

func (w *walker) walkInit(init *InitRHS) {
	if init.Value != nil {
		w.emitExpr(init.Value)
		return
	}
	for _, f := range init.List {
		w.emitExpr(f.Value)
		w.b.DeclFieldInit(f.Name)
	}
	w.b.DeclInitialiserList(len(init.List))
}

func (w *walker) walkType(t *TypeSpec) {
	prefix := prefixOf(t.Prefix)
	switch {
	case t.Bool_:
		w.b.TypeBool(prefix)
	case t.Int_:
		if t.Range != nil {
			w.emitExpr(t.Range.Lo)
			w.emitExpr(t.Range.Hi)
			w.b.TypeBoundedInt(prefix)
		} else {
			w.b.TypeInt(prefix)
		}
	case t.Chan_:
		w.b.TypeChannel(prefix)
	case t.Clock_:
		w.b.TypeClock(prefix)
	case t.Void_:
		w.b.TypeVoid(prefix)
	case t.Scalar:
		if t.ScalarSize != nil {
			w.emitExpr(t.ScalarSize)
		}
		w.b.TypeScalar(prefix)
	case t.Struct != nil:
		for _, f := range t.Struct.Fields {
			w.walkType(f.Type)
			w.b.StructField(f.Name)
		}
		w.b.TypeStruct(prefix, len(t.Struct.Fields))
	case t.Name != "":
		w.b.TypeName(prefix, t.Name)
	}
}

func prefixOf(s string) builder.Prefix {
	switch s {
	case "const":
		return builder.PrefixConst
	case "urgent":
		return builder.PrefixUrgent
	case "broadcast":
		return builder.PrefixBroadcast
	case "meta":
		return builder.PrefixMeta
	default:
		return builder.PrefixNone
	}
}

func (w *walker) walkParam(p *Param) {
	w.walkType(p.Type)
	w.b.DeclParameter(p.Name, p.ByRef)
	w.b.TypePop()
}

func (w *walker) walkFunc(f *FuncDecl) {
	w.walkType(f.Ret)
	w.b.DeclFuncBegin(f.Name)
	w.b.TypePop()
	for _, p := range f.Params {
		w.walkParam(p)
	}
	w.walkBlock(f.Body)
	w.b.DeclFuncEnd()
}

func (w *walker) walkBlock(blk *Block) {
	w.b.BlockBegin()
	for _, s := range blk.Stmts {
		w.walkStmt(s)
	}
	w.b.BlockEnd()
}

func (w *walker) walkStmt(s *Stmt) {
	switch {
	case s.Block != nil:
		w.walkBlock(s.Block)
	case s.If != nil:
		w.emitExpr(s.If.Cond)
		w.b.IfBegin()
		w.walkStmt(s.If.Then)
		hasElse := s.If.Else != nil
		if hasElse {
			w.b.IfElse()
			w.walkStmt(s.If.Else)
		}
		w.b.IfEnd(hasElse)
	case s.While != nil:
		w.b.WhileBegin()
		w.emitExpr(s.While.Cond)
		w.walkStmt(s.While.Body)
		w.b.WhileEnd()
	case s.DoWhile != nil:
		w.b.DoWhileBegin()
		w.walkStmt(s.DoWhile.Body)
		w.emitExpr(s.DoWhile.Cond)
		w.b.DoWhileEnd()
	case s.For != nil:
		w.b.ForBegin()
		emitOrTrue(w, s.For.Init)
		emitOrTrue(w, s.For.Cond)
		emitOrTrue(w, s.For.Post)
		w.walkStmt(s.For.Body)
		w.b.ForEnd()
	case s.Return != nil:
		hasValue := s.Return.Value != nil
		if hasValue {
			w.emitExpr(s.Return.Value)
		}
		w.b.ReturnStatement(hasValue)
	case s.Break != nil:
		w.b.BreakStatement()
	case s.Continue != nil:
		w.b.ContinueStatement()
	case s.Empty != nil:
		w.b.EmptyStatement()
	case s.Expr != nil:
		w.emitExpr(s.Expr)
		w.b.ExprStatement()
	}
}

// emitOrTrue emits e if present, else pushes a placeholder `true` operand so
// `for(;;)` style omitted clauses still leave exactly one operand for
// ForEnd to pop, matching spec.md's "any may be nil" for-loop clauses with
// the assembler's fixed three-pop ForEnd contract.
func emitOrTrue(w *walker, e *Expr) {
	if e != nil {
		w.emitExpr(e)
		return
	}
	w.b.ExprTrue()
}

func (w *walker) walkProc(p *ProcDef) {
	w.templateArity[p.Name] = len(p.Params)
	for _, param := range p.Params {
		w.walkParam(param)
	}
	w.b.ProcBegin(p.Name)
	for _, d := range p.Locals {
		w.walkDecl(d)
	}
	for _, st := range p.States {
		hasInv := st.Invariant != nil
		if hasInv {
			w.emitExpr(st.Invariant)
		}
		for i, name := range st.Names {
			w.b.ProcState(name, hasInv && i == 0)
		}
	}
	for _, fl := range p.Flags {
		for _, name := range fl.Names {
			switch fl.Kind {
			case "urgent":
				w.b.ProcStateUrgent(name)
			case "commit":
				w.b.ProcStateCommit(name)
			case "winning":
				w.b.ProcStateWinning(name)
			case "losing":
				w.b.ProcStateLosing(name)
			}
		}
	}
	w.b.ProcStateInit(p.Init)
	for _, e := range p.Edges {
		w.walkEdge(e)
	}
	w.b.ProcEnd()
}

func (w *walker) walkEdge(e *EdgeDecl) {
	w.b.ProcEdgeBegin(e.From, e.To, e.Controllable)
	for _, sel := range e.Selects {
		w.walkType(sel.Type)
		w.b.ProcSelect(sel.Name)
	}
	if e.Guard != nil {
		w.emitExpr(e.Guard)
		w.b.ProcGuard()
	}
	if e.Sync != nil {
		w.emitExpr(e.Sync.Chan)
		kind := ast.SyncQuery
		if e.Sync.Kind == "!" {
			kind = ast.SyncBang
		}
		w.b.ProcSync(kind)
	}
	if e.Update != nil {
		w.emitExpr(e.Update)
		w.b.ProcUpdate()
	}
	w.b.ProcEdgeEnd(e.From, e.To)
}

func (w *walker) walkSysStmts(stmts []*SysStmt) {
	for _, s := range stmts {
		switch {
		case s.Inst != nil:
			arity := w.templateArity[s.Inst.Template]
			w.b.InstantiationBegin(s.Inst.Name, arity, s.Inst.Template)
			for _, a := range s.Inst.Args {
				w.emitExpr(a)
			}
			w.b.InstantiationEnd(s.Inst.Name, arity, s.Inst.Template, len(s.Inst.Args))
		case s.System != nil:
			for _, name := range s.System.Names {
				w.b.Process(name)
			}
		}
	}
}

// --- expression walking: precedence climbing over the flat BinOp list ---

func (w *walker) emitExpr(e *Expr) {
	if e == nil {
		w.b.ExprTrue()
		return
	}
	w.emitUnary(e.Left)
	pos := 0
	w.climb(e.Ops, &pos, 0)
	if e.Tern != nil {
		w.emitExpr(e.Tern.Then)
		w.emitExpr(e.Tern.Else)
		w.b.ExprInlineIf()
	}
}

// climb implements precedence climbing: on entry the left operand is
// already on the builder's operand stack; on exit, the fully combined
// result (given ops[*pos:] consumed as applicable) is the new stack top.
func (w *walker) climb(ops []*BinOp, pos *int, minPrec int) {
	for *pos < len(ops) {
		info, ok := binOps[ops[*pos].Op]
		if !ok || info.prec < minPrec {
			return
		}
		rhs := ops[*pos].Right
		*pos++
		w.emitUnary(rhs)
		for *pos < len(ops) {
			next, ok2 := binOps[ops[*pos].Op]
			if !ok2 {
				break
			}
			if next.prec > info.prec || (next.prec == info.prec && next.rightAssoc) {
				w.climb(ops, pos, next.prec)
			} else {
				break
			}
		}
		if isAssignOp(info.op) {
			w.b.ExprAssignment(info.op)
		} else {
			w.b.ExprBinary(info.op)
		}
	}
}

func (w *walker) emitUnary(u *Unary) {
	w.emitPostfix(u.Operand)
	switch u.Op {
	case "":
	case "++":
		w.b.ExprPreIncrement()
	case "--":
		w.b.ExprPreDecrement()
	default:
		w.b.ExprUnary(unaryOps[u.Op])
	}
}

func (w *walker) emitPostfix(p *Postfix) {
	w.emitPrimary(p.Primary)
	for _, s := range p.Suffix {
		switch {
		case s.Call != nil:
			w.b.ExprCallBegin()
			for _, a := range s.Call.Args {
				w.emitExpr(a)
			}
			w.b.ExprCallEnd(len(s.Call.Args))
		case s.Index != nil:
			w.emitExpr(s.Index)
			w.b.ExprArray()
		case s.Dot != "":
			w.b.ExprDot(s.Dot)
		case s.PostOp == "++":
			w.b.ExprPostIncrement()
		case s.PostOp == "--":
			w.b.ExprPostDecrement()
		}
	}
}

func (w *walker) emitPrimary(p *Primary) {
	switch {
	case p.Deadlock:
		w.b.ExprDeadlock()
	case p.True:
		w.b.ExprTrue()
	case p.False:
		w.b.ExprFalse()
	case p.Nat != nil:
		w.b.ExprNat(*p.Nat)
	case p.Quant != nil:
		w.walkQuantifier(p.Quant)
	case p.Paren != nil:
		w.emitExpr(p.Paren)
	default:
		w.b.ExprId(p.Ident)
	}
}

func (w *walker) walkQuantifier(q *Quantifier) {
	w.walkType(q.Type)
	if q.Kind == "forall" {
		w.b.ExprForAllBegin(q.Name)
		w.emitExpr(q.Body)
		w.b.ExprForAllEnd(q.Name)
	} else {
		w.b.ExprExistsBegin(q.Name)
		w.emitExpr(q.Body)
		w.b.ExprExistsEnd(q.Name)
	}
}
