package ast

import "github.com/txta-go/txta/pkg/types"

// StmtKind tags a Stmt node.
type StmtKind int

const (
	StmtEmpty StmtKind = iota
	StmtBlock
	StmtExpr
	StmtReturn
	StmtIf
	StmtWhile
	StmtDoWhile
	StmtFor
	StmtIteration
	StmtBreak
	StmtContinue
)

// Stmt is a tagged statement tree node.
type Stmt struct {
	Kind StmtKind

	// StmtBlock
	Block []*Stmt

	// StmtExpr, StmtReturn (optional), StmtIf/While/DoWhile condition
	Expr *Expr

	// StmtReturn
	HasValue bool

	// StmtIf
	Then *Stmt
	Else *Stmt // nil if no else branch

	// StmtWhile, StmtDoWhile
	Body *Stmt

	// StmtFor: three expressions (init, cond, post), any may be nil
	ForInit *Expr
	ForCond *Expr
	ForPost *Expr

	// StmtIteration: `for (name : type) body`
	IterName string
	IterType types.ID
}
