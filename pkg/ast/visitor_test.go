package ast

import "testing"

type countingVisitor struct {
	BaseVisitor
	exprs int
	stmts int
}

func (c *countingVisitor) VisitExpr(e *Expr) any {
	if e == nil {
		return nil
	}
	c.exprs++
	return c.BaseVisitor.VisitExpr(e)
}

func (c *countingVisitor) VisitStmt(s *Stmt) any {
	if s == nil {
		return nil
	}
	c.stmts++
	return c.BaseVisitor.VisitStmt(s)
}

func TestBaseVisitorTraversesExprTree(t *testing.T) {
	expr := Binary(OpAdd, Ident("x"), Binary(OpMul, Nat(2), Ident("y")))
	c := &countingVisitor{}
	c.VisitExpr(expr)
	if c.exprs != 4 {
		t.Fatalf("expected 4 expr nodes visited, got %d", c.exprs)
	}
}

func TestBaseVisitorTraversesIfStmt(t *testing.T) {
	stmt := &Stmt{
		Kind: StmtIf,
		Expr: Ident("g"),
		Then: &Stmt{Kind: StmtExpr, Expr: Ident("a")},
		Else: &Stmt{Kind: StmtExpr, Expr: Ident("b")},
	}
	c := &countingVisitor{}
	c.VisitStmt(stmt)
	if c.stmts != 3 {
		t.Fatalf("expected 3 stmt nodes visited (if + then + else), got %d", c.stmts)
	}
	if c.exprs != 3 {
		t.Fatalf("expected 3 expr nodes visited (cond + a + b), got %d", c.exprs)
	}
}

func TestBaseVisitorTraversesTemplateEdges(t *testing.T) {
	tmpl := &Template{
		Name: "P",
		Locations: []*Location{
			{Name: "L0", Invariant: Ident("x")},
		},
		Edges: []*Edge{
			{Source: "L0", Target: "L0", Guard: Ident("g"), Update: Ident("u")},
		},
	}
	c := &countingVisitor{}
	c.VisitTemplate(tmpl)
	if c.exprs != 3 {
		t.Fatalf("expected 3 expr nodes (invariant + guard + update), got %d", c.exprs)
	}
}
