package ast

// Visitor visits every node shape in the expression/statement tree. Modeled
// on the teacher's ast.Visitor: one method per node shape, interface{}
// return type so transforms and analyses can share the traversal.
type Visitor interface {
	VisitExpr(*Expr) any
	VisitStmt(*Stmt) any
	VisitTemplate(*Template) any
	VisitLocation(*Location) any
	VisitEdge(*Edge) any
	VisitSystem(*System) any
}

// BaseVisitor provides default depth-first traversal. Its recursion calls
// BaseVisitor's own methods: a type that embeds it and overrides a method
// has that override called only for the node it is invoked on directly,
// not for the child nodes BaseVisitor then reaches.
type BaseVisitor struct{}

var _ Visitor = (*BaseVisitor)(nil)

func (v *BaseVisitor) VisitExpr(e *Expr) any {
	if e == nil {
		return nil
	}
	for _, c := range e.Children {
		v.VisitExpr(c)
	}
	return nil
}

func (v *BaseVisitor) VisitStmt(s *Stmt) any {
	if s == nil {
		return nil
	}
	switch s.Kind {
	case StmtBlock:
		for _, c := range s.Block {
			v.VisitStmt(c)
		}
	case StmtExpr:
		v.VisitExpr(s.Expr)
	case StmtReturn:
		if s.HasValue {
			v.VisitExpr(s.Expr)
		}
	case StmtIf:
		v.VisitExpr(s.Expr)
		v.VisitStmt(s.Then)
		if s.Else != nil {
			v.VisitStmt(s.Else)
		}
	case StmtWhile, StmtDoWhile:
		v.VisitExpr(s.Expr)
		v.VisitStmt(s.Body)
	case StmtFor:
		v.VisitExpr(s.ForInit)
		v.VisitExpr(s.ForCond)
		v.VisitExpr(s.ForPost)
		v.VisitStmt(s.Body)
	case StmtIteration:
		v.VisitStmt(s.Body)
	}
	return nil
}

func (v *BaseVisitor) VisitTemplate(t *Template) any {
	if t == nil {
		return nil
	}
	for _, s := range t.Locals {
		v.VisitStmt(s)
	}
	for _, l := range t.Locations {
		v.VisitLocation(l)
	}
	for _, e := range t.Edges {
		v.VisitEdge(e)
	}
	return nil
}

func (v *BaseVisitor) VisitLocation(l *Location) any {
	if l == nil {
		return nil
	}
	if l.Invariant != nil {
		v.VisitExpr(l.Invariant)
	}
	return nil
}

func (v *BaseVisitor) VisitEdge(e *Edge) any {
	if e == nil {
		return nil
	}
	if e.Guard != nil {
		v.VisitExpr(e.Guard)
	}
	if e.SyncChan != nil {
		v.VisitExpr(e.SyncChan)
	}
	if e.Update != nil {
		v.VisitExpr(e.Update)
	}
	return nil
}

func (v *BaseVisitor) VisitSystem(s *System) any {
	if s == nil {
		return nil
	}
	for _, t := range s.Templates {
		v.VisitTemplate(t)
	}
	for _, inst := range s.Instantiations {
		for _, a := range inst.Args {
			v.VisitExpr(a)
		}
	}
	return nil
}
