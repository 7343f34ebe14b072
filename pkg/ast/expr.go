// Package ast defines the typed tree produced by the assembler (C5/C6):
// expressions, statements, templates, locations, edges and the top-level
// system. Node shapes follow the teacher's plain-exported-struct style
// (see the former pkg/ast/ast.go), re-typed for timed-automata semantics.
package ast

import "github.com/txta-go/txta/pkg/types"

// Op identifies an expression operator.
type Op int

const (
	// leaves have no Op
	OpNone Op = iota

	// unary
	OpNeg
	OpNot
	OpPostInc
	OpPostDec
	OpPreInc
	OpPreDec

	// binary arithmetic / relational / logical / bitwise
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpMin // <?
	OpMax // >?
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNeq
	OpAnd
	OpOr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpShl
	OpShr

	// assignment family
	OpAssign
	OpAssignAdd
	OpAssignSub
	OpAssignMul
	OpAssignDiv
	OpAssignMod
	OpAssignOr
	OpAssignAnd
	OpAssignXor
	OpAssignShl
	OpAssignShr

	// ternary, including temporal-until variants
	OpInlineIf  // a ? b : c
	OpUntilA    // A U (a until b, possibly, variant)
	OpUntilW    // A W

	// structural
	OpDot    // field/process member access
	OpIndex  // array index
	OpCall   // function/template call
	OpComma  // comma expression
	OpForAll // quantifier
	OpExists // quantifier

	// games-style temporal operators
	OpControl
	OpControlEDiamond // "E<> control:"
	OpControlT        // control_t*
)

// NodeKind distinguishes leaf shapes.
type NodeKind int

const (
	KindInternal NodeKind = iota
	KindIdent
	KindNat
	KindBool
	KindDeadlock
)

// Expr is a tagged expression tree node.
type Expr struct {
	Kind NodeKind
	Op   Op

	// leaves
	Ident string
	Nat   int
	Bool  bool

	// internal node children, in operand order
	Children []*Expr

	// OpDot field name; OpForAll/OpExists bound name; the field name of a
	// named initialiser (DeclFieldInit)
	Name string

	// Type is filled in where the assembler can cheaply assign one (e.g.
	// quantifier binder types); zero value means "unset, defer to a later
	// type checker".
	Type types.ID
}

// Ident builds an identifier-reference leaf.
func Ident(name string) *Expr { return &Expr{Kind: KindIdent, Ident: name} }

// Nat builds a natural-number literal leaf.
func Nat(n int) *Expr { return &Expr{Kind: KindNat, Nat: n} }

// Bool builds a boolean literal leaf.
func Bool(v bool) *Expr { return &Expr{Kind: KindBool, Bool: v} }

// Deadlock builds the `deadlock` leaf.
func Deadlock() *Expr { return &Expr{Kind: KindDeadlock} }

// Unary builds a one-child internal node.
func Unary(op Op, x *Expr) *Expr { return &Expr{Kind: KindInternal, Op: op, Children: []*Expr{x}} }

// Binary builds a two-child internal node.
func Binary(op Op, a, b *Expr) *Expr {
	return &Expr{Kind: KindInternal, Op: op, Children: []*Expr{a, b}}
}

// Ternary builds a three-child internal node.
func Ternary(op Op, a, b, c *Expr) *Expr {
	return &Expr{Kind: KindInternal, Op: op, Children: []*Expr{a, b, c}}
}

// Dot builds a field/process-member access node.
func Dot(recv *Expr, field string) *Expr {
	return &Expr{Kind: KindInternal, Op: OpDot, Name: field, Children: []*Expr{recv}}
}

// Index builds an array-index node.
func Index(arr, idx *Expr) *Expr {
	return &Expr{Kind: KindInternal, Op: OpIndex, Children: []*Expr{arr, idx}}
}

// Call builds a call node: callee followed by args.
func Call(callee *Expr, args []*Expr) *Expr {
	children := append([]*Expr{callee}, args...)
	return &Expr{Kind: KindInternal, Op: OpCall, Children: children}
}

// Comma builds a comma-expression node over an ordered list.
func Comma(xs []*Expr) *Expr { return &Expr{Kind: KindInternal, Op: OpComma, Children: xs} }

// Quantifier builds exprForAll/exprExists: the binder name goes in Name, its
// type in Type, and the body is the only child.
func Quantifier(op Op, name string, binderType types.ID, body *Expr) *Expr {
	return &Expr{Kind: KindInternal, Op: op, Name: name, Type: binderType, Children: []*Expr{body}}
}
