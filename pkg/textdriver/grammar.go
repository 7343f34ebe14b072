package textdriver

import "github.com/alecthomas/participle/v2/lexer"

// File is the full-file start symbol: a declaration section, zero or more
// process templates, and a system section.
type File struct {
	Pos     lexer.Position
	Decls   []*Decl     `@@*`
	Procs   []*ProcDef  `@@*`
	System  []*SysStmt  `@@*`
}

// Decl is one top-level or local declaration: a type alias, a function
// definition, or a variable declaration list sharing one type.
type Decl struct {
	Pos      lexer.Position
	TypeDef  *TypeDefDecl `  @@`
	Func     *FuncDecl    `| @@`
	Var      *VarDecl     `| @@`
}

// TypeDefDecl is `typedef <type> <name>;`.
type TypeDefDecl struct {
	Pos  lexer.Position
	Type *TypeSpec `"typedef" @@`
	Name string    `@Ident ";"`
}

// VarDecl is `<prefix>? <type> <declarator> (, <declarator>)* ;`.
type VarDecl struct {
	Pos         lexer.Position
	Type        *TypeSpec      `@@`
	Declarators []*Declarator  `@@ ("," @@)* ";"`
}

// Declarator is one `name dims* (= init)?` entry in a declarator list.
type Declarator struct {
	Pos  lexer.Position
	Name string   `@Ident`
	Dims []*Expr  `("[" @@ "]")*`
	Init *InitRHS `("=" @@)?`
}

// InitRHS is either a single expression or a brace-enclosed initialiser
// list, possibly with named fields (`{ x: 1, y: 2 }`).
type InitRHS struct {
	Pos   lexer.Position
	List  []*FieldInit `  "{" (@@ ("," @@)*)? "}"`
	Value *Expr        `| @@`
}

// FieldInit is one entry of a brace initialiser list, with an optional
// `name:` tag.
type FieldInit struct {
	Pos   lexer.Position
	Name  string `(@Ident ":")?`
	Value *Expr  `@@`
}

// TypeSpec is a type-construction production: an optional prefix, a base
// type, and zero-or-more array dimensions applied afterward (handled by the
// walker via TypeArrayOfSize, not by this grammar directly).
type TypeSpec struct {
	Pos    lexer.Position
	Prefix string `@("const" | "urgent" | "broadcast" | "meta")?`
	Bool_  bool   `( @"bool"`
	Int_   bool   `| @"int"`
	Chan_  bool   `| @"chan"`
	Clock_ bool   `| @"clock"`
	Void_  bool   `| @"void"`
	Scalar bool   `| @"scalar"`
	Struct *StructSpec `| @@`
	Name   string      `| @Ident )`
	Range  *RangeSpec  `@@?`
	ScalarSize *Expr    `("[" @@ "]")?`
}

// RangeSpec is a `[lo, hi]` bounded-int range.
type RangeSpec struct {
	Pos      lexer.Position
	Lo       *Expr `"[" @@`
	Hi       *Expr `"," @@ "]"`
}

// StructSpec is `struct { field* }`.
type StructSpec struct {
	Pos    lexer.Position
	Fields []*StructField `"struct" "{" @@* "}"`
}

// StructField is one `<type> <name>;` entry inside a struct body.
type StructField struct {
	Pos  lexer.Position
	Type *TypeSpec `@@`
	Name string    `@Ident ";"`
}

// FuncDecl is `<type> <name> ( <params>? ) <block>`.
type FuncDecl struct {
	Pos    lexer.Position
	Ret    *TypeSpec    `@@`
	Name   string       `@Ident`
	Params []*Param     `"(" (@@ ("," @@)*)? ")"`
	Body   *Block       `@@`
}

// Param is one `<type> &?<name>` formal parameter; a leading `&` marks
// pass-by-reference.
type Param struct {
	Pos   lexer.Position
	Type  *TypeSpec `@@`
	ByRef bool      `@"&"?`
	Name  string    `@Ident`
}

// ProcDef is `process <name> ( <params>? ) { <locals> <states> <edges> }`.
type ProcDef struct {
	Pos    lexer.Position
	Name   string      `"process" @Ident`
	Params []*Param    `"(" (@@ ("," @@)*)? ")"`
	Locals []*Decl     `"{" @@*`
	States []*StateDecl `@@*`
	Flags  []*StateFlagDecl `@@*`
	Init   string       `"init" @Ident ";"`
	Edges  []*EdgeDecl  `@@* "}"`
}

// StateDecl is `state <name> (, <name>)* ;` with an optional
// brace-enclosed invariant attached to the first name only (new-syntax
// single-location form is handled by repeating StateDecl per location).
type StateDecl struct {
	Pos        lexer.Position
	Names      []string `"state" @Ident ("," @Ident)*`
	Invariant  *Expr    `( "{" @@ "}" )? ";"`
}

// StateFlagDecl is `urgent <name> (, <name>)* ;` or the `commit` / winning /
// losing equivalents, used after the state list in old-syntax style.
type StateFlagDecl struct {
	Pos   lexer.Position
	Kind  string   `@("urgent" | "commit" | "winning" | "losing")`
	Names []string `@Ident ("," @Ident)* ";"`
}

// EdgeDecl is `trans <from> -> <to> { select?; guard?; sync?; assign?; };`.
type EdgeDecl struct {
	Pos          lexer.Position
	Controllable bool      `@"trans"`
	From         string    `@Ident "->"`
	To           string    `@Ident "{"`
	Selects      []*SelectDecl `@@*`
	Guard        *Expr     `("guard" @@ ";")?`
	Sync         *SyncDecl `("sync" @@ ";")?`
	Update       *Expr     `("assign" @@ ";")?`
	_            bool      `"}" ";"`
}

// SelectDecl is one `select <id> : <type>;` edge binder.
type SelectDecl struct {
	Pos  lexer.Position
	Name string    `"select" @Ident ":"`
	Type *TypeSpec `@@ ";"`
}

// SyncDecl is a channel synchronisation label: `<chan> ! ` or `<chan> ?`.
type SyncDecl struct {
	Pos  lexer.Position
	Chan *Expr  `@@`
	Kind string `@("!" | "?")`
}

// SysStmt is one top-level system-section statement: an instantiation or a
// `system` process list.
type SysStmt struct {
	Pos     lexer.Position
	Inst    *InstStmt  `  @@`
	System  *SystemLine `| @@`
}

// InstStmt is `<id> = <template> ( <args>? ) ;`.
type InstStmt struct {
	Pos      lexer.Position
	Name     string  `@Ident "="`
	Template string  `@Ident "("`
	Args     []*Expr `(@@ ("," @@)*)? ")" ";"`
}

// SystemLine is `system <id> (, <id>)* ;`.
type SystemLine struct {
	Pos   lexer.Position
	Names []string `"system" @Ident ("," @Ident)* ";"`
}

// Block is `{ stmt* }`.
type Block struct {
	Pos   lexer.Position
	Stmts []*Stmt `"{" @@* "}"`
}

// Stmt is one statement production, in ordered-choice priority matching the
// teacher's BodyStatement pattern (most specific first, expression
// statement last to minimise grammar conflicts).
type Stmt struct {
	Pos      lexer.Position
	Block    *Block    `  @@`
	If       *IfStmt   `| @@`
	While    *WhileStmt `| @@`
	DoWhile  *DoWhileStmt `| @@`
	For      *ForStmt  `| @@`
	Return   *ReturnStmt `| @@`
	Break    *bool     `| @"break" ";"`
	Continue *bool     `| @"continue" ";"`
	Empty    *bool     `| @";"`
	Expr     *Expr     `| @@ ";"`
}

// IfStmt is `if ( cond ) then (else else)?`.
type IfStmt struct {
	Pos  lexer.Position
	Cond *Expr `"if" "(" @@ ")"`
	Then *Stmt `@@`
	Else *Stmt `("else" @@)?`
}

// WhileStmt is `while ( cond ) body`.
type WhileStmt struct {
	Pos  lexer.Position
	Cond *Expr `"while" "(" @@ ")"`
	Body *Stmt `@@`
}

// DoWhileStmt is `do body while ( cond ) ;`.
type DoWhileStmt struct {
	Pos  lexer.Position
	Body *Stmt `"do" @@`
	Cond *Expr `"while" "(" @@ ")" ";"`
}

// ForStmt is `for ( init? ; cond? ; post? ) body`.
type ForStmt struct {
	Pos  lexer.Position
	Init *Expr `"for" "(" @@?`
	Cond *Expr `";" @@?`
	Post *Expr `";" @@? ")"`
	Body *Stmt `@@`
}

// ReturnStmt is `return expr? ;`.
type ReturnStmt struct {
	Pos   lexer.Position
	Value *Expr `"return" @@?`
	_     bool  `";"`
}
