package textdriver

import "github.com/alecthomas/participle/v2/lexer"

// Expr is a flat operator-sequence production, in the same "flat BinOps
// list" shape as the teacher's pkg/ast.Expr/BinaryOp — operator precedence
// is resolved afterward by precedence climbing in the walker (see
// precedence.go and climb in driver.go),
// rather than by a tower of grammar rules, since XTA's operator set is
// large enough that a rule-per-level grammar becomes unwieldy without
// adding expressiveness participle needs.
type Expr struct {
	Pos   lexer.Position
	Left  *Unary    `@@`
	Ops   []*BinOp  `@@*`
	Tern  *CondTail `@@?`
}

// BinOp is one `<op> <operand>` suffix.
type BinOp struct {
	Pos   lexer.Position
	Op    string `@("==" | "!=" | "<=" | ">=" | "&&" | "||" | "<?" | ">?" |
		"+=" | "-=" | "*=" | "/=" | "%=" | "|=" | "&=" | "^=" | "<<=" | ">>=" |
		"<<" | ">>" | "+" | "-" | "*" | "/" | "%" | "<" | ">" | "=" | "|" | "&" | "^")`
	Right *Unary `@@`
}

// CondTail is the `? then : else` suffix of the C-style ternary.
type CondTail struct {
	Pos  lexer.Position
	Then *Expr `"?" @@`
	Else *Expr `":" @@`
}

// Unary is at most one prefix operator over one Postfix; a second prefix
// operator in a row does not parse.
type Unary struct {
	Pos     lexer.Position
	Op      string   `@("!" | "-" | "++" | "--")?`
	Operand *Postfix `@@`
}

// Postfix is a Primary followed by call/index/dot/increment suffixes,
// applied left to right.
type Postfix struct {
	Pos     lexer.Position
	Primary *Primary  `@@`
	Suffix  []*Suffix `@@*`
}

// Suffix is one postfix operation.
type Suffix struct {
	Pos    lexer.Position
	Call   *CallSuffix  `  @@`
	Index  *Expr        `| "[" @@ "]"`
	Dot    string       `| "." @Ident`
	PostOp string       `| @("++" | "--")`
}

// CallSuffix is `( args? )`.
type CallSuffix struct {
	Pos  lexer.Position
	Args []*Expr `"(" (@@ ("," @@)*)? ")"`
}

// Primary is a leaf production: literal, identifier, parenthesised
// subexpression, quantifier, or `deadlock`.
type Primary struct {
	Pos      lexer.Position
	Deadlock bool        `( @"deadlock"`
	True     bool        `| @"true"`
	False    bool        `| @"false"`
	Nat      *int        `| @Number`
	Quant    *Quantifier `| @@`
	Paren    *Expr       `| "(" @@ ")"`
	Ident    string      `| @Ident )`
}

// Quantifier is `forall (id : type) body` / `exists (id : type) body`.
type Quantifier struct {
	Pos  lexer.Position
	Kind string    `@("forall" | "exists")`
	Name string    `"(" @Ident ":"`
	Type *TypeSpec `@@ ")"`
	Body *Expr     `@@`
}
