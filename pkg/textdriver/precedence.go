package textdriver

import "github.com/txta-go/txta/pkg/ast"

// opInfo maps a lexical operator spelling to its assembler Op, binding
// precedence, and associativity, used by the walker's precedence-climbing
// pass over the Expr grammar's flat operator list (see climb in
// driver.go). Based on the textbook precedence-climbing algorithm, adapted
// so "applying an operator" means calling the live Builder's
// ExprBinary/ExprAssignment rather than building a value directly — the
// assembler's own operand stack holds the intermediate results.
type opInfo struct {
	op         ast.Op
	prec       int
	rightAssoc bool
}

var binOps = map[string]opInfo{
	"=":   {ast.OpAssign, 1, true},
	"+=":  {ast.OpAssignAdd, 1, true},
	"-=":  {ast.OpAssignSub, 1, true},
	"*=":  {ast.OpAssignMul, 1, true},
	"/=":  {ast.OpAssignDiv, 1, true},
	"%=":  {ast.OpAssignMod, 1, true},
	"|=":  {ast.OpAssignOr, 1, true},
	"&=":  {ast.OpAssignAnd, 1, true},
	"^=":  {ast.OpAssignXor, 1, true},
	"<<=": {ast.OpAssignShl, 1, true},
	">>=": {ast.OpAssignShr, 1, true},

	"||": {ast.OpOr, 2, false},
	"&&": {ast.OpAnd, 3, false},
	"|":  {ast.OpBitOr, 4, false},
	"^":  {ast.OpBitXor, 5, false},
	"&":  {ast.OpBitAnd, 6, false},

	"==": {ast.OpEq, 7, false},
	"!=": {ast.OpNeq, 7, false},

	"<":  {ast.OpLt, 8, false},
	"<=": {ast.OpLe, 8, false},
	">":  {ast.OpGt, 8, false},
	">=": {ast.OpGe, 8, false},

	"<<": {ast.OpShl, 9, false},
	">>": {ast.OpShr, 9, false},

	"<?": {ast.OpMin, 10, false},
	">?": {ast.OpMax, 10, false},

	"+": {ast.OpAdd, 11, false},
	"-": {ast.OpSub, 11, false},

	"*": {ast.OpMul, 12, false},
	"/": {ast.OpDiv, 12, false},
	"%": {ast.OpMod, 12, false},
}

// unaryOps maps Unary's prefix spelling to its assembler Op.
var unaryOps = map[string]ast.Op{
	"!":  ast.OpNot,
	"-":  ast.OpNeg,
	"++": ast.OpPreInc,
	"--": ast.OpPreDec,
}

// postfixOps maps Suffix's postfix spelling to its assembler Op.
var postfixOps = map[string]ast.Op{
	"++": ast.OpPostInc,
	"--": ast.OpPostDec,
}

func isAssignOp(op ast.Op) bool {
	switch op {
	case ast.OpAssign, ast.OpAssignAdd, ast.OpAssignSub, ast.OpAssignMul, ast.OpAssignDiv,
		ast.OpAssignMod, ast.OpAssignOr, ast.OpAssignAnd, ast.OpAssignXor, ast.OpAssignShl, ast.OpAssignShr:
		return true
	default:
		return false
	}
}
