// Package textdriver implements the text grammar driver (C7): a
// participle-based parser over the XTA textual syntax that issues
// builder.Builder calls in grammar order, the same "parse into a tree, walk
// it" shape as the teacher's pkg/parser, generalized from a single grammar
// to six parsers covering the start symbols spec.md §4.6 names (see
// StartSymbol in driver.go).
package textdriver

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// xtaLexer tokenises both old- and new-syntax XTA source. The lexer emits
// every reserved word and plain identifier alike as Ident; grammar
// productions match keyword spellings literally, and no syntax-mask check
// (see pkg/keywords) is made anywhere in this package.
var xtaLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "CommentLine", Pattern: `//[^\n]*`},
	{Name: "CommentBlock", Pattern: `/\*[^*]*\*+(?:[^/*][^*]*\*+)*/`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Number", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Op", Pattern: `(->|<=|>=|==|!=|&&|\|\||<\?|>\?|\+=|-=|\*=|/=|%=|\|=|&=|\^=|<<=|>>=|<<|>>|[+\-*/%<>=!&|^?:])`},
	{Name: "Punct", Pattern: `[{}()\[\],;.]`},
})
