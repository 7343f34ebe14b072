// Package keywords implements the keyword and XML-tag recognizers (C1): a
// byte-string to (token, syntax-mask) lookup for the text grammar, and a
// fixed tag-enum lookup for the XML grammar.
//
// The word list and syntax masks are taken verbatim from UTAP's
// keywords.cc (a gperf-generated perfect hash over the same 33 words); we
// reproduce the input/output relation with a plain map, which is O(1)
// amortised and needs no generated code for a fixed ~35-entry table.
package keywords

import "github.com/xrash/smetrics"

// Mask is a set of syntax variants in which a word is reserved.
type Mask uint8

const (
	Old Mask = 1 << iota
	New
	Property
)

// Token identifies a reserved word.
type Token int

const (
	TDo Token = iota
	TQuit
	TTrans
	TStruct
	TDefault
	TGuard
	TUrgent
	TTypedef
	TDeadlock
	TSync
	TConst
	TCommit
	TProcess
	TTrue
	TState
	TSystem
	TInit
	TFalse
	TSwitch
	TIf
	TBoolNot
	TCase
	TWhile
	TBoolOr
	TContinue
	TElse
	TImply
	TFor
	TBreak
	TBoolAnd
	TBroadcast
	TReturn
	TAssign
)

// entry is one keyword's token and syntax mask.
type entry struct {
	token Token
	mask  Mask
}

// table mirrors keywords.cc's word list exactly, including the documented
// fix to its one malformed row: "broadcast" is reserved in both the old and
// new text syntax (see SPEC_FULL.md §4 and spec.md §9 Open Questions).
var table = map[string]entry{
	"do":        {TDo, New},
	"quit":      {TQuit, Property},
	"trans":     {TTrans, Old | New},
	"struct":    {TStruct, New},
	"default":   {TDefault, New},
	"guard":     {TGuard, Old | New},
	"urgent":    {TUrgent, Old | New},
	"typedef":   {TTypedef, New},
	"deadlock":  {TDeadlock, Property},
	"sync":      {TSync, Old | New},
	"const":     {TConst, Old | New},
	"commit":    {TCommit, Old | New},
	"process":   {TProcess, Old | New},
	"true":      {TTrue, New | Property},
	"state":     {TState, Old | New},
	"system":    {TSystem, Old | New},
	"init":      {TInit, Old | New},
	"false":     {TFalse, New | Property},
	"switch":    {TSwitch, New},
	"if":        {TIf, New},
	"not":       {TBoolNot, Property},
	"case":      {TCase, New},
	"while":     {TWhile, New},
	"or":        {TBoolOr, Property},
	"continue":  {TContinue, New},
	"else":      {TElse, New},
	"imply":     {TImply, Property},
	"for":       {TFor, New},
	"break":     {TBreak, New},
	"and":       {TBoolAnd, Property},
	"broadcast": {TBroadcast, Old | New},
	"return":    {TReturn, New},
	"assign":    {TAssign, Old | New},
}

// Result is what Lookup returns on a hit.
type Result struct {
	Token Token
	Mask  Mask
}

// Lookup returns (result, true) if s is a reserved word in some syntax
// variant, or the zero Result and false otherwise. Callers must still
// intersect Mask with the currently active variant before treating the hit
// as reserved — see spec.md §4.1.
func Lookup(s string) (Result, bool) {
	e, ok := table[s]
	if !ok {
		return Result{}, false
	}
	return Result{Token: e.token, Mask: e.mask}, true
}

// Active reports whether mask reserves the word in the given active syntax
// variant(s).
func (m Mask) Active(active Mask) bool { return m&active != 0 }

// Suggest returns the reserved word, among words active in `active`, closest
// to s under Jaro-Winkler similarity, for "did you mean" diagnostics on
// things that almost-but-don't-quite look like a keyword.
func Suggest(s string, active Mask) string {
	const floor = 0.8
	best, bestScore := "", floor
	for word, e := range table {
		if !e.mask.Active(active) {
			continue
		}
		score := smetrics.JaroWinkler(s, word, 0.7, 4)
		if score > bestScore {
			bestScore = score
			best = word
		}
	}
	return best
}

// Tag enumerates the fixed set of recognized XML element names (C1's tag
// recognizer half).
type Tag int

const (
	TagUnknown Tag = iota
	TagNta
	TagImports
	TagDeclaration
	TagTemplate
	TagInstantiation
	TagSystem
	TagName
	TagParameter
	TagLocation
	TagInit
	TagTransition
	TagUrgent
	TagCommitted
	TagSource
	TagTarget
	TagLabel
	TagNail
)

var tagTable = map[string]Tag{
	"nta":            TagNta,
	"imports":        TagImports,
	"declaration":    TagDeclaration,
	"template":       TagTemplate,
	"instantiation":  TagInstantiation,
	"system":         TagSystem,
	"name":           TagName,
	"parameter":      TagParameter,
	"location":       TagLocation,
	"init":           TagInit,
	"transition":     TagTransition,
	"urgent":         TagUrgent,
	"committed":      TagCommitted,
	"source":         TagSource,
	"target":         TagTarget,
	"label":          TagLabel,
	"nail":           TagNail,
}

// LookupTag maps an XML element name to its Tag, or TagUnknown.
func LookupTag(s string) Tag {
	if t, ok := tagTable[s]; ok {
		return t
	}
	return TagUnknown
}

func (t Tag) String() string {
	for name, tag := range tagTable {
		if tag == t {
			return name
		}
	}
	return "unknown"
}
