// Package xmldriver implements the XML ingestion frontend (C8): a
// SAX-style state machine driven by encoding/xml's Decoder.Token(), which
// validates element nesting and sibling order the way the text grammar's
// participle parser validates token order, and forwards each element's
// accumulated character data to pkg/textdriver at the right start symbol.
//
// Grounded on UTAP's xmlreader.cc: the same tag set, the same sibling-order
// rules per parent tag, the same XPath-shaped diagnostic paths, and the same
// `_<id>` placeholder name for an anonymous location. See DESIGN.md for the handful of places this driver simplifies on that
// reference.
package xmldriver

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
	"github.com/txta-go/txta/pkg/keywords"
	"github.com/txta-go/txta/pkg/textdriver"
)

// labelKind is the `kind` attribute of a <label> element.
type labelKind int

const (
	labelNone labelKind = iota
	labelInvariant
	labelGuard
	labelSync
	labelAssign
)

// frame is one open element on the parse stack. Its tag doubles as "the
// current state" in UTAP's sense: the sibling-order rules below switch on
// the parent frame's tag directly rather than on a separate state_t, since
// in this grammar they coincide one-for-one (the root frame's tag is the
// zero value, keywords.TagUnknown, standing in for UTAP's INITIAL state).
type frame struct {
	tag    keywords.Tag
	index  int          // 1-based count of same-tag siblings up to and including this one
	last   keywords.Tag // most recent validated child tag, for ordering checks
	counts map[keywords.Tag]int
	skip   bool // true once this element or an ancestor failed validation
}

// Reader drives a builder.Builder from an XML token stream.
type Reader struct {
	b      builder.Builder
	syntax textdriver.Syntax

	stack []*frame
	body  strings.Builder

	tname, lname string
	id           int
	locations    map[int]string
	procBegun    bool

	invariant strings.Builder
	kind      labelKind
	urgent    bool
	committed bool

	sourceRef, targetRef int
	edgeBegun            bool

	hadError bool
}

// ParseXML reads a full XML document from r and drives b. It never stops at
// the first sibling-order violation — every violation found is reported
// through b.HandleError, and the offending element's subtree is skipped
// (no further Builder calls are made for it) so one bad element does not
// cascade into a wall of derived errors.
func ParseXML(r io.Reader, b builder.Builder, syntax textdriver.Syntax) error {
	rd := &Reader{
		b:         b,
		syntax:    syntax,
		locations: make(map[int]string),
	}
	rd.stack = []*frame{{tag: keywords.TagUnknown, counts: make(map[keywords.Tag]int)}}

	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			rd.fail(errSyntax, "%v", err)
			return fmt.Errorf("xmldriver: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			rd.startElement(t)
		case xml.EndElement:
			rd.endElement(t)
		case xml.CharData:
			rd.characters(t)
		}
	}
	if len(rd.stack) != 1 {
		rd.fail(errUnclosedTag, "%d element(s) left open at end of document", len(rd.stack)-1)
	}
	if rd.hadError {
		return fmt.Errorf("xmldriver: one or more diagnostics were raised")
	}
	return nil
}

type errKind string

const (
	errSyntax        errKind = "SyntaxError"
	errUnknownTag    errKind = "UnknownTag"
	errSiblingOrder  errKind = "SiblingOrder"
	errUnclosedTag   errKind = "UnclosedTag"
	errUnknownSymbol errKind = "UnknownSymbol"
)

func (r *Reader) fail(kind errKind, format string, args ...any) {
	r.hadError = true
	msg := fmt.Sprintf(format, args...)
	r.b.HandleError(fmt.Sprintf("%s: %s: %s", kind, r.xpath(), msg))
}

// xpath renders the current element stack as a 1-based, UTAP-style path
// (/nta/template[2]/location[3]/label[1]), matching ParserState::get().
func (r *Reader) xpath() string {
	if len(r.stack) <= 1 {
		return "/"
	}
	var sb strings.Builder
	for _, f := range r.stack[1:] {
		fmt.Fprintf(&sb, "/%s[%d]", f.tag, f.index)
	}
	return sb.String()
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// symbol returns s trimmed down to a single identifier token (a letter or
// underscore, then letters, digits or underscores), or "" if s is not
// exactly one such token once surrounding whitespace is stripped (mirrors
// UTAP's own symbol() helper).
func symbol(s string) string {
	fields := strings.Fields(s)
	if len(fields) != 1 {
		return ""
	}
	tok := fields[0]
	for i, c := range tok {
		letter := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !letter && (i == 0 || c < '0' || c > '9') {
			return ""
		}
	}
	return tok
}

func isEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// allowedChild reports whether child may open as the next direct child of
// an element whose tag is parentTag, given last (the most recently
// validated sibling tag at this nesting level, or TagUnknown for "none
// yet"). This is the Go rendering of xmlreader.cc's checkSiblings switch.
func allowedChild(parentTag, last, child keywords.Tag) bool {
	switch parentTag {
	case keywords.TagUnknown: // document root
		return child == keywords.TagNta
	case keywords.TagNta:
		switch child {
		case keywords.TagImports:
			return last == keywords.TagUnknown
		case keywords.TagDeclaration:
			return last == keywords.TagUnknown || last == keywords.TagImports
		case keywords.TagTemplate:
			switch last {
			case keywords.TagUnknown, keywords.TagImports, keywords.TagDeclaration, keywords.TagTemplate:
				return true
			}
			return false
		case keywords.TagInstantiation:
			return last == keywords.TagTemplate || last == keywords.TagInstantiation
		case keywords.TagSystem:
			return last == keywords.TagTemplate || last == keywords.TagInstantiation
		}
		return false
	case keywords.TagTemplate:
		switch child {
		case keywords.TagName:
			return last == keywords.TagUnknown
		case keywords.TagParameter:
			return last == keywords.TagName
		case keywords.TagDeclaration:
			return last == keywords.TagName || last == keywords.TagParameter
		case keywords.TagLocation:
			switch last {
			case keywords.TagName, keywords.TagParameter, keywords.TagDeclaration, keywords.TagLocation:
				return true
			}
			return false
		case keywords.TagInit:
			switch last {
			case keywords.TagName, keywords.TagParameter, keywords.TagDeclaration, keywords.TagLocation:
				return true
			}
			return false
		case keywords.TagTransition:
			switch last {
			case keywords.TagName, keywords.TagParameter, keywords.TagDeclaration, keywords.TagLocation, keywords.TagInit, keywords.TagTransition:
				return true
			}
			return false
		}
		return false
	case keywords.TagLocation:
		switch child {
		case keywords.TagName:
			return last == keywords.TagUnknown
		case keywords.TagLabel:
			return last == keywords.TagUnknown || last == keywords.TagName || last == keywords.TagLabel
		case keywords.TagUrgent, keywords.TagCommitted:
			// UTAP accepts these two unconditionally, with no sibling check.
			return true
		}
		return false
	case keywords.TagTransition:
		switch child {
		case keywords.TagSource:
			return last == keywords.TagUnknown
		case keywords.TagTarget:
			return last == keywords.TagSource
		case keywords.TagLabel:
			return last == keywords.TagTarget || last == keywords.TagLabel
		case keywords.TagNail:
			switch last {
			case keywords.TagTarget, keywords.TagLabel, keywords.TagNail:
				return true
			}
			return false
		}
		return false
	default:
		// Imports, Instantiation, System, Name, Parameter, Init, Label,
		// Urgent, Committed, Source, Target and Nail are leaves in this
		// grammar: none of them ever validates an element child.
		return false
	}
}

func (r *Reader) ensureProcBegun() {
	if r.procBegun {
		return
	}
	r.procBegun = true
	r.b.ProcBegin(r.tname)
}

// ensureEdgeBegun emits ProcEdgeBegin the first time it is called for a
// given <transition>, once both <source> and <target> have set their refs.
// <label> elements dispatch ProcGuard/ProcSync/ProcUpdate onto the edge this
// opens, mirroring pkg/textdriver's walkEdge Begin...labels...End ordering.
func (r *Reader) ensureEdgeBegun() bool {
	if r.edgeBegun {
		return true
	}
	src, srcOK := r.locations[r.sourceRef]
	tgt, tgtOK := r.locations[r.targetRef]
	if !srcOK || !tgtOK {
		r.fail(errUnknownSymbol, "transition refers to an undeclared location id")
		return false
	}
	r.b.ProcEdgeBegin(src, tgt, true)
	r.edgeBegun = true
	return true
}

func (r *Reader) startElement(t xml.StartElement) {
	parent := r.stack[len(r.stack)-1]
	if parent.skip {
		r.stack = append(r.stack, &frame{tag: keywords.TagUnknown, skip: true})
		return
	}

	tag := keywords.LookupTag(t.Name.Local)
	if tag == keywords.TagUnknown {
		r.fail(errUnknownTag, "unknown tag %q", t.Name.Local)
		r.stack = append(r.stack, &frame{tag: keywords.TagUnknown, skip: true})
		return
	}
	if !allowedChild(parent.tag, parent.last, tag) {
		r.fail(errSiblingOrder, "unexpected <%s>", t.Name.Local)
		parent.counts[tag]++
		r.stack = append(r.stack, &frame{tag: tag, index: parent.counts[tag], skip: true})
		return
	}
	parent.last = tag
	parent.counts[tag]++
	childIndex := parent.counts[tag]

	// Parameter declarations must reach the assembler (via DeclParameter,
	// when this tag's body is parsed at its close) before ProcBegin reads
	// and resets them, so <parameter> is excluded here and triggers
	// ensureProcBegun itself, after parsing, in endElement.
	if parent.tag == keywords.TagTemplate && tag != keywords.TagName && tag != keywords.TagParameter {
		r.ensureProcBegun()
	}

	r.body.Reset()
	switch tag {
	case keywords.TagTemplate:
		r.tname = ""
		r.procBegun = false
		r.locations = make(map[int]string)
	case keywords.TagLocation:
		r.lname = ""
		r.kind = labelNone
		r.invariant.Reset()
		r.urgent, r.committed = false, false
		if id, err := strconv.Atoi(attr(t, "id")); err == nil {
			r.id = id
		}
	case keywords.TagInit:
		ref, err := strconv.Atoi(attr(t, "ref"))
		if err != nil {
			break
		}
		name, ok := r.locations[ref]
		if !ok {
			r.fail(errUnknownSymbol, "init refers to undeclared location id %d", ref)
			break
		}
		r.b.ProcStateInit(name)
	case keywords.TagTransition:
		r.kind = labelNone
		r.edgeBegun = false
	case keywords.TagSource:
		if ref, err := strconv.Atoi(attr(t, "ref")); err == nil {
			r.sourceRef = ref
		}
	case keywords.TagTarget:
		if ref, err := strconv.Atoi(attr(t, "ref")); err == nil {
			r.targetRef = ref
		}
	case keywords.TagUrgent:
		r.urgent = true
	case keywords.TagCommitted:
		r.committed = true
	case keywords.TagLabel:
		switch attr(t, "kind") {
		case "invariant":
			r.kind = labelInvariant
		case "guard":
			r.kind = labelGuard
		case "synchronisation":
			r.kind = labelSync
		case "assignment":
			r.kind = labelAssign
		default:
			r.kind = labelNone
		}
	}

	r.stack = append(r.stack, &frame{tag: tag, index: childIndex, counts: make(map[keywords.Tag]int)})
}

func (r *Reader) characters(t xml.CharData) {
	top := r.stack[len(r.stack)-1]
	if top.skip {
		return
	}
	switch top.tag {
	case keywords.TagDeclaration, keywords.TagInstantiation, keywords.TagSystem,
		keywords.TagParameter, keywords.TagName, keywords.TagLabel:
		r.body.Write(t)
	}
}

func (r *Reader) endElement(xml.EndElement) {
	n := len(r.stack) - 1
	top := r.stack[n]
	r.stack = r.stack[:n]
	text := r.body.String()

	if top.skip {
		return
	}

	switch top.tag {
	case keywords.TagTemplate:
		r.ensureProcBegun()
		r.b.ProcEnd()
		r.procBegun = false

	case keywords.TagDeclaration:
		textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartLocalDecl)

	case keywords.TagParameter:
		textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartParameters)
		r.ensureProcBegun()

	case keywords.TagInstantiation:
		textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartSystemLine)

	case keywords.TagSystem:
		textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartSystemLine)

	case keywords.TagName:
		name := symbol(text)
		parent := r.stack[len(r.stack)-1].tag
		switch parent {
		case keywords.TagTemplate:
			r.tname = name
		case keywords.TagLocation:
			r.lname = name
		}

	case keywords.TagLocation:
		name := r.lname
		if name == "" {
			name = fmt.Sprintf("_%d", r.id)
		}
		r.locations[r.id] = name
		if isEmpty(r.invariant.String()) {
			r.b.ExprTrue()
		} else {
			textdriver.ParseXTA(r.invariant.String(), r.b, r.syntax, textdriver.StartInvariant)
		}
		r.b.ProcState(name, true)
		if r.committed {
			r.b.ProcStateCommit(name)
		} else if r.urgent {
			r.b.ProcStateUrgent(name)
		}

	case keywords.TagTarget:
		r.ensureEdgeBegun()

	case keywords.TagTransition:
		if r.ensureEdgeBegun() {
			r.b.ProcEdgeEnd(r.locations[r.sourceRef], r.locations[r.targetRef])
		}

	case keywords.TagLabel:
		switch r.kind {
		case labelInvariant:
			// Invariant labels belong to the enclosing <location>, not a
			// transition, so no edge needs to be under construction here.
			if r.invariant.Len() > 0 {
				r.invariant.WriteString(" && ")
			}
			r.invariant.WriteString(text)
		case labelGuard:
			if !r.ensureEdgeBegun() {
				return
			}
			if isEmpty(text) {
				r.b.ExprTrue()
			} else {
				textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartGuard)
			}
			r.b.ProcGuard()
		case labelSync:
			if !r.ensureEdgeBegun() {
				return
			}
			if isEmpty(text) {
				r.b.ProcSync(ast.SyncNone)
			} else {
				textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartSync)
			}
		case labelAssign:
			if !r.ensureEdgeBegun() {
				return
			}
			if isEmpty(text) {
				r.b.ExprTrue()
			} else {
				textdriver.ParseXTA(text, r.b, r.syntax, textdriver.StartAssign)
			}
			r.b.ProcUpdate()
		}
	}
}
