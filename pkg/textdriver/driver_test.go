package textdriver

import (
	"strings"
	"testing"

	"github.com/txta-go/txta/pkg/assembler"
	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
)

// collectingErrors is a minimal ErrorHandler that records every message.
type collectingErrors struct {
	errs, warns []string
}

func (c *collectingErrors) HandleError(msg string)   { c.errs = append(c.errs, msg) }
func (c *collectingErrors) HandleWarning(msg string) { c.warns = append(c.warns, msg) }

func (c *collectingErrors) hasErrorContaining(substr string) bool {
	for _, e := range c.errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func TestParseSimpleSystem(t *testing.T) {
	const src = `
clock x;
chan go;

process P() {
	state L0, L1;
	init L0;
	trans L0 -> L1 { guard x >= 1; sync go!; assign x = 0; };
}

Proc1 = P();
system Proc1;
`
	errs := &collectingErrors{}
	a := assembler.New(errs)
	if ret := ParseXTA(src, a, OldSyntax, StartFile); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	sys, err := a.Done()
	if err != nil {
		t.Fatalf("Done returned error: %v (diagnostics: %v)", err, errs.errs)
	}

	if len(sys.Templates) != 1 || sys.Templates[0].Name != "P" {
		t.Fatalf("expected one template named P, got %+v", sys.Templates)
	}
	tmpl := sys.Templates[0]
	if tmpl.Init != "L0" {
		t.Fatalf("expected init location L0, got %q", tmpl.Init)
	}
	if len(tmpl.Locations) != 2 {
		t.Fatalf("expected two locations, got %d", len(tmpl.Locations))
	}
	if len(tmpl.Edges) != 1 {
		t.Fatalf("expected one edge, got %d", len(tmpl.Edges))
	}
	edge := tmpl.Edges[0]
	if edge.Guard == nil || edge.Update == nil || edge.SyncChan == nil {
		t.Fatalf("expected guard, update and sync set on the edge, got %+v", edge)
	}
	if edge.SyncKind != ast.SyncBang {
		t.Fatalf("expected a bang sync, got %v", edge.SyncKind)
	}
	if len(sys.Instantiations) != 1 || sys.Instantiations[0].Name != "Proc1" {
		t.Fatalf("expected one instantiation named Proc1, got %+v", sys.Instantiations)
	}
	if len(sys.Processes) != 1 || sys.Processes[0] != "Proc1" {
		t.Fatalf("expected system line [Proc1], got %v", sys.Processes)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)
	a.TypeBool(builder.PrefixNone)
	a.DeclVar("a", false)
	a.TypeBool(builder.PrefixNone)
	a.DeclVar("b", false)
	a.TypeBool(builder.PrefixNone)
	a.DeclVar("c", false)

	if ret := ParseXTA("a || b && c", a, OldSyntax, StartExpression); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
}

func TestParseAssignmentIsRightAssociative(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)
	a.TypeInt(builder.PrefixNone)
	a.DeclVar("x", false)
	a.TypeInt(builder.PrefixNone)
	a.DeclVar("y", false)

	if ret := ParseXTA("x = y = 1", a, OldSyntax, StartAssign); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
}

func TestParseParameterList(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)

	n := ParseXTA("int a, bool &b", a, OldSyntax, StartParameters)
	if n != 2 {
		t.Fatalf("expected 2 parameters, got %d (diagnostics: %v)", n, errs.errs)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
}

func TestParseUnknownIdentifierReported(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)

	if ret := ParseXTA("nosuchvar", a, OldSyntax, StartExpression); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	if !errs.hasErrorContaining("unknown identifier") {
		t.Fatalf("expected an unknown-identifier diagnostic, got %v", errs.errs)
	}
}

func TestParseInstantiationArityMismatchThroughGrammar(t *testing.T) {
	const src = `
process P(int n) {
	state L0;
	init L0;
}

Proc1 = P();
system Proc1;
`
	errs := &collectingErrors{}
	a := assembler.New(errs)
	ParseXTA(src, a, OldSyntax, StartFile)
	if _, err := a.Done(); err == nil {
		t.Fatalf("expected Done to report the arity mismatch")
	}
	if !errs.hasErrorContaining("ArityMismatch") {
		t.Fatalf("expected an ArityMismatch diagnostic, got %v", errs.errs)
	}
}

func TestParseSharedDeclaratorTypeDoesNotLeakArrayWrap(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)
	if ret := ParseXTA("int x, y[3];", a, OldSyntax, StartLocalDecl); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
	xID, okX := a.Syms.Resolve("x")
	yID, okY := a.Syms.Resolve("y")
	if !okX || !okY {
		t.Fatalf("expected both x and y to be declared")
	}
	xType, _ := a.Syms.GetType(xID)
	yType, _ := a.Syms.GetType(yID)
	if a.Types.Class(xType) == a.Types.Class(yType) && xType == yType {
		t.Fatalf("expected y's array type to differ from x's plain int type")
	}
}

func TestParseIfElseChainInsideFunctionBody(t *testing.T) {
	errs := &collectingErrors{}
	a := assembler.New(errs)

	const src = `bool f(bool p) { if (p) p = false; else p = true; return p; }`
	if ret := ParseXTA(src, a, OldSyntax, StartLocalDecl); ret != 0 {
		t.Fatalf("ParseXTA returned %d, diagnostics: %v", ret, errs.errs)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
}
