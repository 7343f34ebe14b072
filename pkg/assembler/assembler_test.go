package assembler

import (
	"strings"
	"testing"

	"github.com/txta-go/txta/pkg/ast"
	"github.com/txta-go/txta/pkg/builder"
)

// collectingErrors is a minimal ErrorHandler that records every message, for
// assertions against specific diagnostics.
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

// buildSimpleClock builds a minimal one-location, one-edge template named
// "P" with a single clock variable, then instantiates and schedules it.
func buildSimpleClock(t *testing.T, a *Assembler) *ast.System {
	t.Helper()
	a.TypeClock(builder.PrefixNone)
	a.DeclVar("x", false)

	a.ProcBegin("P")
	a.ProcState("L0", false)
	a.ProcStateInit("L0")
	a.ProcEdgeBegin("L0", "L0", true)
	a.ExprId("x")
	a.ExprNat(0)
	a.ExprBinary(ast.OpGe)
	a.ProcGuard()
	a.ExprId("x")
	a.ExprNat(0)
	a.ExprAssignment(ast.OpAssign)
	a.ProcUpdate()
	a.ProcEdgeEnd("L0", "L0")
	a.ProcEnd()

	a.InstantiationBegin("Proc1", 0, "P")
	a.InstantiationEnd("Proc1", 0, "P", 0)
	a.Process("Proc1")

	sys, err := a.Done()
	if err != nil {
		t.Fatalf("Done returned error: %v", err)
	}
	return sys
}

func TestAssemblerBuildsSimpleSystem(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	sys := buildSimpleClock(t, a)

	if len(sys.Templates) != 1 || sys.Templates[0].Name != "P" {
		t.Fatalf("expected one template named P, got %+v", sys.Templates)
	}
	tmpl := sys.Templates[0]
	if tmpl.Init != "L0" {
		t.Fatalf("expected init location L0, got %q", tmpl.Init)
	}
	if len(tmpl.Edges) != 1 {
		t.Fatalf("expected one edge, got %d", len(tmpl.Edges))
	}
	edge := tmpl.Edges[0]
	if edge.Guard == nil || edge.Update == nil {
		t.Fatalf("expected guard and update set on the edge")
	}
	if len(sys.Instantiations) != 1 || sys.Instantiations[0].Name != "Proc1" {
		t.Fatalf("expected one instantiation named Proc1, got %+v", sys.Instantiations)
	}
	if len(sys.Processes) != 1 || sys.Processes[0] != "Proc1" {
		t.Fatalf("expected system line [Proc1], got %v", sys.Processes)
	}
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics, got %v", errs.errs)
	}
}

func TestProcEdgeRejectsUndeclaredEndpoints(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.ProcBegin("P")
	a.ProcState("L0", false)
	a.ProcStateInit("L0")
	a.ProcEdgeBegin("L0", "L1", true)
	a.ProcEdgeEnd("L0", "L1")
	a.ProcEnd()
	if _, err := a.Done(); err == nil {
		t.Fatalf("expected Done to report an error")
	}
	if !errs.hasErrorContaining("StateNotDeclared") {
		t.Fatalf("expected a StateNotDeclared diagnostic, got %v", errs.errs)
	}
}

func TestUrgentAndCommittedConflict(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.ProcBegin("P")
	a.ProcState("L0", false)
	a.ProcStateUrgent("L0")
	a.ProcStateCommit("L0")
	a.ProcStateInit("L0")
	a.ProcEnd()
	if !errs.hasErrorContaining("ConflictingStateFlags") {
		t.Fatalf("expected a ConflictingStateFlags diagnostic, got %v", errs.errs)
	}
}

func TestWinningAndLosingConflict(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.ProcBegin("P")
	a.ProcState("L0", false)
	a.ProcStateWinning("L0")
	a.ProcStateLosing("L0")
	a.ProcStateInit("L0")
	a.ProcEnd()
	if !errs.hasErrorContaining("ConflictingStateFlags") {
		t.Fatalf("expected a ConflictingStateFlags diagnostic for winning/losing, got %v", errs.errs)
	}
}

func TestInstantiationArityMismatch(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)

	a.TypeInt(builder.PrefixNone)
	a.DeclParameter("n", false)
	a.ProcBegin("P")
	a.ProcState("L0", false)
	a.ProcStateInit("L0")
	a.ProcEnd()

	a.InstantiationBegin("Proc1", 1, "P")
	a.InstantiationEnd("Proc1", 1, "P", 0)

	if !errs.hasErrorContaining("ArityMismatch") {
		t.Fatalf("expected an ArityMismatch diagnostic, got %v", errs.errs)
	}
}

func TestDirectRecursionRejected(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)

	a.TypeInt(builder.PrefixNone)
	a.DeclFuncBegin("f")
	a.ExprId("f")
	a.ExprCallBegin()
	a.ExprCallEnd(0)
	a.ExprStatement()
	a.DeclFuncEnd()

	if !errs.hasErrorContaining("RecursiveFunction") {
		t.Fatalf("expected a RecursiveFunction diagnostic, got %v", errs.errs)
	}
}

func TestBlockBalanceEnforcedAtDone(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.BlockBegin()
	a.ExprTrue()
	a.ExprStatement()
	if _, err := a.Done(); err == nil {
		t.Fatalf("expected Done to report the unclosed block")
	}
}

func TestCallsAfterDoneAreRejected(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	if _, err := a.Done(); err != nil {
		t.Fatalf("unexpected error on empty Done: %v", err)
	}
	a.ExprTrue()
	if !errs.hasErrorContaining("AfterDone") {
		t.Fatalf("expected an AfterDone diagnostic, got %v", errs.errs)
	}
}

func TestDuplicateSymbolInFrame(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.TypeInt(builder.PrefixNone)
	a.DeclVar("x", false)
	a.TypeBool(builder.PrefixNone)
	a.DeclVar("x", false)
	if !errs.hasErrorContaining("DuplicateSymbol") {
		t.Fatalf("expected a DuplicateSymbol diagnostic, got %v", errs.errs)
	}
}

func TestBoundedIntRequiresConstantBounds(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.TypeInt(builder.PrefixNone)
	a.DeclVar("n", false)
	a.ExprNat(0)
	a.ExprId("n")
	a.TypeBoundedInt(builder.PrefixNone)
	if !errs.hasErrorContaining("BadType") {
		t.Fatalf("expected a BadType diagnostic for non-constant bound, got %v", errs.errs)
	}
}

func TestDotOperatorRejectsNonRecordReceiver(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.TypeInt(builder.PrefixNone)
	a.DeclVar("n", false)
	a.ExprId("n")
	a.ExprDot("field")
	if !errs.hasErrorContaining("BadType") {
		t.Fatalf("expected a BadType diagnostic for dot on a non-record, got %v", errs.errs)
	}
}

func TestForAllBindsAndUnbindsQuantifierFrame(t *testing.T) {
	errs := &collectingErrors{}
	a := New(errs)
	a.TypeBool(builder.PrefixNone)
	a.ExprForAllBegin("i")
	a.ExprId("i")
	a.ExprForAllEnd("i")
	if len(errs.errs) != 0 {
		t.Fatalf("expected no diagnostics for a well-formed forall, got %v", errs.errs)
	}
	if _, ok := a.Syms.Resolve("i"); ok {
		t.Fatalf("expected the quantifier binder to go out of scope after ExprForAllEnd")
	}
}
