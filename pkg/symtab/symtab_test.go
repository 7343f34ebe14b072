package symtab

import (
	"testing"

	"github.com/txta-go/txta/pkg/types"
)

func TestAddSymbolTracksActiveFrame(t *testing.T) {
	tab := New()
	f := tab.AddFrame()
	if err := tab.ActivateFrame(f); err != nil {
		t.Fatalf("ActivateFrame: %v", err)
	}
	id, err := tab.AddSymbol("x", types.ID(types.Int), nil)
	if err != nil {
		t.Fatalf("AddSymbol: %v", err)
	}
	got, err := tab.GetFrameOf(id)
	if err != nil || got != f {
		t.Fatalf("GetFrameOf(%v) = %v, %v; want %v, nil", id, got, err, f)
	}
	local, ok := tab.ResolveLocal("x", f)
	if !ok || local != id {
		t.Fatalf("ResolveLocal failed to find the symbol back")
	}
}

func TestDuplicateInSameFrame(t *testing.T) {
	tab := New()
	if _, err := tab.AddSymbol("a", types.ID(types.Int), nil); err != nil {
		t.Fatalf("first AddSymbol: %v", err)
	}
	_, err := tab.AddSymbol("a", types.ID(types.Int), nil)
	if _, ok := err.(*Duplicate); !ok {
		t.Fatalf("expected *Duplicate, got %v", err)
	}
}

func TestShadowing(t *testing.T) {
	tab := New()
	outer, err := tab.AddSymbol("x", types.ID(types.Int), "outer")
	if err != nil {
		t.Fatalf("AddSymbol outer: %v", err)
	}

	child := tab.AddFrame()
	tab.ActivateFrame(child)
	inner, err := tab.AddSymbol("x", types.ID(types.Clock), "inner")
	if err != nil {
		t.Fatalf("AddSymbol inner: %v", err)
	}

	resolved, ok := tab.Resolve("x")
	if !ok || resolved != inner {
		t.Fatalf("Resolve in child frame should find the shadowing symbol")
	}

	tab.ActivateFrame(RootFrame)
	resolved, ok = tab.Resolve("x")
	if !ok || resolved != outer {
		t.Fatalf("Resolve in root frame should find the outer symbol")
	}
}

func TestSetTypeAndGetNameBadID(t *testing.T) {
	tab := New()
	if err := tab.SetType(99, types.ID(types.Int)); err == nil {
		t.Fatalf("expected BadID for out-of-range id")
	}
	if _, err := tab.GetName(99); err == nil {
		t.Fatalf("expected BadID for out-of-range id")
	}
}

func TestFrameReactivation(t *testing.T) {
	tab := New()
	f1 := tab.AddFrame()
	tab.ActivateFrame(f1)
	tab.AddSymbol("a", types.ID(types.Int), nil)

	f2 := tab.AddFrame()
	tab.ActivateFrame(f2)
	tab.AddSymbol("b", types.ID(types.Int), nil)

	// reactivating f1 should not destroy its contents
	tab.ActivateFrame(f1)
	if _, ok := tab.ResolveLocal("a", f1); !ok {
		t.Fatalf("reactivating a frame should preserve its symbols")
	}
}
