package diag

import "testing"

func TestCollectorParsesAssemblerStyleMessage(t *testing.T) {
	c := NewCollector()
	c.HandleError("ArityMismatch: Proc1 passed 2 argument(s), template P expects 1")

	if len(c.Diags) != 1 {
		t.Fatalf("expected one diagnostic, got %d", len(c.Diags))
	}
	d := c.Diags[0]
	if d.Kind != "ArityMismatch" {
		t.Fatalf("expected kind ArityMismatch, got %q", d.Kind)
	}
	if d.XPath != "" {
		t.Fatalf("expected no xpath, got %q", d.XPath)
	}
	if d.Severity != SeverityError {
		t.Fatalf("expected error severity, got %q", d.Severity)
	}
	if d.Session != c.Session {
		t.Fatalf("expected diagnostic to carry the collector's session id")
	}
}

func TestCollectorParsesXMLDriverStyleMessage(t *testing.T) {
	c := NewCollector()
	c.HandleError("SiblingOrder: /nta/system[1]: <system> must follow every <template>")

	d := c.Diags[0]
	if d.Kind != "SiblingOrder" {
		t.Fatalf("expected kind SiblingOrder, got %q", d.Kind)
	}
	if d.XPath != "/nta/system[1]" {
		t.Fatalf("expected xpath /nta/system[1], got %q", d.XPath)
	}
	if d.Message != "<system> must follow every <template>" {
		t.Fatalf("unexpected message %q", d.Message)
	}
}

func TestCollectorStringRoundTrips(t *testing.T) {
	for _, raw := range []string{
		"UnknownSymbol: x is not declared",
		"UnclosedTag: /nta/template[1]: 1 element(s) left open at end of document",
	} {
		c := NewCollector()
		c.HandleError(raw)
		if got := c.Diags[0].String(); got != raw {
			t.Fatalf("String() round-trip: want %q, got %q", raw, got)
		}
	}
}

func TestCollectorWarningsAndErrorsSeparate(t *testing.T) {
	c := NewCollector()
	c.HandleWarning("UnusedVariable: y is never read")
	c.HandleError("BadType: cannot assign clock to int")

	if !c.HasErrors() {
		t.Fatalf("expected HasErrors to be true")
	}
	if len(c.Errors()) != 1 || len(c.Warnings()) != 1 {
		t.Fatalf("expected one error and one warning, got %d/%d", len(c.Errors()), len(c.Warnings()))
	}
}
