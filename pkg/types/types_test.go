package types

import "testing"

func TestFlagEditorsPreserveClassAndCommute(t *testing.T) {
	r := New()
	base := r.AddInteger(0, 10)

	const_ := r.MakeConstant(base)
	ref := r.MakeReference(const_)
	se := r.MakeSideEffectFree(ref)

	if r.Class(se) != Int {
		t.Fatalf("class changed after flag edits: got %v", r.Class(se))
	}
	if !r.IsConstant(se) || !r.IsReference(se) || !r.IsSideEffectFree(se) {
		t.Fatalf("expected all three flags set, got const=%v ref=%v se=%v",
			r.IsConstant(se), r.IsReference(se), r.IsSideEffectFree(se))
	}

	// commute: order of application doesn't matter
	alt := r.MakeSideEffectFree(r.MakeReference(r.MakeConstant(base)))
	if alt != se {
		t.Fatalf("flag edits should commute: %v != %v", alt, se)
	}

	cleared := r.ClearFlags(se)
	if cleared != base {
		t.Fatalf("ClearFlags should yield the flagless canonical id: got %v want %v", cleared, base)
	}
}

func TestClearReferenceOnly(t *testing.T) {
	r := New()
	base := r.AddInteger(1, 2)
	t2 := r.MakeReference(r.MakeConstant(base))
	t3 := r.ClearReference(t2)
	if r.IsReference(t3) {
		t.Fatalf("expected reference flag cleared")
	}
	if !r.IsConstant(t3) {
		t.Fatalf("expected const flag to survive ClearReference")
	}
}

func TestIntegerRangeIgnoresFlags(t *testing.T) {
	r := New()
	base := r.AddInteger(3, 9)
	flagged := r.MakeConstant(r.MakeReference(base))

	lo, hi, ok := r.IntegerRange(flagged)
	if !ok || lo != 3 || hi != 9 {
		t.Fatalf("IntegerRange(flagged) = %d, %d, %v; want 3, 9, true", lo, hi, ok)
	}
}

func TestRecordRoundTrip(t *testing.T) {
	r := New()
	fields := []Field{
		{Name: "x", Type: ID(Int)},
		{Name: "y", Type: ID(Clock)},
	}
	rec, err := r.AddRecord(fields)
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if r.Class(rec) != Record {
		t.Fatalf("expected class Record, got %v", r.Class(rec))
	}
	got, ok := r.Record(rec)
	if !ok || len(got) != 2 || got[0].Name != "x" || got[1].Name != "y" {
		t.Fatalf("Record() = %+v, ok=%v", got, ok)
	}
}

func TestAddRecordDuplicateFieldFails(t *testing.T) {
	r := New()
	_, err := r.AddRecord([]Field{{Name: "a", Type: ID(Int)}, {Name: "a", Type: ID(Clock)}})
	if err == nil {
		t.Fatalf("expected BadType error for duplicate field")
	}
	if _, ok := err.(*BadType); !ok {
		t.Fatalf("expected *BadType, got %T", err)
	}
}

func TestArraySubTypes(t *testing.T) {
	r := New()
	elem := r.AddInteger(0, 1)
	size := r.AddInteger(0, 4)
	arr := r.AddArray(size, elem)

	if r.Class(arr) != Array {
		t.Fatalf("expected Array class")
	}
	if r.FirstSubType(arr) != elem {
		t.Fatalf("FirstSubType(array) should be the element type")
	}
	if r.SecondSubType(arr) != size {
		t.Fatalf("SecondSubType(array) should be the size type")
	}
}

func TestFunctionSubTypes(t *testing.T) {
	r := New()
	domain := r.AddInteger(0, 1)
	rng := ID(Void)
	fn := r.AddFunction(domain, rng)

	if r.SecondSubType(fn) != rng {
		t.Fatalf("SecondSubType(function) should be the range")
	}
}

func TestTemplateSecondSubTypeIsVoid(t *testing.T) {
	r := New()
	tmpl := r.AddTemplate(ID(Process))
	if r.SecondSubType(tmpl) != ID(Void) {
		t.Fatalf("SecondSubType(template) should be Void")
	}
}

func TestLocationAndChannelClassEquivalence(t *testing.T) {
	cases := []struct {
		c    Class
		want Class
	}{
		{CLocation, Location},
		{ULocation, Location},
		{UChannel, Channel},
		{BChannel, Channel},
		{UBChannel, Channel},
		{Int, Int},
	}
	for _, tc := range cases {
		if got := ClassOf(tc.c); got != tc.want {
			t.Errorf("ClassOf(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestPrimitiveQueryYieldsItself(t *testing.T) {
	r := New()
	if r.Class(ID(Clock)) != Clock {
		t.Fatalf("querying a primitive id should yield itself")
	}
}
