// Package types implements the interned composite-type registry (C2):
// bounded integers, arrays, records, function signatures, templates and
// named aliases, represented as opaque identifiers carrying flag bits.
package types

import "fmt"

// ID is an opaque type identifier. The low bits select a primitive Class or,
// for class >= firstRegistered, an index into a Registry's type table. Three
// high bits carry flags that are orthogonal to class.
type ID int32

// Class enumerates the primitive type classes plus the "is a registry entry"
// sentinel classes (Array, Record, Function, Template, Named).
type Class int32

const (
	Void Class = iota
	Clock
	Int
	Location
	CLocation // committed location
	ULocation // urgent location
	Channel
	UChannel  // urgent channel
	BChannel  // broadcast channel
	UBChannel // urgent broadcast channel
	Template
	Function
	Array
	Record
	Named
	Diff
	Invariant
	Guard
	Constraint
	Process
)

// firstRegistered is the first class id that refers to a Registry entry
// rather than a fixed primitive meaning (UTAP's NO_PREDEFINED).
const firstRegistered Class = 22

const (
	flagConst  Class = 1 << 30
	flagRef    Class = 1 << 29
	flagSEFree Class = 1 << 28
)

const flagMask = flagConst | flagRef | flagSEFree

// entry is one interned composite-type record.
type entry struct {
	class  Class
	lo, hi int     // integer range, valid when class == Int (registered bounded int)
	first  ID      // array: element type; function: domain; named/template: aliased/body
	second ID      // array: size-type; function: range
	fields []Field // record fields, in declaration order
}

// Field is one named field of a record type.
type Field struct {
	Name string
	Type ID
}

// Registry interns composite types and answers structural queries. The zero
// value is not usable; use New.
type Registry struct {
	entries []entry
}

// New returns an empty Registry. Primitive classes (Void .. Process) are
// always valid IDs regardless of a Registry's contents.
func New() *Registry {
	return &Registry{}
}

func classOf(id ID) Class {
	return Class(id) &^ flagMask
}

func flagsOf(id ID) Class {
	return Class(id) & flagMask
}

// Class returns the primitive or registered class of t, ignoring flags.
func (r *Registry) Class(t ID) Class {
	c := classOf(t)
	if c < firstRegistered {
		return c
	}
	idx := int(c - firstRegistered)
	if idx < 0 || idx >= len(r.entries) {
		return c
	}
	return r.entries[idx].class
}

// addEntry interns a new registry entry and returns its flagless ID.
func (r *Registry) addEntry(e entry) ID {
	idx := len(r.entries)
	r.entries = append(r.entries, e)
	return ID(firstRegistered) + ID(idx)
}

// AddInteger interns a new bounded integer type with range [lo, hi].
func (r *Registry) AddInteger(lo, hi int) ID {
	return r.addEntry(entry{class: Int, lo: lo, hi: hi})
}

// AddArray interns array(elementType, sizeType); sizeType is itself a type
// (usually a bounded int) describing the array's index range.
func (r *Registry) AddArray(sizeType, elementType ID) ID {
	return r.addEntry(entry{class: Array, first: elementType, second: sizeType})
}

// AddRecord interns a struct type with the given ordered fields. Returns
// BadType if any field name is empty or repeated.
func (r *Registry) AddRecord(fields []Field) (ID, error) {
	seen := make(map[string]bool, len(fields))
	cp := make([]Field, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return 0, &BadType{Reason: "record field has empty name"}
		}
		if seen[f.Name] {
			return 0, &BadType{Reason: fmt.Sprintf("duplicate record field %q", f.Name)}
		}
		seen[f.Name] = true
		cp[i] = f
	}
	return r.addEntry(entry{class: Record, fields: cp}), nil
}

// AddFunction interns function(domain, range).
func (r *Registry) AddFunction(domain, rng ID) ID {
	return r.addEntry(entry{class: Function, first: domain, second: rng})
}

// AddTemplate interns a template type wrapping a process body type.
func (r *Registry) AddTemplate(body ID) ID {
	return r.addEntry(entry{class: Template, first: body, second: ID(Void)})
}

// AddNamedType interns a named alias of an existing type.
func (r *Registry) AddNamedType(aliased ID) ID {
	return r.addEntry(entry{class: Named, first: aliased, second: ID(Void)})
}

// --- flag editors: idempotent, commute, preserve class ---

// MakeReference sets the reference flag on t.
func (r *Registry) MakeReference(t ID) ID { return t | ID(flagRef) }

// MakeConstant sets the const flag on t.
func (r *Registry) MakeConstant(t ID) ID { return t | ID(flagConst) }

// MakeSideEffectFree sets the side-effect-free flag on t.
func (r *Registry) MakeSideEffectFree(t ID) ID { return t | ID(flagSEFree) }

// ClearReference clears the reference flag on t.
func (r *Registry) ClearReference(t ID) ID { return t &^ ID(flagRef) }

// ClearFlags returns the flagless canonical id for t.
func (r *Registry) ClearFlags(t ID) ID { return t &^ ID(flagMask) }

// --- flag queries ---

func (r *Registry) IsReference(t ID) bool      { return flagsOf(t)&flagRef != 0 }
func (r *Registry) IsConstant(t ID) bool       { return flagsOf(t)&flagConst != 0 }
func (r *Registry) IsSideEffectFree(t ID) bool { return flagsOf(t)&flagSEFree != 0 }

// --- structural queries: all ignore flag bits ---

func (r *Registry) entryOf(t ID) (entry, bool) {
	c := classOf(t)
	if c < firstRegistered {
		return entry{class: c}, true
	}
	idx := int(c - firstRegistered)
	if idx < 0 || idx >= len(r.entries) {
		return entry{}, false
	}
	return r.entries[idx], true
}

// IntegerRange returns the [lo, hi] range of a bounded-integer type.
func (r *Registry) IntegerRange(t ID) (lo, hi int, ok bool) {
	e, found := r.entryOf(t)
	if !found || e.class != Int {
		return 0, 0, false
	}
	return e.lo, e.hi, true
}

// Record returns the ordered field list of a record type.
func (r *Registry) Record(t ID) ([]Field, bool) {
	e, found := r.entryOf(t)
	if !found || e.class != Record {
		return nil, false
	}
	return e.fields, true
}

// FirstSubType returns array-element, function-domain, or named/template body.
func (r *Registry) FirstSubType(t ID) ID {
	e, found := r.entryOf(t)
	if !found {
		return ID(Void)
	}
	return e.first
}

// SecondSubType returns array-size-type, function-range, or Void for
// named/template types.
func (r *Registry) SecondSubType(t ID) ID {
	e, found := r.entryOf(t)
	if !found {
		return ID(Void)
	}
	return e.second
}

// BadType is returned when a registry construction request is ill-formed.
type BadType struct{ Reason string }

func (e *BadType) Error() string { return "bad type: " + e.Reason }

// ClassOf is a free function wrapping the location/channel class-equivalence
// rules from spec.md §4.2: class(ulocation) = class(clocation) = Location,
// class(uchannel) = class(bchannel) = class(ubchannel) = Channel.
func ClassOf(c Class) Class {
	switch c {
	case CLocation, ULocation:
		return Location
	case UChannel, BChannel, UBChannel:
		return Channel
	default:
		return c
	}
}
