// Package symtab implements the lexically nested symbol table (C3): dense
// integer symbol ids, append-only frames, and shadowed name resolution.
//
// The scope-stack idea is the same one the teacher's semantic analyzer uses
// (a stack of name sets, pushed per block and popped on exit), generalized
// here so frames carry full symbol records and survive reactivation instead
// of being torn down with the stack.
package symtab

import (
	"fmt"

	"github.com/xrash/smetrics"

	"github.com/txta-go/txta/pkg/types"
)

// ID is a dense symbol identifier, assigned by insertion order.
type ID int

// FrameID indexes into the table's frame vector. The root frame is 0.
type FrameID int

const NoFrame FrameID = -1

// Symbol is one declared name.
type Symbol struct {
	ID      ID
	Frame   FrameID
	Name    string
	Type    types.ID
	Payload any
}

type frame struct {
	parent FrameID
	names  map[string]ID
}

// Table is a nested-scope symbol table. The zero value is not usable; use
// New.
type Table struct {
	symbols []Symbol
	frames  []frame
	current FrameID
}

// New returns a Table with a single root frame, active.
func New() *Table {
	t := &Table{
		frames: []frame{{parent: NoFrame, names: make(map[string]ID)}},
	}
	t.current = 0
	return t
}

// RootFrame is always 0.
const RootFrame FrameID = 0

// Duplicate is returned by AddSymbol when name already resolves locally.
type Duplicate struct{ Name string }

func (e *Duplicate) Error() string { return fmt.Sprintf("duplicate symbol %q in current frame", e.Name) }

// BadID is returned by accessors given an id outside the valid range.
type BadID struct{ ID any }

func (e *BadID) Error() string { return fmt.Sprintf("invalid symbol id %v", e.ID) }

// AddSymbol inserts name into the active frame.
func (t *Table) AddSymbol(name string, typ types.ID, payload any) (ID, error) {
	if _, ok := t.ResolveLocal(name, t.current); ok {
		return 0, &Duplicate{Name: name}
	}
	id := ID(len(t.symbols))
	t.symbols = append(t.symbols, Symbol{ID: id, Frame: t.current, Name: name, Type: typ, Payload: payload})
	t.frames[t.current].names[name] = id
	return id, nil
}

// Resolve walks from the active frame to the root, returning the first hit.
func (t *Table) Resolve(name string) (ID, bool) {
	for f := t.current; f != NoFrame; f = t.frames[f].parent {
		if id, ok := t.frames[f].names[name]; ok {
			return id, true
		}
	}
	return 0, false
}

// ResolveLocal looks up name in exactly one frame, no shadowing walk.
func (t *Table) ResolveLocal(name string, f FrameID) (ID, bool) {
	if int(f) < 0 || int(f) >= len(t.frames) {
		return 0, false
	}
	id, ok := t.frames[f].names[name]
	return id, ok
}

func (t *Table) valid(id ID) bool { return int(id) >= 0 && int(id) < len(t.symbols) }

// GetName returns the symbol's declared name.
func (t *Table) GetName(id ID) (string, error) {
	if !t.valid(id) {
		return "", &BadID{ID: id}
	}
	return t.symbols[id].Name, nil
}

// GetType returns the symbol's current type.
func (t *Table) GetType(id ID) (types.ID, error) {
	if !t.valid(id) {
		return 0, &BadID{ID: id}
	}
	return t.symbols[id].Type, nil
}

// SetType overwrites the symbol's type.
func (t *Table) SetType(id ID, typ types.ID) error {
	if !t.valid(id) {
		return &BadID{ID: id}
	}
	t.symbols[id].Type = typ
	return nil
}

// GetPayload returns the symbol's opaque payload.
func (t *Table) GetPayload(id ID) (any, error) {
	if !t.valid(id) {
		return nil, &BadID{ID: id}
	}
	return t.symbols[id].Payload, nil
}

// SetPayload overwrites the symbol's opaque payload.
func (t *Table) SetPayload(id ID, payload any) error {
	if !t.valid(id) {
		return &BadID{ID: id}
	}
	t.symbols[id].Payload = payload
	return nil
}

// AddFrame creates a new child frame of the active frame. It does not
// activate the new frame.
func (t *Table) AddFrame() FrameID {
	id := FrameID(len(t.frames))
	t.frames = append(t.frames, frame{parent: t.current, names: make(map[string]ID)})
	return id
}

// ActivateFrame makes f the active frame for subsequent AddSymbol/Resolve
// calls. f must already exist.
func (t *Table) ActivateFrame(f FrameID) error {
	if int(f) < 0 || int(f) >= len(t.frames) {
		return &BadID{ID: f}
	}
	t.current = f
	return nil
}

// GetActiveFrame returns the currently active frame.
func (t *Table) GetActiveFrame() FrameID { return t.current }

// GetParentFrame returns the parent of f (or of the active frame, if no id
// is given). Returns NoFrame for the root.
func (t *Table) GetParentFrame(f ...FrameID) FrameID {
	target := t.current
	if len(f) > 0 {
		target = f[0]
	}
	if int(target) < 0 || int(target) >= len(t.frames) {
		return NoFrame
	}
	return t.frames[target].parent
}

// GetFrameOf returns the frame a symbol was inserted into.
func (t *Table) GetFrameOf(id ID) (FrameID, error) {
	if !t.valid(id) {
		return NoFrame, &BadID{ID: id}
	}
	return t.symbols[id].Frame, nil
}

// Suggest returns the declared name, among names visible from the active
// frame, closest to query under Jaro-Winkler similarity — used to annotate
// UnknownSymbol diagnostics with a "did you mean" hint. Returns "" if the
// table has no visible names or none clear a similarity floor.
func (t *Table) Suggest(query string) string {
	const floor = 0.75
	best := ""
	bestScore := floor
	for f := t.current; f != NoFrame; f = t.frames[f].parent {
		for name := range t.frames[f].names {
			score := smetrics.JaroWinkler(query, name, 0.7, 4)
			if score > bestScore {
				bestScore = score
				best = name
			}
		}
	}
	return best
}
