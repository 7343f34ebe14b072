package ast

import "github.com/txta-go/txta/pkg/types"

// Sync is the channel-synchronisation kind on an edge label.
type Sync int

const (
	SyncNone Sync = iota
	SyncQuery // c?
	SyncBang  // c!
)

// Location is a state of a template, optionally flagged urgent/committed
// and (games-style) winning/losing, with an optional invariant expression.
type Location struct {
	Name      string
	Invariant *Expr // nil if none
	Urgent    bool
	Committed bool
	Winning   bool // UTAP systembuilder.h procStateWinning; see SPEC_FULL.md §4
	Losing    bool // UTAP systembuilder.h procStateLosing
}

// Select is one `id : type` binder introduced on an edge by procSelect.
type Select struct {
	Name string
	Type types.ID
}

// Edge is one transition of a template.
type Edge struct {
	Source        string
	Target        string
	Controllable  bool
	Selects       []Select
	Guard         *Expr // nil if absent
	SyncKind      Sync
	SyncChan      *Expr // nil if SyncKind == SyncNone
	Update        *Expr // nil if absent; a Comma node when multiple assignments
}

// Template is a parameterised process definition.
type Template struct {
	Name        string
	Params      []Select // formal parameters, in the params frame
	Locals      []*Stmt  // local declaration block, rendered as statements
	Locations   []*Location
	Init        string // name of the initial location; "" until procStateInit
	Edges       []*Edge
	UrgentSet   map[string]bool
	CommitSet   map[string]bool
}

// Instantiation binds a concrete process name to a template with actual
// parameters.
type Instantiation struct {
	Name     string
	Template string
	Args     []*Expr
}

// PriorityGroup is one level of channel priority (SPEC_FULL.md §4, from
// UTAP's incChanPriority/chanPriority/defaultChanPriority). Process
// priorities are kept separately, as System.ProcPriority.
type PriorityGroup struct {
	Channels []*Expr // channel expressions at this level (chanPriority)
	Default  bool    // defaultChanPriority marker for this level
}

// System is the root object returned by Builder.Done.
type System struct {
	Templates      []*Template
	Instantiations []*Instantiation
	Processes      []string // the `system` line
	ChanPriority   []PriorityGroup
	ProcPriority   []string // procPriority(name) calls, in order
}
