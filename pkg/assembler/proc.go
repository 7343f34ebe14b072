package assembler

import (
	"github.com/txta-go/txta/pkg/ast"
)

// ProcBegin opens a template body. Formal parameters accumulated by prior
// DeclParameter calls (since the last DeclFuncEnd/ProcBegin boundary) move
// onto the new template and the parameter slice resets.
func (a *Assembler) ProcBegin(name string) {
	if a.guardDone("ProcBegin") {
		return
	}
	a.curTemplate = &ast.Template{
		Name:      name,
		Params:    a.params,
		UrgentSet: make(map[string]bool),
		CommitSet: make(map[string]bool),
	}
	a.params = nil
	a.declaredLoc = make(map[string]bool)
	a.locIndex = make(map[string]int)

	a.procFrame = a.Syms.AddFrame()
	a.Syms.ActivateFrame(a.procFrame)
	for _, p := range a.curTemplate.Params {
		if _, err := a.Syms.AddSymbol(p.Name, p.Type, nil); err != nil {
			a.fail(errDuplicateSymbol, "%v", err)
		}
	}
}

func (a *Assembler) ProcEnd() {
	if a.guardDone("ProcEnd") {
		return
	}
	if a.curTemplate == nil {
		a.fail(errSyntax, "procEnd without matching procBegin")
		return
	}
	if a.curTemplate.Init == "" && len(a.curTemplate.Locations) > 0 {
		a.fail(errInitNotDeclared, "template %q has no initial location", a.curTemplate.Name)
	}
	a.curTemplate.Locals = append([]*ast.Stmt(nil), a.stmts...)
	a.stmts = nil

	a.sys.Templates = append(a.sys.Templates, a.curTemplate)
	a.knownProcess[a.curTemplate.Name] = true
	a.curTemplate = nil
	a.declaredLoc = nil
	a.locIndex = nil

	if parent := a.Syms.GetParentFrame(); parent != -1 {
		a.Syms.ActivateFrame(parent)
	}
}

func (a *Assembler) addLocation(name string) *ast.Location {
	if a.curTemplate == nil {
		a.fail(errSyntax, "location %q declared outside a process", name)
		return &ast.Location{Name: name}
	}
	loc := &ast.Location{Name: name}
	a.locIndex[name] = len(a.curTemplate.Locations)
	a.curTemplate.Locations = append(a.curTemplate.Locations, loc)
	a.declaredLoc[name] = true
	return loc
}

func (a *Assembler) ProcState(name string, hasInvariant bool) {
	if a.guardDone("ProcState") {
		return
	}
	var inv *ast.Expr
	if hasInvariant {
		inv = a.popOperand()
	}
	loc := a.addLocation(name)
	loc.Invariant = inv
}

func (a *Assembler) location(name string) (*ast.Location, bool) {
	if a.curTemplate == nil {
		return nil, false
	}
	idx, ok := a.locIndex[name]
	if !ok {
		return nil, false
	}
	return a.curTemplate.Locations[idx], true
}

func (a *Assembler) ProcStateUrgent(name string) {
	if a.guardDone("ProcStateUrgent") {
		return
	}
	loc, ok := a.location(name)
	if !ok {
		a.fail(errStateNotDeclared, "urgent: location %q not declared", name)
		return
	}
	if loc.Committed {
		a.fail(errConflictingFlags, "location %q cannot be both urgent and committed", name)
		return
	}
	loc.Urgent = true
	if a.curTemplate != nil {
		a.curTemplate.UrgentSet[name] = true
	}
}

func (a *Assembler) ProcStateCommit(name string) {
	if a.guardDone("ProcStateCommit") {
		return
	}
	loc, ok := a.location(name)
	if !ok {
		a.fail(errStateNotDeclared, "committed: location %q not declared", name)
		return
	}
	if loc.Urgent {
		a.fail(errConflictingFlags, "location %q cannot be both urgent and committed", name)
		return
	}
	loc.Committed = true
	if a.curTemplate != nil {
		a.curTemplate.CommitSet[name] = true
	}
}

func (a *Assembler) ProcStateInit(name string) {
	if a.guardDone("ProcStateInit") {
		return
	}
	if _, ok := a.location(name); !ok {
		a.fail(errStateNotDeclared, "init: location %q not declared", name)
		return
	}
	if a.curTemplate != nil {
		a.curTemplate.Init = name
	}
}

// ProcStateWinning/Losing are supplemental to spec.md's builder list,
// grounded on UTAP's systembuilder.h procStateWinning/procStateLosing for
// games-style timed automata — see SPEC_FULL.md §4 and DESIGN.md.
func (a *Assembler) ProcStateWinning(name string) {
	if a.guardDone("ProcStateWinning") {
		return
	}
	loc, ok := a.location(name)
	if !ok {
		a.fail(errStateNotDeclared, "winning: location %q not declared", name)
		return
	}
	if loc.Losing {
		a.fail(errConflictingFlags, "location %q cannot be both winning and losing", name)
		return
	}
	loc.Winning = true
}

func (a *Assembler) ProcStateLosing(name string) {
	if a.guardDone("ProcStateLosing") {
		return
	}
	loc, ok := a.location(name)
	if !ok {
		a.fail(errStateNotDeclared, "losing: location %q not declared", name)
		return
	}
	if loc.Winning {
		a.fail(errConflictingFlags, "location %q cannot be both winning and losing", name)
		return
	}
	loc.Losing = true
}

func (a *Assembler) ProcEdgeBegin(from, to string, controllable bool) {
	if a.guardDone("ProcEdgeBegin") {
		return
	}
	if !a.declaredLoc[from] {
		a.fail(errStateNotDeclared, "edge source %q not declared", from)
	}
	if !a.declaredLoc[to] {
		a.fail(errStateNotDeclared, "edge target %q not declared", to)
	}
	a.edgeStack = append(a.edgeStack, &edgeMarks{from: from, to: to, controllable: controllable})

	f := a.Syms.AddFrame()
	a.Syms.ActivateFrame(f)
}

func (a *Assembler) curEdge() *edgeMarks {
	n := len(a.edgeStack)
	if n == 0 {
		a.fail(errSyntax, "no edge under construction")
		return &edgeMarks{}
	}
	return a.edgeStack[n-1]
}

func (a *Assembler) ProcSelect(id string) {
	if a.guardDone("ProcSelect") {
		return
	}
	typ := a.popType()
	if _, err := a.Syms.AddSymbol(id, typ, nil); err != nil {
		a.fail(errDuplicateSymbol, "%v", err)
	}
	e := a.curEdge()
	e.selects = append(e.selects, ast.Select{Name: id, Type: typ})
}

func (a *Assembler) ProcGuard() {
	if a.guardDone("ProcGuard") {
		return
	}
	a.curEdge().guard = a.popOperand()
}

func (a *Assembler) ProcSync(kind ast.Sync) {
	if a.guardDone("ProcSync") {
		return
	}
	e := a.curEdge()
	e.syncKind = kind
	if kind != ast.SyncNone {
		e.syncChan = a.popOperand()
	}
}

func (a *Assembler) ProcUpdate() {
	if a.guardDone("ProcUpdate") {
		return
	}
	a.curEdge().update = a.popOperand()
}

func (a *Assembler) ProcEdgeEnd(from, to string) {
	if a.guardDone("ProcEdgeEnd") {
		return
	}
	n := len(a.edgeStack) - 1
	if n < 0 {
		a.fail(errSyntax, "procEdgeEnd without matching procEdgeBegin")
		return
	}
	e := a.edgeStack[n]
	a.edgeStack = a.edgeStack[:n]

	if e.from != from || e.to != to {
		a.fail(errSyntax, "procEdgeEnd (%s,%s) does not match procEdgeBegin (%s,%s)", from, to, e.from, e.to)
	}

	if parent := a.Syms.GetParentFrame(); parent != -1 {
		a.Syms.ActivateFrame(parent)
	}

	edge := &ast.Edge{
		Source:       e.from,
		Target:       e.to,
		Controllable: e.controllable,
		Selects:      e.selects,
		Guard:        e.guard,
		SyncKind:     e.syncKind,
		SyncChan:     e.syncChan,
		Update:       e.update,
	}
	if a.curTemplate != nil {
		a.curTemplate.Edges = append(a.curTemplate.Edges, edge)
	}
}
