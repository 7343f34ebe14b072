package assembler

import (
	"errors"

	"github.com/txta-go/txta/pkg/ast"
)

// InstantiationBegin records the pending instantiation's name and template.
// The arity check happens in InstantiationEnd, which compares its own
// paramCount against how many argument operands the driver actually pushed
// (spec.md §4.4 "arity checks").
func (a *Assembler) InstantiationBegin(id string, paramCount int, template string) {
	if a.guardDone("InstantiationBegin") {
		return
	}
	a.instName = id
	a.instTemplate = template
}

func (a *Assembler) InstantiationEnd(id string, paramCount int, template string, argCount int) {
	if a.guardDone("InstantiationEnd") {
		return
	}
	args := a.popOperands(argCount)
	if argCount != paramCount {
		a.fail(errArityMismatch, "instantiation %q passes %d argument(s), template %q expects %d", id, argCount, template, paramCount)
	}
	if !a.knownProcess[template] {
		a.fail(errUnknownSymbol, "instantiation %q refers to undeclared template %q%s", id, template, a.suggestSuffix(template))
	}
	a.sys.Instantiations = append(a.sys.Instantiations, &ast.Instantiation{
		Name:     id,
		Template: template,
		Args:     args,
	})
	a.knownProcess[id] = true
	a.instName, a.instTemplate = "", ""
}

// Process adds one identifier to the `system` line. name must already be
// known as either a template (used directly, with no parameters) or a prior
// instantiation.
func (a *Assembler) Process(name string) {
	if a.guardDone("Process") {
		return
	}
	if !a.knownProcess[name] {
		a.fail(errUnknownSymbol, "system line: %q is not a declared process%s", name, a.suggestSuffix(name))
	}
	a.sys.Processes = append(a.sys.Processes, name)
}

// IncChanPriority opens a new channel-priority level; ChanPriority adds the
// channel expression on top of the operand stack to the current level
// (opening one if none exists), and DefaultChanPriority marks the current
// level as the default level. ProcPriority appends to one flat, ordered
// list of process names; IncProcPriority records no level boundary in it.
// Grounded on UTAP systembuilder.h's
// incProcPriority/incChanPriority/chanPriority/procPriority/
// defaultChanPriority five-method priority protocol.
func (a *Assembler) IncProcPriority() {
	if a.guardDone("IncProcPriority") {
		return
	}
}

func (a *Assembler) IncChanPriority() {
	if a.guardDone("IncChanPriority") {
		return
	}
	a.sys.ChanPriority = append(a.sys.ChanPriority, ast.PriorityGroup{})
}

func (a *Assembler) ChanPriority() {
	if a.guardDone("ChanPriority") {
		return
	}
	if len(a.sys.ChanPriority) == 0 {
		a.IncChanPriority()
	}
	n := len(a.sys.ChanPriority) - 1
	group := &a.sys.ChanPriority[n]
	group.Channels = append(group.Channels, a.popOperand())
}

func (a *Assembler) ProcPriority(name string) {
	if a.guardDone("ProcPriority") {
		return
	}
	if !a.knownProcess[name] {
		a.fail(errUnknownSymbol, "procPriority: %q is not a declared process%s", name, a.suggestSuffix(name))
	}
	a.sys.ProcPriority = append(a.sys.ProcPriority, name)
}

func (a *Assembler) DefaultChanPriority() {
	if a.guardDone("DefaultChanPriority") {
		return
	}
	if len(a.sys.ChanPriority) == 0 {
		a.IncChanPriority()
	}
	n := len(a.sys.ChanPriority) - 1
	a.sys.ChanPriority[n].Default = true
}

// AddPosition records a source-position marker the drivers use to annotate
// subsequent diagnostics. The assembler itself does not track positions
// (that is the diag package's concern once wired to a driver), so this is a
// no-op hook kept to satisfy the Builder interface uniformly.
func (a *Assembler) AddPosition(pos, offset, line int, file string) {
	if a.guardDone("AddPosition") {
		return
	}
}

func (a *Assembler) HandleError(msg string) {
	a.hadError = true
	if a.errHandler != nil {
		a.errHandler.HandleError(msg)
	}
}

func (a *Assembler) HandleWarning(msg string) {
	a.warn("%s", msg)
}

// Done finalises the build: no further Builder calls are permitted
// afterwards (guardDone rejects them with errAfterDone), and the completed
// system is returned together with an aggregate error if any diagnostic was
// raised along the way.
func (a *Assembler) Done() (*ast.System, error) {
	if a.done {
		a.fail(errAfterDone, "Done called twice")
		return a.sys, errors.New("assembler: Done called twice")
	}
	if len(a.blockMarks) != 0 {
		a.fail(errSyntax, "Done called with %d unclosed block(s)", len(a.blockMarks))
	}
	if len(a.edgeStack) != 0 {
		a.fail(errSyntax, "Done called with %d unclosed edge(s)", len(a.edgeStack))
	}
	if a.curTemplate != nil {
		a.fail(errSyntax, "Done called while process %q is still open", a.curTemplate.Name)
	}
	a.done = true
	if a.hadError {
		return a.sys, errors.New("assembler: one or more diagnostics were raised")
	}
	return a.sys, nil
}
