package assembler

import (
	"fmt"

	"github.com/txta-go/txta/pkg/builder"
	"github.com/txta-go/txta/pkg/types"
)

func (a *Assembler) TypeBool(p builder.Prefix) {
	if a.guardDone("TypeBool") {
		return
	}
	a.pushType(a.applyPrefix(a.Types.AddInteger(0, 1), p))
}

func (a *Assembler) TypeInt(p builder.Prefix) {
	if a.guardDone("TypeInt") {
		return
	}
	a.pushType(a.applyPrefix(types.ID(types.Int), p))
}

func (a *Assembler) TypeBoundedInt(p builder.Prefix) {
	if a.guardDone("TypeBoundedInt") {
		return
	}
	bounds := a.popOperands(2)
	lo, okLo := evalConstInt(bounds[0])
	hi, okHi := evalConstInt(bounds[1])
	if !okLo || !okHi {
		a.fail(errBadType, "bounded integer range must be constant")
		lo, hi = 0, 0
	}
	a.pushType(a.applyPrefix(a.Types.AddInteger(lo, hi), p))
}

func (a *Assembler) TypeScalar(p builder.Prefix) {
	if a.guardDone("TypeScalar") {
		return
	}
	count := a.popOperand()
	n, ok := evalConstInt(count)
	if !ok || n < 1 {
		a.fail(errBadType, "scalar count must be a positive constant")
		n = 1
	}
	a.pushType(a.applyPrefix(a.Types.AddInteger(0, n-1), p))
}

func (a *Assembler) TypeChannel(p builder.Prefix) {
	if a.guardDone("TypeChannel") {
		return
	}
	var cls types.Class
	switch p {
	case builder.PrefixUrgent:
		cls = types.UChannel
	case builder.PrefixBroadcast:
		cls = types.BChannel
	case builder.PrefixUrgentBroadcast:
		cls = types.UBChannel
	default:
		cls = types.Channel
	}
	a.pushType(a.applyPrefix(types.ID(cls), p))
}

func (a *Assembler) TypeClock(p builder.Prefix) {
	if a.guardDone("TypeClock") {
		return
	}
	a.pushType(a.applyPrefix(types.ID(types.Clock), p))
}

func (a *Assembler) TypeVoid(p builder.Prefix) {
	if a.guardDone("TypeVoid") {
		return
	}
	a.pushType(a.applyPrefix(types.ID(types.Void), p))
}

func (a *Assembler) TypeName(p builder.Prefix, name string) {
	if a.guardDone("TypeName") {
		return
	}
	id, ok := a.Syms.Resolve(name)
	if !ok {
		a.fail(errUnknownSymbol, "unknown type name %q%s", name, a.suggestSuffix(name))
		a.pushType(types.ID(types.Void))
		return
	}
	symType, _ := a.Syms.GetType(id)
	if a.Types.Class(symType) != types.Named {
		a.fail(errBadType, "%q does not name a type", name)
		a.pushType(types.ID(types.Void))
		return
	}
	a.pushType(a.applyPrefix(a.Types.FirstSubType(symType), p))
}

func (a *Assembler) suggestSuffix(name string) string {
	if s := a.Syms.Suggest(name); s != "" {
		return fmt.Sprintf(" (did you mean %q?)", s)
	}
	return ""
}

// TypeArrayOfSize applies n array dimensions, each sized by a constant
// natural-number operand already on the operand stack (innermost dimension
// popped first), wrapping the element type currently on top of the type
// stack.
func (a *Assembler) TypeArrayOfSize(n int) {
	if a.guardDone("TypeArrayOfSize") {
		return
	}
	elem := a.popType()
	for i := 0; i < n; i++ {
		sizeExpr := a.popOperand()
		sz, ok := evalConstInt(sizeExpr)
		if !ok || sz < 1 {
			a.fail(errBadType, "array size must be a positive constant")
			sz = 1
		}
		sizeType := a.Types.AddInteger(0, sz-1)
		elem = a.Types.AddArray(sizeType, elem)
	}
	a.pushType(elem)
}

// TypeArrayOfType applies n array dimensions whose size-types are already on
// the type stack (e.g. a named range type used as an array index), wrapping
// the element type below them.
func (a *Assembler) TypeArrayOfType(n int) {
	if a.guardDone("TypeArrayOfType") {
		return
	}
	sizeTypes := make([]types.ID, n)
	for i := n - 1; i >= 0; i-- {
		sizeTypes[i] = a.popType()
	}
	elem := a.popType()
	for i := n - 1; i >= 0; i-- {
		elem = a.Types.AddArray(sizeTypes[i], elem)
	}
	a.pushType(elem)
}

// StructField records one pending record field name; its type must already
// be on the type stack. Supplemental to spec.md's builder list, grounded on
// UTAP's systembuilder.h structField(name) — see DESIGN.md.
func (a *Assembler) StructField(name string) {
	if a.guardDone("StructField") {
		return
	}
	a.fieldNames = append(a.fieldNames, name)
}

func (a *Assembler) TypeStruct(p builder.Prefix, fieldCount int) {
	if a.guardDone("TypeStruct") {
		return
	}
	if len(a.fieldNames) < fieldCount || len(a.typeStack) < fieldCount {
		a.fail(errBadType, "typeStruct: not enough pending fields")
		fieldCount = min(len(a.fieldNames), len(a.typeStack))
	}
	fieldTypes := make([]types.ID, fieldCount)
	for i := fieldCount - 1; i >= 0; i-- {
		fieldTypes[i] = a.popType()
	}
	names := a.fieldNames[len(a.fieldNames)-fieldCount:]
	a.fieldNames = a.fieldNames[:len(a.fieldNames)-fieldCount]

	fields := make([]types.Field, fieldCount)
	for i := 0; i < fieldCount; i++ {
		fields[i] = types.Field{Name: names[i], Type: fieldTypes[i]}
	}
	rec, err := a.Types.AddRecord(fields)
	if err != nil {
		a.fail(errBadType, "%v", err)
	}
	a.pushType(a.applyPrefix(rec, p))
}

func (a *Assembler) TypeDuplicate() {
	if a.guardDone("TypeDuplicate") {
		return
	}
	if len(a.typeStack) == 0 {
		a.fail(errSyntax, "type stack underflow")
		return
	}
	a.pushType(a.typeStack[len(a.typeStack)-1])
}

func (a *Assembler) TypePop() {
	if a.guardDone("TypePop") {
		return
	}
	a.popType()
}

