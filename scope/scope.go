// Package scope implements the lexical name-to-slot bindings the deva
// virtual machine resolves identifiers through: a [Scope] per function,
// module or block, and a [ScopeTable] stack of them chained outward.
//
// A Scope never owns the storage it names — it only indexes into a
// Frame's locals array (for data) or the executor's function table (for
// functions), the way `scopetable.h` describes it. That means a Scope's
// only responsibility at teardown is to release the reference count it
// implied for any ref-counted value still bound in it; the value's actual
// storage is freed (or not) by whoever owns the slot.
package scope

import "github.com/devalang/deva/object"

// Kind classifies what a Scope was opened for.
type Kind int

// Scope kinds.
const (
	// Block is a plain, non-function, non-module scope — opened by
	// `enter`, closed by `leave`.
	Block Kind = iota
	// Function is the outermost scope of a function body.
	Function
	// Module is a top-level module scope, which requires two-phase
	// teardown (§4.C): data first, then the scope object itself, because
	// destructors of user objects may call back into the scope.
	Module
)

// LocalsProvider is the minimal surface of a Frame that
// [Scope.FindSymbolIndex] needs: just enough to walk a frame's locals
// looking for the slot a binding points at. Defined here, rather than
// importing the frame package directly, to avoid a scope<->frame import
// cycle (a Frame holds a *ScopeTable, per §3).
type LocalsProvider interface {
	NumLocals() int
	GetLocalRef(i int) *object.Object
}

// Scope owns a map from name to a pointer at an Object slot living
// elsewhere (a Frame's locals array or the executor's function table).
type Scope struct {
	kind Kind
	data map[string]*object.Object
	// order preserves insertion order for GetFunctions and rendering;
	// the C++ source's std::map iterated in key order instead, but Go
	// maps don't, so callers that need a stable function enumeration
	// order rely on this.
	order []string
}

// New creates an empty scope of the given kind.
func New(kind Kind) *Scope {
	return &Scope{kind: kind, data: make(map[string]*object.Object)}
}

// IsFunction reports whether this is a function-body scope.
func (s *Scope) IsFunction() bool { return s.kind == Function }

// IsModule reports whether this is a module top-level scope.
func (s *Scope) IsModule() bool { return s.kind == Module }

// AddSymbol binds name to slot in this scope. slot must point at a Frame
// local or an executor function-table entry. If name is already bound in
// this scope, the existing binding is erased first — same-scope shadowing
// is forbidden by the compiler, so this is defensive (§4.C).
func (s *Scope) AddSymbol(name string, slot *object.Object) {
	if _, ok := s.data[name]; !ok {
		s.order = append(s.order, name)
	}
	s.data[name] = slot
}

// AddFunction binds name to a function-table slot; it is AddSymbol under
// another name, kept distinct for readability at call sites the way the
// original `AddFunction` wrapper was.
func (s *Scope) AddFunction(name string, slot *object.Object) { s.AddSymbol(name, slot) }

// FindSymbol resolves name within this scope only (no outward walk).
func (s *Scope) FindSymbol(name string) (*object.Object, bool) {
	slot, ok := s.data[name]
	return slot, ok
}

// FindSymbolName performs the reverse lookup: the name bound to slot
// within this scope, if any.
func (s *Scope) FindSymbolName(slot *object.Object) (string, bool) {
	for _, name := range s.order {
		if s.data[name] == slot {
			return name, true
		}
	}
	return "", false
}

// FindSymbolIndex returns the frame-local index of the slot this binding
// points at, or -1 if slot does not belong to f's locals.
func (s *Scope) FindSymbolIndex(slot *object.Object, f LocalsProvider) int {
	for i := 0; i < f.NumLocals(); i++ {
		if f.GetLocalRef(i) == slot {
			return i
		}
	}
	return -1
}

// GetFunctions enumerates all bindings in this scope whose target is a
// function (a function-ref or native-function object), in declaration
// order.
func (s *Scope) GetFunctions() []*object.Object {
	var fns []*object.Object
	for _, name := range s.order {
		slot := s.data[name]
		if slot.Kind == object.KindFunctionRef || slot.Kind == object.KindNativeFunction {
			fns = append(fns, slot)
		}
	}
	return fns
}

// Close releases this scope's hold on its bindings: every ref-counted
// value still bound here is [object.Object.Release]d, and non-ref
// function slots are left untouched (§4.C). It does not free the slot
// storage itself — that belongs to whoever owns the Frame or function
// table the slot points into.
func (s *Scope) Close() {
	for _, name := range s.order {
		slot := s.data[name]
		if slot != nil {
			slot.Release()
		}
	}
	s.data = nil
	s.order = nil
}
