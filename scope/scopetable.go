package scope

import "github.com/devalang/deva/object"

// ScopeTable is a stack of [Scope]s, innermost last. Lookup walks outward
// from the top of the stack.
type ScopeTable struct {
	scopes []*Scope
}

// NewScopeTable creates an empty scope table.
func NewScopeTable() *ScopeTable { return &ScopeTable{} }

// PushScope opens a new innermost scope.
func (t *ScopeTable) PushScope(s *Scope) { t.scopes = append(t.scopes, s) }

// PopScope closes and discards the innermost scope, releasing its
// ref-counted bindings (§4.C, §4.E `leave`).
func (t *ScopeTable) PopScope() {
	n := len(t.scopes)
	if n == 0 {
		return
	}
	t.scopes[n-1].Close()
	t.scopes = t.scopes[:n-1]
}

// PopModuleScope performs the two-phase module teardown from §4.C:
// release the module scope's data, then drop the scope object itself.
// Separate from PopScope because a module's Close may run destructors
// that call back into the scope table looking for other module bindings
// — data must be gone from this scope before the scope itself is, but
// the scope object must still exist while that data is being released.
func (t *ScopeTable) PopModuleScope() {
	n := len(t.scopes)
	if n == 0 {
		return
	}
	t.scopes[n-1].Close()
	t.scopes = t.scopes[:n-1]
}

// CurrentScope returns the innermost scope.
func (t *ScopeTable) CurrentScope() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

// At returns the scope at absolute index idx (0 = outermost).
func (t *ScopeTable) At(idx int) *Scope { return t.scopes[idx] }

// Depth reports the number of open scopes.
func (t *ScopeTable) Depth() int { return len(t.scopes) }

// FindSymbol resolves name, walking outward from the innermost scope
// unless localOnly restricts resolution to the innermost scope.
func (t *ScopeTable) FindSymbol(name string, localOnly bool) (*object.Object, bool) {
	if len(t.scopes) == 0 {
		return nil, false
	}
	if localOnly {
		return t.scopes[len(t.scopes)-1].FindSymbol(name)
	}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if slot, ok := t.scopes[i].FindSymbol(name); ok {
			return slot, true
		}
	}
	return nil, false
}

// FindExternSymbol resolves name starting one scope out from the
// innermost, skipping it — used to reach a shadowed outer binding.
func (t *ScopeTable) FindExternSymbol(name string) (*object.Object, bool) {
	for i := len(t.scopes) - 2; i >= 0; i-- {
		if slot, ok := t.scopes[i].FindSymbol(name); ok {
			return slot, true
		}
	}
	return nil, false
}

// FindSymbolName performs the reverse lookup across the table, walking
// outward from the innermost scope unless localOnly restricts the search.
func (t *ScopeTable) FindSymbolName(slot *object.Object, localOnly bool) (string, bool) {
	if len(t.scopes) == 0 {
		return "", false
	}
	if localOnly {
		return t.scopes[len(t.scopes)-1].FindSymbolName(slot)
	}
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if name, ok := t.scopes[i].FindSymbolName(slot); ok {
			return name, true
		}
	}
	return "", false
}

// FindFunction resolves name the same way FindSymbol does; kept distinct
// for readability at call sites that specifically expect a function
// binding, the way the original scope table's API distinguished the two.
func (t *ScopeTable) FindFunction(name string, localOnly bool) (*object.Object, bool) {
	return t.FindSymbol(name, localOnly)
}
