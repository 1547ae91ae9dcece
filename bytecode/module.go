package bytecode

import (
	"github.com/devalang/deva/frame"
	"github.com/devalang/deva/scope"
)

// Module ties a compiled Code blob to the runtime state of one loaded
// deva script: its top-level lexical scope and its top-level (module)
// frame, per §3.
type Module struct {
	Code  *Code
	Scope *scope.Scope
	Frame *frame.Frame
}

// NewModule constructs a Module ready to execute from address 0.
func NewModule(code *Code, sc *scope.Scope, fr *frame.Frame) *Module {
	return &Module{Code: code, Scope: sc, Frame: fr}
}

// Close releases the module's Frame. It does not close m.Scope: callers
// are expected to have already popped this module's scope off the active
// scope table with [scope.ScopeTable.PopModuleScope], which closes it.
func (m *Module) Close() {
	if m.Frame != nil {
		m.Frame.Release()
	}
}
