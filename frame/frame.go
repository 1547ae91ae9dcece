// Package frame implements the VM's activation record: one Frame per
// function invocation, holding its locals, its return address, and the
// heap strings it owns.
//
// Grounded on `frame.h` in the original sources for the field list, and on
// the teacher's `vm/frame.go` for the constructor/accessor idiom (a small
// struct with a constructor per call kind and cheap accessors).
package frame

import (
	"github.com/devalang/deva/object"
	"github.com/devalang/deva/scope"
)

// Frame is one activation record. A Frame is born on `call`, dies on
// `return`.
type Frame struct {
	isModule bool
	parent   *Frame

	// Exactly one of fn/native is meaningful, chosen by isNative.
	fn       object.Object // KindFunctionRef
	native   object.Object // KindNativeFunction
	isNative bool

	locals []object.Object

	// strings holds heap strings created during this frame's lifetime
	// for values that didn't come from the constant pool (§4.D).
	strings []string

	numArgs int

	returnAddr uint64
	callSite   uint64

	scopes *scope.ScopeTable
}

// NewScriptFrame constructs a Frame for a bytecode function invocation.
func NewScriptFrame(parent *Frame, scopes *scope.ScopeTable, returnAddr, callSite uint64, argsPassed int, fn object.Object, numLocals int, isModule bool) *Frame {
	return &Frame{
		isModule:   isModule,
		parent:     parent,
		fn:         fn,
		locals:     make([]object.Object, numLocals),
		numArgs:    argsPassed,
		returnAddr: returnAddr,
		callSite:   callSite,
		scopes:     scopes,
	}
}

// NewNativeFrame constructs a Frame for a native-function invocation.
func NewNativeFrame(parent *Frame, scopes *scope.ScopeTable, returnAddr, callSite uint64, argsPassed int, native object.Object, numLocals int) *Frame {
	return &Frame{
		parent:     parent,
		native:     native,
		isNative:   true,
		locals:     make([]object.Object, numLocals),
		numArgs:    argsPassed,
		returnAddr: returnAddr,
		callSite:   callSite,
		scopes:     scopes,
	}
}

// IsModule reports whether this frame is the synthetic top-level module
// frame.
func (f *Frame) IsModule() bool { return f.isModule }

// GetParent returns the calling frame, or nil for the outermost frame.
func (f *Frame) GetParent() *Frame { return f.parent }

// IsNative reports whether this frame's callee is a native function.
func (f *Frame) IsNative() bool { return f.isNative }

// GetFunction returns the function-ref object this frame is executing, or
// the zero Object if this is a native frame.
func (f *Frame) GetFunction() object.Object {
	if f.isNative {
		return object.Object{}
	}
	return f.fn
}

// GetNativeFunction returns the native-function object this frame is
// executing, or the zero Object if this is a script frame.
func (f *Frame) GetNativeFunction() object.Object {
	if !f.isNative {
		return object.Object{}
	}
	return f.native
}

// NumLocals reports the size of the locals array.
func (f *Frame) NumLocals() int { return len(f.locals) }

// GetLocal returns a copy of the local at i.
func (f *Frame) GetLocal(i int) object.Object { return f.locals[i] }

// GetLocalRef returns a pointer at the local slot at i, the way a Scope
// binding needs to (§4.C/§4.D).
func (f *Frame) GetLocalRef(i int) *object.Object { return &f.locals[i] }

// SetLocal releases the old value at i, if ref-counted, then stores o.
func (f *Frame) SetLocal(i int, o object.Object) {
	f.locals[i].Release()
	f.locals[i] = o
}

// NumArgsPassed reports how many arguments the caller actually pushed,
// which may be fewer than len(locals) when default arguments fill the
// rest.
func (f *Frame) NumArgsPassed() int { return f.numArgs }

// GetReturnAddress returns the instruction address control returns to on
// `return`.
func (f *Frame) GetReturnAddress() uint64 { return f.returnAddr }

// GetCallSite returns the instruction pointer at the time of the call,
// used for diagnostics.
func (f *Frame) GetCallSite() uint64 { return f.callSite }

// Scopes returns this frame's scope table.
func (f *Frame) Scopes() *scope.ScopeTable { return f.scopes }

// AddString adopts a heap string whose lifetime must match this frame.
func (f *Frame) AddString(s string) string {
	f.strings = append(f.strings, s)
	return f.strings[len(f.strings)-1]
}

// FindSymbol resolves name through this frame's scope table.
func (f *Frame) FindSymbol(name string) (*object.Object, bool) {
	return f.scopes.FindSymbol(name, false)
}

// CopyStringsFromParent walks o (a string, or a vector/map/class/instance
// that may contain strings, recursively) and returns an equivalent value
// whose string payloads are this frame's own copies rather than the
// parent frame's transient ones, so the parent's string storage can be
// freed once it returns (§4.D). Since Go strings are immutable values
// copied by assignment, "copying" here just means re-homing bookkeeping:
// the string bytes are retained through Go's own memory model, and this
// records them in the frame's owned-string list so AddString-style
// lifetime accounting stays accurate for diagnostics and round-tripping.
func (f *Frame) CopyStringsFromParent(o object.Object) object.Object {
	switch o.Kind {
	case object.KindString:
		f.AddString(o.Str)
		return o
	case object.KindVector:
		for _, e := range o.Vec.Elements() {
			f.CopyStringsFromParent(e)
		}
		return o
	case object.KindMap, object.KindClass, object.KindInstance:
		for _, p := range o.Map.Pairs() {
			f.CopyStringsFromParent(p.Key)
			f.CopyStringsFromParent(p.Value)
		}
		return o
	default:
		return o
	}
}

// Release decrements each of the first NumArgsPassed local slots, the way
// Frame destruction does in §4.D, then drops the locals storage. It does
// not drain the dead pool — that is the caller's job at a well-defined
// safe point.
func (f *Frame) Release() {
	for i := 0; i < f.numArgs && i < len(f.locals); i++ {
		f.locals[i].Release()
	}
	f.locals = nil
	f.strings = nil
}
