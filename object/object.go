// Package object defines the runtime value representation for the deva
// virtual machine.
//
// Every value the VM ever touches — a stack slot, a frame local, a map key,
// a map or vector element — is an [Object]: a small tagged union covering
// numbers, strings, booleans, null, vectors, maps, classes, instances,
// function references, native functions and raw offsets. Object is a
// struct, not an interface: unlike a tree-walking evaluator's value types,
// every Object needs the same ref-count bookkeeping and the same total-order
// comparison regardless of its variant, and an interface-per-variant design
// would scatter that logic across a dozen types instead of keeping it next
// to the tag.
//
// Vectors, maps, classes and instances are reference-counted (see the
// sibling [refcounted] package); all other variants are copied by value.
package object

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/devalang/deva/refcounted"
)

// Kind identifies which payload field of an [Object] is live.
type Kind byte

// Object variant kinds, in the total-order's tag ordinal order (§3).
const (
	KindNumber Kind = iota
	KindString
	KindBoolean
	KindNull
	KindVector
	KindMap
	KindClass
	KindInstance
	KindFunctionRef
	KindNativeFunction
	KindOffset
	KindUnknown
)

// String names the [Kind] for diagnostics and canonical rendering.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	case KindVector:
		return "vector"
	case KindMap:
		return "map"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	case KindFunctionRef:
		return "function-ref"
	case KindNativeFunction:
		return "native-function"
	case KindOffset:
		return "offset"
	case KindUnknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// NativeFunction is a host function pointer plus the method flag the call
// protocol needs to know whether to pass an implicit receiver.
type NativeFunction struct {
	Fn       func(ex Executor, args []Object) (Object, error)
	IsMethod bool
}

// Executor is the minimal surface a native function or built-in needs from
// the VM: it never reaches into the operand stack or call stack directly,
// only through this interface. No type in this repository implements it.
type Executor interface {
	// Print writes the canonical rendering of an argument followed by a
	// newline, the way the `print` built-in does.
	Print(args ...Object)
	// Eval compiles and runs source text in the current scope, the way
	// the `eval` built-in does, returning the resulting value.
	Eval(source string) (Object, error)
	// DeleteSymbol removes a binding from the innermost scope that holds
	// it, decrementing if ref-counted.
	DeleteSymbol(name string) error
}

// Object is a single runtime value. The zero Object is the number 0
// (KindNumber is the first kind); use [Null] for null.
type Object struct {
	Kind Kind

	Num  float64
	Str  string
	Bool bool

	// Vec and Map back the vector/map/class/instance variants. Only one
	// is live at a time, chosen by Kind.
	Vec *refcounted.Vector[Object]
	Map *refcounted.Map[Object]

	// Name carries the class/instance display name and the unknown
	// variant's symbolic name.
	Name string

	FuncRef int
	Native  NativeFunction
	Offset  uint64
}

// Null is the canonical null object.
var Null = Object{Kind: KindNull}

// True and False are the canonical boolean objects.
var (
	True  = Object{Kind: KindBoolean, Bool: true}
	False = Object{Kind: KindBoolean, Bool: false}
)

// NewNumber constructs a number object.
func NewNumber(n float64) Object { return Object{Kind: KindNumber, Num: n} }

// NewString constructs a string object. Go strings are immutable, so the
// "copied by value" contract in §3 is satisfied without an explicit clone.
func NewString(s string) Object { return Object{Kind: KindString, Str: s} }

// NewBool constructs a boolean object.
func NewBool(b bool) Object {
	if b {
		return True
	}
	return False
}

// NewOffset constructs an offset object (an instruction address or size).
func NewOffset(n uint64) Object { return Object{Kind: KindOffset, Offset: n} }

// NewFunctionRef constructs a function-ref object indexing the Code's
// function table.
func NewFunctionRef(idx int) Object { return Object{Kind: KindFunctionRef, FuncRef: idx} }

// NewNativeFunction constructs a native-function object.
func NewNativeFunction(nf NativeFunction) Object { return Object{Kind: KindNativeFunction, Native: nf} }

// NewUnknown constructs an unknown placeholder, the compiler's way of
// deferring identifier resolution to the runtime (§9).
func NewUnknown(name string) Object { return Object{Kind: KindUnknown, Name: name} }

// NewVector constructs a vector object wrapping a freshly ref-counted,
// empty vector (refcount 1, owned by the caller).
func NewVector() Object {
	v := refcounted.NewVector[Object]()
	v.IncRef()
	return Object{Kind: KindVector, Vec: v}
}

// NewVectorFrom wraps an existing ref-counted vector, incrementing its
// count for the new handle.
func NewVectorFrom(v *refcounted.Vector[Object]) Object {
	v.IncRef()
	return Object{Kind: KindVector, Vec: v}
}

// NewMap constructs a map object wrapping a freshly ref-counted, empty map.
func NewMap() Object {
	m := refcounted.NewMap[Object](compareObjects)
	m.IncRef()
	return Object{Kind: KindMap, Map: m}
}

// NewMapFrom wraps an existing ref-counted map, incrementing its count.
func NewMapFrom(m *refcounted.Map[Object]) Object {
	m.IncRef()
	return Object{Kind: KindMap, Map: m}
}

// NewClass constructs a class object: a map marked as a class (§3).
func NewClass(name string) Object {
	m := refcounted.NewMap[Object](compareObjects)
	m.IncRef()
	return Object{Kind: KindClass, Map: m, Name: name}
}

// NewInstance constructs an instance of class by shallow-copying its map
// (§3: "inherits keys from its class at construction"). Values that are
// themselves ref-counted are ref-incremented by the copy.
func NewInstance(class Object) Object {
	m := CopyMap(class.Map)
	m.IncRef()
	return Object{Kind: KindInstance, Map: m, Name: class.Name}
}

// CopyVector returns a shallow, independent copy of v: a new backing array
// whose elements retain the shared identity of v's elements (§4.B, §4.F).
func CopyVector(v *refcounted.Vector[Object]) *refcounted.Vector[Object] {
	out := v.NewVectorCopy()
	for _, e := range out.Elements() {
		e.Retain()
	}
	return out
}

// CopyMap returns a shallow, independent copy of m: new backing storage
// whose keys and values retain the shared identity of m's (§4.B, §4.F).
func CopyMap(m *refcounted.Map[Object]) *refcounted.Map[Object] {
	out := m.NewMapCopy()
	for _, p := range out.Pairs() {
		p.Key.Retain()
		p.Value.Retain()
	}
	return out
}

// IsRefCounted reports whether o's payload is a shared, ref-counted handle.
func (o Object) IsRefCounted() bool {
	switch o.Kind {
	case KindVector, KindMap, KindClass, KindInstance:
		return true
	default:
		return false
	}
}

// Retain increments the payload's reference count. It is a no-op for
// non-ref-counted variants. Call it whenever an Object is copied into a
// new owning slot (a push, a local store, a container insert).
func (o Object) Retain() {
	switch o.Kind {
	case KindVector:
		o.Vec.IncRef()
	case KindMap, KindClass, KindInstance:
		o.Map.IncRef()
	}
}

// Release decrements the payload's reference count, placing the payload in
// its type's dead pool on a decrement to zero. It is a no-op for
// non-ref-counted variants. Call it whenever an owning slot holding o is
// destroyed, popped without transfer, or overwritten.
func (o Object) Release() {
	switch o.Kind {
	case KindVector:
		o.Vec.DecRef()
	case KindMap, KindClass, KindInstance:
		o.Map.DecRef()
	}
}

// Copy returns a deep copy for strings (already immutable in Go) and a
// shared, ref-incremented handle for compound values (§4.A: "shares
// compound handles with ref increment").
func (o Object) Copy() Object {
	switch o.Kind {
	case KindVector:
		o.Vec.IncRef()
	case KindMap, KindClass, KindInstance:
		o.Map.IncRef()
	}
	return o
}

// Truthy implements the falsy rule used by `jmpf`: bool false, null, number
// 0, empty string, empty vector and empty map are falsy; everything else
// is truthy.
func (o Object) Truthy() bool {
	switch o.Kind {
	case KindBoolean:
		return o.Bool
	case KindNull:
		return false
	case KindNumber:
		return o.Num != 0
	case KindString:
		return o.Str != ""
	case KindVector:
		return o.Vec.Len() != 0
	case KindMap, KindClass, KindInstance:
		return o.Map.Len() != 0
	default:
		return true
	}
}

// Equal implements the equality rule from §3: variants must match; strings
// compared byte-wise; numbers bitwise on the float; compound values by
// handle identity; null equals null; unknown compared by name.
func (o Object) Equal(other Object) bool {
	if o.Kind != other.Kind {
		return false
	}
	switch o.Kind {
	case KindNumber:
		return math.Float64bits(o.Num) == math.Float64bits(other.Num)
	case KindString:
		return o.Str == other.Str
	case KindBoolean:
		return o.Bool == other.Bool
	case KindNull:
		return true
	case KindVector:
		return o.Vec == other.Vec
	case KindMap, KindClass, KindInstance:
		return o.Map == other.Map
	case KindFunctionRef:
		return o.FuncRef == other.FuncRef
	case KindOffset:
		return o.Offset == other.Offset
	case KindUnknown:
		return o.Name == other.Name
	case KindNativeFunction:
		return false
	default:
		return false
	}
}

// Compare implements the total order from §3: first by variant tag
// ordinal, then by payload (lexicographic strings, numeric numbers and
// offsets, boolean false < true, by name for compound variants). It
// returns -1, 0 or 1. NaN numbers make the order inconsistent with
// equality, as noted in §9 — callers must not rely on Compare for NaN.
func (o Object) Compare(other Object) int {
	if o.Kind != other.Kind {
		if o.Kind < other.Kind {
			return -1
		}
		return 1
	}
	switch o.Kind {
	case KindNumber:
		return compareFloat(o.Num, other.Num)
	case KindString:
		return strings.Compare(o.Str, other.Str)
	case KindBoolean:
		return compareBool(o.Bool, other.Bool)
	case KindOffset:
		return compareUint(o.Offset, other.Offset)
	case KindNull:
		return 0
	case KindVector, KindMap, KindClass, KindInstance:
		return strings.Compare(o.displayName(), other.displayName())
	case KindFunctionRef:
		return compareUint(uint64(o.FuncRef), uint64(other.FuncRef))
	case KindUnknown:
		return strings.Compare(o.Name, other.Name)
	default:
		return 0
	}
}

func (o Object) displayName() string {
	if o.Name != "" {
		return o.Name
	}
	return fmt.Sprintf("%p", o.Map)
}

// compareObjects adapts [Object.Compare] to the [refcounted.Comparator]
// shape so maps can be ordered without refcounted importing this package.
func compareObjects(a, b Object) int { return a.Compare(b) }

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Render returns the canonical string rendering described in §4.F. The
// top-level flag controls whether strings are quoted: unquoted at the top
// level, single-quoted when nested inside a container.
func (o Object) Render(topLevel bool) string {
	switch o.Kind {
	case KindNumber:
		return formatNumber(o.Num)
	case KindBoolean:
		return strconv.FormatBool(o.Bool)
	case KindNull:
		return "null"
	case KindString:
		if topLevel {
			return o.Str
		}
		return "'" + o.Str + "'"
	case KindVector:
		elems := o.Vec.Elements()
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = e.Render(false)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		return renderPairs(o.Map, "{", "}")
	case KindClass:
		return fmt.Sprintf("class: '%s' = %s", o.Name, renderPairs(o.Map, "{", "}"))
	case KindInstance:
		return fmt.Sprintf("instance: '%s' = %s", o.Name, renderPairs(o.Map, "{", "}"))
	case KindFunctionRef:
		return fmt.Sprintf("function-ref[%d]", o.FuncRef)
	case KindNativeFunction:
		return "native-function"
	case KindOffset:
		return strconv.FormatUint(o.Offset, 10)
	case KindUnknown:
		return "unknown:" + o.Name
	default:
		return "<invalid object>"
	}
}

func renderPairs(m *refcounted.Map[Object], open, close string) string {
	var b strings.Builder
	b.WriteString(open)
	for i, p := range m.Pairs() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.Render(false))
		b.WriteString(":")
		b.WriteString(p.Value.Render(false))
	}
	b.WriteString(close)
	return b.String()
}

// formatNumber renders a float with the shortest round-trip representation.
func formatNumber(n float64) string {
	if math.IsInf(n, 1) {
		return "inf"
	}
	if math.IsInf(n, -1) {
		return "-inf"
	}
	if math.IsNaN(n) {
		return "nan"
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
