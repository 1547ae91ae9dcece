// Package refcounted implements the shared-ownership compound containers
// that back the vector and map object variants: ordered sequences and
// ordered mappings with a manual reference count and a deferred "dead
// pool" instead of a tracing collector.
//
// This is the Go translation of the deva runtime's `RefCounted<T>` C++
// template (see `refcounted.h` in the original sources): a private
// constructor reachable only through `Create`, an `IncRef`/`DecRef` pair,
// and a process-wide pool of containers whose count reached zero but
// which have not yet been freed. Go has no destructors and a tracing GC
// underneath, so "freeing" here just means dropping the last reference so
// the collector can reclaim it — but the *timing* (deferred to
// [ClearDeadPools], never mid-expression) is preserved exactly, because
// that timing is what keeps references from still-live stack slots valid
// across a drain (§5).
//
// Go's lack of C++ templates is worked around with a generic type
// parameter plus an explicit comparator, rather than requiring elements to
// implement a shared interface — that keeps this package free of any
// dependency on the object package it is built for, which in turn depends
// on this one.
package refcounted

// Comparator orders two elements, returning a negative number, zero, or a
// positive number the way object.Object.Compare does.
type Comparator[T any] func(a, b T) int

var (
	vectorDeadPool []any
	mapDeadPool    []any
)

// ClearDeadPools frees every pooled vector and map, emptying both pools.
// It must only be called from a well-defined safe point — frame teardown
// or scope teardown — where no reference from a live stack slot or local
// can still observe the freed containers (§5).
func ClearDeadPools() {
	vectorDeadPool = vectorDeadPool[:0]
	mapDeadPool = mapDeadPool[:0]
}

// DeadPoolSizes reports the number of pooled-but-unfreed vectors and maps,
// for diagnostics and tests.
func DeadPoolSizes() (vectors, maps int) {
	return len(vectorDeadPool), len(mapDeadPool)
}

// Vector is a shared, ref-counted, ordered sequence of T.
type Vector[T any] struct {
	refcount int
	elems    []T
}

// NewVector creates an empty vector with refcount 0; the caller must
// [Vector.IncRef] to acquire the first strong handle.
func NewVector[T any]() *Vector[T] { return &Vector[T]{} }

// NewVectorSized creates a vector pre-sized to n zero-valued elements.
func NewVectorSized[T any](n int) *Vector[T] { return &Vector[T]{elems: make([]T, n)} }

// NewVectorCopy creates an independent copy of v's elements. The caller is
// responsible for ref-incrementing any compound elements copied this way.
func (v *Vector[T]) NewVectorCopy() *Vector[T] {
	elems := make([]T, len(v.elems))
	copy(elems, v.elems)
	return &Vector[T]{elems: elems}
}

// Slice creates a new vector over the half-open range [start, end) of v.
// Element refs must be incremented by the caller if T is a ref-counted
// object, matching §4.B's "element refs must be incremented" contract.
func (v *Vector[T]) Slice(start, end int) *Vector[T] {
	elems := make([]T, end-start)
	copy(elems, v.elems[start:end])
	return &Vector[T]{elems: elems}
}

// IncRef acquires a strong reference.
func (v *Vector[T]) IncRef() { v.refcount++ }

// DecRef releases a strong reference, pooling v for deferred collection
// when the count reaches zero, and returns the resulting count.
func (v *Vector[T]) DecRef() int {
	v.refcount--
	if v.refcount == 0 {
		vectorDeadPool = append(vectorDeadPool, v)
	}
	return v.refcount
}

// RefCount reports the current strong-reference count.
func (v *Vector[T]) RefCount() int { return v.refcount }

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return len(v.elems) }

// Get returns the element at i.
func (v *Vector[T]) Get(i int) T { return v.elems[i] }

// Set replaces the element at i.
func (v *Vector[T]) Set(i int, val T) { v.elems[i] = val }

// Append appends val in place, growing the vector by one.
func (v *Vector[T]) Append(val T) { v.elems = append(v.elems, val) }

// Elements returns the live elements, in order. The returned slice aliases
// internal storage and must be treated as read-only by callers outside
// this package.
func (v *Vector[T]) Elements() []T { return v.elems }

// mapPair is one key/value entry of a Map, kept sorted by Key.
type mapPair[T any] struct {
	Key   T
	Value T
}

// Map is a shared, ref-counted, ordered mapping from T to T, ordered by a
// [Comparator] supplied at construction (the object package's total order,
// §3). A map marked as a class or instance reuses the exact same storage
// — the class/instance distinction lives on the object, not the container.
type Map[T any] struct {
	refcount int
	cmp      Comparator[T]
	pairs    []mapPair[T]
}

// NewMap creates an empty map ordered by cmp, with refcount 0.
func NewMap[T any](cmp Comparator[T]) *Map[T] { return &Map[T]{cmp: cmp} }

// NewMapCopy creates an independent shallow copy of m: the same pairs, new
// backing storage. The caller is responsible for ref-incrementing any
// compound values copied this way.
func (m *Map[T]) NewMapCopy() *Map[T] {
	pairs := make([]mapPair[T], len(m.pairs))
	copy(pairs, m.pairs)
	return &Map[T]{cmp: m.cmp, pairs: pairs}
}

// IncRef acquires a strong reference.
func (m *Map[T]) IncRef() { m.refcount++ }

// DecRef releases a strong reference, pooling m for deferred collection
// when the count reaches zero, and returns the resulting count.
func (m *Map[T]) DecRef() int {
	m.refcount--
	if m.refcount == 0 {
		mapDeadPool = append(mapDeadPool, m)
	}
	return m.refcount
}

// RefCount reports the current strong-reference count.
func (m *Map[T]) RefCount() int { return m.refcount }

// Len returns the number of key/value pairs.
func (m *Map[T]) Len() int { return len(m.pairs) }

func (m *Map[T]) search(key T) (int, bool) {
	lo, hi := 0, len(m.pairs)
	for lo < hi {
		mid := (lo + hi) / 2
		switch c := m.cmp(m.pairs[mid].Key, key); {
		case c < 0:
			lo = mid + 1
		case c > 0:
			hi = mid
		default:
			return mid, true
		}
	}
	return lo, false
}

// Find returns the value bound to key and true, or the zero value and
// false if key is absent.
func (m *Map[T]) Find(key T) (T, bool) {
	i, ok := m.search(key)
	if !ok {
		var zero T
		return zero, false
	}
	return m.pairs[i].Value, true
}

// Set inserts or replaces the binding for key, preserving sorted order.
func (m *Map[T]) Set(key, value T) {
	i, ok := m.search(key)
	if ok {
		m.pairs[i].Value = value
		return
	}
	m.pairs = append(m.pairs, mapPair[T]{})
	copy(m.pairs[i+1:], m.pairs[i:])
	m.pairs[i] = mapPair[T]{Key: key, Value: value}
}

// Remove deletes the binding for key, if any.
func (m *Map[T]) Remove(key T) {
	i, ok := m.search(key)
	if !ok {
		return
	}
	m.pairs = append(m.pairs[:i], m.pairs[i+1:]...)
}

// Pairs returns the map's key/value pairs in their natural (sorted) order.
// The returned slice aliases internal storage and must be treated as
// read-only by callers outside this package.
func (m *Map[T]) Pairs() []mapPair[T] { return m.pairs }

// Keys returns the map's keys in natural order.
func (m *Map[T]) Keys() []T {
	keys := make([]T, len(m.pairs))
	for i, p := range m.pairs {
		keys[i] = p.Key
	}
	return keys
}

// Values returns the map's values, ordered by key.
func (m *Map[T]) Values() []T {
	values := make([]T, len(m.pairs))
	for i, p := range m.pairs {
		values[i] = p.Value
	}
	return values
}

// Copy returns nil if m is nil, otherwise an independent shallow copy made
// by [Map.NewMapCopy].
func (m *Map[T]) Copy() *Map[T] {
	if m == nil {
		return nil
	}
	return m.NewMapCopy()
}
