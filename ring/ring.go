// Package ring implements a bounded, lock-free single-producer/single-consumer
// queue. Capacity must be a power of two; one slot is always left empty so
// head==tail can mean "empty" without being ambiguous with "full".
//
// Safety depends entirely on usage discipline: exactly one goroutine may call
// TryPush, and exactly one (possibly different) goroutine may call TryPop.
// Any other access pattern is undefined.
package ring

import "sync/atomic"

// cacheLine is the assumed hardware cache line size. 64 bytes covers the
// overwhelming majority of x86-64 and arm64 cores; getting this wrong costs
// performance, not correctness.
const cacheLine = 64

// paddedIndex holds one atomic index, padded out to a full cache line so it
// never shares a line with the other index. Without the padding, the
// producer's writes to tail would invalidate the consumer's cached copy of
// head on every update (false sharing), and vice versa.
type paddedIndex struct {
	v atomic.Uint64
	_ [cacheLine - 8]byte
}

// SPSC is a bounded ring buffer for exactly one producer and one consumer.
type SPSC[T any] struct {
	head paddedIndex // consumer-owned
	tail paddedIndex // producer-owned
	mask uint64
	buf  []T
}

// New creates an SPSC ring of the given capacity, which must be a power of
// two of at least 2.
func New[T any](capacity int) *SPSC[T] {
	if capacity < 2 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two >= 2")
	}
	return &SPSC[T]{
		mask: uint64(capacity - 1),
		buf:  make([]T, capacity),
	}
}

// TryPush is called exclusively by the producer. It returns false if the
// ring is full.
//
// Go's sync/atomic Load/Store on atomic.Uint64 carry sequentially consistent
// ordering, a strictly stronger guarantee than the acquire/release pairing
// this algorithm requires — so the happens-before edge between the slot
// write and the tail publish holds automatically.
func (r *SPSC[T]) TryPush(item T) bool {
	tail := r.tail.v.Load()
	next := (tail + 1) & r.mask
	if next == r.head.v.Load() {
		return false
	}
	r.buf[tail] = item
	r.tail.v.Store(next)
	return true
}

// TryPop is called exclusively by the consumer. It reports false if the ring
// is empty.
func (r *SPSC[T]) TryPop() (T, bool) {
	head := r.head.v.Load()
	if head == r.tail.v.Load() {
		var zero T
		return zero, false
	}
	item := r.buf[head]
	r.head.v.Store((head + 1) & r.mask)
	return item, true
}

// Empty reports whether the ring has no items to pop. The result may be
// stale by the time the caller acts on it; it is a hint, not a guarantee.
func (r *SPSC[T]) Empty() bool {
	return r.head.v.Load() == r.tail.v.Load()
}

// Full reports whether the ring has no room to push. Same staleness caveat
// as Empty.
func (r *SPSC[T]) Full() bool {
	tail := r.tail.v.Load()
	next := (tail + 1) & r.mask
	return next == r.head.v.Load()
}

// Len returns an approximate count of items currently in the ring.
func (r *SPSC[T]) Len() int {
	tail := r.tail.v.Load()
	head := r.head.v.Load()
	return int((tail - head + r.mask + 1) & r.mask)
}

// Capacity returns the number of usable slots (one less than the backing
// array, which reserves a slot to disambiguate full from empty).
func (r *SPSC[T]) Capacity() int {
	return int(r.mask)
}
