// Package arena provides a region allocator for syntax trees. All
// nodes built during one parse are allocated from one arena and kept
// alive together; releasing the arena releases the whole tree. There
// is no per-value free.
package arena

import "reflect"

const minChunk = 64

// Arena is a region allocator. The zero value is ready to use. An
// Arena must not be used concurrently.
type Arena struct {
	pools map[reflect.Type]any // *pool[T], keyed by T
	bytes int64
}

// New creates an empty arena.
func New() *Arena { return &Arena{} }

// Bytes returns an estimate of the memory allocated from the arena,
// for debug logging.
func (a *Arena) Bytes() int64 { return a.bytes }

type pool[T any] struct {
	cur []T // len(cur) < cap(cur) slots are free
}

func getPool[T any](a *Arena) *pool[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if a.pools == nil {
		a.pools = make(map[reflect.Type]any)
	}
	if p, ok := a.pools[key]; ok {
		return p.(*pool[T])
	}
	p := &pool[T]{}
	a.pools[key] = p
	return p
}

// reserve makes room for n contiguous values of T, growing the
// current chunk if needed. Values already handed out stay valid:
// chunks are only ever replaced, never moved.
func (p *pool[T]) reserve(n int) {
	if cap(p.cur)-len(p.cur) >= n {
		return
	}
	size := 2 * cap(p.cur)
	if size < minChunk {
		size = minChunk
	}
	for size < n {
		size *= 2
	}
	p.cur = make([]T, 0, size)
}

// Alloc copies v into the arena and returns a pointer to the copy.
// The pointer remains valid until the arena itself is released.
func Alloc[T any](a *Arena, v T) *T {
	p := getPool[T](a)
	p.reserve(1)
	p.cur = append(p.cur, v)
	a.bytes += int64(reflect.TypeOf((*T)(nil)).Elem().Size())
	return &p.cur[len(p.cur)-1]
}

// Slice copies the given values into contiguous arena storage.
func Slice[T any](a *Arena, elems ...T) []T {
	return Copy(a, elems)
}

// Copy copies src into contiguous arena storage and returns the
// arena-backed slice. Copy(a, nil) returns nil.
func Copy[T any](a *Arena, src []T) []T {
	if len(src) == 0 {
		return nil
	}
	p := getPool[T](a)
	p.reserve(len(src))
	start := len(p.cur)
	p.cur = append(p.cur, src...)
	a.bytes += int64(len(src)) * int64(reflect.TypeOf((*T)(nil)).Elem().Size())
	return p.cur[start : start+len(src) : start+len(src)]
}
