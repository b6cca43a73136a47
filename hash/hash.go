// Package hash computes deep hashes of syntax objects. Hashes are
// 256-bit values built from murmur3 digests; they are used by the
// symbol table and by AST memoization downstream of the parser.
package hash

import (
	"encoding/binary"
	"fmt"

	"github.com/spaolacci/murmur3"
)

// Size is the hash size, in bytes.
const Size = 32

// Hash is a 256-bit hash value. The zero value is reserved as the
// identity of Add and never results from hashing data.
type Hash [Size]byte

// Seeds for the two murmur3 passes that fill the 256 bits. Nonzero so
// that hashing empty input still yields a nonzero hash.
const (
	seed0 = 0x9e3779b9
	seed1 = 0x85ebca6b
)

// Bytes computes the hash of a byte slice.
func Bytes(data []byte) Hash {
	var h Hash
	lo0, hi0 := murmur3.Sum128WithSeed(data, seed0)
	lo1, hi1 := murmur3.Sum128WithSeed(data, seed1)
	binary.LittleEndian.PutUint64(h[0:], lo0)
	binary.LittleEndian.PutUint64(h[8:], hi0)
	binary.LittleEndian.PutUint64(h[16:], lo1)
	binary.LittleEndian.PutUint64(h[24:], hi1)
	return h
}

// String computes the hash of a string.
func String(s string) Hash {
	return Bytes([]byte(s))
}

// Int computes the hash of an integer.
func Int(v int64) Hash {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	return Bytes(buf[:])
}

// Bool computes the hash of a boolean.
func Bool(v bool) Hash {
	if v {
		return Bytes([]byte{1})
	}
	return Bytes([]byte{0})
}

// Merge combines two hashes, order-dependently: a.Merge(b) and
// b.Merge(a) differ. Use it to fold children into a parent hash.
func (h Hash) Merge(other Hash) Hash {
	var buf [2 * Size]byte
	copy(buf[:Size], h[:])
	copy(buf[Size:], other[:])
	return Bytes(buf[:])
}

// Add combines two hashes commutatively. Hash{} is the identity.
func (h Hash) Add(other Hash) Hash {
	var r Hash
	for i := 0; i < Size; i += 8 {
		a := binary.LittleEndian.Uint64(h[i:])
		b := binary.LittleEndian.Uint64(other[i:])
		binary.LittleEndian.PutUint64(r[i:], a+b)
	}
	return r
}

// String returns an abbreviated hex representation for logging.
func (h Hash) String() string {
	return fmt.Sprintf("%02x%02x%02x%02x", h[0], h[1], h[2], h[3])
}
