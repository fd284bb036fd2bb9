package windowed

import "hash/maphash"

// KeyHasher is implemented by record key types that define their own
// equality. Both methods must agree: keys that are Equal return the same
// Hash. A type with only one of the two is compared with == instead, so a
// mismatched pair (time.Time has Equal but no Hash) cannot break the
// contract.
type KeyHasher[K any] interface {
	Equal(other K) bool
	Hash() uint64
}

// seed is fixed for the life of the process. Hashes of plain comparable
// keys are therefore not stable across processes and must not be persisted.
var seed = maphash.MakeSeed()

// Mixing constants: the 64-bit golden ratio and the splitmix64 finalizer.
const (
	golden  = 0x9e3779b97f4a7c15
	mixMul1 = 0xbf58476d1ce4e5b9
	mixMul2 = 0x94d049bb133111eb
)

func keysEqual[K comparable](a, b K) bool {
	if h, ok := any(a).(KeyHasher[K]); ok {
		return h.Equal(b)
	}
	return a == b
}

func hashKey[K comparable](k K) uint64 {
	if h, ok := any(k).(KeyHasher[K]); ok {
		return h.Hash()
	}
	return maphash.Comparable(seed, k)
}

// combineHash spreads the window hash with an odd multiplier before folding
// in the key hash, then runs the result through a finalizer so both halves
// reach every output bit.
func combineHash(window, key uint64) uint64 {
	h := window*golden ^ key
	h ^= h >> 30
	h *= mixMul1
	h ^= h >> 27
	h *= mixMul2
	h ^= h >> 31
	return h
}
