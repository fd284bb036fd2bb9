package windowed

import (
	"fmt"
	"strconv"
)

// Key is the result key of a windowed aggregation: the original record key
// together with the window the result was computed over. Keys are immutable
// values and safe to share between goroutines as long as K and the Window
// are.
//
// Two Keys are equal when their windows are Equal and their record keys are
// equal. Record keys are compared with ==, unless K defines both
// Equal(K) bool and Hash() uint64, in which case those are used instead.
type Key[K comparable] struct {
	key    K
	window Window
}

// New pairs a record key with the window it was aggregated in.
// It panics if window is nil or a nil pointer to a built-in window kind.
func New[K comparable](key K, window Window) Key[K] {
	if isNilWindow(window) {
		panic("windowed: New called with nil window")
	}
	return Key[K]{key: key, window: window}
}

// Key returns the original record key.
func (k Key[K]) Key() K {
	return k.key
}

// Window returns the window holding the values associated with the key.
func (k Key[K]) Window() Window {
	return k.window
}

// IsZero reports whether k is the zero Key, which has no window.
func (k Key[K]) IsZero() bool {
	return k.window == nil
}

// Equal reports whether other is a Key[K] (or non-nil *Key[K]) with an
// Equal window and an equal record key. Any other value, nil included,
// is never equal.
func (k Key[K]) Equal(other any) bool {
	var o Key[K]
	switch v := other.(type) {
	case Key[K]:
		o = v
	case *Key[K]:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	return windowsEqual(k.window, o.window) && keysEqual(k.key, o.key)
}

// Hash returns a hash consistent with Equal: equal Keys hash identically.
func (k Key[K]) Hash() uint64 {
	var wh uint64
	if k.window != nil {
		wh = k.window.Hash()
	}
	return combineHash(wh, hashKey(k.key))
}

// String renders the key as [key@start], with the window start in epoch
// milliseconds. It is meant for diagnostics and is not parsed back.
func (k Key[K]) String() string {
	start := "<nil>"
	if k.window != nil {
		start = strconv.FormatInt(k.window.Start().UnixMilli(), 10)
	}
	return fmt.Sprintf("[%v@%s]", k.key, start)
}

func windowsEqual(a, b Window) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
