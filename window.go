package windowed

import (
	"encoding/binary"
	"time"

	"github.com/cespare/xxhash/v2"
)

// MaxTime is the latest representable instant. It is the End of every
// UnlimitedWindow.
var MaxTime = time.Unix(1<<63-62135596801, 999999999).UTC()

// Window is a time interval that a windowed aggregation result belongs to.
// Implementations must keep Hash consistent with Equal: windows that are
// Equal return the same Hash.
type Window interface {
	// Start returns the beginning of the window.
	Start() time.Time

	// End returns the end of the window. Whether End is inclusive is
	// specific to the window kind.
	End() time.Time

	// Equal reports whether other is the same kind of window with the same bounds.
	Equal(other Window) bool

	// Overlaps reports whether the two windows share any instant.
	// Windows of different kinds never overlap.
	Overlaps(other Window) bool

	// Hash returns a hash of the window consistent with Equal.
	Hash() uint64
}

// Discriminators mixed into window hashes so kinds with equal bounds differ.
const (
	kindTime byte = iota + 1
	kindSession
	kindUnlimited
)

// TimeWindow is a half-open interval [start, end), as produced by tumbling
// and hopping windows.
type TimeWindow struct {
	start time.Time
	end   time.Time
}

// NewTimeWindow creates a window covering [start, end).
// It returns a *WindowError wrapping ErrInvalidBounds unless end is after start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, newWindowError("time", start, end, ErrInvalidBounds)
	}
	return TimeWindow{start: start, end: end}, nil
}

// Start returns the inclusive start of the window.
func (w TimeWindow) Start() time.Time { return w.start }

// End returns the exclusive end of the window.
func (w TimeWindow) End() time.Time { return w.end }

// Size returns the length of the window.
func (w TimeWindow) Size() time.Duration { return w.end.Sub(w.start) }

// Contains reports whether t falls inside [start, end).
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.start) && t.Before(w.end)
}

// Equal reports whether other is a TimeWindow with the same bounds.
func (w TimeWindow) Equal(other Window) bool {
	o, ok := as[TimeWindow](other)
	return ok && w.start.Equal(o.start) && w.end.Equal(o.end)
}

// Overlaps reports whether other is a TimeWindow sharing any instant with w.
func (w TimeWindow) Overlaps(other Window) bool {
	o, ok := as[TimeWindow](other)
	return ok && w.start.Before(o.end) && o.start.Before(w.end)
}

// Hash returns a hash of the window bounds.
func (w TimeWindow) Hash() uint64 {
	return hashBounds(kindTime, w.start, w.end)
}

// SessionWindow is a closed interval [start, end] spanning the first and
// last event of an activity session. A session holding a single event has
// start equal to end.
type SessionWindow struct {
	start time.Time
	end   time.Time
}

// NewSessionWindow creates a session covering [start, end].
// It returns a *WindowError wrapping ErrInvalidBounds if end is before start.
func NewSessionWindow(start, end time.Time) (SessionWindow, error) {
	if end.Before(start) {
		return SessionWindow{}, newWindowError("session", start, end, ErrInvalidBounds)
	}
	return SessionWindow{start: start, end: end}, nil
}

// Start returns the time of the first event in the session.
func (w SessionWindow) Start() time.Time { return w.start }

// End returns the time of the last event in the session.
func (w SessionWindow) End() time.Time { return w.end }

// Equal reports whether other is a SessionWindow with the same bounds.
func (w SessionWindow) Equal(other Window) bool {
	o, ok := as[SessionWindow](other)
	return ok && w.start.Equal(o.start) && w.end.Equal(o.end)
}

// Overlaps reports whether other is a SessionWindow and neither session
// ends before the other starts.
func (w SessionWindow) Overlaps(other Window) bool {
	o, ok := as[SessionWindow](other)
	return ok && !w.end.Before(o.start) && !o.end.Before(w.start)
}

// Hash returns a hash of the session bounds.
func (w SessionWindow) Hash() uint64 {
	return hashBounds(kindSession, w.start, w.end)
}

// UnlimitedWindow starts at a fixed instant and never ends.
type UnlimitedWindow struct {
	start time.Time
}

// NewUnlimitedWindow creates a window covering [start, MaxTime].
func NewUnlimitedWindow(start time.Time) UnlimitedWindow {
	return UnlimitedWindow{start: start}
}

// Start returns the beginning of the window.
func (w UnlimitedWindow) Start() time.Time { return w.start }

// End returns MaxTime.
func (w UnlimitedWindow) End() time.Time { return MaxTime }

// Equal reports whether other is an UnlimitedWindow with the same start.
func (w UnlimitedWindow) Equal(other Window) bool {
	o, ok := as[UnlimitedWindow](other)
	return ok && w.start.Equal(o.start)
}

// Overlaps reports whether other is an UnlimitedWindow. Two unlimited
// windows always share every instant after the later start.
func (w UnlimitedWindow) Overlaps(other Window) bool {
	_, ok := as[UnlimitedWindow](other)
	return ok
}

// Hash returns a hash of the window start.
func (w UnlimitedWindow) Hash() uint64 {
	return hashBounds(kindUnlimited, w.start, MaxTime)
}

// as unwraps a window of kind W given either by value or by pointer.
func as[W any](w Window) (W, bool) {
	switch v := any(w).(type) {
	case W:
		return v, true
	case *W:
		if v != nil {
			return *v, true
		}
	}
	var zero W
	return zero, false
}

// isNilWindow reports a nil interface or a nil pointer to one of the
// built-in window kinds.
func isNilWindow(w Window) bool {
	switch v := w.(type) {
	case nil:
		return true
	case *TimeWindow:
		return v == nil
	case *SessionWindow:
		return v == nil
	case *UnlimitedWindow:
		return v == nil
	}
	return false
}

// hashBounds hashes seconds and nanoseconds rather than UnixNano so every
// representable instant hashes without overflow. Instants that are Equal
// share both values regardless of location or monotonic reading.
func hashBounds(kind byte, start, end time.Time) uint64 {
	var buf [25]byte
	buf[0] = kind
	binary.LittleEndian.PutUint64(buf[1:], uint64(start.Unix()))
	binary.LittleEndian.PutUint32(buf[9:], uint32(start.Nanosecond()))
	binary.LittleEndian.PutUint64(buf[13:], uint64(end.Unix()))
	binary.LittleEndian.PutUint32(buf[21:], uint32(end.Nanosecond()))
	return xxhash.Sum64(buf[:])
}
