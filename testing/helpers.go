// Package testing provides test utilities for windowed keys and for
// callers implementing their own Window or record key types.
package testing

import (
	"testing"
	"time"

	"github.com/zoobzio/windowed"
)

// Millis returns the UTC instant ms milliseconds after the Unix epoch.
func Millis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// MustTimeWindow builds a TimeWindow or fails the test immediately.
func MustTimeWindow(t testing.TB, start, end time.Time) windowed.TimeWindow {
	t.Helper()

	w, err := windowed.NewTimeWindow(start, end)
	if err != nil {
		t.Fatalf("NewTimeWindow(%s, %s): %v", start, end, err)
	}
	return w
}

// MustSessionWindow builds a SessionWindow or fails the test immediately.
func MustSessionWindow(t testing.TB, start, end time.Time) windowed.SessionWindow {
	t.Helper()

	w, err := windowed.NewSessionWindow(start, end)
	if err != nil {
		t.Fatalf("NewSessionWindow(%s, %s): %v", start, end, err)
	}
	return w
}

// AssertEqualKeys checks that a and b are equal in both directions and
// share a hash.
func AssertEqualKeys[K comparable](t testing.TB, a, b windowed.Key[K]) {
	t.Helper()

	if !a.Equal(b) {
		t.Errorf("expected %s to equal %s", a, b)
	}
	if !b.Equal(a) {
		t.Errorf("expected %s to equal %s (reversed)", b, a)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("equal keys %s and %s hash differently: %x != %x", a, b, a.Hash(), b.Hash())
	}
}

// AssertDistinctKeys checks that a and b are unequal in both directions.
func AssertDistinctKeys[K comparable](t testing.TB, a, b windowed.Key[K]) {
	t.Helper()

	if a.Equal(b) {
		t.Errorf("expected %s to differ from %s", a, b)
	}
	if b.Equal(a) {
		t.Errorf("expected %s to differ from %s (reversed)", b, a)
	}
}

// AssertWindowContract checks that Equal is reflexive and symmetric for a
// and b, and that Equal windows hash identically.
func AssertWindowContract(t testing.TB, a, b windowed.Window) {
	t.Helper()

	if !a.Equal(a) {
		t.Errorf("window %s-%s is not equal to itself", a.Start(), a.End())
	}
	if a.Equal(b) != b.Equal(a) {
		t.Errorf("window equality is not symmetric: %v vs %v", a.Equal(b), b.Equal(a))
	}
	if a.Equal(b) && a.Hash() != b.Hash() {
		t.Errorf("equal windows hash differently: %x != %x", a.Hash(), b.Hash())
	}
}
