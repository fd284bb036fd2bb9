// Package windowed provides the composite key used for windowed aggregation
// results: an original record key paired with the time window the result was
// computed over.
//
// The core type is Key, an immutable value with equality and hashing that
// delegate to the record key and the Window. Windows come in three kinds
// that mirror what a windowing processor hands out: TimeWindow for tumbling
// and hopping windows, SessionWindow for activity sessions and
// UnlimitedWindow for open-ended aggregations.
//
// Basic usage:
//
//	w, err := windowed.NewTimeWindow(start, start.Add(time.Minute))
//	if err != nil {
//		return err
//	}
//	k := windowed.New("user-42", w)
//	fmt.Println(k) // [user-42@1735725600000]
//
//	// Collect per-window counts keyed by Key.
//	counts := windowed.NewIndex[string, int]()
//	n, _ := counts.Get(k)
//	counts.Put(k, n+1)
//
// Index exists because Go maps compare keys with ==, while Window equality
// compares instants (time.Time.Equal). Use Index, or Key.Hash and Key.Equal
// directly, whenever keys may be built from times carrying different
// locations or monotonic readings.
package windowed
