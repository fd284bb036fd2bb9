package windowed

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// collide hashes every key to the same bucket.
type collide string

func (c collide) Equal(other collide) bool { return c == other }
func (c collide) Hash() uint64             { return 7 }

func TestIndexPutGet(t *testing.T) {
	ix := NewIndex[string, int]()
	w := mustTime(t, 0, 100)

	if replaced := ix.Put(New("a", w), 1); replaced {
		t.Error("first Put reported a replacement")
	}
	if replaced := ix.Put(New("a", w), 2); !replaced {
		t.Error("second Put did not report a replacement")
	}

	v, ok := ix.Get(New("a", w))
	if !ok || v != 2 {
		t.Errorf("expected 2, got %d (found=%v)", v, ok)
	}
	if ix.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", ix.Len())
	}

	if _, ok := ix.Get(New("b", w)); ok {
		t.Error("found a key that was never stored")
	}
	if _, ok := ix.Get(New("a", mustTime(t, 100, 200))); ok {
		t.Error("found a key in a window it was never stored in")
	}
}

func TestIndexUsesWindowEquality(t *testing.T) {
	ix := NewIndex[string, int]()
	zone := time.FixedZone("UTC+2", 2*3600)

	utc := mustTime(t, 0, 100)
	shifted, err := NewTimeWindow(ms(0).In(zone), ms(100).In(zone))
	if err != nil {
		t.Fatal(err)
	}

	ix.Put(New("a", utc), 1)
	ix.Put(New("a", shifted), 2)

	if ix.Len() != 1 {
		t.Fatalf("expected equal windows to share an entry, got %d entries", ix.Len())
	}
	if v, _ := ix.Get(New("a", utc)); v != 2 {
		t.Errorf("expected 2, got %d", v)
	}
}

func TestIndexHashCollisions(t *testing.T) {
	ix := NewIndex[collide, string]()
	w := mustTime(t, 0, 100)

	ix.Put(New(collide("x"), w), "x")
	ix.Put(New(collide("y"), w), "y")
	ix.Put(New(collide("z"), w), "z")

	if ix.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", ix.Len())
	}
	for _, k := range []collide{"x", "y", "z"} {
		if v, ok := ix.Get(New(k, w)); !ok || v != string(k) {
			t.Errorf("Get(%s) = %q, %v", k, v, ok)
		}
	}

	if !ix.Delete(New(collide("y"), w)) {
		t.Fatal("Delete(y) returned false")
	}
	if _, ok := ix.Get(New(collide("y"), w)); ok {
		t.Error("y still present after Delete")
	}
	if v, ok := ix.Get(New(collide("z"), w)); !ok || v != "z" {
		t.Errorf("z lost after deleting y: %q, %v", v, ok)
	}
	if ix.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", ix.Len())
	}
}

func TestIndexDelete(t *testing.T) {
	ix := NewIndex[int, int]()
	w := mustTime(t, 0, 100)

	if ix.Delete(New(1, w)) {
		t.Error("Delete on empty index returned true")
	}

	ix.Put(New(1, w), 10)
	if !ix.Delete(New(1, w)) {
		t.Error("Delete of stored key returned false")
	}
	if ix.Len() != 0 {
		t.Errorf("expected empty index, got %d", ix.Len())
	}
	if ix.Delete(New(1, w)) {
		t.Error("second Delete returned true")
	}
}

func TestIndexRangeOrder(t *testing.T) {
	ix := NewIndex[string, int]()

	ix.Put(New("b", mustTime(t, 200, 300)), 3)
	ix.Put(New("a", mustTime(t, 0, 100)), 1)
	ix.Put(New("c", mustTime(t, 100, 200)), 2)
	ix.Put(New("d", mustTime(t, 0, 100)), 1)

	var got []string
	ix.Range(func(k Key[string], _ int) bool {
		got = append(got, k.String())
		return true
	})

	want := []string{"[a@0]", "[d@0]", "[c@100]", "[b@200]"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	var visited int
	ix.Range(func(Key[string], int) bool {
		visited++
		return visited < 2
	})
	if visited != 2 {
		t.Errorf("expected Range to stop after 2 entries, visited %d", visited)
	}
}

func TestIndexRangeMayModify(t *testing.T) {
	ix := NewIndex[int, int]()
	for i := int64(0); i < 5; i++ {
		ix.Put(New(int(i), mustTime(t, i*10, i*10+10)), int(i))
	}

	ix.Range(func(k Key[int], _ int) bool {
		ix.Delete(k)
		return true
	})

	if ix.Len() != 0 {
		t.Errorf("expected empty index after deleting during Range, got %d", ix.Len())
	}
}

func TestIndexWindows(t *testing.T) {
	ix := NewIndex[string, int]()
	late := mustSession(t, 500, 900)
	early := mustSession(t, 0, 50)

	ix.Put(New("user", late), 4)
	ix.Put(New("other", mustSession(t, 0, 10)), 1)
	ix.Put(New("user", early), 2)

	windows := ix.Windows("user")
	if len(windows) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(windows))
	}
	if !windows[0].Equal(early) || !windows[1].Equal(late) {
		t.Errorf("expected windows ordered by start, got %v", windows)
	}

	if got := ix.Windows("nobody"); len(got) != 0 {
		t.Errorf("expected no windows, got %v", got)
	}
}

func TestIndexWithCapacity(t *testing.T) {
	ix := NewIndex[string, int]().WithCapacity(16)
	ix.Put(New("a", mustTime(t, 0, 1)), 1)
	if ix.Len() != 1 {
		t.Errorf("expected 1 entry, got %d", ix.Len())
	}

	t.Run("keeps existing entries", func(t *testing.T) {
		ix := NewIndex[string, int]()
		ix.Put(New("a", mustTime(t, 0, 1)), 1)
		ix.Put(New("b", mustTime(t, 1, 2)), 2)

		ix.WithCapacity(1024)

		if ix.Len() != 2 {
			t.Fatalf("expected 2 entries after resizing, got %d", ix.Len())
		}
		if v, ok := ix.Get(New("b", mustTime(t, 1, 2))); !ok || v != 2 {
			t.Errorf("Get(b) = %d, %v after resizing", v, ok)
		}
		if ix.Put(New("c", mustTime(t, 2, 3)), 3) {
			t.Error("Put of a new key after resizing reported a replacement")
		}
		if ix.Len() != 3 {
			t.Errorf("expected 3 entries, got %d", ix.Len())
		}
	})
}

func TestIndexConcurrentAccess(t *testing.T) {
	ix := NewIndex[int, int]()
	w := mustTime(t, 0, 100)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				k := New(g*100+i, w)
				ix.Put(k, i)
				ix.Get(k)
			}
			ix.Range(func(Key[int], int) bool { return true })
		}(g)
	}
	wg.Wait()

	if ix.Len() != 800 {
		t.Errorf("expected 800 entries, got %d", ix.Len())
	}
}
