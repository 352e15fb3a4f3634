package dupindex_test

import (
	"sync"
	"testing"

	"lexicorp/internal/dupindex"
)

func TestLookupInsert(t *testing.T) {
	idx := dupindex.New()

	if _, ok := idx.Lookup(42); ok {
		t.Error("expected empty index to miss")
	}

	idx.Insert(42, 7)

	docID, ok := idx.Lookup(42)
	if !ok || docID != 7 {
		t.Errorf("Lookup(42) = %d, %v; want 7, true", docID, ok)
	}
	if idx.Len() != 1 {
		t.Errorf("Len() = %d, want 1", idx.Len())
	}
}

func TestRemoveOnlyMatchingDoc(t *testing.T) {
	idx := dupindex.New()
	idx.Insert(42, 7)

	// Wrong doc id: entry must survive.
	idx.Remove(42, 8)
	if _, ok := idx.Lookup(42); !ok {
		t.Error("Remove with stale doc id dropped a live entry")
	}

	idx.Remove(42, 7)
	if _, ok := idx.Lookup(42); ok {
		t.Error("expected entry gone after matching Remove")
	}
}

func TestRebuild(t *testing.T) {
	idx := dupindex.New()
	idx.Insert(1, 100)

	idx.Rebuild(map[int64]int64{2: 200, 3: 300})

	if _, ok := idx.Lookup(1); ok {
		t.Error("Rebuild kept a stale entry")
	}
	if docID, ok := idx.Lookup(2); !ok || docID != 200 {
		t.Errorf("Lookup(2) = %d, %v; want 200, true", docID, ok)
	}
	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := dupindex.New()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(base int64) {
			defer wg.Done()
			for j := int64(0); j < 1000; j++ {
				fp := base*1000 + j
				idx.Insert(fp, fp)
				if docID, ok := idx.Lookup(fp); !ok || docID != fp {
					t.Errorf("Lookup(%d) = %d, %v", fp, docID, ok)
					return
				}
			}
		}(int64(i))
	}
	wg.Wait()

	if idx.Len() != 8000 {
		t.Errorf("Len() = %d, want 8000", idx.Len())
	}
}
