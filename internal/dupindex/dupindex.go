// Package dupindex keeps the in-process fingerprint → doc id map used to
// short-circuit re-ingestion of identical content. It is a derived cache:
// the corpus store remains the source of truth and the index can be rebuilt
// from it at any time.
package dupindex

import "sync"

type Index struct {
	mu   sync.RWMutex
	docs map[int64]int64
}

func New() *Index {
	return &Index{docs: make(map[int64]int64)}
}

// Lookup returns the doc id previously registered for fp.
func (i *Index) Lookup(fp int64) (int64, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	id, ok := i.docs[fp]
	return id, ok
}

// Insert registers a newly stored document. Callers must invoke it after the
// document is durable, never before.
func (i *Index) Insert(fp, docID int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.docs[fp] = docID
}

// Remove drops fp, but only while it still maps to docID.
func (i *Index) Remove(fp, docID int64) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if id, ok := i.docs[fp]; ok && id == docID {
		delete(i.docs, fp)
	}
}

// Rebuild replaces the whole index with a store snapshot.
func (i *Index) Rebuild(snapshot map[int64]int64) {
	docs := make(map[int64]int64, len(snapshot))
	for fp, id := range snapshot {
		docs[fp] = id
	}
	i.mu.Lock()
	i.docs = docs
	i.mu.Unlock()
}

func (i *Index) Len() int {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return len(i.docs)
}
