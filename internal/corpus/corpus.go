// Package corpus wires the ingestion pipeline over the store: fingerprint
// first (the cheap check), then lemmatize, compress and insert as one
// transaction, then register the new document in the duplicate index.
package corpus

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"lexicorp/internal/dupindex"
	"lexicorp/internal/storage"
	"lexicorp/internal/tfidf"
)

// ErrNoTokens reports text the lemmatizer reduced to nothing. Such a
// document is never admitted to the corpus.
var ErrNoTokens = errors.New("text yields no lemmas")

// ErrNotFound reports an unknown document id.
var ErrNotFound = errors.New("document not found")

// Lemmatizer turns raw text into an ordered sequence of normalized word
// forms. Tokenizing, stop-word filtering and stemming are entirely its
// business.
type Lemmatizer interface {
	Lemmatize(text string) []string
}

// Fingerprinter derives the 63-bit content hash used for duplicate
// detection.
type Fingerprinter interface {
	Sum(text string) int64
}

// Compressor is a reversible byte compressor for document bodies.
type Compressor interface {
	Compress(text string) ([]byte, error)
	Decompress(data []byte) (string, error)
}

type Corpus struct {
	store      *storage.CorpusDB
	engine     *tfidf.Engine
	lemmatizer Lemmatizer
	hasher     Fingerprinter
	compressor Compressor
	dups       *dupindex.Index
	log        *slog.Logger

	// mu serializes ingest and delete: the duplicate-index lookup and the
	// insert after commit form a check-then-act sequence that must not race.
	mu sync.Mutex
}

// New builds the corpus service and rebuilds the duplicate index from the
// store's fingerprint snapshot.
func New(store *storage.CorpusDB, lemmatizer Lemmatizer, hasher Fingerprinter, compressor Compressor, log *slog.Logger) (*Corpus, error) {
	if log == nil {
		log = slog.Default()
	}
	c := &Corpus{
		store:      store,
		engine:     tfidf.NewEngine(store),
		lemmatizer: lemmatizer,
		hasher:     hasher,
		compressor: compressor,
		dups:       dupindex.New(),
		log:        log,
	}

	snapshot, err := store.SnapshotFingerprints()
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild duplicate index: %w", err)
	}
	c.dups.Rebuild(snapshot)
	c.log.Debug("duplicate index rebuilt", "documents", c.dups.Len())

	return c, nil
}

func (c *Corpus) Close() error {
	return c.store.Close()
}

type IngestResult struct {
	DocID     int64
	Duplicate bool
}

// analysis carries every artefact derived from one document's text. It is
// produced fully populated in one step; later stages only read it.
type analysis struct {
	fingerprint int64
	counts      map[string]int
	tfs         map[string]float64
	body        []byte
}

func (c *Corpus) analyze(text string, fingerprint int64) (analysis, error) {
	lemmas := c.lemmatizer.Lemmatize(text)
	if len(lemmas) == 0 {
		return analysis{}, ErrNoTokens
	}

	counts := make(map[string]int, len(lemmas))
	for _, lemma := range lemmas {
		counts[lemma]++
	}

	total := float64(len(lemmas))
	tfs := make(map[string]float64, len(counts))
	for lemma, count := range counts {
		tfs[lemma] = float64(count) / total
	}

	body, err := c.compressor.Compress(text)
	if err != nil {
		return analysis{}, fmt.Errorf("failed to compress document: %w", err)
	}

	return analysis{
		fingerprint: fingerprint,
		counts:      counts,
		tfs:         tfs,
		body:        body,
	}, nil
}

// Ingest stores text and returns its doc id. Content already present (by
// fingerprint) is not stored twice: the prior id comes back with Duplicate
// set. Fingerprint equality is trusted as content equality, so colliding
// texts are treated as duplicates.
func (c *Corpus) Ingest(text string) (IngestResult, error) {
	fingerprint := c.hasher.Sum(text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if docID, ok := c.dups.Lookup(fingerprint); ok {
		c.log.Debug("duplicate content", "fingerprint", fingerprint, "doc_id", docID)
		return IngestResult{DocID: docID, Duplicate: true}, nil
	}

	a, err := c.analyze(text, fingerprint)
	if err != nil {
		return IngestResult{}, err
	}

	docID, err := c.store.InsertDocument(a.fingerprint, a.body, a.counts, a.tfs)
	if err != nil {
		return IngestResult{}, err
	}

	// The document is durable now; register it for future dedup checks.
	c.dups.Insert(a.fingerprint, docID)

	c.log.Info("document ingested", "doc_id", docID, "lemmas", len(a.counts))
	return IngestResult{DocID: docID}, nil
}

// Delete removes a document and its statistics, and evicts its fingerprint
// from the duplicate index. Deleting an unknown id is a no-op; the returned
// bool reports whether anything was removed.
func (c *Corpus) Delete(docID int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fingerprint, existed, err := c.store.DeleteDocument(docID)
	if err != nil {
		return false, err
	}
	if existed {
		c.dups.Remove(fingerprint, docID)
		c.log.Info("document deleted", "doc_id", docID)
	}
	return existed, nil
}

// DuplicateLookup reports the stored document matching text, if any, without
// ingesting anything.
func (c *Corpus) DuplicateLookup(text string) (int64, bool) {
	return c.dups.Lookup(c.hasher.Sum(text))
}

// Report returns the ranked lemma statistics of one document.
func (c *Corpus) Report(docID int64) ([]tfidf.LemmaStat, error) {
	report, err := c.engine.Report(docID)
	if err != nil {
		if errors.Is(err, tfidf.ErrNoLemmas) {
			c.log.Error("corpus inconsistency", "doc_id", docID, "err", err)
		}
		return nil, err
	}
	return report, nil
}

// TFIDF returns the per-lemma scores of one document.
func (c *Corpus) TFIDF(docID int64) (map[int64]float64, error) {
	scores, err := c.engine.TFIDF(docID)
	if err != nil {
		if errors.Is(err, tfidf.ErrNoLemmas) {
			c.log.Error("corpus inconsistency", "doc_id", docID, "err", err)
		}
		return nil, err
	}
	return scores, nil
}

// Size returns the number of stored documents.
func (c *Corpus) Size() (int, error) {
	return c.engine.CorpusSize()
}

// VocabularySize returns the number of distinct lemmas ever stored.
func (c *Corpus) VocabularySize() (int, error) {
	return c.store.CountLemmas()
}

// Text returns the decompressed original text of a document.
func (c *Corpus) Text(docID int64) (string, error) {
	body, ok, err := c.store.CompressedBody(docID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("%w: doc_id %d", ErrNotFound, docID)
	}
	return c.compressor.Decompress(body)
}
