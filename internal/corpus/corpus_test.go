package corpus_test

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexicorp/internal/compress"
	"lexicorp/internal/corpus"
	"lexicorp/internal/fingerprint"
	"lexicorp/internal/storage"
	"lexicorp/internal/textprocessor"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestCorpus(t *testing.T, dbPath string, hasher corpus.Fingerprinter) *corpus.Corpus {
	t.Helper()

	store, err := storage.NewCorpusDB(dbPath)
	require.NoError(t, err)

	c, err := corpus.New(store, textprocessor.NewLemmatizer("english"), hasher, compress.XZ{}, quietLogger())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func newTestCorpus(t *testing.T) *corpus.Corpus {
	t.Helper()
	return openTestCorpus(t, filepath.Join(t.TempDir(), "corpus.db"), fingerprint.Hash64{})
}

func TestIngest_Idempotent(t *testing.T) {
	c := newTestCorpus(t)

	first, err := c.Ingest("the cats were chasing dogs across the park")
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	second, err := c.Ingest("the cats were chasing dogs across the park")
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.DocID, second.DocID)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size, "duplicate ingest must not grow the corpus")
}

func TestIngest_NoTokens(t *testing.T) {
	c := newTestCorpus(t)

	for _, text := range []string{"", "   ", "the and of to", "!!! ??? ..."} {
		_, err := c.Ingest(text)
		assert.ErrorIs(t, err, corpus.ErrNoTokens, "text %q", text)
	}

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)
}

func TestIngest_TermFrequenciesSumToOne(t *testing.T) {
	c := newTestCorpus(t)

	res, err := c.Ingest("dogs running dogs barking cats sleeping quietly somewhere")
	require.NoError(t, err)

	report, err := c.Report(res.DocID)
	require.NoError(t, err)
	require.NotEmpty(t, report)

	sum := 0.0
	for _, stat := range report {
		sum += stat.TF
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestDelete_AllowsReingest(t *testing.T) {
	c := newTestCorpus(t)

	text := "documents about cats and dogs"
	first, err := c.Ingest(text)
	require.NoError(t, err)

	deleted, err := c.Delete(first.DocID)
	require.NoError(t, err)
	assert.True(t, deleted)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 0, size)

	// Deleting again is a no-op.
	deleted, err = c.Delete(first.DocID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The fingerprint was evicted, so the same text stores fresh under a
	// never-reused id.
	second, err := c.Ingest(text)
	require.NoError(t, err)
	assert.False(t, second.Duplicate)
	assert.Greater(t, second.DocID, first.DocID)
}

func TestDuplicateLookup(t *testing.T) {
	c := newTestCorpus(t)

	text := "searching for duplicated documents"
	if _, ok := c.DuplicateLookup(text); ok {
		t.Fatal("lookup hit before ingest")
	}

	res, err := c.Ingest(text)
	require.NoError(t, err)

	docID, ok := c.DuplicateLookup(text)
	assert.True(t, ok)
	assert.Equal(t, res.DocID, docID)

	_, ok = c.DuplicateLookup(text + " changed")
	assert.False(t, ok)
}

func TestText_RoundTrip(t *testing.T) {
	c := newTestCorpus(t)

	text := "Cats — and dogs! Плюс немного юникода. 🐈"
	res, err := c.Ingest(text)
	require.NoError(t, err)

	got, err := c.Text(res.DocID)
	require.NoError(t, err)
	assert.Equal(t, text, got)

	_, err = c.Text(res.DocID + 100)
	assert.ErrorIs(t, err, corpus.ErrNotFound)
}

// collidingHasher fingerprints every text identically, forcing the accepted
// false-positive class: fingerprint equality is treated as content equality.
type collidingHasher struct{}

func (collidingHasher) Sum(string) int64 { return 42 }

func TestIngest_FingerprintCollision(t *testing.T) {
	c := openTestCorpus(t, filepath.Join(t.TempDir(), "corpus.db"), collidingHasher{})

	first, err := c.Ingest("completely original text about cats")
	require.NoError(t, err)
	assert.False(t, first.Duplicate)

	// Different text, same fingerprint: treated as a duplicate of the first.
	second, err := c.Ingest("unrelated words describing dogs")
	require.NoError(t, err)
	assert.True(t, second.Duplicate)
	assert.Equal(t, first.DocID, second.DocID)

	size, err := c.Size()
	require.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestRestart_RebuildsDuplicateIndex(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "corpus.db")

	first := openTestCorpus(t, dbPath, fingerprint.Hash64{})
	res, err := first.Ingest("persistent documents survive restarts")
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := openTestCorpus(t, dbPath, fingerprint.Hash64{})
	dup, err := second.Ingest("persistent documents survive restarts")
	require.NoError(t, err)
	assert.True(t, dup.Duplicate)
	assert.Equal(t, res.DocID, dup.DocID)

	docID, ok := second.DuplicateLookup("persistent documents survive restarts")
	assert.True(t, ok)
	assert.Equal(t, res.DocID, docID)
}

func TestVocabularySize_KeepsOrphans(t *testing.T) {
	c := newTestCorpus(t)

	res, err := c.Ingest("cats dogs birds")
	require.NoError(t, err)

	before, err := c.VocabularySize()
	require.NoError(t, err)
	assert.Equal(t, 3, before)

	_, err = c.Delete(res.DocID)
	require.NoError(t, err)

	after, err := c.VocabularySize()
	require.NoError(t, err)
	assert.Equal(t, before, after, "vocabulary is never pruned")
}
