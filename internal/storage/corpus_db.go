// Package storage owns the three corpus record sets (documents, vocabulary,
// per-document lemma statistics) in a SQLite file. Ingest and delete each run
// as a single transaction, so readers never observe a document without its
// full set of stat rows.
package storage

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrIncompleteInput reports an ingest call whose lemma maps are empty or
// disagree on their key sets. Nothing is written when it is returned.
var ErrIncompleteInput = errors.New("incomplete ingest input")

type CorpusDB struct {
	db *sql.DB
}

func NewCorpusDB(dbPath string) (*CorpusDB, error) {
	// Connection-string pragmas apply to every pooled connection; foreign
	// keys must be on for the cascade delete of stat rows.
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_foreign_keys=1", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus database: %w", err)
	}

	cdb := &CorpusDB{db: db}

	if err := cdb.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return cdb, nil
}

func (cdb *CorpusDB) initSchema() error {
	_, err := cdb.db.Exec(Schema)
	return err
}

func (cdb *CorpusDB) Close() error {
	return cdb.db.Close()
}

// InsertDocument stores one document and its lemma statistics as a single
// atomic unit: the document row, any vocabulary entries the corpus has not
// seen before (INSERT OR IGNORE, so a lemma raced in by another writer is
// reused rather than duplicated), and one stat row per lemma. On failure no
// partial state survives.
func (cdb *CorpusDB) InsertDocument(fingerprint int64, compressedText []byte, counts map[string]int, tfs map[string]float64) (int64, error) {
	if len(counts) == 0 {
		return 0, fmt.Errorf("%w: no lemmas", ErrIncompleteInput)
	}
	if len(counts) != len(tfs) {
		return 0, fmt.Errorf("%w: %d counts vs %d frequencies", ErrIncompleteInput, len(counts), len(tfs))
	}
	for lemma := range counts {
		if _, ok := tfs[lemma]; !ok {
			return 0, fmt.Errorf("%w: no term frequency for lemma %q", ErrIncompleteInput, lemma)
		}
	}

	tx, err := cdb.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin ingest transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		"INSERT INTO documents (fingerprint, compressed_text) VALUES (?, ?)",
		fingerprint, compressedText,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert document: %w", err)
	}
	docID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	upsertLemmaStmt, err := tx.Prepare("INSERT OR IGNORE INTO lemmas (lemma) VALUES (?)")
	if err != nil {
		return 0, err
	}
	defer upsertLemmaStmt.Close()

	getLemmaStmt, err := tx.Prepare("SELECT lemma_id FROM lemmas WHERE lemma = ?")
	if err != nil {
		return 0, err
	}
	defer getLemmaStmt.Close()

	insertStatStmt, err := tx.Prepare(
		"INSERT INTO document_lemmas (doc_id, lemma_id, lemma_count, lemma_tf) VALUES (?, ?, ?, ?)",
	)
	if err != nil {
		return 0, err
	}
	defer insertStatStmt.Close()

	for lemma, count := range counts {
		if _, err := upsertLemmaStmt.Exec(lemma); err != nil {
			return 0, fmt.Errorf("failed to upsert lemma %q: %w", lemma, err)
		}

		var lemmaID int64
		if err := getLemmaStmt.QueryRow(lemma).Scan(&lemmaID); err != nil {
			return 0, fmt.Errorf("failed to resolve lemma %q: %w", lemma, err)
		}

		if _, err := insertStatStmt.Exec(docID, lemmaID, count, tfs[lemma]); err != nil {
			return 0, fmt.Errorf("failed to insert stats for lemma %q: %w", lemma, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit ingest transaction: %w", err)
	}
	return docID, nil
}

// DeleteDocument removes a document; its stat rows go with it through the
// cascade. Vocabulary entries are kept even when orphaned. Deleting an
// unknown id is a no-op. The document's fingerprint is returned so callers
// can evict it from the duplicate index.
func (cdb *CorpusDB) DeleteDocument(docID int64) (int64, bool, error) {
	tx, err := cdb.db.Begin()
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	var fingerprint int64
	err = tx.QueryRow("SELECT fingerprint FROM documents WHERE doc_id = ?", docID).Scan(&fingerprint)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up document %d: %w", docID, err)
	}

	if _, err := tx.Exec("DELETE FROM documents WHERE doc_id = ?", docID); err != nil {
		return 0, false, fmt.Errorf("failed to delete document %d: %w", docID, err)
	}

	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit delete transaction: %w", err)
	}
	return fingerprint, true, nil
}

// SnapshotFingerprints scans every stored document; used to rebuild the
// duplicate index at startup.
func (cdb *CorpusDB) SnapshotFingerprints() (map[int64]int64, error) {
	rows, err := cdb.db.Query("SELECT fingerprint, doc_id FROM documents")
	if err != nil {
		return nil, fmt.Errorf("failed to scan fingerprints: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[int64]int64)
	for rows.Next() {
		var fingerprint, docID int64
		if err := rows.Scan(&fingerprint, &docID); err != nil {
			return nil, fmt.Errorf("failed to scan fingerprint row: %w", err)
		}
		snapshot[fingerprint] = docID
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fingerprints: %w", err)
	}
	return snapshot, nil
}

func (cdb *CorpusDB) CountDocuments() (int, error) {
	var count int
	err := cdb.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}

func (cdb *CorpusDB) CountLemmas() (int, error) {
	var count int
	err := cdb.db.QueryRow("SELECT COUNT(*) FROM lemmas").Scan(&count)
	return count, err
}

// DocumentFrequencies returns, for every lemma, the number of distinct
// documents containing it. Computed fresh on every call, never cached: the
// result is only valid for the corpus state at the instant of the query.
func (cdb *CorpusDB) DocumentFrequencies() (map[int64]int, error) {
	rows, err := cdb.db.Query(`
		SELECT lemma_id, COUNT(DISTINCT doc_id)
		FROM document_lemmas
		GROUP BY lemma_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query document frequencies: %w", err)
	}
	defer rows.Close()

	freqs := make(map[int64]int)
	for rows.Next() {
		var lemmaID int64
		var docCount int
		if err := rows.Scan(&lemmaID, &docCount); err != nil {
			return nil, fmt.Errorf("failed to scan document frequency: %w", err)
		}
		freqs[lemmaID] = docCount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating document frequencies: %w", err)
	}
	return freqs, nil
}

// TermCounts returns the occurrence count per lemma of one document. An
// unknown doc id yields an empty map, never a partial one.
func (cdb *CorpusDB) TermCounts(docID int64) (map[int64]int, error) {
	rows, err := cdb.db.Query(
		"SELECT lemma_id, lemma_count FROM document_lemmas WHERE doc_id = ?", docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query term counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var lemmaID int64
		var count int
		if err := rows.Scan(&lemmaID, &count); err != nil {
			return nil, fmt.Errorf("failed to scan term count: %w", err)
		}
		counts[lemmaID] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term counts: %w", err)
	}
	return counts, nil
}

// TermFrequencies returns the stored term frequency per lemma of one
// document. An unknown doc id yields an empty map.
func (cdb *CorpusDB) TermFrequencies(docID int64) (map[int64]float64, error) {
	rows, err := cdb.db.Query(
		"SELECT lemma_id, lemma_tf FROM document_lemmas WHERE doc_id = ?", docID)
	if err != nil {
		return nil, fmt.Errorf("failed to query term frequencies: %w", err)
	}
	defer rows.Close()

	freqs := make(map[int64]float64)
	for rows.Next() {
		var lemmaID int64
		var tf float64
		if err := rows.Scan(&lemmaID, &tf); err != nil {
			return nil, fmt.Errorf("failed to scan term frequency: %w", err)
		}
		freqs[lemmaID] = tf
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating term frequencies: %w", err)
	}
	return freqs, nil
}

// LemmaStat is one stat row of a document joined with the vocabulary and the
// lemma's corpus-wide document frequency.
type LemmaStat struct {
	LemmaID int64
	Lemma   string
	Count   int
	TF      float64
	DF      int
}

// DocumentStats returns the stat rows of one document plus the total
// document count, read under a single transaction so callers compute scores
// from one consistent corpus state.
func (cdb *CorpusDB) DocumentStats(docID int64) ([]LemmaStat, int, error) {
	tx, err := cdb.db.Begin()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to begin stats transaction: %w", err)
	}
	defer tx.Rollback()

	var totalDocs int
	if err := tx.QueryRow("SELECT COUNT(*) FROM documents").Scan(&totalDocs); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	rows, err := tx.Query(`
		SELECT dl.lemma_id, l.lemma, dl.lemma_count, dl.lemma_tf,
		       (SELECT COUNT(DISTINCT other.doc_id)
		        FROM document_lemmas other
		        WHERE other.lemma_id = dl.lemma_id) AS doc_count
		FROM document_lemmas dl
		JOIN lemmas l ON l.lemma_id = dl.lemma_id
		WHERE dl.doc_id = ?`, docID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query document stats: %w", err)
	}
	defer rows.Close()

	var stats []LemmaStat
	for rows.Next() {
		var s LemmaStat
		if err := rows.Scan(&s.LemmaID, &s.Lemma, &s.Count, &s.TF, &s.DF); err != nil {
			return nil, 0, fmt.Errorf("failed to scan document stat: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating document stats: %w", err)
	}
	rows.Close()

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("failed to commit stats transaction: %w", err)
	}
	return stats, totalDocs, nil
}

// CompressedBody returns the stored compressed text of a document, reporting
// whether the document exists.
func (cdb *CorpusDB) CompressedBody(docID int64) ([]byte, bool, error) {
	var body []byte
	err := cdb.db.QueryRow(
		"SELECT compressed_text FROM documents WHERE doc_id = ?", docID).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read document body %d: %w", docID, err)
	}
	return body, true, nil
}
