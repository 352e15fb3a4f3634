package storage

const Schema = `
-- Documents: one row per stored text, body kept as a compressed blob.
-- The fingerprint is indexed but deliberately not UNIQUE: duplicate
-- prevention happens through the in-memory duplicate index before insertion.
-- AUTOINCREMENT keeps doc ids monotonic and never reused after deletion.
CREATE TABLE IF NOT EXISTS documents (
    doc_id INTEGER PRIMARY KEY AUTOINCREMENT,
    fingerprint INTEGER NOT NULL,
    compressed_text BLOB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_fingerprint ON documents(fingerprint);

-- Lemmas: corpus-wide vocabulary of normalized word forms.
-- Rows are never updated and never pruned, even when the last document
-- containing a lemma is deleted.
CREATE TABLE IF NOT EXISTS lemmas (
    lemma_id INTEGER PRIMARY KEY AUTOINCREMENT,
    lemma TEXT UNIQUE NOT NULL
);

-- Per-document lemma statistics. Rows live and die with their document.
CREATE TABLE IF NOT EXISTS document_lemmas (
    doc_id INTEGER NOT NULL,
    lemma_id INTEGER NOT NULL,
    lemma_count INTEGER NOT NULL,
    lemma_tf REAL NOT NULL,
    PRIMARY KEY (doc_id, lemma_id),
    FOREIGN KEY (doc_id) REFERENCES documents(doc_id) ON DELETE CASCADE,
    FOREIGN KEY (lemma_id) REFERENCES lemmas(lemma_id)
);
CREATE INDEX IF NOT EXISTS idx_document_lemmas_lemma ON document_lemmas(lemma_id);
`
