// Package tfidf scores a document's lemmas against the whole corpus:
// tfidf = tf * ln(N/df), with N the corpus size and df the lemma's document
// frequency.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"lexicorp/internal/storage"
)

// ErrNoLemmas reports a document that exists with zero lemma statistics, a
// corpus invariant violation. It is surfaced, never repaired.
var ErrNoLemmas = errors.New("document has no lemma statistics")

// LemmaStat is one row of a document's ranked lemma report.
type LemmaStat struct {
	LemmaID int64
	Lemma   string
	Count   int
	TF      float64
	IDF     float64
	TFIDF   float64
}

type Engine struct {
	store *storage.CorpusDB
}

func NewEngine(store *storage.CorpusDB) *Engine {
	return &Engine{store: store}
}

// CorpusSize returns the total document count; 0 signals an empty corpus.
func (e *Engine) CorpusSize() (int, error) {
	return e.store.CountDocuments()
}

// TFIDF scores every lemma of the target document. An empty corpus yields an
// empty map. A document without stat rows in a non-empty corpus fails with
// ErrNoLemmas. A lemma whose document frequency reads zero (possible after
// manual corpus edits) is skipped rather than scored as infinite.
func (e *Engine) TFIDF(docID int64) (map[int64]float64, error) {
	stats, totalDocs, err := e.store.DocumentStats(docID)
	if err != nil {
		return nil, err
	}
	if totalDocs == 0 {
		return map[int64]float64{}, nil
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: doc_id %d", ErrNoLemmas, docID)
	}

	scores := make(map[int64]float64, len(stats))
	for _, s := range stats {
		if s.DF == 0 {
			continue
		}
		scores[s.LemmaID] = s.TF * math.Log(float64(totalDocs)/float64(s.DF))
	}
	return scores, nil
}

// Report joins vocabulary text onto the scores, sorted descending by tfidf
// with ties broken by ascending lemma id. An empty corpus yields an empty
// report.
func (e *Engine) Report(docID int64) ([]LemmaStat, error) {
	stats, totalDocs, err := e.store.DocumentStats(docID)
	if err != nil {
		return nil, err
	}
	if totalDocs == 0 {
		return []LemmaStat{}, nil
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%w: doc_id %d", ErrNoLemmas, docID)
	}

	report := make([]LemmaStat, 0, len(stats))
	for _, s := range stats {
		idf := 0.0
		if s.DF > 0 {
			idf = math.Log(float64(totalDocs) / float64(s.DF))
		}
		report = append(report, LemmaStat{
			LemmaID: s.LemmaID,
			Lemma:   s.Lemma,
			Count:   s.Count,
			TF:      s.TF,
			IDF:     idf,
			TFIDF:   s.TF * idf,
		})
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].TFIDF != report[j].TFIDF {
			return report[i].TFIDF > report[j].TFIDF
		}
		return report[i].LemmaID < report[j].LemmaID
	})
	return report, nil
}
