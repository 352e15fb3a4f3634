// Package textprocessor reduces raw text to the ordered sequence of
// normalized word forms the corpus indexes: tokenize, drop stop words, stem.
package textprocessor

import "github.com/kljensen/snowball"

type Lemmatizer struct {
	tokenizer *Tokenizer
	language  string
}

func NewLemmatizer(language string) *Lemmatizer {
	if language == "" {
		language = "english"
	}
	return &Lemmatizer{
		tokenizer: NewTokenizer(),
		language:  language,
	}
}

// AddStopWords extends the stop list, e.g. with domain words from config.
func (l *Lemmatizer) AddStopWords(words []string) {
	for _, word := range words {
		l.tokenizer.StopWords[word] = true
	}
}

func (l *Lemmatizer) Lemmatize(text string) []string {
	tokens := l.tokenizer.Tokenize(text)

	lemmas := make([]string, len(tokens))
	for i, token := range tokens {
		lemmas[i] = l.stem(token)
	}
	return lemmas
}

func (l *Lemmatizer) stem(word string) string {
	stemmed, err := snowball.Stem(word, l.language, true)
	if err != nil {
		return word
	}
	return stemmed
}
