package textprocessor_test

import (
	"reflect"
	"testing"

	"lexicorp/internal/textprocessor"
)

func TestLemmatize(t *testing.T) {
	lemmatizer := textprocessor.NewLemmatizer("english")

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "basic text with stemming",
			input:    "The dogs are running in the park",
			expected: []string{"dog", "run", "park"},
		},
		{
			name:     "tech content",
			input:    "Building scalable systems requires databases and algorithms",
			expected: []string{"build", "scalabl", "system", "requir", "databas", "algorithm"},
		},
		{
			name:     "past tense",
			input:    "He walked quickly and talked loudly",
			expected: []string{"walk", "quick", "talk", "loud"},
		},
		{
			name:     "hyphenated words split",
			input:    "state-of-the-art",
			expected: []string{"state", "art"},
		},
		{
			name:     "stop words only",
			input:    "the and of to",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := lemmatizer.Lemmatize(tt.input)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Lemmatize(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLemmatizeRepeatedWords(t *testing.T) {
	lemmatizer := textprocessor.NewLemmatizer("english")

	result := lemmatizer.Lemmatize("running dogs and running cats are running fast")

	counts := make(map[string]int)
	for _, lemma := range result {
		counts[lemma]++
	}

	expected := map[string]int{
		"run":  3,
		"dog":  1,
		"cat":  1,
		"fast": 1,
	}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("lemma counts = %v, want %v", counts, expected)
	}
}

func TestAddStopWords(t *testing.T) {
	lemmatizer := textprocessor.NewLemmatizer("english")
	lemmatizer.AddStopWords([]string{"corpus"})

	result := lemmatizer.Lemmatize("corpus documents")

	if !reflect.DeepEqual(result, []string{"document"}) {
		t.Errorf("Lemmatize after AddStopWords = %v, want [document]", result)
	}
}

func TestTokenizeUnicode(t *testing.T) {
	tokenizer := textprocessor.NewTokenizer()

	result := tokenizer.Tokenize("Привет, мир!")

	expected := []string{"привет", "мир"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Tokenize = %v, want %v", result, expected)
	}
}

func TestTokenizeFiltersInvalidTokens(t *testing.T) {
	tokenizer := textprocessor.NewTokenizer()

	// "9" is too short, "2048" is digits only, "x64" is mostly digits;
	// "abc123" has at least as many letters as digits and survives.
	result := tokenizer.Tokenize("version 9 ran 2048 times using x64 abc123 builds")

	expected := []string{"version", "ran", "times", "using", "abc123", "builds"}
	if !reflect.DeepEqual(result, expected) {
		t.Errorf("Tokenize = %v, want %v", result, expected)
	}
}
