package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Caps applied to enrichment data when a word is materialized.
const (
	MaxExamples = 2
	MaxSynonyms = 10
	MaxAntonyms = 10
)

// Phrase is a user phrase owned by the backend. Only ID and Text are consumed.
type Phrase struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Definition is a single dictionary meaning. Slice order is display order.
type Definition struct {
	Meaning      string   `json:"meaning"`
	PartOfSpeech WordType `json:"partOfSpeech"`
}

// Example is a usage example paired with its translation.
type Example struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

// VocabularyWord is an enriched dictionary record derived from a word token.
// Word is the normalized lowercase lookup key and is unique (case-insensitively)
// within a word set. An empty Translation means "not yet resolved".
type VocabularyWord struct {
	ID             string       `json:"id"`
	Word           string       `json:"word"`
	Translation    string       `json:"translation"`
	Pronunciation  string       `json:"pronunciation,omitempty"`
	Definitions    []Definition `json:"definitions"`
	Examples       []Example    `json:"examples"`
	Synonyms       []string     `json:"synonyms"`
	Antonyms       []string     `json:"antonyms"`
	SourceLanguage string       `json:"sourceLanguage"`
	TargetLanguage string       `json:"targetLanguage"`
	Difficulty     Difficulty   `json:"difficulty"`
	WordType       WordType     `json:"wordType"`
	IsFavorite     bool         `json:"isFavorite"`
	IsLearned      bool         `json:"isLearned"`
	CreatedAt      time.Time    `json:"createdAt"`
	ReviewCount    int          `json:"reviewCount"`
}

// NewVocabularyWord materializes a placeholder record for word: fresh ID,
// empty translation and empty enrichment slices, default difficulty.
func NewVocabularyWord(word, sourceLang, targetLang string, now time.Time) VocabularyWord {
	return VocabularyWord{
		ID:             uuid.New().String(),
		Word:           NormalizeText(word),
		Definitions:    []Definition{},
		Examples:       []Example{},
		Synonyms:       []string{},
		Antonyms:       []string{},
		SourceLanguage: sourceLang,
		TargetLanguage: targetLang,
		Difficulty:     DefaultDifficulty,
		WordType:       WordTypeOther,
		CreatedAt:      now,
	}
}

// Clone returns a deep copy of w so callers can hand it out without sharing slices.
func (w VocabularyWord) Clone() VocabularyWord {
	c := w
	c.Definitions = slices.Clone(w.Definitions)
	c.Examples = slices.Clone(w.Examples)
	c.Synonyms = slices.Clone(w.Synonyms)
	c.Antonyms = slices.Clone(w.Antonyms)
	return c
}

// CloneWords deep-copies a word slice. A nil input yields an empty slice.
func CloneWords(words []VocabularyWord) []VocabularyWord {
	out := make([]VocabularyWord, len(words))
	for i, w := range words {
		out[i] = w.Clone()
	}
	return out
}

// CacheEntry is the session cache payload: the last-known word set plus the
// fingerprint of the phrase set it was computed from.
type CacheEntry struct {
	Words       []VocabularyWord
	Fingerprint string
}
