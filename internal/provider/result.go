// Package provider holds the results external providers hand to the lookup
// service, independent of any upstream wire format.
package provider

// DictionaryResult is what a definition provider knows about one word.
// Upstream entries for the same word are merged into one result.
type DictionaryResult struct {
	Word string
	// Phonetic is the first transcription the provider offers, if any.
	Phonetic string
	Meanings []MeaningResult
}

// MeaningResult groups the definitions sharing a part of speech. Synonyms
// and Antonyms are the meaning-level lists; definitions carry their own.
type MeaningResult struct {
	PartOfSpeech string
	Definitions  []DefinitionResult
	Synonyms     []string
	Antonyms     []string
}

// DefinitionResult is a single sense with an optional usage example.
type DefinitionResult struct {
	Meaning  string
	Example  string
	Synonyms []string
	Antonyms []string
}

// TranslationResult is the best translation a translation provider found.
// Confidence is in [0, 1]; zero means unknown or no match.
type TranslationResult struct {
	Text       string
	Confidence float64
}
