package domain

import "strings"

// WordType represents the grammatical category of a vocabulary word.
type WordType string

const (
	WordTypeNoun         WordType = "noun"
	WordTypeVerb         WordType = "verb"
	WordTypeAdjective    WordType = "adjective"
	WordTypeAdverb       WordType = "adverb"
	WordTypePronoun      WordType = "pronoun"
	WordTypePreposition  WordType = "preposition"
	WordTypeConjunction  WordType = "conjunction"
	WordTypeInterjection WordType = "interjection"
	WordTypeDeterminer   WordType = "determiner"
	WordTypeNumeral      WordType = "numeral"
	WordTypePhrase       WordType = "phrase"
	WordTypeOther        WordType = "other"
)

func (w WordType) String() string { return string(w) }

func (w WordType) IsValid() bool {
	switch w {
	case WordTypeNoun, WordTypeVerb, WordTypeAdjective, WordTypeAdverb,
		WordTypePronoun, WordTypePreposition, WordTypeConjunction,
		WordTypeInterjection, WordTypeDeterminer, WordTypeNumeral,
		WordTypePhrase, WordTypeOther:
		return true
	}
	return false
}

// partOfSpeechTable maps raw dictionary part-of-speech labels to WordType.
var partOfSpeechTable = map[string]WordType{
	"noun":         WordTypeNoun,
	"proper noun":  WordTypeNoun,
	"verb":         WordTypeVerb,
	"auxiliary":    WordTypeVerb,
	"adjective":    WordTypeAdjective,
	"adj":          WordTypeAdjective,
	"adverb":       WordTypeAdverb,
	"adv":          WordTypeAdverb,
	"pronoun":      WordTypePronoun,
	"preposition":  WordTypePreposition,
	"conjunction":  WordTypeConjunction,
	"interjection": WordTypeInterjection,
	"exclamation":  WordTypeInterjection,
	"determiner":   WordTypeDeterminer,
	"article":      WordTypeDeterminer,
	"numeral":      WordTypeNumeral,
	"number":       WordTypeNumeral,
	"phrase":       WordTypePhrase,
	"idiom":        WordTypePhrase,
}

// ParsePartOfSpeech maps a raw part-of-speech label (any case) to a WordType.
// Unrecognized or empty labels map to WordTypeOther.
func ParsePartOfSpeech(raw string) WordType {
	if wt, ok := partOfSpeechTable[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return wt
	}
	return WordTypeOther
}

// Difficulty is the user-facing difficulty rating of a word.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is assigned to every newly materialized word.
const DefaultDifficulty = DifficultyMedium

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}
