package domain

import (
	"slices"
	"strings"
)

// Fingerprint returns the sorted, comma-joined set of phrase IDs. It is
// independent of the order of phrases.
func Fingerprint(phrases []Phrase) string {
	ids := make([]string, len(phrases))
	for i, p := range phrases {
		ids[i] = p.ID
	}
	slices.Sort(ids)
	return strings.Join(ids, ",")
}

// PhraseTexts returns the Text of every phrase, in input order.
func PhraseTexts(phrases []Phrase) []string {
	texts := make([]string, len(phrases))
	for i, p := range phrases {
		texts[i] = p.Text
	}
	return texts
}
