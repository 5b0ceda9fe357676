package domain

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// NormalizeText prepares text for storage and comparison:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - compresses multiple spaces into one
//
// Diacritics, hyphens, and apostrophes are preserved.
func NormalizeText(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)

	// Compress multiple spaces into one.
	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if r == ' ' {
			if prevSpace {
				continue
			}
			prevSpace = true
		} else {
			prevSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// wordPunctuation is replaced with spaces before a phrase is split into words.
var wordPunctuation = strings.NewReplacer(
	".", " ", ",", " ", "!", " ", "?", " ", ";", " ", ":", " ",
	"'", " ", `"`, " ", "(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ",
)

// ExtractUniqueWords derives the vocabulary of a list of phrases: every phrase
// is lowercased, punctuation is replaced by spaces, and the result is split on
// whitespace runs. Single-character tokens are dropped. The returned words are
// unique and sorted lexicographically.
func ExtractUniqueWords(phrases []string) []string {
	seen := make(map[string]struct{})
	words := []string{}

	for _, phrase := range phrases {
		cleaned := wordPunctuation.Replace(strings.ToLower(phrase))
		for _, token := range strings.Fields(cleaned) {
			if utf8.RuneCountInString(token) <= 1 {
				continue
			}
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			words = append(words, token)
		}
	}

	slices.Sort(words)
	return words
}
