package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func sampleWord() VocabularyWord {
	w := NewVocabularyWord("ciao", "it", "en", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	w.Translation = "hello"
	w.Synonyms = []string{"salve"}
	return w
}

func TestApplyUpdate_NilFieldsUntouched(t *testing.T) {
	t.Parallel()

	w := sampleWord()
	got, err := ApplyUpdate(w, WordUpdate{})

	require.NoError(t, err)
	assert.Equal(t, w, got)
}

func TestApplyUpdate_AppliesFields(t *testing.T) {
	t.Parallel()

	w := sampleWord()
	got, err := ApplyUpdate(w, WordUpdate{
		Word:        ptr("  Ciao  "),
		Translation: ptr("hi"),
		Difficulty:  ptr(DifficultyHard),
		WordType:    ptr(WordTypeInterjection),
		IsFavorite:  ptr(true),
		IsLearned:   ptr(true),
		ReviewCount: ptr(3),
		Synonyms:    ptr([]string{"salve", "salve", " buongiorno "}),
	})

	require.NoError(t, err)
	assert.Equal(t, w.ID, got.ID)
	assert.Equal(t, w.CreatedAt, got.CreatedAt)
	assert.Equal(t, "ciao", got.Word)
	assert.Equal(t, "hi", got.Translation)
	assert.Equal(t, DifficultyHard, got.Difficulty)
	assert.Equal(t, WordTypeInterjection, got.WordType)
	assert.True(t, got.IsFavorite)
	assert.True(t, got.IsLearned)
	assert.Equal(t, 3, got.ReviewCount)
	assert.Equal(t, []string{"salve", "buongiorno"}, got.Synonyms)
}

func TestApplyUpdate_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	w := sampleWord()
	_, err := ApplyUpdate(w, WordUpdate{Synonyms: ptr([]string{"ehi"})})

	require.NoError(t, err)
	assert.Equal(t, []string{"salve"}, w.Synonyms)
}

func TestApplyUpdate_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		upd   WordUpdate
		field string
	}{
		{name: "blank word", upd: WordUpdate{Word: ptr("   ")}, field: "word"},
		{name: "empty word", upd: WordUpdate{Word: ptr("")}, field: "word"},
		{name: "bad difficulty", upd: WordUpdate{Difficulty: ptr(Difficulty("extreme"))}, field: "difficulty"},
		{name: "bad word type", upd: WordUpdate{WordType: ptr(WordType("gerund"))}, field: "wordType"},
		{name: "negative review count", upd: WordUpdate{ReviewCount: ptr(-1)}, field: "reviewCount"},
		{
			name:  "too many synonyms",
			upd:   WordUpdate{Synonyms: ptr([]string{"a1", "a2", "a3", "a4", "a5", "a6", "a7", "a8", "a9", "a10", "a11"})},
			field: "synonyms",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := ApplyUpdate(sampleWord(), tt.upd)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestValidateWord(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateWord(sampleWord()))

	bad := sampleWord()
	bad.Word = " "
	assert.ErrorIs(t, ValidateWord(bad), ErrValidation)

	bad = sampleWord()
	bad.Difficulty = ""
	assert.ErrorIs(t, ValidateWord(bad), ErrValidation)
}

func TestUniqueStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"a", "b"}, UniqueStrings([]string{"a", " a ", "", "b"}, 0))
	assert.Equal(t, []string{"a"}, UniqueStrings([]string{"a", "b", "c"}, 1))
	assert.Equal(t, []string{}, UniqueStrings(nil, 10))
}
