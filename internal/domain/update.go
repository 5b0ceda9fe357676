package domain

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// WordUpdate is a partial update of a VocabularyWord. Nil fields are left
// untouched. ID and CreatedAt are not updatable.
type WordUpdate struct {
	Word           *string       `json:"word"           validate:"omitnil,min=1,max=100"`
	Translation    *string       `json:"translation"    validate:"omitnil,max=500"`
	Pronunciation  *string       `json:"pronunciation"  validate:"omitnil,max=200"`
	Definitions    *[]Definition `json:"definitions"    validate:"omitnil,max=50,dive"`
	Examples       *[]Example    `json:"examples"       validate:"omitnil,max=20,dive"`
	Synonyms       *[]string     `json:"synonyms"       validate:"omitnil,max=10,dive,min=1"`
	Antonyms       *[]string     `json:"antonyms"       validate:"omitnil,max=10,dive,min=1"`
	SourceLanguage *string       `json:"sourceLanguage" validate:"omitnil,min=2,max=10"`
	TargetLanguage *string       `json:"targetLanguage" validate:"omitnil,min=2,max=10"`
	Difficulty     *Difficulty   `json:"difficulty"     validate:"omitnil,difficulty"`
	WordType       *WordType     `json:"wordType"       validate:"omitnil,wordtype"`
	IsFavorite     *bool         `json:"isFavorite"`
	IsLearned      *bool         `json:"isLearned"`
	ReviewCount    *int          `json:"reviewCount"    validate:"omitnil,min=0"`
}

// wordRules validates a complete record before it joins a word set.
type wordRules struct {
	Word           string       `json:"word"           validate:"min=1,max=100"`
	Translation    string       `json:"translation"    validate:"max=500"`
	Definitions    []Definition `json:"definitions"    validate:"max=50,dive"`
	Synonyms       []string     `json:"synonyms"       validate:"max=10"`
	Antonyms       []string     `json:"antonyms"       validate:"max=10"`
	SourceLanguage string       `json:"sourceLanguage" validate:"min=2,max=10"`
	TargetLanguage string       `json:"targetLanguage" validate:"min=2,max=10"`
	Difficulty     Difficulty   `json:"difficulty"     validate:"difficulty"`
	WordType       WordType     `json:"wordType"       validate:"wordtype"`
	ReviewCount    int          `json:"reviewCount"    validate:"min=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("difficulty", func(fl validator.FieldLevel) bool {
		return Difficulty(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation("wordtype", func(fl validator.FieldLevel) bool {
		return WordType(fl.Field().String()).IsValid()
	})

	return v
}

// ApplyUpdate returns a copy of w with the non-nil fields of upd applied.
// The input word is never modified. Word is normalized, synonym and antonym
// lists are deduplicated.
func ApplyUpdate(w VocabularyWord, upd WordUpdate) (VocabularyWord, error) {
	if err := validateStruct(upd); err != nil {
		return VocabularyWord{}, err
	}

	out := w.Clone()

	if upd.Word != nil {
		normalized := NormalizeText(*upd.Word)
		if normalized == "" {
			return VocabularyWord{}, NewValidationError("word", "required")
		}
		out.Word = normalized
	}
	if upd.Translation != nil {
		out.Translation = strings.TrimSpace(*upd.Translation)
	}
	if upd.Pronunciation != nil {
		out.Pronunciation = strings.TrimSpace(*upd.Pronunciation)
	}
	if upd.Definitions != nil {
		out.Definitions = append([]Definition{}, (*upd.Definitions)...)
	}
	if upd.Examples != nil {
		out.Examples = append([]Example{}, (*upd.Examples)...)
	}
	if upd.Synonyms != nil {
		out.Synonyms = UniqueStrings(*upd.Synonyms, MaxSynonyms)
	}
	if upd.Antonyms != nil {
		out.Antonyms = UniqueStrings(*upd.Antonyms, MaxAntonyms)
	}
	if upd.SourceLanguage != nil {
		out.SourceLanguage = *upd.SourceLanguage
	}
	if upd.TargetLanguage != nil {
		out.TargetLanguage = *upd.TargetLanguage
	}
	if upd.Difficulty != nil {
		out.Difficulty = *upd.Difficulty
	}
	if upd.WordType != nil {
		out.WordType = *upd.WordType
	}
	if upd.IsFavorite != nil {
		out.IsFavorite = *upd.IsFavorite
	}
	if upd.IsLearned != nil {
		out.IsLearned = *upd.IsLearned
	}
	if upd.ReviewCount != nil {
		out.ReviewCount = *upd.ReviewCount
	}

	return out, nil
}

// ValidateWord checks a complete record: non-empty normalized word, known
// enums, caps on synonyms and antonyms.
func ValidateWord(w VocabularyWord) error {
	if NormalizeText(w.Word) == "" {
		return NewValidationError("word", "required")
	}
	return validateStruct(wordRules{
		Word:           w.Word,
		Translation:    w.Translation,
		Definitions:    w.Definitions,
		Synonyms:       w.Synonyms,
		Antonyms:       w.Antonyms,
		SourceLanguage: w.SourceLanguage,
		TargetLanguage: w.TargetLanguage,
		Difficulty:     w.Difficulty,
		WordType:       w.WordType,
		ReviewCount:    w.ReviewCount,
	})
}

// UniqueStrings trims, deduplicates and drops empty values while keeping the
// first-seen order. At most limit values are returned (limit <= 0 means no cap).
func UniqueStrings(values []string, limit int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || slices.Contains(out, v) {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, v)
	}
	return out
}

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return NewValidationErrors(fields)
}

// fieldPath drops the struct name from the namespace: "WordUpdate.synonyms[0]" -> "synonyms[0]".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return fe.Field()
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at most %s items", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "difficulty":
		return "must be one of easy, medium, hard"
	case "wordtype":
		return "unknown word type"
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}
