// Package lookup resolves a single word against the translation and
// dictionary providers and merges both answers into one record.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/provider"
)

type translationProvider interface {
	Translate(ctx context.Context, word, sourceLang, targetLang string) (provider.TranslationResult, error)
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word, language string) (*provider.DictionaryResult, error)
}

// Result is the merged outcome of one lookup. Err is set when the
// definition side failed hard; Translation still carries whatever the
// translation side returned.
type Result struct {
	Word          string
	Translation   string
	Confidence    float64
	Pronunciation string
	Definitions   []domain.Definition
	Examples      []domain.Example
	Synonyms      []string
	Antonyms      []string
	WordType      domain.WordType
	Err           error
}

// Service performs word lookups.
type Service struct {
	log        *slog.Logger
	translator translationProvider
	dictionary dictionaryProvider
}

// NewService creates a new lookup service.
func NewService(logger *slog.Logger, translator translationProvider, dictionary dictionaryProvider) *Service {
	return &Service{
		log:        logger.With("service", "lookup"),
		translator: translator,
		dictionary: dictionary,
	}
}

// Lookup translates and defines word concurrently. It never returns an
// error: translation failures degrade to an empty translation and definition
// failures are reported through Result.Err.
func (s *Service) Lookup(ctx context.Context, word, sourceLang, targetLang string) Result {
	res := Result{
		Word:        word,
		Definitions: []domain.Definition{},
		Examples:    []domain.Example{},
		Synonyms:    []string{},
		Antonyms:    []string{},
		WordType:    domain.WordTypeOther,
	}

	var (
		translation provider.TranslationResult
		entry       *provider.DictionaryResult
		g           errgroup.Group
	)

	g.Go(func() (err error) {
		defer recoverInto(&err)
		translation = s.translate(ctx, word, sourceLang, targetLang)
		return nil
	})

	g.Go(func() (err error) {
		defer recoverInto(&err)
		entry, err = s.dictionary.FetchEntry(ctx, word, sourceLang)
		if err != nil {
			return fmt.Errorf("fetch definition: %w", err)
		}
		return nil
	})

	err := g.Wait()

	res.Translation = translation.Text
	res.Confidence = translation.Confidence

	if err != nil {
		s.log.WarnContext(ctx, "lookup failed",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		res.Err = err
		return res
	}

	if entry != nil {
		mergeEntry(&res, entry)
	}

	return res
}

func (s *Service) translate(ctx context.Context, word, sourceLang, targetLang string) provider.TranslationResult {
	tr, err := s.translator.Translate(ctx, word, sourceLang, targetLang)
	if err != nil {
		s.log.WarnContext(ctx, "translation failed, continuing without translation",
			slog.String("word", word),
			slog.String("error", err.Error()),
		)
		return provider.TranslationResult{}
	}
	return tr
}

// mergeEntry folds a dictionary entry into res, applying the caps.
// Meaning-level synonyms and antonyms rank ahead of per-definition ones.
func mergeEntry(res *Result, entry *provider.DictionaryResult) {
	res.Pronunciation = entry.Phonetic

	var synonyms, antonyms, defSynonyms, defAntonyms []string
	for _, m := range entry.Meanings {
		pos := domain.ParsePartOfSpeech(m.PartOfSpeech)
		synonyms = append(synonyms, m.Synonyms...)
		antonyms = append(antonyms, m.Antonyms...)

		for _, d := range m.Definitions {
			res.Definitions = append(res.Definitions, domain.Definition{Meaning: d.Meaning, PartOfSpeech: pos})
			if d.Example != "" && len(res.Examples) < domain.MaxExamples {
				res.Examples = append(res.Examples, domain.Example{Sentence: d.Example})
			}
			defSynonyms = append(defSynonyms, d.Synonyms...)
			defAntonyms = append(defAntonyms, d.Antonyms...)
		}
	}

	res.Synonyms = domain.UniqueStrings(append(synonyms, defSynonyms...), domain.MaxSynonyms)
	res.Antonyms = domain.UniqueStrings(append(antonyms, defAntonyms...), domain.MaxAntonyms)

	if len(res.Definitions) > 0 {
		res.WordType = res.Definitions[0].PartOfSpeech
	}
}

// recoverInto converts a panic in a lookup goroutine into an error so a
// misbehaving provider cannot take the caller down.
func recoverInto(err *error) {
	if r := recover(); r != nil {
		*err = errors.Join(*err, fmt.Errorf("lookup panic: %v\n%s", r, debug.Stack()))
	}
}
