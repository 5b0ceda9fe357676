package dictsync

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockPhraseSource struct {
	mu               sync.Mutex
	calls            int
	FetchPhrasesFunc func(ctx context.Context) ([]domain.Phrase, error)
}

func (m *mockPhraseSource) FetchPhrases(ctx context.Context) ([]domain.Phrase, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	return m.FetchPhrasesFunc(ctx)
}

func (m *mockPhraseSource) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockWordLookup struct {
	mu         sync.Mutex
	words      []string
	LookupFunc func(ctx context.Context, word, sourceLang, targetLang string) lookup.Result
}

func (m *mockWordLookup) Lookup(ctx context.Context, word, sourceLang, targetLang string) lookup.Result {
	m.mu.Lock()
	m.words = append(m.words, word)
	m.mu.Unlock()
	return m.LookupFunc(ctx, word, sourceLang, targetLang)
}

func (m *mockWordLookup) Words() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.words...)
}

// memCache is an in-memory sessionCache that records writes.
type memCache struct {
	mu            sync.Mutex
	entries       map[string]domain.CacheEntry
	writes        int
	invalidations int
	writeErr      error
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]domain.CacheEntry)}
}

func (c *memCache) Read(_ context.Context, key string) (domain.CacheEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return domain.CacheEntry{}, false
	}
	return domain.CacheEntry{Words: domain.CloneWords(e.Words), Fingerprint: e.Fingerprint}, true
}

func (c *memCache) Write(_ context.Context, key string, entry domain.CacheEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writeErr != nil {
		return c.writeErr
	}
	c.writes++
	c.entries[key] = domain.CacheEntry{Words: domain.CloneWords(entry.Words), Fingerprint: entry.Fingerprint}
	return nil
}

func (c *memCache) Invalidate(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidations++
	delete(c.entries, key)
	return nil
}

func (c *memCache) Writes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.writes
}

func (c *memCache) Entry(key string) (domain.CacheEntry, bool) {
	return c.Read(context.Background(), key)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

const testKey = "user-1:sess-1"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func staticPhrases(phrases ...domain.Phrase) *mockPhraseSource {
	return &mockPhraseSource{
		FetchPhrasesFunc: func(context.Context) ([]domain.Phrase, error) {
			return phrases, nil
		},
	}
}

// okLookup resolves every word to "tr-<word>" with one noun definition.
func okLookup() *mockWordLookup {
	return &mockWordLookup{
		LookupFunc: func(_ context.Context, word, _, _ string) lookup.Result {
			return resolved(word)
		},
	}
}

func resolved(word string) lookup.Result {
	return lookup.Result{
		Word:          word,
		Translation:   "tr-" + word,
		Confidence:    1,
		Pronunciation: "/" + word + "/",
		Definitions:   []domain.Definition{{Meaning: "meaning of " + word, PartOfSpeech: domain.WordTypeNoun}},
		Examples:      []domain.Example{},
		Synonyms:      []string{},
		Antonyms:      []string{},
		WordType:      domain.WordTypeNoun,
	}
}

func newTestOrchestrator(t *testing.T, phrases phraseSource, lk wordLookup, cache sessionCache) *Orchestrator {
	t.Helper()
	return NewOrchestrator(discardLogger(), testKey, phrases, lk, cache, Options{
		SourceLanguage: "en",
		TargetLanguage: "it",
	})
}

func wordNames(words []domain.VocabularyWord) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.Word
	}
	return out
}

func cachedWord(word, translation string) domain.VocabularyWord {
	w := domain.NewVocabularyWord(word, "en", "it", fixedTime)
	w.Translation = translation
	return w
}

var helloPhrases = []domain.Phrase{
	{ID: "1", Text: "Hello world"},
	{ID: "2", Text: "Hello there"},
}
