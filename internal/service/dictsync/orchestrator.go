// Package dictsync keeps a session's dictionary in step with the user's
// phrases: it diffs the phrase set against the session cache, imports only
// new words and exposes the word collection for manual edits.
package dictsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
	"github.com/heartmarshall/parla-dictionary/internal/service/lookup"
)

type phraseSource interface {
	FetchPhrases(ctx context.Context) ([]domain.Phrase, error)
}

type wordLookup interface {
	Lookup(ctx context.Context, word, sourceLang, targetLang string) lookup.Result
}

type sessionCache interface {
	Read(ctx context.Context, key string) (domain.CacheEntry, bool)
	Write(ctx context.Context, key string, entry domain.CacheEntry) error
	Invalidate(ctx context.Context, key string) error
}

// Options tune an Orchestrator.
type Options struct {
	SourceLanguage string
	TargetLanguage string
	// LookupInterval is the pause between a recorded lookup result and the
	// next lookup.
	LookupInterval time.Duration
}

// Snapshot is a consistent copy of an orchestrator's state.
type Snapshot struct {
	State       State
	Words       []domain.VocabularyWord
	Fingerprint string
}

// Orchestrator synchronizes one session's dictionary. At most one sync runs
// at a time; Load and Refresh calls made while one is in flight are no-ops.
type Orchestrator struct {
	log     *slog.Logger
	key     string
	phrases phraseSource
	lookup  wordLookup
	cache   sessionCache
	opts    Options
	now     func() time.Time

	mu          sync.Mutex
	state       State
	words       []domain.VocabularyWord
	fingerprint string
	// cached is true once a sync wrote or adopted a cache entry; mutations
	// rewrite the cache only then.
	cached   bool
	running  bool
	lastUsed time.Time
}

// NewOrchestrator creates an idle orchestrator for the session key.
func NewOrchestrator(
	logger *slog.Logger,
	key string,
	phrases phraseSource,
	lookup wordLookup,
	cache sessionCache,
	opts Options,
) *Orchestrator {
	return &Orchestrator{
		log:      logger.With("service", "dictsync", "session", key),
		key:      key,
		phrases:  phrases,
		lookup:   lookup,
		cache:    cache,
		opts:     opts,
		now:      time.Now,
		state:    Idle{},
		words:    []domain.VocabularyWord{},
		lastUsed: time.Now(),
	}
}

// Load synchronizes the dictionary unless it is already initialized or a
// sync is in flight. A failed sync leaves the orchestrator in Failed, from
// which the next Load starts over.
func (o *Orchestrator) Load(ctx context.Context) error {
	if !o.begin(false) {
		return nil
	}
	return o.finish(ctx, o.sync(ctx, false))
}

// Refresh drops the session cache and re-imports every word. It is a no-op
// while a sync is in flight.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	if !o.begin(true) {
		return nil
	}
	return o.finish(ctx, o.sync(ctx, true))
}

// Snapshot returns the current state and a copy of the word set.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()

	return Snapshot{
		State:       o.state,
		Words:       domain.CloneWords(o.words),
		Fingerprint: o.fingerprint,
	}
}

// Words returns a copy of the current word set.
func (o *Orchestrator) Words() []domain.VocabularyWord {
	return o.Snapshot().Words
}

// begin claims the sync slot. force skips the initialized check.
func (o *Orchestrator) begin(force bool) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()

	if o.running {
		return false
	}
	if !force && IsInitialized(o.state) {
		return false
	}
	o.running = true
	o.state = Loading{}
	return true
}

func (o *Orchestrator) finish(ctx context.Context, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
	o.lastUsed = o.now()

	if err != nil {
		o.state = Failed{Message: userMessage(err)}
		o.log.ErrorContext(ctx, "dictionary sync failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (o *Orchestrator) sync(ctx context.Context, refresh bool) error {
	if refresh {
		o.mu.Lock()
		o.cached = false
		o.fingerprint = ""
		o.mu.Unlock()

		if err := o.cache.Invalidate(ctx, o.key); err != nil {
			o.log.WarnContext(ctx, "cache invalidation failed", slog.String("error", err.Error()))
		}
	}

	phrases, err := o.phrases.FetchPhrases(ctx)
	if err != nil {
		return fmt.Errorf("fetch phrases: %w", err)
	}

	if len(phrases) == 0 {
		o.mu.Lock()
		o.words = []domain.VocabularyWord{}
		o.fingerprint = ""
		o.cached = false
		o.state = Ready{}
		o.mu.Unlock()
		o.log.InfoContext(ctx, "no phrases, dictionary is empty")
		return nil
	}

	fingerprint := domain.Fingerprint(phrases)

	entry, hit := o.cache.Read(ctx, o.key)
	if hit && entry.Fingerprint == fingerprint {
		o.publish(entry.Words, fingerprint, true)
		o.log.InfoContext(ctx, "dictionary restored from cache", slog.Int("words", len(entry.Words)))
		return nil
	}

	unique := domain.ExtractUniqueWords(domain.PhraseTexts(phrases))
	existing, fresh := diff(entry.Words, unique)

	if len(fresh) == 0 {
		o.commit(ctx, existing, fingerprint)
		o.log.InfoContext(ctx, "dictionary reconciled without lookups",
			slog.Int("words", len(existing)),
		)
		return nil
	}

	if err := o.importWords(ctx, existing, fresh); err != nil {
		return err
	}

	o.mu.Lock()
	words := domain.CloneWords(o.words)
	o.mu.Unlock()

	o.commit(ctx, words, fingerprint)
	o.log.InfoContext(ctx, "dictionary import complete",
		slog.Int("existing", len(existing)),
		slog.Int("imported", len(fresh)),
	)
	return nil
}

// diff keeps the cached words still present in unique and returns the
// unique words the cache does not know, preserving the order of unique.
func diff(cached []domain.VocabularyWord, unique []string) (existing []domain.VocabularyWord, fresh []string) {
	current := make(map[string]struct{}, len(unique))
	for _, w := range unique {
		current[w] = struct{}{}
	}

	known := make(map[string]struct{}, len(cached))
	existing = make([]domain.VocabularyWord, 0, len(cached))
	for _, w := range cached {
		k := strings.ToLower(w.Word)
		known[k] = struct{}{}
		if _, ok := current[k]; ok {
			existing = append(existing, w)
		}
	}

	fresh = make([]string, 0, len(unique))
	for _, w := range unique {
		if _, ok := known[w]; !ok {
			fresh = append(fresh, w)
		}
	}
	return existing, fresh
}

// importWords publishes placeholders for fresh and resolves them one at a
// time. Lookup failures degrade the single word; only a cancelled context
// aborts the batch.
func (o *Orchestrator) importWords(ctx context.Context, existing []domain.VocabularyWord, fresh []string) error {
	now := o.now()
	placeholders := make([]domain.VocabularyWord, len(fresh))
	for i, w := range fresh {
		placeholders[i] = domain.NewVocabularyWord(w, o.opts.SourceLanguage, o.opts.TargetLanguage, now)
	}

	o.mu.Lock()
	o.words = append(domain.CloneWords(existing), domain.CloneWords(placeholders)...)
	o.state = Importing{Progress: Progress{Current: 0, Total: len(fresh)}}
	o.mu.Unlock()

	o.log.InfoContext(ctx, "importing new words", slog.Int("count", len(fresh)))

	pacer := NewPacer(o.opts.LookupInterval)
	for i, placeholder := range placeholders {
		if err := pacer.Wait(ctx); err != nil {
			return fmt.Errorf("import interrupted after %d of %d words: %w", i, len(fresh), err)
		}

		res := o.lookup.Lookup(ctx, placeholder.Word, o.opts.SourceLanguage, o.opts.TargetLanguage)
		if res.Err != nil {
			o.log.WarnContext(ctx, "word lookup failed, keeping the partial result",
				slog.String("word", placeholder.Word),
				slog.String("error", res.Err.Error()),
			)
		}

		o.mu.Lock()
		if idx := o.indexOf(placeholder.ID); idx >= 0 {
			o.words[idx] = applyLookup(o.words[idx], res)
		}
		o.state = Importing{Progress: Progress{Current: i + 1, Total: len(fresh)}}
		o.mu.Unlock()
		pacer.Done()
	}

	return nil
}

// applyLookup merges a lookup result into w. A failed lookup keeps any
// translation it salvaged; a missing translation falls back to the word
// itself so no word is left unlearnable.
func applyLookup(w domain.VocabularyWord, res lookup.Result) domain.VocabularyWord {
	w.Translation = res.Translation
	if strings.TrimSpace(w.Translation) == "" {
		w.Translation = w.Word
	}
	if res.Err != nil {
		return w
	}

	w.Pronunciation = res.Pronunciation
	w.Definitions = nonNil(res.Definitions)
	w.Examples = nonNil(res.Examples)
	w.Synonyms = nonNil(res.Synonyms)
	w.Antonyms = nonNil(res.Antonyms)
	if res.WordType != "" {
		w.WordType = res.WordType
	}
	return w
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// publish installs words as the complete set and marks the orchestrator ready.
func (o *Orchestrator) publish(words []domain.VocabularyWord, fingerprint string, cached bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.words = domain.CloneWords(words)
	o.fingerprint = fingerprint
	o.cached = cached
	o.state = Ready{}
}

// commit persists words under fingerprint and publishes them. A cache write
// failure is logged; the in-memory result still stands.
func (o *Orchestrator) commit(ctx context.Context, words []domain.VocabularyWord, fingerprint string) {
	err := o.cache.Write(ctx, o.key, domain.CacheEntry{Words: words, Fingerprint: fingerprint})
	if err != nil {
		o.log.WarnContext(ctx, "cache write failed", slog.String("error", err.Error()))
	}
	o.publish(words, fingerprint, err == nil)
}

func (o *Orchestrator) indexOf(id string) int {
	for i := range o.words {
		if o.words[i].ID == id {
			return i
		}
	}
	return -1
}

func (o *Orchestrator) touch() {
	o.mu.Lock()
	o.lastUsed = o.now()
	o.mu.Unlock()
}

func (o *Orchestrator) idleSince() (time.Time, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastUsed, o.running
}

// userMessage turns a sync error into the text shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return "Your session has expired. Please sign in again."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Loading the dictionary was interrupted. Please try again."
	default:
		return "Could not load your dictionary. Please try again."
	}
}
