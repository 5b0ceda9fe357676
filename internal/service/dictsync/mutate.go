package dictsync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/parla-dictionary/internal/domain"
)

// AddWord validates w, fills in defaults and prepends it to the word set.
// A word already present (case-insensitively) is rejected with
// domain.ErrConflict.
func (o *Orchestrator) AddWord(ctx context.Context, w domain.VocabularyWord) (domain.VocabularyWord, error) {
	w = o.withDefaults(w)
	if err := domain.ValidateWord(w); err != nil {
		return domain.VocabularyWord{}, err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()

	if o.hasWordLocked(w.Word, "") {
		return domain.VocabularyWord{}, fmt.Errorf("word %q: %w", w.Word, domain.ErrConflict)
	}
	if o.indexOf(w.ID) >= 0 {
		return domain.VocabularyWord{}, fmt.Errorf("word id %s: %w", w.ID, domain.ErrConflict)
	}

	o.words = append([]domain.VocabularyWord{w.Clone()}, o.words...)
	o.persistLocked(ctx)

	o.log.InfoContext(ctx, "word added", slog.String("word_id", w.ID), slog.String("word", w.Word))
	return w.Clone(), nil
}

// UpdateWord applies upd to the word with the given id. An unknown id is a
// no-op reported by ok=false.
func (o *Orchestrator) UpdateWord(ctx context.Context, id string, upd domain.WordUpdate) (updated domain.VocabularyWord, ok bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()

	idx := o.indexOf(id)
	if idx < 0 {
		return domain.VocabularyWord{}, false, nil
	}

	next, err := domain.ApplyUpdate(o.words[idx], upd)
	if err != nil {
		return domain.VocabularyWord{}, true, err
	}
	if o.hasWordLocked(next.Word, id) {
		return domain.VocabularyWord{}, true, fmt.Errorf("word %q: %w", next.Word, domain.ErrConflict)
	}

	o.words[idx] = next
	o.persistLocked(ctx)

	return next.Clone(), true, nil
}

// DeleteWord removes the word with the given id. An unknown id is a no-op
// reported by false.
func (o *Orchestrator) DeleteWord(ctx context.Context, id string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastUsed = o.now()

	idx := o.indexOf(id)
	if idx < 0 {
		return false
	}

	o.words = append(o.words[:idx:idx], o.words[idx+1:]...)
	o.persistLocked(ctx)

	o.log.InfoContext(ctx, "word deleted", slog.String("word_id", id))
	return true
}

func (o *Orchestrator) withDefaults(w domain.VocabularyWord) domain.VocabularyWord {
	w.Word = domain.NormalizeText(w.Word)
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	if w.SourceLanguage == "" {
		w.SourceLanguage = o.opts.SourceLanguage
	}
	if w.TargetLanguage == "" {
		w.TargetLanguage = o.opts.TargetLanguage
	}
	if w.Difficulty == "" {
		w.Difficulty = domain.DefaultDifficulty
	}
	if w.WordType == "" {
		w.WordType = domain.WordTypeOther
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = o.now()
	}
	w.Definitions = nonNil(w.Definitions)
	w.Examples = nonNil(w.Examples)
	w.Synonyms = domain.UniqueStrings(w.Synonyms, 0)
	w.Antonyms = domain.UniqueStrings(w.Antonyms, 0)
	return w
}

func (o *Orchestrator) hasWordLocked(word, exceptID string) bool {
	for _, w := range o.words {
		if w.ID != exceptID && strings.EqualFold(w.Word, word) {
			return true
		}
	}
	return false
}

// persistLocked rewrites the cache under the recorded fingerprint. It does
// nothing before a sync has recorded one, and while a sync is running (its
// completion writes the cache).
func (o *Orchestrator) persistLocked(ctx context.Context) {
	if !o.cached || o.running {
		return
	}
	entry := domain.CacheEntry{Words: domain.CloneWords(o.words), Fingerprint: o.fingerprint}
	if err := o.cache.Write(ctx, o.key, entry); err != nil {
		o.log.WarnContext(ctx, "cache write after edit failed", slog.String("error", err.Error()))
	}
}
